package ops_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/kernel/memkernel"
	"github.com/foundrycad/waffle-iron/ops"
	"github.com/foundrycad/waffle-iron/sig"
)

func rectangleProfile() kernel.Profile {
	return kernel.Profile{
		Plane:   kernel.StandardWorkplane("XY"),
		Loop:    [][2]float64{{-80, -60}, {80, -60}, {80, 60}, {-80, 60}},
		IsOuter: true,
	}
}

var _ = Describe("ExecuteExtrude", func() {
	It("tags the two end caps and the four side faces of a box", func() {
		k := memkernel.NewBuilder().Build()
		ctx := context.Background()

		faceID, err := k.RegisterProfileFace(ctx, rectangleProfile())
		Expect(err).NotTo(HaveOccurred())

		result, err := ops.ExecuteExtrude(ctx, k, k, ops.ExtrudeParams{
			Face:      faceID,
			Direction: sig.Vec3{Z: 1},
			Depth:     10,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Outputs).To(HaveKey(ops.Main))

		var positives, negatives, sides int
		for _, r := range result.Roles {
			switch r.Role.Kind {
			case ops.EndCapPositive:
				positives++
			case ops.EndCapNegative:
				negatives++
			case ops.SideFace:
				sides++
			}
		}
		Expect(positives).To(Equal(1))
		Expect(negatives).To(Equal(1))
		Expect(sides).To(Equal(4))
	})

	It("rejects a zero depth before calling the kernel", func() {
		k := memkernel.NewBuilder().Build()
		ctx := context.Background()
		faceID, err := k.RegisterProfileFace(ctx, rectangleProfile())
		Expect(err).NotTo(HaveOccurred())

		_, err = ops.ExecuteExtrude(ctx, k, k, ops.ExtrudeParams{Face: faceID, Direction: sig.Vec3{Z: 1}, Depth: 0})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ExecuteFillet", func() {
	It("rejects a zero radius before calling the kernel", func() {
		k := memkernel.NewBuilder().Build()
		ctx := context.Background()
		faceID, err := k.RegisterProfileFace(ctx, rectangleProfile())
		Expect(err).NotTo(HaveOccurred())
		solid, err := k.ExtrudeFace(ctx, faceID, sig.Vec3{Z: 1}, 10)
		Expect(err).NotTo(HaveOccurred())

		_, err = ops.ExecuteFillet(ctx, k, k, ops.FilletParams{Solid: solid, Radius: 0})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ExecuteBoolean", func() {
	It("tags surviving faces by originating body", func() {
		k := memkernel.NewBuilder().Build()
		ctx := context.Background()

		boxFace, err := k.RegisterProfileFace(ctx, rectangleProfile())
		Expect(err).NotTo(HaveOccurred())
		box, err := k.ExtrudeFace(ctx, boxFace, sig.Vec3{Z: 1}, 20)
		Expect(err).NotTo(HaveOccurred())

		pocketProfile := kernel.Profile{
			Plane: kernel.StandardWorkplane("XY"),
			Loop:  [][2]float64{{-10, -10}, {10, -10}, {10, 10}, {-10, 10}},
		}
		pocketFace, err := k.RegisterProfileFace(ctx, pocketProfile)
		Expect(err).NotTo(HaveOccurred())
		pocket, err := k.ExtrudeFace(ctx, pocketFace, sig.Vec3{Z: 1}, 20)
		Expect(err).NotTo(HaveOccurred())

		result, err := ops.ExecuteBoolean(ctx, k, k, ops.BooleanParams{
			Op:    kernel.Subtract,
			BodyA: box,
			BodyB: pocket,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Outputs).To(HaveKey(ops.Main))

		var hasB bool
		for _, r := range result.Roles {
			if r.Role.Kind == ops.BooleanBodyBFace {
				hasB = true
			}
		}
		Expect(hasB).To(BeTrue())
	})
})
