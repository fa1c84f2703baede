package memkernel_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/kernel/memkernel"
	"github.com/foundrycad/waffle-iron/sig"
)

func rectProfile() kernel.Profile {
	return kernel.Profile{
		Plane:   kernel.StandardWorkplane("XY"),
		Loop:    [][2]float64{{0, 0}, {160, 0}, {160, 120}, {0, 120}},
		IsOuter: true,
	}
}

var _ = Describe("Kernel extrude", func() {
	It("produces a box with exact centroid, normal, and area on the top face", func() {
		ctx := context.Background()
		k := memkernel.NewBuilder().Build()

		faceID, err := k.RegisterProfileFace(ctx, rectProfile())
		Expect(err).NotTo(HaveOccurred())

		solid, err := k.ExtrudeFace(ctx, faceID, sig.Vec3{Z: 1}, 10)
		Expect(err).NotTo(HaveOccurred())

		faces, err := k.ListFaces(ctx, solid)
		Expect(err).NotTo(HaveOccurred())
		Expect(faces).To(HaveLen(6)) // top, bottom, 4 sides

		snap, err := k.Snapshot(ctx, solid)
		Expect(err).NotTo(HaveOccurred())

		var top *sig.Entity
		for i := range snap {
			e := snap[i]
			if e.Sig.Kind == sig.Face && e.Sig.Normal.Z > 0.9 {
				top = &e
			}
		}
		Expect(top).NotTo(BeNil())
		Expect(top.Sig.Centroid.Z).To(BeNumerically("~", 10, 1e-9))
		Expect(top.Sig.Measure).To(BeNumerically("~", 160*120, 1e-6))
	})

	It("rejects a face id that was never registered as a profile", func() {
		ctx := context.Background()
		k := memkernel.NewBuilder().Build()
		_, err := k.ExtrudeFace(ctx, sig.KernelId("bogus"), sig.Vec3{Z: 1}, 10)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Kernel boolean subtract", func() {
	It("leaves the tool's faces as inward-facing cavity walls", func() {
		ctx := context.Background()
		k := memkernel.NewBuilder().Build()

		boxFace, err := k.RegisterProfileFace(ctx, rectProfile())
		Expect(err).NotTo(HaveOccurred())
		box, err := k.ExtrudeFace(ctx, boxFace, sig.Vec3{Z: 1}, 10)
		Expect(err).NotTo(HaveOccurred())

		circle := kernel.Profile{
			Plane: kernel.Workplane{Origin: sig.Vec3{Z: 10}, Normal: sig.Vec3{Z: 1}, U: sig.Vec3{X: 1}, V: sig.Vec3{Y: 1}},
		}
		for i := 0; i < 16; i++ {
			theta := 2 * math.Pi * float64(i) / 16
			circle.Loop = append(circle.Loop, [2]float64{20 * math.Cos(theta), 20 * math.Sin(theta)})
		}
		poolFace, err := k.RegisterProfileFace(ctx, circle)
		Expect(err).NotTo(HaveOccurred())
		pocket, err := k.ExtrudeFace(ctx, poolFace, sig.Vec3{Z: -1}, 5)
		Expect(err).NotTo(HaveOccurred())

		cut, err := k.Boolean(ctx, kernel.Subtract, box, pocket)
		Expect(err).NotTo(HaveOccurred())

		snap, err := k.Snapshot(ctx, cut)
		Expect(err).NotTo(HaveOccurred())
		Expect(snap).NotTo(BeEmpty())

		hasCavityWall := false
		for _, e := range snap {
			if e.Sig.Kind == sig.Face && e.Sig.SurfaceType == "planar" && e.Sig.Normal.Z < -0.9 {
				hasCavityWall = true
			}
		}
		Expect(hasCavityWall).To(BeTrue())
	})
})

