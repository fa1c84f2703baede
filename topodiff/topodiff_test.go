package topodiff_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/foundrycad/waffle-iron/sig"
	"github.com/foundrycad/waffle-iron/topodiff"
)

func face(id string, centroid sig.Vec3, measure float64, degree int) sig.Entity {
	return sig.Entity{
		ID: sig.KernelId(id),
		Sig: sig.Signature{
			Kind: sig.Face, SurfaceType: "planar",
			Centroid: centroid, Normal: sig.Vec3{Z: 1},
			Measure: measure, AdjacencyDegree: degree,
		},
	}
}

var _ = Describe("Diff", func() {
	It("classifies every before and after entity into exactly one bucket", func() {
		before := []sig.Entity{
			face("f1", sig.Vec3{X: 0, Y: 0, Z: 10}, 19200, 4),
			face("f2", sig.Vec3{X: 100, Y: 0, Z: 0}, 1200, 4),
		}
		after := []sig.Entity{
			face("f1", sig.Vec3{X: 0, Y: 0, Z: 10}, 19200, 4), // same id: unchanged
			face("f9", sig.Vec3{X: 100, Y: 0, Z: 0}, 1100, 4), // close but fresh id: modified
			face("f10", sig.Vec3{X: 999, Y: 999, Z: 999}, 1, 1),
		}

		result := topodiff.Diff(before, after, topodiff.DefaultOptions())

		Expect(result.Unchanged).To(HaveLen(1))
		Expect(result.Unchanged[0].ID).To(Equal(sig.KernelId("f1")))

		Expect(result.Modified).To(HaveLen(1))
		Expect(result.Modified[0].Before.ID).To(Equal(sig.KernelId("f2")))
		Expect(result.Modified[0].After.ID).To(Equal(sig.KernelId("f9")))
		Expect(result.Modified[0].Reason).To(Equal(topodiff.Trimmed))

		Expect(result.Created).To(HaveLen(1))
		Expect(result.Created[0].ID).To(Equal(sig.KernelId("f10")))

		Expect(result.Deleted).To(BeEmpty())

		total := len(result.Unchanged) + len(result.Created) + len(result.Deleted) + len(result.Modified)
		Expect(total).To(Equal(len(before) + 1)) // +1: the unmatched created face in after
	})

	It("leaves an entity with no plausible match classified as Deleted", func() {
		before := []sig.Entity{face("f1", sig.Vec3{X: 0, Y: 0, Z: 0}, 100, 4)}
		after := []sig.Entity{face("f2", sig.Vec3{X: 500, Y: 500, Z: 500}, 1, 1)}

		result := topodiff.Diff(before, after, topodiff.DefaultOptions())

		Expect(result.Deleted).To(HaveLen(1))
		Expect(result.Created).To(HaveLen(1))
		Expect(result.Modified).To(BeEmpty())
	})

	It("reclassifies a same-id entity as Modified when its signature moved enough", func() {
		before := []sig.Entity{face("f1", sig.Vec3{X: 0, Y: 0, Z: 10}, 19200, 4)}
		after := []sig.Entity{face("f1", sig.Vec3{X: 0, Y: 0, Z: 10}, 1200, 4)} // same id, kernel preserved it across a trim

		result := topodiff.Diff(before, after, topodiff.DefaultOptions())

		Expect(result.Unchanged).To(BeEmpty())
		Expect(result.Modified).To(HaveLen(1))
		Expect(result.Modified[0].Before.ID).To(Equal(sig.KernelId("f1")))
		Expect(result.Modified[0].After.ID).To(Equal(sig.KernelId("f1")))
		Expect(result.Modified[0].Reason).To(Equal(topodiff.Trimmed))
		Expect(result.Deleted).To(BeEmpty())
		Expect(result.Created).To(BeEmpty())
	})

	It("honors a per-op modified threshold", func() {
		before := []sig.Entity{face("f1", sig.Vec3{X: 0, Y: 0, Z: 0}, 100, 4)}
		after := []sig.Entity{face("f2", sig.Vec3{X: 0, Y: 0, Z: 0}, 60, 4)}

		loose := topodiff.Diff(before, after, topodiff.Options{ModifiedThreshold: 0.5})
		Expect(loose.Modified).To(HaveLen(1))

		strict := topodiff.Diff(before, after, topodiff.Options{ModifiedThreshold: 0.99})
		Expect(strict.Modified).To(BeEmpty())
		Expect(strict.Deleted).To(HaveLen(1))
		Expect(strict.Created).To(HaveLen(1))
	})
})
