package project_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/foundrycad/waffle-iron/feature"
	"github.com/foundrycad/waffle-iron/geomref"
	"github.com/foundrycad/waffle-iron/ops"
	"github.com/foundrycad/waffle-iron/project"
	"github.com/foundrycad/waffle-iron/sig"
	"github.com/foundrycad/waffle-iron/sketch"
)

func xyPlaneRef() geomref.GeomRef {
	return geomref.GeomRef{
		Kind:   geomref.KindFace,
		Anchor: geomref.Anchor{Kind: geomref.AnchorDatumPlane, DatumPlane: "XY"},
		Policy: geomref.Strict,
	}
}

func buildSampleTree() *feature.FeatureTree {
	tree := feature.NewTree()
	tree.AddFeature("sketch1", "Sketch1", feature.SketchOp{
		Plane: xyPlaneRef(),
		Entities: []sketch.Entity{
			sketch.Point{PointID: 0, X: -10, Y: -10},
			sketch.Point{PointID: 1, X: 10, Y: -10},
			sketch.Line{LineID: 10, Start: 0, End: 1},
		},
		Constraints: []sketch.Constraint{
			sketch.Horizontal{Line: 10},
			sketch.Distance{A: 0, B: 1, Value: 20},
		},
	})
	tree.AddFeature("extrude1", "Extrude1", feature.ExtrudeOp{
		Profile: geomref.GeomRef{
			Kind:     geomref.KindFace,
			Anchor:   geomref.Anchor{Kind: geomref.AnchorFeature, FeatureID: "sketch1"},
			Selector: geomref.Selector{Kind: geomref.SelectorRole, Role: ops.SemanticRole{Kind: ops.ProfileFace}},
			Policy:   geomref.Strict,
		},
		Direction: sig.Vec3{Z: 1},
		Depth:     15,
	})
	one := 2
	tree.SetRollbackIndex(&one)
	return tree
}

var _ = Describe("Marshal/Unmarshal", func() {
	It("round-trips a feature tree through the persisted format", func() {
		tree := buildSampleTree()

		data, err := project.Marshal(tree)
		Expect(err).NotTo(HaveOccurred())

		var envelope map[string]interface{}
		Expect(json.Unmarshal(data, &envelope)).To(Succeed())
		Expect(envelope["format"]).To(Equal("waffle-iron"))
		Expect(envelope["schema"]).To(Equal(float64(1)))

		loaded, err := project.Unmarshal(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Features).To(HaveLen(2))
		Expect(loaded.Features[0].ID).To(Equal("sketch1"))
		Expect(loaded.Features[1].ID).To(Equal("extrude1"))
		Expect(*loaded.ActiveIndex).To(Equal(2))

		sketchOp, ok := loaded.Features[0].Operation.(feature.SketchOp)
		Expect(ok).To(BeTrue())
		Expect(sketchOp.Entities).To(HaveLen(3))
		Expect(sketchOp.Constraints).To(HaveLen(2))
		Expect(sketchOp.Entities[0]).To(Equal(sketch.Point{PointID: 0, X: -10, Y: -10}))
		Expect(sketchOp.Constraints[1]).To(Equal(sketch.Distance{A: 0, B: 1, Value: 20}))

		extrudeOp, ok := loaded.Features[1].Operation.(feature.ExtrudeOp)
		Expect(ok).To(BeTrue())
		Expect(extrudeOp.Depth).To(Equal(15.0))
		Expect(extrudeOp.Profile.Anchor.FeatureID).To(Equal("sketch1"))
	})

	It("leaves no cache entries after a load", func() {
		tree := buildSampleTree()
		data, err := project.Marshal(tree)
		Expect(err).NotTo(HaveOccurred())

		loaded, err := project.Unmarshal(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Cache).To(BeEmpty())
	})

	It("rejects an unrecognized format tag", func() {
		_, err := project.Unmarshal([]byte(`{"format":"something-else","schema":1,"features":{"features":[],"active_index":null}}`))
		Expect(err).To(HaveOccurred())
	})

	It("rejects an unsupported schema version", func() {
		_, err := project.Unmarshal([]byte(`{"format":"waffle-iron","schema":99,"features":{"features":[],"active_index":null}}`))
		Expect(err).To(HaveOccurred())
	})

	It("rejects malformed JSON", func() {
		_, err := project.Unmarshal([]byte(`not json`))
		Expect(err).To(HaveOccurred())
	})
})
