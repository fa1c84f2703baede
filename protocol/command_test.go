package protocol_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/foundrycad/waffle-iron/feature"
	"github.com/foundrycad/waffle-iron/geomref"
	"github.com/foundrycad/waffle-iron/protocol"
	"github.com/foundrycad/waffle-iron/sig"
	"github.com/foundrycad/waffle-iron/sketch"
)

var _ = Describe("Command encode/decode", func() {
	It("round-trips AddFeature with a Sketch operation", func() {
		cmd := protocol.AddFeature{
			FeatureID: "sketch1",
			Name:      "Sketch1",
			Operation: feature.SketchOp{
				Plane: geomref.GeomRef{
					Kind:   geomref.KindFace,
					Anchor: geomref.Anchor{Kind: geomref.AnchorDatumPlane, DatumPlane: "XY"},
				},
				Entities: []sketch.Entity{
					sketch.Point{PointID: 0, X: 1, Y: 2},
				},
			},
		}

		data, err := protocol.EncodeCommand(cmd)
		Expect(err).NotTo(HaveOccurred())

		decoded, err := protocol.DecodeCommand(data)
		Expect(err).NotTo(HaveOccurred())

		got, ok := decoded.(protocol.AddFeature)
		Expect(ok).To(BeTrue())
		Expect(got.FeatureID).To(Equal("sketch1"))
		sketchOp, ok := got.Operation.(feature.SketchOp)
		Expect(ok).To(BeTrue())
		Expect(sketchOp.Entities).To(Equal(cmd.Operation.(feature.SketchOp).Entities))
	})

	It("round-trips EditFeature with an Extrude operation", func() {
		cmd := protocol.EditFeature{
			FeatureID: "extrude1",
			Operation: feature.ExtrudeOp{Depth: 12, Direction: sig.Vec3{Z: 1}},
		}
		data, err := protocol.EncodeCommand(cmd)
		Expect(err).NotTo(HaveOccurred())

		decoded, err := protocol.DecodeCommand(data)
		Expect(err).NotTo(HaveOccurred())
		got, ok := decoded.(protocol.EditFeature)
		Expect(ok).To(BeTrue())
		Expect(got.Operation).To(Equal(cmd.Operation))
	})

	It("round-trips AddSketchEntity and AddConstraint", func() {
		entCmd := protocol.AddSketchEntity{Entity: sketch.Circle{CircleID: 3, Center: 1, Radius: 5}}
		data, err := protocol.EncodeCommand(entCmd)
		Expect(err).NotTo(HaveOccurred())
		decoded, err := protocol.DecodeCommand(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(Equal(entCmd))

		conCmd := protocol.AddConstraint{Constraint: sketch.Radius{Circle: 3, Value: 5}}
		data, err = protocol.EncodeCommand(conCmd)
		Expect(err).NotTo(HaveOccurred())
		decoded, err = protocol.DecodeCommand(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(Equal(conCmd))
	})

	It("round-trips parameterless commands", func() {
		for _, cmd := range []protocol.Command{protocol.Undo{}, protocol.Redo{}, protocol.SaveProject{}, protocol.ExportStl{}} {
			data, err := protocol.EncodeCommand(cmd)
			Expect(err).NotTo(HaveOccurred())
			decoded, err := protocol.DecodeCommand(data)
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded).To(Equal(cmd))
		}
	})

	It("round-trips SetRollbackIndex with a nil index", func() {
		cmd := protocol.SetRollbackIndex{Index: nil}
		data, err := protocol.EncodeCommand(cmd)
		Expect(err).NotTo(HaveOccurred())
		decoded, err := protocol.DecodeCommand(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(Equal(cmd))
	})

	It("round-trips SolveSketchLocal", func() {
		cmd := protocol.SolveSketchLocal{
			Entities:    []sketch.Entity{sketch.Point{PointID: 0, X: 1, Y: 1}},
			Constraints: []sketch.Constraint{sketch.Horizontal{Line: 0}},
			Positions:   map[sketch.EntityID]sketch.Vec2{0: {X: 1, Y: 1}},
		}
		data, err := protocol.EncodeCommand(cmd)
		Expect(err).NotTo(HaveOccurred())
		decoded, err := protocol.DecodeCommand(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(Equal(cmd))
	})

	It("rejects an unrecognized command type", func() {
		_, err := protocol.DecodeCommand([]byte(`{"type":"NotARealCommand"}`))
		Expect(err).To(HaveOccurred())
	})
})
