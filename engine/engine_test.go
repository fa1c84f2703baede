package engine_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/foundrycad/waffle-iron/diag"
	"github.com/foundrycad/waffle-iron/engine"
	"github.com/foundrycad/waffle-iron/feature"
	"github.com/foundrycad/waffle-iron/geomref"
	"github.com/foundrycad/waffle-iron/kernel/memkernel"
	"github.com/foundrycad/waffle-iron/ops"
	"github.com/foundrycad/waffle-iron/protocol"
	"github.com/foundrycad/waffle-iron/sig"
	"github.com/foundrycad/waffle-iron/sketch"
	"github.com/foundrycad/waffle-iron/sketch/solve"
)

func rectangleEntities() []sketch.Entity {
	return []sketch.Entity{
		sketch.Point{PointID: 0, X: -80, Y: -60},
		sketch.Point{PointID: 1, X: 80, Y: -60},
		sketch.Point{PointID: 2, X: 80, Y: 60},
		sketch.Point{PointID: 3, X: -80, Y: 60},
		sketch.Line{LineID: 10, Start: 0, End: 1},
		sketch.Line{LineID: 11, Start: 1, End: 2},
		sketch.Line{LineID: 12, Start: 2, End: 3},
		sketch.Line{LineID: 13, Start: 3, End: 0},
	}
}

func xyPlaneRef() geomref.GeomRef {
	return geomref.GeomRef{
		Kind:   geomref.KindFace,
		Anchor: geomref.Anchor{Kind: geomref.AnchorDatumPlane, DatumPlane: "XY"},
		Policy: geomref.Strict,
	}
}

func profileRef(sketchFeatureID string) geomref.GeomRef {
	return geomref.GeomRef{
		Kind:     geomref.KindFace,
		Anchor:   geomref.Anchor{Kind: geomref.AnchorFeature, FeatureID: sketchFeatureID},
		Selector: geomref.Selector{Kind: geomref.SelectorRole, Role: ops.SemanticRole{Kind: ops.ProfileFace}},
		Policy:   geomref.Strict,
	}
}

// rectangleEntitiesSized is rectangleEntities generalized to an arbitrary
// half-width/half-height, so scenario 3 can re-sketch a bigger rectangle
// over the same point/line ids.
func rectangleEntitiesSized(halfWidth, halfHeight float64) []sketch.Entity {
	return []sketch.Entity{
		sketch.Point{PointID: 0, X: -halfWidth, Y: -halfHeight},
		sketch.Point{PointID: 1, X: halfWidth, Y: -halfHeight},
		sketch.Point{PointID: 2, X: halfWidth, Y: halfHeight},
		sketch.Point{PointID: 3, X: -halfWidth, Y: halfHeight},
		sketch.Line{LineID: 10, Start: 0, End: 1},
		sketch.Line{LineID: 11, Start: 1, End: 2},
		sketch.Line{LineID: 12, Start: 2, End: 3},
		sketch.Line{LineID: 13, Start: 3, End: 0},
	}
}

// circlePolygonEntities approximates a circle as a regular polygon of
// lines, the same way rectangleEntities bounds a profile with explicit
// points and lines rather than a lone Circle entity. memkernel's
// RegisterProfileFace needs at least 3 loop points, which a standalone
// Circle's one-point profile can never satisfy.
func circlePolygonEntities(radius float64, segments int) []sketch.Entity {
	entities := make([]sketch.Entity, 0, segments*2)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		entities = append(entities, sketch.Point{
			PointID: sketch.EntityID(i),
			X:       radius * math.Cos(theta),
			Y:       radius * math.Sin(theta),
		})
	}
	for i := 0; i < segments; i++ {
		entities = append(entities, sketch.Line{
			LineID: sketch.EntityID(100 + i),
			Start:  sketch.EntityID(i),
			End:    sketch.EntityID((i + 1) % segments),
		})
	}
	return entities
}

// topFaceRef names the EndCapPositive face of the given extrude feature,
// the GeomRef a shell would emit after the user clicks that face in the
// viewport.
func topFaceRef(extrudeFeatureID string) geomref.GeomRef {
	return geomref.GeomRef{
		Kind:     geomref.KindFace,
		Anchor:   geomref.Anchor{Kind: geomref.AnchorFeature, FeatureID: extrudeFeatureID},
		Selector: geomref.Selector{Kind: geomref.SelectorRole, Role: ops.SemanticRole{Kind: ops.EndCapPositive}},
		Policy:   geomref.Strict,
	}
}

func diagnosticsFor(ds []diag.Diagnostic, featureID string) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range ds {
		if d.FeatureID == featureID {
			out = append(out, d)
		}
	}
	return out
}

// newTestEngine builds an Engine wired to a fresh in-memory kernel, with
// deterministic feature ids so assertions don't depend on goroutine
// timing.
func newTestEngine(ctx context.Context) *engine.Engine {
	k := memkernel.NewBuilder().Build()
	seq := 0
	return engine.NewBuilder().
		WithKernel(k).
		WithIntrospect(k).
		WithMesher(k).
		WithIDGenerator(func(prefix string) string {
			seq++
			return prefix + string(rune('0'+seq))
		}).
		Build(ctx)
}

func lastUpdate(events []protocol.Event) (protocol.ModelUpdated, bool) {
	for i := len(events) - 1; i >= 0; i-- {
		if mu, ok := events[i].(protocol.ModelUpdated); ok {
			return mu, true
		}
	}
	return protocol.ModelUpdated{}, false
}

var _ = Describe("Engine", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("builds a box from a sketched rectangle (scenario 1)", func() {
		eng := newTestEngine(ctx)

		events, err := eng.Submit(ctx, protocol.BeginSketch{Plane: xyPlaneRef()})
		Expect(err).NotTo(HaveOccurred())
		Expect(events).To(BeEmpty())

		for _, ent := range rectangleEntities() {
			events, err = eng.Submit(ctx, protocol.AddSketchEntity{Entity: ent})
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(BeEmpty())
		}

		events, err = eng.Submit(ctx, protocol.FinishSketch{})
		Expect(err).NotTo(HaveOccurred())
		update, ok := lastUpdate(events)
		Expect(ok).To(BeTrue())
		Expect(update.Features).To(HaveLen(1))
		sketchID := update.Features[0].ID

		events, err = eng.Submit(ctx, protocol.AddFeature{
			FeatureID: "extrude1",
			Name:      "Extrude1",
			Operation: feature.ExtrudeOp{
				Profile:   profileRef(sketchID),
				Direction: sig.Vec3{Z: 1},
				Depth:     10,
			},
		})
		Expect(err).NotTo(HaveOccurred())
		update, ok = lastUpdate(events)
		Expect(ok).To(BeTrue())
		Expect(update.Features).To(HaveLen(2))
		Expect(update.Meshes).To(HaveLen(1))
		Expect(len(update.Meshes[0].FaceRanges)).To(BeNumerically(">=", 6))
	})

	It("suppresses and unsuppresses a feature back to the unsuppressed mesh", func() {
		eng := newTestEngine(ctx)

		_, err := eng.Submit(ctx, protocol.AddFeature{
			FeatureID: "sketch1",
			Name:      "Sketch1",
			Operation: feature.SketchOp{Plane: xyPlaneRef(), Entities: rectangleEntities()},
		})
		Expect(err).NotTo(HaveOccurred())

		events, err := eng.Submit(ctx, protocol.AddFeature{
			FeatureID: "extrude1",
			Name:      "Extrude1",
			Operation: feature.ExtrudeOp{Profile: profileRef("sketch1"), Direction: sig.Vec3{Z: 1}, Depth: 10},
		})
		Expect(err).NotTo(HaveOccurred())
		baseline, ok := lastUpdate(events)
		Expect(ok).To(BeTrue())
		baselineVerts := len(baseline.Meshes[0].Vertices)

		events, err = eng.Submit(ctx, protocol.SuppressFeature{FeatureID: "extrude1", Suppressed: true})
		Expect(err).NotTo(HaveOccurred())
		suppressed, ok := lastUpdate(events)
		Expect(ok).To(BeTrue())
		Expect(suppressed.Meshes).To(BeEmpty())

		events, err = eng.Submit(ctx, protocol.SuppressFeature{FeatureID: "extrude1", Suppressed: false})
		Expect(err).NotTo(HaveOccurred())
		restored, ok := lastUpdate(events)
		Expect(ok).To(BeTrue())
		Expect(len(restored.Meshes[0].Vertices)).To(Equal(baselineVerts))
	})

	It("rolls back to only the sketch feature contributing to the tip", func() {
		eng := newTestEngine(ctx)

		_, err := eng.Submit(ctx, protocol.AddFeature{
			FeatureID: "sketch1",
			Name:      "Sketch1",
			Operation: feature.SketchOp{Plane: xyPlaneRef(), Entities: rectangleEntities()},
		})
		Expect(err).NotTo(HaveOccurred())

		_, err = eng.Submit(ctx, protocol.AddFeature{
			FeatureID: "extrude1",
			Name:      "Extrude1",
			Operation: feature.ExtrudeOp{Profile: profileRef("sketch1"), Direction: sig.Vec3{Z: 1}, Depth: 10},
		})
		Expect(err).NotTo(HaveOccurred())

		one := 1
		events, err := eng.Submit(ctx, protocol.SetRollbackIndex{Index: &one})
		Expect(err).NotTo(HaveOccurred())
		update, ok := lastUpdate(events)
		Expect(ok).To(BeTrue())
		Expect(update.Meshes).To(BeEmpty())
	})

	It("round-trips a save/load through project.Marshal/Unmarshal", func() {
		eng := newTestEngine(ctx)

		_, err := eng.Submit(ctx, protocol.AddFeature{
			FeatureID: "sketch1",
			Name:      "Sketch1",
			Operation: feature.SketchOp{Plane: xyPlaneRef(), Entities: rectangleEntities()},
		})
		Expect(err).NotTo(HaveOccurred())
		events, err := eng.Submit(ctx, protocol.AddFeature{
			FeatureID: "extrude1",
			Name:      "Extrude1",
			Operation: feature.ExtrudeOp{Profile: profileRef("sketch1"), Direction: sig.Vec3{Z: 1}, Depth: 10},
		})
		Expect(err).NotTo(HaveOccurred())
		before, ok := lastUpdate(events)
		Expect(ok).To(BeTrue())

		events, err = eng.Submit(ctx, protocol.SaveProject{})
		Expect(err).NotTo(HaveOccurred())
		Expect(events).To(HaveLen(1))
		saved, ok := events[0].(protocol.SaveReady)
		Expect(ok).To(BeTrue())

		fresh := newTestEngine(ctx)
		events, err = fresh.Submit(ctx, protocol.LoadProject{Data: saved.JSONData})
		Expect(err).NotTo(HaveOccurred())
		after, ok := lastUpdate(events)
		Expect(ok).To(BeTrue())

		Expect(len(after.Meshes[0].Vertices)).To(Equal(len(before.Meshes[0].Vertices)))
	})

	It("undoes and redoes an AddFeature back to the post-add state", func() {
		eng := newTestEngine(ctx)

		events, err := eng.Submit(ctx, protocol.AddFeature{
			FeatureID: "sketch1",
			Name:      "Sketch1",
			Operation: feature.SketchOp{Plane: xyPlaneRef(), Entities: rectangleEntities()},
		})
		Expect(err).NotTo(HaveOccurred())
		afterAdd, _ := lastUpdate(events)

		events, err = eng.Submit(ctx, protocol.Undo{})
		Expect(err).NotTo(HaveOccurred())
		afterUndo, ok := lastUpdate(events)
		Expect(ok).To(BeTrue())
		Expect(afterUndo.Features).To(BeEmpty())

		events, err = eng.Submit(ctx, protocol.Redo{})
		Expect(err).NotTo(HaveOccurred())
		afterRedo, ok := lastUpdate(events)
		Expect(ok).To(BeTrue())
		Expect(afterRedo.Features).To(Equal(afterAdd.Features))
	})

	It("leaves positions unchanged when SolveSketchLocal does not land Ok", func() {
		eng := newTestEngine(ctx)

		original := map[sketch.EntityID]sketch.Vec2{0: {X: 1, Y: 1}, 1: {X: 2, Y: 1}}
		events, err := eng.Submit(ctx, protocol.SolveSketchLocal{
			Entities: []sketch.Entity{
				sketch.Point{PointID: 0, X: 1, Y: 1},
				sketch.Point{PointID: 1, X: 2, Y: 1},
			},
			// Contradictory: Coincident forces 0==1, Distance forces them 50 apart.
			Constraints: []sketch.Constraint{
				sketch.Coincident{A: 0, B: 1},
				sketch.Distance{A: 0, B: 1, Value: 50},
			},
			Positions: original,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(events).To(HaveLen(1))
		solved, ok := events[0].(protocol.SketchSolved)
		Expect(ok).To(BeTrue())
		if solved.Status != solve.Ok {
			Expect(solved.Positions).To(Equal(original))
		}
	})

	It("rejects AddSketchEntity without an open BeginSketch", func() {
		eng := newTestEngine(ctx)
		events, err := eng.Submit(ctx, protocol.AddSketchEntity{Entity: sketch.Point{PointID: 0}})
		Expect(err).NotTo(HaveOccurred())
		Expect(events).To(HaveLen(1))
		_, ok := events[0].(protocol.Error)
		Expect(ok).To(BeTrue())
	})

	It("cuts a hole through the top face of an extruded box (scenario 2)", func() {
		eng := newTestEngine(ctx)

		_, err := eng.Submit(ctx, protocol.AddFeature{
			FeatureID: "rectSketch",
			Name:      "RectSketch",
			Operation: feature.SketchOp{Plane: xyPlaneRef(), Entities: rectangleEntities()},
		})
		Expect(err).NotTo(HaveOccurred())

		events, err := eng.Submit(ctx, protocol.AddFeature{
			FeatureID: "boxExtrude",
			Name:      "BoxExtrude",
			Operation: feature.ExtrudeOp{Profile: profileRef("rectSketch"), Direction: sig.Vec3{Z: 1}, Depth: 10},
		})
		Expect(err).NotTo(HaveOccurred())
		baseline, ok := lastUpdate(events)
		Expect(ok).To(BeTrue())
		baselineVerts := len(baseline.Meshes[0].Vertices)

		_, err = eng.Submit(ctx, protocol.AddFeature{
			FeatureID: "holeSketch",
			Name:      "HoleSketch",
			Operation: feature.SketchOp{Plane: topFaceRef("boxExtrude"), Entities: circlePolygonEntities(20, 12)},
		})
		Expect(err).NotTo(HaveOccurred())

		events, err = eng.Submit(ctx, protocol.AddFeature{
			FeatureID: "cut1",
			Name:      "Cut1",
			Operation: feature.ExtrudeOp{
				Profile:            profileRef("holeSketch"),
				Direction:          sig.Vec3{Z: -1},
				Depth:              10,
				Cut:                true,
				CutTargetFeatureID: "boxExtrude",
			},
		})
		Expect(err).NotTo(HaveOccurred())
		update, ok := lastUpdate(events)
		Expect(ok).To(BeTrue())
		Expect(update.Features).To(HaveLen(4))
		Expect(diagnosticsFor(update.Diagnostics, "cut1")).To(BeEmpty())
		Expect(update.Meshes).To(HaveLen(1))
		// subtract lines the cavity with the cut tool's faces rather than
		// removing geometry, so the cut mesh carries strictly more
		// vertices than the uncut box.
		Expect(len(update.Meshes[0].Vertices)).To(BeNumerically(">", baselineVerts))
	})

	It("still resolves the cut's face reference after the rectangle sketch is enlarged (scenario 3)", func() {
		eng := newTestEngine(ctx)

		_, err := eng.Submit(ctx, protocol.AddFeature{
			FeatureID: "rectSketch",
			Name:      "RectSketch",
			Operation: feature.SketchOp{Plane: xyPlaneRef(), Entities: rectangleEntities()},
		})
		Expect(err).NotTo(HaveOccurred())

		_, err = eng.Submit(ctx, protocol.AddFeature{
			FeatureID: "boxExtrude",
			Name:      "BoxExtrude",
			Operation: feature.ExtrudeOp{Profile: profileRef("rectSketch"), Direction: sig.Vec3{Z: 1}, Depth: 10},
		})
		Expect(err).NotTo(HaveOccurred())

		_, err = eng.Submit(ctx, protocol.AddFeature{
			FeatureID: "holeSketch",
			Name:      "HoleSketch",
			Operation: feature.SketchOp{Plane: topFaceRef("boxExtrude"), Entities: circlePolygonEntities(20, 12)},
		})
		Expect(err).NotTo(HaveOccurred())

		events, err := eng.Submit(ctx, protocol.AddFeature{
			FeatureID: "cut1",
			Name:      "Cut1",
			Operation: feature.ExtrudeOp{
				Profile:            profileRef("holeSketch"),
				Direction:          sig.Vec3{Z: -1},
				Depth:              10,
				Cut:                true,
				CutTargetFeatureID: "boxExtrude",
			},
		})
		Expect(err).NotTo(HaveOccurred())
		before, ok := lastUpdate(events)
		Expect(ok).To(BeTrue())
		Expect(diagnosticsFor(before.Diagnostics, "cut1")).To(BeEmpty())

		// Enlarging the rectangle forces the box's faces to rebuild under
		// fresh kernel ids; the hole-sketch's plane and the cut's profile
		// are both anchored by role (EndCapPositive, ProfileFace), not by
		// a specific kernel id, so they must still resolve after it.
		events, err = eng.Submit(ctx, protocol.EditFeature{
			FeatureID: "rectSketch",
			Operation: feature.SketchOp{Plane: xyPlaneRef(), Entities: rectangleEntitiesSized(100, 80)},
		})
		Expect(err).NotTo(HaveOccurred())
		after, ok := lastUpdate(events)
		Expect(ok).To(BeTrue())
		Expect(after.Features).To(HaveLen(4))
		Expect(diagnosticsFor(after.Diagnostics, "holeSketch")).To(BeEmpty())
		Expect(diagnosticsFor(after.Diagnostics, "cut1")).To(BeEmpty())
		Expect(after.Meshes).To(HaveLen(1))
	})
})
