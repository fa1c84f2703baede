package feature_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/foundrycad/waffle-iron/diag"
	"github.com/foundrycad/waffle-iron/feature"
	"github.com/foundrycad/waffle-iron/geomref"
	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/kernel/memkernel"
	"github.com/foundrycad/waffle-iron/ops"
	"github.com/foundrycad/waffle-iron/sig"
	"github.com/foundrycad/waffle-iron/sketch"
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

func buildRectangleTree() *feature.FeatureTree {
	tree := feature.NewTree()
	tree.AddFeature("sketch1", "Sketch1", feature.SketchOp{
		Plane:    xyPlaneRef(),
		Entities: rectangleEntities(),
	})
	tree.AddFeature("extrude1", "Extrude1", feature.ExtrudeOp{
		Profile:   profileRef("sketch1"),
		Direction: sig.Vec3{Z: 1},
		Depth:     10,
	})
	return tree
}

var _ = Describe("RebuildEngine.Rebuild", func() {
	var (
		ctx context.Context
		k   *memkernel.Kernel
	)

	BeforeEach(func() {
		ctx = context.Background()
		k = memkernel.NewBuilder().Build()
	})

	It("builds a sketch-then-extrude tree with no diagnostics", func() {
		tree := buildRectangleTree()
		engine := &feature.RebuildEngine{Kernel: k, Introspect: k}

		result, err := engine.Rebuild(ctx, tree)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Diagnostics).To(BeEmpty())

		solid, ok := tree.TipSolid()
		Expect(ok).To(BeTrue())
		Expect(solid).NotTo(BeEmpty())

		extrudeCache := tree.Cache["extrude1"]
		var sides int
		for _, r := range extrudeCache.OpResult.Roles {
			if r.Role.Kind == ops.SideFace {
				sides++
			}
		}
		Expect(sides).To(Equal(4))
	})

	It("reuses every feature's cache when nothing changed", func() {
		tree := buildRectangleTree()
		engine := &feature.RebuildEngine{Kernel: k, Introspect: k}

		_, err := engine.Rebuild(ctx, tree)
		Expect(err).NotTo(HaveOccurred())
		firstSolid, _ := tree.TipSolid()

		result, err := engine.Rebuild(ctx, tree)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.FirstDirty).To(Equal(len(tree.Features)))

		secondSolid, _ := tree.TipSolid()
		Expect(secondSolid).To(Equal(firstSolid))
	})

	It("only re-executes from the edited feature onward", func() {
		tree := buildRectangleTree()
		engine := &feature.RebuildEngine{Kernel: k, Introspect: k}
		_, err := engine.Rebuild(ctx, tree)
		Expect(err).NotTo(HaveOccurred())

		Expect(tree.EditFeature("extrude1", feature.ExtrudeOp{
			Profile:   profileRef("sketch1"),
			Direction: sig.Vec3{Z: 1},
			Depth:     25,
		})).To(Succeed())

		result, err := engine.Rebuild(ctx, tree)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.FirstDirty).To(Equal(1))
		Expect(result.Diagnostics).To(BeEmpty())
	})

	It("clears the cache and skips a suppressed feature", func() {
		tree := buildRectangleTree()
		engine := &feature.RebuildEngine{Kernel: k, Introspect: k}
		_, err := engine.Rebuild(ctx, tree)
		Expect(err).NotTo(HaveOccurred())

		Expect(tree.SuppressFeature("extrude1", true)).To(Succeed())
		result, err := engine.Rebuild(ctx, tree)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Diagnostics).To(BeEmpty())

		_, cached := tree.Cache["extrude1"]
		Expect(cached).To(BeFalse())
	})

	It("records a diagnostic and keeps going when a GeomRef cannot resolve", func() {
		tree := buildRectangleTree()
		broken := tree.Features[1].Operation.(feature.ExtrudeOp)
		broken.Profile = geomref.GeomRef{
			Kind:     geomref.KindFace,
			Anchor:   geomref.Anchor{Kind: geomref.AnchorFeature, FeatureID: "sketch1"},
			Selector: geomref.Selector{Kind: geomref.SelectorRole, Role: ops.SemanticRole{Kind: ops.PatternInstance}},
			Policy:   geomref.Strict,
		}
		Expect(tree.EditFeature("extrude1", broken)).To(Succeed())

		engine := &feature.RebuildEngine{Kernel: k, Introspect: k}
		result, err := engine.Rebuild(ctx, tree)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Diagnostics).To(HaveLen(1))
		Expect(result.Diagnostics[0].Severity).To(Equal(diag.SeverityError))
		Expect(result.Diagnostics[0].FeatureID).To(Equal("extrude1"))

		_, cached := tree.Cache["extrude1"]
		Expect(cached).To(BeFalse())
	})

	It("stops at the rollback bar", func() {
		tree := buildRectangleTree()
		one := 1
		tree.SetRollbackIndex(&one)

		engine := &feature.RebuildEngine{Kernel: k, Introspect: k}
		_, err := engine.Rebuild(ctx, tree)
		Expect(err).NotTo(HaveOccurred())

		_, sketchCached := tree.Cache["sketch1"]
		_, extrudeCached := tree.Cache["extrude1"]
		Expect(sketchCached).To(BeTrue())
		Expect(extrudeCached).To(BeFalse())
	})
})

var _ = Describe("History", func() {
	It("undoes and redoes a feature addition", func() {
		tree := feature.NewTree()
		tree.AddFeature("sketch1", "Sketch1", feature.SketchOp{Plane: xyPlaneRef(), Entities: rectangleEntities()})

		var history feature.History
		history.Record(tree)

		tree.AddFeature("extrude1", "Extrude1", feature.ExtrudeOp{
			Profile:   profileRef("sketch1"),
			Direction: sig.Vec3{Z: 1},
			Depth:     10,
		})
		Expect(tree.Features).To(HaveLen(2))

		Expect(history.Undo(tree)).To(BeTrue())
		Expect(tree.Features).To(HaveLen(1))

		Expect(history.Redo(tree)).To(BeTrue())
		Expect(tree.Features).To(HaveLen(2))
		Expect(tree.Features[1].ID).To(Equal("extrude1"))
	})

	It("reports false when there is nothing to undo or redo", func() {
		tree := feature.NewTree()
		var history feature.History
		Expect(history.Undo(tree)).To(BeFalse())
		Expect(history.Redo(tree)).To(BeFalse())
	})
})

var _ = Describe("FeatureTree mutation surface", func() {
	It("rejects operations on an unknown feature id", func() {
		tree := feature.NewTree()
		err := tree.RenameFeature("missing", "X")
		Expect(err).To(HaveOccurred())
		var rebuildErr *diag.RebuildError
		Expect(err).To(BeAssignableToTypeOf(rebuildErr))
	})

	It("shifts the rollback bar left when a feature before it is deleted", func() {
		tree := feature.NewTree()
		tree.AddFeature("a", "A", feature.SketchOp{Plane: xyPlaneRef()})
		tree.AddFeature("b", "B", feature.SketchOp{Plane: xyPlaneRef()})
		two := 2
		tree.SetRollbackIndex(&two)

		Expect(tree.DeleteFeature("a")).To(Succeed())
		Expect(*tree.ActiveIndex).To(Equal(1))
	})
})

var _ = Describe("cycle detection", func() {
	It("rejects AddFeature when the new feature references itself", func() {
		tree := feature.NewTree()
		_, err := tree.AddFeature("extrude1", "Extrude1", feature.ExtrudeOp{
			Cut:                true,
			CutTargetFeatureID: "extrude1",
		})
		Expect(err).To(HaveOccurred())
		var rebuildErr *diag.RebuildError
		Expect(err).To(BeAssignableToTypeOf(rebuildErr))
		Expect(err.(*diag.RebuildError).Kind).To(Equal(diag.CycleDetected))
		Expect(tree.Features).To(BeEmpty())
	})

	It("rejects EditFeature when it would close a loop through an existing dependent", func() {
		tree := feature.NewTree()
		_, err := tree.AddFeature("sketch1", "Sketch1", feature.SketchOp{Plane: xyPlaneRef()})
		Expect(err).NotTo(HaveOccurred())
		_, err = tree.AddFeature("extrude1", "Extrude1", feature.ExtrudeOp{
			Profile:   profileRef("sketch1"),
			Direction: sig.Vec3{Z: 1},
			Depth:     10,
		})
		Expect(err).NotTo(HaveOccurred())

		// sketch1 on a face anchored back on extrude1, which itself depends on sketch1.
		err = tree.EditFeature("sketch1", feature.SketchOp{
			Plane: geomref.GeomRef{
				Kind:   geomref.KindFace,
				Anchor: geomref.Anchor{Kind: geomref.AnchorFeature, FeatureID: "extrude1"},
				Policy: geomref.Strict,
			},
		})
		Expect(err).To(HaveOccurred())
		Expect(err.(*diag.RebuildError).Kind).To(Equal(diag.CycleDetected))

		// The tree is left untouched by the rejected edit.
		sketch1 := tree.Features[0].Operation.(feature.SketchOp)
		Expect(sketch1.Plane.Anchor.Kind).To(Equal(geomref.AnchorDatumPlane))
	})

	It("allows an edit that only changes literal parameters, not the reference graph", func() {
		tree := buildRectangleTree()
		err := tree.EditFeature("extrude1", feature.ExtrudeOp{
			Profile:   profileRef("sketch1"),
			Direction: sig.Vec3{Z: 1},
			Depth:     99,
		})
		Expect(err).NotTo(HaveOccurred())
	})
})

var _ = Describe("kernel.SolidHandle plumbing", func() {
	It("is produced by a boolean feature referencing two upstream solids", func() {
		ctx := context.Background()
		k := memkernel.NewBuilder().Build()
		tree := feature.NewTree()

		tree.AddFeature("sketch1", "Sketch1", feature.SketchOp{Plane: xyPlaneRef(), Entities: rectangleEntities()})
		tree.AddFeature("box", "Box", feature.ExtrudeOp{Profile: profileRef("sketch1"), Direction: sig.Vec3{Z: 1}, Depth: 20})

		tree.AddFeature("sketch2", "Sketch2", feature.SketchOp{Plane: xyPlaneRef(), Entities: []sketch.Entity{
			sketch.Point{PointID: 0, X: -10, Y: -10},
			sketch.Point{PointID: 1, X: 10, Y: -10},
			sketch.Point{PointID: 2, X: 10, Y: 10},
			sketch.Point{PointID: 3, X: -10, Y: 10},
			sketch.Line{LineID: 10, Start: 0, End: 1},
			sketch.Line{LineID: 11, Start: 1, End: 2},
			sketch.Line{LineID: 12, Start: 2, End: 3},
			sketch.Line{LineID: 13, Start: 3, End: 0},
		}})
		tree.AddFeature("pocket", "Pocket", feature.ExtrudeOp{Profile: profileRef("sketch2"), Direction: sig.Vec3{Z: 1}, Depth: 20})

		tree.AddFeature("cut", "Cut", feature.BooleanOp{Kind: kernel.Subtract, BodyA: "box", BodyB: "pocket"})

		engine := &feature.RebuildEngine{Kernel: k, Introspect: k}
		result, err := engine.Rebuild(ctx, tree)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Diagnostics).To(BeEmpty())

		solid, ok := tree.TipSolid()
		Expect(ok).To(BeTrue())
		Expect(solid).To(Equal(tree.Cache["cut"].OpResult.Outputs[ops.Main]))
	})
})
