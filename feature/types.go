// Package feature implements the feature tree and its rebuild engine: the
// ordered list of declarative modeling steps, rollback/suppress/reorder,
// and the incremental rebuild that turns edited parameters back into a
// solid by replaying only what fingerprinting says actually changed.
package feature

import (
	"github.com/foundrycad/waffle-iron/geomref"
	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/ops"
	"github.com/foundrycad/waffle-iron/sig"
	"github.com/foundrycad/waffle-iron/sketch"
)

// Operation is the closed set of parameter shapes a Feature can carry:
// one per modeling step, each a staging area of resolved-later GeomRefs
// plus the literal parameters its corresponding ops.*Params needs. The
// unexported marker keeps it closed the same way ops.Operation is.
type Operation interface {
	featureOpKind()
}

// SketchOp builds a sketch's entity/constraint graph against an anchored
// workplane; rebuild solves it and registers its first closed profile as
// a standalone kernel face tagged ops.ProfileFace.
type SketchOp struct {
	Plane       geomref.GeomRef
	Entities    []sketch.Entity
	Constraints []sketch.Constraint
}

func (SketchOp) featureOpKind() {}

// ExtrudeOp mirrors ops.ExtrudeParams, but its face is a GeomRef (resolved
// against the profile feature's cached roles) and its cut target, when
// present, is an upstream feature's solid rather than a selected entity.
type ExtrudeOp struct {
	Profile            geomref.GeomRef
	Direction          sig.Vec3
	Depth              float64
	Symmetric          bool
	Cut                bool
	CutTargetFeatureID string
}

func (ExtrudeOp) featureOpKind() {}

// RevolveOp mirrors ops.RevolveParams with a GeomRef profile face.
type RevolveOp struct {
	Profile    geomref.GeomRef
	AxisOrigin sig.Vec3
	AxisDir    sig.Vec3
	AngleRad   float64
}

func (RevolveOp) featureOpKind() {}

// FilletOp fillets a set of edges, each named by a GeomRef, on an
// upstream feature's solid.
type FilletOp struct {
	SolidFeatureID string
	Edges          []geomref.GeomRef
	Radius         float64
}

func (FilletOp) featureOpKind() {}

// ChamferOp mirrors FilletOp for the chamfer operation.
type ChamferOp struct {
	SolidFeatureID string
	Edges          []geomref.GeomRef
	Distance       float64
}

func (ChamferOp) featureOpKind() {}

// ShellOp hollows an upstream feature's solid, leaving the named faces
// open.
type ShellOp struct {
	SolidFeatureID string
	OpenFaces      []geomref.GeomRef
	Thickness      float64
}

func (ShellOp) featureOpKind() {}

// BooleanOp combines two upstream features' solids.
type BooleanOp struct {
	Kind  kernel.BooleanOp
	BodyA string
	BodyB string
}

func (BooleanOp) featureOpKind() {}

// Feature is one declarative modeling step. Id is stable across edits
// until the feature is deleted; it is never reused.
type Feature struct {
	ID         string
	Name       string
	Operation  Operation
	Suppressed bool
}

// CachedBuild memoizes one feature's last successful execution, plus the
// fingerprints that decide whether it can be reused on the next rebuild.
type CachedBuild struct {
	OpResult            ops.OpResult
	ProfileFace         sig.KernelId // set only for SketchOp features
	Suppressed          bool         // the suppressed flag this cache was built under
	ParamFingerprint    uint64
	UpstreamFingerprint uint64
}

// FeatureTree is the ordered list of features plus the rollback bar and
// the rebuild memo.
type FeatureTree struct {
	Features    []*Feature
	ActiveIndex *int // number of leading features that are active; nil means all
	Cache       map[string]CachedBuild
}

// NewTree returns an empty tree ready for AddFeature.
func NewTree() *FeatureTree {
	return &FeatureTree{Cache: map[string]CachedBuild{}}
}

// TipSolid returns the Main output of the last feature that actually
// executed in the current cache, within the active range.
func (t *FeatureTree) TipSolid() (kernel.SolidHandle, bool) {
	limit := t.activeLimit()
	for i := limit - 1; i >= 0; i-- {
		cached, ok := t.Cache[t.Features[i].ID]
		if !ok {
			continue
		}
		if solid, ok := cached.OpResult.Outputs[ops.Main]; ok {
			return solid, true
		}
	}
	return "", false
}

func (t *FeatureTree) activeLimit() int {
	if t.ActiveIndex == nil {
		return len(t.Features)
	}
	if *t.ActiveIndex < len(t.Features) {
		return *t.ActiveIndex
	}
	return len(t.Features)
}
