package geomref

import (
	"context"
	"math"

	"github.com/foundrycad/waffle-iron/diag"
	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/ops"
	"github.com/foundrycad/waffle-iron/sig"
)

// AnchorState is everything the resolver needs about one anchor: its
// output solid (zero value for a pure datum plane) and the role
// assignments from its last successful OpResult.
type AnchorState struct {
	Solid kernel.SolidHandle
	Roles []ops.RoleAssignment
}

// ResolutionWarning is emitted instead of an error when a BestEffort
// GeomRef falls back to a sub-threshold signature match.
type ResolutionWarning struct {
	Ref        GeomRef
	Similarity float64
}

// Resolved is everything a successful resolution produces: the kernel id
// (zero for a pure datum-plane anchor) and the workplane a sketch anchored
// here would use.
type Resolved struct {
	ID        sig.KernelId
	Workplane kernel.Workplane
}

// Resolver resolves GeomRefs against live kernel state. It never mutates
// anything it touches: resolution is read-only by construction, using
// only the Introspect capability set.
type Resolver struct {
	Introspect kernel.Introspect
}

// Resolve implements the five-step strategy: datum anchors resolve
// directly; otherwise try the role selector, falling through a composite
// selector's fallback signature, and finally a plain signature search;
// Strict failures are errors, BestEffort failures return the best
// sub-threshold match (if any) with a warning.
func (r Resolver) Resolve(ctx context.Context, ref GeomRef, anchor AnchorState) (Resolved, *ResolutionWarning, error) {
	if ref.Anchor.Kind == AnchorDatumPlane {
		return Resolved{Workplane: kernel.StandardWorkplane(ref.Anchor.DatumPlane)}, nil, nil
	}

	if id, ok := resolveByRole(ref.Selector, anchor.Roles); ok {
		wp, err := r.workplaneForFace(ctx, id)
		return Resolved{ID: id, Workplane: wp}, nil, err
	}

	if ref.Selector.Kind == SelectorRole {
		return r.fail(ref)
	}

	target := ref.Selector.Signature
	if ref.Selector.Kind == SelectorComposite {
		target = ref.Selector.Fallback
	}

	snapshot, err := r.Introspect.Snapshot(ctx, anchor.Solid)
	if err != nil {
		return Resolved{}, nil, err
	}

	bestID, bestScore := bestMatch(snapshot, target)
	if bestScore >= sig.SameEntityThreshold {
		wp, err := r.workplaneForFace(ctx, bestID)
		return Resolved{ID: bestID, Workplane: wp}, nil, err
	}

	if ref.Policy == BestEffort && bestID != "" {
		wp, err := r.workplaneForFace(ctx, bestID)
		return Resolved{ID: bestID, Workplane: wp}, &ResolutionWarning{Ref: ref, Similarity: bestScore}, err
	}

	return r.fail(ref)
}

func (r Resolver) fail(ref GeomRef) (Resolved, *ResolutionWarning, error) {
	return Resolved{}, nil, &diag.RebuildError{
		Kind:      diag.GeomRefBroken,
		FeatureID: ref.Anchor.FeatureID,
		Message:   "no entity satisfies the reference's selector",
	}
}

func resolveByRole(sel Selector, roles []ops.RoleAssignment) (sig.KernelId, bool) {
	if sel.Kind != SelectorRole && sel.Kind != SelectorComposite {
		return "", false
	}
	for _, r := range roles {
		if r.Role == sel.Role {
			return r.ID, true
		}
	}
	return "", false
}

func bestMatch(snapshot []sig.Entity, target sig.Signature) (sig.KernelId, float64) {
	var bestID sig.KernelId
	best := -1.0
	for _, e := range snapshot {
		if e.Sig.Kind != target.Kind {
			continue
		}
		score := sig.Similarity(target, e.Sig)
		if score > best {
			best = score
			bestID = e.ID
		}
	}
	if best < 0 {
		return "", 0
	}
	return bestID, best
}

func (r Resolver) workplaneForFace(ctx context.Context, id sig.KernelId) (kernel.Workplane, error) {
	if id == "" {
		return kernel.Workplane{}, nil
	}
	centroid, err := r.Introspect.FaceCentroid(ctx, id)
	if err != nil {
		return kernel.Workplane{}, err
	}
	normal, err := r.Introspect.FaceNormal(ctx, id)
	if err != nil {
		return kernel.Workplane{}, err
	}
	u, v := orthonormalBasis(normal)
	return kernel.Workplane{Origin: centroid, Normal: normal, U: u, V: v}, nil
}

func orthonormalBasis(normal sig.Vec3) (u, v sig.Vec3) {
	ref := sig.Vec3{X: 0, Y: 0, Z: 1}
	if math.Abs(normal.Dot(ref)) > 0.99 {
		ref = sig.Vec3{X: 1, Y: 0, Z: 0}
	}
	u = crossNormalized(ref, normal)
	v = crossNormalized(normal, u)
	return u, v
}

func crossNormalized(a, b sig.Vec3) sig.Vec3 {
	c := sig.Vec3{X: a.Y*b.Z - a.Z*b.Y, Y: a.Z*b.X - a.X*b.Z, Z: a.X*b.Y - a.Y*b.X}
	l := c.Len()
	if l == 0 {
		return c
	}
	return sig.Vec3{X: c.X / l, Y: c.Y / l, Z: c.Z / l}
}
