package engine

import (
	"context"

	"github.com/foundrycad/waffle-iron/diag"
	"github.com/foundrycad/waffle-iron/geomref"
	"github.com/foundrycad/waffle-iron/ops"
)

// resolveSelection resolves ref against the tree's current cache, the
// same anchor-then-selector algorithm the rebuild engine runs internally
// for a feature's own GeomRef fields. Hover and Select never mutate
// anything; they only confirm the reference is still live.
func (e *Engine) resolveSelection(ctx context.Context, ref geomref.GeomRef) (geomref.Resolved, error) {
	anchor, err := e.anchorState(ref.Anchor)
	if err != nil {
		return geomref.Resolved{}, err
	}
	resolver := geomref.Resolver{Introspect: e.introspect}
	resolved, _, err := resolver.Resolve(ctx, ref, anchor)
	return resolved, err
}

func (e *Engine) anchorState(anchor geomref.Anchor) (geomref.AnchorState, error) {
	if anchor.Kind == geomref.AnchorDatumPlane {
		return geomref.AnchorState{}, nil
	}
	featureID := anchor.FeatureID
	if anchor.Kind == geomref.AnchorDatum {
		featureID = anchor.DatumID
	}
	cached, ok := e.tree.Cache[featureID]
	if !ok {
		return geomref.AnchorState{}, &diag.RebuildError{Kind: diag.GeomRefBroken, FeatureID: featureID, Message: "anchor feature has no cached build"}
	}
	return geomref.AnchorState{Solid: cached.OpResult.Outputs[ops.Main], Roles: cached.OpResult.Roles}, nil
}
