package ops

import (
	"context"
	"math"
	"sort"

	"github.com/foundrycad/waffle-iron/diag"
	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/sig"
	"github.com/foundrycad/waffle-iron/topodiff"
)

// ExtrudeParams describes one Extrude feature's parameters.
type ExtrudeParams struct {
	Face      sig.KernelId
	Direction sig.Vec3 // unit direction; sign of Depth may flip it
	Depth     float64  // signed distance; zero is invalid
	Symmetric bool
	Cut       bool
	CutTarget kernel.SolidHandle // required when Cut is true
}

// ExecuteExtrude runs the uniform before/output/after/diff/roles shape for
// a prism (or symmetric prism, or cut) extrude.
func ExecuteExtrude(ctx context.Context, k kernel.Kernel, introspect kernel.Introspect, params ExtrudeParams) (OpResult, error) {
	if params.Depth == 0 {
		return OpResult{}, &diag.ValidationError{Name: "depth", Reason: "must be non-zero"}
	}

	var before []sig.Entity
	if params.Cut {
		var err error
		before, err = introspect.Snapshot(ctx, params.CutTarget)
		if err != nil {
			return OpResult{}, err
		}
	}

	dir := params.Direction
	if params.Depth < 0 {
		dir = scale(dir, -1)
	}
	depthMag := math.Abs(params.Depth)

	var output kernel.SolidHandle
	if params.Symmetric {
		half := depthMag / 2
		posSolid, err := k.ExtrudeFace(ctx, params.Face, dir, half)
		if err != nil {
			return OpResult{}, err
		}
		negSolid, err := k.ExtrudeFace(ctx, params.Face, scale(dir, -1), half)
		if err != nil {
			return OpResult{}, err
		}
		output, err = k.Boolean(ctx, kernel.Union, posSolid, negSolid)
		if err != nil {
			return OpResult{}, err
		}
	} else {
		solid, err := k.ExtrudeFace(ctx, params.Face, dir, depthMag)
		if err != nil {
			return OpResult{}, err
		}
		output = solid
	}

	if params.Cut {
		cutResult, err := k.Boolean(ctx, kernel.Subtract, params.CutTarget, output)
		if err != nil {
			return OpResult{}, err
		}
		output = cutResult
	}

	after, err := introspect.Snapshot(ctx, output)
	if err != nil {
		return OpResult{}, err
	}

	diffResult := topodiff.Diff(before, after, topodiff.DefaultOptions())
	roles := assignExtrudeRoles(diffResult, dir, params.Symmetric)

	return OpResult{
		Outputs:  map[OutputKey]kernel.SolidHandle{Main: output},
		Created:  toRecords(diffResult.Created),
		Deleted:  toDeletedIDs(diffResult.Deleted),
		Modified: toRewrites(diffResult.Modified),
		Roles:    roles,
	}, nil
}

// assignExtrudeRoles tags the two end caps (by direction alignment and
// extremal centroid projection) and the remaining side faces by angular
// position around the extrusion axis.
func assignExtrudeRoles(d topodiff.Result, dir sig.Vec3, symmetric bool) []RoleAssignment {
	candidates := facesOnly(append(append([]sig.Entity{}, d.Created...), modifiedAfter(d.Modified)...))
	if len(candidates) == 0 {
		return nil
	}

	origin := axisOrigin(signaturesOf(candidates))

	var positive, negative *sig.Entity
	var posProj, negProj float64
	for i := range candidates {
		c := candidates[i]
		proj := sub(c.Sig.Centroid, origin).Dot(dir)
		if sig.NormalsAligned(c.Sig.Normal, dir) {
			if positive == nil || proj > posProj {
				positive = &candidates[i]
				posProj = proj
			}
		}
		if sig.NormalsAligned(c.Sig.Normal, scale(dir, -1)) {
			if negative == nil || proj < negProj {
				negative = &candidates[i]
				negProj = proj
			}
		}
	}

	var roles []RoleAssignment
	used := make(map[sig.KernelId]bool)
	if positive != nil {
		roles = append(roles, RoleAssignment{ID: positive.ID, Role: SemanticRole{Kind: EndCapPositive}})
		used[positive.ID] = true
	}
	if negative != nil {
		roles = append(roles, RoleAssignment{ID: negative.ID, Role: SemanticRole{Kind: EndCapNegative}})
		used[negative.ID] = true
	}
	_ = symmetric // both caps are tagged regardless; symmetry only affects geometry

	var sides []sig.Entity
	for _, c := range candidates {
		if !used[c.ID] {
			sides = append(sides, c)
		}
	}
	sort.Slice(sides, func(i, j int) bool {
		return angularPosition(sides[i].Sig.Centroid, origin, dir) < angularPosition(sides[j].Sig.Centroid, origin, dir)
	})
	for i, s := range sides {
		roles = append(roles, RoleAssignment{ID: s.ID, Role: SemanticRole{Kind: SideFace, Index: i}})
	}
	return roles
}

func modifiedAfter(pairs []topodiff.ModifiedPair) []sig.Entity {
	out := make([]sig.Entity, len(pairs))
	for i, p := range pairs {
		out[i] = p.After
	}
	return out
}

func signaturesOf(entities []sig.Entity) []sig.Signature {
	out := make([]sig.Signature, len(entities))
	for i, e := range entities {
		out[i] = e.Sig
	}
	return out
}
