package ops

import (
	"context"

	"github.com/foundrycad/waffle-iron/diag"
	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/sig"
	"github.com/foundrycad/waffle-iron/topodiff"
)

// FilletParams describes one Fillet feature's parameters.
type FilletParams struct {
	Solid  kernel.SolidHandle
	Edges  []sig.KernelId
	Radius float64
}

// ExecuteFillet runs the uniform shape for a fillet op.
func ExecuteFillet(ctx context.Context, k kernel.Kernel, introspect kernel.Introspect, params FilletParams) (OpResult, error) {
	if params.Radius <= 0 {
		return OpResult{}, &diag.ValidationError{Name: "radius", Reason: "must be positive"}
	}

	before, err := introspect.Snapshot(ctx, params.Solid)
	if err != nil {
		return OpResult{}, err
	}

	output, err := k.FilletEdges(ctx, params.Solid, params.Edges, params.Radius)
	if err != nil {
		return OpResult{}, err
	}

	after, err := introspect.Snapshot(ctx, output)
	if err != nil {
		return OpResult{}, err
	}

	diffResult := topodiff.Diff(before, after, topodiff.Options{ModifiedThreshold: 0.8})
	roles := assignBevelRoles(diffResult, before, params.Edges, "cylindrical", FilletFace)

	return OpResult{
		Outputs:  map[OutputKey]kernel.SolidHandle{Main: output},
		Created:  toRecords(diffResult.Created),
		Deleted:  toDeletedIDs(diffResult.Deleted),
		Modified: toRewrites(diffResult.Modified),
		Roles:    roles,
	}, nil
}

// assignBevelRoles is shared by Fillet and Chamfer: Created faces of the
// given surfaceType are tagged in the order of the input edge list, each
// matched to its nearest-centroid unused candidate (the bevel face
// replacing an edge sits at that edge's location).
func assignBevelRoles(d topodiff.Result, before []sig.Entity, edgeOrder []sig.KernelId, surfaceType string, kind RoleKind) []RoleAssignment {
	var candidates []sig.Entity
	for _, e := range d.Created {
		if e.Sig.Kind == sig.Face && e.Sig.SurfaceType == surfaceType {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	beforeByID := make(map[sig.KernelId]sig.Entity, len(before))
	for _, e := range before {
		beforeByID[e.ID] = e
	}

	used := make(map[sig.KernelId]bool)
	var roles []RoleAssignment
	for i, edgeID := range edgeOrder {
		edge, ok := beforeByID[edgeID]
		if !ok {
			continue
		}
		bestIdx := -1
		bestDist := 0.0
		for j, c := range candidates {
			if used[c.ID] {
				continue
			}
			d := sub(c.Sig.Centroid, edge.Sig.Centroid).Len()
			if bestIdx < 0 || d < bestDist {
				bestIdx = j
				bestDist = d
			}
		}
		if bestIdx < 0 {
			continue
		}
		used[candidates[bestIdx].ID] = true
		roles = append(roles, RoleAssignment{ID: candidates[bestIdx].ID, Role: SemanticRole{Kind: kind, Index: i}})
	}
	return roles
}
