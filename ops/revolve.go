package ops

import (
	"context"
	"math"
	"sort"

	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/sig"
	"github.com/foundrycad/waffle-iron/topodiff"
)

// RevolveParams describes one Revolve feature's parameters. AngleRad must
// be in (0, 2π]; 2π (within tolerance) skips start/end caps.
type RevolveParams struct {
	Face       sig.KernelId
	AxisOrigin sig.Vec3
	AxisDir    sig.Vec3
	AngleRad   float64
}

// ExecuteRevolve runs the uniform shape for a revolve op.
func ExecuteRevolve(ctx context.Context, k kernel.Kernel, introspect kernel.Introspect, params RevolveParams) (OpResult, error) {
	output, err := k.RevolveFace(ctx, params.Face, params.AxisOrigin, params.AxisDir, params.AngleRad)
	if err != nil {
		return OpResult{}, err
	}

	after, err := introspect.Snapshot(ctx, output)
	if err != nil {
		return OpResult{}, err
	}

	diffResult := topodiff.Diff(nil, after, topodiff.DefaultOptions())
	roles := assignRevolveRoles(diffResult, params.AxisOrigin, params.AxisDir, params.AngleRad)

	return OpResult{
		Outputs: map[OutputKey]kernel.SolidHandle{Main: output},
		Created: toRecords(diffResult.Created),
		Roles:   roles,
	}, nil
}

const fullTurnEps = 1e-9

func assignRevolveRoles(d topodiff.Result, axisOrigin, axisDir sig.Vec3, angleRad float64) []RoleAssignment {
	candidates := facesOnly(d.Created)
	if len(candidates) == 0 {
		return nil
	}

	fullTurn := angleRad >= 2*math.Pi-fullTurnEps

	var roles []RoleAssignment
	used := make(map[sig.KernelId]bool)

	if !fullTurn {
		var start, end *sig.Entity
		var startDot, endDot float64
		for i := range candidates {
			c := candidates[i]
			dot := c.Sig.Normal.Dot(axisDir)
			if start == nil || dot > startDot {
				start = &candidates[i]
				startDot = dot
			}
			if end == nil || dot < endDot {
				end = &candidates[i]
				endDot = dot
			}
		}
		if start != nil {
			roles = append(roles, RoleAssignment{ID: start.ID, Role: SemanticRole{Kind: RevStartFace}})
			used[start.ID] = true
		}
		if end != nil && end.ID != start.ID {
			roles = append(roles, RoleAssignment{ID: end.ID, Role: SemanticRole{Kind: RevEndFace}})
			used[end.ID] = true
		}
	}

	var sides []sig.Entity
	for _, c := range candidates {
		if !used[c.ID] {
			sides = append(sides, c)
		}
	}
	sort.Slice(sides, func(i, j int) bool {
		return angularPosition(sides[i].Sig.Centroid, axisOrigin, axisDir) < angularPosition(sides[j].Sig.Centroid, axisOrigin, axisDir)
	})
	for i, s := range sides {
		roles = append(roles, RoleAssignment{ID: s.ID, Role: SemanticRole{Kind: SideFace, Index: i}})
	}
	return roles
}
