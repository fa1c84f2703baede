package ops

import (
	"context"

	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/sig"
	"github.com/foundrycad/waffle-iron/topodiff"
)

// BooleanParams describes one Boolean feature's parameters.
type BooleanParams struct {
	Op    kernel.BooleanOp
	BodyA kernel.SolidHandle
	BodyB kernel.SolidHandle
}

// ExecuteBoolean runs the uniform shape for a boolean combine op.
func ExecuteBoolean(ctx context.Context, k kernel.Kernel, introspect kernel.Introspect, params BooleanParams) (OpResult, error) {
	beforeA, err := introspect.Snapshot(ctx, params.BodyA)
	if err != nil {
		return OpResult{}, err
	}
	beforeB, err := introspect.Snapshot(ctx, params.BodyB)
	if err != nil {
		return OpResult{}, err
	}

	output, err := k.Boolean(ctx, params.Op, params.BodyA, params.BodyB)
	if err != nil {
		return OpResult{}, err
	}

	after, err := introspect.Snapshot(ctx, output)
	if err != nil {
		return OpResult{}, err
	}

	combinedBefore := append(append([]sig.Entity{}, beforeA...), beforeB...)
	diffResult := topodiff.Diff(combinedBefore, after, topodiff.DefaultOptions())

	aIDs := make(map[sig.KernelId]bool, len(beforeA))
	for _, e := range beforeA {
		aIDs[e.ID] = true
	}
	bIDs := make(map[sig.KernelId]bool, len(beforeB))
	for _, e := range beforeB {
		bIDs[e.ID] = true
	}

	roles := assignBooleanRoles(diffResult, aIDs, bIDs)

	return OpResult{
		Outputs:  map[OutputKey]kernel.SolidHandle{Main: output},
		Created:  toRecords(diffResult.Created),
		Deleted:  toDeletedIDs(diffResult.Deleted),
		Modified: toRewrites(diffResult.Modified),
		Roles:    roles,
	}, nil
}

func assignBooleanRoles(d topodiff.Result, aIDs, bIDs map[sig.KernelId]bool) []RoleAssignment {
	var fromA, fromB []sig.Entity

	for _, e := range d.Unchanged {
		switch {
		case aIDs[e.ID]:
			fromA = append(fromA, e)
		case bIDs[e.ID]:
			fromB = append(fromB, e)
		}
	}
	for _, pair := range d.Modified {
		switch {
		case aIDs[pair.Before.ID]:
			fromA = append(fromA, pair.After)
		case bIDs[pair.Before.ID]:
			fromB = append(fromB, pair.After)
		}
	}

	fromA = entitiesByOrder(facesOnly(fromA))
	fromB = entitiesByOrder(facesOnly(fromB))

	var roles []RoleAssignment
	for i, e := range fromA {
		roles = append(roles, RoleAssignment{ID: e.ID, Role: SemanticRole{Kind: BooleanBodyAFace, Index: i}})
	}
	for i, e := range fromB {
		roles = append(roles, RoleAssignment{ID: e.ID, Role: SemanticRole{Kind: BooleanBodyBFace, Index: i}})
	}
	return roles
}
