package ops

import (
	"context"

	"github.com/foundrycad/waffle-iron/diag"
	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/sig"
	"github.com/foundrycad/waffle-iron/topodiff"
)

// ShellParams describes one Shell feature's parameters. Thickness < 0
// shells outward; thickness > 0 shells inward.
type ShellParams struct {
	Solid     kernel.SolidHandle
	OpenFaces []sig.KernelId
	Thickness float64
}

// ExecuteShell runs the uniform shape for a shell op.
func ExecuteShell(ctx context.Context, k kernel.Kernel, introspect kernel.Introspect, params ShellParams) (OpResult, error) {
	if params.Thickness == 0 {
		return OpResult{}, &diag.ValidationError{Name: "thickness", Reason: "must be non-zero"}
	}

	before, err := introspect.Snapshot(ctx, params.Solid)
	if err != nil {
		return OpResult{}, err
	}

	output, err := k.Shell(ctx, params.Solid, params.OpenFaces, params.Thickness)
	if err != nil {
		return OpResult{}, err
	}

	after, err := introspect.Snapshot(ctx, output)
	if err != nil {
		return OpResult{}, err
	}

	diffResult := topodiff.Diff(before, after, topodiff.DefaultOptions())

	inner := entitiesByOrder(facesOnly(diffResult.Created))
	roles := make([]RoleAssignment, len(inner))
	for i, e := range inner {
		roles[i] = RoleAssignment{ID: e.ID, Role: SemanticRole{Kind: ShellInnerFace, Index: i}}
	}

	return OpResult{
		Outputs:  map[OutputKey]kernel.SolidHandle{Main: output},
		Created:  toRecords(diffResult.Created),
		Deleted:  toDeletedIDs(diffResult.Deleted),
		Modified: toRewrites(diffResult.Modified),
		Roles:    roles,
	}, nil
}
