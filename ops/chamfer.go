package ops

import (
	"context"

	"github.com/foundrycad/waffle-iron/diag"
	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/sig"
	"github.com/foundrycad/waffle-iron/topodiff"
)

// ChamferParams describes one Chamfer feature's parameters.
type ChamferParams struct {
	Solid    kernel.SolidHandle
	Edges    []sig.KernelId
	Distance float64
}

// ExecuteChamfer runs the uniform shape for a chamfer op.
func ExecuteChamfer(ctx context.Context, k kernel.Kernel, introspect kernel.Introspect, params ChamferParams) (OpResult, error) {
	if params.Distance <= 0 {
		return OpResult{}, &diag.ValidationError{Name: "distance", Reason: "must be positive"}
	}

	before, err := introspect.Snapshot(ctx, params.Solid)
	if err != nil {
		return OpResult{}, err
	}

	output, err := k.ChamferEdges(ctx, params.Solid, params.Edges, params.Distance)
	if err != nil {
		return OpResult{}, err
	}

	after, err := introspect.Snapshot(ctx, output)
	if err != nil {
		return OpResult{}, err
	}

	diffResult := topodiff.Diff(before, after, topodiff.Options{ModifiedThreshold: 0.8})
	roles := assignBevelRoles(diffResult, before, params.Edges, "chamfer", ChamferFace)

	return OpResult{
		Outputs:  map[OutputKey]kernel.SolidHandle{Main: output},
		Created:  toRecords(diffResult.Created),
		Deleted:  toDeletedIDs(diffResult.Deleted),
		Modified: toRewrites(diffResult.Modified),
		Roles:    roles,
	}, nil
}
