package ops

import (
	"context"
	"fmt"

	"github.com/foundrycad/waffle-iron/kernel"
)

// Operation is the closed set of modeling-op parameter types; each
// concrete params struct (ExtrudeParams, RevolveParams, ...) implements
// it via the unexported marker method, so Execute's type switch is
// exhaustive and the set can't silently grow an unhandled case.
type Operation interface {
	opKind()
}

func (ExtrudeParams) opKind()  {}
func (RevolveParams) opKind()  {}
func (FilletParams) opKind()   {}
func (ChamferParams) opKind()  {}
func (ShellParams) opKind()    {}
func (BooleanParams) opKind()  {}

// Execute dispatches op to its executor by concrete type. The feature-tree
// rebuild engine calls the per-kind executors (ExecuteExtrude, ...)
// directly rather than through Execute.
func Execute(ctx context.Context, k kernel.Kernel, introspect kernel.Introspect, op Operation) (OpResult, error) {
	switch p := op.(type) {
	case ExtrudeParams:
		return ExecuteExtrude(ctx, k, introspect, p)
	case RevolveParams:
		return ExecuteRevolve(ctx, k, introspect, p)
	case FilletParams:
		return ExecuteFillet(ctx, k, introspect, p)
	case ChamferParams:
		return ExecuteChamfer(ctx, k, introspect, p)
	case ShellParams:
		return ExecuteShell(ctx, k, introspect, p)
	case BooleanParams:
		return ExecuteBoolean(ctx, k, introspect, p)
	default:
		return OpResult{}, fmt.Errorf("ops: unhandled operation type %T", op)
	}
}
