// Package kernel defines the abstract surface this module consumes from
// the external geometry kernel. It is intentionally split into a
// mutating Kernel and a read-only Introspect so the GeomRef resolver and
// the diff machinery can look at topology without ever risking a
// mutation.
package kernel

import (
	"context"

	"github.com/foundrycad/waffle-iron/sig"
)

// SolidHandle opaquely identifies a solid body owned by the kernel.
type SolidHandle string

// BooleanOp enumerates the supported boolean combinations.
type BooleanOp int

const (
	Union BooleanOp = iota
	Subtract
	Intersect
)

func (b BooleanOp) String() string {
	switch b {
	case Union:
		return "Union"
	case Subtract:
		return "Subtract"
	case Intersect:
		return "Intersect"
	default:
		return "Unknown"
	}
}

// Kernel is the mutating capability set: every call either grows/edits
// kernel-owned topology or returns a KernelError.
type Kernel interface {
	// RegisterProfileFace turns a closed sketch profile into a standalone
	// planar face with no owning solid, ready to be extruded or revolved.
	RegisterProfileFace(ctx context.Context, profile Profile) (sig.KernelId, error)

	ExtrudeFace(ctx context.Context, face sig.KernelId, direction sig.Vec3, depth float64) (SolidHandle, error)
	RevolveFace(ctx context.Context, face sig.KernelId, axisOrigin, axisDir sig.Vec3, angleRad float64) (SolidHandle, error)
	FilletEdges(ctx context.Context, solid SolidHandle, edges []sig.KernelId, radius float64) (SolidHandle, error)
	ChamferEdges(ctx context.Context, solid SolidHandle, edges []sig.KernelId, distance float64) (SolidHandle, error)
	Shell(ctx context.Context, solid SolidHandle, faces []sig.KernelId, thickness float64) (SolidHandle, error)
	Boolean(ctx context.Context, op BooleanOp, bodyA, bodyB SolidHandle) (SolidHandle, error)
}

// Introspect is the read-only capability set used by the resolver and the
// diff machinery; it never mutates kernel state.
type Introspect interface {
	ListFaces(ctx context.Context, solid SolidHandle) ([]sig.KernelId, error)
	ListEdges(ctx context.Context, solid SolidHandle) ([]sig.KernelId, error)
	ListVertices(ctx context.Context, solid SolidHandle) ([]sig.KernelId, error)

	Signature(ctx context.Context, entity sig.KernelId) (sig.Signature, error)

	// Snapshot returns a (KernelId, TopoSignature) pair for every face,
	// edge, and vertex of solid, in unspecified order.
	Snapshot(ctx context.Context, solid SolidHandle) ([]sig.Entity, error)

	FaceSurfaceType(ctx context.Context, face sig.KernelId) (string, error)
	FaceCentroid(ctx context.Context, face sig.KernelId) (sig.Vec3, error)
	FaceNormal(ctx context.Context, face sig.KernelId) (sig.Vec3, error)
	FaceArea(ctx context.Context, face sig.KernelId) (float64, error)
}
