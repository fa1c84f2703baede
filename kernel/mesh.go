package kernel

import (
	"context"

	"github.com/foundrycad/waffle-iron/sig"
)

// Triangle is one facet of a triangulated mesh: three world-space
// vertices and the flat normal shared by all of them.
type Triangle struct {
	A, B, C sig.Vec3
	Normal  sig.Vec3
}

// Mesher triangulates a kernel solid for display or STL export. Kept
// separate from Introspect since not every consumer needs geometry, only
// topology.
type Mesher interface {
	Mesh(ctx context.Context, handle SolidHandle) ([]Triangle, error)
}

// FaceMesher is an optional capability of a Mesher that can triangulate
// one face at a time. Callers that need to map triangle ranges back to
// the face that produced them (MeshView.FaceRanges) use this instead of
// Mesh's flat, face-boundary-free list.
type FaceMesher interface {
	MeshFace(ctx context.Context, handle SolidHandle, face sig.KernelId) ([]Triangle, error)
}
