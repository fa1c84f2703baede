package memkernel

import (
	"context"

	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/sig"
)

// Mesh triangulates every face of handle by fan triangulation from the
// first loop vertex. The fan is exact for convex faces; for a concave
// face it can cover area outside the face. Satisfies kernel.Mesher.
func (k *Kernel) Mesh(ctx context.Context, handle kernel.SolidHandle) ([]kernel.Triangle, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	s, err := k.mustSolid(handle)
	if err != nil {
		return nil, err
	}

	var tris []kernel.Triangle
	for _, f := range s.faces {
		tris = append(tris, fanTriangulate(f)...)
	}
	return tris, nil
}

// MeshFace triangulates a single face, letting callers recover the
// face-to-triangle-range mapping that Mesh's flat list discards.
// Satisfies kernel.FaceMesher.
func (k *Kernel) MeshFace(ctx context.Context, handle kernel.SolidHandle, faceID sig.KernelId) ([]kernel.Triangle, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	s, err := k.mustSolid(handle)
	if err != nil {
		return nil, err
	}
	f := s.faceByID(faceID)
	if f == nil {
		return nil, &kernel.Error{Kind: kernel.InvalidInput, Message: "no such face on solid"}
	}
	return fanTriangulate(f), nil
}

func fanTriangulate(f *face) []kernel.Triangle {
	if len(f.loop) < 3 {
		return nil
	}
	n := f.sig.Normal
	tris := make([]kernel.Triangle, 0, len(f.loop)-2)
	for i := 1; i+1 < len(f.loop); i++ {
		tris = append(tris, kernel.Triangle{A: f.loop[0], B: f.loop[i], C: f.loop[i+1], Normal: n})
	}
	return tris
}
