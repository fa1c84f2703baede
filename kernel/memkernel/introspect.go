package memkernel

import (
	"context"

	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/sig"
)

func (k *Kernel) ListFaces(ctx context.Context, handle kernel.SolidHandle) ([]sig.KernelId, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	s, err := k.mustSolid(handle)
	if err != nil {
		return nil, err
	}
	out := make([]sig.KernelId, len(s.faces))
	for i, f := range s.faces {
		out[i] = f.id
	}
	return out, nil
}

func (k *Kernel) ListEdges(ctx context.Context, handle kernel.SolidHandle) ([]sig.KernelId, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	s, err := k.mustSolid(handle)
	if err != nil {
		return nil, err
	}
	out := make([]sig.KernelId, len(s.edges))
	for i, e := range s.edges {
		out[i] = e.id
	}
	return out, nil
}

func (k *Kernel) ListVertices(ctx context.Context, handle kernel.SolidHandle) ([]sig.KernelId, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	s, err := k.mustSolid(handle)
	if err != nil {
		return nil, err
	}
	out := make([]sig.KernelId, len(s.vertices))
	for i, v := range s.vertices {
		out[i] = v.id
	}
	return out, nil
}

func (k *Kernel) findEntity(id sig.KernelId) (sig.Signature, bool) {
	for _, s := range k.solids {
		if f := s.faceByID(id); f != nil {
			return f.sig, true
		}
		if e := s.edgeByID(id); e != nil {
			return e.sig, true
		}
		for _, v := range s.vertices {
			if v.id == id {
				return sig.Signature{Kind: sig.Vertex, Centroid: v.pos}, true
			}
		}
	}
	return sig.Signature{}, false
}

func (k *Kernel) Signature(ctx context.Context, entity sig.KernelId) (sig.Signature, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	s, ok := k.findEntity(entity)
	if !ok {
		return sig.Signature{}, &kernel.Error{Kind: kernel.InvalidInput, Message: "unknown entity " + string(entity)}
	}
	return s, nil
}

func (k *Kernel) Snapshot(ctx context.Context, handle kernel.SolidHandle) ([]sig.Entity, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	s, err := k.mustSolid(handle)
	if err != nil {
		return nil, err
	}
	return entitiesOf(s), nil
}

func (k *Kernel) FaceSurfaceType(ctx context.Context, face sig.KernelId) (string, error) {
	s, err := k.Signature(ctx, face)
	if err != nil {
		return "", err
	}
	return s.SurfaceType, nil
}

func (k *Kernel) FaceCentroid(ctx context.Context, face sig.KernelId) (sig.Vec3, error) {
	s, err := k.Signature(ctx, face)
	if err != nil {
		return sig.Vec3{}, err
	}
	return s.Centroid, nil
}

func (k *Kernel) FaceNormal(ctx context.Context, face sig.KernelId) (sig.Vec3, error) {
	s, err := k.Signature(ctx, face)
	if err != nil {
		return sig.Vec3{}, err
	}
	return s.Normal, nil
}

func (k *Kernel) FaceArea(ctx context.Context, face sig.KernelId) (float64, error) {
	s, err := k.Signature(ctx, face)
	if err != nil {
		return 0, err
	}
	return s.Measure, nil
}

var _ kernel.Kernel = (*Kernel)(nil)
var _ kernel.Introspect = (*Kernel)(nil)
