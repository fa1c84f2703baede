package memkernel

import (
	"context"

	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/sig"
)

func cloneFace(f *face) *face {
	loop := make([]sig.Vec3, len(f.loop))
	copy(loop, f.loop)
	return &face{loop: loop, sig: f.sig}
}

// bevelEdges is the shared shape behind FilletEdges and ChamferEdges: every
// untouched face/edge/vertex passes through with a fresh id, every
// targeted edge is deleted and replaced by a new bevel face, and the two
// faces that bordered it lose a sliver of area.
func (k *Kernel) bevelEdges(s *solid, edgeIDs []sig.KernelId, size float64, surfaceType string) *solid {
	targeted := make(map[sig.KernelId]bool, len(edgeIDs))
	for _, id := range edgeIDs {
		targeted[id] = true
	}

	out := &solid{}
	faceOut := make(map[*face]*face, len(s.faces))
	for _, f := range s.faces {
		nf := cloneFace(f)
		nf.id = k.nextID("f")
		faceOut[f] = nf
		out.faces = append(out.faces, nf)
	}
	for _, v := range s.vertices {
		out.vertices = append(out.vertices, &vertex{id: k.nextID("v"), pos: v.pos})
	}

	for _, e := range s.edges {
		if !targeted[e.id] {
			out.edges = append(out.edges, &edge{id: k.nextID("e"), vertices: e.vertices, sig: e.sig})
			continue
		}

		var adjacent []*face
		for _, fid := range e.faces {
			for orig, nf := range faceOut {
				if orig.id == fid {
					adjacent = append(adjacent, nf)
				}
			}
		}
		for _, nf := range adjacent {
			nf.sig.Measure -= size * e.sig.Measure
			if nf.sig.Measure < 0 {
				nf.sig.Measure = 0
			}
		}

		a, b := midpointVertices(s, e)
		bevel := &face{
			id:   k.nextID("f"),
			loop: []sig.Vec3{a, b, add(b, scale(e.sig.Normal, size)), add(a, scale(e.sig.Normal, size))},
			sig: sig.Signature{
				Kind: sig.Face, SurfaceType: surfaceType,
				Centroid: e.sig.Centroid, Normal: e.sig.Normal,
				Measure: size * e.sig.Measure, AdjacencyDegree: 4,
			},
		}
		out.faces = append(out.faces, bevel)
	}

	return out
}

func midpointVertices(s *solid, e *edge) (sig.Vec3, sig.Vec3) {
	var a, b sig.Vec3
	for _, v := range s.vertices {
		if v.id == e.vertices[0] {
			a = v.pos
		}
		if v.id == e.vertices[1] {
			b = v.pos
		}
	}
	return a, b
}

// FilletEdges rounds the given edges with a constant radius.
func (k *Kernel) FilletEdges(ctx context.Context, handle kernel.SolidHandle, edgeIDs []sig.KernelId, radius float64) (kernel.SolidHandle, error) {
	if radius <= 0 {
		return "", &kernel.Error{Kind: kernel.InvalidInput, Message: "fillet radius must be positive"}
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	s, err := k.mustSolid(handle)
	if err != nil {
		return "", err
	}
	out := k.bevelEdges(s, edgeIDs, radius, "cylindrical")
	return k.install(out), nil
}

// ChamferEdges bevels the given edges with a constant setback distance.
func (k *Kernel) ChamferEdges(ctx context.Context, handle kernel.SolidHandle, edgeIDs []sig.KernelId, distance float64) (kernel.SolidHandle, error) {
	if distance <= 0 {
		return "", &kernel.Error{Kind: kernel.InvalidInput, Message: "chamfer distance must be positive"}
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	s, err := k.mustSolid(handle)
	if err != nil {
		return "", err
	}
	out := k.bevelEdges(s, edgeIDs, distance, "chamfer")
	return k.install(out), nil
}

// Shell removes the given faces and hollows the remainder to thickness,
// producing an inner wall alongside every retained face.
func (k *Kernel) Shell(ctx context.Context, handle kernel.SolidHandle, openFaceIDs []sig.KernelId, thickness float64) (kernel.SolidHandle, error) {
	if thickness <= 0 {
		return "", &kernel.Error{Kind: kernel.InvalidInput, Message: "shell thickness must be positive"}
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	s, err := k.mustSolid(handle)
	if err != nil {
		return "", err
	}

	open := make(map[sig.KernelId]bool, len(openFaceIDs))
	for _, id := range openFaceIDs {
		open[id] = true
	}

	out := &solid{}
	for _, f := range s.faces {
		if open[f.id] {
			continue // removed: becomes an opening
		}
		outerLoop := make([]sig.Vec3, len(f.loop))
		copy(outerLoop, f.loop)
		out.faces = append(out.faces, &face{id: k.nextID("f"), loop: outerLoop, sig: f.sig})

		inward := scale(f.sig.Normal, -thickness)
		innerLoop := make([]sig.Vec3, len(f.loop))
		for i, p := range f.loop {
			innerLoop[i] = add(p, inward)
		}
		innerSig := f.sig
		innerSig.Normal = scale(f.sig.Normal, -1)
		innerSig.Centroid = add(f.sig.Centroid, inward)
		out.faces = append(out.faces, &face{id: k.nextID("f"), loop: innerLoop, sig: innerSig})
	}
	for _, v := range s.vertices {
		out.vertices = append(out.vertices, &vertex{id: k.nextID("v"), pos: v.pos})
	}
	for _, e := range s.edges {
		out.edges = append(out.edges, &edge{id: k.nextID("e"), vertices: e.vertices, sig: e.sig})
	}

	return k.install(out), nil
}
