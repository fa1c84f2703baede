package memkernel

import (
	"context"

	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/sig"
)

func boundingSphere(s *solid) (sig.Vec3, float64) {
	var center sig.Vec3
	n := 0
	for _, v := range s.vertices {
		center = add(center, v.pos)
		n++
	}
	if n > 0 {
		center = scale(center, 1/float64(n))
	}
	radius := 0.0
	for _, v := range s.vertices {
		if d := dist(center, v.pos); d > radius {
			radius = d
		}
	}
	return center, radius
}

func passThrough(k *Kernel, s *solid) (*solid, map[*face]*face) {
	out := &solid{}
	faceMap := make(map[*face]*face, len(s.faces))
	for _, f := range s.faces {
		nf := cloneFace(f)
		nf.id = k.nextID("f")
		faceMap[f] = nf
		out.faces = append(out.faces, nf)
	}
	for _, v := range s.vertices {
		out.vertices = append(out.vertices, &vertex{id: k.nextID("v"), pos: v.pos})
	}
	for _, e := range s.edges {
		out.edges = append(out.edges, &edge{id: k.nextID("e"), vertices: e.vertices, sig: e.sig})
	}
	return out, faceMap
}

// union simply merges both operands verbatim, with no attempt at
// removing the internal boundary between them.
func union(k *Kernel, a, b *solid) *solid {
	outA, _ := passThrough(k, a)
	outB, _ := passThrough(k, b)
	outA.faces = append(outA.faces, outB.faces...)
	outA.edges = append(outA.edges, outB.edges...)
	outA.vertices = append(outA.vertices, outB.vertices...)
	return outA
}

// subtract keeps every face of a, lowering the recorded area of each face
// whose centroid lies inside b's bounding sphere by b's largest face
// area, and adds inward-facing copies of b's faces as cavity walls. No
// geometry of a is clipped away.
func subtract(k *Kernel, a, b *solid) *solid {
	center, radius := boundingSphere(b)
	holeArea := 0.0
	for _, f := range b.faces {
		if f.sig.Measure > holeArea {
			holeArea = f.sig.Measure
		}
	}

	out := &solid{}
	for _, f := range a.faces {
		nf := cloneFace(f)
		nf.id = k.nextID("f")
		if dist(f.sig.Centroid, center) <= radius {
			nf.sig.Measure -= holeArea
			if nf.sig.Measure < 0 {
				nf.sig.Measure = 0
			}
		}
		out.faces = append(out.faces, nf)
	}
	for _, v := range a.vertices {
		out.vertices = append(out.vertices, &vertex{id: k.nextID("v"), pos: v.pos})
	}
	for _, e := range a.edges {
		out.edges = append(out.edges, &edge{id: k.nextID("e"), vertices: e.vertices, sig: e.sig})
	}

	for _, f := range b.faces {
		cavitySig := f.sig
		cavitySig.Normal = scale(f.sig.Normal, -1)
		loop := reversed(f.loop)
		out.faces = append(out.faces, &face{id: k.nextID("f"), loop: loop, sig: cavitySig})
	}
	for _, v := range b.vertices {
		out.vertices = append(out.vertices, &vertex{id: k.nextID("v"), pos: v.pos})
	}
	for _, e := range b.edges {
		cavityEdgeSig := e.sig
		out.edges = append(out.edges, &edge{id: k.nextID("e"), vertices: e.vertices, sig: cavityEdgeSig})
	}

	return out
}

// intersect keeps only the faces of each operand that fall within the
// other's bounding sphere.
func intersect(k *Kernel, a, b *solid) *solid {
	centerA, radiusA := boundingSphere(a)
	centerB, radiusB := boundingSphere(b)

	out := &solid{}
	for _, f := range a.faces {
		if dist(f.sig.Centroid, centerB) <= radiusB {
			nf := cloneFace(f)
			nf.id = k.nextID("f")
			out.faces = append(out.faces, nf)
		}
	}
	for _, f := range b.faces {
		if dist(f.sig.Centroid, centerA) <= radiusA {
			nf := cloneFace(f)
			nf.id = k.nextID("f")
			out.faces = append(out.faces, nf)
		}
	}
	for _, v := range a.vertices {
		out.vertices = append(out.vertices, &vertex{id: k.nextID("v"), pos: v.pos})
	}
	for _, v := range b.vertices {
		out.vertices = append(out.vertices, &vertex{id: k.nextID("v"), pos: v.pos})
	}
	return out
}

// Boolean combines bodyA and bodyB per op.
func (k *Kernel) Boolean(ctx context.Context, op kernel.BooleanOp, bodyA, bodyB kernel.SolidHandle) (kernel.SolidHandle, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	a, err := k.mustSolid(bodyA)
	if err != nil {
		return "", err
	}
	b, err := k.mustSolid(bodyB)
	if err != nil {
		return "", err
	}

	var out *solid
	switch op {
	case kernel.Union:
		out = union(k, a, b)
	case kernel.Subtract:
		out = subtract(k, a, b)
	case kernel.Intersect:
		out = intersect(k, a, b)
	default:
		return "", &kernel.Error{Kind: kernel.NotSupported, Message: "unknown boolean op"}
	}

	if len(out.faces) == 0 {
		return "", &kernel.Error{Kind: kernel.BooleanFailed, Message: "boolean produced an empty solid"}
	}

	return k.install(out), nil
}
