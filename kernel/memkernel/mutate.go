package memkernel

import (
	"context"
	"math"

	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/sig"
)

// RegisterProfileFace turns a closed sketch profile into a standalone
// planar face with no owning solid.
func (k *Kernel) RegisterProfileFace(ctx context.Context, profile kernel.Profile) (sig.KernelId, error) {
	if len(profile.Loop) < 3 {
		return "", &kernel.Error{Kind: kernel.GeometryDegenerate, Message: "profile needs at least 3 points"}
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	id := k.nextID("f")
	k.profiles[id] = profile
	return id, nil
}

func (k *Kernel) loop3D(p kernel.Profile) []sig.Vec3 {
	loop := make([]sig.Vec3, len(p.Loop))
	for i, pt := range p.Loop {
		loop[i] = p.Plane.ToWorld(pt[0], pt[1])
	}
	return loop
}

// ExtrudeFace builds a prism by sweeping a registered profile face along
// direction by depth.
func (k *Kernel) ExtrudeFace(ctx context.Context, faceID sig.KernelId, direction sig.Vec3, depth float64) (kernel.SolidHandle, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	profile, ok := k.profiles[faceID]
	if !ok {
		return "", &kernel.Error{Kind: kernel.InvalidInput, Message: "face is not a registered profile"}
	}
	if depth == 0 {
		return "", &kernel.Error{Kind: kernel.GeometryDegenerate, Message: "extrude depth must be non-zero"}
	}

	dir := normalize(direction)
	bottom := k.loop3D(profile)
	n := len(bottom)
	top := make([]sig.Vec3, n)
	for i, p := range bottom {
		top[i] = add(p, scale(dir, depth))
	}

	s := &solid{}

	bVerts := make([]*vertex, n)
	tVerts := make([]*vertex, n)
	for i := 0; i < n; i++ {
		bVerts[i] = &vertex{id: k.nextID("v"), pos: bottom[i]}
		tVerts[i] = &vertex{id: k.nextID("v"), pos: top[i]}
		s.vertices = append(s.vertices, bVerts[i], tVerts[i])
	}

	bottomRev := reversed(bottom)
	bottomFace := &face{
		id:   k.nextID("f"),
		loop: bottomRev,
		sig: sig.Signature{
			Kind: sig.Face, SurfaceType: "planar",
			Centroid: centroidOf(bottom), Normal: scale(dir, -1),
			Measure: polygonArea3D(bottom), AdjacencyDegree: n,
		},
	}
	topFace := &face{
		id:   k.nextID("f"),
		loop: top,
		sig: sig.Signature{
			Kind: sig.Face, SurfaceType: "planar",
			Centroid: centroidOf(top), Normal: dir,
			Measure: polygonArea3D(top), AdjacencyDegree: n,
		},
	}
	s.faces = append(s.faces, bottomFace, topFace)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		quad := []sig.Vec3{bottom[i], bottom[j], top[j], top[i]}
		sideFace := &face{
			id:   k.nextID("f"),
			loop: quad,
			sig: sig.Signature{
				Kind: sig.Face, SurfaceType: "planar",
				Centroid: centroidOf(quad), Normal: polygonNormal(quad),
				Measure: polygonArea3D(quad), AdjacencyDegree: 4,
			},
		}
		s.faces = append(s.faces, sideFace)

		bottomEdge := &edge{
			id: k.nextID("e"), vertices: [2]sig.KernelId{bVerts[i].id, bVerts[j].id},
			faces: []sig.KernelId{bottomFace.id, sideFace.id},
			sig:   edgeSig(bottom[i], bottom[j]),
		}
		topEdge := &edge{
			id: k.nextID("e"), vertices: [2]sig.KernelId{tVerts[i].id, tVerts[j].id},
			faces: []sig.KernelId{topFace.id, sideFace.id},
			sig:   edgeSig(top[i], top[j]),
		}
		vertEdge := &edge{
			id: k.nextID("e"), vertices: [2]sig.KernelId{bVerts[i].id, tVerts[i].id},
			faces: []sig.KernelId{sideFace.id},
			sig:   edgeSig(bottom[i], top[i]),
		}
		s.edges = append(s.edges, bottomEdge, topEdge, vertEdge)
		sideFace.edge = []sig.KernelId{bottomEdge.id, topEdge.id, vertEdge.id}
	}

	return k.install(s), nil
}

func edgeSig(a, b sig.Vec3) sig.Signature {
	return sig.Signature{
		Kind: sig.Edge, SurfaceType: "line",
		Centroid: centroidOf([]sig.Vec3{a, b}), Normal: normalize(b.Sub(a)),
		Measure: dist(a, b), AdjacencyDegree: 2,
	}
}

func reversed(loop []sig.Vec3) []sig.Vec3 {
	out := make([]sig.Vec3, len(loop))
	for i, p := range loop {
		out[len(loop)-1-i] = p
	}
	return out
}

func rotateAroundAxis(p, axisOrigin, axisDir sig.Vec3, theta float64) sig.Vec3 {
	a := normalize(axisDir)
	v := p.Sub(axisOrigin)
	cosT, sinT := math.Cos(theta), math.Sin(theta)
	term1 := scale(v, cosT)
	term2 := scale(cross(a, v), sinT)
	term3 := scale(a, a.Dot(v)*(1-cosT))
	return add(axisOrigin, add(add(term1, term2), term3))
}

// RevolveFace sweeps a registered profile face around an axis by angleRad,
// faceted into k.segments angular steps.
func (k *Kernel) RevolveFace(ctx context.Context, faceID sig.KernelId, axisOrigin, axisDir sig.Vec3, angleRad float64) (kernel.SolidHandle, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	profile, ok := k.profiles[faceID]
	if !ok {
		return "", &kernel.Error{Kind: kernel.InvalidInput, Message: "face is not a registered profile"}
	}
	if angleRad <= 0 {
		return "", &kernel.Error{Kind: kernel.GeometryDegenerate, Message: "revolve angle must be positive"}
	}

	base := k.loop3D(profile)
	n := len(base)
	segs := k.segments
	if angleRad < 2*math.Pi {
		if segs < 6 {
			segs = 6
		}
	}

	rings := make([][]sig.Vec3, segs+1)
	for s := 0; s <= segs; s++ {
		theta := angleRad * float64(s) / float64(segs)
		ring := make([]sig.Vec3, n)
		for i, p := range base {
			ring[i] = rotateAroundAxis(p, axisOrigin, axisDir, theta)
		}
		rings[s] = ring
	}

	out := &solid{}
	ringVerts := make([][]*vertex, segs+1)
	for s := 0; s <= segs; s++ {
		ringVerts[s] = make([]*vertex, n)
		for i, p := range rings[s] {
			ringVerts[s][i] = &vertex{id: k.nextID("v"), pos: p}
			out.vertices = append(out.vertices, ringVerts[s][i])
		}
	}

	full := angleRad >= 2*math.Pi-1e-9
	if !full {
		startFace := &face{
			id: k.nextID("f"), loop: reversed(rings[0]),
			sig: sig.Signature{Kind: sig.Face, SurfaceType: "planar", Centroid: centroidOf(rings[0]),
				Normal: polygonNormal(reversed(rings[0])), Measure: polygonArea3D(rings[0]), AdjacencyDegree: n},
		}
		endFace := &face{
			id: k.nextID("f"), loop: rings[segs],
			sig: sig.Signature{Kind: sig.Face, SurfaceType: "planar", Centroid: centroidOf(rings[segs]),
				Normal: polygonNormal(rings[segs]), Measure: polygonArea3D(rings[segs]), AdjacencyDegree: n},
		}
		out.faces = append(out.faces, startFace, endFace)
	}

	for s := 0; s < segs; s++ {
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			quad := []sig.Vec3{rings[s][i], rings[s][j], rings[s+1][j], rings[s+1][i]}
			sf := &face{
				id: k.nextID("f"), loop: quad,
				sig: sig.Signature{Kind: sig.Face, SurfaceType: "cylindrical", Centroid: centroidOf(quad),
					Normal: polygonNormal(quad), Measure: polygonArea3D(quad), AdjacencyDegree: 4},
			}
			out.faces = append(out.faces, sf)
			e1 := &edge{id: k.nextID("e"), vertices: [2]sig.KernelId{ringVerts[s][i].id, ringVerts[s][j].id}, faces: []sig.KernelId{sf.id}, sig: edgeSig(rings[s][i], rings[s][j])}
			e2 := &edge{id: k.nextID("e"), vertices: [2]sig.KernelId{ringVerts[s+1][i].id, ringVerts[s+1][j].id}, faces: []sig.KernelId{sf.id}, sig: edgeSig(rings[s+1][i], rings[s+1][j])}
			out.edges = append(out.edges, e1, e2)
			sf.edge = []sig.KernelId{e1.id, e2.id}
		}
	}

	return k.install(out), nil
}
