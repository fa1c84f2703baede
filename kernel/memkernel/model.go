// Package memkernel is an in-process, analytic stand-in for a real
// geometry kernel binding. It represents every solid as a closed set of
// planar (or faceted-curved) polygon faces and keeps enough bookkeeping
// to answer the Introspect queries exactly, without any external
// dependency or licensed kernel.
//
// Every mutating call mints a brand-new id for every face, edge, and
// vertex it touches, even ones that are geometrically unchanged. Real
// kernels offer no better guarantee across a topology-changing edit,
// and the signature-similarity machinery elsewhere in this module exists
// precisely to cope with that.
package memkernel

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/sig"
)

type face struct {
	id   sig.KernelId
	sig  sig.Signature
	loop []sig.Vec3 // ordered boundary, world space
	edge []sig.KernelId
}

type edge struct {
	id       sig.KernelId
	sig      sig.Signature
	vertices [2]sig.KernelId
	faces    []sig.KernelId
}

type vertex struct {
	id  sig.KernelId
	pos sig.Vec3
}

type solid struct {
	handle   kernel.SolidHandle
	faces    []*face
	edges    []*edge
	vertices []*vertex
}

func (s *solid) faceByID(id sig.KernelId) *face {
	for _, f := range s.faces {
		if f.id == id {
			return f
		}
	}
	return nil
}

func (s *solid) edgeByID(id sig.KernelId) *edge {
	for _, e := range s.edges {
		if e.id == id {
			return e
		}
	}
	return nil
}

// Kernel is the concrete analytic kernel. The zero value is not usable;
// construct one with NewBuilder.
type Kernel struct {
	tolerance float64
	segments  int // angular facet count for revolves

	mu       sync.Mutex
	solids   map[kernel.SolidHandle]*solid
	profiles map[sig.KernelId]kernel.Profile
	seq      uint64
}

func (k *Kernel) nextID(prefix string) sig.KernelId {
	n := atomic.AddUint64(&k.seq, 1)
	return sig.KernelId(fmt.Sprintf("%s%d", prefix, n))
}

func (k *Kernel) nextHandle() kernel.SolidHandle {
	n := atomic.AddUint64(&k.seq, 1)
	return kernel.SolidHandle(fmt.Sprintf("s%d", n))
}

func (k *Kernel) mustSolid(h kernel.SolidHandle) (*solid, error) {
	s, ok := k.solids[h]
	if !ok {
		return nil, &kernel.Error{Kind: kernel.InvalidInput, Message: "unknown solid handle " + string(h)}
	}
	return s, nil
}

func (k *Kernel) install(s *solid) kernel.SolidHandle {
	s.handle = k.nextHandle()
	k.solids[s.handle] = s
	return s.handle
}

func entitiesOf(s *solid) []sig.Entity {
	out := make([]sig.Entity, 0, len(s.faces)+len(s.edges)+len(s.vertices))
	for _, f := range s.faces {
		out = append(out, sig.Entity{ID: f.id, Sig: f.sig})
	}
	for _, e := range s.edges {
		out = append(out, sig.Entity{ID: e.id, Sig: e.sig})
	}
	for _, v := range s.vertices {
		out = append(out, sig.Entity{ID: v.id, Sig: sig.Signature{Kind: sig.Vertex, Centroid: v.pos}})
	}
	return out
}
