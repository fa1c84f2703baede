package sketch

import (
	"math"
	"sort"
)

// ClosedProfile is an ordered loop of point ids bounding a sketch region.
type ClosedProfile struct {
	Points  []EntityID
	IsOuter bool
}

type halfEdge struct {
	from, to EntityID
	angle    float64 // departure angle at "from", in radians
}

// ExtractProfiles builds every closed profile a sketch's non-construction
// line/arc network bounds, plus one automatic outer profile per
// standalone non-construction circle.
//
// Algorithm: build a directed half-edge for each direction of every
// non-construction line/arc, group them by origin vertex sorted by
// departure angle, then walk each unvisited half-edge choosing at every
// vertex the next edge with the smallest positive angular delta from the
// reversed incoming edge. That walk traces every bounded face plus one
// unbounded outer face, which is dropped afterward.
func (s *Sketch) ExtractProfiles() []ClosedProfile {
	pos := s.resolvedPositions()

	edges := s.buildHalfEdges(pos)
	byOrigin := make(map[EntityID][]halfEdge)
	for _, he := range edges {
		byOrigin[he.from] = append(byOrigin[he.from], he)
	}
	for v := range byOrigin {
		list := byOrigin[v]
		sort.Slice(list, func(i, j int) bool { return list[i].angle < list[j].angle })
		byOrigin[v] = list
	}

	visited := make(map[halfEdge]bool)
	var loops []ClosedProfile

	for _, start := range edges {
		if visited[start] {
			continue
		}
		loop, ok := walkFace(start, byOrigin, visited)
		if ok && len(loop) >= 3 {
			area := signedArea(loop, pos)
			loops = append(loops, ClosedProfile{Points: loop, IsOuter: area >= 0})
		}
	}

	loops = dropUnboundedFace(loops, pos)

	for _, e := range s.Entities {
		c, ok := e.(Circle)
		if !ok || c.Construction {
			continue
		}
		if !circleHasAttachedEdges(c, s.Entities) {
			loops = append(loops, ClosedProfile{Points: []EntityID{c.Center}, IsOuter: true})
		}
	}

	return loops
}

func (s *Sketch) resolvedPositions() map[EntityID]Vec2 {
	if s.Positions != nil {
		return s.Positions
	}
	pos := make(map[EntityID]Vec2)
	for _, e := range s.Entities {
		if p, ok := e.(Point); ok {
			pos[p.PointID] = Vec2{X: p.X, Y: p.Y}
		}
	}
	return pos
}

func (s *Sketch) buildHalfEdges(pos map[EntityID]Vec2) []halfEdge {
	var out []halfEdge
	addPair := func(a, b EntityID) {
		pa, pb := pos[a], pos[b]
		out = append(out,
			halfEdge{from: a, to: b, angle: math.Atan2(pb.Y-pa.Y, pb.X-pa.X)},
			halfEdge{from: b, to: a, angle: math.Atan2(pa.Y-pb.Y, pa.X-pb.X)},
		)
	}
	for _, e := range s.Entities {
		switch v := e.(type) {
		case Line:
			if !v.Construction {
				addPair(v.Start, v.End)
			}
		case Arc:
			if !v.Construction {
				addPair(v.Start, v.End)
			}
		}
	}
	return out
}

// walkFace traces one face starting from he, returning the ordered point
// ids visited. At each vertex it picks the outgoing edge immediately
// after the reversed incoming direction in angle-sorted order, which is
// the standard planar-subdivision face-tracing rule.
func walkFace(start halfEdge, byOrigin map[EntityID][]halfEdge, visited map[halfEdge]bool) ([]EntityID, bool) {
	loop := []EntityID{start.from}
	current := start
	for i := 0; i < 10000; i++ {
		visited[current] = true
		loop = append(loop, current.to)

		reversedAngle := math.Atan2(-math.Sin(current.angle), -math.Cos(current.angle))
		next, ok := nextHalfEdge(current.to, reversedAngle, byOrigin)
		if !ok {
			return nil, false
		}
		if next == start {
			if len(loop) > 0 && loop[len(loop)-1] == loop[0] {
				loop = loop[:len(loop)-1]
			}
			return loop, true
		}
		current = next
	}
	return nil, false
}

// nextHalfEdge picks the outgoing edge at vertex with the smallest
// positive angular delta from reversedAngle, skipping the edge that
// directly reverses current (delta ~ 0) unless it is the only option:
// a dangling edge with no other connection must turn straight back.
func nextHalfEdge(vertex EntityID, reversedAngle float64, byOrigin map[EntityID][]halfEdge) (halfEdge, bool) {
	candidates := byOrigin[vertex]
	if len(candidates) == 0 {
		return halfEdge{}, false
	}

	const angleEps = 1e-9
	var best halfEdge
	bestDelta := math.MaxFloat64
	found := false
	var reverseEdge halfEdge
	hasReverse := false

	for _, c := range candidates {
		delta := angleDelta(reversedAngle, c.angle)
		if delta <= angleEps {
			reverseEdge = c
			hasReverse = true
			continue
		}
		if delta < bestDelta {
			bestDelta = delta
			best = c
			found = true
		}
	}
	if found {
		return best, true
	}
	if hasReverse {
		return reverseEdge, true
	}
	return halfEdge{}, false
}

// angleDelta returns the positive CCW rotation from a to b, in [0, 2π).
func angleDelta(a, b float64) float64 {
	d := b - a
	for d < 0 {
		d += 2 * math.Pi
	}
	for d >= 2*math.Pi {
		d -= 2 * math.Pi
	}
	return d
}

func signedArea(loop []EntityID, pos map[EntityID]Vec2) float64 {
	sum := 0.0
	for i := range loop {
		a := pos[loop[i]]
		b := pos[loop[(i+1)%len(loop)]]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// dropUnboundedFace removes the single loop with the largest absolute
// area that winds clockwise, which is the walk's unbounded outer face.
func dropUnboundedFace(loops []ClosedProfile, pos map[EntityID]Vec2) []ClosedProfile {
	if len(loops) <= 1 {
		return loops
	}
	worstIdx := -1
	worstArea := 0.0
	for i, l := range loops {
		area := signedArea(l.Points, pos)
		if area < 0 && math.Abs(area) > worstArea {
			worstArea = math.Abs(area)
			worstIdx = i
		}
	}
	if worstIdx < 0 {
		return loops
	}
	out := make([]ClosedProfile, 0, len(loops)-1)
	for i, l := range loops {
		if i != worstIdx {
			out = append(out, l)
		}
	}
	return out
}

func circleHasAttachedEdges(c Circle, entities []Entity) bool {
	for _, e := range entities {
		if a, ok := e.(Arc); ok && a.Center == c.Center {
			return true
		}
	}
	return false
}
