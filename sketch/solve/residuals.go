package solve

import (
	"math"

	"github.com/foundrycad/waffle-iron/sketch"
)

type varIndex = map[sketch.EntityID][2]int

// lineTable maps a Line's id to its Start/End point ids, so residual
// closures can resolve a line's direction without holding a reference to
// the original entity slice.
type lineTable = map[sketch.EntityID][2]sketch.EntityID

func buildLineTable(entities []sketch.Entity) lineTable {
	t := make(lineTable)
	for _, e := range entities {
		if l, ok := e.(sketch.Line); ok {
			t[l.LineID] = [2]sketch.EntityID{l.Start, l.End}
		}
	}
	return t
}

// circleTable maps a Circle's id to its center point id, so Tangent can
// tell a circle operand from a line operand.
type circleTable = map[sketch.EntityID]sketch.EntityID

func buildCircleTable(entities []sketch.Entity) circleTable {
	t := make(circleTable)
	for _, e := range entities {
		if c, ok := e.(sketch.Circle); ok {
			t[c.CircleID] = c.Center
		}
	}
	return t
}

func pointXY(idx varIndex, id sketch.EntityID, params []float64) (float64, float64) {
	entry, ok := idx[id]
	if !ok {
		return 0, 0
	}
	return params[entry[0]], params[entry[1]]
}

func radiusOf(idx varIndex, id sketch.EntityID, params []float64) float64 {
	entry, ok := idx[id]
	if !ok {
		return 0
	}
	return params[entry[0]]
}

// residualsFor expands one sketch constraint into one or more scalar
// residual functions of the full parameter vector; each should be driven
// to zero at a solution.
func residualsFor(c sketch.Constraint, idx varIndex, lines lineTable, circles circleTable) []func([]float64) float64 {
	switch v := c.(type) {
	case sketch.Coincident:
		return []func([]float64) float64{
			func(p []float64) float64 { ax, _ := pointXY(idx, v.A, p); bx, _ := pointXY(idx, v.B, p); return ax - bx },
			func(p []float64) float64 { _, ay := pointXY(idx, v.A, p); _, by := pointXY(idx, v.B, p); return ay - by },
		}

	case sketch.Distance:
		return []func([]float64) float64{func(p []float64) float64 {
			ax, ay := pointXY(idx, v.A, p)
			bx, by := pointXY(idx, v.B, p)
			return math.Hypot(bx-ax, by-ay) - v.Value
		}}

	case sketch.Horizontal:
		return lineResidual(idx, lines, v.Line, func(dx, dy float64) float64 { return dy })

	case sketch.Vertical:
		return lineResidual(idx, lines, v.Line, func(dx, dy float64) float64 { return dx })

	case sketch.Parallel:
		return []func([]float64) float64{func(p []float64) float64 {
			d1 := lineDir(idx, lines, v.A, p)
			d2 := lineDir(idx, lines, v.B, p)
			return d1.X*d2.Y - d1.Y*d2.X // cross product == 0 when parallel
		}}

	case sketch.Perpendicular:
		return []func([]float64) float64{func(p []float64) float64 {
			d1 := lineDir(idx, lines, v.A, p)
			d2 := lineDir(idx, lines, v.B, p)
			return d1.X*d2.X + d1.Y*d2.Y // dot product == 0 when perpendicular
		}}

	case sketch.EqualLength:
		return []func([]float64) float64{func(p []float64) float64 {
			return lineLength(idx, lines, v.A, p) - lineLength(idx, lines, v.B, p)
		}}

	case sketch.Tangent:
		return []func([]float64) float64{func(p []float64) float64 {
			return tangentResidual(idx, lines, circles, v.A, v.B, p)
		}}

	case sketch.Midpoint:
		return []func([]float64) float64{
			func(p []float64) float64 {
				mx, _ := midOf(idx, lines, v.Line, p)
				px, _ := pointXY(idx, v.Point, p)
				return px - mx
			},
			func(p []float64) float64 {
				_, my := midOf(idx, lines, v.Line, p)
				_, py := pointXY(idx, v.Point, p)
				return py - my
			},
		}

	case sketch.PointOnLine:
		return []func([]float64) float64{func(p []float64) float64 {
			return pointLineSignedDistance(idx, lines, v.Point, v.Line, p)
		}}

	case sketch.PointOnCircle:
		return []func([]float64) float64{func(p []float64) float64 {
			cx, cy := pointXY(idx, v.Circle, p)
			px, py := pointXY(idx, v.Point, p)
			r := radiusOf(idx, v.Circle, p)
			return math.Hypot(px-cx, py-cy) - r
		}}

	case sketch.Angle:
		return []func([]float64) float64{func(p []float64) float64 {
			d1 := lineDir(idx, lines, v.A, p)
			d2 := lineDir(idx, lines, v.B, p)
			theta := math.Atan2(d1.X*d2.Y-d1.Y*d2.X, d1.X*d2.X+d1.Y*d2.Y)
			return theta - v.Deg*math.Pi/180
		}}

	case sketch.Radius:
		return []func([]float64) float64{func(p []float64) float64 { return radiusOf(idx, v.Circle, p) - v.Value }}

	case sketch.Diameter:
		return []func([]float64) float64{func(p []float64) float64 { return 2*radiusOf(idx, v.Circle, p) - v.Value }}

	case sketch.Symmetric:
		return mirrorResiduals(idx, v.A, v.B, v.About)

	case sketch.SymmetricH:
		return []func([]float64) float64{func(p []float64) float64 {
			_, ay := pointXY(idx, v.A, p)
			_, by := pointXY(idx, v.B, p)
			return ay - by
		}}

	case sketch.SymmetricV:
		return []func([]float64) float64{func(p []float64) float64 {
			ax, _ := pointXY(idx, v.A, p)
			bx, _ := pointXY(idx, v.B, p)
			return ax - bx
		}}

	case sketch.WhereDragged:
		return []func([]float64) float64{
			func(p []float64) float64 { x, _ := pointXY(idx, v.Point, p); return x - v.X },
			func(p []float64) float64 { _, y := pointXY(idx, v.Point, p); return y - v.Y },
		}

	case sketch.PointLineDistance:
		return []func([]float64) float64{func(p []float64) float64 {
			return math.Abs(pointLineSignedDistance(idx, lines, v.Point, v.Line, p)) - v.Value
		}}

	case sketch.LengthRatio:
		return []func([]float64) float64{func(p []float64) float64 {
			la := lineLength(idx, lines, v.A, p)
			lb := lineLength(idx, lines, v.B, p)
			if lb == 0 {
				return la
			}
			return la/lb - v.Ratio
		}}

	default:
		return nil
	}
}

func lineResidual(idx varIndex, lines lineTable, lineID sketch.EntityID, f func(dx, dy float64) float64) []func([]float64) float64 {
	return []func([]float64) float64{func(p []float64) float64 {
		d := lineDir(idx, lines, lineID, p)
		return f(d.X, d.Y)
	}}
}

func lineDir(idx varIndex, lines lineTable, lineID sketch.EntityID, p []float64) sketch.Vec2 {
	ends, ok := lines[lineID]
	if !ok {
		return sketch.Vec2{}
	}
	sx, sy := pointXY(idx, ends[0], p)
	ex, ey := pointXY(idx, ends[1], p)
	return sketch.Vec2{X: ex - sx, Y: ey - sy}
}

func lineLength(idx varIndex, lines lineTable, lineID sketch.EntityID, p []float64) float64 {
	d := lineDir(idx, lines, lineID, p)
	return math.Hypot(d.X, d.Y)
}

func midOf(idx varIndex, lines lineTable, lineID sketch.EntityID, p []float64) (float64, float64) {
	ends, ok := lines[lineID]
	if !ok {
		return 0, 0
	}
	sx, sy := pointXY(idx, ends[0], p)
	ex, ey := pointXY(idx, ends[1], p)
	return (sx + ex) / 2, (sy + ey) / 2
}

func pointLineSignedDistance(idx varIndex, lines lineTable, pointID, lineID sketch.EntityID, p []float64) float64 {
	ends, ok := lines[lineID]
	if !ok {
		return 0
	}
	sx, sy := pointXY(idx, ends[0], p)
	ex, ey := pointXY(idx, ends[1], p)
	px, py := pointXY(idx, pointID, p)
	dx, dy := ex-sx, ey-sy
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(px-sx, py-sy)
	}
	return ((px-sx)*dy - (py-sy)*dx) / length
}

// tangentResidual handles the two shapes Tangent commonly constrains: two
// circles (distance between centers minus the sum of radii) or a line and
// a circle (perpendicular distance from center to line minus the radius).
func tangentResidual(idx varIndex, lines lineTable, circles circleTable, a, b sketch.EntityID, p []float64) float64 {
	centerA, aIsCircle := circles[a]
	centerB, bIsCircle := circles[b]

	if aIsCircle && bIsCircle {
		ax, ay := pointXY(idx, centerA, p)
		bx, by := pointXY(idx, centerB, p)
		return math.Hypot(bx-ax, by-ay) - (radiusOf(idx, a, p) + radiusOf(idx, b, p))
	}
	if aIsCircle {
		return math.Abs(pointLineSignedDistance(idx, lines, centerA, b, p)) - radiusOf(idx, a, p)
	}
	if bIsCircle {
		return math.Abs(pointLineSignedDistance(idx, lines, centerB, a, p)) - radiusOf(idx, b, p)
	}
	return 0
}

func mirrorResiduals(idx varIndex, a, b, about sketch.EntityID) []func([]float64) float64 {
	return []func([]float64) float64{
		func(p []float64) float64 {
			ax, _ := pointXY(idx, a, p)
			bx, _ := pointXY(idx, b, p)
			mx, _ := pointXY(idx, about, p)
			return (ax + bx) - 2*mx
		},
		func(p []float64) float64 {
			_, ay := pointXY(idx, a, p)
			_, by := pointXY(idx, b, p)
			_, my := pointXY(idx, about, p)
			return (ay + by) - 2*my
		},
	}
}
