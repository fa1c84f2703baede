package memkernel

import (
	"math"

	"github.com/foundrycad/waffle-iron/sig"
)

func add(a, b sig.Vec3) sig.Vec3   { return sig.Vec3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z} }
func scale(a sig.Vec3, t float64) sig.Vec3 { return sig.Vec3{X: a.X * t, Y: a.Y * t, Z: a.Z * t} }

func cross(a, b sig.Vec3) sig.Vec3 {
	return sig.Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func normalize(v sig.Vec3) sig.Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return scale(v, 1/l)
}

func centroidOf(loop []sig.Vec3) sig.Vec3 {
	var c sig.Vec3
	for _, p := range loop {
		c = add(c, p)
	}
	n := float64(len(loop))
	if n == 0 {
		return c
	}
	return scale(c, 1/n)
}

// polygonArea3D computes the area of a (roughly) planar polygon via the
// cross-product shoelace generalization.
func polygonArea3D(loop []sig.Vec3) float64 {
	if len(loop) < 3 {
		return 0
	}
	var sum sig.Vec3
	origin := loop[0]
	for i := 1; i+1 < len(loop); i++ {
		sum = add(sum, cross(loop[i].Sub(origin), loop[i+1].Sub(origin)))
	}
	return 0.5 * sum.Len()
}

func polygonNormal(loop []sig.Vec3) sig.Vec3 {
	if len(loop) < 3 {
		return sig.Vec3{}
	}
	var sum sig.Vec3
	origin := loop[0]
	for i := 1; i+1 < len(loop); i++ {
		sum = add(sum, cross(loop[i].Sub(origin), loop[i+1].Sub(origin)))
	}
	return normalize(sum)
}

// circlePoints returns n points around a circle of radius r centered at
// (cx, cy) in workplane coordinates, expressed in world space via toWorld.
func circlePoints(cx, cy, r float64, n int, toWorld func(x, y float64) sig.Vec3) []sig.Vec3 {
	pts := make([]sig.Vec3, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = toWorld(cx+r*math.Cos(theta), cy+r*math.Sin(theta))
	}
	return pts
}

func dist(a, b sig.Vec3) float64 { return a.Sub(b).Len() }
