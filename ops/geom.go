package ops

import (
	"math"

	"github.com/foundrycad/waffle-iron/sig"
)

func sub(a, b sig.Vec3) sig.Vec3 { return sig.Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z} }
func scale(a sig.Vec3, s float64) sig.Vec3 { return sig.Vec3{X: a.X * s, Y: a.Y * s, Z: a.Z * s} }
func cross(a, b sig.Vec3) sig.Vec3 {
	return sig.Vec3{X: a.Y*b.Z - a.Z*b.Y, Y: a.Z*b.X - a.X*b.Z, Z: a.X*b.Y - a.Y*b.X}
}
func normalize(a sig.Vec3) sig.Vec3 {
	l := a.Len()
	if l == 0 {
		return a
	}
	return scale(a, 1/l)
}

// perpendicularBasis returns two unit vectors u, v such that (u, v, dir)
// is right-handed, used to turn a 3D centroid into an angular position
// around an axis.
func perpendicularBasis(dir sig.Vec3) (u, v sig.Vec3) {
	ref := sig.Vec3{X: 0, Y: 0, Z: 1}
	if math.Abs(dir.Dot(ref)) > 0.99 {
		ref = sig.Vec3{X: 1, Y: 0, Z: 0}
	}
	u = normalize(cross(ref, dir))
	v = normalize(cross(dir, u))
	return u, v
}

// angularPosition returns the angle (radians, unspecified zero point but
// stable across calls) of centroid's projection around an axis through
// origin with direction dir.
func angularPosition(centroid, origin, dir sig.Vec3) float64 {
	u, v := perpendicularBasis(dir)
	rel := sub(centroid, origin)
	return math.Atan2(rel.Dot(v), rel.Dot(u))
}

func axisOrigin(faces []sig.Signature) sig.Vec3 {
	if len(faces) == 0 {
		return sig.Vec3{}
	}
	sum := sig.Vec3{}
	for _, f := range faces {
		sum = sig.Vec3{X: sum.X + f.Centroid.X, Y: sum.Y + f.Centroid.Y, Z: sum.Z + f.Centroid.Z}
	}
	n := float64(len(faces))
	return sig.Vec3{X: sum.X / n, Y: sum.Y / n, Z: sum.Z / n}
}
