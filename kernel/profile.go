package kernel

import "github.com/foundrycad/waffle-iron/sig"

// Workplane anchors a 2D sketch in 3D space: Origin is the plane's origin,
// Normal/U/V form a right-handed orthonormal basis (Normal = U x V).
type Workplane struct {
	Origin sig.Vec3
	Normal sig.Vec3
	U      sig.Vec3
	V      sig.Vec3
}

// ToWorld maps a 2D sketch-space point into 3D world space through the
// workplane's basis.
func (w Workplane) ToWorld(x, y float64) sig.Vec3 {
	return sig.Vec3{
		X: w.Origin.X + w.U.X*x + w.V.X*y,
		Y: w.Origin.Y + w.U.Y*x + w.V.Y*y,
		Z: w.Origin.Z + w.U.Z*x + w.V.Z*y,
	}
}

// StandardWorkplane returns one of the three fixed datum planes usable as
// a GeomRef anchor (DatumPlane{XY|XZ|YZ}).
func StandardWorkplane(name string) Workplane {
	switch name {
	case "XY":
		return Workplane{Normal: sig.Vec3{Z: 1}, U: sig.Vec3{X: 1}, V: sig.Vec3{Y: 1}}
	case "XZ":
		return Workplane{Normal: sig.Vec3{Y: -1}, U: sig.Vec3{X: 1}, V: sig.Vec3{Z: 1}}
	case "YZ":
		return Workplane{Normal: sig.Vec3{X: 1}, U: sig.Vec3{Y: 1}, V: sig.Vec3{Z: 1}}
	default:
		panic("kernel: unknown standard workplane " + name)
	}
}

// Profile is a closed 2D loop (in workplane-local coordinates) ready to be
// extruded or revolved, plus whether it is the outer boundary of its
// sketch.
type Profile struct {
	Plane   Workplane
	Loop    [][2]float64 // sketch-local (x, y) points, in order
	IsOuter bool
}
