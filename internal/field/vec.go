package field

import "math"

// Vec3 is a simulation-space vector. The field lives in a right-handed
// space with +Z toward the camera.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) LenSq() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }
func (v Vec3) Len() float64   { return math.Sqrt(v.LenSq()) }

// Norm returns the unit vector, or zero if v is (near-)zero.
func (v Vec3) Norm() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

func lerpVec(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: lerpF(a.X, b.X, t),
		Y: lerpF(a.Y, b.Y, t),
		Z: lerpF(a.Z, b.Z, t),
	}
}

// perp returns an arbitrary unit vector orthogonal to v, rotated around v
// by a random azimuth.
func perp(v Vec3, r *Rand) Vec3 {
	// Pick the axis least aligned with v to build a stable basis.
	ref := Vec3{X: 1}
	if math.Abs(v.X) > math.Abs(v.Y) {
		ref = Vec3{Y: 1}
	}
	u := cross(v, ref).Norm()
	w := cross(v, u)
	a := r.RangeF(0, 2*math.Pi)
	return u.Scale(math.Cos(a)).Add(w.Scale(math.Sin(a)))
}

func cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}
