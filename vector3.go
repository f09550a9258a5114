package gobsp

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NormalizeEpsilon is the length at or below which a vector is treated as zero.
const NormalizeEpsilon = 1e-12

type Vector3 struct {
	X float64
	Y float64
	Z float64
}

func NewVector3(x, y, z float64) Vector3 {
	return Vector3{
		X: x,
		Y: y,
		Z: z,
	}
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vector3) Negate() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. A zero-length vector has no
// direction and yields a degenerate vector error instead of a default.
func (v Vector3) Normalize() (Vector3, error) {
	length := v.Length()
	if length <= NormalizeEpsilon || math.IsNaN(length) {
		return Vector3{}, newDegenerateVectorError(v)
	}
	return v.Scale(1 / length), nil
}

// DistanceTo
func (v Vector3) DistanceTo(other Vector3) float64 {
	return v.Sub(other).Length()
}

// RotateY rotates v by rads around the vertical axis.
func (v Vector3) RotateY(rads float64) Vector3 {
	return fromVec3(mgl64.Rotate3DY(rads).Mul3x1(v.Vec3()))
}

// AngleTo returns the unsigned angle between v and o in radians.
func (v Vector3) AngleTo(o Vector3) (float64, error) {
	a, err := v.Normalize()
	if err != nil {
		return 0, err
	}
	b, err := o.Normalize()
	if err != nil {
		return 0, err
	}
	// atan2 keeps precision for nearly parallel vectors where acos does not
	return math.Atan2(a.Vec3().Cross(b.Vec3()).Len(), mgl64.Clamp(a.Dot(b), -1, 1)), nil
}

func (v Vector3) ApproxEqual(o Vector3, threshold float64) bool {
	return mgl64.FloatEqualThreshold(v.X, o.X, threshold) &&
		mgl64.FloatEqualThreshold(v.Y, o.Y, threshold) &&
		mgl64.FloatEqualThreshold(v.Z, o.Z, threshold)
}

func (v Vector3) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromVec3(v mgl64.Vec3) Vector3 {
	return Vector3{v[0], v[1], v[2]}
}

func Midpoint(p1, p2 Point3) Point3 {
	return Point3{
		X: (p1.X + p2.X) / 2,
		Y: (p1.Y + p2.Y) / 2,
		Z: (p1.Z + p2.Z) / 2,
	}
}
