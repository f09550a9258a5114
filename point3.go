package gobsp

// Point3 is a position in world space. It shares the representation of
// Vector3 so points and directions mix freely in the plane math.
type Point3 = Vector3

func NewPoint3(x, y, z float64) Point3 {
	return Point3{
		X: x,
		Y: y,
		Z: z,
	}
}
