package gobsp

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultFOV = 60.0

	maxPitch = math.Pi/2 - 0.01
)

// Camera is a viewer pose. With zero yaw and pitch it looks down -Z with +Y
// up; positive yaw turns left and positive pitch looks up.
type Camera struct {
	Position Point3
	Yaw      float64
	Pitch    float64

	// FOV is the full opening angle in degrees.
	FOV float64
}

func NewCamera(x, y, z, yaw, pitch float64) *Camera {
	return &Camera{
		Position: NewPoint3(x, y, z),
		Yaw:      yaw,
		Pitch:    mgl64.Clamp(pitch, -maxPitch, maxPitch),
		FOV:      DefaultFOV,
	}
}

// NewCameraLookAt places a camera at eye facing target.
func NewCameraLookAt(eye, target Point3) (*Camera, error) {
	dir, err := target.Sub(eye).Normalize()
	if err != nil {
		return nil, err
	}

	pitch := math.Asin(mgl64.Clamp(dir.Y, -1, 1))
	yaw := math.Atan2(-dir.X, -dir.Z)
	return NewCamera(eye.X, eye.Y, eye.Z, yaw, pitch), nil
}

func (c *Camera) rotation() mgl64.Mat3 {
	return mgl64.Rotate3DY(c.Yaw).Mul3(mgl64.Rotate3DX(c.Pitch))
}

// Direction is the unit vector the camera looks along.
func (c *Camera) Direction() Vector3 {
	return fromVec3(c.rotation().Mul3x1(mgl64.Vec3{0, 0, -1}))
}

// Forward is the viewing direction flattened onto the ground plane.
func (c *Camera) Forward() Vector3 {
	return fromVec3(mgl64.Rotate3DY(c.Yaw).Mul3x1(mgl64.Vec3{0, 0, -1}))
}

func (c *Camera) Right() Vector3 {
	return fromVec3(mgl64.Rotate3DY(c.Yaw).Mul3x1(mgl64.Vec3{1, 0, 0}))
}

func (c *Camera) AddAngle(yaw, pitch float64) {
	c.Yaw += yaw
	c.Pitch = mgl64.Clamp(c.Pitch+pitch, -maxPitch, maxPitch)
}

// Move walks the camera along the ground: forward along Forward, strafe
// along Right.
func (c *Camera) Move(forward, strafe float64) {
	c.Position = c.Position.
		Add(c.Forward().Scale(forward)).
		Add(c.Right().Scale(strafe))
}

func (c *Camera) AddPosition(x, y, z float64) {
	c.Position = c.Position.Add(NewVector3(x, y, z))
}

func (c *Camera) SetPosition(x, y, z float64) {
	c.Position = NewPoint3(x, y, z)
}

func (c *Camera) GetPosition() Point3 {
	return c.Position
}
