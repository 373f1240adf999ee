// Package camera provides the orbit camera used to inspect grass fields.
package camera

import (
	gomath "math"

	"github.com/Faultbox/grassland/internal/grass"
	"github.com/Faultbox/grassland/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with defaults for a few metres
// of grass.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        6.0,
		RotationX:       0.5,
		RotationY:       0.0,
		MinDistance:     0.5,
		MaxDistance:     2000.0,
		MinPitch:        0.05,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	pitch, yaw := float64(c.RotationX), float64(c.RotationY)
	offset := math.Vec3{
		X: float32(gomath.Cos(pitch) * gomath.Sin(yaw)),
		Y: float32(gomath.Sin(pitch)),
		Z: float32(gomath.Cos(pitch) * gomath.Cos(yaw)),
	}
	return c.Center.Add(offset.Scale(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{X: 0, Y: 1, Z: 0})
}

// ClipPlanes returns near and far planes scaled to the current distance.
func (c *OrbitCamera) ClipPlanes() (near, far float32) {
	near = c.Distance * 0.01
	if near < 0.01 {
		near = 0.01
	}
	return near, c.Distance * 20
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on b and backs off far enough to see it.
func (c *OrbitCamera) FitToBounds(b grass.Bounds) {
	c.Center = b.Center()

	size := b.Size()
	extent := max(size.X, size.Z)

	c.Distance = clamp(extent*1.2, c.MinDistance, c.MaxDistance)
	c.RotationX = 0.6 // Look down at ~35 degrees
	c.RotationY = 0.0
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
