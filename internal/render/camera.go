package render

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"room-editor/internal/geom"
)

const (
	orbitSensitivity = 0.005 // radians per pixel of mouse movement
	zoomStep         = 1.5
	minPitch         = 0.1
	maxPitch         = math.Pi/2 - 0.05
	minDistance      = 4
	maxDistance      = 60
)

// Camera orbits a perspective camera around a target on the floor. Left-drag turns it while
// orbiting is enabled; the wheel zooms.
type Camera struct {
	Target   mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Distance float32
	Fovy     float32
	enabled  bool
}

// NewCamera returns a camera looking down at the room centre from the south-east, framing a
// room that spans -limit..limit.
func NewCamera(limit float32) *Camera {
	return &Camera{
		Yaw:      math.Pi / 4,
		Pitch:    math.Pi / 4,
		Distance: max(limit*2.2, minDistance),
		Fovy:     45,
		enabled:  true,
	}
}

// SetOrbitEnabled implements interaction.Orbit.
func (c *Camera) SetOrbitEnabled(enabled bool) {
	c.enabled = enabled
}

// OrbitEnabled reports whether mouse drags turn the camera.
func (c *Camera) OrbitEnabled() bool {
	return c.enabled
}

// Update applies this frame's mouse movement. overUI suppresses orbiting and zooming while the
// pointer is over a panel.
func (c *Camera) Update(overUI bool) {
	if overUI {
		return
	}
	if c.enabled && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		d := rl.GetMouseDelta()
		c.Yaw -= d.X * orbitSensitivity
		c.Pitch = mgl32.Clamp(c.Pitch+d.Y*orbitSensitivity, minPitch, maxPitch)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.Distance = mgl32.Clamp(c.Distance-wheel*zoomStep, minDistance, maxDistance)
	}
}

// Position returns the eye position for the current angles.
func (c *Camera) Position() mgl32.Vec3 {
	cp := float32(math.Cos(float64(c.Pitch)))
	offset := mgl32.Vec3{
		cp * float32(math.Sin(float64(c.Yaw))),
		float32(math.Sin(float64(c.Pitch))),
		cp * float32(math.Cos(float64(c.Yaw))),
	}
	return c.Target.Add(offset.Mul(c.Distance))
}

// Camera3D returns the raylib camera for drawing.
func (c *Camera) Camera3D() rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector(c.Position()),
		Target:     toVector(c.Target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// Ray implements interaction.Viewpoint.
func (c *Camera) Ray(x, y float32) geom.Ray {
	r := rl.GetScreenToWorldRay(rl.NewVector2(x, y), c.Camera3D())
	return geom.Ray{Origin: toVec3(r.Position), Dir: toVec3(r.Direction)}
}

func toVector(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

func toVec3(v rl.Vector3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}
