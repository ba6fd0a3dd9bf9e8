package scene

import (
	"github.com/quillon/prism/viewer/math"
)

// Canonical default pose: target at origin, fixed radius, fixed
// azimuth/elevation. Used on empty loads, failed loads and when framing
// finds no usable geometry.
const (
	DefaultCameraRadius float32 = 10.0
	DefaultCameraAlpha  float32 = -math.HalfPi
	DefaultCameraBeta   float32 = math.Pi / 2.5

	DefaultNearClip float32 = 0.1
	DefaultFarClip  float32 = 1000.0

	// MinCameraRadius is the floor for the orbit distance so degenerate
	// single-point geometry never collapses the camera onto its target.
	MinCameraRadius float32 = 0.25
)

// CameraName identifies the session camera in helper-node filtering.
const CameraName = "prism.camera"

// Camera is an orbit camera: it looks at Target from a distance Radius
// at azimuth Alpha and elevation Beta. The view matrix is regenerated
// lazily when any of those change.
type Camera struct {
	Target math.Vec3
	Radius float32
	Alpha  float32
	Beta   float32

	NearClip float32
	FarClip  float32

	// AutoRotate slowly orbits the camera while the scene is idle.
	AutoRotate      bool
	AutoRotateSpeed float32

	isDirty    bool
	viewMatrix math.Mat4
}

func NewCamera() *Camera {
	c := &Camera{
		NearClip:        DefaultNearClip,
		FarClip:         DefaultFarClip,
		AutoRotateSpeed: 0.25,
	}
	c.Reset()
	return c
}

// Reset restores the canonical default pose. Clip planes are user
// configuration, not pose, and survive a reset.
func (c *Camera) Reset() {
	c.Target = math.NewVec3Zero()
	c.Radius = DefaultCameraRadius
	c.Alpha = DefaultCameraAlpha
	c.Beta = DefaultCameraBeta
	c.isDirty = true
}

func (c *Camera) SetTarget(target math.Vec3) {
	c.Target = target
	c.isDirty = true
}

func (c *Camera) SetRadius(radius float32) {
	c.Radius = math.Max(radius, MinCameraRadius)
	c.isDirty = true
}

func (c *Camera) SetClipPlanes(near, far float32) {
	c.NearClip = near
	c.FarClip = far
}

// Orbit rotates the camera around the target. Beta is clamped away from
// the poles to keep the up vector stable.
func (c *Camera) Orbit(deltaAlpha, deltaBeta float32) {
	c.Alpha += deltaAlpha
	c.Beta = math.Clamp(c.Beta+deltaBeta, 0.05, math.Pi-0.05)
	c.isDirty = true
}

// Zoom moves the camera towards or away from the target.
func (c *Camera) Zoom(delta float32) {
	c.SetRadius(c.Radius - delta)
}

// Position derives the eye position from the orbit parameters.
func (c *Camera) Position() math.Vec3 {
	sinBeta := math.Sin(c.Beta)
	return math.Vec3{
		X: c.Target.X + c.Radius*sinBeta*math.Cos(c.Alpha),
		Y: c.Target.Y + c.Radius*math.Cos(c.Beta),
		Z: c.Target.Z + c.Radius*sinBeta*math.Sin(c.Alpha),
	}
}

func (c *Camera) GetView() math.Mat4 {
	if c.isDirty {
		c.viewMatrix = math.NewMat4LookAt(c.Position(), c.Target, math.NewVec3Up())
		c.isDirty = false
	}
	return c.viewMatrix
}

// Advance applies idle auto-rotation for one frame.
func (c *Camera) Advance(deltaTime float64) {
	if c.AutoRotate {
		c.Alpha += c.AutoRotateSpeed * float32(deltaTime)
		c.isDirty = true
	}
}
