package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// dragSpeed is radians of orbit per pixel of mouse travel.
	dragSpeed = 0.01
	// zoomSpeed scales the distance per wheel notch.
	zoomSpeed = 0.08
	// maxPitch keeps the camera off the poles so the up vector stays valid.
	maxPitch = 1.5
)

// Orbit is a camera that circles the origin. It only reacts to input while enabled, so a drag
// that selects a slice never turns the view.
type Orbit struct {
	Yaw      float32
	Pitch    float32
	Distance float32

	MinDistance float32
	MaxDistance float32

	enabled bool
}

// NewOrbit returns an enabled orbit whose camera sits at from, looking at the origin.
func NewOrbit(from mgl32.Vec3) *Orbit {
	d := from.Len()
	o := &Orbit{
		Distance:    d,
		MinDistance: d / 3,
		MaxDistance: d * 3,
		enabled:     true,
	}
	if d > 0 {
		o.Yaw = math32.Atan2(from[2], from[0])
		o.Pitch = math32.Asin(from[1] / d)
	}
	return o
}

// SetEnabled turns input handling on or off.
func (o *Orbit) SetEnabled(enabled bool) { o.enabled = enabled }

// Enabled reports whether input moves the camera.
func (o *Orbit) Enabled() bool { return o.enabled }

// Drag turns the camera by a mouse delta in pixels.
func (o *Orbit) Drag(dx, dy float32) {
	if !o.enabled {
		return
	}
	o.Yaw += dx * dragSpeed
	o.Pitch = mgl32.Clamp(o.Pitch+dy*dragSpeed, -maxPitch, maxPitch)
}

// Zoom moves the camera towards the origin for positive wheel values.
func (o *Orbit) Zoom(wheel float32) {
	if !o.enabled || wheel == 0 {
		return
	}
	o.Distance = mgl32.Clamp(o.Distance*(1-wheel*zoomSpeed), o.MinDistance, o.MaxDistance)
}

// Position returns the camera position in world space.
func (o *Orbit) Position() mgl32.Vec3 {
	cp := math32.Cos(o.Pitch)
	return mgl32.Vec3{
		o.Distance * cp * math32.Cos(o.Yaw),
		o.Distance * math32.Sin(o.Pitch),
		o.Distance * cp * math32.Sin(o.Yaw),
	}
}
