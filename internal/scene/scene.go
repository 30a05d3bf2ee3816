package scene

import (
	"cube-engine/internal/lattice"
	"cube-engine/internal/render"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene holds a 3D camera orbiting the puzzle and draws the lattice. Update runs camera logic;
// Draw renders between BeginMode3D and EndMode3D.
type Scene struct {
	Camera   rl.Camera3D
	Orbit    *Orbit
	lat      *lattice.Lattice
	renderer *render.Renderer
}

// New returns a scene with a perspective camera at distance along the (1,1,1) diagonal,
// looking at the origin.
func New(lat *lattice.Lattice, renderer *render.Renderer, distance, fovy float32) *Scene {
	d := distance / math32.Sqrt(3)
	s := &Scene{
		Orbit:    NewOrbit(mgl32.Vec3{d, d, d}),
		lat:      lat,
		renderer: renderer,
	}
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = fovy
	s.Camera.Projection = rl.CameraPerspective
	s.sync()
	return s
}

// SetEnabled turns the orbit controls on or off. The gesture machine switches them off for
// the duration of a drag that started on a cubie.
func (s *Scene) SetEnabled(enabled bool) {
	s.Orbit.SetEnabled(enabled)
}

// Update runs once per frame, after pointer handling so a press on a cubie has already
// disabled the orbit.
func (s *Scene) Update() {
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.GetMouseDelta()
		s.Orbit.Drag(-delta.X, delta.Y)
	}
	s.Orbit.Zoom(rl.GetMouseWheelMove())
	s.sync()
}

func (s *Scene) sync() {
	s.Camera.Position = render.Vec3(s.Orbit.Position())
}

// Draw renders the lattice lit from the camera's upper right.
func (s *Scene) Draw() {
	pos := s.Camera.Position
	s.renderer.SetView([3]float32{pos.X, pos.Y, pos.Z}, [3]float32{pos.X + pos.Z, pos.Y * 2, pos.Z - pos.X})
	rl.BeginMode3D(s.Camera)
	s.renderer.Draw(s.lat)
	rl.EndMode3D()
}
