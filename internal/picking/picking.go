// Package picking turns a screen position into the cubie under it.
package picking

import (
	"cube-engine/internal/gesture"
	"cube-engine/internal/lattice"
	"cube-engine/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Picker casts rays from the camera into the lattice.
type Picker struct {
	lat *lattice.Lattice
	cam *rl.Camera3D
}

// New returns a picker reading the camera each call, so orbiting needs no re-wiring.
func New(lat *lattice.Lattice, cam *rl.Camera3D) *Picker {
	return &Picker{lat: lat, cam: cam}
}

// At picks under a screen position. Requires an open window.
func (p *Picker) At(pos rl.Vector2) (gesture.Hit, bool) {
	return p.Pick(rl.GetScreenToWorldRay(pos, *p.cam))
}

// Pick returns the nearest top-level cubie the ray strikes and the world normal of the struck
// face. Cubies inside a rotation group are not pickable.
func (p *Picker) Pick(ray rl.Ray) (gesture.Hit, bool) {
	var best gesture.Hit
	found := false
	var bestDist float32
	for _, id := range p.lat.TopLevel() {
		lo, hi := p.lat.WorldBox(id)
		col := rl.GetRayCollisionBox(ray, rl.NewBoundingBox(render.Vec3(lo), render.Vec3(hi)))
		if !col.Hit || col.Distance < 0 {
			continue
		}
		if found && col.Distance >= bestDist {
			continue
		}
		point := render.FromRL(col.Point)
		best = gesture.Hit{Cubie: id, Normal: p.lat.FaceAt(id, point), Point: point}
		bestDist = col.Distance
		found = true
	}
	return best, found
}
