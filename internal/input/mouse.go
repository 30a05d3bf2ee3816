// Package input feeds mouse state into the gesture machine.
package input

import (
	"cube-engine/internal/gesture"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Picker resolves a screen position to the cubie under it.
type Picker interface {
	At(pos rl.Vector2) (gesture.Hit, bool)
}

// Target receives pointer events.
type Target interface {
	PointerDown(hit gesture.Hit, ok bool)
	PointerMove(hit gesture.Hit, ok bool)
	PointerUp()
}

// Frame is the left-button state sampled once per frame.
type Frame struct {
	Pos      rl.Vector2
	Pressed  bool
	Down     bool
	Released bool
}

// Mouse turns per-frame button state into pointer events. Moves are only reported while the
// button is held and the cursor has moved since the last event.
type Mouse struct {
	picker Picker
	target Target
	last   rl.Vector2
}

// NewMouse returns a mouse adapter.
func NewMouse(picker Picker, target Target) *Mouse {
	return &Mouse{picker: picker, target: target}
}

// Update samples raylib's mouse state. Call once per frame before the camera update.
func (m *Mouse) Update() {
	m.Handle(Frame{
		Pos:      rl.GetMousePosition(),
		Pressed:  rl.IsMouseButtonPressed(rl.MouseLeftButton),
		Down:     rl.IsMouseButtonDown(rl.MouseLeftButton),
		Released: rl.IsMouseButtonReleased(rl.MouseLeftButton),
	})
}

// Handle dispatches one frame of button state.
func (m *Mouse) Handle(f Frame) {
	switch {
	case f.Pressed:
		m.last = f.Pos
		m.target.PointerDown(m.picker.At(f.Pos))
	case f.Down && f.Pos != m.last:
		m.last = f.Pos
		m.target.PointerMove(m.picker.At(f.Pos))
	}
	if f.Released {
		m.target.PointerUp()
	}
}
