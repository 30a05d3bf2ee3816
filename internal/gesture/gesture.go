// Package gesture turns pointer events into slice turns.
//
// The machine is always in exactly one of three states. Idle waits for a pointer-down on a
// cubie. Anchored remembers that cubie and the face normal that was struck and resolves a slice
// each time the pointer moves onto a different cubie. Animating owns nothing itself but refuses
// every new gesture until the animator reports completion.
package gesture

import (
	"github.com/go-gl/mathgl/mgl32"

	"cube-engine/internal/animator"
	"cube-engine/internal/lattice"
	"cube-engine/internal/resolver"
)

// Phase names the machine's state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAnchored
	PhaseAnimating
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAnchored:
		return "anchored"
	case PhaseAnimating:
		return "animating"
	}
	return "unknown"
}

// Hit is the first cubie under the pointer and the world normal of the face that was struck.
type Hit struct {
	Cubie  lattice.ID
	Normal mgl32.Vec3
	Point  mgl32.Vec3
}

// Camera is the free-look controller. It must not consume drags that select a slice.
type Camera interface {
	SetEnabled(enabled bool)
}

// Lattice is the view of the puzzle the machine needs.
type Lattice interface {
	resolver.Source
	SetHighlight(id lattice.ID, on bool)
	ClearHighlights()
}

// Animator runs the committed turn.
type Animator interface {
	Start(members []lattice.ID, axis mgl32.Vec3, angle float32) error
	Tick() (bool, error)
	Active() bool
}

// Logger receives gesture events. May be nil.
type Logger interface {
	Logf(format string, args ...any)
}

type state interface {
	phase() Phase
}

type idle struct{}

type anchored struct {
	anchor lattice.ID
	normal mgl32.Vec3
}

type animating struct {
	anchor, second lattice.ID
}

func (idle) phase() Phase      { return PhaseIdle }
func (anchored) phase() Phase  { return PhaseAnchored }
func (animating) phase() Phase { return PhaseAnimating }

// Machine is the gesture state machine. All methods run on the frame loop's goroutine.
type Machine struct {
	state state
	lat   Lattice
	res   resolver.Resolver
	anim  Animator
	cam   Camera
	log   Logger
}

// New returns a machine in the idle state.
func New(lat Lattice, res resolver.Resolver, anim Animator, cam Camera, log Logger) *Machine {
	return &Machine{state: idle{}, lat: lat, res: res, anim: anim, cam: cam, log: log}
}

// Phase returns the current state.
func (m *Machine) Phase() Phase { return m.state.phase() }

// Anchor returns the anchored cubie and its struck face normal while a gesture is in progress.
func (m *Machine) Anchor() (lattice.ID, mgl32.Vec3, bool) {
	switch s := m.state.(type) {
	case anchored:
		return s.anchor, s.normal, true
	case animating:
		return s.anchor, mgl32.Vec3{}, true
	}
	return 0, mgl32.Vec3{}, false
}

// PointerDown starts a gesture when the pointer is over a cubie. ok is false for a miss.
func (m *Machine) PointerDown(hit Hit, ok bool) {
	if m.state.phase() == PhaseAnimating || m.anim.Active() || !ok {
		return
	}
	m.lat.ClearHighlights()
	m.lat.SetHighlight(hit.Cubie, true)
	m.setCamera(false)
	m.state = anchored{anchor: hit.Cubie, normal: hit.Normal}
	m.logf("anchored cubie %d, face (%.0f, %.0f, %.0f)", hit.Cubie, hit.Normal[0], hit.Normal[1], hit.Normal[2])
}

// PointerMove resolves a slice once the pointer reaches a cubie other than the anchor.
func (m *Machine) PointerMove(hit Hit, ok bool) {
	s, isAnchored := m.state.(anchored)
	if !isAnchored || !ok || hit.Cubie == s.anchor {
		return
	}
	slice := m.res.Resolve(m.lat, m.lat.Center(s.anchor), s.normal, m.lat.Center(hit.Cubie))
	if !slice.Legal() {
		m.logf("drag %d -> %d unresolved: %s (%d cubies)", s.anchor, hit.Cubie, slice.Reason(), len(slice.Members))
		return
	}
	if err := m.anim.Start(slice.Members, slice.Axis(), animator.QuarterTurn); err != nil {
		m.logf("drag %d -> %d not started: %v", s.anchor, hit.Cubie, err)
		return
	}
	m.lat.SetHighlight(s.anchor, true)
	m.lat.SetHighlight(hit.Cubie, true)
	m.state = animating{anchor: s.anchor, second: hit.Cubie}
	m.logf("slice committed: anchor %d, second %d, members %v", s.anchor, hit.Cubie, slice.Members)
}

// PointerUp ends the gesture. During a turn it only clears the highlight; the turn runs on and
// the machine returns to idle when it completes.
func (m *Machine) PointerUp() {
	m.lat.ClearHighlights()
	m.setCamera(true)
	if m.state.phase() == PhaseAnimating {
		return
	}
	m.state = idle{}
}

// Tick advances the in-flight turn. Call once per frame.
func (m *Machine) Tick() {
	if m.state.phase() != PhaseAnimating {
		return
	}
	done, err := m.anim.Tick()
	if err != nil {
		m.logf("rotation aborted: %v", err)
	}
	if done {
		m.reset()
	}
}

func (m *Machine) reset() {
	m.lat.ClearHighlights()
	m.setCamera(true)
	m.state = idle{}
}

func (m *Machine) setCamera(enabled bool) {
	if m.cam != nil {
		m.cam.SetEnabled(enabled)
	}
}

func (m *Machine) logf(format string, args ...any) {
	if m.log != nil {
		m.log.Logf(format, args...)
	}
}
