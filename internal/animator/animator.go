package animator

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"cube-engine/internal/lattice"
)

const (
	// QuarterTurn is the only move granularity: 90 degrees.
	QuarterTurn = math32.Pi / 2
	// DefaultStepSize is the angle added each frame, in radians.
	DefaultStepSize = float32(0.1)
)

var (
	ErrBusy       = errors.New("animator: a rotation is already in progress")
	ErrEmptySlice = errors.New("animator: no cubies to rotate")
)

// State is one in-flight rotation: the axis, the target angle and how far it has turned.
type State struct {
	Axis   mgl32.Vec3
	Target float32
	Angle  float32
}

// Remaining is the angle still to turn.
func (s State) Remaining() float32 { return s.Target - s.Angle }

// Next advances s by one tick of stepSize. It returns the new state, the angle to rotate this
// tick and whether the target was reached. The final step is clamped so the total lands exactly
// on the target.
func Next(s State, stepSize float32) (State, float32, bool) {
	if stepSize <= 0 {
		stepSize = s.Remaining()
	}
	step := stepSize
	s.Angle += step
	if s.Angle >= s.Target {
		step -= s.Angle - s.Target
		s.Angle = s.Target
		return s, step, true
	}
	return s, step, false
}

// Graph is the part of the scene graph the animator drives.
type Graph interface {
	Detach(ids []lattice.ID) (*lattice.Group, error)
	RotateGroup(axis mgl32.Vec3, angle float32) error
	Attach() ([]lattice.ID, error)
}

// Logger receives progress messages. May be nil.
type Logger interface {
	Logf(format string, args ...any)
}

// Animator owns the single in-flight rotation. Start hands it a slice; Tick is called once per
// frame until it reports completion, at which point ownership is back with the world root.
type Animator struct {
	graph    Graph
	stepSize float32
	log      Logger

	active bool
	state  State
	ticks  int
}

// New returns an idle animator. A non-positive stepSize uses DefaultStepSize.
func New(graph Graph, stepSize float32, log Logger) *Animator {
	if stepSize <= 0 {
		stepSize = DefaultStepSize
	}
	return &Animator{graph: graph, stepSize: stepSize, log: log}
}

// Active reports whether a rotation is in progress.
func (a *Animator) Active() bool { return a.active }

// State returns the current rotation state. It is the zero State when idle.
func (a *Animator) State() State { return a.state }

// Start moves members into a new rotation group and begins turning it by angle about axis.
func (a *Animator) Start(members []lattice.ID, axis mgl32.Vec3, angle float32) error {
	if a.active {
		return ErrBusy
	}
	if len(members) == 0 {
		return ErrEmptySlice
	}
	if _, err := a.graph.Detach(members); err != nil {
		return fmt.Errorf("start rotation: %w", err)
	}
	a.active = true
	a.ticks = 0
	a.state = State{Axis: axis.Normalize(), Target: angle}
	a.logf("rotation started: %d cubies, axis (%.2f, %.2f, %.2f)", len(members), axis[0], axis[1], axis[2])
	return nil
}

// Tick advances the rotation by one step. When the target is reached the group's cubies are
// reattached to the world, the animator is cleared and done is true.
func (a *Animator) Tick() (done bool, err error) {
	if !a.active {
		return false, nil
	}
	next, step, finished := Next(a.state, a.stepSize)
	a.state = next
	a.ticks++
	if err := a.graph.RotateGroup(next.Axis, step); err != nil {
		a.reset()
		return true, fmt.Errorf("rotate group: %w", err)
	}
	if !finished {
		return false, nil
	}
	ids, err := a.graph.Attach()
	ticks := a.ticks
	a.reset()
	if err != nil {
		return true, fmt.Errorf("reattach: %w", err)
	}
	a.logf("rotation finished: %d cubies reattached after %d ticks", len(ids), ticks)
	return true, nil
}

func (a *Animator) reset() {
	a.active = false
	a.state = State{}
	a.ticks = 0
}

func (a *Animator) logf(format string, args ...any) {
	if a.log != nil {
		a.log.Logf(format, args...)
	}
}
