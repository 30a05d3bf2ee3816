package gesture

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"cube-engine/internal/animator"
	"cube-engine/internal/lattice"
	"cube-engine/internal/resolver"
)

type fakeCamera struct {
	enabled bool
	calls   int
}

func (c *fakeCamera) SetEnabled(enabled bool) {
	c.enabled = enabled
	c.calls++
}

type rig struct {
	lat  *lattice.Lattice
	anim *animator.Animator
	cam  *fakeCamera
	m    *Machine
}

func newRig() *rig {
	lat := lattice.New(5, 0.25)
	anim := animator.New(lat, animator.DefaultStepSize, nil)
	cam := &fakeCamera{enabled: true}
	return &rig{
		lat:  lat,
		anim: anim,
		cam:  cam,
		m:    New(lat, resolver.ForSize(5), anim, cam, nil),
	}
}

func (r *rig) hit(t *testing.T, x, y, z int, normal mgl32.Vec3) Hit {
	t.Helper()
	id, ok := r.lat.At(lattice.Coord{X: x, Y: y, Z: z})
	if !ok {
		t.Fatalf("no cubie at (%d,%d,%d)", x, y, z)
	}
	return Hit{Cubie: id, Normal: normal, Point: r.lat.Center(id).Add(normal.Mul(2.5))}
}

func (r *rig) highlighted() int {
	n := 0
	for i := 0; i < r.lat.Len(); i++ {
		if c, _ := r.lat.Cubie(lattice.ID(i)); c.Highlighted {
			n++
		}
	}
	return n
}

func (r *rig) finish(t *testing.T) {
	t.Helper()
	for i := 0; i < 100 && r.m.Phase() == PhaseAnimating; i++ {
		r.m.Tick()
	}
	if r.m.Phase() == PhaseAnimating {
		t.Fatal("animation did not complete")
	}
}

var front = mgl32.Vec3{0, 0, 1}

func TestPointerDown_OnBackgroundStaysIdle(t *testing.T) {
	r := newRig()
	r.m.PointerDown(Hit{}, false)
	if r.m.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", r.m.Phase())
	}
	if !r.cam.enabled || r.cam.calls != 0 {
		t.Errorf("camera touched: enabled=%v calls=%d", r.cam.enabled, r.cam.calls)
	}
}

func TestPointerDownUp_NoMove(t *testing.T) {
	r := newRig()
	r.m.PointerDown(r.hit(t, 0, 2, 2, front), true)
	if r.m.Phase() != PhaseAnchored {
		t.Fatalf("phase = %v, want anchored", r.m.Phase())
	}
	if r.cam.enabled {
		t.Error("camera enabled while anchored")
	}
	if r.highlighted() != 1 {
		t.Errorf("highlighted = %d, want 1", r.highlighted())
	}

	r.m.PointerUp()
	if r.m.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", r.m.Phase())
	}
	if !r.cam.enabled {
		t.Error("camera not re-enabled")
	}
	if r.highlighted() != 0 {
		t.Errorf("highlighted = %d after release", r.highlighted())
	}
	if _, ok := r.lat.Group(); ok {
		t.Error("rotation group created")
	}
}

func TestPointerMove_SameCubieIsNoop(t *testing.T) {
	r := newRig()
	h := r.hit(t, 0, 2, 2, front)
	r.m.PointerDown(h, true)
	r.m.PointerMove(h, true)
	r.m.PointerMove(Hit{}, false)
	if r.m.Phase() != PhaseAnchored {
		t.Errorf("phase = %v, want anchored", r.m.Phase())
	}
	if id, _, ok := r.m.Anchor(); !ok || id != h.Cubie {
		t.Errorf("anchor = %d, %v", id, ok)
	}
}

func TestPointerMove_ParallelDragStaysAnchored(t *testing.T) {
	r := newRig()
	r.m.PointerDown(r.hit(t, 1, 1, 2, front), true)
	r.m.PointerMove(r.hit(t, 1, 1, 0, front), true)
	if r.m.Phase() != PhaseAnchored {
		t.Errorf("phase = %v, want anchored", r.m.Phase())
	}
	if r.anim.Active() {
		t.Error("animation started on a degenerate drag")
	}
	if r.highlighted() != 1 {
		t.Errorf("highlighted = %d, want only the anchor", r.highlighted())
	}
}

func TestPointerMove_DiagonalThenStraight(t *testing.T) {
	r := newRig()
	r.m.PointerDown(r.hit(t, 0, 2, 2, front), true)
	r.m.PointerMove(r.hit(t, 1, 1, 2, front), true)
	if r.m.Phase() != PhaseAnchored {
		t.Fatalf("diagonal drag committed: phase %v", r.m.Phase())
	}
	r.m.PointerMove(r.hit(t, 1, 2, 2, front), true)
	if r.m.Phase() != PhaseAnimating {
		t.Fatalf("straight drag not committed: phase %v", r.m.Phase())
	}
}

// Click the front-top-left cubie's front face and drag to the front-top-right cubie: the top
// layer turns a quarter about +Y, taking (x, z) to (z, -x) in centred coordinates.
func TestScenario_TopLayerTurn(t *testing.T) {
	r := newRig()
	r.m.PointerDown(r.hit(t, 0, 2, 2, front), true)
	r.m.PointerMove(r.hit(t, 2, 2, 2, front), true)

	if r.m.Phase() != PhaseAnimating {
		t.Fatalf("phase = %v, want animating", r.m.Phase())
	}
	if r.highlighted() != 2 {
		t.Errorf("highlighted = %d, want anchor and second", r.highlighted())
	}
	g, ok := r.lat.Group()
	if !ok || len(g.Members) != lattice.SliceSize {
		t.Fatalf("group = %v, %v", g, ok)
	}
	if axis := r.anim.State().Axis; !axis.ApproxEqual(mgl32.Vec3{0, 1, 0}) {
		t.Errorf("axis = %v, want +Y", axis)
	}

	homes := make(map[lattice.ID]lattice.Coord)
	for _, id := range g.Members {
		c, _ := r.lat.Cubie(id)
		if c.Home.Y != 2 {
			t.Errorf("member %v is not in the top layer", c.Home)
		}
		homes[id] = c.Home
	}

	r.finish(t)

	if _, ok := r.lat.Group(); ok {
		t.Error("group still exists after the turn")
	}
	for id, home := range homes {
		c, _ := r.lat.Cubie(id)
		if c.Owner != lattice.OwnerWorld {
			t.Errorf("cubie %d owner = %v", id, c.Owner)
		}
		x, z := home.X-1, home.Z-1
		want := lattice.Coord{X: z + 1, Y: 2, Z: -x + 1}
		if got := r.lat.Locate(id); got != want {
			t.Errorf("cubie from %v now at %v, want %v", home, got, want)
		}
	}
	if r.m.Phase() != PhaseIdle || !r.cam.enabled || r.highlighted() != 0 {
		t.Errorf("not reset: phase %v camera %v highlighted %d", r.m.Phase(), r.cam.enabled, r.highlighted())
	}
}

func TestAnimating_IgnoresNewGestures(t *testing.T) {
	r := newRig()
	first := r.hit(t, 0, 2, 2, front)
	r.m.PointerDown(first, true)
	r.m.PointerMove(r.hit(t, 2, 2, 2, front), true)
	g, _ := r.lat.Group()
	members := append([]lattice.ID(nil), g.Members...)

	r.m.PointerDown(r.hit(t, 0, 0, 2, front), true)
	r.m.PointerMove(r.hit(t, 2, 0, 2, front), true)
	if r.m.Phase() != PhaseAnimating {
		t.Fatalf("phase = %v", r.m.Phase())
	}
	if g2, _ := r.lat.Group(); len(g2.Members) != len(members) || g2.Members[0] != members[0] {
		t.Error("a second slice was grabbed mid-turn")
	}
	if id, _, _ := r.m.Anchor(); id != first.Cubie {
		t.Errorf("anchor = %d, want %d", id, first.Cubie)
	}
}

func TestPointerUp_DuringAnimationDoesNotAbort(t *testing.T) {
	r := newRig()
	r.m.PointerDown(r.hit(t, 0, 2, 2, front), true)
	r.m.PointerMove(r.hit(t, 2, 2, 2, front), true)
	r.m.Tick()
	angle := r.anim.State().Angle

	r.m.PointerUp()
	if r.highlighted() != 0 {
		t.Errorf("highlighted = %d after release", r.highlighted())
	}
	if r.m.Phase() != PhaseAnimating || !r.anim.Active() {
		t.Fatalf("release aborted the turn: phase %v", r.m.Phase())
	}
	if r.anim.State().Angle != angle || r.anim.State().Axis == (mgl32.Vec3{}) {
		t.Error("release touched animator state")
	}

	r.finish(t)
	if r.m.Phase() != PhaseIdle {
		t.Errorf("phase = %v after completion", r.m.Phase())
	}
	if len(r.lat.TopLevel()) != lattice.Count {
		t.Errorf("TopLevel = %d after completion", len(r.lat.TopLevel()))
	}
}

func TestSecondGestureAfterTurn(t *testing.T) {
	r := newRig()
	r.m.PointerDown(r.hit(t, 0, 2, 2, front), true)
	r.m.PointerMove(r.hit(t, 2, 2, 2, front), true)
	r.finish(t)
	r.m.PointerUp()

	right := mgl32.Vec3{1, 0, 0}
	r.m.PointerDown(r.hit(t, 2, 2, 2, right), true)
	r.m.PointerMove(r.hit(t, 2, 0, 2, right), true)
	if r.m.Phase() != PhaseAnimating {
		t.Fatalf("phase = %v, want animating", r.m.Phase())
	}
	if axis := r.anim.State().Axis; !axis.ApproxEqual(mgl32.Vec3{0, 0, -1}) {
		t.Errorf("axis = %v, want -Z", axis)
	}
	r.finish(t)
}
