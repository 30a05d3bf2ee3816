package resolver

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"cube-engine/internal/lattice"
)

const (
	size = 5
	gap  = 0.25
)

func at(t *testing.T, l *lattice.Lattice, x, y, z int) lattice.ID {
	t.Helper()
	id, ok := l.At(lattice.Coord{X: x, Y: y, Z: z})
	if !ok {
		t.Fatalf("no cubie at (%d,%d,%d)", x, y, z)
	}
	return id
}

func TestPlaneFromVectors(t *testing.T) {
	p, err := PlaneFromVectors(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{5.25, 0, 0}, mgl32.Vec3{-5.25, 5.25, 5.25})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if !p.Normal.ApproxEqual(mgl32.Vec3{0, 1, 0}) {
		t.Errorf("normal = %v, want +Y", p.Normal)
	}
	if d := p.Distance(mgl32.Vec3{3, 5.25, -7}); math32.Abs(d) > 1e-5 {
		t.Errorf("point on plane has distance %v", d)
	}
	if d := p.Distance(mgl32.Vec3{0, 0, 0}); math32.Abs(d+5.25) > 1e-5 {
		t.Errorf("origin distance = %v, want -5.25", d)
	}

	for _, drag := range []mgl32.Vec3{{0, 0, 5.25}, {0, 0, -10.5}, {0, 0, 0}} {
		if _, err := PlaneFromVectors(mgl32.Vec3{0, 0, 1}, drag, mgl32.Vec3{}); !errors.Is(err, ErrDegenerate) {
			t.Errorf("drag %v: err = %v, want ErrDegenerate", drag, err)
		}
	}
}

func TestResolve_FrontTopDragSelectsTopLayer(t *testing.T) {
	l := lattice.New(size, gap)
	r := ForSize(size)
	a := at(t, l, 0, 2, 2)
	b := at(t, l, 2, 2, 2)

	s := r.Resolve(l, l.Center(a), mgl32.Vec3{0, 0, 1}, l.Center(b))
	if !s.Legal() {
		t.Fatalf("slice not legal: %s (%d members)", s.Reason(), len(s.Members))
	}
	if !s.Axis().ApproxEqual(mgl32.Vec3{0, 1, 0}) {
		t.Errorf("axis = %v, want +Y", s.Axis())
	}
	for _, id := range s.Members {
		c, _ := l.Cubie(id)
		if c.Home.Y != 2 {
			t.Errorf("member %v is not in the top layer", c.Home)
		}
	}
}

// Every anchor face and every straight in-face drag must resolve to a full, closed layer whose
// members all lie within epsilon of the plane.
func TestResolve_AllInSliceDragsAreLegal(t *testing.T) {
	l := lattice.New(size, gap)
	r := ForSize(size)
	checked := 0
	for _, anchor := range l.TopLevel() {
		ac, _ := l.Cubie(anchor)
		home := [3]int{ac.Home.X, ac.Home.Y, ac.Home.Z}
		for _, f := range lattice.Faces {
			if ac.Faces[f] == lattice.ColorInner {
				continue
			}
			n := f.Normal()
			for _, second := range l.TopLevel() {
				if second == anchor {
					continue
				}
				sc, _ := l.Cubie(second)
				other := [3]int{sc.Home.X, sc.Home.Y, sc.Home.Z}
				diff := 0
				moved := -1
				for i := range home {
					if home[i] != other[i] {
						diff++
						moved = i
					}
				}
				if diff != 1 || n[moved] != 0 {
					continue
				}
				s := r.Resolve(l, l.Center(anchor), n, l.Center(second))
				if !s.Legal() {
					t.Errorf("anchor %v face %v -> %v: %s", ac.Home, f, sc.Home, s.Reason())
					continue
				}
				for _, id := range s.Members {
					if d := s.Plane.Distance(l.Center(id)); math32.Abs(d) >= r.Epsilon {
						t.Errorf("member %d is %v from plane", id, d)
					}
				}
				checked++
			}
		}
	}
	if checked == 0 {
		t.Fatal("no drags checked")
	}
}

func TestResolve_DragAlongNormalIsDegenerate(t *testing.T) {
	l := lattice.New(size, gap)
	r := ForSize(size)
	a := at(t, l, 1, 1, 2)
	b := at(t, l, 1, 1, 0)
	s := r.Resolve(l, l.Center(a), mgl32.Vec3{0, 0, 1}, l.Center(b))
	if !s.Degenerate || s.Legal() {
		t.Fatalf("expected degenerate slice, got %+v", s)
	}
	if len(s.Members) >= lattice.SliceSize {
		t.Errorf("degenerate slice has %d members", len(s.Members))
	}
}

func TestResolve_DiagonalDragIsRejected(t *testing.T) {
	l := lattice.New(size, gap)
	r := ForSize(size)
	a := at(t, l, 0, 2, 2)
	b := at(t, l, 1, 1, 2)
	s := r.Resolve(l, l.Center(a), mgl32.Vec3{0, 0, 1}, l.Center(b))
	// The diagonal plane happens to contain nine centres, but it is not a layer.
	if len(s.Members) != lattice.SliceSize {
		t.Fatalf("diagonal plane has %d members, want 9", len(s.Members))
	}
	if s.Closed || s.Legal() {
		t.Errorf("diagonal slice accepted")
	}
}

func TestResolve_IgnoresCubiesInGroup(t *testing.T) {
	l := lattice.New(size, gap)
	r := ForSize(size)
	a := at(t, l, 0, 2, 2)
	b := at(t, l, 2, 2, 2)
	if _, err := l.Detach([]lattice.ID{at(t, l, 1, 2, 1)}); err != nil {
		t.Fatal(err)
	}
	s := r.Resolve(l, l.Center(a), mgl32.Vec3{0, 0, 1}, l.Center(b))
	if len(s.Members) != lattice.SliceSize-1 || s.Legal() {
		t.Errorf("got %d members, legal=%v", len(s.Members), s.Legal())
	}
}
