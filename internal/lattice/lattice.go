package lattice

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
)

const (
	// Dim is the number of cubies along each axis.
	Dim = 3
	// Count is the number of cubies in the puzzle.
	Count = Dim * Dim * Dim
	// SliceSize is the number of cubies in one rotatable layer.
	SliceSize = Dim * Dim
)

var (
	ErrGroupActive    = errors.New("lattice: a rotation group already exists")
	ErrNoGroup        = errors.New("lattice: no rotation group")
	ErrNotAtRest      = errors.New("lattice: cubie is not owned by the world")
	ErrUnknownCubie   = errors.New("lattice: unknown cubie")
	ErrEmptySelection = errors.New("lattice: empty selection")
)

// Group is the transient container that owns a slice's cubies during a turn.
// Its transform is relative to the world root; members' Local transforms are relative to it.
type Group struct {
	Members   []ID
	Transform Transform
}

// Lattice is the arena of 27 cubies plus the (at most one) rotation group. It plays the role of
// the scene graph for everything the interaction core touches: the world root owns every cubie
// by default and ownership of a slice moves to the group and back.
type Lattice struct {
	size   float32
	gap    float32
	cubies []Cubie
	group  *Group
}

// New builds the 27 cubies of size edge length separated by gap. Cubie IDs follow x-major order
// (x, then y, then z), matching the construction loop.
func New(size, gap float32) *Lattice {
	l := &Lattice{size: size, gap: gap, cubies: make([]Cubie, 0, Count)}
	for x := 0; x < Dim; x++ {
		for y := 0; y < Dim; y++ {
			for z := 0; z < Dim; z++ {
				c := Coord{x, y, z}
				l.cubies = append(l.cubies, Cubie{
					ID:    ID(len(l.cubies)),
					Home:  c,
					Faces: faceColors(c),
					Local: Transform{Position: l.cellCenter(c), Rotation: mgl32.QuatIdent()},
					Owner: OwnerWorld,
				})
			}
		}
	}
	return l
}

// Size returns the edge length of one cubie.
func (l *Lattice) Size() float32 { return l.size }

// Spacing is the distance between neighbouring cubie centres.
func (l *Lattice) Spacing() float32 { return l.size + l.gap }

// Len returns the number of cubies.
func (l *Lattice) Len() int { return len(l.cubies) }

func (l *Lattice) cellCenter(c Coord) mgl32.Vec3 {
	s := l.Spacing()
	return mgl32.Vec3{float32(c.X-1) * s, float32(c.Y-1) * s, float32(c.Z-1) * s}
}

// Cubie returns the cubie with the given id. The pointer stays valid for the lattice's lifetime.
func (l *Lattice) Cubie(id ID) (*Cubie, bool) {
	if id < 0 || int(id) >= len(l.cubies) {
		return nil, false
	}
	return &l.cubies[id], true
}

// TopLevel enumerates the cubies currently owned directly by the world root, in id order.
func (l *Lattice) TopLevel() []ID {
	out := make([]ID, 0, len(l.cubies))
	for i := range l.cubies {
		if l.cubies[i].Owner == OwnerWorld {
			out = append(out, l.cubies[i].ID)
		}
	}
	return out
}

// Group returns the in-flight rotation group, if any.
func (l *Lattice) Group() (*Group, bool) {
	return l.group, l.group != nil
}

// WorldTransform resolves a cubie's transform through its owner.
func (l *Lattice) WorldTransform(id ID) Transform {
	c, ok := l.Cubie(id)
	if !ok {
		return Identity()
	}
	if c.Owner == OwnerGroup && l.group != nil {
		return c.Local.Under(l.group.Transform)
	}
	return c.Local
}

// Bounds returns the cubie's local geometry box.
func (l *Lattice) Bounds() (lo, hi mgl32.Vec3) {
	h := l.size / 2
	return mgl32.Vec3{-h, -h, -h}, mgl32.Vec3{h, h, h}
}

// Center returns the world-space centre of a cubie: the midpoint of its geometry box mapped
// through the current world transform. It is recomputed on each call because the transform
// changes while the cubie belongs to a rotating group.
func (l *Lattice) Center(id ID) mgl32.Vec3 {
	lo, hi := l.Bounds()
	mid := lo.Add(hi).Mul(0.5)
	return l.WorldTransform(id).Apply(mid)
}

// WorldBox returns the world-space axis-aligned box of a cubie at rest. Quarter turns keep
// cubies axis-aligned, so the box is the centre plus the half extent.
func (l *Lattice) WorldBox(id ID) (lo, hi mgl32.Vec3) {
	c := l.Center(id)
	h := l.size / 2
	return c.Sub(mgl32.Vec3{h, h, h}), c.Add(mgl32.Vec3{h, h, h})
}

// FaceAt classifies which face of a cubie contains the world-space point p, returning the
// face's world normal. It picks the axis along which p is furthest from the centre.
func (l *Lattice) FaceAt(id ID, p mgl32.Vec3) mgl32.Vec3 {
	d := p.Sub(l.Center(id))
	axis := 0
	for i := 1; i < 3; i++ {
		if math32.Abs(d[i]) > math32.Abs(d[axis]) {
			axis = i
		}
	}
	var n mgl32.Vec3
	if d[axis] < 0 {
		n[axis] = -1
	} else {
		n[axis] = 1
	}
	return n
}

// Locate returns the lattice cell the cubie currently occupies.
func (l *Lattice) Locate(id ID) Coord {
	c := l.Center(id)
	s := l.Spacing()
	cell := func(v float32) int { return int(math32.Floor(v/s+0.5)) + 1 }
	return Coord{cell(c[0]), cell(c[1]), cell(c[2])}
}

// At returns the cubie currently occupying cell c.
func (l *Lattice) At(c Coord) (ID, bool) {
	for i := range l.cubies {
		if l.Locate(l.cubies[i].ID) == c {
			return l.cubies[i].ID, true
		}
	}
	return 0, false
}

// SetHighlight toggles the selection outline of a cubie.
func (l *Lattice) SetHighlight(id ID, on bool) {
	if c, ok := l.Cubie(id); ok {
		c.Highlighted = on
	}
}

// ClearHighlights reverts every cubie's outline to the default colour.
func (l *Lattice) ClearHighlights() {
	for i := range l.cubies {
		l.cubies[i].Highlighted = false
	}
}

// Detach creates the rotation group and moves exclusive ownership of ids into it, preserving
// each cubie's world transform. It fails if a group already exists or any cubie is not at rest.
func (l *Lattice) Detach(ids []ID) (*Group, error) {
	if l.group != nil {
		return nil, ErrGroupActive
	}
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}
	seen := make(map[ID]bool, len(ids))
	for _, id := range ids {
		c, ok := l.Cubie(id)
		if !ok {
			return nil, fmt.Errorf("detach %d: %w", id, ErrUnknownCubie)
		}
		if c.Owner != OwnerWorld || seen[id] {
			return nil, fmt.Errorf("detach %d: %w", id, ErrNotAtRest)
		}
		seen[id] = true
	}
	g := &Group{Members: append([]ID(nil), ids...), Transform: Identity()}
	for _, id := range ids {
		c := &l.cubies[id]
		c.Local = c.Local.RelativeTo(g.Transform)
		c.Owner = OwnerGroup
	}
	l.group = g
	return g, nil
}

// RotateGroup turns the rotation group by angle radians about axis through the world origin.
func (l *Lattice) RotateGroup(axis mgl32.Vec3, angle float32) error {
	if l.group == nil {
		return ErrNoGroup
	}
	l.group.Transform = l.group.Transform.RotateOnWorldAxis(axis, angle)
	return nil
}

// Attach flushes each member's world transform, reattaches it to the world root and discards
// the group. Positions are snapped to the lattice and rotations to the nearest cube symmetry so
// float error does not build up over many turns. It returns the ids that were reattached.
func (l *Lattice) Attach() ([]ID, error) {
	if l.group == nil {
		return nil, ErrNoGroup
	}
	g := l.group
	for _, id := range g.Members {
		c := &l.cubies[id]
		world := c.Local.Under(g.Transform)
		c.Local = Transform{
			Position: snapPosition(world.Position, l.Spacing()),
			Rotation: snapRotation(world.Rotation),
		}
		c.Owner = OwnerWorld
	}
	l.group = nil
	return g.Members, nil
}

// Reset returns every cubie to its home cell and orientation and clears highlights. It fails
// while a turn is in flight.
func (l *Lattice) Reset() error {
	if l.group != nil {
		return ErrGroupActive
	}
	for i := range l.cubies {
		c := &l.cubies[i]
		c.Local = Transform{Position: l.cellCenter(c.Home), Rotation: mgl32.QuatIdent()}
		c.Highlighted = false
	}
	return nil
}

// Snapshot is a deep copy of the arena and group, safe to keep across frames.
type Snapshot struct {
	Spacing float32
	Cubies  []Cubie
	Group   *Group
}

// Displaced counts the cubies in the snapshot that are off their home cell or turned away
// from their home orientation. Cubies inside a group are counted as displaced.
func (s Snapshot) Displaced() int {
	n := 0
	for _, c := range s.Cubies {
		if c.Owner != OwnerWorld {
			n++
			continue
		}
		home := mgl32.Vec3{
			float32(c.Home.X-1) * s.Spacing,
			float32(c.Home.Y-1) * s.Spacing,
			float32(c.Home.Z-1) * s.Spacing,
		}
		if !c.Local.Position.ApproxEqualThreshold(home, s.Spacing/4) ||
			!c.Local.Rotation.OrientationEqualThreshold(mgl32.QuatIdent(), 1e-3) {
			n++
		}
	}
	return n
}

// Snapshot copies the current state.
func (l *Lattice) Snapshot() (Snapshot, error) {
	var out Snapshot
	src := Snapshot{Spacing: l.Spacing(), Cubies: l.cubies, Group: l.group}
	if err := copier.CopyWithOption(&out, &src, copier.Option{DeepCopy: true}); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	return out, nil
}
