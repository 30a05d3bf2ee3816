// Package resolver turns an anchor cubie, its struck face normal and a second cubie into the
// slice of the puzzle the user means to turn.
//
// The rotation plane is built from the face normal and the drag between the two cubie centres,
// so the same anchor can pick either of the two layers that run through it along that face.
// Legality is decided by membership, not by a per-face table: a layer has exactly
// lattice.SliceSize members and maps onto itself under a quarter turn.
package resolver

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"cube-engine/internal/lattice"
)

// ErrDegenerate is returned when the drag is parallel to the face normal and no plane exists.
var ErrDegenerate = errors.New("resolver: drag is parallel to the face normal")

// degenerateRatio bounds |n × drag| relative to |drag|; below it the plane normal is noise.
const degenerateRatio = 1e-4

// EpsilonFactor scales the membership tolerance with the cubie size (0.1 for a size-5 cubie).
const EpsilonFactor = 0.02

// Plane is n·p + Constant = 0 with a unit normal.
type Plane struct {
	Normal   mgl32.Vec3
	Constant float32
}

// NewPlane builds the plane through point with the given unit normal.
func NewPlane(normal, point mgl32.Vec3) Plane {
	return Plane{Normal: normal, Constant: -normal.Dot(point)}
}

// Distance is the signed distance from p to the plane.
func (p Plane) Distance(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.Constant
}

// PlaneFromVectors builds the plane through point whose normal is normalize(faceNormal × drag).
func PlaneFromVectors(faceNormal, drag, point mgl32.Vec3) (Plane, error) {
	cross := faceNormal.Cross(drag)
	l := cross.Len()
	if l <= degenerateRatio*math32.Max(drag.Len(), 1) || math32.IsNaN(l) {
		return Plane{}, ErrDegenerate
	}
	return NewPlane(cross.Mul(1/l), point), nil
}

// Source is what the resolver needs from the lattice: the cubies at rest and their centres.
type Source interface {
	TopLevel() []lattice.ID
	Center(id lattice.ID) mgl32.Vec3
}

// Slice is the outcome of one resolution.
type Slice struct {
	Plane      Plane
	Members    []lattice.ID
	Degenerate bool
	// Closed reports whether a quarter turn about Plane.Normal maps every member centre onto
	// another member centre.
	Closed bool
}

// Axis is the rotation axis for the slice (the plane normal).
func (s Slice) Axis() mgl32.Vec3 { return s.Plane.Normal }

// Legal reports whether the slice is a real turnable layer.
func (s Slice) Legal() bool {
	return !s.Degenerate && s.Closed && len(s.Members) == lattice.SliceSize
}

// Reason describes why a slice is not legal, for logging.
func (s Slice) Reason() string {
	switch {
	case s.Degenerate:
		return "degenerate plane"
	case len(s.Members) != lattice.SliceSize:
		return "wrong member count"
	case !s.Closed:
		return "not closed under a quarter turn"
	}
	return ""
}

// Resolver holds the membership tolerance.
type Resolver struct {
	Epsilon float32
}

// New returns a resolver with tolerance epsilon.
func New(epsilon float32) Resolver {
	return Resolver{Epsilon: epsilon}
}

// ForSize returns a resolver whose tolerance is scaled to the cubie size.
func ForSize(size float32) Resolver {
	return New(size * EpsilonFactor)
}

// InPlane returns every cubie at rest whose centre lies within Epsilon of the plane.
func (r Resolver) InPlane(src Source, plane Plane) []lattice.ID {
	var out []lattice.ID
	for _, id := range src.TopLevel() {
		if math32.Abs(plane.Distance(src.Center(id))) < r.Epsilon {
			out = append(out, id)
		}
	}
	return out
}

// Resolve computes the slice selected by dragging from the anchor centre to the second centre
// across a face with the given normal.
func (r Resolver) Resolve(src Source, anchor, normal, second mgl32.Vec3) Slice {
	plane, err := PlaneFromVectors(normal, second.Sub(anchor), anchor)
	if err != nil {
		return Slice{Degenerate: true}
	}
	members := r.InPlane(src, plane)
	s := Slice{Plane: plane, Members: members}
	if len(members) == lattice.SliceSize {
		s.Closed = r.closed(src, members, plane.Normal)
	}
	return s
}

// closed checks that the members are permuted among themselves by a quarter turn about axis
// through the origin, which is the pivot the animator uses.
func (r Resolver) closed(src Source, members []lattice.ID, axis mgl32.Vec3) bool {
	centers := make([]mgl32.Vec3, len(members))
	for i, id := range members {
		centers[i] = src.Center(id)
	}
	q := mgl32.QuatRotate(math32.Pi/2, axis)
	for _, c := range centers {
		rc := q.Rotate(c)
		found := false
		for _, o := range centers {
			if rc.Sub(o).Len() < r.Epsilon {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
