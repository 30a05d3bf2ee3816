package lattice

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a rigid transform: rotate by Rotation, then translate by Position.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// Identity returns the transform that leaves points unchanged.
func Identity() Transform {
	return Transform{Rotation: mgl32.QuatIdent()}
}

// Apply maps a point from the transform's local frame into its parent frame.
func (t Transform) Apply(p mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Rotate(p).Add(t.Position)
}

// Under composes t as a child of parent and returns the resulting transform in parent's frame.
func (t Transform) Under(parent Transform) Transform {
	return Transform{
		Position: parent.Apply(t.Position),
		Rotation: parent.Rotation.Mul(t.Rotation),
	}
}

// RelativeTo expresses a world transform t in the local frame of parent. It is the inverse of Under.
func (t Transform) RelativeTo(parent Transform) Transform {
	inv := parent.Rotation.Inverse()
	return Transform{
		Position: inv.Rotate(t.Position.Sub(parent.Position)),
		Rotation: inv.Mul(t.Rotation),
	}
}

// RotateOnWorldAxis rotates t by angle radians about axis through the world origin.
// Position is rotated as well, so the pivot is the origin and not t's own position.
func (t Transform) RotateOnWorldAxis(axis mgl32.Vec3, angle float32) Transform {
	q := mgl32.QuatRotate(angle, axis.Normalize())
	return Transform{
		Position: q.Rotate(t.Position),
		Rotation: q.Mul(t.Rotation).Normalize(),
	}
}

// quatSteps are the magnitudes a quaternion component can take for any of the 24 rotations
// that map a cube onto itself.
var quatSteps = [...]float32{0, 0.5, float32(math.Sqrt2 / 2), 1}

func snapComponent(v float32) float32 {
	a := math32.Abs(v)
	best := quatSteps[0]
	for _, s := range quatSteps[1:] {
		if math32.Abs(a-s) < math32.Abs(a-best) {
			best = s
		}
	}
	if v < 0 {
		return -best
	}
	return best
}

// snapRotation pulls q onto the nearest cube-symmetry rotation.
func snapRotation(q mgl32.Quat) mgl32.Quat {
	s := mgl32.Quat{
		W: snapComponent(q.W),
		V: mgl32.Vec3{snapComponent(q.V[0]), snapComponent(q.V[1]), snapComponent(q.V[2])},
	}
	if s.Len() == 0 {
		return q.Normalize()
	}
	return s.Normalize()
}

func snapScalar(v, step float32) float32 {
	return math32.Floor(v/step+0.5) * step
}

// snapPosition rounds each axis to the nearest multiple of step.
func snapPosition(p mgl32.Vec3, step float32) mgl32.Vec3 {
	return mgl32.Vec3{snapScalar(p[0], step), snapScalar(p[1], step), snapScalar(p[2], step)}
}
