package render

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 converts a core vector to raylib.
func Vec3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

// FromRL converts a raylib vector to the core type.
func FromRL(v rl.Vector3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// Quaternion converts a core quaternion to raylib's (x, y, z, w) layout.
func Quaternion(q mgl32.Quat) rl.Quaternion {
	return rl.NewQuaternion(q.V[0], q.V[1], q.V[2], q.W)
}

// AxisAngle splits a unit quaternion into an axis and an angle in degrees, for rlgl's Rotatef.
// The identity yields angle 0 about +Y.
func AxisAngle(q mgl32.Quat) (mgl32.Vec3, float32) {
	q = q.Normalize()
	if q.W < 0 {
		q = mgl32.Quat{W: -q.W, V: q.V.Mul(-1)}
	}
	s := math32.Sqrt(math32.Max(0, 1-q.W*q.W))
	if s < 1e-6 {
		return mgl32.Vec3{0, 1, 0}, 0
	}
	angle := 2 * math32.Acos(math32.Min(q.W, 1))
	return q.V.Mul(1 / s), mgl32.RadToDeg(angle)
}

// Color converts parsed RGBA bytes.
func Color(c [4]uint8) rl.Color {
	return rl.NewColor(c[0], c[1], c[2], c[3])
}
