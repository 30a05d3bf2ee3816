package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAxisAngle(t *testing.T) {
	cases := []struct {
		axis  mgl32.Vec3
		angle float32
	}{
		{mgl32.Vec3{0, 1, 0}, 90},
		{mgl32.Vec3{1, 0, 0}, 180},
		{mgl32.Vec3{0, 0, -1}, 270},
	}
	for _, tc := range cases {
		q := mgl32.QuatRotate(mgl32.DegToRad(tc.angle), tc.axis)
		axis, deg := AxisAngle(q)
		// Rebuilding the rotation must give the same orientation, whichever of the two
		// equivalent axis/angle pairs came back.
		back := mgl32.QuatRotate(mgl32.DegToRad(deg), axis)
		if !back.OrientationEqualThreshold(q, 1e-4) {
			t.Errorf("axis %v angle %v: got axis %v angle %v", tc.axis, tc.angle, axis, deg)
		}
	}

	axis, deg := AxisAngle(mgl32.QuatIdent())
	if deg != 0 || axis.Len() == 0 {
		t.Errorf("identity: axis %v angle %v", axis, deg)
	}
}

func TestQuaternionLayout(t *testing.T) {
	q := Quaternion(mgl32.Quat{W: 0.5, V: mgl32.Vec3{0.1, 0.2, 0.3}})
	if q.X != 0.1 || q.Y != 0.2 || q.Z != 0.3 || q.W != 0.5 {
		t.Errorf("got %+v", q)
	}
	if v := FromRL(Vec3(mgl32.Vec3{1, 2, 3})); v != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("round trip %v", v)
	}
}
