package lattice

import "github.com/go-gl/mathgl/mgl32"

// ID indexes a cubie in the lattice arena. IDs are assigned at construction and never change.
type ID int

// Coord is a lattice cell, each component in [0, Dim).
type Coord struct {
	X, Y, Z int
}

// Face identifies one of the six axis-aligned faces of a cubie, in the order +X, -X, +Y, -Y, +Z, -Z.
type Face int

const (
	FaceRight Face = iota // +X
	FaceLeft              // -X
	FaceUp                // +Y
	FaceDown              // -Y
	FaceFront             // +Z
	FaceBack              // -Z
)

// Faces lists every face in material order.
var Faces = [6]Face{FaceRight, FaceLeft, FaceUp, FaceDown, FaceFront, FaceBack}

var faceNames = [6]string{"right", "left", "up", "down", "front", "back"}

func (f Face) String() string {
	if f < 0 || int(f) >= len(faceNames) {
		return "unknown"
	}
	return faceNames[f]
}

// Normal returns the outward unit normal of the face in the cubie's local frame.
func (f Face) Normal() mgl32.Vec3 {
	switch f {
	case FaceRight:
		return mgl32.Vec3{1, 0, 0}
	case FaceLeft:
		return mgl32.Vec3{-1, 0, 0}
	case FaceUp:
		return mgl32.Vec3{0, 1, 0}
	case FaceDown:
		return mgl32.Vec3{0, -1, 0}
	case FaceFront:
		return mgl32.Vec3{0, 0, 1}
	case FaceBack:
		return mgl32.Vec3{0, 0, -1}
	}
	return mgl32.Vec3{}
}

// Color is a palette slot. The actual RGB value is resolved by the renderer from config.
type Color int

const (
	ColorInner Color = iota // hidden faces, drawn black
	ColorWhite
	ColorYellow
	ColorBlue
	ColorOrange
	ColorGreen
	ColorRed
)

var colorNames = [...]string{"inner", "white", "yellow", "blue", "orange", "green", "red"}

func (c Color) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return "unknown"
	}
	return colorNames[c]
}

// Owner tags which container currently holds a cubie.
type Owner int

const (
	OwnerWorld Owner = iota
	OwnerGroup
)

func (o Owner) String() string {
	if o == OwnerGroup {
		return "group"
	}
	return "world"
}

// Cubie is one of the 27 unit cubes. Home and Faces are fixed at creation; only Local changes,
// and only through the lattice's ownership operations.
type Cubie struct {
	ID          ID
	Home        Coord
	Faces       [6]Color
	Local       Transform // relative to the owner (world root or rotation group)
	Owner       Owner
	Highlighted bool
}

// faceColors assigns the outward stickers for a cubie at c. Only faces on the outer shell get
// a colour; everything else is ColorInner.
func faceColors(c Coord) [6]Color {
	var f [6]Color
	if c.X == Dim-1 {
		f[FaceRight] = ColorWhite
	}
	if c.X == 0 {
		f[FaceLeft] = ColorYellow
	}
	if c.Y == Dim-1 {
		f[FaceUp] = ColorBlue
	}
	if c.Y == 0 {
		f[FaceDown] = ColorOrange
	}
	if c.Z == Dim-1 {
		f[FaceFront] = ColorGreen
	}
	if c.Z == 0 {
		f[FaceBack] = ColorRed
	}
	return f
}
