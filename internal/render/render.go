package render

import (
	"cube-engine/internal/lattice"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// stickerInset is the sticker edge as a fraction of the cubie size.
	stickerInset = 0.88
	// stickerDepth is the sticker thickness as a fraction of the cubie size. Half of it sits
	// outside the body so stickers never z-fight with it.
	stickerDepth = 0.04
	// highlightGrow enlarges the highlight outline so it stays visible over the border.
	highlightGrow = 1.03
)

// Renderer draws the lattice: a black body per cubie, a coloured sticker per outer face and
// a wire border that switches to the highlight colour on selection. Mesh and material are
// created on first Draw so GPU resources are allocated after the window/OpenGL context exists.
type Renderer struct {
	theme    Theme
	mesh     rl.Mesh
	mtl      rl.Material
	ready    bool
	viewPos  [3]float32
	lightDir [3]float32
}

// New returns a renderer with the given colours. Nothing touches the GPU until Draw.
func New(theme Theme) *Renderer {
	return &Renderer{
		theme:    theme,
		lightDir: [3]float32{0.5, 1, 0.5},
	}
}

// Theme returns the colours in use.
func (r *Renderer) Theme() Theme { return r.theme }

// SetView sets camera position and direction-to-light for this frame. Call once per frame
// before Draw.
func (r *Renderer) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

func (r *Renderer) ensureCube() {
	if r.ready {
		return
	}
	r.mesh = rl.GenMeshCube(1, 1, 1)
	r.mtl = rl.LoadMaterialDefault()
	if shader := loadLitShader(); rl.IsShaderValid(shader) {
		r.mtl.Shader = shader
	}
	r.ready = true
}

// Draw renders every cubie at its current world transform, including members of an in-flight
// rotation group. Must be called between BeginMode3D and EndMode3D.
func (r *Renderer) Draw(lat *lattice.Lattice) {
	r.ensureCube()
	r.setLitShaderUniforms(r.mtl.Shader)
	size := lat.Size()
	for i := 0; i < lat.Len(); i++ {
		c, ok := lat.Cubie(lattice.ID(i))
		if !ok {
			continue
		}
		r.drawCubie(c, lat.WorldTransform(c.ID), size)
	}
}

func (r *Renderer) drawCubie(c *lattice.Cubie, world lattice.Transform, size float32) {
	rot := rl.QuaternionToMatrix(Quaternion(world.Rotation))

	r.drawBox(mgl32.Vec3{size, size, size}, rot, world.Position, r.theme.Sticker(lattice.ColorInner))

	for _, f := range lattice.Faces {
		color := c.Faces[f]
		if color == lattice.ColorInner {
			continue
		}
		n := f.Normal()
		dims := mgl32.Vec3{size * stickerInset, size * stickerInset, size * stickerInset}
		for a := 0; a < 3; a++ {
			if n[a] != 0 {
				dims[a] = size * stickerDepth
			}
		}
		center := world.Apply(n.Mul(size / 2))
		r.drawBox(dims, rot, center, r.theme.Sticker(color))
	}

	border := r.theme.Border
	edge := size
	if c.Highlighted {
		border = r.theme.Highlight
		edge = size * highlightGrow
	}
	axis, deg := AxisAngle(world.Rotation)
	rl.PushMatrix()
	rl.Translatef(world.Position[0], world.Position[1], world.Position[2])
	rl.Rotatef(deg, axis[0], axis[1], axis[2])
	rl.DrawCubeWires(rl.Vector3{}, edge, edge, edge, border)
	rl.PopMatrix()
}

// drawBox draws the unit cube scaled to dims, rotated, then moved to pos.
func (r *Renderer) drawBox(dims mgl32.Vec3, rot rl.Matrix, pos mgl32.Vec3, color rl.Color) {
	if albedo := r.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = color
	}
	scaleM := rl.MatrixScale(dims[0], dims[1], dims[2])
	transM := rl.MatrixTranslate(pos[0], pos[1], pos[2])
	transform := rl.MatrixMultiply(rl.MatrixMultiply(scaleM, rot), transM)
	rl.DrawMesh(r.mesh, r.mtl, transform)
}
