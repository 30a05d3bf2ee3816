package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug holds the on-screen overlays: FPS and heap at the top right, the puzzle state at the
// top left. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowState    bool
	Color        rl.Color
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{Color: rl.DarkGreen}
}

// Draw renders any enabled overlays. Call after the scene in the draw loop. state is drawn
// verbatim when ShowState is true; FPS and heap text are only recomputed every updateInterval
// frames.
func (d *Debug) Draw(state string) {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}

	if d.ShowState && state != "" {
		rl.DrawText(state, padding, padding, fontSize, d.Color)
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.drawRight(d.lastFpsText, screenW, y)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		d.drawRight(d.lastMemText, screenW, y)
	}
}

func (d *Debug) drawRight(text string, screenW, y int32) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, d.Color)
}
