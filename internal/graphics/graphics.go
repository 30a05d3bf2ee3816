package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the window opened by Run.
type Window struct {
	Title      string
	Width      int32
	Height     int32
	TargetFPS  int32
	Background rl.Color
}

// Run opens the window and drives the frame loop. Each frame it calls update (input, animation
// tick), then clears the screen and calls draw. The loop is the only goroutine that touches the
// puzzle, so update and draw never overlap.
func Run(w Window, update, draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(w.Width, w.Height, w.Title)
	defer rl.CloseWindow()

	if w.TargetFPS > 0 {
		rl.SetTargetFPS(w.TargetFPS)
	}

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(w.Background)
		draw()
		rl.EndDrawing()
	}
}
