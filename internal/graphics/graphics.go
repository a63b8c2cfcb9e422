package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the editor window.
type Window struct {
	Width, Height int
	Title         string
	// TargetFPS caps the frame rate; zero means 60.
	TargetFPS int
}

// Run opens the window and runs the main loop until it is closed. Each frame it calls update
// (input, state), then clears the screen and calls draw. GPU resources must be created from
// update or draw, after the window exists.
// ESC is an editor key, so the window closes only through its close button.
func Run(w Window, update, draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	fps := w.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(int32(fps))

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(30, 31, 36, 255))
		draw()
		rl.EndDrawing()
	}
}
