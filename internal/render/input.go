package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"room-editor/internal/interaction"
)

// keyNames maps the raylib keys the editor binds to their keymap names.
var keyNames = map[int32]string{
	rl.KeyQ:         "q",
	rl.KeyE:         "e",
	rl.KeyT:         "t",
	rl.KeyR:         "r",
	rl.KeyLeft:      "arrowleft",
	rl.KeyRight:     "arrowright",
	rl.KeyDelete:    "delete",
	rl.KeyBackspace: "backspace",
	rl.KeyEscape:    "escape",
}

// Input turns raylib's polled mouse and keyboard state into editor events.
type Input struct {
	// OverUI reports whether a screen position is covered by a panel. Nil means never.
	OverUI func(x, y float32) bool
	last   rl.Vector2
	inside bool
}

// NewInput returns an Input that tags events over overUI as UI events.
func NewInput(overUI func(x, y float32) bool) *Input {
	return &Input{OverUI: overUI, inside: true}
}

// Poll returns this frame's events in the order they should be handled. keys is false while
// another consumer (the terminal) owns the keyboard.
func (in *Input) Poll(keys bool) []interaction.Event {
	var out []interaction.Event
	pos := rl.GetMousePosition()
	target := interaction.TargetScene
	if in.OverUI != nil && in.OverUI(pos.X, pos.Y) {
		target = interaction.TargetUI
	}
	ev := func(k interaction.Kind) interaction.Event {
		return interaction.Event{Kind: k, X: pos.X, Y: pos.Y, Target: target}
	}

	onScreen := rl.IsCursorOnScreen()
	if in.inside && !onScreen {
		out = append(out, ev(interaction.PointerLeave))
	}
	in.inside = onScreen

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		out = append(out, ev(interaction.PointerDown))
	}
	if pos != in.last {
		out = append(out, ev(interaction.PointerMove))
		in.last = pos
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		out = append(out, ev(interaction.PointerUp))
	}

	if !keys {
		return out
	}
	for k := rl.GetKeyPressed(); k != 0; k = rl.GetKeyPressed() {
		if name, ok := keyNames[k]; ok {
			out = append(out, interaction.Event{Kind: interaction.KeyDown, Key: name, X: pos.X, Y: pos.Y})
		}
	}
	return out
}
