package editor

import (
	"context"
	"fmt"
	"math"
	"strings"

	"room-editor/internal/catalog"
	"room-editor/internal/commands"
	"room-editor/internal/interaction"
)

// RegisterCommands adds the room's terminal commands to r.
func (e *Editor) RegisterCommands(r *commands.Registry) {
	r.Register("add", "add <model>: place a catalog model at the room centre", nil, func(args []string) (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("usage: cmd add <model>")
		}
		it, err := e.AddItem(context.Background(), args[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("added %s (%s)", it.Model, shortID(string(it.ID))), nil
	})

	r.Register("save", "store the current layout", nil, func([]string) (string, error) {
		e.Save()
		return fmt.Sprintf("saving %d items...", e.reg.Len()), nil
	})

	r.Register("load", "replace the room with the stored layout", nil, func([]string) (string, error) {
		e.Load()
		return "loading...", nil
	})

	r.Register("color", "color <#rrggbb>: tint the selected item", nil, func(args []string) (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("usage: cmd color <#rrggbb>")
		}
		rgb, err := catalog.ParseColor(args[0])
		if err != nil {
			return "", err
		}
		if e.Recolor(rgb) == interaction.Ignored {
			return "", fmt.Errorf("nothing selected")
		}
		return "color " + catalog.FormatColor(rgb), nil
	})

	r.Register("rotate", "rotate left|right: turn the selected item one step", nil, func(args []string) (string, error) {
		if len(args) != 1 || (args[0] != "left" && args[0] != "right") {
			return "", fmt.Errorf("usage: cmd rotate left|right")
		}
		if e.RotateSelected(args[0] == "left") == interaction.Ignored {
			return "", fmt.Errorf("nothing selected")
		}
		return fmt.Sprintf("yaw %.0f deg", degrees(e.Selected().Yaw)), nil
	})

	r.Register("delete", "remove the selected item", nil, func([]string) (string, error) {
		if e.DeleteSelected() == interaction.Ignored {
			return "", fmt.Errorf("nothing to delete")
		}
		return "deleted", nil
	})

	r.Register("mode", "mode translate|rotate: choose what dragging does", nil, func(args []string) (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("usage: cmd mode translate|rotate")
		}
		var m interaction.Mode
		switch args[0] {
		case "translate":
			m = interaction.ModeTranslate
		case "rotate":
			m = interaction.ModeRotate
		default:
			return "", fmt.Errorf("unknown mode %q", args[0])
		}
		e.ctrl.SetMode(m)
		return "mode " + e.ctrl.Mode().String(), nil
	})

	r.Register("collisions", "list overlapping items", nil, func([]string) (string, error) {
		pairs := e.Collisions()
		if len(pairs) == 0 {
			return "no collisions", nil
		}
		lines := make([]string, 0, len(pairs))
		for _, p := range pairs {
			lines = append(lines, fmt.Sprintf("%s (%s) x %s (%s) depth %.2f",
				p.A.Model, shortID(string(p.A.ID)), p.B.Model, shortID(string(p.B.ID)), p.Depth))
		}
		return strings.Join(lines, "\n"), nil
	})

	r.Register("list", "list placed items", nil, func([]string) (string, error) {
		items := e.reg.Items()
		if len(items) == 0 {
			return "room is empty", nil
		}
		lines := make([]string, 0, len(items))
		for _, it := range items {
			mark := " "
			if e.sel.IsSelected(it) {
				mark = "*"
			}
			lines = append(lines, fmt.Sprintf("%s %s %s at (%.1f, %.1f) yaw %.0f %s",
				mark, shortID(string(it.ID)), it.Model, it.Position.X(), it.Position.Z(),
				degrees(it.Yaw), catalog.FormatColor(it.Color)))
		}
		return strings.Join(lines, "\n"), nil
	})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func degrees(rad float32) float32 {
	return float32(float64(rad) * 180 / math.Pi)
}
