package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// Stats is the editor state shown in the HUD.
type Stats struct {
	Items      int
	Collisions int
	Mode       string
	Selected   string
}

// Debug draws the top-right HUD: editor stats, and optionally FPS and heap size.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	font         rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug HUD with FPS and memory hidden.
func New() *Debug {
	return &Debug{}
}

// SetFont sets the font used by the HUD. Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Line formats the stats line.
func (s Stats) Line() string {
	line := fmt.Sprintf("%d items  %d collisions  %s", s.Items, s.Collisions, s.Mode)
	if s.Selected != "" {
		line += "  [" + s.Selected + "]"
	}
	return line
}

// Draw renders the HUD. Call last in the draw loop so it is on top.
// FPS and memory text are only recomputed every updateInterval frames.
func (d *Debug) Draw(stats Stats) {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}

	y := int32(fpsPadding)
	color := rl.RayWhite
	if stats.Collisions > 0 {
		color = rl.Orange
	}
	d.drawRight(stats.Line(), y, color)
	y += fpsLineHeight

	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.drawRight(d.lastFpsText, y, rl.Green)
		y += fpsLineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024))
		}
		d.drawRight(d.lastMemText, y, rl.Green)
	}
}

func (d *Debug) drawRight(text string, y int32, c rl.Color) {
	if text == "" {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	if d.font.Texture.ID != 0 {
		sz := float32(fpsFontSize)
		pos := rl.NewVector2(float32(screenW)-rl.MeasureTextEx(d.font, text, sz, 1).X-fpsPadding, float32(y))
		rl.DrawTextEx(d.font, text, pos, sz, 1, c)
		return
	}
	w := rl.MeasureText(text, fpsFontSize)
	rl.DrawText(text, screenW-w-fpsPadding, y, fpsFontSize, c)
}
