// Package ui draws the editor's panels and buttons with raylib, styled by a small stylesheet.
package ui

import (
	_ "embed"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"room-editor/internal/ui/css"
)

//go:embed theme.css
var defaultTheme string

// Engine holds the current stylesheet and root nodes, lays them out and draws them with raylib.
// Roots are drawn in order, so later roots appear on top. Resolved styles are cached and
// dropped when the stylesheet changes.
// If a font is loaded (LoadFont), text is drawn with it; otherwise raylib's default (pixel) font is used.
type Engine struct {
	sheet *css.Stylesheet
	roots []*Node
	// styles caches resolved styles by class and id.
	styles map[[2]string]css.Style
	font   rl.Font
	// measure returns the pixel width of text at size. It estimates until a font is loaded.
	measure func(text string, size int32) float32
}

// New creates an engine styled with the built-in theme.
func New() *Engine {
	e := &Engine{measure: estimateWidth}
	e.SetStylesheet(css.Parse(defaultTheme))
	return e
}

// LoadCSS parses the file at path and appends its rules to the current stylesheet,
// so it only needs to override what it changes.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	merged := &css.Stylesheet{Rules: append(append([]css.Rule{}, e.sheet.Rules...), css.Parse(string(data)).Rules...)}
	e.SetStylesheet(merged)
	return nil
}

// SetStylesheet replaces the stylesheet.
func (e *Engine) SetStylesheet(sheet *css.Stylesheet) {
	e.sheet = sheet
	e.styles = make(map[[2]string]css.Style)
}

// LoadFont loads a TTF/OTF font from path for text rendering. If loading fails, the engine keeps using the default font.
// Call after the window/OpenGL context exists.
func (e *Engine) LoadFont(path string) error {
	f := rl.LoadFontEx(path, 64, nil)
	if f.Texture.ID == 0 {
		return os.ErrNotExist
	}
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
	}
	e.font = f
	e.measure = func(text string, size int32) float32 {
		return rl.MeasureTextEx(e.font, text, float32(size), 1).X
	}
	return nil
}

// Font returns the loaded font; its texture ID is zero when none is loaded.
func (e *Engine) Font() rl.Font {
	return e.font
}

// AddNode appends a root node.
func (e *Engine) AddNode(n *Node) {
	e.roots = append(e.roots, n)
}

// Contains reports whether (x, y) is over any visible root.
func (e *Engine) Contains(x, y float32) bool {
	for _, n := range e.roots {
		if !n.Hidden && n.Bounds.Contains(x, y) {
			return true
		}
	}
	return false
}

// Click runs the handler of the topmost clickable node under (x, y).
// It reports whether the point was over the UI at all.
func (e *Engine) Click(x, y float32) bool {
	for i := len(e.roots) - 1; i >= 0; i-- {
		if h := e.roots[i].hit(x, y); h != nil {
			h.OnClick()
			return true
		}
	}
	return e.Contains(x, y)
}

func (e *Engine) style(n *Node) css.Style {
	key := [2]string{n.Class, n.ID}
	if s, ok := e.styles[key]; ok {
		return s
	}
	s := css.Resolve(e.sheet.Match(n.Class, n.ID))
	e.styles[key] = s
	return s
}

// Layout positions every root for a screen of w by h pixels. Draw calls it; hit-testing uses
// the bounds of the last layout.
func (e *Engine) Layout(w, h float32) {
	for _, n := range e.roots {
		if n.Hidden {
			continue
		}
		s := e.style(n)
		nw, nh := e.size(n)
		x, y := float32(s.Left), float32(s.Top)
		if s.LeftPct >= 0 {
			x = (w - nw) * float32(s.LeftPct) / 100
		}
		if s.TopPct >= 0 {
			y = (h - nh) * float32(s.TopPct) / 100
		}
		e.place(n, x, y, nw, nh)
	}
}

// size returns the node's width and height: the CSS size where set, otherwise the size of
// its text or children plus padding.
func (e *Engine) size(n *Node) (float32, float32) {
	s := e.style(n)
	pad := float32(s.Padding)
	var cw, ch float32
	if len(n.Children) == 0 {
		cw = e.measure(n.Text, s.FontSize)
		ch = float32(s.FontSize)
	}
	for _, c := range n.Children {
		if c.Hidden {
			continue
		}
		w, h := e.size(c)
		if n.Row {
			if cw > 0 {
				cw += pad
			}
			cw += w
			ch = max(ch, h)
		} else {
			if ch > 0 {
				ch += pad
			}
			ch += h
			cw = max(cw, w)
		}
	}
	w, h := cw+2*pad, ch+2*pad
	if s.Width > 0 {
		w = float32(s.Width)
	}
	if s.Height > 0 {
		h = float32(s.Height)
	}
	return w, h
}

// place sets n's bounds and stacks its children inside. In a column, children without a CSS
// width stretch to the inner width.
func (e *Engine) place(n *Node, x, y, w, h float32) {
	n.Bounds = Rect{X: x, Y: y, W: w, H: h}
	pad := float32(e.style(n).Padding)
	cx, cy := x+pad, y+pad
	for _, c := range n.Children {
		if c.Hidden {
			continue
		}
		cw, ch := e.size(c)
		if !n.Row && e.style(c).Width == 0 {
			cw = w - 2*pad
		}
		e.place(c, cx, cy, cw, ch)
		if n.Row {
			cx += cw + pad
		} else {
			cy += ch + pad
		}
	}
}

// Draw lays out and draws all visible nodes: background, border, then text.
func (e *Engine) Draw() {
	e.Layout(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	for _, n := range e.roots {
		e.drawNode(n)
	}
}

func (e *Engine) drawNode(n *Node) {
	if n.Hidden {
		return
	}
	s := e.style(n)
	r := rl.NewRectangle(n.Bounds.X, n.Bounds.Y, n.Bounds.W, n.Bounds.H)
	bg := toColor(s.Background)
	if n.Fill != nil {
		c := *n.Fill
		bg = rl.NewColor(uint8(c>>16), uint8(c>>8), uint8(c), 255)
	}
	if n.OnClick != nil && r.Width > 0 && rl.CheckCollisionPointRec(rl.GetMousePosition(), r) {
		bg = rl.ColorBrightness(bg, 0.2)
	}
	if bg.A > 0 {
		rl.DrawRectangleRec(r, bg)
	}
	if s.HasBorder && r.Width > 0 && r.Height > 0 {
		rl.DrawRectangleLinesEx(r, 1, toColor(s.Border))
	}
	if n.Text != "" {
		pos := rl.NewVector2(n.Bounds.X+float32(s.Padding), n.Bounds.Y+float32(s.Padding))
		if e.font.Texture.ID != 0 {
			rl.DrawTextEx(e.font, n.Text, pos, float32(s.FontSize), 1, toColor(s.Color))
		} else {
			rl.DrawText(n.Text, int32(pos.X), int32(pos.Y), s.FontSize, toColor(s.Color))
		}
	}
	for _, c := range n.Children {
		e.drawNode(c)
	}
}

func toColor(c css.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// estimateWidth approximates raylib's default font, whose glyphs average a little over half
// the font size.
func estimateWidth(text string, size int32) float32 {
	return float32(len([]rune(text))) * float32(size) * 0.6
}
