package ui

import (
	"fmt"
	"math"
	"time"

	"room-editor/internal/catalog"
	"room-editor/internal/room"
)

// PanelActions are what the properties panel's buttons do. Nil actions leave their buttons inert.
type PanelActions struct {
	Recolor func(rgb uint32)
	Rotate  func(left bool)
	Delete  func()
}

// Panel is the properties panel of the selected item: its name, colour swatches, rotate and
// delete buttons. It implements selection.Panel and starts hidden.
type Panel struct {
	root    *Node
	title   *Node
	details *Node
}

// NewPanel builds the panel with one swatch per palette entry.
func NewPanel(palette []catalog.Swatch, act PanelActions) *Panel {
	p := &Panel{
		title:   NewNode("label", "panel-title", "", "Selected"),
		details: NewNode("label", "panel-details", "", ""),
	}
	swatches := NewNode("panel", "swatches", "", "")
	swatches.Row = true
	for _, sw := range palette {
		rgb, err := catalog.ParseColor(sw.Color)
		if err != nil {
			continue
		}
		b := NewButton("swatch", "", func() {
			if act.Recolor != nil {
				act.Recolor(rgb)
			}
		})
		b.ID = "swatch-" + sw.Name
		b.Fill = &rgb
		swatches.Children = append(swatches.Children, b)
	}
	rotate := NewNode("panel", "button-row", "", "",
		NewButton("button", "Rotate L", func() {
			if act.Rotate != nil {
				act.Rotate(true)
			}
		}),
		NewButton("button", "Rotate R", func() {
			if act.Rotate != nil {
				act.Rotate(false)
			}
		}),
	)
	rotate.Row = true
	remove := NewButton("button-danger", "Delete", func() {
		if act.Delete != nil {
			act.Delete()
		}
	})
	p.root = NewNode("panel", "properties", "properties", "", p.title, p.details, swatches, rotate, remove)
	p.root.Hidden = true
	return p
}

// Node returns the panel's root for adding to an Engine.
func (p *Panel) Node() *Node { return p.root }

// Show implements selection.Panel.
func (p *Panel) Show() { p.root.Hidden = false }

// Hide implements selection.Panel.
func (p *Panel) Hide() { p.root.Hidden = true }

// Visible reports whether the panel is shown.
func (p *Panel) Visible() bool { return !p.root.Hidden }

// Sync refreshes the labels from it. Call once per frame while shown.
func (p *Panel) Sync(it *room.Item) {
	if it == nil {
		return
	}
	p.title.Text = it.Model
	yaw := float64(it.Yaw) * 180 / math.Pi
	p.details.Text = fmt.Sprintf("%s  x %.1f z %.1f  %.0f°",
		catalog.FormatColor(it.Color), it.Position.X(), it.Position.Z(), yaw)
}

// ToolbarActions are what the toolbar buttons do.
type ToolbarActions struct {
	Add        func(model string)
	Save       func()
	Load       func()
	ToggleMode func()
}

// Toolbar is the always visible strip of add-model, save, load and mode buttons.
type Toolbar struct {
	root *Node
	mode *Node
}

// NewToolbar builds one add button per catalog model followed by the persistence and mode buttons.
func NewToolbar(models []catalog.Model, act ToolbarActions) *Toolbar {
	t := &Toolbar{}
	t.root = NewNode("panel", "toolbar", "toolbar", "")
	t.root.Row = true
	for _, m := range models {
		id := m.ID
		t.root.Children = append(t.root.Children, NewButton("button", "+ "+m.Name, func() {
			if act.Add != nil {
				act.Add(id)
			}
		}))
	}
	call := func(f func()) func() {
		return func() {
			if f != nil {
				f()
			}
		}
	}
	t.mode = NewButton("button", "Move", call(act.ToggleMode))
	t.root.Children = append(t.root.Children,
		NewButton("button-accent", "Save", call(act.Save)),
		NewButton("button-accent", "Load", call(act.Load)),
		t.mode,
	)
	return t
}

// Node returns the toolbar's root for adding to an Engine.
func (t *Toolbar) Node() *Node { return t.root }

// SetMode relabels the mode button.
func (t *Toolbar) SetMode(label string) { t.mode.Text = label }

// Toast shows the latest notification for a few seconds. It implements editor.Notifier.
type Toast struct {
	root  *Node
	ttl   time.Duration
	until time.Time
	now   func() time.Time
}

// NewToast returns a hidden toast whose messages stay up for ttl.
func NewToast(ttl time.Duration) *Toast {
	n := NewNode("label", "toast", "toast", "")
	n.Hidden = true
	return &Toast{root: n, ttl: ttl, now: time.Now}
}

// Node returns the toast's root for adding to an Engine.
func (t *Toast) Node() *Node { return t.root }

// Notify shows msg, styled as an error when failed is set.
func (t *Toast) Notify(msg string, failed bool) {
	t.root.Text = msg
	t.root.Class = "toast"
	if failed {
		t.root.Class = "toast-error"
	}
	t.root.Hidden = false
	t.until = t.now().Add(t.ttl)
}

// Update hides the toast once its message has expired. Call once per frame.
func (t *Toast) Update() {
	if !t.root.Hidden && !t.now().Before(t.until) {
		t.root.Hidden = true
	}
}
