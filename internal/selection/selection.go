// Package selection tracks the single active item of a room.
package selection

import (
	"room-editor/internal/room"
)

// Panel is the properties panel. It is visible exactly while an item is selected.
type Panel interface {
	Show()
	Hide()
}

// Gizmo is the manipulation handle drawn on the selected item.
type Gizmo interface {
	Attach(it *room.Item)
	Detach()
}

// Remover takes an item out of the renderable scene.
type Remover interface {
	RemoveFromScene(it *room.Item)
}

// State is either Idle (no selection) or Selected(item). There is never more than one selected item.
type State struct {
	reg     *room.Registry
	scene   Remover
	panel   Panel
	gizmo   Gizmo
	current *room.Item
	// OnDelete, if set, runs after an item has been removed from the registry and the scene.
	OnDelete func(it *room.Item)
}

// New returns an Idle state. panel and gizmo may be nil when the host has no such UI.
func New(reg *room.Registry, scene Remover, panel Panel, gizmo Gizmo) *State {
	return &State{reg: reg, scene: scene, panel: panel, gizmo: gizmo}
}

// Current returns the selected item, or nil when Idle.
func (s *State) Current() *room.Item {
	return s.current
}

// IsSelected reports whether it is the selected item.
func (s *State) IsSelected(it *room.Item) bool {
	return it != nil && s.current == it
}

// Select makes it the selected item, detaching the gizmo from the previous one.
// Selecting the current item again does nothing, so attach side effects fire once.
func (s *State) Select(it *room.Item) {
	if it == nil {
		s.Deselect()
		return
	}
	if s.current == it {
		return
	}
	if s.current != nil && s.gizmo != nil {
		s.gizmo.Detach()
	}
	s.current = it
	if s.gizmo != nil {
		s.gizmo.Attach(it)
	}
	if s.panel != nil {
		s.panel.Show()
	}
}

// Deselect returns to Idle. It is a no-op when nothing is selected.
func (s *State) Deselect() {
	if s.current == nil {
		return
	}
	s.current = nil
	if s.gizmo != nil {
		s.gizmo.Detach()
	}
	if s.panel != nil {
		s.panel.Hide()
	}
}

// Delete removes the selected item from the registry and the scene and returns to Idle.
// It reports false, changing nothing, when called while Idle.
func (s *State) Delete() bool {
	it := s.current
	if it == nil {
		return false
	}
	s.Deselect()
	s.reg.Remove(it)
	if s.scene != nil {
		s.scene.RemoveFromScene(it)
	}
	if s.OnDelete != nil {
		s.OnDelete(it)
	}
	return true
}
