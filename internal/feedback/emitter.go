// Package feedback maps collision state to a visible highlight on an item.
package feedback

import (
	"room-editor/internal/room"
)

const (
	// CollisionColor is the emissive tint applied while an item overlaps another.
	CollisionColor uint32 = 0xFF0000
	// CollisionIntensity is the emissive strength of the collision tint.
	CollisionIntensity float32 = 0.5
)

// Highlighter sets the emissive colour of one renderable sub-part. rgb 0 clears it.
type Highlighter interface {
	SetEmissive(part room.PartID, rgb uint32, intensity float32)
}

// Emitter applies the collision highlight uniformly to every sub-part of an item.
// It remembers the last state per item and skips calls that would not change anything.
type Emitter struct {
	target Highlighter
	lit    map[room.ItemID]bool
}

// New returns an emitter writing to target.
func New(target Highlighter) *Emitter {
	return &Emitter{target: target, lit: make(map[room.ItemID]bool)}
}

// Apply highlights it when colliding is true and clears the highlight otherwise.
func (e *Emitter) Apply(it *room.Item, colliding bool) {
	if it == nil {
		return
	}
	prev, known := e.lit[it.ID]
	if known && prev == colliding {
		return
	}
	// Never-highlighted items already look cleared.
	if !known && !colliding {
		e.lit[it.ID] = false
		return
	}
	rgb, intensity := uint32(0), float32(0)
	if colliding {
		rgb, intensity = CollisionColor, CollisionIntensity
	}
	for _, p := range it.PartIDs() {
		e.target.SetEmissive(p, rgb, intensity)
	}
	e.lit[it.ID] = colliding
}

// Highlighted reports whether it currently carries the collision highlight.
func (e *Emitter) Highlighted(it *room.Item) bool {
	return it != nil && e.lit[it.ID]
}

// Forget drops the remembered state of a deleted item.
func (e *Emitter) Forget(it *room.Item) {
	if it != nil {
		delete(e.lit, it.ID)
	}
}

// Reset drops all remembered state, e.g. after a layout replaced every item.
func (e *Emitter) Reset() {
	e.lit = make(map[room.ItemID]bool)
}
