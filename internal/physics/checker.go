// Package physics answers overlap questions between placed furniture.
//
// Every check is a linear scan over the registry. A room holds tens of items, so there is no
// broad phase; add one (grid or sweep-and-prune) before using this for thousands of items.
package physics

import (
	"room-editor/internal/room"
)

// Checker tests item bounds against each other. It holds no state; bounds are computed from the
// items' current transforms on every call.
type Checker struct{}

// New returns a checker.
func New() *Checker {
	return &Checker{}
}

// Collides reports whether candidate intersects any other item in items.
// The candidate itself is skipped by identity, so two distinct items with equal values still collide.
func (c *Checker) Collides(candidate *room.Item, items []*room.Item) bool {
	return c.FirstHit(candidate, items) != nil
}

// FirstHit returns the first item in registry order whose bounds intersect candidate's, or nil.
func (c *Checker) FirstHit(candidate *room.Item, items []*room.Item) *room.Item {
	if candidate == nil {
		return nil
	}
	box := candidate.Bounds()
	for _, other := range items {
		if other == nil || other == candidate {
			continue
		}
		if box.Intersects(other.Bounds()) {
			return other
		}
	}
	return nil
}

// Pair is two intersecting items and their overlap along the axis of least penetration.
// Depth is zero for items that only touch.
type Pair struct {
	A, B  *room.Item
	Depth float32
}

// Pairs lists every intersecting pair once, in registry order.
func (c *Checker) Pairs(items []*room.Item) []Pair {
	var out []Pair
	for i := 0; i < len(items); i++ {
		boxI := items[i].Bounds()
		for j := i + 1; j < len(items); j++ {
			boxJ := items[j].Bounds()
			if !boxI.Intersects(boxJ) {
				continue
			}
			depth, _ := boxI.Penetration(boxJ)
			out = append(out, Pair{A: items[i], B: items[j], Depth: depth})
		}
	}
	return out
}
