package room

// Registry is the ordered set of selectable items in one room.
// Static geometry (walls, floor, grid) is never registered.
type Registry struct {
	items []*Item
	index map[ItemID]*Item
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[ItemID]*Item)}
}

// Add appends it. Adding an item that is already registered is a no-op.
func (r *Registry) Add(it *Item) {
	if it == nil {
		return
	}
	if _, ok := r.index[it.ID]; ok {
		return
	}
	r.items = append(r.items, it)
	r.index[it.ID] = it
}

// Remove drops it by identity and reports whether it was registered.
func (r *Registry) Remove(it *Item) bool {
	if it == nil {
		return false
	}
	cur, ok := r.index[it.ID]
	if !ok || cur != it {
		return false
	}
	delete(r.index, it.ID)
	for i, x := range r.items {
		if x == it {
			r.items = append(r.items[:i], r.items[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the item with id, or nil.
func (r *Registry) Get(id ItemID) *Item {
	return r.index[id]
}

// Owner resolves a picked sub-part to its furniture piece, or nil for parts of unregistered items.
func (r *Registry) Owner(p PartID) *Item {
	it := r.index[p.Item]
	if it == nil || p.Index < 0 || p.Index >= it.Parts {
		return nil
	}
	return it
}

// Contains reports whether it is registered.
func (r *Registry) Contains(it *Item) bool {
	return it != nil && r.index[it.ID] == it
}

// Items returns the registered items in insertion order. The slice is shared; do not modify it.
func (r *Registry) Items() []*Item {
	return r.items
}

// Parts returns the sub-part tags of every registered item, the candidate set for picking.
func (r *Registry) Parts() []PartID {
	var out []PartID
	for _, it := range r.items {
		out = append(out, it.PartIDs()...)
	}
	return out
}

// Len returns the number of registered items.
func (r *Registry) Len() int {
	return len(r.items)
}
