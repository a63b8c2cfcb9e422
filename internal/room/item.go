package room

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"room-editor/internal/geom"
)

// ColorMask keeps the 24-bit RGB part of a colour value.
const ColorMask = 0xFFFFFF

// ItemID identifies one placed furniture instance.
type ItemID string

// NewItemID returns a fresh random id.
func NewItemID() ItemID {
	return ItemID(uuid.NewString())
}

// PartID tags one renderable sub-part of an item. Item points back at the owner,
// so resolving a picked sub-part never walks the scene graph.
type PartID struct {
	Item  ItemID
	Index int
}

// Item is one piece of furniture placed in the room.
// Handle is owned by the renderer; the core only carries it around.
type Item struct {
	ID       ItemID
	Model    string
	Handle   any
	Position mgl32.Vec3
	Yaw      float32
	Color    uint32
	// Local is the model-space bounding box after scaling, relative to the item origin.
	Local geom.AABB
	// Parts is the number of renderable sub-parts (meshes) of the model.
	Parts int
}

// NewItem returns an item with a fresh id, placed at the origin with no rotation.
// parts below 1 is treated as a single part.
func NewItem(model string, handle any, local geom.AABB, parts int) *Item {
	if parts < 1 {
		parts = 1
	}
	return &Item{
		ID:     NewItemID(),
		Model:  model,
		Handle: handle,
		Local:  local,
		Parts:  parts,
		Color:  0xFFFFFF,
	}
}

// Bounds returns the world-space box for the current transform. It is recomputed on every call.
func (it *Item) Bounds() geom.AABB {
	return it.Local.RotateY(it.Yaw).Translate(it.Position)
}

// PartIDs returns the ownership tags of every sub-part.
func (it *Item) PartIDs() []PartID {
	out := make([]PartID, it.Parts)
	for i := range out {
		out[i] = PartID{Item: it.ID, Index: i}
	}
	return out
}

// SetColor stores c masked to 24 bits.
func (it *Item) SetColor(c uint32) {
	it.Color = c & ColorMask
}
