// Package layout defines the persisted form of a room and the client that stores it.
package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"room-editor/internal/room"
)

// ErrInvalidRecord is returned for records that cannot be placed in a room.
var ErrInvalidRecord = errors.New("invalid layout record")

// Vec is a JSON vector {x, y, z}.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Record is one furniture piece on the wire. Rotation holds Euler angles in radians;
// only the y component (yaw) is meaningful to the editor.
type Record struct {
	Model    string `json:"model"`
	Position Vec    `json:"position"`
	Rotation Vec    `json:"rotation"`
	Color    int    `json:"color"`
}

// FromItem captures the persisted state of it.
func FromItem(it *room.Item) Record {
	return Record{
		Model: it.Model,
		Position: Vec{
			X: float64(it.Position.X()),
			Y: float64(it.Position.Y()),
			Z: float64(it.Position.Z()),
		},
		Rotation: Vec{Y: float64(it.Yaw)},
		Color:    int(it.Color & room.ColorMask),
	}
}

// Snapshot converts every item, preserving order. It never returns nil.
func Snapshot(items []*room.Item) []Record {
	out := make([]Record, 0, len(items))
	for _, it := range items {
		out = append(out, FromItem(it))
	}
	return out
}

// Apply writes the record's transform and colour onto an already loaded item.
func (r Record) Apply(it *room.Item) {
	it.Position = mgl32.Vec3{float32(r.Position.X), float32(r.Position.Y), float32(r.Position.Z)}
	it.Yaw = float32(r.Rotation.Y)
	it.SetColor(uint32(r.Color))
}

// Validate rejects records with no model, non-finite numbers or a colour outside 24-bit RGB.
func (r Record) Validate() error {
	if r.Model == "" {
		return fmt.Errorf("%w: empty model", ErrInvalidRecord)
	}
	for _, v := range []float64{r.Position.X, r.Position.Y, r.Position.Z, r.Rotation.X, r.Rotation.Y, r.Rotation.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s has a non-finite transform", ErrInvalidRecord, r.Model)
		}
	}
	if r.Color < 0 || r.Color > int(room.ColorMask) {
		return fmt.Errorf("%w: %s colour %#x out of range", ErrInvalidRecord, r.Model, r.Color)
	}
	return nil
}

// ValidateAll checks every record and reports the first failure with its index.
func ValidateAll(records []Record) error {
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}
