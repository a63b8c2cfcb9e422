// Package catalog lists the furniture models and colours the editor offers.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownModel is returned by Lookup for ids not in the catalog.
var ErrUnknownModel = errors.New("unknown model")

// Model is one loadable furniture piece.
type Model struct {
	ID    string  `yaml:"id"`
	Name  string  `yaml:"name"`
	File  string  `yaml:"file"`
	Scale float32 `yaml:"scale"`
	// Color is the tint new instances start with, "#rrggbb". Empty means white.
	Color string `yaml:"color,omitempty"`
	// Primitive replaces the model file with a generated mesh: cube, sphere or cylinder.
	Primitive string `yaml:"primitive,omitempty"`
	// Size is the primitive's extent along x, y and z before scaling.
	Size [3]float32 `yaml:"size,omitempty"`
}

// Primitives are the generated shapes a catalog entry may use instead of a file.
var Primitives = []string{"cube", "sphere", "cylinder"}

// Swatch is one colour button of the properties panel.
type Swatch struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Catalog is the parsed catalog file.
type Catalog struct {
	Models  []Model  `yaml:"models"`
	Palette []Swatch `yaml:"palette"`
}

// Default is the built-in catalog used when no file is present.
func Default() *Catalog {
	return &Catalog{
		Models: []Model{
			{ID: "chair.glb", Name: "Chair", File: "chair.glb", Scale: 3},
			{ID: "table.glb", Name: "Table", File: "table.glb", Scale: 3},
			{ID: "sofa.glb", Name: "Sofa", File: "sofa.glb", Scale: 3},
			{ID: "lamp.glb", Name: "Lamp", File: "lamp.glb", Scale: 3},
			{ID: "crate", Name: "Crate", Primitive: "cube", Size: [3]float32{1, 1, 1}, Scale: 1},
		},
		Palette: []Swatch{
			{Name: "White", Color: "#ffffff"},
			{Name: "Red", Color: "#ff0000"},
			{Name: "Green", Color: "#00ff00"},
			{Name: "Blue", Color: "#0000ff"},
			{Name: "Walnut", Color: "#8b4513"},
		},
	}
}

// Load reads a YAML catalog. A missing file yields Default().
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML. Model files default to the id and scales to 1.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	seen := make(map[string]bool, len(c.Models))
	for i := range c.Models {
		m := &c.Models[i]
		if m.ID == "" {
			return nil, fmt.Errorf("catalog model %d: missing id", i)
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("catalog model %q: duplicate id", m.ID)
		}
		seen[m.ID] = true
		if m.Primitive != "" {
			if !slices.Contains(Primitives, m.Primitive) {
				return nil, fmt.Errorf("catalog model %q: unknown primitive %q", m.ID, m.Primitive)
			}
			for j, v := range m.Size {
				if v <= 0 {
					m.Size[j] = 1
				}
			}
		} else if m.File == "" {
			m.File = m.ID
		}
		if m.Name == "" {
			m.Name = m.ID
		}
		if m.Scale <= 0 {
			m.Scale = 1
		}
		if m.Color != "" {
			if _, err := ParseColor(m.Color); err != nil {
				return nil, fmt.Errorf("catalog model %q: %w", m.ID, err)
			}
		}
	}
	for _, s := range c.Palette {
		if _, err := ParseColor(s.Color); err != nil {
			return nil, fmt.Errorf("palette %q: %w", s.Name, err)
		}
	}
	return &c, nil
}

// Lookup returns the model with the given id.
func (c *Catalog) Lookup(id string) (Model, error) {
	for _, m := range c.Models {
		if m.ID == id {
			return m, nil
		}
	}
	return Model{}, fmt.Errorf("%w: %s", ErrUnknownModel, id)
}

// Tint returns the starting colour of m, white when none is set.
func (m Model) Tint() uint32 {
	if c, err := ParseColor(m.Color); err == nil && m.Color != "" {
		return c
	}
	return 0xFFFFFF
}

// ParseColor accepts "#rrggbb", "0xrrggbb" or "rrggbb".
func ParseColor(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == len(s) {
		hex = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	}
	if len(hex) != 6 {
		return 0, fmt.Errorf("colour %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("colour %q: %w", s, err)
	}
	return uint32(v), nil
}

// FormatColor renders c as "#rrggbb".
func FormatColor(c uint32) string {
	return fmt.Sprintf("#%06x", c&0xFFFFFF)
}
