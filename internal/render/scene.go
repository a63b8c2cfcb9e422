// Package render draws the furnished room with raylib and implements the renderer interfaces
// of the editor: picking, transforms, colours, emissive highlight and the orbit camera.
//
// Every function here must run on the thread that owns the window.
package render

import (
	"slices"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"

	"room-editor/internal/geom"
	"room-editor/internal/interaction"
	"room-editor/internal/room"
)

// Model is the renderer handle the loader hands out. Each item owns its own Model so that
// colour and highlight can differ per instance.
type Model struct {
	rl    rl.Model
	scale float32
}

// entry is one item in the scene.
type entry struct {
	item      *room.Item
	model     *Model
	transform rl.Matrix
	color     rl.Color
	// emissive is the glow per sub-part, already multiplied by its intensity.
	emissive [][3]float32
}

// Scene holds the drawable items and the room shell.
type Scene struct {
	shade   *shading
	entries map[room.ItemID]*entry
	order   []room.ItemID
	shell   Shell
	log     logrus.FieldLogger
}

// NewScene returns an empty scene. The shell is the floor, grid and walls drawn around the items.
func NewScene(shell Shell, log logrus.FieldLogger) *Scene {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Scene{
		shade:   &shading{},
		entries: make(map[room.ItemID]*entry),
		shell:   shell,
		log:     log,
	}
}

// AddToScene makes it drawable. Items whose Handle is not a *Model are skipped.
func (s *Scene) AddToScene(it *room.Item) {
	m, ok := it.Handle.(*Model)
	if !ok || m == nil {
		s.log.WithField("item", it.ID).Warn("item has no render model")
		return
	}
	if _, dup := s.entries[it.ID]; !dup {
		s.order = append(s.order, it.ID)
	}
	s.entries[it.ID] = &entry{
		item:     it,
		model:    m,
		color:    rl.White,
		emissive: make([][3]float32, it.Parts),
	}
	s.SetTransform(it)
	s.SetColor(it)
}

// RemoveFromScene stops drawing it and frees its GPU model.
func (s *Scene) RemoveFromScene(it *room.Item) {
	e, ok := s.entries[it.ID]
	if !ok {
		return
	}
	delete(s.entries, it.ID)
	s.order = slices.DeleteFunc(s.order, func(id room.ItemID) bool { return id == it.ID })
	rl.UnloadModel(e.model.rl)
}

// SetTransform rebuilds the model matrix from the item's position and yaw.
// Order: the model's own transform, then scale, then yaw, then translation.
func (s *Scene) SetTransform(it *room.Item) {
	e, ok := s.entries[it.ID]
	if !ok {
		return
	}
	sc := e.model.scale
	placed := rl.MatrixMultiply(
		rl.MatrixMultiply(rl.MatrixScale(sc, sc, sc), rl.MatrixRotateY(it.Yaw)),
		rl.MatrixTranslate(it.Position.X(), it.Position.Y(), it.Position.Z()),
	)
	e.transform = rl.MatrixMultiply(e.model.rl.Transform, placed)
}

// SetColor applies the item's colour to every sub-part.
func (s *Scene) SetColor(it *room.Item) {
	if e, ok := s.entries[it.ID]; ok {
		e.color = toColor(it.Color)
	}
}

// SetEmissive sets the glow of one sub-part. intensity 0 turns it off.
func (s *Scene) SetEmissive(part room.PartID, rgb uint32, intensity float32) {
	e, ok := s.entries[part.Item]
	if !ok || part.Index < 0 || part.Index >= len(e.emissive) {
		return
	}
	c := toColor(rgb)
	e.emissive[part.Index] = [3]float32{
		float32(c.R) / 255 * intensity,
		float32(c.G) / 255 * intensity,
		float32(c.B) / 255 * intensity,
	}
}

// CastRay tests r against the meshes of the candidate sub-parts and returns the hits nearest first.
// Items whose world box the ray misses are skipped without touching their meshes.
func (s *Scene) CastRay(r geom.Ray, candidates []room.PartID) []interaction.Hit {
	ray := rl.Ray{Position: toVector(r.Origin), Direction: toVector(r.Dir)}
	missed := make(map[room.ItemID]bool)
	var hits []interaction.Hit
	for _, p := range candidates {
		e, ok := s.entries[p.Item]
		if !ok || missed[p.Item] {
			continue
		}
		if _, in := r.IntersectAABB(e.item.Bounds()); !in {
			missed[p.Item] = true
			continue
		}
		meshes := e.model.rl.GetMeshes()
		if p.Index < 0 || p.Index >= len(meshes) {
			continue
		}
		if col := rl.GetRayCollisionMesh(ray, meshes[p.Index], e.transform); col.Hit {
			hits = append(hits, interaction.Hit{Part: p, Distance: col.Distance})
		}
	}
	slices.SortFunc(hits, func(a, b interaction.Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	return hits
}

// Len returns the number of drawable items.
func (s *Scene) Len() int {
	return len(s.order)
}

// Draw renders the shell and every item with cam. Call between BeginDrawing and EndDrawing;
// overlays drawn afterwards appear on top.
func (s *Scene) Draw(cam rl.Camera3D, overlays ...func()) {
	s.shade.ensure()
	s.shade.setView(cam.Position)

	rl.BeginMode3D(cam)
	s.shell.Draw()
	for _, id := range s.order {
		s.drawEntry(s.entries[id])
	}
	for _, o := range overlays {
		o()
	}
	rl.EndMode3D()
}

func (s *Scene) drawEntry(e *entry) {
	m := e.model.rl
	meshes := m.GetMeshes()
	mats := m.GetMaterials()
	var meshMat []int32
	if m.MeshMaterial != nil {
		meshMat = unsafe.Slice(m.MeshMaterial, m.MeshCount)
	}
	for i, mesh := range meshes {
		mi := 0
		if i < len(meshMat) && int(meshMat[i]) < len(mats) {
			mi = int(meshMat[i])
		}
		if len(mats) == 0 {
			continue
		}
		mtl := mats[mi]
		if s.shade.valid() {
			mtl.Shader = s.shade.shader
		}
		if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
			albedo.Color = e.color
		}
		if i < len(e.emissive) {
			s.shade.setEmissive(e.emissive[i])
		}
		rl.DrawMesh(mesh, mtl, e.transform)
	}
	s.shade.setEmissive([3]float32{})
}

// Unload frees every model and the shader. The scene is empty afterwards.
func (s *Scene) Unload() {
	for _, id := range s.order {
		rl.UnloadModel(s.entries[id].model.rl)
	}
	s.entries = make(map[room.ItemID]*entry)
	s.order = nil
	s.shade.unload()
}

func toColor(rgb uint32) rl.Color {
	return rl.NewColor(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb), 255)
}
