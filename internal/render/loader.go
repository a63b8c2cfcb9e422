package render

import (
	"context"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"room-editor/internal/assets"
	"room-editor/internal/catalog"
	"room-editor/internal/editor"
	"room-editor/internal/geom"
)

// defaultMeshRings and defaultMeshSlices control sphere and cylinder resolution.
const (
	defaultMeshRings  = 16
	defaultMeshSlices = 16
)

// Loader loads catalog models from disk, or generates them for primitive entries.
// Every call returns a fresh GPU model owned by the resulting item.
type Loader struct {
	cat  *catalog.Catalog
	dirs []string
}

// NewLoader resolves model files against modelsDir, tried from the working directory and from cmd/<name>.
func NewLoader(cat *catalog.Catalog, modelsDir string) *Loader {
	return &Loader{cat: cat, dirs: assets.SearchDirs(modelsDir)}
}

// LoadModel implements editor.ModelLoader.
func (l *Loader) LoadModel(ctx context.Context, id string) (editor.Model, error) {
	if err := ctx.Err(); err != nil {
		return editor.Model{}, err
	}
	entry, err := l.cat.Lookup(id)
	if err != nil {
		return editor.Model{}, err
	}

	var m rl.Model
	if entry.Primitive != "" {
		m = primitive(entry.Primitive, entry.Size)
	} else {
		path, err := assets.Resolve(l.dirs, entry.File)
		if err != nil {
			return editor.Model{}, fmt.Errorf("model %s: %w", id, err)
		}
		m = rl.LoadModel(path)
	}
	if !rl.IsModelValid(m) || m.MeshCount == 0 {
		rl.UnloadModel(m)
		return editor.Model{}, fmt.Errorf("model %s: no meshes", id)
	}

	box := rl.GetModelBoundingBox(m)
	sc := entry.Scale
	local := geom.NewAABB(
		mgl32.Vec3{box.Min.X, box.Min.Y, box.Min.Z}.Mul(sc),
		mgl32.Vec3{box.Max.X, box.Max.Y, box.Max.Z}.Mul(sc),
	)
	return editor.Model{
		Handle: &Model{rl: m, scale: sc},
		Local:  local,
		Parts:  int(m.MeshCount),
	}, nil
}

// primitive generates a mesh of the given extent whose base sits on y = 0, like a model file
// authored with its origin on the floor.
func primitive(kind string, size [3]float32) rl.Model {
	var (
		mesh rl.Mesh
		lift float32
	)
	switch kind {
	case "sphere":
		r := size[0] / 2
		mesh = rl.GenMeshSphere(r, defaultMeshRings, defaultMeshSlices)
		lift = r
	case "cylinder":
		// Raylib cylinder: base at y = 0, top at y = height.
		mesh = rl.GenMeshCylinder(size[0]/2, size[1], defaultMeshSlices)
	default:
		mesh = rl.GenMeshCube(size[0], size[1], size[2])
		lift = size[1] / 2
	}
	m := rl.LoadModelFromMesh(mesh)
	m.Transform = rl.MatrixTranslate(0, lift, 0)
	return m
}
