package interaction

import (
	"fmt"
	"io"
	"math"
	"sort"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"room-editor/internal/feedback"
	"room-editor/internal/geom"
	"room-editor/internal/physics"
	"room-editor/internal/placement"
	"room-editor/internal/room"
	"room-editor/internal/selection"
)

// topDown maps screen (x, y) to a ray falling straight onto floor point (x, 0, y).
// Screen coordinates past 1000 produce a horizontal ray that never meets the floor.
type topDown struct{}

func (topDown) Ray(x, y float32) geom.Ray {
	if x > 1000 {
		return geom.Ray{Origin: mgl32.Vec3{0, 5, 0}, Dir: mgl32.Vec3{1, 0, 0}}
	}
	return geom.Ray{Origin: mgl32.Vec3{x, 10, y}, Dir: mgl32.Vec3{0, -1, 0}}
}

// fakeScene picks against item bounds and records renderer calls.
type fakeScene struct {
	reg        *room.Registry
	extra      []Hit
	casts      int
	transforms int
	removed    []*room.Item
	emissive   map[room.PartID]uint32
	orbit      []bool
	panel      []string
	onlyPart   int
}

func newFakeScene(reg *room.Registry) *fakeScene {
	return &fakeScene{reg: reg, emissive: make(map[room.PartID]uint32), onlyPart: -1}
}

func (f *fakeScene) CastRay(r geom.Ray, candidates []room.PartID) []Hit {
	f.casts++
	hits := append([]Hit(nil), f.extra...)
	for _, p := range candidates {
		if f.onlyPart >= 0 && p.Index != f.onlyPart {
			continue
		}
		it := f.reg.Owner(p)
		if it == nil {
			continue
		}
		if t, ok := r.IntersectAABB(it.Bounds()); ok {
			hits = append(hits, Hit{Part: p, Distance: t})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

func (f *fakeScene) SetTransform(it *room.Item)    { f.transforms++ }
func (f *fakeScene) RemoveFromScene(it *room.Item) { f.removed = append(f.removed, it) }
func (f *fakeScene) SetEmissive(p room.PartID, rgb uint32, _ float32) {
	f.emissive[p] = rgb
}
func (f *fakeScene) SetOrbitEnabled(on bool) { f.orbit = append(f.orbit, on) }
func (f *fakeScene) Show()                   { f.panel = append(f.panel, "show") }
func (f *fakeScene) Hide()                   { f.panel = append(f.panel, "hide") }

type fixture struct {
	c     *Controller
	reg   *room.Registry
	sel   *selection.State
	scene *fakeScene
	fb    *feedback.Emitter
}

func newFixture() *fixture {
	reg := room.NewRegistry()
	scene := newFakeScene(reg)
	sel := selection.New(reg, scene, scene, nil)
	fb := feedback.New(scene)
	log := logrus.New()
	log.SetOutput(io.Discard)
	c := New(Deps{
		Registry:  reg,
		Selection: sel,
		Rules:     placement.Default(),
		Checker:   physics.New(),
		Feedback:  fb,
		View:      topDown{},
		Picker:    scene,
		Scene:     scene,
		Orbit:     scene,
		Log:       log,
	})
	return &fixture{c: c, reg: reg, sel: sel, scene: scene, fb: fb}
}

// place registers a unit cube (parts sub-meshes) at (x, 0, z).
func (f *fixture) place(model string, x, z float32, parts int) *room.Item {
	it := room.NewItem(model, nil, geom.NewAABB(mgl32.Vec3{-0.5, 0, -0.5}, mgl32.Vec3{0.5, 1, 0.5}), parts)
	it.Position = mgl32.Vec3{x, 0, z}
	f.reg.Add(it)
	return it
}

func down(x, y float32) Event   { return Event{Kind: PointerDown, X: x, Y: y} }
func move(x, y float32) Event   { return Event{Kind: PointerMove, X: x, Y: y} }
func up(x, y float32) Event     { return Event{Kind: PointerUp, X: x, Y: y} }
func key(k string) Event        { return Event{Kind: KeyDown, Key: k} }
func uiDown(x, y float32) Event { return Event{Kind: PointerDown, X: x, Y: y, Target: TargetUI} }

func TestPointerDownOnUIIsIgnored(t *testing.T) {
	f := newFixture()
	it := f.place("chair", 0, 0, 1)
	if got := f.c.Handle(uiDown(0, 0)); got != Ignored {
		t.Fatalf("result = %v, want ignored", got)
	}
	if f.scene.casts != 0 {
		t.Errorf("ray cast %d times for a UI click", f.scene.casts)
	}
	if f.sel.Current() != nil {
		t.Error("UI click selected an item")
	}

	f.sel.Select(it)
	f.c.Handle(uiDown(5, 5))
	if f.sel.Current() != it {
		t.Error("UI click changed the selection")
	}
}

func TestPointerDownMissDeselects(t *testing.T) {
	f := newFixture()
	it := f.place("chair", 0, 0, 1)
	f.sel.Select(it)
	if got := f.c.Handle(down(5, 5)); got != Handled {
		t.Fatalf("result = %v, want handled", got)
	}
	if f.sel.Current() != nil {
		t.Error("miss should deselect")
	}
	if f.c.Phase() != Idle {
		t.Errorf("phase = %v, want idle", f.c.Phase())
	}
}

func TestDragKeepsGrabOffset(t *testing.T) {
	f := newFixture()
	it := f.place("chair", 2, 2, 1)

	f.c.Handle(down(2.3, 2.2))
	if f.c.Phase() != Dragging {
		t.Fatalf("phase = %v, want dragging", f.c.Phase())
	}
	if f.sel.Current() != it {
		t.Fatal("pointer-down on item should select it")
	}
	// Small moves inside the snap radius leave the item where it was.
	f.c.Handle(move(2.4, 2.3))
	if it.Position != (mgl32.Vec3{2, 0, 2}) {
		t.Errorf("position jumped to %v", it.Position)
	}

	f.c.Handle(move(5.3, 2.2))
	if want := (mgl32.Vec3{5, 0, 2}); it.Position != want {
		t.Errorf("position = %v, want %v", it.Position, want)
	}

	f.c.Handle(move(30, -40))
	if want := (mgl32.Vec3{9, 0, -9}); it.Position != want {
		t.Errorf("position = %v, want clamped %v", it.Position, want)
	}
	if f.scene.transforms != 3 {
		t.Errorf("transforms = %d, want 3", f.scene.transforms)
	}
}

func TestDragPushesCollisionFeedback(t *testing.T) {
	f := newFixture()
	a := f.place("chair", 0, 0, 2)
	f.place("table", 3, 0, 1)

	f.c.Handle(down(0, 0))
	f.c.Handle(move(3, 0))
	for _, p := range a.PartIDs() {
		if f.scene.emissive[p] != feedback.CollisionColor {
			t.Errorf("part %v emissive = %#x, want red", p, f.scene.emissive[p])
		}
	}
	if !f.fb.Highlighted(a) {
		t.Error("dragged item should be highlighted")
	}

	f.c.Handle(move(5, 0))
	for _, p := range a.PartIDs() {
		if f.scene.emissive[p] != 0 {
			t.Errorf("part %v emissive = %#x, want cleared", p, f.scene.emissive[p])
		}
	}
	f.c.Handle(up(5, 0))
	if a.Position != (mgl32.Vec3{5, 0, 0}) {
		t.Errorf("committed position = %v", a.Position)
	}
}

func TestPartnerFeedbackFollowsCommitAndDelete(t *testing.T) {
	f := newFixture()
	a := f.place("chair", 0, 0, 1)
	b := f.place("table", 4, 0, 1)

	f.c.Handle(down(0, 0))
	f.c.Handle(move(3, 0))
	if !f.fb.Highlighted(a) {
		t.Fatal("cube touching the table should be highlighted")
	}
	f.c.Handle(up(3, 0))
	if !f.fb.Highlighted(b) {
		t.Error("table should be highlighted once the drag commits")
	}

	if f.c.Delete() != Handled {
		t.Fatal("delete failed")
	}
	if f.fb.Highlighted(b) {
		t.Error("table kept its highlight after its partner was deleted")
	}
	for _, p := range b.PartIDs() {
		if f.scene.emissive[p] != 0 {
			t.Errorf("part %v emissive = %#x, want cleared", p, f.scene.emissive[p])
		}
	}
}

func TestPointerUpEndsDragAndRestoresOrbit(t *testing.T) {
	f := newFixture()
	it := f.place("chair", 0, 0, 1)
	f.c.Handle(down(0, 0))
	f.c.Handle(move(2, 0))
	if got := f.c.Handle(up(40, 40)); got != Handled {
		t.Fatalf("pointer-up result = %v", got)
	}
	if f.c.Dragging() {
		t.Fatal("drag still active after pointer-up")
	}
	if f.c.Phase() != Selected {
		t.Errorf("phase = %v, want selected", f.c.Phase())
	}
	if len(f.scene.orbit) != 2 || f.scene.orbit[0] || !f.scene.orbit[1] {
		t.Errorf("orbit toggles = %v, want [false true]", f.scene.orbit)
	}
	if got := f.c.Handle(move(6, 6)); got != Ignored {
		t.Errorf("move after pointer-up = %v, want ignored", got)
	}
	if it.Position != (mgl32.Vec3{2, 0, 0}) {
		t.Errorf("position = %v, want (2,0,0)", it.Position)
	}
}

func TestPointerLeaveCommitsDrag(t *testing.T) {
	f := newFixture()
	it := f.place("chair", 0, 0, 1)
	f.c.Handle(down(0, 0))
	f.c.Handle(move(-4, 3))
	if got := f.c.Handle(Event{Kind: PointerLeave}); got != Handled {
		t.Fatalf("leave result = %v", got)
	}
	if f.c.Dragging() {
		t.Error("drag still active after leaving the window")
	}
	if it.Position != (mgl32.Vec3{-4, 0, 3}) {
		t.Errorf("position = %v, want last placed (-4,0,3)", it.Position)
	}
}

func TestMoveWithoutDragIsIgnored(t *testing.T) {
	f := newFixture()
	it := f.place("chair", 0, 0, 1)
	f.sel.Select(it)
	if got := f.c.Handle(move(3, 3)); got != Ignored {
		t.Errorf("result = %v, want ignored", got)
	}
	if it.Position != (mgl32.Vec3{}) || f.scene.transforms != 0 {
		t.Error("item moved without a drag session")
	}
}

func TestPickResolvesSubPartToOwner(t *testing.T) {
	f := newFixture()
	sofa := f.place("sofa", 0, 0, 4)
	f.scene.onlyPart = 2
	f.c.Handle(down(0, 0))
	if f.sel.Current() != sofa {
		t.Errorf("selected %v, want the sofa", f.sel.Current())
	}
}

func TestPickSkipsUnregisteredGeometry(t *testing.T) {
	f := newFixture()
	chair := f.place("chair", 0, 0, 1)
	f.scene.extra = []Hit{{Part: room.PartID{Item: "wall"}, Distance: 0.1}}
	f.c.Handle(down(0, 0))
	if f.sel.Current() != chair {
		t.Errorf("selected %v, want chair behind static geometry", f.sel.Current())
	}
}

func TestPickChoosesNearest(t *testing.T) {
	f := newFixture()
	f.place("stool", 0, 0, 1)
	high := room.NewItem("shelf", nil, geom.NewAABB(mgl32.Vec3{-0.5, 0, -0.5}, mgl32.Vec3{0.5, 3, 0.5}), 1)
	f.reg.Add(high)
	f.c.Handle(down(0, 0))
	if f.sel.Current() != high {
		t.Errorf("selected %v, want the taller shelf", f.sel.Current())
	}
}

func TestSelectWithoutFloorHitStartsNoDrag(t *testing.T) {
	f := newFixture()
	wide := room.NewItem("rug", nil, geom.NewAABB(mgl32.Vec3{-20, 0, -20}, mgl32.Vec3{20, 10, 20}), 1)
	f.reg.Add(wide)
	f.c.Handle(down(2000, 0))
	if f.sel.Current() != wide {
		t.Fatal("expected rug selected")
	}
	if f.c.Dragging() {
		t.Error("drag started without a floor intersection")
	}
}

func TestRotateKeys(t *testing.T) {
	f := newFixture()
	it := f.place("chair", 1, 1, 1)
	if got := f.c.Handle(key("q")); got != Ignored {
		t.Errorf("rotate with nothing selected = %v, want ignored", got)
	}
	f.sel.Select(it)

	var tests = []struct {
		key  string
		want float32
	}{
		{"q", math.Pi / 2},
		{"ArrowLeft", math.Pi},
		{"e", math.Pi / 2},
		{"arrowright", 0},
		{"E", 3 * math.Pi / 2},
	}
	for _, tt := range tests {
		if got := f.c.Handle(key(tt.key)); got != Handled {
			t.Fatalf("key %q = %v", tt.key, got)
		}
		if !mgl32.FloatEqualThreshold(it.Yaw, tt.want, 1e-5) {
			t.Errorf("after %q yaw = %v, want %v", tt.key, it.Yaw, tt.want)
		}
		if it.Position != (mgl32.Vec3{1, 0, 1}) {
			t.Errorf("rotation moved the item to %v", it.Position)
		}
	}
}

func TestUnknownKeyIgnored(t *testing.T) {
	f := newFixture()
	it := f.place("chair", 0, 0, 1)
	f.sel.Select(it)
	for _, k := range []string{"x", "", "f12"} {
		if got := f.c.Handle(key(k)); got != Ignored {
			t.Errorf("key %q = %v, want ignored", k, got)
		}
	}
}

func TestDeleteKey(t *testing.T) {
	f := newFixture()
	it := f.place("chair", 0, 0, 1)
	if got := f.c.Handle(key("delete")); got != Ignored {
		t.Errorf("delete from idle = %v, want ignored", got)
	}
	if f.reg.Len() != 1 {
		t.Fatal("delete from idle changed the registry")
	}
	f.sel.Select(it)
	if got := f.c.Handle(key("Backspace")); got != Handled {
		t.Fatalf("delete = %v, want handled", got)
	}
	if f.reg.Len() != 0 || len(f.scene.removed) != 1 {
		t.Errorf("registry len %d, removed %d", f.reg.Len(), len(f.scene.removed))
	}
	if f.c.Phase() != Idle {
		t.Errorf("phase = %v, want idle", f.c.Phase())
	}
}

func TestDeleteRefusedDuringDrag(t *testing.T) {
	f := newFixture()
	it := f.place("chair", 0, 0, 1)
	f.c.Handle(down(0, 0))
	if got := f.c.Handle(key("delete")); got != Ignored {
		t.Errorf("delete key during drag = %v, want ignored", got)
	}
	if got := f.c.Delete(); got != Ignored {
		t.Errorf("Delete() during drag = %v, want ignored", got)
	}
	if !f.reg.Contains(it) || !f.c.Dragging() {
		t.Fatal("drag or item lost after refused delete")
	}
	f.c.Handle(up(0, 0))
	if got := f.c.Delete(); got != Handled {
		t.Errorf("Delete() after drag = %v, want handled", got)
	}
	if f.reg.Contains(it) {
		t.Error("item still registered")
	}
}

func TestRotateDuringDragDoesNotMove(t *testing.T) {
	f := newFixture()
	it := f.place("chair", 0, 0, 1)
	f.c.Handle(down(0, 0))
	f.c.Handle(move(3, 0))
	if got := f.c.Handle(key("q")); got != Handled {
		t.Fatalf("rotate during drag = %v", got)
	}
	if it.Position != (mgl32.Vec3{3, 0, 0}) {
		t.Errorf("position = %v, want (3,0,0)", it.Position)
	}
	if got := f.c.Handle(key("r")); got != Ignored {
		t.Errorf("mode switch during drag = %v, want ignored", got)
	}
	if got := f.c.Handle(key("escape")); got != Ignored {
		t.Errorf("escape during drag = %v, want ignored", got)
	}
}

func TestRotateModeDrag(t *testing.T) {
	f := newFixture()
	it := f.place("chair", 0, 0, 1)
	if got := f.c.Handle(key("r")); got != Handled {
		t.Fatalf("rotate mode = %v", got)
	}
	if got := f.c.Handle(key("r")); got != Ignored {
		t.Errorf("repeated mode key = %v, want ignored", got)
	}
	// Grab the +x edge and swing the pointer to -z: a quarter turn.
	f.c.Handle(down(0.4, 0))
	f.c.Handle(move(0, -2))
	if !mgl32.FloatEqualThreshold(it.Yaw, math.Pi/2, 1e-5) {
		t.Errorf("yaw = %v, want pi/2", it.Yaw)
	}
	if it.Position != (mgl32.Vec3{}) {
		t.Errorf("rotate drag moved the item to %v", it.Position)
	}
	f.c.Handle(move(2, -2))
	if !mgl32.FloatEqualThreshold(it.Yaw, math.Pi/4, 1e-5) {
		t.Errorf("yaw = %v, want pi/4", it.Yaw)
	}
	f.c.Handle(up(0, 0))
	f.c.Handle(key("t"))
	if f.c.Mode() != ModeTranslate {
		t.Errorf("mode = %v, want translate", f.c.Mode())
	}
}

func TestEscapeDeselects(t *testing.T) {
	f := newFixture()
	it := f.place("chair", 0, 0, 1)
	f.sel.Select(it)
	if got := f.c.Handle(key("Escape")); got != Handled {
		t.Fatalf("escape = %v", got)
	}
	if f.sel.Current() != nil {
		t.Error("escape should deselect")
	}
	if got := f.c.Handle(key("escape")); got != Ignored {
		t.Errorf("escape while idle = %v, want ignored", got)
	}
}

func TestResetCommitsDrag(t *testing.T) {
	f := newFixture()
	it := f.place("chair", 0, 0, 1)
	f.c.Handle(down(0, 0))
	f.c.Handle(move(1, 1))
	f.c.Reset()
	if f.c.Dragging() {
		t.Error("Reset left the drag active")
	}
	if it.Position != (mgl32.Vec3{1, 0, 1}) {
		t.Errorf("position = %v", it.Position)
	}
	f.c.Reset()
}

// TestTransitionTable drives every (phase, kind) pair and checks the outcome against the expected matrix.
func TestTransitionTable(t *testing.T) {
	want := map[Phase]map[Kind]Result{
		Idle: {
			PointerDown: Handled, PointerMove: Ignored, PointerUp: Ignored, PointerLeave: Ignored, KeyDown: Ignored,
		},
		Selected: {
			PointerDown: Handled, PointerMove: Ignored, PointerUp: Ignored, PointerLeave: Ignored, KeyDown: Handled,
		},
		Dragging: {
			PointerDown: Ignored, PointerMove: Handled, PointerUp: Handled, PointerLeave: Handled, KeyDown: Handled,
		},
	}
	enter := func(f *fixture, p Phase) {
		it := f.place("chair", 0, 0, 1)
		switch p {
		case Selected:
			f.sel.Select(it)
		case Dragging:
			f.c.Handle(down(0, 0))
		}
		if f.c.Phase() != p {
			t.Fatalf("setup reached %v, want %v", f.c.Phase(), p)
		}
	}
	for _, p := range []Phase{Idle, Selected, Dragging} {
		for _, k := range []Kind{PointerDown, PointerMove, PointerUp, PointerLeave, KeyDown} {
			t.Run(fmt.Sprintf("%v x %v", p, k), func(t *testing.T) {
				f := newFixture()
				enter(f, p)
				ev := Event{Kind: k, X: 2, Y: 0, Key: "q"}
				if got := f.c.Handle(ev); got != want[p][k] {
					t.Errorf("got %v, want %v", got, want[p][k])
				}
			})
		}
	}
}

func TestNamesOutOfRange(t *testing.T) {
	var tests = []struct {
		name string
		got  fmt.Stringer
		want string
	}{
		{"kind", PointerLeave, "pointer-leave"},
		{"negative kind", Kind(-1), "unknown"},
		{"large kind", Kind(99), "unknown"},
		{"phase", Dragging, "dragging"},
		{"negative phase", Phase(-1), "unknown"},
		{"large phase", Phase(3), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if s := tt.got.String(); s != tt.want {
				t.Errorf("String() = %q, want %q", s, tt.want)
			}
		})
	}
	if got := newFixture().c.Handle(Event{Kind: Kind(-1)}); got != Ignored {
		t.Errorf("Handle(Kind(-1)) = %v, want ignored", got)
	}
}
