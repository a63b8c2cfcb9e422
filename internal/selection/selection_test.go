package selection

import (
	"reflect"
	"testing"

	"room-editor/internal/geom"
	"room-editor/internal/room"
)

// recorder logs every side effect in call order.
type recorder struct {
	calls []string
}

func (r *recorder) Show()                         { r.calls = append(r.calls, "show") }
func (r *recorder) Hide()                         { r.calls = append(r.calls, "hide") }
func (r *recorder) Attach(it *room.Item)          { r.calls = append(r.calls, "attach "+it.Model) }
func (r *recorder) Detach()                       { r.calls = append(r.calls, "detach") }
func (r *recorder) RemoveFromScene(it *room.Item) { r.calls = append(r.calls, "remove "+it.Model) }

func (r *recorder) reset() { r.calls = nil }

func setup(models ...string) (*State, *room.Registry, *recorder, []*room.Item) {
	reg := room.NewRegistry()
	rec := &recorder{}
	var items []*room.Item
	for _, m := range models {
		it := room.NewItem(m, nil, geom.AABB{}, 1)
		reg.Add(it)
		items = append(items, it)
	}
	return New(reg, rec, rec, rec), reg, rec, items
}

func TestSelectFromIdle(t *testing.T) {
	s, _, rec, items := setup("a")
	s.Select(items[0])
	if s.Current() != items[0] {
		t.Fatalf("current = %v, want a", s.Current())
	}
	if want := []string{"attach a", "show"}; !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestReselectSwapsOnce(t *testing.T) {
	s, _, rec, items := setup("a", "b")
	s.Select(items[0])
	rec.reset()

	s.Select(items[1])
	if s.Current() != items[1] {
		t.Fatalf("current = %v, want b", s.Current())
	}
	if want := []string{"detach", "attach b", "show"}; !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestSelectSameItemIsNoop(t *testing.T) {
	s, _, rec, items := setup("a")
	s.Select(items[0])
	rec.reset()
	s.Select(items[0])
	if len(rec.calls) != 0 {
		t.Errorf("calls = %v, want none", rec.calls)
	}
}

func TestDeselect(t *testing.T) {
	s, _, rec, items := setup("a")
	s.Deselect()
	if len(rec.calls) != 0 {
		t.Errorf("deselect from idle produced %v", rec.calls)
	}
	s.Select(items[0])
	rec.reset()
	s.Deselect()
	if s.Current() != nil {
		t.Error("expected idle")
	}
	if want := []string{"detach", "hide"}; !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDeleteFromIdleIsNoop(t *testing.T) {
	s, reg, rec, _ := setup("a", "b")
	if s.Delete() {
		t.Error("Delete from idle reported true")
	}
	if reg.Len() != 2 {
		t.Errorf("registry len = %d, want 2", reg.Len())
	}
	if s.Current() != nil || len(rec.calls) != 0 {
		t.Errorf("state changed: current=%v calls=%v", s.Current(), rec.calls)
	}
}

func TestDeleteSelected(t *testing.T) {
	s, reg, rec, items := setup("a", "b")
	var deleted *room.Item
	s.OnDelete = func(it *room.Item) { deleted = it }
	s.Select(items[1])
	rec.reset()

	if !s.Delete() {
		t.Fatal("Delete reported false")
	}
	if s.Current() != nil {
		t.Error("expected idle after delete")
	}
	if reg.Contains(items[1]) || reg.Len() != 1 {
		t.Errorf("b still registered (len %d)", reg.Len())
	}
	if deleted != items[1] {
		t.Error("OnDelete not called with b")
	}
	if want := []string{"detach", "hide", "remove b"}; !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestSelectNilDeselects(t *testing.T) {
	s, _, _, items := setup("a")
	s.Select(items[0])
	s.Select(nil)
	if s.Current() != nil {
		t.Error("Select(nil) should leave the state idle")
	}
}
