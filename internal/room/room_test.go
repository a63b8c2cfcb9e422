package room

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"room-editor/internal/geom"
)

func unitItem(parts int) *Item {
	return NewItem("chair.glb", nil, geom.NewAABB(mgl32.Vec3{-0.5, 0, -0.5}, mgl32.Vec3{0.5, 1, 0.5}), parts)
}

func TestRegistryAddRemove(t *testing.T) {
	r := NewRegistry()
	a, b := unitItem(1), unitItem(2)
	r.Add(a)
	r.Add(b)
	r.Add(a)
	if r.Len() != 2 {
		t.Fatalf("len = %d, want 2", r.Len())
	}
	if got := len(r.Parts()); got != 3 {
		t.Errorf("parts = %d, want 3", got)
	}
	if !r.Remove(a) {
		t.Fatal("remove a failed")
	}
	if r.Remove(a) {
		t.Error("second remove should report false")
	}
	if r.Contains(a) || !r.Contains(b) {
		t.Error("unexpected membership after remove")
	}
	if items := r.Items(); len(items) != 1 || items[0] != b {
		t.Errorf("items = %v, want [b]", items)
	}
}

func TestRegistryOwner(t *testing.T) {
	r := NewRegistry()
	it := unitItem(3)
	r.Add(it)

	var tests = []struct {
		part PartID
		want *Item
	}{
		{PartID{Item: it.ID, Index: 0}, it},
		{PartID{Item: it.ID, Index: 2}, it},
		{PartID{Item: it.ID, Index: 3}, nil},
		{PartID{Item: "missing", Index: 0}, nil},
	}
	for _, tt := range tests {
		if got := r.Owner(tt.part); got != tt.want {
			t.Errorf("Owner(%v) = %v, want %v", tt.part, got, tt.want)
		}
	}
}

func TestRemoveIsByIdentity(t *testing.T) {
	r := NewRegistry()
	it := unitItem(1)
	r.Add(it)
	clone := *it
	if r.Remove(&clone) {
		t.Error("a copy with the same id must not remove the registered item")
	}
	if !r.Contains(it) {
		t.Error("original item should still be registered")
	}
}

func TestItemBoundsFollowTransform(t *testing.T) {
	it := NewItem("sofa.glb", nil, geom.NewAABB(mgl32.Vec3{-1, 0, -0.5}, mgl32.Vec3{1, 1, 0.5}), 1)
	it.Position = mgl32.Vec3{3, 0, -2}
	it.Yaw = math.Pi / 2

	got := it.Bounds()
	want := geom.NewAABB(mgl32.Vec3{2.5, 0, -3}, mgl32.Vec3{3.5, 1, -1})
	if !got.Min.ApproxEqualThreshold(want.Min, 1e-4) || !got.Max.ApproxEqualThreshold(want.Max, 1e-4) {
		t.Errorf("bounds = %+v, want %+v", got, want)
	}
}

func TestSetColorMasks(t *testing.T) {
	it := unitItem(1)
	it.SetColor(0x12ABCDEF)
	if it.Color != 0xABCDEF {
		t.Errorf("color = %#x, want 0xabcdef", it.Color)
	}
}
