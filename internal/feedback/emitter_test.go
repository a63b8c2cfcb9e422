package feedback

import (
	"testing"

	"room-editor/internal/geom"
	"room-editor/internal/room"
)

type emissiveCall struct {
	part      room.PartID
	rgb       uint32
	intensity float32
}

type fakeHighlighter struct {
	calls []emissiveCall
}

func (f *fakeHighlighter) SetEmissive(part room.PartID, rgb uint32, intensity float32) {
	f.calls = append(f.calls, emissiveCall{part, rgb, intensity})
}

func TestApplyCoversEveryPart(t *testing.T) {
	h := &fakeHighlighter{}
	e := New(h)
	it := room.NewItem("table", nil, geom.AABB{}, 3)

	e.Apply(it, true)
	if len(h.calls) != 3 {
		t.Fatalf("calls = %d, want 3", len(h.calls))
	}
	for i, c := range h.calls {
		if c.part.Item != it.ID || c.part.Index != i {
			t.Errorf("call %d part = %+v", i, c.part)
		}
		if c.rgb != CollisionColor || c.intensity != CollisionIntensity {
			t.Errorf("call %d = %+v, want red highlight", i, c)
		}
	}
	if !e.Highlighted(it) {
		t.Error("Highlighted = false after Apply(true)")
	}

	h.calls = nil
	e.Apply(it, false)
	if len(h.calls) != 3 {
		t.Fatalf("clear calls = %d, want 3", len(h.calls))
	}
	for _, c := range h.calls {
		if c.rgb != 0 {
			t.Errorf("clear call %+v, want rgb 0", c)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	h := &fakeHighlighter{}
	e := New(h)
	it := room.NewItem("chair", nil, geom.AABB{}, 2)

	var tests = []struct {
		colliding bool
		newCalls  int
	}{
		{false, 0},
		{false, 0},
		{true, 2},
		{true, 0},
		{true, 0},
		{false, 2},
		{false, 0},
	}
	for i, tt := range tests {
		before := len(h.calls)
		e.Apply(it, tt.colliding)
		if got := len(h.calls) - before; got != tt.newCalls {
			t.Errorf("step %d Apply(%v): %d new calls, want %d", i, tt.colliding, got, tt.newCalls)
		}
	}
}

func TestForget(t *testing.T) {
	h := &fakeHighlighter{}
	e := New(h)
	it := room.NewItem("chair", nil, geom.AABB{}, 1)
	e.Apply(it, true)
	e.Forget(it)
	if e.Highlighted(it) {
		t.Error("forgotten item still highlighted")
	}
	e.Apply(nil, true)
	if len(h.calls) != 1 {
		t.Errorf("calls = %d, want 1", len(h.calls))
	}
}
