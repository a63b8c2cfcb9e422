package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTest(t *testing.T) *Repository {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "room.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	r := New(db)
	if err := r.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return r
}

func TestLoadMissing(t *testing.T) {
	r := openTest(t)
	if _, err := r.Load(context.Background(), "my-room"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveReplaces(t *testing.T) {
	r := openTest(t)
	ctx := context.Background()
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r.now = func() time.Time { return clock }

	if err := r.Save(ctx, "my-room", []byte(`[{"model":"a"}]`)); err != nil {
		t.Fatal(err)
	}
	clock = clock.Add(time.Minute)
	if err := r.Save(ctx, "my-room", []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	if err := r.Save(ctx, "other", []byte(`[{"model":"b"}]`)); err != nil {
		t.Fatal(err)
	}

	got, err := r.Load(ctx, "my-room")
	if err != nil {
		t.Fatal(err)
	}
	if string(got.Data) != "[]" {
		t.Errorf("data = %s, want the last write", got.Data)
	}
	if !got.UpdatedAt.Equal(clock) {
		t.Errorf("updated_at = %v, want %v", got.UpdatedAt, clock)
	}
	other, err := r.Load(ctx, "other")
	if err != nil || string(other.Data) != `[{"model":"b"}]` {
		t.Errorf("other = %+v, %v", other, err)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	r := openTest(t)
	ctx := context.Background()
	if err := r.Save(ctx, "k", []byte("[]")); err != nil {
		t.Fatal(err)
	}
	if err := r.Init(ctx); err != nil {
		t.Fatalf("second init: %v", err)
	}
	if _, err := r.Load(ctx, "k"); err != nil {
		t.Errorf("data lost after re-init: %v", err)
	}
	if err := r.Ping(ctx); err != nil {
		t.Errorf("ping: %v", err)
	}
}
