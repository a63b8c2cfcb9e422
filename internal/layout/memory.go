package layout

import (
	"context"
	"sync"
)

// Memory is an in-process Store, used when no backend is configured.
type Memory struct {
	mu      sync.Mutex
	records []Record
}

// NewMemory returns a store holding a copy of initial.
func NewMemory(initial []Record) *Memory {
	m := &Memory{}
	m.records = append([]Record{}, initial...)
	return m
}

// SaveLayout replaces the stored layout.
func (m *Memory) SaveLayout(ctx context.Context, records []Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append([]Record{}, records...)
	return nil
}

// LoadLayout returns a copy of the stored layout.
func (m *Memory) LoadLayout(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Record{}, m.records...), nil
}
