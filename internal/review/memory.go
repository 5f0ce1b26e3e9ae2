package review

import (
	"context"
	"slices"
	"sync"
)

// MemoryBacklog keeps pending ids in process memory.
type MemoryBacklog struct {
	mu      sync.Mutex
	pending map[string][]string
}

func NewMemoryBacklog() *MemoryBacklog {
	return &MemoryBacklog{pending: make(map[string][]string)}
}

func (m *MemoryBacklog) Enqueue(_ context.Context, lessonID, stepID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.Contains(m.pending[lessonID], stepID) {
		return nil
	}
	m.pending[lessonID] = append(m.pending[lessonID], stepID)
	return nil
}

func (m *MemoryBacklog) Remove(_ context.Context, lessonID, stepID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := slices.DeleteFunc(m.pending[lessonID], func(id string) bool { return id == stepID })
	if len(ids) == 0 {
		delete(m.pending, lessonID)
		return nil
	}
	m.pending[lessonID] = ids
	return nil
}

func (m *MemoryBacklog) Pending(_ context.Context, lessonID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.pending[lessonID]), nil
}

func (m *MemoryBacklog) Clear(_ context.Context, lessonID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, lessonID)
	return nil
}
