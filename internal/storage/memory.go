// Package storage provides the persistence backends for the project
// collection: an in-memory store for tests and throwaway sessions, a JSON
// file mirroring browser local storage, and a SQLite repository.
package storage

import (
	"context"
	"sync"

	"verkskra/internal/core"
)

// Memory keeps the collection in process memory only. State is lost on
// restart, which is fine for development and tests.
type Memory struct {
	mu       sync.RWMutex
	projects []core.Project
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(context.Context) ([]core.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.Project, len(m.projects))
	copy(out, m.projects)
	return out, nil
}

func (m *Memory) Save(_ context.Context, projects []core.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects = make([]core.Project, len(projects))
	copy(m.projects, projects)
	return nil
}
