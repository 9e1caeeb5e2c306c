package memory

import (
	"sync"

	"github.com/tiwariParth/go-task-tracker/internal/models"
)

// MemoryStore implements the storage.Backend interface using in-memory storage
type MemoryStore struct {
	mu    sync.RWMutex
	tasks []models.Task
	saves int
}

// NewMemoryStore creates a new instance of MemoryStore seeded with tasks.
func NewMemoryStore(tasks ...models.Task) *MemoryStore {
	return &MemoryStore{tasks: clone(tasks)}
}

// Load returns a copy of the stored tasks.
func (m *MemoryStore) Load() ([]models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.tasks), nil
}

// Save replaces the stored tasks with a copy of tasks.
func (m *MemoryStore) Save(tasks []models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = clone(tasks)
	m.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (m *MemoryStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

func clone(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	return out
}
