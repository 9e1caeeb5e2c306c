package storage

import (
	"errors"

	"github.com/tiwariParth/go-task-tracker/internal/models"
)

// Common errors that can be returned by any storage implementation
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrCorruptStore = errors.New("tasks file is corrupt")
	ErrStorageIO    = errors.New("storage i/o error")
)

// Backend persists the ordered task collection as a whole.
type Backend interface {
	// Load returns the persisted tasks in insertion order. A backend with
	// nothing persisted yet returns an empty slice and no error.
	Load() ([]models.Task, error)
	// Save replaces the persisted collection with tasks.
	Save(tasks []models.Task) error
}

// Locker serializes mutations across processes.
type Locker interface {
	Lock() error
	Unlock() error
}

// Filter narrows a listing by exact, case-sensitive status equality.
// The zero Filter matches every task.
type Filter struct {
	Status models.TaskStatus
}

// NewStatusFilter creates a Filter for status.
func NewStatusFilter(status models.TaskStatus) Filter {
	return Filter{Status: status}
}

// Matches reports whether task passes the filter.
func (f Filter) Matches(task models.Task) bool {
	return f.Status == "" || task.Status == f.Status
}

// Apply returns the tasks passing the filter, preserving order. The result is
// never nil.
func (f Filter) Apply(tasks []models.Task) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if f.Matches(task) {
			out = append(out, task)
		}
	}
	return out
}
