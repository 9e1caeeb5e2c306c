package task

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tiwariParth/go-task-tracker/internal/logging"
	"github.com/tiwariParth/go-task-tracker/internal/models"
	"github.com/tiwariParth/go-task-tracker/internal/storage"
)

// TaskStore manages the ordered task collection and keeps the backend in sync
// with it. It is not safe for concurrent use.
type TaskStore struct {
	tasks   []models.Task
	backend storage.Backend
	locker  storage.Locker
	logger  *log.Logger
	now     func() time.Time
	loadErr error
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithLogger sets the logger used for load and save diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(ts *TaskStore) {
		ts.logger = logger
	}
}

// WithLocker makes every mutation run under l, reloading the backend after
// the lock is taken so changes from other processes are not overwritten.
func WithLocker(l storage.Locker) Option {
	return func(ts *TaskStore) {
		ts.locker = l
	}
}

// WithClock overrides the time source used for created_at stamps.
func WithClock(now func() time.Time) Option {
	return func(ts *TaskStore) {
		ts.now = now
	}
}

// NewTaskStore initializes a TaskStore and loads the existing tasks from
// backend. A corrupt backend is not an error: the store starts empty, logs a
// warning and reports it through LoadWarning.
func NewTaskStore(backend storage.Backend, opts ...Option) (*TaskStore, error) {
	ts := &TaskStore{
		tasks:   []models.Task{},
		backend: backend,
		logger:  logging.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(ts)
	}

	if err := ts.load(); err != nil {
		return nil, err
	}
	return ts, nil
}

// LoadWarning returns the corrupt-file error recovered from during the most
// recent load, or nil.
func (ts *TaskStore) LoadWarning() error {
	return ts.loadErr
}

// Len returns the number of tasks in the store.
func (ts *TaskStore) Len() int {
	return len(ts.tasks)
}

// Tasks returns a copy of all tasks in insertion order.
func (ts *TaskStore) Tasks() []models.Task {
	return storage.Filter{}.Apply(ts.tasks)
}

// List returns the tasks whose status equals status, in insertion order. An
// empty status returns every task.
func (ts *TaskStore) List(status models.TaskStatus) []models.Task {
	return storage.NewStatusFilter(status).Apply(ts.tasks)
}

// AddTask appends a new pending task and persists the collection.
func (ts *TaskStore) AddTask(title, description, dueDate, priority string) (models.Task, error) {
	var added models.Task
	err := ts.mutate(func() (func(), error) {
		added = models.NewTask(title, description, dueDate, priority, ts.now())
		added.ID = len(ts.tasks) + 1
		ts.tasks = append(ts.tasks, added)
		return func() { ts.tasks = ts.tasks[:len(ts.tasks)-1] }, nil
	})
	if err != nil {
		return models.Task{}, err
	}

	ts.logger.Debug("added task", "id", added.ID)
	return added, nil
}

// UpdateStatus overwrites the status of the task with the given id and
// persists the collection. It returns storage.ErrTaskNotFound, leaving the
// store unchanged, when no task has that id.
func (ts *TaskStore) UpdateStatus(id int, status models.TaskStatus) (models.Task, error) {
	var updated models.Task
	err := ts.mutate(func() (func(), error) {
		i := ts.indexOf(id)
		if i < 0 {
			return nil, fmt.Errorf("task with ID %d: %w", id, storage.ErrTaskNotFound)
		}
		previous := ts.tasks[i].Status
		ts.tasks[i].Status = status
		updated = ts.tasks[i]
		return func() { ts.tasks[i].Status = previous }, nil
	})
	if err != nil {
		return models.Task{}, err
	}

	ts.logger.Debug("updated task status", "id", id, "status", status)
	return updated, nil
}

// Summary computes statistics over the current tasks.
func (ts *TaskStore) Summary() Summary {
	return Summarize(ts.tasks, ts.now())
}

// mutate applies a change and saves it. If the save fails the change is
// undone so memory never drifts from what is on disk.
func (ts *TaskStore) mutate(apply func() (undo func(), err error)) error {
	if ts.locker != nil {
		if err := ts.locker.Lock(); err != nil {
			return err
		}
		defer func() {
			if err := ts.locker.Unlock(); err != nil {
				ts.logger.Error("failed to release lock", "err", err)
			}
		}()
		if err := ts.load(); err != nil {
			return err
		}
	}

	undo, err := apply()
	if err != nil {
		return err
	}
	if err := ts.save(); err != nil {
		undo()
		return err
	}
	return nil
}

func (ts *TaskStore) load() error {
	tasks, err := ts.backend.Load()
	if err != nil {
		if !errors.Is(err, storage.ErrCorruptStore) {
			return fmt.Errorf("failed to load tasks: %w", err)
		}
		ts.logger.Warn("Error loading tasks file. Starting with empty task list.", "err", err)
		ts.loadErr = err
		ts.tasks = []models.Task{}
		return nil
	}

	ts.loadErr = nil
	ts.tasks = tasks
	ts.logger.Debug("loaded tasks", "count", len(tasks))
	return nil
}

func (ts *TaskStore) save() error {
	if err := ts.backend.Save(ts.tasks); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	ts.logger.Debug("saved tasks", "count", len(ts.tasks))
	return nil
}

func (ts *TaskStore) indexOf(id int) int {
	for i, t := range ts.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
