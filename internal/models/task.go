package models

import (
	"time"
)

// Layouts used for the textual date fields of a task.
const (
	CreatedAtLayout = "2006-01-02 15:04:05"
	DueDateLayout   = "2006-01-02"
)

// TaskStatus is the workflow state of a task. Any string is accepted; the
// constants below are the conventional values.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// KnownStatuses lists the conventional statuses in workflow order.
var KnownStatuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}

// IsKnownStatus reports whether s is one of the conventional statuses.
func IsKnownStatus(s TaskStatus) bool {
	for _, known := range KnownStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Task represents a single to-do record.
type Task struct {
	ID          int        `json:"id" yaml:"id" toml:"id"`
	Title       string     `json:"title" yaml:"title" toml:"title"`
	Description string     `json:"description" yaml:"description" toml:"description"`
	DueDate     string     `json:"due_date" yaml:"due_date" toml:"due_date"`
	Priority    string     `json:"priority" yaml:"priority" toml:"priority"`
	Status      TaskStatus `json:"status" yaml:"status" toml:"status"`
	CreatedAt   string     `json:"created_at" yaml:"created_at" toml:"created_at"`
}

// NewTask creates a pending task stamped with now. The ID is left to the store.
func NewTask(title, description, dueDate, priority string, now time.Time) Task {
	return Task{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Priority:    priority,
		Status:      StatusPending,
		CreatedAt:   now.Format(CreatedAtLayout),
	}
}

// Due parses the due date in loc. ok is false when the stored text is not a
// YYYY-MM-DD date.
func (t Task) Due(loc *time.Location) (due time.Time, ok bool) {
	due, err := time.ParseInLocation(DueDateLayout, t.DueDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}

// IsOverdue checks if the task is past its due date and not completed.
// A task due today is not overdue.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Status == StatusCompleted {
		return false
	}
	due, ok := t.Due(now.Location())
	if !ok {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return due.Before(today)
}
