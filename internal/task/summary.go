package task

import (
	"time"

	"github.com/tiwariParth/go-task-tracker/internal/models"
)

// Summary holds task statistics.
type Summary struct {
	Total      int
	ByStatus   map[models.TaskStatus]int
	ByPriority map[string]int
	Overdue    int
}

// Summarize counts tasks by status and priority. Overdue counts tasks whose
// due date has passed as of now and that are not completed.
func Summarize(tasks []models.Task, now time.Time) Summary {
	s := Summary{
		ByStatus:   make(map[models.TaskStatus]int),
		ByPriority: make(map[string]int),
	}
	for _, t := range tasks {
		s.Total++
		s.ByStatus[t.Status]++
		s.ByPriority[t.Priority]++
		if t.IsOverdue(now) {
			s.Overdue++
		}
	}
	return s
}

// CompletionRate returns the percentage of completed tasks.
func (s Summary) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.ByStatus[models.StatusCompleted]) / float64(s.Total) * 100
}
