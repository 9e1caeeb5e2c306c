package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/tiwariParth/go-task-tracker/internal/models"
	"github.com/tiwariParth/go-task-tracker/internal/task"
)

const separatorWidth = 50

// Printer renders user-facing messages and task listings.
type Printer struct {
	out     io.Writer
	success *color.Color
	warning *color.Color
	failure *color.Color
	header  *color.Color
	title   *color.Color
	bold    *color.Color
	status  map[models.TaskStatus]*color.Color
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer, noColor bool) *Printer {
	p := &Printer{
		out:     out,
		success: color.New(color.FgGreen),
		warning: color.New(color.FgYellow),
		failure: color.New(color.FgRed),
		header:  color.New(color.FgCyan),
		title:   color.New(color.FgBlue),
		bold:    color.New(color.Bold),
		status: map[models.TaskStatus]*color.Color{
			models.StatusPending:    color.New(color.FgRed),
			models.StatusInProgress: color.New(color.FgYellow),
			models.StatusCompleted:  color.New(color.FgGreen),
		},
	}
	if noColor {
		for _, c := range p.colors() {
			c.DisableColor()
		}
	}
	return p
}

func (p *Printer) colors() []*color.Color {
	cs := []*color.Color{p.success, p.warning, p.failure, p.header, p.title, p.bold}
	for _, c := range p.status {
		cs = append(cs, c)
	}
	return cs
}

// Success prints a green confirmation line.
func (p *Printer) Success(format string, args ...any) {
	p.success.Fprintln(p.out, fmt.Sprintf(format, args...))
}

// Warning prints a yellow line for non-fatal outcomes.
func (p *Printer) Warning(format string, args ...any) {
	p.warning.Fprintln(p.out, fmt.Sprintf(format, args...))
}

// Error prints a red line.
func (p *Printer) Error(format string, args ...any) {
	p.failure.Fprintln(p.out, fmt.Sprintf(format, args...))
}

// Plain prints an uncolored line.
func (p *Printer) Plain(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Status colors s by its conventional meaning. Unconventional statuses are
// printed as-is.
func (p *Printer) Status(s models.TaskStatus) string {
	if c, ok := p.status[s]; ok {
		return c.Sprint(string(s))
	}
	return string(s)
}

// Tasks prints the listing header followed by each task. An empty slice
// prints only the header.
func (p *Printer) Tasks(tasks []models.Task) {
	fmt.Fprintln(p.out)
	p.header.Fprintln(p.out, "=== Tasks ===")
	for _, t := range tasks {
		p.Task(t)
	}
}

// Task prints a single task block.
func (p *Printer) Task(t models.Task) {
	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "ID: %d\n", t.ID)
	fmt.Fprintf(p.out, "Title: %s\n", p.title.Sprint(t.Title))
	fmt.Fprintf(p.out, "Description: %s\n", t.Description)
	fmt.Fprintf(p.out, "Due Date: %s\n", t.DueDate)
	fmt.Fprintf(p.out, "Priority: %s\n", t.Priority)
	fmt.Fprintf(p.out, "Status: %s\n", p.Status(t.Status))
	fmt.Fprintf(p.out, "Created: %s\n", t.CreatedAt)
	fmt.Fprintln(p.out, strings.Repeat("-", separatorWidth))
}

// Summary prints task statistics.
func (p *Printer) Summary(s task.Summary) {
	fmt.Fprintln(p.out)
	p.header.Fprintln(p.out, "=== Summary ===")
	fmt.Fprintf(p.out, "Total: %s\n", p.bold.Sprint(s.Total))

	fmt.Fprintln(p.out, "By status:")
	for _, status := range statusOrder(s.ByStatus) {
		fmt.Fprintf(p.out, "  %s: %d\n", p.Status(status), s.ByStatus[status])
	}

	fmt.Fprintln(p.out, "By priority:")
	for _, priority := range sortedKeys(s.ByPriority) {
		label := priority
		if label == "" {
			label = "(none)"
		}
		fmt.Fprintf(p.out, "  %s: %d\n", label, s.ByPriority[priority])
	}

	fmt.Fprintf(p.out, "Overdue: %d\n", s.Overdue)
	fmt.Fprintf(p.out, "Completion: %.0f%%\n", s.CompletionRate())
}

// statusOrder lists the conventional statuses first, then the others
// alphabetically.
func statusOrder(counts map[models.TaskStatus]int) []models.TaskStatus {
	order := make([]models.TaskStatus, 0, len(counts))
	for _, s := range models.KnownStatuses {
		if counts[s] > 0 {
			order = append(order, s)
		}
	}
	var other []models.TaskStatus
	for s := range counts {
		if !models.IsKnownStatus(s) {
			other = append(other, s)
		}
	}
	sort.Slice(other, func(i, j int) bool { return other[i] < other[j] })
	return append(order, other...)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
