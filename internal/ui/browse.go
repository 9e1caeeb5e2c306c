// Package ui provides the optional interactive task browser.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tiwariParth/go-task-tracker/internal/models"
	"github.com/tiwariParth/go-task-tracker/internal/storage"
)

// Browse starts the read-only task browser on the terminal.
func Browse(ctx context.Context, tasks []models.Task) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("browse requires a TTY")
	}
	program := tea.NewProgram(newBrowseModel(tasks), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type browseModel struct {
	tasks    []models.Task
	visible  []models.Task
	filter   storage.Filter
	cursor   int
	showHelp bool
}

func newBrowseModel(tasks []models.Task) *browseModel {
	m := &browseModel{tasks: tasks}
	m.applyFilter()
	return m
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "h", "?":
		m.showHelp = !m.showHelp
	case "0":
		m.setFilter("")
	case "1":
		m.setFilter(models.StatusPending)
	case "2":
		m.setFilter(models.StatusInProgress)
	case "3":
		m.setFilter(models.StatusCompleted)
	}
	return m, nil
}

func (m *browseModel) setFilter(status models.TaskStatus) {
	m.filter = storage.NewStatusFilter(status)
	m.applyFilter()
}

func (m *browseModel) applyFilter() {
	m.visible = m.filter.Apply(m.tasks)
	m.cursor = 0
}

func (m *browseModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		return b.String()
	}

	if m.filter.Status != "" {
		b.WriteString(fmt.Sprintf("Filter: %s (0 to clear)\n\n", m.filter.Status))
	}

	switch {
	case len(m.tasks) == 0:
		b.WriteString("  No tasks found.\n\n")
	case len(m.visible) == 0:
		b.WriteString("  No matching tasks.\n\n")
	default:
		for i, t := range m.visible {
			b.WriteString(formatTask(t, i == m.cursor))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		writeDetail(&b, m.visible[m.cursor])
	}

	b.WriteString("Press h for help | q to quit\n")
	return b.String()
}

func writeTitle(b *strings.Builder) {
	title := "Tasks"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  j, down      Next task\n")
	b.WriteString("  k, up        Previous task\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Filter by pending\n")
	b.WriteString("  2            Filter by in-progress\n")
	b.WriteString("  3            Filter by completed\n")
	b.WriteString("  0            Clear filter\n\n")
}

func writeDetail(b *strings.Builder, t models.Task) {
	b.WriteString(fmt.Sprintf("  Description: %s\n", t.Description))
	b.WriteString(fmt.Sprintf("  Due Date:    %s\n", t.DueDate))
	b.WriteString(fmt.Sprintf("  Priority:    %s\n", t.Priority))
	b.WriteString(fmt.Sprintf("  Created:     %s\n\n", t.CreatedAt))
}

func formatTask(t models.Task, selected bool) string {
	cursor := " "
	if selected {
		cursor = ">"
	}

	statusIcon := "?"
	switch t.Status {
	case models.StatusPending:
		statusIcon = " "
	case models.StatusInProgress:
		statusIcon = "~"
	case models.StatusCompleted:
		statusIcon = "x"
	}

	return fmt.Sprintf("%s [%s] %3d  %s (%s)", cursor, statusIcon, t.ID, t.Title, t.Status)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
