package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tiwariParth/go-task-tracker/internal/models"
	"github.com/tiwariParth/go-task-tracker/internal/storage"
	"github.com/tiwariParth/go-task-tracker/internal/storage/memory"
	"github.com/tiwariParth/go-task-tracker/internal/task"
)

type fakeBackupper struct {
	got []models.Task
	err error
}

func (b *fakeBackupper) Backup(tasks []models.Task) (string, error) {
	b.got = tasks
	return "tasks.json.backup.test", b.err
}

func newTestCLI(t *testing.T, input string, seed ...models.Task) (*CLI, *bytes.Buffer) {
	t.Helper()
	store, err := task.NewTaskStore(memory.NewMemoryStore(seed...))
	if err != nil {
		t.Fatalf("NewTaskStore failed: %v", err)
	}
	var out bytes.Buffer
	c := NewCLI(store, WithOutput(&out), WithInput(strings.NewReader(input)), WithNoColor(true))
	return c, &out
}

func run(t *testing.T, c *CLI, args ...string) {
	t.Helper()
	if err := c.Run(context.Background(), args); err != nil {
		t.Fatalf("Run(%v) failed: %v", args, err)
	}
}

func TestAddCommand(t *testing.T) {
	c, out := newTestCLI(t, "")

	run(t, c, "add", "-description", "quarterly", "-due", "2024-01-15", "-priority", "high", "Complete", "Project", "Report")
	if !strings.Contains(out.String(), "Task added successfully! (ID: 1)") {
		t.Errorf("missing acknowledgment: %q", out.String())
	}

	got := c.Store.Tasks()[0]
	if got.Title != "Complete Project Report" || got.Description != "quarterly" || got.DueDate != "2024-01-15" || got.Priority != "high" {
		t.Errorf("unexpected task: %+v", got)
	}

	run(t, c, "add", "-title", "Second")
	if p := c.Store.Tasks()[1].Priority; p != DefaultPriority {
		t.Errorf("default priority: got %q, want %q", p, DefaultPriority)
	}
}

func TestAddCommandRequiresTitle(t *testing.T) {
	c, _ := newTestCLI(t, "")
	if err := c.Run(context.Background(), []string{"add", "-due", "2024-01-15"}); err == nil {
		t.Error("want error for missing title")
	}
	if c.Store.Len() != 0 {
		t.Error("task added without title")
	}
}

func TestListEmptyStore(t *testing.T) {
	c, out := newTestCLI(t, "")

	run(t, c, "list")
	if !strings.Contains(out.String(), "No tasks found.") {
		t.Errorf("want no-tasks message, got %q", out.String())
	}
	if strings.Contains(out.String(), "=== Tasks ===") {
		t.Error("empty store should not print the header")
	}
}

func TestListCommand(t *testing.T) {
	c, out := newTestCLI(t, "",
		models.Task{ID: 1, Title: "one", Description: "first", DueDate: "2024-01-15", Priority: "high", Status: models.StatusPending, CreatedAt: "2024-01-10 09:00:00"},
		models.Task{ID: 2, Title: "two", Status: models.StatusInProgress, CreatedAt: "2024-01-11 09:00:00"},
	)

	run(t, c, "list")
	want := `
=== Tasks ===

ID: 1
Title: one
Description: first
Due Date: 2024-01-15
Priority: high
Status: pending
Created: 2024-01-10 09:00:00
--------------------------------------------------
`
	if !strings.HasPrefix(out.String(), want) {
		t.Errorf("listing:\n%s\nwant prefix:\n%s", out.String(), want)
	}
	if !strings.Contains(out.String(), "ID: 2") {
		t.Error("second task missing")
	}
}

func TestListFilterNoMatch(t *testing.T) {
	c, out := newTestCLI(t, "", models.Task{ID: 1, Title: "one", Status: models.StatusPending})

	run(t, c, "list", "-status", "completed")
	if !strings.Contains(out.String(), "=== Tasks ===") {
		t.Error("header missing for filtered listing")
	}
	if strings.Contains(out.String(), "ID:") || strings.Contains(out.String(), "No tasks found.") {
		t.Errorf("want header only, got %q", out.String())
	}
}

func TestListPositionalFilter(t *testing.T) {
	c, out := newTestCLI(t, "",
		models.Task{ID: 1, Title: "one", Status: models.StatusPending},
		models.Task{ID: 2, Title: "two", Status: models.StatusInProgress},
	)

	run(t, c, "list", "in-progress")
	if strings.Contains(out.String(), "ID: 1") || !strings.Contains(out.String(), "ID: 2") {
		t.Errorf("filter not applied: %q", out.String())
	}
}

func TestUpdateCommand(t *testing.T) {
	c, out := newTestCLI(t, "", models.Task{ID: 1, Title: "one", Status: models.StatusPending})

	run(t, c, "update", "1", "in-progress")
	if !strings.Contains(out.String(), "Task status updated successfully!") {
		t.Errorf("missing acknowledgment: %q", out.String())
	}
	if got := c.Store.Tasks()[0].Status; got != models.StatusInProgress {
		t.Errorf("status: got %q", got)
	}

	out.Reset()
	run(t, c, "update", "7", "completed")
	if !strings.Contains(out.String(), "Task not found!") {
		t.Errorf("missing not-found warning: %q", out.String())
	}
}

func TestUpdateCommandErrors(t *testing.T) {
	c, _ := newTestCLI(t, "", models.Task{ID: 1, Title: "one", Status: models.StatusPending})

	for _, args := range [][]string{
		{"update"},
		{"update", "1"},
		{"update", "one", "completed"},
	} {
		if err := c.Run(context.Background(), args); err == nil {
			t.Errorf("Run(%v): want error", args)
		}
	}
}

func TestStatsCommand(t *testing.T) {
	c, out := newTestCLI(t, "",
		models.Task{ID: 1, Priority: "high", Status: models.StatusCompleted},
		models.Task{ID: 2, Priority: "low", Status: "blocked"},
	)

	run(t, c, "stats")
	for _, want := range []string{"Total: 2", "completed: 1", "blocked: 1", "high: 1", "Completion: 50%"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("stats missing %q:\n%s", want, out.String())
		}
	}
}

func TestExportCommand(t *testing.T) {
	c, out := newTestCLI(t, "", models.Task{ID: 1, Title: "one", Status: models.StatusPending})

	run(t, c, "export", "-format", "csv")
	if !strings.HasPrefix(out.String(), "ID,Title,") {
		t.Errorf("csv to stdout: %q", out.String())
	}

	path := filepath.Join(t.TempDir(), "tasks.yaml")
	run(t, c, "export", "-format", "yaml", "-out", path)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "title: one") {
		t.Errorf("yaml export: %q", data)
	}

	if err := c.Run(context.Background(), []string{"export", "-format", "xml"}); err == nil {
		t.Error("want error for unsupported format")
	}
}

func TestBackupCommand(t *testing.T) {
	c, out := newTestCLI(t, "", models.Task{ID: 1, Title: "one"})
	if err := c.Run(context.Background(), []string{"backup"}); err == nil {
		t.Error("want error without a backupper")
	}

	b := &fakeBackupper{}
	c.backup = b
	run(t, c, "backup")
	if len(b.got) != 1 || !strings.Contains(out.String(), "tasks.json.backup.test") {
		t.Errorf("backup not performed: %+v %q", b.got, out.String())
	}

	c.backup = &fakeBackupper{err: errors.New("disk full")}
	if err := c.Run(context.Background(), []string{"backup"}); err == nil {
		t.Error("want backup error")
	}
}

func TestBrowseCommand(t *testing.T) {
	c, _ := newTestCLI(t, "", models.Task{ID: 1, Title: "one"})
	var got []models.Task
	c.browse = func(_ context.Context, tasks []models.Task) error {
		got = tasks
		return nil
	}

	run(t, c, "browse")
	if len(got) != 1 {
		t.Errorf("browse received %d tasks, want 1", len(got))
	}
}

func TestUnknownCommand(t *testing.T) {
	c, _ := newTestCLI(t, "")
	if err := c.Run(context.Background(), []string{"delete", "1"}); err == nil {
		t.Error("want error for unknown command")
	}
}

func TestHelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "")
	run(t, c, "help")
	if !strings.Contains(out.String(), "update <id> <status>") {
		t.Errorf("usage missing commands: %q", out.String())
	}
}

func TestSaveFailureIsReturned(t *testing.T) {
	store, err := task.NewTaskStore(failingBackend{})
	if err != nil {
		t.Fatalf("NewTaskStore failed: %v", err)
	}
	c := NewCLI(store, WithOutput(&bytes.Buffer{}), WithNoColor(true))

	if err := c.Run(context.Background(), []string{"add", "x"}); !errors.Is(err, errDiskFull) {
		t.Errorf("want save error, got %v", err)
	}
}

var errDiskFull = errors.New("disk full")

type failingBackend struct{}

func (failingBackend) Load() ([]models.Task, error) { return []models.Task{}, nil }

func (failingBackend) Save([]models.Task) error { return errDiskFull }

type corruptBackend struct{ failingBackend }

func (corruptBackend) Load() ([]models.Task, error) {
	return nil, fmt.Errorf("%w: unexpected end of JSON input", storage.ErrCorruptStore)
}

func TestCorruptStoreWarning(t *testing.T) {
	store, err := task.NewTaskStore(corruptBackend{})
	if err != nil {
		t.Fatalf("NewTaskStore failed: %v", err)
	}
	var out bytes.Buffer
	NewCLI(store, WithOutput(&out), WithNoColor(true))

	if got := out.String(); got != loadWarning+"\n" {
		t.Errorf("startup output: got %q, want %q", got, loadWarning+"\n")
	}
}
