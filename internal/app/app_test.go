package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tiwariParth/go-task-tracker/internal/config"
)

func newTestApp(t *testing.T, path string, lock bool) (*TodoApp, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	return newTestAppWithLevel(t, path, lock, "warn")
}

func newTestAppWithLevel(t *testing.T, path string, lock bool, level string) (*TodoApp, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{
		Filename:  path,
		LogLevel:  level,
		LogFormat: "text",
		Lock:      lock,
		NoColor:   true,
	}
	var stdout, stderr bytes.Buffer
	todo, err := NewTodoApp(cfg, strings.NewReader(""), &stdout, &stderr)
	if err != nil {
		t.Fatalf("NewTodoApp failed: %v", err)
	}
	return todo, &stdout, &stderr
}

func TestAppPersistsAcrossRuns(t *testing.T) {
	for _, lock := range []bool{false, true} {
		path := filepath.Join(t.TempDir(), "tasks.json")

		first, out, _ := newTestApp(t, path, lock)
		if err := first.Run(context.Background(), []string{"add", "-due", "2024-01-15", "-priority", "high", "Complete Project Report"}); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if !strings.Contains(out.String(), "Task added successfully! (ID: 1)") {
			t.Errorf("lock=%v: add output %q", lock, out.String())
		}

		second, out, _ := newTestApp(t, path, lock)
		if err := second.Run(context.Background(), []string{"update", "1", "completed"}); err != nil {
			t.Fatalf("update failed: %v", err)
		}

		third, out, _ := newTestApp(t, path, lock)
		if err := third.Run(context.Background(), []string{"list", "completed"}); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		for _, want := range []string{"Title: Complete Project Report", "Status: completed", "Priority: high"} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("lock=%v: listing missing %q:\n%s", lock, want, out.String())
			}
		}
	}
}

func TestAppRecoversFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	todo, out, stderr := newTestApp(t, path, false)
	if !strings.Contains(stderr.String(), "Error loading tasks file") {
		t.Errorf("missing corrupt-file warning: %q", stderr.String())
	}

	if err := todo.Run(context.Background(), []string{"list"}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No tasks found.") {
		t.Errorf("want empty listing, got %q", out.String())
	}

	if err := todo.Run(context.Background(), []string{"add", "fresh"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"title": "fresh"`) {
		t.Errorf("corrupt file not replaced: %s", data)
	}
}

func TestAppCorruptWarningIgnoresLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte(`{"id": 1}`), 0644); err != nil {
		t.Fatal(err)
	}

	todo, out, stderr := newTestAppWithLevel(t, path, false, "error")
	if err := todo.Run(context.Background(), []string{"list"}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if stderr.Len() != 0 {
		t.Errorf("error level should suppress the log line, got %q", stderr.String())
	}
	want := "Error loading tasks file. Starting with empty task list.\nNo tasks found.\n"
	if out.String() != want {
		t.Errorf("stdout: got %q, want %q", out.String(), want)
	}
}

func TestAppBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	todo, out, _ := newTestApp(t, path, false)

	if err := todo.Run(context.Background(), []string{"add", "one"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := todo.Run(context.Background(), []string{"backup"}); err != nil {
		t.Fatalf("backup failed: %v", err)
	}

	matches, err := filepath.Glob(path + ".backup.*")
	if err != nil || len(matches) != 1 {
		t.Fatalf("backup files: %v %v", matches, err)
	}
	if !strings.Contains(out.String(), matches[0]) {
		t.Errorf("backup path not reported: %q", out.String())
	}
}
