package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tiwariParth/go-task-tracker/internal/export"
	"github.com/tiwariParth/go-task-tracker/internal/models"
	"github.com/tiwariParth/go-task-tracker/internal/storage"
	"github.com/tiwariParth/go-task-tracker/internal/task"
	"github.com/tiwariParth/go-task-tracker/internal/ui"
)

// DefaultPriority is used by add when no priority is given.
const DefaultPriority = "medium"

const loadWarning = "Error loading tasks file. Starting with empty task list."

// Backupper writes a copy of the task collection and returns where it went.
type Backupper interface {
	Backup(tasks []models.Task) (string, error)
}

// CLI represents the command-line interface.
type CLI struct {
	Store   *task.TaskStore
	backup  Backupper
	in      io.Reader
	out     io.Writer
	noColor bool
	printer *Printer
	browse  func(ctx context.Context, tasks []models.Task) error
}

// Option configures a CLI.
type Option func(*CLI)

// WithOutput sets where messages and listings are written.
func WithOutput(w io.Writer) Option {
	return func(c *CLI) {
		c.out = w
	}
}

// WithInput sets the reader used by the interactive shell.
func WithInput(r io.Reader) Option {
	return func(c *CLI) {
		c.in = r
	}
}

// WithBackupper enables the backup command.
func WithBackupper(b Backupper) Option {
	return func(c *CLI) {
		c.backup = b
	}
}

// WithNoColor disables colored output.
func WithNoColor(noColor bool) Option {
	return func(c *CLI) {
		c.noColor = noColor
	}
}

// NewCLI initializes a new CLI.
func NewCLI(store *task.TaskStore, opts ...Option) *CLI {
	c := &CLI{
		Store: store,
		in:    os.Stdin,
		out:   os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.printer = NewPrinter(c.out, c.noColor)
	if store.LoadWarning() != nil {
		c.printer.Error(loadWarning)
	}
	if c.browse == nil {
		c.browse = func(ctx context.Context, tasks []models.Task) error {
			return ui.Browse(ctx, tasks)
		}
	}
	return c
}

// Run executes the CLI based on the provided arguments. With no arguments it
// starts the interactive shell.
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return c.Shell()
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "add":
		return c.runAdd(rest)
	case "list", "ls":
		return c.runList(rest)
	case "update":
		return c.runUpdate(rest)
	case "stats":
		c.printer.Summary(c.Store.Summary())
		return nil
	case "export":
		return c.runExport(rest)
	case "backup":
		return c.runBackup()
	case "browse":
		return c.browse(ctx, c.Store.Tasks())
	case "shell":
		return c.Shell()
	case "help", "-h", "--help":
		c.Usage()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// AddTask adds a task and prints the acknowledgment.
func (c *CLI) AddTask(title, description, dueDate, priority string) error {
	t, err := c.Store.AddTask(title, description, dueDate, priority)
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}
	c.printer.Success("Task added successfully! (ID: %d)", t.ID)
	return nil
}

// ListTasks prints the tasks, optionally filtered by status.
func (c *CLI) ListTasks(status models.TaskStatus) {
	if c.Store.Len() == 0 {
		c.printer.Warning("No tasks found.")
		return
	}
	c.printer.Tasks(c.Store.List(status))
}

// UpdateTaskStatus updates a task's status and prints the outcome. A missing
// task is reported, not returned as an error.
func (c *CLI) UpdateTaskStatus(id int, status models.TaskStatus) error {
	_, err := c.Store.UpdateStatus(id, status)
	switch {
	case errors.Is(err, storage.ErrTaskNotFound):
		c.printer.Warning("Task not found! (ID: %d)", id)
		return nil
	case err != nil:
		return fmt.Errorf("failed to update task: %w", err)
	}
	c.printer.Success("Task status updated successfully!")
	return nil
}

func (c *CLI) runAdd(args []string) error {
	fs := c.flagSet("add")
	title := fs.String("title", "", "task title")
	description := fs.String("description", "", "task description")
	due := fs.String("due", "", "due date (YYYY-MM-DD)")
	priority := fs.String("priority", DefaultPriority, "priority (low, medium, high)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *title == "" {
		*title = strings.Join(fs.Args(), " ")
	}
	if strings.TrimSpace(*title) == "" {
		return errors.New("missing task title")
	}
	return c.AddTask(*title, *description, *due, *priority)
}

func (c *CLI) runList(args []string) error {
	fs := c.flagSet("list")
	status := fs.String("status", "", "only show tasks with this status")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *status == "" && fs.NArg() > 0 {
		*status = fs.Arg(0)
	}
	c.ListTasks(models.TaskStatus(*status))
	return nil
}

func (c *CLI) runUpdate(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: update <id> <status>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid task ID: %w", err)
	}
	status := strings.Join(args[1:], " ")
	return c.UpdateTaskStatus(id, models.TaskStatus(status))
}

func (c *CLI) runExport(args []string) error {
	fs := c.flagSet("export")
	format := fs.String("format", export.FormatJSON, "output format: "+strings.Join(export.Formats, ", "))
	out := fs.String("out", "", "write to this file instead of standard output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := export.Export(c.Store.Tasks(), *format)
	if err != nil {
		return err
	}
	if *out == "" {
		_, err := c.out.Write(data)
		return err
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	c.printer.Success("Exported %d tasks to %s", c.Store.Len(), *out)
	return nil
}

func (c *CLI) runBackup() error {
	if c.backup == nil {
		return errors.New("backup is not available for this store")
	}
	path, err := c.backup.Backup(c.Store.Tasks())
	if err != nil {
		return fmt.Errorf("failed to back up tasks: %w", err)
	}
	c.printer.Success("Backup written to %s", path)
	return nil
}

func (c *CLI) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.out)
	return fs
}

// Usage prints the command summary.
func (c *CLI) Usage() {
	fmt.Fprint(c.out, `Usage: todo [flags] <command> [args]

Commands:
  add [-title T] [-description D] [-due YYYY-MM-DD] [-priority P] [title...]
  list [-status S] [S]          list tasks, optionally only those with status S
  update <id> <status>          set the status of a task
  stats                         show task statistics
  export [-format F] [-out P]   export tasks as json, csv, yaml, toml or pdf
  backup                        write a timestamped copy of the tasks file
  browse                        interactive task browser
  shell                         interactive shell (default with no command)
  help                          show this help
`)
}
