package app

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tiwariParth/go-task-tracker/internal/cli"
	"github.com/tiwariParth/go-task-tracker/internal/config"
	"github.com/tiwariParth/go-task-tracker/internal/logging"
	"github.com/tiwariParth/go-task-tracker/internal/storage/file"
	"github.com/tiwariParth/go-task-tracker/internal/task"
)

// TodoApp wires the configured file store, task store and CLI together.
type TodoApp struct {
	Config *config.Config
	Logger *log.Logger
	Store  *task.TaskStore
	CLI    *cli.CLI
}

// NewTodoApp builds the application from cfg. Messages go to stdout, logs to
// stderr, and the interactive shell reads stdin.
func NewTodoApp(cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) (*TodoApp, error) {
	logger := logging.NewFromConfig(stderr, cfg.LogLevel, cfg.LogFormat)

	fileStore, err := file.NewFileStore(cfg.Filename)
	if err != nil {
		return nil, err
	}

	opts := []task.Option{task.WithLogger(logger)}
	if cfg.Lock {
		opts = append(opts, task.WithLocker(fileStore))
	}
	store, err := task.NewTaskStore(fileStore, opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened task store", "path", fileStore.Path(), "tasks", store.Len(), "lock", cfg.Lock)

	c := cli.NewCLI(store,
		cli.WithInput(stdin),
		cli.WithOutput(stdout),
		cli.WithNoColor(cfg.NoColor),
		cli.WithBackupper(fileStore),
	)

	return &TodoApp{
		Config: cfg,
		Logger: logger,
		Store:  store,
		CLI:    c,
	}, nil
}

// Run executes a single command line.
func (app *TodoApp) Run(ctx context.Context, args []string) error {
	return app.CLI.Run(ctx, args)
}
