package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tiwariParth/go-task-tracker/internal/models"
)

// Shell runs an interactive prompt reading commands from the CLI's input
// until "exit" or end of input. Command errors are printed and the loop
// continues; only save failures end the session.
func (c *CLI) Shell() error {
	c.printer.Plain("Welcome to the task tracker! Type %q for commands.", "help")
	reader := bufio.NewReader(c.in)

	for {
		fmt.Fprint(c.out, "> ")
		line, err := readLine(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(c.out)
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "add":
			if err := c.shellAdd(reader); err != nil {
				return err
			}

		case "list", "ls":
			status := strings.Join(fields[1:], " ")
			c.ListTasks(models.TaskStatus(status))

		case "update":
			if len(fields) < 3 {
				c.printer.Error("Usage: update <id> <status>")
				continue
			}
			id, err := strconv.Atoi(fields[1])
			if err != nil {
				c.printer.Error("Invalid input. Please enter a valid task ID.")
				continue
			}
			if err := c.UpdateTaskStatus(id, models.TaskStatus(strings.Join(fields[2:], " "))); err != nil {
				return err
			}

		case "stats":
			c.printer.Summary(c.Store.Summary())

		case "help":
			c.shellHelp()

		case "exit", "quit":
			c.printer.Plain("Goodbye!")
			return nil

		default:
			c.printer.Error("Unknown command. Available commands: add, list, update, stats, help, exit")
		}
	}
}

// shellAdd prompts for each field. Input ending mid-prompt abandons the add
// and the shell loop then sees EOF.
func (c *CLI) shellAdd(reader *bufio.Reader) error {
	title, err := c.prompt(reader, "Enter task title: ")
	if err != nil {
		return nil
	}
	if title == "" {
		c.printer.Error("Task title cannot be empty.")
		return nil
	}
	description, err := c.prompt(reader, "Enter description: ")
	if err != nil {
		return nil
	}
	due, err := c.prompt(reader, "Enter due date (YYYY-MM-DD): ")
	if err != nil {
		return nil
	}
	priority, err := c.prompt(reader, "Enter priority (low/medium/high) ["+DefaultPriority+"]: ")
	if err != nil {
		return nil
	}
	if priority == "" {
		priority = DefaultPriority
	}
	return c.AddTask(title, description, due, priority)
}

// prompt prints label and reads one trimmed line. It returns io.EOF when the
// input ends before a line is read.
func (c *CLI) prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Fprint(c.out, label)
	return readLine(reader)
}

func (c *CLI) shellHelp() {
	fmt.Fprint(c.out, `Commands:
  add                    add a task (prompts for each field)
  list [status]          list tasks, optionally filtered by status
  update <id> <status>   set the status of a task
  stats                  show task statistics
  exit                   leave the shell
`)
}

// readLine reads a line without its trailing newline. A final line without
// a newline is returned normally; io.EOF is only returned when nothing was
// read.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
