// Package shell implements the interactive menu surface.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/taskdeck/taskdeck/internal/export"
	"github.com/taskdeck/taskdeck/internal/storage"
	"github.com/taskdeck/taskdeck/internal/task"
)

// Options configures a Shell.
type Options struct {
	ExportDir    string
	ExportFormat string
	NoColor      bool
}

// Shell runs the numbered menu over a task store. All reads and writes go
// through the injected reader and writer so tests can script a session.
type Shell struct {
	store  *task.Store
	files  *storage.FileStore
	opts   Options
	in     *bufio.Scanner
	out    io.Writer
	logger *log.Logger
	// now is swappable for deterministic export filenames in tests.
	now func() time.Time
}

// New creates a Shell over the given file store.
func New(files *storage.FileStore, in io.Reader, out io.Writer, logger *log.Logger, opts Options) *Shell {
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	return &Shell{
		store:  task.NewStore(),
		files:  files,
		opts:   opts,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
		now:    time.Now,
	}
}

// Run loads the store, serves the menu until Exit or end of input, and
// saves on the way out. A corrupt tasks file starts the session empty
// with a warning; the file is only overwritten when a save happens.
func (s *Shell) Run(ctx context.Context) error {
	tasks, err := s.files.Load()
	if err != nil {
		var corrupt *storage.CorruptDataError
		if !errors.As(err, &corrupt) {
			return err
		}
		s.logger.Warn("tasks file is corrupt, starting with an empty list",
			"path", corrupt.Path, "err", corrupt.Err)
	}
	s.store.Replace(tasks)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, ok := s.menu()
		if !ok {
			// End of input behaves like Exit.
			return s.save()
		}

		switch choice {
		case "1":
			s.addTask()
		case "2":
			s.markTask()
		case "3":
			WriteList(s.out, s.store.List(), s.opts.NoColor)
		case "4":
			s.deleteTask()
		case "5":
			s.updateTask()
		case "6":
			s.exportTasks()
		case "7":
			if err := s.save(); err != nil {
				return err
			}
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid option. Please try again.")
		}
	}
}

func (s *Shell) menu() (string, bool) {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "To-Do List")
	fmt.Fprintln(s.out, "1. Add Task")
	fmt.Fprintln(s.out, "2. Mark Task")
	fmt.Fprintln(s.out, "3. List Tasks")
	fmt.Fprintln(s.out, "4. Delete Task")
	fmt.Fprintln(s.out, "5. Update Task")
	fmt.Fprintln(s.out, "6. Export Tasks")
	fmt.Fprintln(s.out, "7. Exit")
	return s.prompt("Select an option: ")
}

// prompt prints a label and reads one trimmed line. ok is false at end of
// input.
func (s *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// promptID reads a task id. A non-numeric entry prints a message and
// aborts the current operation.
func (s *Shell) promptID(label string) (int, bool) {
	text, ok := s.prompt(label)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(text)
	if err != nil {
		fmt.Fprintln(s.out, "Please enter a valid task number.")
		return 0, false
	}
	return id, true
}

// promptPriority maps 1/2/3 to high/medium/low. Anything else silently
// falls back to the default; that policy lives here, never in the store.
func (s *Shell) promptPriority(label string) task.Priority {
	if p := s.promptOptionalPriority(label); p != "" {
		return p
	}
	return task.DefaultPriority
}

// promptOptionalPriority is like promptPriority but returns "" on any
// unmapped entry, which Update treats as "keep the current priority".
func (s *Shell) promptOptionalPriority(label string) task.Priority {
	text, ok := s.prompt(label)
	if !ok {
		return ""
	}
	switch text {
	case "1":
		return task.PriorityHigh
	case "2":
		return task.PriorityMedium
	case "3":
		return task.PriorityLow
	}
	return ""
}

func (s *Shell) addTask() {
	name, ok := s.prompt("Enter task name: ")
	if !ok {
		return
	}
	if name == "" {
		fmt.Fprintln(s.out, "Task name cannot be empty.")
		return
	}
	priority := s.promptPriority("Enter priority (1: high | 2: medium | 3: low): ")

	t, err := s.store.Add(name, priority)
	if err != nil {
		s.logger.Error("add task", "err", err)
		return
	}
	fmt.Fprintf(s.out, "Task added: %s\n", t.Name)
}

func (s *Shell) markTask() {
	id, ok := s.promptID("Enter task number to mark as done/undone: ")
	if !ok {
		return
	}
	t, err := s.store.ToggleDone(id)
	if err != nil {
		s.report(id, err)
		return
	}
	status := "pending"
	if t.Done {
		status = "completed"
	}
	fmt.Fprintf(s.out, "Marked task %d as %s\n", id, status)
}

func (s *Shell) deleteTask() {
	id, ok := s.promptID("Enter task number to delete: ")
	if !ok {
		return
	}
	t, err := s.store.Delete(id)
	if err != nil {
		s.report(id, err)
		return
	}
	fmt.Fprintf(s.out, "Deleted task: %s\n", t.Name)
}

func (s *Shell) updateTask() {
	id, ok := s.promptID("Enter task number to update: ")
	if !ok {
		return
	}
	name, ok := s.prompt("Enter new name (blank to keep): ")
	if !ok {
		return
	}
	priority := s.promptOptionalPriority("Enter new priority (1: high | 2: medium | 3: low, blank to keep): ")

	if _, err := s.store.Update(id, name, priority); err != nil {
		s.report(id, err)
		return
	}
	fmt.Fprintf(s.out, "Updated task %d\n", id)
}

func (s *Shell) exportTasks() {
	choice, _ := s.prompt("Export format (1: markdown | 2: pdf): ")
	format := s.opts.ExportFormat
	switch choice {
	case "1":
		format = "markdown"
	case "2":
		format = "pdf"
	}

	var (
		path string
		err  error
	)
	tasks := s.store.List()
	if format == "pdf" {
		path, err = export.PDF(tasks, s.opts.ExportDir, s.now())
	} else {
		path, err = export.Markdown(tasks, s.opts.ExportDir, s.now())
	}
	if errors.Is(err, export.ErrNoTasks) {
		fmt.Fprintln(s.out, "No tasks to export.")
		return
	}
	if err != nil {
		s.logger.Error("export tasks", "err", err)
		return
	}
	fmt.Fprintf(s.out, "Tasks exported to %s\n", path)
}

// report presents a store failure without ending the session.
func (s *Shell) report(id int, err error) {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		fmt.Fprintf(s.out, "No task found with ID %d\n", id)
	case errors.Is(err, task.ErrInvalidPriority):
		fmt.Fprintln(s.out, "Invalid priority. Choose from: high, medium, low")
	default:
		s.logger.Error("task operation", "id", id, "err", err)
	}
}

func (s *Shell) save() error {
	if err := s.files.Save(s.store.List()); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	fmt.Fprintf(s.out, "Tasks saved to %s\n", s.files.Path())
	return nil
}
