// Package cmd implements the CLI command structure for taskdeck.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/export"
	"github.com/taskdeck/taskdeck/internal/logging"
	"github.com/taskdeck/taskdeck/internal/shell"
	"github.com/taskdeck/taskdeck/internal/storage"
	"github.com/taskdeck/taskdeck/internal/task"
	"github.com/taskdeck/taskdeck/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskdeck CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskdeck", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(os.Stdout)
	}

	// Determine the subcommand; with no args the interactive menu runs.
	subcommand := "menu"
	remaining := fs.Args()
	if len(remaining) > 0 && !strings.HasPrefix(remaining[0], "-") {
		subcommand = remaining[0]
		remaining = remaining[1:]
	}

	switch subcommand {
	case "menu":
		return menuCommand(ctx, cfg)
	case "list":
		return listCommand(cfg, os.Stdout)
	case "export":
		return exportCommand(cfg, remaining, os.Stdout)
	case "tui":
		return ui.Run(ctx, cfg)
	case "doctor":
		return doctorCommand(cfg, os.Stdout)
	case "config":
		fmt.Fprint(os.Stdout, config.ExampleConfig())
		return nil
	case "version", "--version", "-v":
		return versionCommand(os.Stdout)
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		// An existing file as the first argument is used as the tasks file.
		if fi, err := os.Stat(subcommand); err == nil && !fi.IsDir() {
			cfg.TasksFile = subcommand
			return menuCommand(ctx, cfg)
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// menuCommand runs the interactive menu session.
func menuCommand(ctx context.Context, cfg *config.Config) error {
	files, err := storage.New(cfg.TasksFile)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg)
	sh := shell.New(files, os.Stdin, os.Stdout, logger, shell.Options{
		ExportDir:    cfg.ExportDir,
		ExportFormat: cfg.ExportFormat,
		NoColor:      cfg.NoColor,
	})
	return sh.Run(ctx)
}

// listCommand prints the collection once, in store order.
func listCommand(cfg *config.Config, w io.Writer) error {
	tasks, err := loadTasks(cfg)
	if err != nil {
		return err
	}
	shell.WriteList(w, tasks, cfg.NoColor)
	return nil
}

// exportCommand writes an export document without entering the menu.
func exportCommand(cfg *config.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("taskdeck export", flag.ContinueOnError)
	format := fs.String("format", cfg.ExportFormat, "Export format (markdown|pdf)")
	dir := fs.String("dir", cfg.ExportDir, "Output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tasks, err := loadTasks(cfg)
	if err != nil {
		return err
	}

	now := time.Now()
	var path string
	switch *format {
	case "markdown", "md":
		path, err = export.Markdown(tasks, *dir, now)
	case "pdf":
		path, err = export.PDF(tasks, *dir, now)
	default:
		return fmt.Errorf("unknown export format: %s", *format)
	}
	if errors.Is(err, export.ErrNoTasks) {
		fmt.Fprintln(w, "No tasks to export.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Tasks exported to %s\n", path)
	return nil
}

// doctorCommand reports configuration and tasks-file health.
func doctorCommand(cfg *config.Config, w io.Writer) error {
	fmt.Fprintln(w, "taskdeck doctor")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Tasks file:    %s\n", cfg.TasksFile)
	fmt.Fprintf(w, "Export dir:    %s\n", cfg.ExportDir)
	fmt.Fprintf(w, "Export format: %s\n", cfg.ExportFormat)
	fmt.Fprintln(w)

	files, err := storage.New(cfg.TasksFile)
	if err != nil {
		return err
	}
	tasks, err := files.Load()
	if err != nil {
		var corrupt *storage.CorruptDataError
		if errors.As(err, &corrupt) {
			fmt.Fprintf(w, "Tasks file check: CORRUPT (%v)\n", corrupt.Err)
			fmt.Fprintln(w, "The file is left untouched; fix it by hand or save over it from the menu.")
			return nil
		}
		return err
	}
	if tasks == nil {
		fmt.Fprintln(w, "Tasks file check: not present (created on first save)")
		return nil
	}

	pending := 0
	for _, t := range tasks {
		if !t.Done {
			pending++
		}
	}
	fmt.Fprintf(w, "Tasks file check: OK (%d tasks, %d pending)\n", len(tasks), pending)
	return nil
}

func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "taskdeck %s\n", Version)
	return nil
}

// loadTasks loads the tasks file into a store and returns the canonical
// ordering. Read-only commands surface corruption as a hard failure.
func loadTasks(cfg *config.Config) ([]task.Task, error) {
	files, err := storage.New(cfg.TasksFile)
	if err != nil {
		return nil, err
	}
	tasks, err := files.Load()
	if err != nil {
		return nil, err
	}
	store := task.NewStore()
	store.Replace(tasks)
	return store.List(), nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Usage: taskdeck [flags] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  menu      Run the interactive menu (default)")
	fmt.Fprintln(w, "  list      Print the task list once")
	fmt.Fprintln(w, "  export    Write an export document (-format, -dir)")
	fmt.Fprintln(w, "  tui       Live terminal dashboard")
	fmt.Fprintln(w, "  doctor    Check configuration and tasks-file health")
	fmt.Fprintln(w, "  config    Print an example configuration file")
	fmt.Fprintln(w, "  version   Show version")
	fmt.Fprintln(w, "  help      Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A file path as the first argument is used as the tasks file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
