// Package ui provides the optional terminal dashboard.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/storage"
	"github.com/taskdeck/taskdeck/internal/task"
)

// Run starts the dashboard over the configured tasks file. The dashboard
// is read-only: it reloads the file periodically and never writes it.
func Run(ctx context.Context, cfg *config.Config) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	files, err := storage.New(cfg.TasksFile)
	if err != nil {
		return err
	}

	model := newModel(files)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}

type model struct {
	files        *storage.FileStore
	loadErr      error
	tasks        []task.Task
	filter       task.Priority
	showHelp     bool
	tickInterval time.Duration
}

type tickMsg time.Time

func newModel(files *storage.FileStore) *model {
	return &model{
		files:        files,
		tickInterval: time.Second,
	}
}

func (m *model) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "h", "?":
			m.showHelp = !m.showHelp
		case "1":
			m.filter = task.PriorityHigh
		case "2":
			m.filter = task.PriorityMedium
		case "3":
			m.filter = task.PriorityLow
		case "0":
			m.filter = ""
		}
		return m, nil
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.filter != "" {
		fmt.Fprintf(&b, "Filter: %s (0 to clear)\n\n", m.filter)
	}

	if m.loadErr != nil {
		b.WriteString("Error loading tasks file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	visible := filterTasks(m.tasks, m.filter)
	writeOverview(&b, visible)
	writeNextTask(&b, visible)
	writeTasks(&b, visible)
	fmt.Fprintf(&b, "Tasks File\n\n  %s\n\n", m.files.Path())
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func (m *model) refresh() {
	tasks, err := m.files.Load()
	if err != nil {
		m.loadErr = err
		m.tasks = nil
		return
	}
	m.loadErr = nil

	// Present the store's canonical ordering.
	store := task.NewStore()
	store.Replace(tasks)
	m.tasks = store.List()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func filterTasks(tasks []task.Task, filter task.Priority) []task.Task {
	if filter == "" {
		return tasks
	}
	var out []task.Task
	for _, t := range tasks {
		if t.Priority == filter {
			out = append(out, t)
		}
	}
	return out
}

func countTasks(tasks []task.Task) (pending, done int) {
	for _, t := range tasks {
		if t.Done {
			done++
		} else {
			pending++
		}
	}
	return pending, done
}

// nextTask returns the first pending task in store order, or nil. The
// store sorts pending-high first, so this is the top of the list.
func nextTask(tasks []task.Task) *task.Task {
	for i := range tasks {
		if !tasks[i].Done {
			return &tasks[i]
		}
	}
	return nil
}

func writeTitle(b *strings.Builder) {
	title := "Taskdeck"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, tasks []task.Task) {
	pending, done := countTasks(tasks)
	b.WriteString("Task Overview\n\n")
	fmt.Fprintf(b, "  Pending: %d  Completed: %d\n\n", pending, done)
}

func writeNextTask(b *strings.Builder, tasks []task.Task) {
	b.WriteString("Next Task\n\n")
	if next := nextTask(tasks); next != nil {
		b.WriteString(formatTask(*next) + "\n\n")
		return
	}
	b.WriteString("  No pending tasks remaining.\n\n")
}

func writeTasks(b *strings.Builder, tasks []task.Task) {
	b.WriteString("Tasks\n\n")
	if len(tasks) == 0 {
		b.WriteString("  No tasks found.\n\n")
		return
	}
	for _, t := range tasks {
		b.WriteString(formatTask(t) + "\n")
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh data\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Filter by high priority\n")
	b.WriteString("  2            Filter by medium priority\n")
	b.WriteString("  3            Filter by low priority\n")
	b.WriteString("  0            Clear filter\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	fmt.Fprintf(b, "Press h for help | q to quit | Refreshing every %s\n", interval)
}

func formatTask(t task.Task) string {
	box := "[ ]"
	if t.Done {
		box = "[x]"
	}
	return fmt.Sprintf("  %s #%d (%s) %s", box, t.ID, t.Priority, t.Name)
}

// IsTTY returns true if the writer is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
