package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/task"
)

var priorityStyles = map[task.Priority]lipgloss.Style{
	task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
}

// PriorityStyle returns the display style for a priority. Rendering is
// display policy; the store never sees it.
func PriorityStyle(p task.Priority) lipgloss.Style {
	if style, ok := priorityStyles[p]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// WriteList renders the collection as an aligned table in its current
// order. With noColor set the priority column is plain text.
func WriteList(w io.Writer, tasks []task.Task, noColor bool) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}

	divider := strings.Repeat("=", 64)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Your To-Do List:")
	fmt.Fprintln(w, divider)
	fmt.Fprintf(w, "%-5s %-7s %-32s %s\n", "ID", "STATUS", "NAME", "PRIORITY")
	fmt.Fprintln(w, strings.Repeat("-", 64))

	for _, t := range tasks {
		status := "[ ]"
		if t.Done {
			status = "[x]"
		}
		priority := string(t.Priority)
		if !noColor {
			priority = PriorityStyle(t.Priority).Render(priority)
		}
		fmt.Fprintf(w, "%-5d %-7s %-32s %s\n", t.ID, status, t.Name, priority)
	}
	fmt.Fprintln(w, divider)
}
