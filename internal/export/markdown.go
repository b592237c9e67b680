// Package export renders the task collection into shareable documents.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/task"
)

// ErrNoTasks signals that the collection was empty and no file was
// written. It is a no-op condition, not a failure.
var ErrNoTasks = errors.New("no tasks to export")

// filename returns the timestamped export file name; repeated exports
// never collide because the timestamp is embedded.
func filename(now time.Time, ext string) string {
	return fmt.Sprintf("todo_export_%s.%s", now.Format("20060102_150405"), ext)
}

// Markdown writes the collection as a markdown checklist into dir and
// returns the path written. Pending tasks come first, completed tasks
// after, each section preserving the collection's current order.
func Markdown(tasks []task.Task, dir string, now time.Time) (string, error) {
	if len(tasks) == 0 {
		return "", ErrNoTasks
	}

	var b strings.Builder
	b.WriteString("# Todo List\n\n")
	fmt.Fprintf(&b, "Exported on : %s\n\n", now.Format(task.TimeLayout))

	b.WriteString("## Pending Tasks\n\n")
	for _, t := range tasks {
		if !t.Done {
			writeItem(&b, t, "- [ ] ")
		}
	}

	b.WriteString("\n## Completed Tasks\n\n")
	for _, t := range tasks {
		if t.Done {
			writeItem(&b, t, "- [x] ")
		}
	}

	path := filepath.Join(dir, filename(now, "md"))
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}

func writeItem(b *strings.Builder, t task.Task, checkbox string) {
	b.WriteString(checkbox)
	if t.Priority.Valid() {
		fmt.Fprintf(b, "[!%s] ", t.Priority)
	}
	b.WriteString(t.Name)
	b.WriteByte('\n')
}
