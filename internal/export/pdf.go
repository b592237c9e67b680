package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/taskdeck/taskdeck/internal/task"
)

// PDF writes the collection as a PDF checklist into dir and returns the
// path written. Same contract as Markdown: an empty collection is
// ErrNoTasks and nothing is written.
func PDF(tasks []task.Task, dir string, now time.Time) (string, error) {
	if len(tasks) == 0 {
		return "", ErrNoTasks
	}

	data, err := buildPDF(tasks, now)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, filename(now, "pdf"))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}

func buildPDF(tasks []task.Task, now time.Time) ([]byte, error) {
	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()

	p.SetFont("Arial", "B", 16)
	p.Cell(40, 10, "Todo List")
	p.Ln(14)

	p.SetFont("Arial", "", 10)
	p.Cell(40, 8, fmt.Sprintf("Exported on : %s", now.Format(task.TimeLayout)))
	p.Ln(12)

	writeSection(p, "Pending Tasks", tasks, false)
	writeSection(p, "Completed Tasks", tasks, true)

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSection(p *gofpdf.Fpdf, title string, tasks []task.Task, done bool) {
	p.SetFont("Arial", "B", 12)
	p.Cell(40, 10, title)
	p.Ln(10)

	p.SetFont("Arial", "", 11)
	for _, t := range tasks {
		if t.Done != done {
			continue
		}
		box := "[ ]"
		if t.Done {
			box = "[x]"
		}
		p.Cell(40, 8, fmt.Sprintf("%s [!%s] %s", box, t.Priority, t.Name))
		p.Ln(8)
	}
	p.Ln(4)
}
