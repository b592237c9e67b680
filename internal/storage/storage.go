// Package storage persists the task collection as a JSON document on disk.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/taskdeck/taskdeck/internal/task"
)

// documentSchema describes the shape of the persisted tasks document.
// Unknown extra fields on a record are allowed so newer versions can
// extend the format without breaking older readers.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "priority", "done", "created_at"],
    "properties": {
      "id": {"type": "integer", "minimum": 1},
      "name": {"type": "string", "minLength": 1},
      "priority": {"enum": ["high", "medium", "low"]},
      "done": {"type": "boolean"},
      "created_at": {"type": "string"}
    }
  }
}`

// CorruptDataError reports a tasks file that exists but cannot be used.
// The file itself is left untouched; the caller decides whether a later
// save overwrites it.
type CorruptDataError struct {
	Path string
	Err  error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt tasks file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

// FileStore reads and writes the task collection at a fixed path.
type FileStore struct {
	path   string
	schema *jsonschema.Schema
}

// New creates a FileStore for the given path.
func New(path string) (*FileStore, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("tasks.schema.json", strings.NewReader(documentSchema)); err != nil {
		return nil, fmt.Errorf("add tasks schema: %w", err)
	}
	schema, err := compiler.Compile("tasks.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile tasks schema: %w", err)
	}
	return &FileStore{path: path, schema: schema}, nil
}

// Path returns the tasks file path.
func (f *FileStore) Path() string { return f.path }

// Load reads the task collection. A missing file is an empty collection,
// not an error. A file that cannot be parsed or fails schema validation
// yields an empty collection and a *CorruptDataError so the caller can
// surface a warning; the file on disk is not modified.
func (f *FileStore) Load() ([]task.Task, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read tasks file: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &CorruptDataError{Path: f.path, Err: err}
	}
	if err := f.schema.Validate(doc); err != nil {
		return nil, &CorruptDataError{Path: f.path, Err: err}
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, &CorruptDataError{Path: f.path, Err: err}
	}
	return tasks, nil
}

// Save serializes the full collection with 2-space indentation,
// overwriting the file.
func (f *FileStore) Save(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}

	// Add trailing newline
	data = append(data, '\n')

	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}
	return nil
}
