package task

import (
	"fmt"
	"sort"
)

// Store owns the authoritative in-memory task collection. It is not safe
// for concurrent use; the tool is single-process and single-threaded.
type Store struct {
	tasks  []Task
	nextID int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// Add creates a task with a fresh id, appends it, and re-sorts.
func (s *Store) Add(name string, priority Priority) (Task, error) {
	if !priority.Valid() {
		return Task{}, fmt.Errorf("%w: %q (choose from: high, medium, low)", ErrInvalidPriority, priority)
	}
	t := Task{
		ID:        s.nextID,
		Name:      name,
		Priority:  priority,
		CreatedAt: Now(),
	}
	s.nextID++
	s.tasks = append(s.tasks, t)
	s.sort()
	return t, nil
}

// Delete removes the task with the given id and returns it. The whole
// collection is scanned before absence is reported, so ErrTaskNotFound is
// returned exactly once per call. Deleting never changes another task's
// sort key, so no re-sort happens.
func (s *Store) Delete(id int) (Task, error) {
	i := s.find(id)
	if i < 0 {
		return Task{}, fmt.Errorf("task %d: %w", id, ErrTaskNotFound)
	}
	deleted := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return deleted, nil
}

// Update applies the non-empty arguments to the task with the given id
// and re-sorts. The priority is validated before anything is touched, so
// a failed update leaves the task wholly unchanged, name included.
func (s *Store) Update(id int, name string, priority Priority) (Task, error) {
	if priority != "" && !priority.Valid() {
		return Task{}, fmt.Errorf("%w: %q (choose from: high, medium, low)", ErrInvalidPriority, priority)
	}
	i := s.find(id)
	if i < 0 {
		return Task{}, fmt.Errorf("task %d: %w", id, ErrTaskNotFound)
	}
	if name != "" {
		s.tasks[i].Name = name
	}
	if priority != "" {
		s.tasks[i].Priority = priority
	}
	updated := s.tasks[i]
	s.sort()
	return updated, nil
}

// ToggleDone flips the completion state of the task with the given id and
// re-sorts.
func (s *Store) ToggleDone(id int) (Task, error) {
	i := s.find(id)
	if i < 0 {
		return Task{}, fmt.Errorf("task %d: %w", id, ErrTaskNotFound)
	}
	s.tasks[i].Done = !s.tasks[i].Done
	toggled := s.tasks[i]
	s.sort()
	return toggled, nil
}

// Get returns the task with the given id.
func (s *Store) Get(id int) (Task, error) {
	i := s.find(id)
	if i < 0 {
		return Task{}, fmt.Errorf("task %d: %w", id, ErrTaskNotFound)
	}
	return s.tasks[i], nil
}

// List returns a copy of the collection in its current order.
func (s *Store) List() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks in the store.
func (s *Store) Len() int { return len(s.tasks) }

// Replace swaps in a loaded collection wholesale, sorts it, and reseeds
// the id counter past the highest id seen. Ids are never reused within a
// store, even after deletions.
func (s *Store) Replace(tasks []Task) {
	s.tasks = make([]Task, len(tasks))
	copy(s.tasks, tasks)
	s.nextID = 1
	for _, t := range s.tasks {
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	s.sort()
}

func (s *Store) find(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// sort orders pending before completed, then by priority rank. The sort
// is stable: tasks with an equal key keep their prior relative order.
func (s *Store) sort() {
	sort.SliceStable(s.tasks, func(i, j int) bool {
		a, b := s.tasks[i], s.tasks[j]
		if a.Done != b.Done {
			return !a.Done
		}
		return a.Priority.Rank() < b.Priority.Rank()
	})
}
