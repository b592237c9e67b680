package task

import (
	"errors"
	"testing"
)

func ids(tasks []Task) []int {
	out := make([]int, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	s := NewStore()
	for i, name := range []string{"first", "second", "third"} {
		task, err := s.Add(name, PriorityMedium)
		if err != nil {
			t.Fatalf("Add(%q) failed: %v", name, err)
		}
		if task.ID != i+1 {
			t.Errorf("Add(%q) id = %d, want %d", name, task.ID, i+1)
		}
		if task.Done {
			t.Errorf("Add(%q) done = true, want false", name)
		}
	}
}

func TestAddInvalidPriority(t *testing.T) {
	s := NewStore()
	_, err := s.Add("task", Priority("urgent"))
	if !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("Add with bogus priority: err = %v, want ErrInvalidPriority", err)
	}
	if s.Len() != 0 {
		t.Errorf("store length after failed Add = %d, want 0", s.Len())
	}
}

func TestAddAfterDeleteKeepsIDsUnique(t *testing.T) {
	s := NewStore()
	s.Add("a", PriorityMedium)
	s.Add("b", PriorityMedium)
	if _, err := s.Delete(1); err != nil {
		t.Fatalf("Delete(1) failed: %v", err)
	}

	added, err := s.Add("c", PriorityMedium)
	if err != nil {
		t.Fatalf("Add after delete failed: %v", err)
	}
	if added.ID != 3 {
		t.Errorf("id after delete = %d, want 3 (ids must not be reused)", added.ID)
	}

	seen := map[int]bool{}
	for _, task := range s.List() {
		if seen[task.ID] {
			t.Fatalf("duplicate id %d in store", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestSortOrder(t *testing.T) {
	s := NewStore()
	s.Replace([]Task{
		{ID: 1, Name: "done high", Priority: PriorityHigh, Done: true},
		{ID: 2, Name: "pending low", Priority: PriorityLow},
		{ID: 3, Name: "pending high", Priority: PriorityHigh},
		{ID: 4, Name: "done low", Priority: PriorityLow, Done: true},
		{ID: 5, Name: "pending medium", Priority: PriorityMedium},
	})

	got := ids(s.List())
	want := []int{3, 5, 2, 1, 4}
	if !equalIDs(got, want) {
		t.Errorf("sorted order = %v, want %v", got, want)
	}
}

func TestSortStability(t *testing.T) {
	s := NewStore()
	s.Replace([]Task{
		{ID: 1, Name: "first", Priority: PriorityMedium},
		{ID: 2, Name: "second", Priority: PriorityMedium},
		{ID: 3, Name: "third", Priority: PriorityMedium},
	})

	// Equal-key tasks keep their relative order across repeated mutations.
	s.ToggleDone(2)
	s.ToggleDone(2)

	got := ids(s.List())
	want := []int{1, 3, 2}
	if !equalIDs(got, want) {
		t.Errorf("order after double toggle = %v, want %v", got, want)
	}
}

func TestTogglePendingPrecedesDone(t *testing.T) {
	// Completing a high-priority task moves it behind every pending task,
	// regardless of priority.
	s := NewStore()
	s.Replace([]Task{
		{ID: 1, Name: "A", Priority: PriorityHigh},
		{ID: 2, Name: "B", Priority: PriorityLow},
	})

	toggled, err := s.ToggleDone(1)
	if err != nil {
		t.Fatalf("ToggleDone(1) failed: %v", err)
	}
	if !toggled.Done {
		t.Error("ToggleDone(1) done = false, want true")
	}

	got := ids(s.List())
	want := []int{2, 1}
	if !equalIDs(got, want) {
		t.Errorf("order after toggle = %v, want %v", got, want)
	}
}

func TestToggleIsIdempotentPair(t *testing.T) {
	s := NewStore()
	s.Replace([]Task{
		{ID: 1, Name: "A", Priority: PriorityHigh},
		{ID: 2, Name: "B", Priority: PriorityHigh},
		{ID: 3, Name: "C", Priority: PriorityLow},
	})
	before := ids(s.List())

	s.ToggleDone(2)
	s.ToggleDone(2)

	task, err := s.Get(2)
	if err != nil {
		t.Fatalf("Get(2) failed: %v", err)
	}
	if task.Done {
		t.Error("done after double toggle = true, want false")
	}
	if got := ids(s.List()); !equalIDs(got, before) {
		t.Errorf("order after double toggle = %v, want %v", got, before)
	}
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name         string
		id           int
		newName      string
		newPriority  Priority
		wantErr      error
		wantName     string
		wantPriority Priority
	}{
		{
			name:         "rename only",
			id:           1,
			newName:      "renamed",
			wantName:     "renamed",
			wantPriority: PriorityMedium,
		},
		{
			name:         "reprioritize only",
			id:           1,
			newPriority:  PriorityHigh,
			wantName:     "original",
			wantPriority: PriorityHigh,
		},
		{
			name:         "both fields",
			id:           1,
			newName:      "renamed",
			newPriority:  PriorityLow,
			wantName:     "renamed",
			wantPriority: PriorityLow,
		},
		{
			name:         "invalid priority is atomic",
			id:           1,
			newName:      "renamed",
			newPriority:  Priority("bogus"),
			wantErr:      ErrInvalidPriority,
			wantName:     "original",
			wantPriority: PriorityMedium,
		},
		{
			name:    "missing id",
			id:      99,
			newName: "renamed",
			wantErr: ErrTaskNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			s.Replace([]Task{{ID: 1, Name: "original", Priority: PriorityMedium}})

			_, err := s.Update(tt.id, tt.newName, tt.newPriority)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Update err = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Update failed: %v", err)
			}

			task, err := s.Get(1)
			if err != nil {
				t.Fatalf("Get(1) failed: %v", err)
			}
			if tt.wantName != "" && task.Name != tt.wantName {
				t.Errorf("name = %q, want %q", task.Name, tt.wantName)
			}
			if tt.wantPriority != "" && task.Priority != tt.wantPriority {
				t.Errorf("priority = %q, want %q", task.Priority, tt.wantPriority)
			}
		})
	}
}

func TestNotFoundCoverage(t *testing.T) {
	// Absence must be reported exactly once, after the whole collection is
	// scanned, for any collection size.
	for _, size := range []int{0, 1, 5} {
		s := NewStore()
		for i := 0; i < size; i++ {
			s.Add("task", PriorityMedium)
		}

		if _, err := s.Delete(999); !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("Delete(999) with %d tasks: err = %v, want ErrTaskNotFound", size, err)
		}
		if _, err := s.Update(999, "x", ""); !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("Update(999) with %d tasks: err = %v, want ErrTaskNotFound", size, err)
		}
		if _, err := s.ToggleDone(999); !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("ToggleDone(999) with %d tasks: err = %v, want ErrTaskNotFound", size, err)
		}
		if s.Len() != size {
			t.Errorf("store length changed by failed operations: got %d, want %d", s.Len(), size)
		}
	}
}

func TestDeleteReturnsTask(t *testing.T) {
	s := NewStore()
	s.Add("keep", PriorityHigh)
	s.Add("drop", PriorityLow)

	deleted, err := s.Delete(2)
	if err != nil {
		t.Fatalf("Delete(2) failed: %v", err)
	}
	if deleted.Name != "drop" {
		t.Errorf("deleted name = %q, want %q", deleted.Name, "drop")
	}
	if s.Len() != 1 {
		t.Errorf("length after delete = %d, want 1", s.Len())
	}
}

func TestReplaceReseedsIDCounter(t *testing.T) {
	s := NewStore()
	s.Replace([]Task{
		{ID: 4, Name: "loaded", Priority: PriorityLow},
		{ID: 9, Name: "loaded too", Priority: PriorityHigh},
	})

	added, err := s.Add("fresh", PriorityMedium)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if added.ID != 10 {
		t.Errorf("id after Replace = %d, want 10", added.ID)
	}
}

func TestListIsSnapshot(t *testing.T) {
	s := NewStore()
	s.Add("task", PriorityMedium)

	snapshot := s.List()
	snapshot[0].Name = "mutated"

	task, _ := s.Get(1)
	if task.Name != "task" {
		t.Errorf("store mutated through List snapshot: name = %q", task.Name)
	}
}
