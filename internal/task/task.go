// Package task maintains the in-memory task collection and its ordering rules.
package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the format for task creation times, both persisted and displayed.
const TimeLayout = "2006-01-02 15:04:05"

// Priority classifies a task for sort ranking.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// DefaultPriority is used at call sites that allow a fallback.
const DefaultPriority = PriorityMedium

// Sentinel errors reported by Store operations.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidPriority = errors.New("invalid priority")
)

// ParsePriority validates a priority string.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q (choose from: high, medium, low)", ErrInvalidPriority, s)
	}
	return p, nil
}

// Valid reports whether p is one of the three recognized values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank returns the sort rank: high before medium before low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// Timestamp is a time.Time that marshals as "YYYY-MM-DD HH:MM:SS" JSON,
// the form the tasks file uses.
type Timestamp time.Time

// Now returns the current time as a Timestamp, truncated to seconds.
func Now() Timestamp {
	return Timestamp(time.Now().Truncate(time.Second))
}

// Time returns the underlying time.Time.
func (t Timestamp) Time() time.Time { return time.Time(t) }

func (t Timestamp) String() string {
	return time.Time(t).Format(TimeLayout)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("parse created_at: %w", err)
	}
	*t = Timestamp(parsed)
	return nil
}

// Task is one tracked to-do item.
type Task struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Priority  Priority  `json:"priority"`
	Done      bool      `json:"done"`
	CreatedAt Timestamp `json:"created_at"`
}
