// Package task holds the task tracker domain: the Task record, the status
// and priority enums, date alias resolution, filtering, the in-memory store
// and its CSV file adapter.
package task

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date layout used for storage and input.
const DateLayout = "2006-01-02"

// UntaggedGroup names the group for tasks without any tag.
const UntaggedGroup = "untagged"

// Status is the lifecycle state of a task. Statuses are not ordered.
type Status int

// Status values.
const (
	StatusTodo Status = iota
	StatusHold
	StatusDone
	StatusBlocked
)

var statusNames = [...]string{
	StatusTodo:    "Todo",
	StatusHold:    "Hold",
	StatusDone:    "Done",
	StatusBlocked: "Blocked",
}

// String returns the canonical name used for storage, rendering and filtering.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}

	return statusNames[s]
}

// ParseStatus parses a status name case-insensitively.
func ParseStatus(name string) (Status, error) {
	for i, n := range statusNames {
		if strings.EqualFold(n, name) {
			return Status(i), nil
		}
	}

	return StatusTodo, fmt.Errorf("%w: %q", ErrInvalidStatus, name)
}

// Priority orders tasks: Low < Medium < High.
type Priority int

// Priority values.
const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

var priorityNames = [...]string{
	PriorityLow:    "Low",
	PriorityMedium: "Medium",
	PriorityHigh:   "High",
}

// String returns the canonical name used for storage, rendering and filtering.
func (p Priority) String() string {
	if p < 0 || int(p) >= len(priorityNames) {
		return fmt.Sprintf("Priority(%d)", int(p))
	}

	return priorityNames[p]
}

// ParsePriority parses a priority name case-insensitively.
func ParsePriority(name string) (Priority, error) {
	for i, n := range priorityNames {
		if strings.EqualFold(n, name) {
			return Priority(i), nil
		}
	}

	return PriorityLow, fmt.Errorf("%w: %q", ErrInvalidPriority, name)
}

// Task is a single tracked item.
type Task struct {
	ID          int
	Description string
	// Tags are ordered; the first one is the primary tag.
	Tags     []string
	Due      time.Time
	Priority Priority
	Status   Status
}

// PrimaryTag returns the first tag, or UntaggedGroup when there are none.
func (t Task) PrimaryTag() string {
	if len(t.Tags) == 0 {
		return UntaggedGroup
	}

	return t.Tags[0]
}

// HasTag reports whether tag is one of the task's tags.
func (t Task) HasTag(tag string) bool {
	for _, own := range t.Tags {
		if own == tag {
			return true
		}
	}

	return false
}

// Date returns the calendar date y-m-d as a UTC midnight time.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf drops the clock part of t, keeping the calendar date in t's location.
func DateOf(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// ParseDate strictly parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return d, nil
}

// SplitTags splits comma separated input into trimmed, non-empty tags.
func SplitTags(input string) []string {
	var tags []string

	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			tags = append(tags, part)
		}
	}

	return tags
}
