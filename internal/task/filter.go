package task

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Views supported by the presentation layer.
const (
	ViewTag = "tag"
	ViewDue = "due"
)

// Filter is a set of independently optional selection criteria.
// Empty slices and strings mean the criterion is absent.
type Filter struct {
	Tags        []string // match any
	Statuses    []string // canonical status names
	Due         string   // date or alias token
	Priorities  []string // canonical priority names
	Description string   // case-sensitive substring
	View        string   // ViewTag or ViewDue
}

// IsEmpty reports whether no criterion and no view is set. An empty filter
// selects everything in storage order and is rendered as a flat dump.
func (f Filter) IsEmpty() bool {
	return len(f.Tags) == 0 &&
		len(f.Statuses) == 0 &&
		f.Due == "" &&
		len(f.Priorities) == 0 &&
		f.Description == "" &&
		f.View == ""
}

// Matches reports whether t satisfies every present criterion of f.
// Due tokens are resolved against now.
func Matches(t Task, f Filter, r Resolver, now time.Time) bool {
	if len(f.Tags) > 0 && !slices.ContainsFunc(f.Tags, t.HasTag) {
		return false
	}

	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, t.Status.String()) {
		return false
	}

	if len(f.Priorities) > 0 && !slices.Contains(f.Priorities, t.Priority.String()) {
		return false
	}

	if f.Due != "" && !r.Resolve(f.Due, now).Equal(t.Due) {
		return false
	}

	if f.Description != "" && !strings.Contains(t.Description, f.Description) {
		return false
	}

	return true
}

// Select returns the tasks matching f, keeping their input order.
func Select(tasks []Task, f Filter, r Resolver, now time.Time) []Task {
	if f.IsEmpty() {
		return tasks
	}

	selected := make([]Task, 0, len(tasks))

	for _, t := range tasks {
		if Matches(t, f, r, now) {
			selected = append(selected, t)
		}
	}

	return selected
}

// CanonicalStatuses validates names and returns their canonical forms.
func CanonicalStatuses(names []string) ([]string, error) {
	out := make([]string, 0, len(names))

	for _, name := range names {
		s, err := ParseStatus(name)
		if err != nil {
			return nil, err
		}

		out = append(out, s.String())
	}

	return out, nil
}

// CanonicalPriorities validates names and returns their canonical forms.
func CanonicalPriorities(names []string) ([]string, error) {
	out := make([]string, 0, len(names))

	for _, name := range names {
		p, err := ParsePriority(name)
		if err != nil {
			return nil, err
		}

		out = append(out, p.String())
	}

	return out, nil
}

// ValidateView accepts an empty view or one of ViewTag and ViewDue.
func ValidateView(view string) error {
	switch view {
	case "", ViewTag, ViewDue:
		return nil
	}

	return fmt.Errorf("%w: %q (want %s|%s)", ErrInvalidView, view, ViewTag, ViewDue)
}
