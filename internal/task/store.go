package task

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Prompt texts used by AskDetails.
const (
	promptTags      = "Tags"
	promptDue       = "Due"
	promptCustomDue = "Due Date (YYYY-MM-DD)"
	promptPriority  = "Priority"

	hintDue      = "1. Today, 2. Tomorrow, 3. This Week, 4. Sometime\nOtherwise, press enter for a custom date YYYY-MM-DD"
	hintPriority = "1. Low, 2. Medium, 3. High"
)

// Prompter requests a line of text from the user. hint may be empty.
type Prompter interface {
	Prompt(prompt, hint string) (string, error)
}

// Store is the in-memory task collection. It is owned by a single command
// for the lifetime of the process and is not safe for concurrent use.
type Store struct {
	tasks []Task
}

// NewStore returns a store holding tasks in the given order.
func NewStore(tasks ...Task) *Store {
	return &Store{tasks: slices.Clone(tasks)}
}

// Tasks returns a copy of the collection in storage order.
func (s *Store) Tasks() []Task {
	return slices.Clone(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// MaxID returns the highest id in the store, or 0 when it is empty.
func (s *Store) MaxID() int {
	maxID := 0

	for _, t := range s.tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}

	return maxID
}

// Get returns the task with the given id.
func (s *Store) Get(id int) (Task, error) {
	idx := s.index(id)
	if idx < 0 {
		return Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}

	return s.tasks[idx], nil
}

// Draft holds the answers for a new task before it is given an id.
type Draft struct {
	Description string
	Tags        []string
	Due         time.Time
	Priority    Priority
}

// AskDetails asks p for the tags, due date and priority of a task described
// by description. It does not touch any store, so callers can prompt before
// taking the data file lock.
func AskDetails(description string, p Prompter, r Resolver, now time.Time) (Draft, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Draft{}, ErrDescriptionRequired
	}

	tagsInput, err := p.Prompt(promptTags, "")
	if err != nil {
		return Draft{}, fmt.Errorf("reading tags: %w", err)
	}

	due, err := promptDueDate(p, r, now)
	if err != nil {
		return Draft{}, err
	}

	priorityInput, err := p.Prompt(promptPriority, hintPriority)
	if err != nil {
		return Draft{}, fmt.Errorf("reading priority: %w", err)
	}

	return Draft{
		Description: description,
		Tags:        SplitTags(tagsInput),
		Due:         due,
		Priority:    priorityFromInput(priorityInput),
	}, nil
}

// Append stores d as a Todo task with id MaxID()+1 and returns it.
func (s *Store) Append(d Draft) Task {
	t := Task{
		ID:          s.MaxID() + 1,
		Description: d.Description,
		Tags:        slices.Clone(d.Tags),
		Due:         d.Due,
		Priority:    d.Priority,
		Status:      StatusTodo,
	}

	s.tasks = append(s.tasks, t)

	return t
}

// Add is AskDetails followed by Append.
func (s *Store) Add(description string, p Prompter, r Resolver, now time.Time) (Task, error) {
	d, err := AskDetails(description, p, r, now)
	if err != nil {
		return Task{}, err
	}

	return s.Append(d), nil
}

func promptDueDate(p Prompter, r Resolver, now time.Time) (time.Time, error) {
	input, err := p.Prompt(promptDue, hintDue)
	if err != nil {
		return time.Time{}, fmt.Errorf("reading due date: %w", err)
	}

	input = strings.TrimSpace(input)
	if input == "" {
		input, err = p.Prompt(promptCustomDue, "")
		if err != nil {
			return time.Time{}, fmt.Errorf("reading due date: %w", err)
		}
	}

	return r.ResolveShortcut(input, now), nil
}

// priorityFromInput maps 1-3 or a priority name; anything else is Low.
func priorityFromInput(input string) Priority {
	input = strings.TrimSpace(input)

	switch input {
	case "1":
		return PriorityLow
	case "2":
		return PriorityMedium
	case "3":
		return PriorityHigh
	}

	p, err := ParsePriority(input)
	if err != nil {
		return PriorityLow
	}

	return p
}

// Remove deletes the task with the given id. Removing a missing id is not an
// error; the result reports whether anything was deleted.
func (s *Store) Remove(id int) bool {
	before := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t Task) bool { return t.ID == id })

	return len(s.tasks) != before
}

// AdjustStatus moves the task to status and returns the updated task.
//
// Hold and Done cancel themselves: requesting them for a task already in
// that status puts it back to Todo. Todo and Blocked are plain assignments.
func (s *Store) AdjustStatus(id int, status Status) (Task, error) {
	idx := s.index(id)
	if idx < 0 {
		return Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}

	t := &s.tasks[idx]

	switch {
	case t.Status == StatusHold && status == StatusHold:
		t.Status = StatusTodo
	case t.Status == StatusDone && status == StatusDone:
		t.Status = StatusTodo
	default:
		t.Status = status
	}

	return *t, nil
}

func (s *Store) index(id int) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}
