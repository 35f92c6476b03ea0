package cli

import (
	"context"
	"fmt"

	"github.com/calvinalkan/tasks/internal/task"
	"github.com/calvinalkan/tasks/internal/view"

	flag "github.com/spf13/pflag"
)

// LsCmd returns the ls command.
func LsCmd(a *app) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.StringSlice("tag", nil, "Filter by tag, matches any (repeatable, comma separated)")
	fs.StringSlice("status", nil, "Filter by status (todo|hold|done|blocked)")
	fs.StringSlice("priority", nil, "Filter by priority (low|medium|high)")
	fs.String("due", "", "Filter by due date (today|tomorrow|thisweek|sometime|YYYY-MM-DD)")
	fs.String("desc", "", "Filter by description substring (case-sensitive)")
	fs.String("view", "", "Group by tag or due (other values are rejected)")

	return &Command{
		Flags: fs,
		Usage: "ls [flags]",
		Short: "List tasks",
		Long: `List tasks. Without flags every task is printed on one line in storage order.
With filters, matching tasks are grouped by primary tag, or by due date with --view=due.
--view only accepts tag or due; any other value is an error rather than a
silent fallback to tag.`,
		Exec: func(_ context.Context, io *IO, _ []string) error {
			return execLs(io, a, fs)
		},
	}
}

func execLs(io *IO, a *app, fs *flag.FlagSet) error {
	filter, err := filterFromFlags(fs, a.cfg.DefaultView)
	if err != nil {
		return err
	}

	var selected []task.Task

	err = a.withStore(io, func(store *task.Store) (bool, error) {
		selected = task.Select(store.Tasks(), filter, a.resolver(), a.now())

		return false, nil
	})
	if err != nil {
		return err
	}

	view.New(io, a.colorMode()).Render(selected, filter)

	return nil
}

func filterFromFlags(fs *flag.FlagSet, defaultView string) (task.Filter, error) {
	for _, name := range []string{"tag", "status", "priority", "due", "desc", "view"} {
		if !fs.Changed(name) {
			continue
		}

		if fs.Lookup(name).Value.String() == "" || fs.Lookup(name).Value.String() == "[]" {
			return task.Filter{}, fmt.Errorf("%w: --%s", errEmptyValue, name)
		}
	}

	tags, _ := fs.GetStringSlice("tag")
	statusNames, _ := fs.GetStringSlice("status")
	priorityNames, _ := fs.GetStringSlice("priority")
	due, _ := fs.GetString("due")
	description, _ := fs.GetString("desc")
	viewName, _ := fs.GetString("view")

	statuses, err := task.CanonicalStatuses(statusNames)
	if err != nil {
		return task.Filter{}, err
	}

	priorities, err := task.CanonicalPriorities(priorityNames)
	if err != nil {
		return task.Filter{}, err
	}

	err = task.ValidateView(viewName)
	if err != nil {
		return task.Filter{}, err
	}

	filter := task.Filter{
		Tags:        tags,
		Statuses:    statuses,
		Due:         due,
		Priorities:  priorities,
		Description: description,
		View:        viewName,
	}

	if filter.View == "" && !filter.IsEmpty() {
		filter.View = defaultView
	}

	return filter, nil
}
