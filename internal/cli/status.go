package cli

import (
	"context"

	"github.com/calvinalkan/tasks/internal/task"

	flag "github.com/spf13/pflag"
)

// DoCmd returns the do command.
func DoCmd(a *app) *Command {
	return statusCmd(a, "do", task.StatusDone, "Mark task done (again to reopen)",
		"Set the task status to Done. Running it on a task that is already Done puts it back to Todo.")
}

// HoldCmd returns the hold command.
func HoldCmd(a *app) *Command {
	return statusCmd(a, "hold", task.StatusHold, "Put task on hold (again to resume)",
		"Set the task status to Hold. Running it on a task that is already on Hold puts it back to Todo.")
}

// BlockCmd returns the block command.
func BlockCmd(a *app) *Command {
	return statusCmd(a, "block", task.StatusBlocked, "Mark task blocked",
		"Set the task status to Blocked.")
}

// TodoCmd returns the todo command.
func TodoCmd(a *app) *Command {
	return statusCmd(a, "todo", task.StatusTodo, "Reset task to todo",
		"Set the task status back to Todo.")
}

func statusCmd(a *app, name string, status task.Status, short, long string) *Command {
	return &Command{
		Flags: flag.NewFlagSet(name, flag.ContinueOnError),
		Usage: name + " <id>",
		Short: short,
		Long:  long,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execStatus(io, a, status, args)
		},
	}
}

func execStatus(io *IO, a *app, status task.Status, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	var updated task.Task

	err = a.withStore(io, func(store *task.Store) (bool, error) {
		var adjustErr error

		updated, adjustErr = store.AdjustStatus(id, status)
		if adjustErr != nil {
			return false, adjustErr
		}

		return true, nil
	})
	if err != nil {
		return err
	}

	io.Printf("%d -> %s\n", updated.ID, updated.Status)

	return nil
}
