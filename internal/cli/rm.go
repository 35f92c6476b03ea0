package cli

import (
	"context"

	"github.com/calvinalkan/tasks/internal/task"

	flag "github.com/spf13/pflag"
)

// RmCmd returns the rm command.
func RmCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("rm", flag.ContinueOnError),
		Usage: "rm <id>",
		Short: "Remove a task",
		Long:  "Remove a task by its ID. Removing an unknown ID does nothing.",
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execRm(io, a, args)
		},
	}
}

func execRm(io *IO, a *app, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	removed := false

	err = a.withStore(io, func(store *task.Store) (bool, error) {
		removed = store.Remove(id)

		return removed, nil
	})
	if err != nil {
		return err
	}

	if removed {
		io.Println("Removed", id)
	} else {
		io.Println("No task", id)
	}

	return nil
}
