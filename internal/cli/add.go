package cli

import (
	"context"
	"strings"

	"github.com/calvinalkan/tasks/internal/prompt"
	"github.com/calvinalkan/tasks/internal/task"

	flag "github.com/spf13/pflag"
)

// AddCmd returns the add command.
func AddCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("add", flag.ContinueOnError),
		Usage: "add <description>",
		Short: "Add a task, prompts for details",
		Long: `Add a new task. Prompts for tags (comma separated), a due date
(1-4 shortcut, alias or YYYY-MM-DD) and a priority (1-3).
Prints the new task ID on success.`,
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execAdd(ctx, io, a, args)
		},
	}
}

func execAdd(ctx context.Context, io *IO, a *app, args []string) error {
	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		return task.ErrDescriptionRequired
	}

	session := prompt.Open(a.in, a.rawOut)
	defer func() { _ = session.Close() }()

	// Prompt before locking so other commands are not held up by typing.
	draft, err := task.AskDetails(description, ctxPrompter{ctx: ctx, p: session}, a.resolver(), a.now())
	if err != nil {
		return err
	}

	var added task.Task

	err = a.withStore(io, func(store *task.Store) (bool, error) {
		added = store.Append(draft)

		return true, nil
	})
	if err != nil {
		return err
	}

	io.Println("Added", added.ID)

	return nil
}
