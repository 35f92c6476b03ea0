package cli

import (
	"context"
	"fmt"

	"github.com/calvinalkan/tasks/internal/task"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// ShowCmd returns the show command.
func ShowCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("show", flag.ContinueOnError),
		Usage: "show <id>",
		Short: "Show task details",
		Long:  "Display all fields of a task as YAML.",
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execShow(io, a, args)
		},
	}
}

// taskDocument is the YAML shape printed by show.
type taskDocument struct {
	ID          int      `yaml:"id"`
	Description string   `yaml:"description"`
	Status      string   `yaml:"status"`
	Priority    string   `yaml:"priority"`
	Due         string   `yaml:"due"`
	Tags        []string `yaml:"tags,flow"`
}

func execShow(io *IO, a *app, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	var found task.Task

	err = a.withStore(io, func(store *task.Store) (bool, error) {
		var getErr error

		found, getErr = store.Get(id)

		return false, getErr
	})
	if err != nil {
		return err
	}

	tags := found.Tags
	if tags == nil {
		tags = []string{}
	}

	out, err := yaml.Marshal(taskDocument{
		ID:          found.ID,
		Description: found.Description,
		Status:      found.Status.String(),
		Priority:    found.Priority.String(),
		Due:         found.Due.Format(task.DateLayout),
		Tags:        tags,
	})
	if err != nil {
		return fmt.Errorf("encoding task: %w", err)
	}

	io.Printf("%s", out)

	return nil
}
