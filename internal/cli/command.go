package cli

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command is one tasks subcommand: its flags, help text and handler.
type Command struct {
	// Flags are parsed from the arguments after the command name.
	Flags *flag.FlagSet

	// Usage starts with the command name, followed by its arguments,
	// e.g. "do <id>" or "ls [flags]".
	Usage string

	// Short is shown next to the command in the main usage listing.
	Short string

	// Long replaces Short in "tasks <command> --help" when set.
	Long string

	// Exec receives the positional arguments left after flag parsing.
	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name is the first word of Usage.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// HelpLine is the command's row in the main usage listing.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-22s %s", c.Usage, c.Short)
}

// PrintHelp writes usage, description and flag defaults to stdout.
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: tasks", c.Usage)
	o.Println()
	o.Println(cmp.Or(c.Long, c.Short))

	if c.Flags == nil || !c.Flags.HasFlags() {
		return
	}

	o.Println()
	o.Println("Flags:")
	o.Printf("%s", c.Flags.FlagUsages())
}

// Run parses args into the command's flags and calls Exec.
// Errors go to stderr and turn into exit code 1; --help exits 0.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	// pflag would print its own usage on errors.
	c.Flags.SetOutput(&strings.Builder{})

	parseErr := c.Flags.Parse(args)

	switch {
	case errors.Is(parseErr, flag.ErrHelp):
		c.PrintHelp(o)

		return 0
	case parseErr != nil:
		o.ErrPrintln("error:", parseErr)
		o.ErrPrintln()
		c.PrintHelp(o)

		return 1
	}

	execErr := c.Exec(ctx, o, c.Flags.Args())
	if execErr != nil {
		o.ErrPrintln("error:", execErr)

		return 1
	}

	return 0
}
