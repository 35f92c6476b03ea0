// Package cli implements the command-line interface for tasks.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/calvinalkan/tasks/internal/prompt"
	"github.com/calvinalkan/tasks/internal/task"

	flag "github.com/spf13/pflag"
)

// app carries what commands share during one invocation.
// cfg is filled in after the global flags and config files are read.
type app struct {
	cfg    task.Config
	in     io.Reader
	rawOut io.Writer
	now    func() time.Time
}

func (a *app) resolver() task.Resolver {
	return task.NewResolver(a.cfg.SometimeDate)
}

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	globalFlags := flag.NewFlagSet("tasks", flag.ContinueOnError)
	globalFlags.SetInterspersed(false)
	globalFlags.SetOutput(&strings.Builder{})
	globalFlags.BoolP("help", "h", false, "Show help")
	globalFlags.StringP("cwd", "C", "", "Run as if started in `dir`")
	globalFlags.StringP("config", "c", "", "Use specified config `file`")
	globalFlags.String("file", "", "Use `path` as the task file")

	a := &app{in: in, rawOut: out, now: time.Now}
	commands := allCommands(a)

	if len(args) < 2 {
		printUsage(out, globalFlags, commands)

		return 0
	}

	err := globalFlags.Parse(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		printUsage(errOut, globalFlags, commands)

		return 1
	}

	showHelp, _ := globalFlags.GetBool("help")
	if showHelp || globalFlags.NArg() == 0 {
		printUsage(out, globalFlags, commands)

		return 0
	}

	workDir, _ := globalFlags.GetString("cwd")
	configPath, _ := globalFlags.GetString("config")
	dataFile, _ := globalFlags.GetString("file")

	cfg, err := task.LoadConfig(task.LoadConfigInput{
		WorkDirOverride:  workDir,
		ConfigPath:       configPath,
		DataFileOverride: dataFile,
		HasDataFile:      globalFlags.Changed("file"),
		Env:              env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		printUsage(errOut, globalFlags, commands)

		return 1
	}

	a.cfg = cfg

	name := globalFlags.Arg(0)

	cmd, ok := findCommand(commands, name)
	if !ok {
		fprintln(errOut, "error: unknown command:", name)
		fprintln(errOut)
		printUsage(errOut, globalFlags, commands)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	o := NewIO(out, errOut)

	exitCode := cmd.Run(ctx, o, globalFlags.Args()[1:])
	if finishCode := o.Finish(); finishCode > exitCode {
		exitCode = finishCode
	}

	return exitCode
}

func allCommands(a *app) []*Command {
	return []*Command{
		AddCmd(a),
		DoCmd(a),
		HoldCmd(a),
		BlockCmd(a),
		TodoCmd(a),
		RmCmd(a),
		ShowCmd(a),
		LsCmd(a),
		PrintConfigCmd(a),
	}
}

func findCommand(commands []*Command, name string) (*Command, bool) {
	for _, cmd := range commands {
		if cmd.Name() == name {
			return cmd, true
		}
	}

	return nil, false
}

// withStore runs fn on the task file under the data file lock.
// fn reports whether it changed the store; only then is the file saved.
// An unreadable task file is reported as a warning and replaced by an empty
// store for this run, and is never overwritten.
func (a *app) withStore(o *IO, fn func(store *task.Store) (bool, error)) error {
	path := a.cfg.DataFileAbs

	return task.WithLock(path, func() error {
		store, loadErr := task.Load(path)
		if loadErr != nil {
			o.Warn(fmt.Sprintf("loading tasks: %v", loadErr), "fix or move the task file; changes from this run are not saved")

			store = task.NewStore()
		}

		changed, err := fn(store)
		if err != nil {
			return err
		}

		if !changed || loadErr != nil {
			return nil
		}

		saveErr := task.Save(path, store)
		if saveErr != nil {
			return fmt.Errorf("save tasks: %w", saveErr)
		}

		return nil
	})
}

// ctxPrompter stops prompting once ctx is cancelled.
type ctxPrompter struct {
	ctx context.Context
	p   task.Prompter
}

func (c ctxPrompter) Prompt(text, hint string) (string, error) {
	if err := c.ctx.Err(); err != nil {
		return "", task.ErrPromptAborted
	}

	answer, err := c.p.Prompt(text, hint)
	if err != nil {
		return "", err
	}

	if c.ctx.Err() != nil {
		return "", task.ErrPromptAborted
	}

	return answer, nil
}

// colorMode turns "auto" into always or never based on the real stdout.
func (a *app) colorMode() string {
	if a.cfg.Color != task.ColorAuto {
		return a.cfg.Color
	}

	if f, ok := a.rawOut.(*os.File); ok && prompt.IsTerminal(f.Fd()) {
		return task.ColorAlways
	}

	return task.ColorNever
}

var (
	errIDRequired = errors.New("task ID is required")
	errInvalidID  = errors.New("invalid id")
	errEmptyValue = errors.New("empty value not allowed")
)

func parseID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errIDRequired
	}

	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s", errInvalidID, args[0])
	}

	return id, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, globalFlags *flag.FlagSet, commands []*Command) {
	fprintln(w, `tasks - personal task tracker

Usage: tasks [global flags] <command> [args]`)
	fprintln(w)
	fprintln(w, "Global flags:")
	fprintln(w, globalFlags.FlagUsages())
	fprintln(w, "Commands:")

	for _, cmd := range commands {
		fprintln(w, cmd.HelpLine())
	}
}
