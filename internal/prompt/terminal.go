package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/calvinalkan/tasks/internal/task"
)

// Terminal prompts with readline-style editing. Ctrl-C and Ctrl-D abort.
type Terminal struct {
	liner *liner.State
	out   io.Writer
}

// NewTerminal takes over the process terminal until Close is called.
// Hints are written to out above the editable line.
func NewTerminal(out io.Writer) *Terminal {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	return &Terminal{liner: state, out: out}
}

// Prompt implements task.Prompter.
func (t *Terminal) Prompt(prompt, hint string) (string, error) {
	if hint != "" {
		_, _ = fmt.Fprintln(t.out, hint)
	}

	line, err := t.liner.Prompt(prompt + ": ")
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", task.ErrPromptAborted
		}

		return "", fmt.Errorf("reading input: %w", err)
	}

	line = strings.TrimSpace(line)
	if line != "" {
		t.liner.AppendHistory(line)
	}

	return line, nil
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	return t.liner.Close()
}
