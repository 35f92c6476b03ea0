// Package prompt asks the user for lines of input during interactive
// commands.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/calvinalkan/tasks/internal/task"
)

// Session is a task.Prompter that must be closed after use.
type Session interface {
	task.Prompter
	Close() error
}

// Open returns a line-editing Terminal when in and out are both terminals,
// and a plain Reader otherwise.
func Open(in io.Reader, out io.Writer) Session {
	inFile, inOK := in.(*os.File)
	outFile, outOK := out.(*os.File)

	if inOK && outOK && IsTerminal(inFile.Fd()) && IsTerminal(outFile.Fd()) {
		return NewTerminal(out)
	}

	return NewReader(in, out)
}

// Reader prompts on out and reads answers line by line from in.
type Reader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewReader returns a Reader. A nil in behaves like an empty input.
func NewReader(in io.Reader, out io.Writer) *Reader {
	if in == nil {
		in = strings.NewReader("")
	}

	return &Reader{in: bufio.NewReader(in), out: out}
}

// Prompt prints prompt and hint on their own lines and returns the next
// input line without surrounding whitespace. Running out of input before
// any text is read returns task.ErrPromptAborted.
func (r *Reader) Prompt(prompt, hint string) (string, error) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = fmt.Fprintln(r.out, prompt)

	if hint != "" {
		_, _ = fmt.Fprintln(r.out, hint)
	}

	line, err := r.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading input: %w", err)
		}

		if line == "" {
			return "", task.ErrPromptAborted
		}
	}

	return strings.TrimSpace(line), nil
}

// Close implements Session.
func (r *Reader) Close() error {
	return nil
}
