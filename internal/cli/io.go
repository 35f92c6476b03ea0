package cli

import (
	"fmt"
	"io"
)

// IO is the output side of one command run.
//
// Warnings are problems the command worked around, like an unreadable task
// file. They go to stderr twice: before the first line of regular output and
// again when the run finishes, so they show up whether the output is read
// from the top or tailed. A run that warned exits 1 even if the command
// itself succeeded.
type IO struct {
	out      io.Writer
	errOut   io.Writer
	warnings []string
	wrote    bool
}

// NewIO returns an IO writing regular output to out and errors to errOut.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Warn records problem together with what the user can do about it.
func (o *IO) Warn(problem, remedy string) {
	o.warnings = append(o.warnings, problem+": "+remedy)
}

// Println writes a line to stdout.
func (o *IO) Println(a ...any) {
	o.beforeOutput()
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted text to stdout.
func (o *IO) Printf(format string, a ...any) {
	o.beforeOutput()
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// Write lets renderers stream to stdout through IO.
func (o *IO) Write(p []byte) (int, error) {
	o.beforeOutput()

	return o.out.Write(p)
}

// ErrPrintln writes a line to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Finish repeats the warnings and returns 1 if there were any.
func (o *IO) Finish() int {
	if len(o.warnings) == 0 {
		return 0
	}

	// Nothing was printed, so the leading copy has not been shown yet.
	o.beforeOutput()
	o.printWarnings()

	return 1
}

func (o *IO) beforeOutput() {
	if o.wrote {
		return
	}

	o.wrote = true
	o.printWarnings()
}

func (o *IO) printWarnings() {
	for _, w := range o.warnings {
		_, _ = fmt.Fprintln(o.errOut, "warning:", w)
	}
}
