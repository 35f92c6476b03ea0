// Package view renders task lists for the terminal.
package view

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/calvinalkan/tasks/internal/task"
)

const (
	tagDivider = "---------------"
	dueDivider = "--------------------------------"
)

var glyphs = map[task.Status]string{
	task.StatusTodo:    " ",
	task.StatusHold:    "~",
	task.StatusDone:    "X",
	task.StatusBlocked: "!",
}

var priorityColors = map[task.Priority]lipgloss.Color{
	task.PriorityLow:    lipgloss.Color("12"),  // blue
	task.PriorityMedium: lipgloss.Color("208"), // orange
	task.PriorityHigh:   lipgloss.Color("9"),   // red
}

// Renderer writes task lists to an output stream.
type Renderer struct {
	out   io.Writer
	style *lipgloss.Renderer
}

// New returns a Renderer for out. color is one of task.ColorAuto,
// task.ColorAlways and task.ColorNever; auto colors only terminals.
func New(out io.Writer, color string) *Renderer {
	style := lipgloss.NewRenderer(out)

	switch color {
	case task.ColorAlways:
		style.SetColorProfile(termenv.ANSI256)
	case task.ColorNever:
		style.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{out: out, style: style}
}

// Glyph returns the single character shown between brackets for s.
func Glyph(s task.Status) string {
	if g, ok := glyphs[s]; ok {
		return g
	}

	return "?"
}

// PriorityLabel returns the priority name, colored when the profile allows.
func (r *Renderer) PriorityLabel(p task.Priority) string {
	return r.style.NewStyle().Foreground(priorityColors[p]).Render(p.String())
}

// Render picks the presentation for f: a flat dump for the empty filter,
// otherwise the by-due view when requested and the by-tag view by default.
func (r *Renderer) Render(tasks []task.Task, f task.Filter) {
	switch {
	case f.IsEmpty():
		r.Flat(tasks)
	case f.View == task.ViewDue:
		r.ByDue(tasks)
	default:
		r.ByTag(tasks)
	}
}

// Flat prints one plain line per task in the given order.
func (r *Renderer) Flat(tasks []task.Task) {
	for _, t := range tasks {
		r.println(fmt.Sprintf("%d, %s, %s, %s, %s",
			t.ID, t.Description, t.Status, t.Due.Format(task.DateLayout), strings.Join(t.Tags, ", ")))
	}
}

// ByTag groups tasks under their primary tag, sorted by tag, due date and
// priority.
func (r *Renderer) ByTag(tasks []task.Task) {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b task.Task) int {
		return cmp.Or(
			cmp.Compare(a.PrimaryTag(), b.PrimaryTag()),
			a.Due.Compare(b.Due),
			cmp.Compare(a.Priority, b.Priority),
		)
	})

	first := true
	currentTag := ""

	for _, t := range sorted {
		if first || t.PrimaryTag() != currentTag {
			first = false
			currentTag = t.PrimaryTag()

			r.println("")
			r.println("# " + currentTag)
			r.println(tagDivider)
		}

		r.println(fmt.Sprintf("[%s][%d - %s] %s (%s)",
			Glyph(t.Status), t.ID, r.PriorityLabel(t.Priority), t.Description, t.Due.Format("01-02")))
	}
}

// ByDue groups tasks under their due date, with a tag sub-header whenever
// the primary tag changes. Sorted by due date, tag and priority.
func (r *Renderer) ByDue(tasks []task.Task) {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b task.Task) int {
		return cmp.Or(
			a.Due.Compare(b.Due),
			cmp.Compare(a.PrimaryTag(), b.PrimaryTag()),
			cmp.Compare(a.Priority, b.Priority),
		)
	})

	first := true
	currentTag := ""

	for i, t := range sorted {
		if first || !t.Due.Equal(sorted[i-1].Due) {
			first = false
			currentTag = ""

			r.println("")
			r.println(fmt.Sprintf("Due: %s (%s)", t.Due.Format(task.DateLayout), t.Due.Weekday()))
			r.println(dueDivider)
		}

		if len(t.Tags) > 0 && t.Tags[0] != currentTag {
			currentTag = t.Tags[0]
			r.println("# " + currentTag)
		}

		r.println(fmt.Sprintf("[%s][#%d - %s] %s",
			Glyph(t.Status), t.ID, r.PriorityLabel(t.Priority), t.Description))
	}
}

func (r *Renderer) println(line string) {
	_, _ = fmt.Fprintln(r.out, line)
}
