package task

import (
	"strings"
	"time"
)

// Due date aliases accepted by Resolve.
const (
	AliasToday    = "today"
	AliasTomorrow = "tomorrow"
	AliasThisWeek = "thisweek"
	AliasSometime = "sometime"
)

// DefaultSometime is the far-future date "sometime" resolves to.
var DefaultSometime = Date(2023, time.December, 31)

// shortcuts maps the numeric choices offered by the add prompt to aliases.
var shortcuts = map[string]string{
	"1": AliasToday,
	"2": AliasTomorrow,
	"3": AliasThisWeek,
	"4": AliasSometime,
}

// Resolver turns due date tokens into calendar dates.
//
// Resolution never fails: anything that is neither an alias nor a valid
// YYYY-MM-DD date resolves to the Sometime sentinel.
type Resolver struct {
	Sometime time.Time
}

// NewResolver returns a Resolver using sometime as its sentinel. A zero
// sometime selects DefaultSometime.
func NewResolver(sometime time.Time) Resolver {
	if sometime.IsZero() {
		sometime = DefaultSometime
	}

	return Resolver{Sometime: DateOf(sometime)}
}

func (r Resolver) sentinel() time.Time {
	if r.Sometime.IsZero() {
		return DefaultSometime
	}

	return r.Sometime
}

// Resolve maps token to a date relative to ref.
// "thisweek" is a fixed seven day offset, not the end of the week.
func (r Resolver) Resolve(token string, ref time.Time) time.Time {
	day := DateOf(ref)

	switch strings.TrimSpace(token) {
	case AliasToday:
		return day
	case AliasTomorrow:
		return day.AddDate(0, 0, 1)
	case AliasThisWeek:
		return day.AddDate(0, 0, 7)
	case AliasSometime:
		return r.sentinel()
	}

	parsed, err := ParseDate(strings.TrimSpace(token))
	if err != nil {
		return r.sentinel()
	}

	return parsed
}

// ResolveShortcut accepts the add prompt's numeric shortcuts 1-4 in addition
// to everything Resolve accepts.
func (r Resolver) ResolveShortcut(input string, ref time.Time) time.Time {
	if alias, ok := shortcuts[strings.TrimSpace(input)]; ok {
		return r.Resolve(alias, ref)
	}

	return r.Resolve(input, ref)
}
