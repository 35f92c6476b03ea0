//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package prompt

// IsTerminal reports false; prompts fall back to plain line reading.
func IsTerminal(uintptr) bool {
	return false
}
