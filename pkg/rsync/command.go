// Package rsync assembles rsync invocations for configured directory
// pairs. Commands are built as argument vectors and handed to
// os/exec directly; no shell sits between fpsync and rsync.
package rsync

import "strings"

// Direction selects which side of a pair is the source. Sync mode is
// not a builder concept: the orchestrator decomposes it into an Up
// pass and a Down pass, both without deletions.
type Direction int

const (
	// Up copies local changes to the remote side
	Up Direction = iota
	// Down copies remote changes to the local side
	Down
)

// String returns the direction name
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Command is one ready-to-spawn rsync invocation
type Command struct {
	program string
	args    []string
}

// Program returns the executable to spawn
func (c Command) Program() string {
	return c.program
}

// Args returns the arguments, excluding the program itself
func (c Command) Args() []string {
	return append([]string(nil), c.args...)
}

// String renders the invocation the way it would read in a shell.
// Multi-target remote arguments carry their own quoting, so a plain
// join reproduces the familiar command line. Display only.
func (c Command) String() string {
	parts := make([]string, 0, len(c.args)+1)
	parts = append(parts, c.program)
	for _, arg := range c.args {
		parts = append(parts, displayQuote(arg))
	}
	return strings.Join(parts, " ")
}

// displayQuote wraps args containing whitespace in single quotes,
// unless they already carry quoting of their own.
func displayQuote(arg string) string {
	if strings.ContainsAny(arg, " \t") && !strings.Contains(arg, "'") {
		return "'" + arg + "'"
	}
	return arg
}
