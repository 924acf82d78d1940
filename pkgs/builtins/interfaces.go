// Package builtins implements the shell's built-in commands behind a
// name-to-handler registry. Each builtin lives in its own file and
// registers itself at init time.
package builtins

import (
	"fmt"
	"io"
	"sort"

	"github.com/aledsdavies/mash/pkgs/job"
)

// Builtin is the contract every built-in command implements.
type Builtin interface {
	// Name is the command name the dispatcher matches on.
	Name() string

	// Synopsis is the one-line usage text shown by help.
	Synopsis() string

	// Run executes the builtin and returns its exit status: 0 on
	// success, 1 on failure.
	Run(ctx *Context) int
}

// Context carries everything a builtin may touch during one invocation.
type Context struct {
	Argv   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Jobs   *job.Table
	State  *State

	// InShell is true when the handler runs directly in the shell
	// process rather than in a forked child.
	InShell bool
}

var registry = make(map[string]Builtin)

// Register adds a builtin to the dispatch table. Called from init.
func Register(b Builtin) {
	if _, dup := registry[b.Name()]; dup {
		panic(fmt.Sprintf("builtins: duplicate registration of %q", b.Name()))
	}
	registry[b.Name()] = b
}

// Lookup returns the builtin registered under name.
func Lookup(name string) (Builtin, bool) {
	b, ok := registry[name]
	return b, ok
}

// IsBuiltin reports whether name is a built-in command.
func IsBuiltin(name string) bool {
	_, ok := registry[name]
	return ok
}

// Names returns every registered builtin name in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
