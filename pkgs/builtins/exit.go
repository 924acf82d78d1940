package builtins

import "os"

// Exit implements the exit builtin. It terminates the running process
// from wherever it is invoked: the shell itself, or a forked child.
type Exit struct{}

func (e *Exit) Name() string { return "exit" }

func (e *Exit) Synopsis() string { return "exit            leave the shell" }

func (e *Exit) Run(ctx *Context) int {
	os.Exit(0)
	return 0
}

func init() { Register(&Exit{}) }
