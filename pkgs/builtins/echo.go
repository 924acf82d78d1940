package builtins

import (
	"fmt"
	"strings"
)

// Echo implements the echo builtin.
type Echo struct{}

func (e *Echo) Name() string { return "echo" }

func (e *Echo) Synopsis() string { return "echo [args...]  write arguments to standard output" }

func (e *Echo) Run(ctx *Context) int {
	fmt.Fprintln(ctx.Stdout, strings.Join(ctx.Argv[1:], " "))
	return 0
}

func init() { Register(&Echo{}) }
