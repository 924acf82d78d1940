package builtins

import (
	"fmt"
	"os"
	osexec "os/exec"

	"golang.org/x/sys/unix"
)

// Exec implements the exec builtin: strip the leading "exec" and
// dispatch the remainder. A builtin remainder runs in place; an external
// remainder replaces the current process image.
type Exec struct{}

func (e *Exec) Name() string { return "exec" }

func (e *Exec) Synopsis() string { return "exec cmd [...]  replace the shell with cmd" }

func (e *Exec) Run(ctx *Context) int {
	args := ctx.Argv[1:]
	if len(args) == 0 {
		return 0
	}

	if b, ok := Lookup(args[0]); ok {
		sub := *ctx
		sub.Argv = args
		return b.Run(&sub)
	}

	path, err := osexec.LookPath(args[0])
	if err != nil {
		fmt.Fprintf(ctx.Stderr, "exec: %s: command not found\n", args[0])
		return 1
	}
	if err := unix.Exec(path, args, os.Environ()); err != nil {
		fmt.Fprintf(ctx.Stderr, "exec: %s: %v\n", args[0], err)
	}
	return 1
}

func init() { Register(&Exec{}) }
