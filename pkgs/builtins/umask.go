package builtins

import (
	"fmt"
	"strconv"
)

// Umask implements the umask builtin: print or set the file-creation
// mask.
type Umask struct{}

func (u *Umask) Name() string { return "umask" }

func (u *Umask) Synopsis() string { return "umask [mode]    print or set the file creation mask" }

func (u *Umask) Run(ctx *Context) int {
	if len(ctx.Argv) < 2 {
		fmt.Fprintf(ctx.Stdout, "%04o\n", ctx.State.Umask())
		return 0
	}

	arg := ctx.Argv[1]
	if len(arg) > 4 {
		fmt.Fprintf(ctx.Stderr, "umask: %s: at most four octal digits\n", arg)
		return 1
	}
	mask, err := strconv.ParseUint(arg, 8, 32)
	if err != nil || mask > 0o777 {
		fmt.Fprintf(ctx.Stderr, "umask: %s: invalid octal number\n", arg)
		return 1
	}

	ctx.State.SetUmask(int(mask))
	return 0
}

func init() { Register(&Umask{}) }
