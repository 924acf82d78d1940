package builtins

import (
	"fmt"
	"os"
)

// Cd implements the cd builtin. Directory changes only stick when the
// handler runs in the shell process; in a forked child they die with the
// child.
type Cd struct{}

func (c *Cd) Name() string { return "cd" }

func (c *Cd) Synopsis() string { return "cd [dir]        change the current directory" }

func (c *Cd) Run(ctx *Context) int {
	// Without an argument, or with ".", print the current directory.
	if len(ctx.Argv) < 2 || ctx.Argv[1] == "." {
		fmt.Fprintln(ctx.Stdout, ctx.State.Pwd())
		return 0
	}

	dir := ctx.Argv[1]
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(ctx.Stderr, "cd: %s: no such directory\n", dir)
		return 1
	}

	if err := os.Chdir(dir); err != nil {
		fmt.Fprintf(ctx.Stderr, "cd: %s: %v\n", dir, err)
		return 1
	}

	pwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(ctx.Stderr, "cd: %v\n", err)
		return 1
	}
	ctx.State.SetPwd(pwd)
	os.Setenv("PWD", pwd)
	return 0
}

func init() { Register(&Cd{}) }
