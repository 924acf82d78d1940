package builtins

import (
	"fmt"
	"os"
	"strings"
)

// Dir implements the dir builtin: list the entries of a directory.
type Dir struct{}

func (d *Dir) Name() string { return "dir" }

func (d *Dir) Synopsis() string { return "dir [dir]       list the contents of a directory" }

func (d *Dir) Run(ctx *Context) int {
	path := ctx.State.Pwd()
	if len(ctx.Argv) > 1 {
		path = ctx.Argv[1]
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		fmt.Fprintf(ctx.Stderr, "dir: %s: not a directory\n", path)
		return 1
	}

	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name()
	}
	fmt.Fprintln(ctx.Stdout, strings.Join(names, " "))
	return 0
}

func init() { Register(&Dir{}) }
