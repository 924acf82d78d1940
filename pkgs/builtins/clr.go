package builtins

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Clr implements the clr builtin: push the visible screen contents off
// with newlines, then move the cursor back to the top.
type Clr struct{}

func (c *Clr) Name() string { return "clr" }

func (c *Clr) Synopsis() string { return "clr             clear the screen" }

func (c *Clr) Run(ctx *Context) int {
	_, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		fmt.Fprintf(ctx.Stderr, "clr: %v\n", err)
		return 1
	}

	for i := 0; i < rows; i++ {
		fmt.Fprintln(ctx.Stdout)
	}
	fmt.Fprintf(ctx.Stdout, "\033[%dA", rows)
	return 0
}

func init() { Register(&Clr{}) }
