package builtins

import "fmt"

// Help implements the help builtin: list every builtin with its synopsis.
type Help struct{}

func (h *Help) Name() string { return "help" }

func (h *Help) Synopsis() string { return "help            show this list" }

func (h *Help) Run(ctx *Context) int {
	fmt.Fprintln(ctx.Stdout, "The following commands are defined internally.")
	fmt.Fprintln(ctx.Stdout)
	for _, name := range Names() {
		b, _ := Lookup(name)
		fmt.Fprintf(ctx.Stdout, "  %s\n", b.Synopsis())
	}
	return 0
}

func init() { Register(&Help{}) }
