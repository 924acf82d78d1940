package builtins

import "fmt"

// Pwd implements the pwd builtin.
type Pwd struct{}

func (p *Pwd) Name() string { return "pwd" }

func (p *Pwd) Synopsis() string { return "pwd             print the current directory" }

func (p *Pwd) Run(ctx *Context) int {
	fmt.Fprintln(ctx.Stdout, ctx.State.Pwd())
	return 0
}

func init() { Register(&Pwd{}) }
