package builtins

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/aledsdavies/mash/pkgs/job"
)

// Bg implements the bg builtin: continue a stopped job in the
// background.
type Bg struct{}

func (b *Bg) Name() string { return "bg" }

func (b *Bg) Synopsis() string { return "bg %jid         continue a job in the background" }

func (b *Bg) Run(ctx *Context) int {
	if len(ctx.Argv) != 2 {
		fmt.Fprintln(ctx.Stderr, "bg: usage: bg %jid")
		return 1
	}
	jid, err := ParseJobSpec(ctx.Argv[1])
	if err != nil {
		fmt.Fprintf(ctx.Stderr, "bg: %v\n", err)
		return 1
	}

	rec, ok := ctx.Jobs.SetState(jid, job.BG)
	if !ok {
		fmt.Fprintf(ctx.Stderr, "bg: %%%d: no such job\n", jid)
		return 1
	}

	if err := unix.Kill(-rec.PID, unix.SIGCONT); err != nil {
		fmt.Fprintf(ctx.Stderr, "bg: %v\n", err)
		return 1
	}
	return 0
}

func init() { Register(&Bg{}) }
