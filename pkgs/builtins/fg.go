package builtins

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/aledsdavies/mash/pkgs/job"
)

// Fg implements the fg builtin: move a job to the foreground, continue
// its process group, and wait for it to finish or stop.
type Fg struct{}

func (f *Fg) Name() string { return "fg" }

func (f *Fg) Synopsis() string { return "fg %jid         move a job to the foreground" }

func (f *Fg) Run(ctx *Context) int {
	if len(ctx.Argv) != 2 {
		fmt.Fprintln(ctx.Stderr, "fg: usage: fg %jid")
		return 1
	}
	jid, err := ParseJobSpec(ctx.Argv[1])
	if err != nil {
		fmt.Fprintf(ctx.Stderr, "fg: %v\n", err)
		return 1
	}

	rec, ok := ctx.Jobs.SetState(jid, job.FG)
	if !ok {
		fmt.Fprintf(ctx.Stderr, "fg: %%%d: no such job\n", jid)
		return 1
	}

	if err := unix.Kill(-rec.PID, unix.SIGCONT); err != nil {
		fmt.Fprintf(ctx.Stderr, "fg: %v\n", err)
	}
	ctx.Jobs.WaitForeground()
	return 0
}

func init() { Register(&Fg{}) }
