package builtins

import "fmt"

// Jobs implements the jobs builtin: list every live job record.
type Jobs struct{}

func (j *Jobs) Name() string { return "jobs" }

func (j *Jobs) Synopsis() string { return "jobs            list the current jobs" }

func (j *Jobs) Run(ctx *Context) int {
	for _, rec := range ctx.Jobs.Jobs() {
		fmt.Fprintf(ctx.Stdout, "[%d] (%d) %s %s\n", rec.JID, rec.PID, rec.State, rec.Line)
	}
	return 0
}

func init() { Register(&Jobs{}) }
