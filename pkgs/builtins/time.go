package builtins

import (
	"fmt"
	"time"
)

// Time implements the time builtin: print the current local time.
type Time struct{}

func (t *Time) Name() string { return "time" }

func (t *Time) Synopsis() string { return "time            print the current time" }

func (t *Time) Run(ctx *Context) int {
	fmt.Fprintln(ctx.Stdout, time.Now().Format(time.ANSIC))
	return 0
}

func init() { Register(&Time{}) }
