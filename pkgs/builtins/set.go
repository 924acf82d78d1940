package builtins

import (
	"fmt"
	"os"
)

// Set implements the set builtin: print every environment variable.
type Set struct{}

func (s *Set) Name() string { return "set" }

func (s *Set) Synopsis() string { return "set             print all environment variables" }

func (s *Set) Run(ctx *Context) int {
	for _, kv := range os.Environ() {
		fmt.Fprintln(ctx.Stdout, kv)
	}
	return 0
}

func init() { Register(&Set{}) }
