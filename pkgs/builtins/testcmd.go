package builtins

import (
	"fmt"
	"os"
)

// Test implements the test builtin: evaluate a file or string predicate
// and report the result through the exit status.
type Test struct{}

func (t *Test) Name() string { return "test" }

func (t *Test) Synopsis() string { return "test [expr]     evaluate a conditional expression" }

func (t *Test) Run(ctx *Context) int {
	ok, err := evalTest(ctx.Argv[1:])
	if err != nil {
		fmt.Fprintf(ctx.Stderr, "test: %v\n", err)
		return 1
	}
	if ok {
		return 0
	}
	return 1
}

func evalTest(args []string) (bool, error) {
	switch len(args) {
	case 0:
		return false, nil

	case 1:
		return args[0] != "", nil

	case 2:
		op, arg := args[0], args[1]
		switch op {
		case "-e":
			_, err := os.Stat(arg)
			return err == nil, nil
		case "-f":
			info, err := os.Stat(arg)
			return err == nil && info.Mode().IsRegular(), nil
		case "-d":
			info, err := os.Stat(arg)
			return err == nil && info.IsDir(), nil
		case "-z":
			return arg == "", nil
		case "-n":
			return arg != "", nil
		}
		return false, fmt.Errorf("%s: unknown operator", op)

	case 3:
		switch args[1] {
		case "=":
			return args[0] == args[2], nil
		case "!=":
			return args[0] != args[2], nil
		}
		return false, fmt.Errorf("%s: unknown operator", args[1])
	}

	return false, fmt.Errorf("too many arguments")
}

func init() { Register(&Test{}) }
