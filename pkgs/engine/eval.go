package engine

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/sys/unix"

	"github.com/aledsdavies/mash/pkgs/ast"
	"github.com/aledsdavies/mash/pkgs/builtins"
	"github.com/aledsdavies/mash/pkgs/job"
)

// Eval walks a command tree and executes it. It runs only in a child
// process forked by Submit and never returns: every path ends in an exec
// image replacement or an explicit exit.
func Eval(cmd ast.Command, state *builtins.State) {
	switch c := cmd.(type) {
	case *ast.Exec:
		evalExec(c, state)
	case *ast.Pipe:
		evalPipe(c, state)
	case *ast.Redir:
		evalRedir(c, state)
	}
	os.Exit(0)
}

// evalExec runs a leaf command: builtins run their handler and exit with
// its status, externals replace the process image.
func evalExec(c *ast.Exec, state *builtins.State) {
	if len(c.Argv) == 0 {
		os.Exit(0)
	}

	if b, ok := builtins.Lookup(c.Argv[0]); ok {
		status := b.Run(&builtins.Context{
			Argv:   c.Argv,
			Stdin:  os.Stdin,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
			Jobs:   job.NewTable(),
			State:  state,
		})
		os.Exit(status)
	}

	path, err := exec.LookPath(c.Argv[0])
	if err != nil {
		msg := fmt.Sprintf("mash: %s: command not found", c.Argv[0])
		if hint := Suggest(c.Argv[0]); hint != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", hint)
		}
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(127)
	}
	if err := unix.Exec(path, c.Argv, os.Environ()); err != nil {
		fmt.Fprintf(os.Stderr, "mash: %s: %v\n", c.Argv[0], err)
	}
	os.Exit(1)
}

// evalPipe connects the left subtree's stdout to the right subtree's
// stdin, forks both as re-exec'd children, and waits for both. The
// children inherit this process's group, so the whole pipeline answers
// to one process group id.
func evalPipe(c *ast.Pipe, state *builtins.State) {
	r, w, err := os.Pipe()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mash: pipe: %v\n", err)
		os.Exit(1)
	}

	left := reexec(c.Left)
	left.Stdin = os.Stdin
	left.Stdout = w
	left.Stderr = os.Stderr

	right := reexec(c.Right)
	right.Stdin = r
	right.Stdout = os.Stdout
	right.Stderr = os.Stderr

	if err := left.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "mash: fork: %v\n", err)
		os.Exit(1)
	}
	if err := right.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "mash: fork: %v\n", err)
		w.Close()
		r.Close()
		left.Wait()
		os.Exit(1)
	}

	// Both ends must close here, or the right stage never sees EOF.
	w.Close()
	r.Close()

	left.Wait()
	right.Wait()
	os.Exit(0)
}

// evalRedir opens the redirection targets, remaps the standard
// descriptors, and recurses on the inner command. A failed open is
// reported but does not abort: the other direction may still work.
func evalRedir(c *ast.Redir, state *builtins.State) {
	if c.InFile != "" {
		f, err := os.Open(c.InFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mash: %s: %v\n", c.InFile, err)
		} else {
			unix.Dup2(int(f.Fd()), 0)
			f.Close()
		}
	}

	if c.OutFile != "" {
		flags := os.O_CREATE | os.O_WRONLY
		if c.Mode == ast.Append {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
		// The inherited process umask filters the mode.
		f, err := os.OpenFile(c.OutFile, flags, 0o777)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mash: %s: %v\n", c.OutFile, err)
		} else {
			unix.Dup2(int(f.Fd()), 1)
			f.Close()
		}
	}

	Eval(c.Cmd, state)
}

// reexec builds the self-invocation that evaluates a subtree in a fresh
// child process.
func reexec(sub ast.Command) *exec.Cmd {
	self, err := os.Executable()
	if err != nil {
		self = "/proc/self/exe"
	}
	return exec.Command(self, evalArg, sub.String())
}

// Suggest returns the registered builtin closest to name, or "" when
// nothing is within editing distance 2.
func Suggest(name string) string {
	best := ""
	bestDist := 3
	for _, candidate := range builtins.Names() {
		if candidate == name {
			continue
		}
		if d := fuzzy.LevenshteinDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
