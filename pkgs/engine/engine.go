// Package engine maps command trees to processes. The parent side
// (Engine.Submit) decides whether a line runs a builtin directly in the
// shell or forks a child; the child side (Eval) walks the tree with the
// pipe plumbing, redirections, and exec image replacement.
package engine

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/aledsdavies/mash/pkgs/ast"
	"github.com/aledsdavies/mash/pkgs/builtins"
	"github.com/aledsdavies/mash/pkgs/job"
)

// evalArg is the hidden subcommand the shell re-invokes itself with to
// evaluate a tree in a child process.
const evalArg = "__eval"

// Engine submits parsed command trees for execution on behalf of the
// main loop.
type Engine struct {
	jobs   *job.Table
	state  *builtins.State
	stdout io.Writer
	stderr io.Writer
	self   string
}

// New creates an Engine bound to the shell's job table and state.
func New(jobs *job.Table, state *builtins.State, stdout, stderr io.Writer) *Engine {
	self, err := os.Executable()
	if err != nil {
		self = "/proc/self/exe"
	}
	return &Engine{
		jobs:   jobs,
		state:  state,
		stdout: stdout,
		stderr: stderr,
		self:   self,
	}
}

// RunsInShell reports whether the tree's handler runs directly in the
// shell process: a plain foreground Exec naming a builtin, with no pipe
// and no redirection around it.
func RunsInShell(cmd ast.Command) bool {
	ex, ok := cmd.(*ast.Exec)
	return ok && !ex.Background() && len(ex.Argv) > 0 && builtins.IsBuiltin(ex.Argv[0])
}

// Submit runs one parsed line to completion: directly for in-shell
// builtins, through a forked child for everything else. For a foreground
// child Submit returns once the job terminates or stops; for a
// background child it returns immediately after announcing the job.
func (e *Engine) Submit(cmd ast.Command) error {
	if RunsInShell(cmd) {
		ex := cmd.(*ast.Exec)
		b, _ := builtins.Lookup(ex.Argv[0])
		status := b.Run(&builtins.Context{
			Argv:    ex.Argv,
			Stdin:   os.Stdin,
			Stdout:  e.stdout,
			Stderr:  e.stderr,
			Jobs:    e.jobs,
			State:   e.state,
			InShell: true,
		})
		logrus.WithFields(logrus.Fields{"builtin": ex.Argv[0], "status": status}).
			Debug("builtin ran in shell")
		return nil
	}
	return e.spawn(cmd)
}

// spawn forks a child that evaluates the tree. The child becomes the
// leader of a new process group whose id equals its pid; everything the
// tree forks below it stays in that group. The job is recorded before
// control returns to the reader.
func (e *Engine) spawn(cmd ast.Command) error {
	line := cmd.String()

	child := exec.Command(e.self, evalArg, line)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr
	child.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := child.Start(); err != nil {
		return fmt.Errorf("fork failed: %w", err)
	}
	pid := child.Process.Pid

	bg := cmd.Background()
	rec, err := e.jobs.Add(line, bg, cmd, pid)
	if err == job.ErrAlreadyDone {
		// The monitor reaped the child before the record landed;
		// nothing left to track or wait for.
		return nil
	}
	if err != nil {
		return fmt.Errorf("job not recorded: %w", err)
	}

	logrus.WithFields(logrus.Fields{"jid": rec.JID, "pid": pid, "bg": bg, "line": line}).
		Debug("job spawned")

	if bg {
		fmt.Fprintf(e.stdout, "[%d] (%d) %s\n", rec.JID, rec.PID, rec.Line)
		return nil
	}
	e.jobs.WaitForeground()
	return nil
}
