// Package shell implements the interactive main loop: read a line, parse
// it, submit it to the engine, and wait for the foreground job.
package shell

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/aledsdavies/mash/pkgs/builtins"
	"github.com/aledsdavies/mash/pkgs/engine"
	"github.com/aledsdavies/mash/pkgs/job"
	"github.com/aledsdavies/mash/pkgs/parser"
)

// Config wires a Shell to its input source and collaborators.
type Config struct {
	Input  io.Reader
	Output io.Writer
	ErrOut io.Writer

	// Interactive controls whether the prompt is printed before each
	// read. Batch mode runs with Interactive false.
	Interactive bool

	Jobs  *job.Table
	State *builtins.State
}

// Shell drives one input source until end-of-file.
type Shell struct {
	cfg    Config
	engine *engine.Engine
}

// New creates a Shell over the given configuration.
func New(cfg Config) *Shell {
	return &Shell{
		cfg:    cfg,
		engine: engine.New(cfg.Jobs, cfg.State, cfg.Output, cfg.ErrOut),
	}
}

// Run reads and executes commands until end-of-file. User-visible errors
// are printed and the loop continues; only a read failure ends it early.
func (s *Shell) Run() error {
	scanner := bufio.NewScanner(s.cfg.Input)
	for {
		if s.cfg.Interactive {
			fmt.Fprintf(s.cfg.Output, "%s$ ", s.cfg.State.Pwd())
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			if s.cfg.Interactive {
				fmt.Fprintln(s.cfg.Output)
			}
			return nil
		}
		s.execute(scanner.Text())
	}
}

// execute parses and submits one line. Errors drop the line; the caller
// prompts again.
func (s *Shell) execute(line string) {
	cmd, err := parser.Parse(line)
	if err != nil {
		fmt.Fprintln(s.cfg.ErrOut, err)
		return
	}
	if cmd == nil {
		return
	}

	logrus.WithField("line", line).Debug("submitting command")
	if err := s.engine.Submit(cmd); err != nil {
		fmt.Fprintln(s.cfg.ErrOut, err)
	}
}
