package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aledsdavies/mash/internal/shell"
	"github.com/aledsdavies/mash/pkgs/builtins"
	"github.com/aledsdavies/mash/pkgs/engine"
	"github.com/aledsdavies/mash/pkgs/job"
	"github.com/aledsdavies/mash/pkgs/parser"
)

// Build-time variables - can be set via ldflags
var (
	Version   string = "dev"
	BuildTime string = "unknown"
	GitCommit string = "unknown"
)

var debug bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mash [file]",
	Short: "An interactive Unix command shell with job control",
	Long: `mash reads command lines, runs them as child processes with pipelines and
I/O redirection, and manages them as jobs that can run in the foreground or
background, be stopped, resumed, or terminated.

With no arguments mash runs interactively: it prints a prompt and reads
commands from standard input until end-of-file. With a file argument it reads
commands from that file without prompting.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runShell,
}

// evalCmd is the hidden re-exec entry point: the shell invokes itself
// with it so a command tree is evaluated in a fresh child process.
var evalCmd = &cobra.Command{
	Use:                "__eval <line>",
	Hidden:             true,
	DisableFlagParsing: true,
	Args:               cobra.ExactArgs(1),
	RunE:               runEval,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mash %s\n", Version)
		fmt.Printf("Built: %s\n", BuildTime)
		fmt.Printf("Commit: %s\n", GitCommit)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(versionCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	logrus.SetOutput(os.Stderr)
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if exe, err := os.Executable(); err == nil {
		os.Setenv("SHELL", exe)
	}

	state := builtins.NewState()
	jobs := job.NewTable()
	monitor := job.StartMonitor(jobs, os.Stdout)
	defer monitor.Stop()

	cfg := shell.Config{
		Input:       os.Stdin,
		Output:      os.Stdout,
		ErrOut:      os.Stderr,
		Interactive: true,
		Jobs:        jobs,
		State:       state,
	}

	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("mash: %s: %w", args[0], err)
		}
		defer f.Close()
		cfg.Input = f
		cfg.Interactive = false
	}

	return shell.New(cfg).Run()
}

// runEval is the child side of a fork: parse the canonical line handed
// over by the parent and evaluate it. It does not return.
func runEval(cmd *cobra.Command, args []string) error {
	tree, err := parser.Parse(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if tree == nil {
		os.Exit(0)
	}
	engine.Eval(tree, builtins.NewState())
	return nil
}
