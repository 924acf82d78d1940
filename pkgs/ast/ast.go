// Package ast defines the command tree: the parsed, executable form of
// one shell input line.
//
// A tree node is one of three variants:
//   - Exec: a plain command with its argument vector
//   - Pipe: two subtrees connected stdout-to-stdin
//   - Redir: one subtree with its standard input and/or output remapped
//
// The variants are a tagged sum expressed as a sealed interface; consumers
// pattern-match with a type switch.
package ast

import (
	"fmt"
	"strings"
)

// MaxArgs is the largest number of argv entries a single command may carry.
const MaxArgs = 15

// Command represents any node of a command tree.
type Command interface {
	fmt.Stringer

	// Background reports whether the line this node belongs to contained
	// '&'. The parser sets the flag on the root node only, and only the
	// root node's flag is consulted.
	Background() bool

	// sealed prevents implementations outside this package, keeping the
	// variant set closed for type switches.
	sealed()
}

// RedirMode selects how an output redirection opens its target.
type RedirMode int

const (
	Truncate RedirMode = iota
	Append
)

func (m RedirMode) String() string {
	if m == Append {
		return ">>"
	}
	return ">"
}

// Exec is a plain command: the argument vector and the line text it was
// parsed from.
type Exec struct {
	Argv []string
	Line string // original line text the command was parsed from
	Bg   bool
}

func (e *Exec) String() string {
	return strings.Join(e.Argv, " ")
}

func (e *Exec) Background() bool { return e.Bg }
func (e *Exec) sealed()          {}

// Pipe connects the standard output of Left to the standard input of
// Right. Right may itself be a Pipe; Left never is.
type Pipe struct {
	Left  Command
	Right Command
	Bg    bool
}

func (p *Pipe) String() string {
	return p.Left.String() + " | " + p.Right.String()
}

func (p *Pipe) Background() bool { return p.Bg }
func (p *Pipe) sealed()          {}

// Redir wraps an inner command with input and/or output redirection.
// At least one of InFile and OutFile is set.
type Redir struct {
	Cmd     Command
	InFile  string
	OutFile string
	Mode    RedirMode
	Bg      bool
}

func (r *Redir) String() string {
	var b strings.Builder
	b.WriteString(r.Cmd.String())
	if r.InFile != "" {
		b.WriteString(" < ")
		b.WriteString(r.InFile)
	}
	if r.OutFile != "" {
		b.WriteString(" ")
		b.WriteString(r.Mode.String())
		b.WriteString(" ")
		b.WriteString(r.OutFile)
	}
	return b.String()
}

func (r *Redir) Background() bool { return r.Bg }
func (r *Redir) sealed()          {}

// Format renders the canonical line for a tree, including the trailing
// '&' when the root is marked background. Parsing the result yields a
// tree of the same shape.
func Format(c Command) string {
	if c.Background() {
		return c.String() + " &"
	}
	return c.String()
}

// Leaves returns the Exec nodes of a tree in left-to-right order.
func Leaves(c Command) []*Exec {
	switch n := c.(type) {
	case *Exec:
		return []*Exec{n}
	case *Pipe:
		return append(Leaves(n.Left), Leaves(n.Right)...)
	case *Redir:
		return Leaves(n.Cmd)
	}
	return nil
}
