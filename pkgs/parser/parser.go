// Package parser turns a raw command line into a command tree.
//
// The grammar is small and parsed in a single pass over the token
// stream:
//
//	line ::= pipe [ '&' ]
//	pipe ::= exec [ '|' line ]
//	exec ::= atom { atom }
//	atom ::= TOKEN | '<' TOKEN | '>' TOKEN | '>>' TOKEN
//
// Pipes are right-associative: "a | b | c" parses to Pipe(a, Pipe(b, c)).
// A '&' anywhere marks the whole pipeline as background; everything after
// the first '&' is discarded.
package parser

import (
	"github.com/aledsdavies/mash/pkgs/ast"
	"github.com/aledsdavies/mash/pkgs/lexer"
)

// Parse parses one command line into a command tree. An empty or
// whitespace-only line yields a nil tree and no error.
func Parse(line string) (ast.Command, error) {
	p := &parser{line: line, tokens: lexer.New(line).Tokens()}

	// The background flag is a property of the whole line: any '&'
	// sets it, and tokens after the first '&' are dropped.
	background := false
	for i, tok := range p.tokens {
		if tok.Type == lexer.AMP {
			background = true
			p.tokens = p.tokens[:i]
			break
		}
	}

	if len(p.tokens) == 0 {
		if background {
			return nil, NewParseError(0, line, "missing command before '&'")
		}
		return nil, nil
	}

	cmd, err := p.parsePipe(p.tokens)
	if err != nil {
		return nil, err
	}

	switch c := cmd.(type) {
	case *ast.Exec:
		c.Bg = background
	case *ast.Pipe:
		c.Bg = background
	case *ast.Redir:
		c.Bg = background
	}
	return cmd, nil
}

type parser struct {
	line   string
	tokens []lexer.Token
}

// parsePipe splits at the first '|': the left segment is a single exec,
// the right segment is parsed as a full pipe again (right-associative).
func (p *parser) parsePipe(tokens []lexer.Token) (ast.Command, error) {
	for i, tok := range tokens {
		if tok.Type != lexer.PIPE {
			continue
		}
		left, err := p.parseExec(tokens[:i], tok.Offset)
		if err != nil {
			return nil, err
		}
		if i+1 >= len(tokens) {
			return nil, NewParseError(tok.Offset, p.line, "missing command after '|'")
		}
		right, err := p.parsePipe(tokens[i+1:])
		if err != nil {
			return nil, err
		}
		return &ast.Pipe{Left: left, Right: right}, nil
	}
	return p.parseExec(tokens, p.offsetAfter(tokens))
}

// parseExec consumes tokens and redirections for one command. errOffset
// is where "empty command" errors point when the segment has no tokens.
func (p *parser) parseExec(tokens []lexer.Token, errOffset int) (ast.Command, error) {
	var argv []string
	var inFile, outFile string
	mode := ast.Truncate

	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		switch tok.Type {
		case lexer.TOKEN:
			if len(argv) == ast.MaxArgs {
				return nil, NewParseError(tok.Offset, p.line,
					"too many arguments (limit %d)", ast.MaxArgs)
			}
			argv = append(argv, tok.Value)
			i++

		case lexer.REDIR_IN:
			name, next, err := p.fileName(tokens, i, "<")
			if err != nil {
				return nil, err
			}
			// Only the first '<' is significant.
			if inFile == "" {
				inFile = name
			}
			i = next

		case lexer.REDIR_OUT, lexer.REDIR_APPEND:
			op := ">"
			if tok.Type == lexer.REDIR_APPEND {
				op = ">>"
			}
			name, next, err := p.fileName(tokens, i, op)
			if err != nil {
				return nil, err
			}
			// The last '>' or '>>' wins.
			outFile = name
			if tok.Type == lexer.REDIR_APPEND {
				mode = ast.Append
			} else {
				mode = ast.Truncate
			}
			i = next

		default:
			return nil, NewParseError(tok.Offset, p.line, "unexpected %s", tok.Type)
		}
	}

	if len(argv) == 0 {
		return nil, NewParseError(errOffset, p.line, "missing command")
	}

	exec := &ast.Exec{Argv: argv, Line: p.line}
	if inFile == "" && outFile == "" {
		return exec, nil
	}
	return &ast.Redir{Cmd: exec, InFile: inFile, OutFile: outFile, Mode: mode}, nil
}

// fileName returns the TOKEN following the redirection operator at
// tokens[i], or an error when it is absent.
func (p *parser) fileName(tokens []lexer.Token, i int, op string) (string, int, error) {
	if i+1 >= len(tokens) || tokens[i+1].Type != lexer.TOKEN {
		return "", 0, NewParseError(tokens[i].Offset, p.line,
			"missing file name after '%s'", op)
	}
	return tokens[i+1].Value, i + 2, nil
}

func (p *parser) offsetAfter(tokens []lexer.Token) int {
	if len(tokens) == 0 {
		return 0
	}
	last := tokens[len(tokens)-1]
	return last.Offset + len(last.Value)
}
