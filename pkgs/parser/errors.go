package parser

import (
	"fmt"
	"strings"
)

// ParseError represents an error that occurred while parsing a command
// line. Column is a byte offset into the line.
type ParseError struct {
	Column  int    // Byte offset where the error occurred
	Message string // The error message
	Context string // The line being parsed
}

// Error formats the parse error with a caret pointing at the offending
// position when context is available.
func (e *ParseError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("parse error: %s", e.Message)
	}

	pointer := strings.Repeat(" ", e.Column) + "^"

	return fmt.Sprintf("parse error: %s\n%s\n%s", e.Message, e.Context, pointer)
}

// NewParseError creates a ParseError pointing at column within context.
func NewParseError(column int, context, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Column:  column,
		Context: context,
		Message: fmt.Sprintf(format, args...),
	}
}
