package mermaid

import "fmt"

// ParseError is a single diagnostic recorded while parsing a diagram.
// Values are created during parsing and never mutated afterwards. A diagram
// with a non-empty error list is still a usable, partially populated model.
type ParseError struct {
	Message string
	Line    int // 1-based line number
	Column  int // 1-based column number
}

func (e ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Column, e.Message)
	}
	return e.Message
}

// syntaxError builds the internal error raised by statement productions.
// The statement boundary converts it to a ParseError record and resumes.
func syntaxError(tok Token, format string, args ...any) error {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

// headerError is the catastrophic-failure sentinel: a single generic error
// pinned to line 1, column 1 on an otherwise empty model.
func headerError(message string) ParseError {
	return ParseError{Message: message, Line: 1, Column: 1}
}

// asParseError converts a statement failure into a recordable ParseError.
func asParseError(err error) ParseError {
	if pe, ok := err.(*ParseError); ok {
		return *pe
	}
	return ParseError{Message: err.Error(), Line: 1, Column: 1}
}
