package uriparser

import "fmt"

// Error reports input that does not match the URI grammar.
type Error struct {
	Message  string // human-readable error message
	Position int    // byte offset in input
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("uri: parse error at position %d: %s", e.Position, e.Message)
}

func errorAt(pos int, format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Position: pos}
}
