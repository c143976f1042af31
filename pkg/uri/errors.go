package uri

import (
	"errors"
	"fmt"

	"github.com/shapestone/shape-message/internal/uriparser"
)

// Sentinel errors for higher-level handling.
var (
	ErrMalformed        = errors.New("uri: malformed URI")
	ErrInvalidPort      = errors.New("uri: invalid port")
	ErrInvalidComponent = errors.New("uri: invalid component")
)

// MalformedError reports text that cannot be matched against the URI grammar.
// It matches ErrMalformed with errors.Is.
type MalformedError struct {
	Input    string // the rejected text
	Message  string // human-readable reason
	Position int    // byte offset of the offending character
}

// Error implements the error interface.
func (e *MalformedError) Error() string {
	return fmt.Sprintf("uri: malformed URI %q at position %d: %s", e.Input, e.Position, e.Message)
}

// Unwrap returns ErrMalformed.
func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}

func newMalformedError(input string, err error) error {
	var perr *uriparser.Error
	if errors.As(err, &perr) {
		return &MalformedError{Input: input, Message: perr.Message, Position: perr.Position}
	}
	return &MalformedError{Input: input, Message: err.Error()}
}

func invalidPort(v interface{}) error {
	return fmt.Errorf("%w: %v (must be 0-%d)", ErrInvalidPort, v, MaxPort)
}

func invalidComponent(name string, err error) error {
	var perr *uriparser.Error
	if errors.As(err, &perr) {
		return fmt.Errorf("%w: %s: %s", ErrInvalidComponent, name, perr.Message)
	}
	return fmt.Errorf("%w: %s: %v", ErrInvalidComponent, name, err)
}
