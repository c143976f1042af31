package http

import (
	"errors"
	"fmt"
)

// Sentinel errors for higher-level handling.
var (
	ErrInvalidStatusCode      = errors.New("http: invalid status code")
	ErrInvalidReasonPhrase    = errors.New("http: invalid reason phrase")
	ErrInvalidProtocolVersion = errors.New("http: invalid protocol version")
	ErrInvalidHeaderName      = errors.New("http: invalid header field name")
	ErrInvalidHeaderValue     = errors.New("http: invalid header value")
	ErrInvalidMethod          = errors.New("http: invalid method")
	ErrInvalidRequestTarget   = errors.New("http: invalid request target")
	ErrInvalidCookieName      = errors.New("http: invalid cookie name")
	ErrInvalidRedirect        = errors.New("http: invalid redirect")
)

// ConvertError reports an AST node that cannot be turned into a message.
type ConvertError struct {
	Op      string // "NodeToRequest", "Render", ...
	Message string
}

// Error implements the error interface.
func (e *ConvertError) Error() string {
	return fmt.Sprintf("http: %s: %s", e.Op, e.Message)
}

func convertErrorf(op, format string, args ...interface{}) *ConvertError {
	return &ConvertError{Op: op, Message: fmt.Sprintf(format, args...)}
}
