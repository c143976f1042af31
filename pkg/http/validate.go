package http

import (
	"errors"
	"fmt"

	"github.com/shapestone/shape-message/pkg/uri"
)

// ErrInconsistentMessage is returned by Validate.
var ErrInconsistentMessage = errors.New("http: inconsistent message")

// Validate checks that a *Request or *Response is consistent enough to be
// written: Content-Length and chunked Transfer-Encoding are not both set,
// a known body size matches Content-Length, and bodyless statuses carry no
// body. A Response straight out of Prepare always passes.
func Validate(v Message) error {
	var m message
	switch msg := v.(type) {
	case *Request:
		m = msg.msg
	case *Response:
		m = msg.msg
		if msg.status.IsEmpty() {
			if n, ok := m.bodySize(); !ok || n > 0 {
				return fmt.Errorf("%w: status %d must not have a body", ErrInconsistentMessage, msg.status.code)
			}
		}
	default:
		return fmt.Errorf("http: Validate unsupported type %T (expected *Request or *Response)", v)
	}

	h := m.headers
	if h.Has("Content-Length") {
		if h.IsChunked() {
			return fmt.Errorf("%w: both Content-Length and chunked Transfer-Encoding", ErrInconsistentMessage)
		}
		cl := h.ContentLength()
		if cl < 0 {
			return fmt.Errorf("%w: invalid Content-Length %q", ErrInconsistentMessage, h.First("Content-Length"))
		}
		if n, ok := m.bodySize(); ok && n != 0 && n != cl {
			return fmt.Errorf("%w: Content-Length %d but body has %d bytes", ErrInconsistentMessage, cl, n)
		}
	}
	return nil
}

// ValidateURI checks that s is a URI reference.
func ValidateURI(s string) error {
	_, err := uri.Parse(s)
	return err
}
