package http

import (
	"fmt"

	"github.com/shapestone/shape-message/pkg/stream"
)

// Protocol versions accepted by WithProtocolVersion.
const (
	Version10 = "1.0"
	Version11 = "1.1"
	Version2  = "2"
)

// DefaultProtocolVersion is used by new requests and responses.
const DefaultProtocolVersion = Version11

// Message is the read-only capability shared by Request and Response.
type Message interface {
	ProtocolVersion() string
	Headers() Headers
	HasHeader(name string) bool
	Header(name string) []string
	HeaderLine(name string) string
	Body() stream.Stream
}

// message is the core held by Request and Response. Its methods never
// modify the receiver; each returns a fresh core with its own header store.
type message struct {
	version string
	headers Headers
	body    stream.Stream
}

func newMessage() message {
	return message{
		version: DefaultProtocolVersion,
		body:    stream.Empty(),
	}
}

func validateVersion(v string) error {
	switch v {
	case Version10, Version11, Version2:
		return nil
	}
	return fmt.Errorf("%w: %q (want 1.0, 1.1 or 2)", ErrInvalidProtocolVersion, v)
}

// copy returns a core with the same fields and a cloned header store.
func (m message) copy() message {
	return message{
		version: m.version,
		headers: m.headers.Clone(),
		body:    m.body,
	}
}

func (m message) withProtocolVersion(v string) (message, error) {
	if err := validateVersion(v); err != nil {
		return message{}, err
	}
	c := m.copy()
	c.version = v
	return c, nil
}

func (m message) withHeader(name string, values []string) (message, error) {
	c := m.copy()
	if err := c.headers.Set(name, values...); err != nil {
		return message{}, err
	}
	return c, nil
}

func (m message) withAddedHeader(name string, values []string) (message, error) {
	c := m.copy()
	if err := c.headers.Add(name, values...); err != nil {
		return message{}, err
	}
	return c, nil
}

func (m message) withoutHeader(name string) message {
	c := m.copy()
	c.headers.Del(name)
	return c
}

func (m message) withBody(body stream.Stream) message {
	c := m.copy()
	if body == nil {
		body = stream.Empty()
	}
	c.body = body
	return c
}

// bodySize returns the body's byte size, if known.
func (m message) bodySize() (int64, bool) {
	if m.body == nil {
		return 0, true
	}
	return m.body.Size()
}
