package http

import (
	"encoding/json"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/shapestone/shape-message/pkg/stream"
	"github.com/shapestone/shape-message/pkg/uri"
)

// DefaultCharset is the charset added to text content types by Prepare.
const DefaultCharset = "utf-8"

// Response is an immutable HTTP response.
type Response struct {
	status  Status
	charset string
	clock   clock.Clock
	msg     message
}

// ResponseOption configures a Response under construction.
type ResponseOption func(*Response) error

// WithResponseHeaders adds every header in h. Names are added in sorted order.
func WithResponseHeaders(h map[string][]string) ResponseOption {
	return func(r *Response) error {
		for _, name := range sortedKeys(h) {
			if err := r.msg.headers.Add(name, h[name]...); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithResponseBody sets the body stream.
func WithResponseBody(body stream.Stream) ResponseOption {
	return func(r *Response) error {
		r.msg = r.msg.withBody(body)
		return nil
	}
}

// WithResponseProtocol sets the protocol version.
func WithResponseProtocol(version string) ResponseOption {
	return func(r *Response) error {
		m, err := r.msg.withProtocolVersion(version)
		if err != nil {
			return err
		}
		r.msg = m
		return nil
	}
}

// WithResponseCharset sets the charset used by Prepare.
func WithResponseCharset(charset string) ResponseOption {
	return func(r *Response) error {
		r.charset = charset
		return nil
	}
}

// WithResponseClock sets the clock used to render cookie expiry dates.
func WithResponseClock(clk clock.Clock) ResponseOption {
	return func(r *Response) error {
		r.clock = clk
		return nil
	}
}

// NewResponse returns a response with the given status code and the
// standard reason phrase.
func NewResponse(code int, opts ...ResponseOption) (*Response, error) {
	st, err := NewStatus(code)
	if err != nil {
		return nil, err
	}
	r := &Response{
		status:  st,
		charset: DefaultCharset,
		clock:   clock.New(),
		msg:     newMessage(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NewJSONResponse encodes v as the body of an application/json response.
func NewJSONResponse(v interface{}, code int, opts ...ResponseOption) (*Response, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("http: encode json body: %w", err)
	}
	r, err := NewResponse(code, opts...)
	if err != nil {
		return nil, err
	}
	r.msg = r.msg.withBody(stream.NewBuffer(data))
	r.msg.headers.set("Content-Type", []string{"application/json"})
	return r, nil
}

// NewRedirect returns a 3xx response pointing at location.
func NewRedirect(location string, code int, opts ...ResponseOption) (*Response, error) {
	if code < 300 || code > 399 {
		return nil, fmt.Errorf("%w: status %d is not 3xx", ErrInvalidRedirect, code)
	}
	if _, err := uri.Parse(location); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRedirect, err)
	}
	r, err := NewResponse(code, opts...)
	if err != nil {
		return nil, err
	}
	m, err := r.msg.withHeader("Location", []string{location})
	if err != nil {
		return nil, err
	}
	r.msg = m
	return r, nil
}

func (r *Response) with(m message) *Response {
	c := *r
	c.msg = m
	return &c
}

// Status returns the response status.
func (r *Response) Status() Status { return r.status }

// StatusCode returns the numeric status code.
func (r *Response) StatusCode() int { return r.status.code }

// ReasonPhrase returns the status reason phrase.
func (r *Response) ReasonPhrase() string { return r.status.reason }

// WithStatus returns a copy of r with a new status. The reason defaults to
// the standard phrase for code.
func (r *Response) WithStatus(code int, reason ...string) (*Response, error) {
	st, err := NewStatus(code, reason...)
	if err != nil {
		return nil, err
	}
	c := r.with(r.msg.copy())
	c.status = st
	return c, nil
}

// Charset returns the charset used by Prepare.
func (r *Response) Charset() string { return r.charset }

// WithCharset returns a copy of r with a different charset.
func (r *Response) WithCharset(charset string) *Response {
	c := r.with(r.msg.copy())
	c.charset = charset
	return c
}

// WithCookie returns a copy of r with c appended as a Set-Cookie header.
func (r *Response) WithCookie(c Cookie) (*Response, error) {
	if err := validateCookieName(c.Name); err != nil {
		return nil, err
	}
	return r.WithAddedHeader("Set-Cookie", c.Format(r.clock))
}

// ProtocolVersion returns the HTTP version, e.g. "1.1".
func (r *Response) ProtocolVersion() string { return r.msg.version }

// WithProtocolVersion returns a copy of r with a different HTTP version.
func (r *Response) WithProtocolVersion(v string) (*Response, error) {
	m, err := r.msg.withProtocolVersion(v)
	if err != nil {
		return nil, err
	}
	return r.with(m), nil
}

// Headers returns a copy of the header store.
func (r *Response) Headers() Headers { return r.msg.headers.Clone() }

// HasHeader reports whether the header exists (case-insensitive).
func (r *Response) HasHeader(name string) bool { return r.msg.headers.Has(name) }

// Header returns the values of the header, or nil.
func (r *Response) Header(name string) []string { return r.msg.headers.Get(name) }

// HeaderLine returns the values of the header joined with ", ".
func (r *Response) HeaderLine(name string) string { return r.msg.headers.Line(name) }

// WithHeader returns a copy of r with the header replaced.
func (r *Response) WithHeader(name string, values ...string) (*Response, error) {
	m, err := r.msg.withHeader(name, values)
	if err != nil {
		return nil, err
	}
	return r.with(m), nil
}

// WithAddedHeader returns a copy of r with values appended to the header.
func (r *Response) WithAddedHeader(name string, values ...string) (*Response, error) {
	m, err := r.msg.withAddedHeader(name, values)
	if err != nil {
		return nil, err
	}
	return r.with(m), nil
}

// WithoutHeader returns a copy of r without the header.
func (r *Response) WithoutHeader(name string) *Response {
	return r.with(r.msg.withoutHeader(name))
}

// Body returns the body stream.
func (r *Response) Body() stream.Stream { return r.msg.body }

// WithBody returns a copy of r holding body. A nil body means empty.
func (r *Response) WithBody(body stream.Stream) *Response {
	return r.with(r.msg.withBody(body))
}

var _ Message = (*Response)(nil)
