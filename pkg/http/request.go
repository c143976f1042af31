package http

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shapestone/shape-message/pkg/stream"
	"github.com/shapestone/shape-message/pkg/uri"
)

// Request is an immutable HTTP request.
//
// Every With* method returns a new *Request and leaves the receiver
// untouched, so a Request can be shared read-only between goroutines.
type Request struct {
	method     string
	target     string // explicit request-target; "" derives it from uri
	uri        uri.URI
	msg        message
	attributes Attributes
}

// RequestOption configures a Request under construction.
type RequestOption func(*Request) error

// WithRequestHeaders adds every header in h. Names are added in sorted order.
func WithRequestHeaders(h map[string][]string) RequestOption {
	return func(r *Request) error {
		for _, name := range sortedKeys(h) {
			if err := r.msg.headers.Add(name, h[name]...); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithRequestBody sets the body stream.
func WithRequestBody(body stream.Stream) RequestOption {
	return func(r *Request) error {
		r.msg = r.msg.withBody(body)
		return nil
	}
}

// WithRequestProtocol sets the protocol version.
func WithRequestProtocol(version string) RequestOption {
	return func(r *Request) error {
		m, err := r.msg.withProtocolVersion(version)
		if err != nil {
			return err
		}
		r.msg = m
		return nil
	}
}

// NewRequest parses target as a URI and builds a request for it.
func NewRequest(method, target string, opts ...RequestOption) (*Request, error) {
	u, err := uri.Parse(target)
	if err != nil {
		return nil, err
	}
	return NewRequestFromURI(method, u, opts...)
}

// NewRequestFromURI builds a request for an already-parsed URI. A Host
// header is derived from the URI unless one is supplied by the options.
func NewRequestFromURI(method string, u uri.URI, opts ...RequestOption) (*Request, error) {
	if !isToken(method) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}
	r := &Request{
		method: method,
		uri:    u,
		msg:    newMessage(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	if !r.msg.headers.Has("Host") {
		r.updateHost()
	}
	return r, nil
}

// with returns a copy of r carrying m.
func (r *Request) with(m message) *Request {
	c := *r
	c.msg = m
	c.attributes = r.attributes.Clone()
	return &c
}

func (r *Request) updateHost() {
	host := r.uri.Host()
	if host == "" {
		return
	}
	if p, ok := r.uri.Port(); ok {
		host = fmt.Sprintf("%s:%d", host, p)
	}
	// Host must come first per RFC 7230 §5.4.
	var h Headers
	h.set("Host", []string{host})
	for _, f := range r.msg.headers.Fields() {
		if normalize(f.Name) == "host" {
			continue
		}
		h.set(f.Name, f.Values)
	}
	r.msg.headers = h
}

// Method returns the request method.
func (r *Request) Method() string { return r.method }

// WithMethod returns a copy of r with a different method.
func (r *Request) WithMethod(method string) (*Request, error) {
	if !isToken(method) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}
	c := r.with(r.msg.copy())
	c.method = method
	return c, nil
}

// RequestTarget returns the explicit request-target, or path[?query] of the
// URI with "/" for an empty path.
func (r *Request) RequestTarget() string {
	if r.target != "" {
		return r.target
	}
	return r.uri.RequestTarget()
}

// WithRequestTarget returns a copy of r with an explicit request-target,
// such as "*" or an absolute-form URI.
func (r *Request) WithRequestTarget(target string) (*Request, error) {
	if target == "" || strings.ContainsAny(target, " \t\r\n") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRequestTarget, target)
	}
	c := r.with(r.msg.copy())
	c.target = target
	return c, nil
}

// URI returns the request URI.
func (r *Request) URI() uri.URI { return r.uri }

// WithURI returns a copy of r with a different URI. The Host header is
// updated from the new URI unless preserveHost is set and r already has a
// non-empty Host header.
func (r *Request) WithURI(u uri.URI, preserveHost bool) *Request {
	c := r.with(r.msg.copy())
	c.uri = u
	if preserveHost && r.msg.headers.First("Host") != "" {
		return c
	}
	c.updateHost()
	return c
}

// ProtocolVersion returns the HTTP version, e.g. "1.1".
func (r *Request) ProtocolVersion() string { return r.msg.version }

// WithProtocolVersion returns a copy of r with a different HTTP version.
func (r *Request) WithProtocolVersion(v string) (*Request, error) {
	m, err := r.msg.withProtocolVersion(v)
	if err != nil {
		return nil, err
	}
	return r.with(m), nil
}

// Headers returns a copy of the header store.
func (r *Request) Headers() Headers { return r.msg.headers.Clone() }

// HasHeader reports whether the header exists (case-insensitive).
func (r *Request) HasHeader(name string) bool { return r.msg.headers.Has(name) }

// Header returns the values of the header, or nil.
func (r *Request) Header(name string) []string { return r.msg.headers.Get(name) }

// HeaderLine returns the values of the header joined with ", ".
func (r *Request) HeaderLine(name string) string { return r.msg.headers.Line(name) }

// WithHeader returns a copy of r with the header replaced.
func (r *Request) WithHeader(name string, values ...string) (*Request, error) {
	m, err := r.msg.withHeader(name, values)
	if err != nil {
		return nil, err
	}
	return r.with(m), nil
}

// WithAddedHeader returns a copy of r with values appended to the header.
func (r *Request) WithAddedHeader(name string, values ...string) (*Request, error) {
	m, err := r.msg.withAddedHeader(name, values)
	if err != nil {
		return nil, err
	}
	return r.with(m), nil
}

// WithoutHeader returns a copy of r without the header.
func (r *Request) WithoutHeader(name string) *Request {
	return r.with(r.msg.withoutHeader(name))
}

// Body returns the body stream.
func (r *Request) Body() stream.Stream { return r.msg.body }

// WithBody returns a copy of r holding body. A nil body means empty.
func (r *Request) WithBody(body stream.Stream) *Request {
	return r.with(r.msg.withBody(body))
}

// Attribute returns a request attribute set by an earlier layer.
func (r *Request) Attribute(key string) (interface{}, bool) {
	return r.attributes.Get(key)
}

// Attributes returns a copy of all request attributes.
func (r *Request) Attributes() Attributes { return r.attributes.Clone() }

// WithAttribute returns a copy of r with the attribute set.
func (r *Request) WithAttribute(key string, value interface{}) *Request {
	c := r.with(r.msg.copy())
	c.attributes.Set(key, value)
	return c
}

// WithoutAttribute returns a copy of r without the attribute.
func (r *Request) WithoutAttribute(key string) *Request {
	c := r.with(r.msg.copy())
	c.attributes.Remove(key)
	return c
}

// QueryParams parses the URI query.
func (r *Request) QueryParams() (url.Values, error) {
	return url.ParseQuery(r.uri.Query())
}

// Cookies parses the Cookie header into name/value pairs, in order.
// Malformed pairs are skipped.
func (r *Request) Cookies() Attributes {
	var out Attributes
	for _, line := range r.msg.headers.Get("Cookie") {
		for _, pair := range strings.Split(line, ";") {
			pair = strings.TrimSpace(pair)
			eq := strings.IndexByte(pair, '=')
			if eq <= 0 {
				continue
			}
			name := pair[:eq]
			value := strings.Trim(pair[eq+1:], `"`)
			if v, err := url.QueryUnescape(value); err == nil {
				value = v
			}
			if !out.Has(name) {
				out.Set(name, value)
			}
		}
	}
	return out
}

var _ Message = (*Request)(nil)
