// Package uri provides an immutable RFC 3986 URI value.
//
// A URI is parsed once with Parse and thereafter only produces modified
// copies through its With* methods; the receiver is never changed, so a URI
// may be shared between goroutines without locking.
//
// Percent-encoded octets are stored and rendered exactly as given. The
// scheme is normalized to lowercase. A port equal to the scheme's default
// (80 for http, 443 for https) is kept internally but reported as absent by
// Port and omitted from Authority and String.
package uri

import (
	"strconv"
	"strings"

	"github.com/shapestone/shape-message/internal/uriparser"
)

// HostKind classifies the host subcomponent.
type HostKind = uriparser.HostKind

// Host kinds, in recognition order.
const (
	HostNone      = uriparser.HostNone
	HostIPLiteral = uriparser.HostIPLiteral
	HostIPv4      = uriparser.HostIPv4
	HostRegName   = uriparser.HostRegName
)

// MaxPort is the largest valid TCP/UDP port.
const MaxPort = 65535

var defaultPorts = map[string]int{
	"http":  80,
	"https": 443,
}

// DefaultPort returns the well-known port implied by scheme.
func DefaultPort(scheme string) (int, bool) {
	p, ok := defaultPorts[strings.ToLower(scheme)]
	return p, ok
}

// URI is an immutable URI value. The zero value is the empty URI.
type URI struct {
	scheme   string
	userInfo string
	host     string
	hostKind HostKind
	port     int
	hasPort  bool
	path     string
	query    string
	fragment string
}

// Parse parses s into a URI.
func Parse(s string) (URI, error) {
	c, err := uriparser.Parse(s)
	if err != nil {
		return URI{}, newMalformedError(s, err)
	}
	return fromComponents(c)
}

// MustParse is like Parse but panics if s cannot be parsed.
// It is intended for static URIs in tests and variable initialization.
func MustParse(s string) URI {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

func fromComponents(c *uriparser.Components) (URI, error) {
	u := URI{
		scheme:   strings.ToLower(c.Scheme.Value),
		userInfo: c.UserInfo.Value,
		host:     c.Host.Value,
		hostKind: c.HostKind,
		path:     c.Path,
		query:    c.Query.Value,
		fragment: c.Fragment.Value,
	}
	if c.Port.Present && c.Port.Value != "" {
		p, err := parsePort(c.Port.Value)
		if err != nil {
			return URI{}, err
		}
		u.port = p
		u.hasPort = true
	}
	return u, nil
}

func parsePort(s string) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil || p < 0 || p > MaxPort {
		return 0, invalidPort(s)
	}
	return p, nil
}

// Scheme returns the lowercase scheme, or "" if none.
func (u URI) Scheme() string { return u.scheme }

// UserInfo returns "user[:password]", or "" if none.
func (u URI) UserInfo() string { return u.userInfo }

// Host returns the host, including brackets for IP-literals.
func (u URI) Host() string { return u.host }

// HostKind reports how the host was recognized.
func (u URI) HostKind() HostKind { return u.hostKind }

// Path returns the path, possibly empty.
func (u URI) Path() string { return u.path }

// Query returns the query without the leading "?".
func (u URI) Query() string { return u.query }

// Fragment returns the fragment without the leading "#".
func (u URI) Fragment() string { return u.fragment }

// Port returns the logical port. It reports false when no port is set or
// when the port is the default for the scheme.
func (u URI) Port() (int, bool) {
	if !u.hasPort {
		return 0, false
	}
	if def, ok := defaultPorts[u.scheme]; ok && def == u.port {
		return 0, false
	}
	return u.port, true
}

// RawPort returns the stored port regardless of default-port elision.
func (u URI) RawPort() (int, bool) {
	return u.port, u.hasPort
}

// Authority returns "[userinfo@]host[:port]". It is "" only when host,
// userinfo and the logical port are all absent.
func (u URI) Authority() string {
	p, hasPort := u.Port()
	if u.host == "" && u.userInfo == "" && !hasPort {
		return ""
	}
	var sb strings.Builder
	if u.userInfo != "" {
		sb.WriteString(u.userInfo)
		sb.WriteByte('@')
	}
	sb.WriteString(u.host)
	if hasPort {
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(p))
	}
	return sb.String()
}

// IsAbsolute reports whether the URI has a scheme.
func (u URI) IsAbsolute() bool { return u.scheme != "" }

// IsZero reports whether every component is empty.
func (u URI) IsZero() bool { return u == URI{} }

// Equal reports whether u and v have the same logical components.
func (u URI) Equal(v URI) bool {
	up, uok := u.Port()
	vp, vok := v.Port()
	return u.scheme == v.scheme &&
		u.userInfo == v.userInfo &&
		u.host == v.host &&
		up == vp && uok == vok &&
		u.path == v.path &&
		u.query == v.query &&
		u.fragment == v.fragment
}
