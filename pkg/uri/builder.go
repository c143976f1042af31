package uri

import (
	"strings"

	"github.com/shapestone/shape-message/internal/uriparser"
)

// Parts holds already-decomposed URI values, such as those taken from a
// server environment snapshot. A zero Port means no port.
type Parts struct {
	Scheme   string
	User     string
	Password string
	Host     string
	Port     int
	Path     string
	Query    string
	Fragment string
}

// FromParts validates p and builds a URI from it.
func FromParts(p Parts) (URI, error) {
	var u URI
	var err error

	if u, err = u.WithScheme(p.Scheme); err != nil {
		return URI{}, err
	}
	if u, err = u.WithUserInfo(p.User, p.Password); err != nil {
		return URI{}, err
	}
	if u, err = u.WithHost(p.Host); err != nil {
		return URI{}, err
	}
	if p.Port != 0 {
		if u, err = u.WithPort(p.Port); err != nil {
			return URI{}, err
		}
	}
	if u, err = u.WithPath(p.Path); err != nil {
		return URI{}, err
	}
	if u, err = u.WithQuery(p.Query); err != nil {
		return URI{}, err
	}
	if u, err = u.WithFragment(p.Fragment); err != nil {
		return URI{}, err
	}
	return u, nil
}

// WithScheme returns a copy of u with the given scheme; "" removes it.
func (u URI) WithScheme(scheme string) (URI, error) {
	if scheme != "" && !uriparser.IsScheme(scheme) {
		return URI{}, invalidComponent("scheme", &uriparser.Error{Message: "invalid scheme " + scheme})
	}
	u.scheme = strings.ToLower(scheme)
	return u, nil
}

// WithUserInfo returns a copy of u with the given user and optional password.
// The values are used verbatim and must already be percent-encoded; "@",
// "/", "?", "#" and brackets are rejected.
func (u URI) WithUserInfo(user, password string) (URI, error) {
	info := user
	if user != "" && password != "" {
		info += ":" + password
	}
	if err := uriparser.ValidateUserInfo(info); err != nil {
		return URI{}, invalidComponent("userinfo", err)
	}
	u.userInfo = info
	return u, nil
}

// WithHost returns a copy of u with the given host; "" removes it.
func (u URI) WithHost(host string) (URI, error) {
	kind, err := uriparser.ValidateHost(host)
	if err != nil {
		return URI{}, invalidComponent("host", err)
	}
	u.host = host
	u.hostKind = kind
	return u, nil
}

// WithPort returns a copy of u with the given port.
func (u URI) WithPort(port int) (URI, error) {
	if port < 0 || port > MaxPort {
		return URI{}, invalidPort(port)
	}
	u.port = port
	u.hasPort = true
	return u, nil
}

// WithoutPort returns a copy of u with no port.
func (u URI) WithoutPort() URI {
	u.port = 0
	u.hasPort = false
	return u
}

// WithPath returns a copy of u with the given path.
func (u URI) WithPath(path string) (URI, error) {
	if err := uriparser.ValidatePath(path, 0); err != nil {
		return URI{}, invalidComponent("path", err)
	}
	u.path = path
	return u, nil
}

// WithQuery returns a copy of u with the given query; a leading "?" is
// not part of the value.
func (u URI) WithQuery(query string) (URI, error) {
	if err := uriparser.ValidateQuery(query, 0); err != nil {
		return URI{}, invalidComponent("query", err)
	}
	u.query = query
	return u, nil
}

// WithFragment returns a copy of u with the given fragment.
func (u URI) WithFragment(fragment string) (URI, error) {
	if err := uriparser.ValidateQuery(fragment, 0); err != nil {
		return URI{}, invalidComponent("fragment", err)
	}
	u.fragment = fragment
	return u, nil
}

// RequestTarget returns path[?query] in origin-form, "/" for an empty path.
func (u URI) RequestTarget() string {
	target := u.path
	if target == "" {
		target = "/"
	}
	if u.query != "" {
		target += "?" + u.query
	}
	return target
}

// String reassembles the URI per RFC 3986 §5.3.
func (u URI) String() string {
	return build(u.scheme, u.Authority(), u.path, u.query, u.fragment)
}

// build composes a URI reference from its components.
//   - A rootless path is prefixed with "/" when an authority is present.
//   - Leading slashes are reduced to one when there is no authority, so the
//     path cannot be mistaken for one.
func build(scheme, authority, path, query, fragment string) string {
	var sb strings.Builder

	if scheme != "" {
		sb.WriteString(scheme)
		sb.WriteByte(':')
	}

	if authority != "" {
		sb.WriteString("//")
		sb.WriteString(authority)
		if path != "" && path[0] != '/' {
			sb.WriteByte('/')
		}
		sb.WriteString(path)
	} else if strings.HasPrefix(path, "//") {
		sb.WriteByte('/')
		sb.WriteString(strings.TrimLeft(path, "/"))
	} else {
		sb.WriteString(path)
	}

	if query != "" {
		sb.WriteByte('?')
		sb.WriteString(query)
	}

	if fragment != "" {
		sb.WriteByte('#')
		sb.WriteString(fragment)
	}

	return sb.String()
}
