package http

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
)

// CookieTimeFormat is the expires= date layout. Times are rendered in UTC.
const CookieTimeFormat = "Mon, 02-Jan-2006 15:04:05 GMT"

// Cookie is a Set-Cookie value (RFC 6265).
type Cookie struct {
	Name     string
	Value    string
	Expires  time.Time // zero means a session cookie
	Path     string
	Domain   string
	Secure   bool
	HTTPOnly bool
}

// NewCookie returns a cookie with path "/" and HttpOnly set.
func NewCookie(name, value string) (Cookie, error) {
	if err := validateCookieName(name); err != nil {
		return Cookie{}, err
	}
	return Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
	}, nil
}

func validateCookieName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidCookieName)
	}
	if strings.ContainsAny(name, "=,; \t\r\n\v\f") {
		return fmt.Errorf("%w: %q contains invalid characters", ErrInvalidCookieName, name)
	}
	return nil
}

// Format renders the cookie as a Set-Cookie header value. A cookie with an
// empty value is rendered as a deletion that expires one second after the
// clock's current time.
func (c Cookie) Format(clk clock.Clock) string {
	var b strings.Builder
	b.WriteString(url.QueryEscape(c.Name))
	b.WriteByte('=')

	if c.Value == "" {
		b.WriteString("deleted; expires=")
		b.WriteString(clk.Now().Add(time.Second).UTC().Format(CookieTimeFormat))
	} else {
		b.WriteString(url.QueryEscape(c.Value))
		if !c.Expires.IsZero() {
			b.WriteString("; expires=")
			b.WriteString(c.Expires.UTC().Format(CookieTimeFormat))
		}
	}

	path := c.Path
	if path == "" {
		path = "/"
	}
	b.WriteString("; path=")
	b.WriteString(path)

	if c.Domain != "" {
		b.WriteString("; domain=")
		b.WriteString(c.Domain)
	}
	if c.Secure {
		b.WriteString("; secure")
	}
	if c.HTTPOnly {
		b.WriteString("; httponly")
	}
	return b.String()
}

// String formats the cookie against the wall clock.
func (c Cookie) String() string {
	return c.Format(clock.New())
}
