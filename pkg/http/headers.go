package http

import (
	"fmt"
	"strconv"
	"strings"
)

// Field is one logical header: its recorded name and all of its values.
type Field struct {
	Name   string
	Values []string
}

// Headers is an ordered, case-insensitive header store.
//
// Lookups match names case-insensitively. The name casing recorded when a
// header is created is kept by later Add calls; a Set call replaces it with
// the casing of that call. The zero value is an empty store ready to use.
//
// A Headers value shares its storage with copies made by assignment; use
// Clone to get an independent store.
type Headers struct {
	keys   []string          // lowercase names in insertion order
	fields map[string]*Field // lowercase name -> field
}

// NewHeaders builds a store from a map. Map iteration order is random, so
// names are inserted in sorted order for a deterministic result.
func NewHeaders(m map[string][]string) (Headers, error) {
	var h Headers
	for _, name := range sortedKeys(m) {
		if err := h.Add(name, m[name]...); err != nil {
			return Headers{}, err
		}
	}
	return h, nil
}

func normalize(name string) string {
	return strings.ToLower(name)
}

// Has reports whether a header named name exists (case-insensitive).
func (h Headers) Has(name string) bool {
	_, ok := h.fields[normalize(name)]
	return ok
}

// Get returns a copy of the values for name, or nil if absent.
func (h Headers) Get(name string) []string {
	f, ok := h.fields[normalize(name)]
	if !ok {
		return nil
	}
	vals := make([]string, len(f.Values))
	copy(vals, f.Values)
	return vals
}

// First returns the first value for name, or "" if absent.
func (h Headers) First(name string) string {
	f, ok := h.fields[normalize(name)]
	if !ok || len(f.Values) == 0 {
		return ""
	}
	return f.Values[0]
}

// Line returns all values for name joined with ", " in insertion order,
// or "" if absent.
func (h Headers) Line(name string) string {
	f, ok := h.fields[normalize(name)]
	if !ok {
		return ""
	}
	return strings.Join(f.Values, ", ")
}

// Name returns the recorded casing for name, or "" if absent.
func (h Headers) Name(name string) string {
	f, ok := h.fields[normalize(name)]
	if !ok {
		return ""
	}
	return f.Name
}

// Set replaces all values of the logical header name and records name's
// casing. An existing header keeps its position.
func (h *Headers) Set(name string, values ...string) error {
	if err := validateField(name, values); err != nil {
		return err
	}
	h.set(name, values)
	return nil
}

// Add appends values to the logical header name, creating it if needed.
// The casing of an existing header is left unchanged.
func (h *Headers) Add(name string, values ...string) error {
	if err := validateField(name, values); err != nil {
		return err
	}
	key := normalize(name)
	if f, ok := h.fields[key]; ok {
		f.Values = append(f.Values, values...)
		return nil
	}
	h.set(name, values)
	return nil
}

// set stores a field without validation; callers pass trusted names.
func (h *Headers) set(name string, values []string) {
	key := normalize(name)
	vals := make([]string, len(values))
	copy(vals, values)

	if f, ok := h.fields[key]; ok {
		f.Name = name
		f.Values = vals
		return
	}
	if h.fields == nil {
		h.fields = make(map[string]*Field)
	}
	h.fields[key] = &Field{Name: name, Values: vals}
	h.keys = append(h.keys, key)
}

// Del removes the logical header name. Removing an absent header is a no-op.
func (h *Headers) Del(name string) {
	key := normalize(name)
	if _, ok := h.fields[key]; !ok {
		return
	}
	delete(h.fields, key)
	for i, k := range h.keys {
		if k == key {
			h.keys = append(h.keys[:i:i], h.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of logical headers.
func (h Headers) Len() int {
	return len(h.keys)
}

// Names returns the recorded header names in insertion order.
func (h Headers) Names() []string {
	names := make([]string, len(h.keys))
	for i, k := range h.keys {
		names[i] = h.fields[k].Name
	}
	return names
}

// Fields returns a copy of every logical header in insertion order.
func (h Headers) Fields() []Field {
	out := make([]Field, len(h.keys))
	for i, k := range h.keys {
		f := h.fields[k]
		vals := make([]string, len(f.Values))
		copy(vals, f.Values)
		out[i] = Field{Name: f.Name, Values: vals}
	}
	return out
}

// Map returns a copy of the store keyed by recorded name.
func (h Headers) Map() map[string][]string {
	m := make(map[string][]string, len(h.keys))
	for _, f := range h.Fields() {
		m[f.Name] = f.Values
	}
	return m
}

// Clone returns a deep copy of the store.
func (h Headers) Clone() Headers {
	if h.fields == nil {
		return Headers{}
	}
	c := Headers{
		keys:   make([]string, len(h.keys)),
		fields: make(map[string]*Field, len(h.fields)),
	}
	copy(c.keys, h.keys)
	for k, f := range h.fields {
		vals := make([]string, len(f.Values))
		copy(vals, f.Values)
		c.fields[k] = &Field{Name: f.Name, Values: vals}
	}
	return c
}

// ContentLength returns the Content-Length value, or -1 if absent or invalid.
func (h Headers) ContentLength() int64 {
	v := h.First("Content-Length")
	if v == "" {
		return -1
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// IsChunked reports whether Transfer-Encoding contains "chunked".
func (h Headers) IsChunked() bool {
	return strings.Contains(strings.ToLower(h.Line("Transfer-Encoding")), "chunked")
}

// String renders the store in wire format, one "Name: v1, v2\r\n" line per
// logical header.
func (h Headers) String() string {
	return string(appendHeaders(nil, h))
}

// HeaderValues converts an untyped header value into a list of strings.
// Only a string or a list of strings is accepted.
func HeaderValues(v interface{}) ([]string, error) {
	switch val := v.(type) {
	case string:
		return []string{val}, nil
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out, nil
	case []interface{}:
		out := make([]string, len(val))
		for i, e := range val {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("%w: element %d is %T, want string", ErrInvalidHeaderValue, i, e)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T is not a string or list of strings", ErrInvalidHeaderValue, v)
	}
}

// -----------------------------------------------------------------------------
// Validation
// -----------------------------------------------------------------------------

func validateField(name string, values []string) error {
	if !isToken(name) {
		return fmt.Errorf("%w: %q", ErrInvalidHeaderName, name)
	}
	for _, v := range values {
		if !isValidValue(v) {
			return fmt.Errorf("%w: %q", ErrInvalidHeaderValue, v)
		}
	}
	return nil
}

// isToken reports whether s is a valid RFC 7230 §3.2.6 token, as used for
// header field names and methods.
// Allowed characters: A–Z a–z 0–9 ! # $ % & ' * + - . ^ _ ` | ~
func isToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z',
			c >= 'a' && c <= 'z',
			c >= '0' && c <= '9',
			c == '!', c == '#', c == '$', c == '%', c == '&', c == '\'',
			c == '*', c == '+', c == '-', c == '.', c == '^', c == '_',
			c == '`', c == '|', c == '~':
			continue
		default:
			return false
		}
	}
	return true
}

// isValidValue checks that a value contains no CTL except HTAB
// (RFC 7230 §3.2.6), which also rules out CR/LF header injection.
func isValidValue(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\t' {
			continue
		}
		if c < 32 || c == 127 {
			return false
		}
	}
	return true
}
