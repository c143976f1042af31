// Package uriparser implements an RFC 3986 URI-reference parser.
//
// Input is lexed by the internal tokenizer into gen-delim and text tokens,
// then assembled into the generic components:
//
//	scheme ":" [ "//" authority ] path [ "?" query ] [ "#" fragment ]
//
// Each optional component carries an explicit presence flag so callers can
// tell "http://host" (no query) from "http://host?" (empty query).
package uriparser

// Part is an optional URI component.
// Present is false when the component did not occur in the input at all;
// a present component may still have an empty Value.
type Part struct {
	Value   string
	Present bool
}

// present returns a Part that occurred in the input.
func present(v string) Part {
	return Part{Value: v, Present: true}
}

// HostKind classifies the host subcomponent of an authority.
type HostKind int

const (
	HostNone      HostKind = iota // no authority, or an empty host
	HostIPLiteral                 // [IPv6address] or [IPvFuture]
	HostIPv4                      // dotted-decimal IPv4address
	HostRegName                   // registered name
)

func (k HostKind) String() string {
	switch k {
	case HostIPLiteral:
		return "ip-literal"
	case HostIPv4:
		return "ipv4"
	case HostRegName:
		return "reg-name"
	default:
		return "none"
	}
}

// Components holds the decomposed parts of a URI-reference.
//
// UserInfo, Host and Port are only present when Authority is present.
// Path is always present, possibly empty.
type Components struct {
	Scheme    Part
	Authority Part
	UserInfo  Part
	Host      Part
	HostKind  HostKind
	Port      Part
	Path      string
	Query     Part
	Fragment  Part
}
