package uriparser

// Character classes from RFC 3986 §2 and Appendix A.

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

// isUnreserved: ALPHA / DIGIT / "-" / "." / "_" / "~"
func isUnreserved(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '-' || c == '.' || c == '_' || c == '~'
}

// isSubDelim: "!" / "$" / "&" / "'" / "(" / ")" / "*" / "+" / "," / ";" / "="
func isSubDelim(c byte) bool {
	switch c {
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=':
		return true
	}
	return false
}

// scan checks s against unreserved / sub-delims / pct-encoded / extra.
// Octets >= 0x80 are accepted as UTF-8 data. It returns the offset of the
// first offending byte, or -1 if s is valid.
func scan(s string, extra string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 0x80, isUnreserved(c), isSubDelim(c):
			continue
		case c == '%':
			if i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2]) {
				return i
			}
			i += 2
		case indexByte(extra, c) >= 0:
			continue
		default:
			return i
		}
	}
	return -1
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

// Extra characters allowed on top of unreserved / sub-delims / pct-encoded.
const (
	userInfoExtra = ":"
	regNameExtra  = ""
	pathExtra     = ":@/"
	queryExtra    = ":@/?"
)

// IsScheme reports whether s matches ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ).
func IsScheme(s string) bool {
	if s == "" || !isAlpha(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isAlpha(c) && !isDigit(c) && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

// IsPort reports whether s is *DIGIT.
func IsPort(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
