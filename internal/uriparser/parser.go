package uriparser

import (
	"net/netip"
	"strings"
	"unicode/utf8"

	coretok "github.com/shapestone/shape-core/pkg/tokenizer"

	"github.com/shapestone/shape-message/internal/tokenizer"
)

// Parser assembles URI components from a token stream.
type Parser struct {
	input  string
	tokens []coretok.Token
	pos    int // index into tokens
	offset int // byte offset of tokens[pos] in input
}

// NewParser creates a parser for the given input.
func NewParser(input string) *Parser {
	return &Parser{input: input}
}

// Parse decomposes text into its URI components.
func Parse(text string) (*Components, error) {
	return NewParser(text).Parse()
}

// Parse runs the parser over its input.
func (p *Parser) Parse() (*Components, error) {
	if !utf8.ValidString(p.input) {
		return nil, errorAt(0, "input is not valid UTF-8")
	}

	tokens, eos := tokenizer.Tokenize(p.input)
	if !eos {
		consumed := 0
		for _, t := range tokens {
			consumed += len(t.ValueString())
		}
		return nil, errorAt(consumed, "unexpected character")
	}
	p.tokens = tokens
	p.pos = 0
	p.offset = 0

	c := &Components{}

	if err := p.parseScheme(c); err != nil {
		return nil, err
	}
	if err := p.parseAuthority(c); err != nil {
		return nil, err
	}
	if err := p.parsePath(c); err != nil {
		return nil, err
	}
	if err := p.parseQuery(c); err != nil {
		return nil, err
	}
	if err := p.parseFragment(c); err != nil {
		return nil, err
	}

	return c, nil
}

// parseScheme consumes "scheme:" when the first text run is a valid scheme.
func (p *Parser) parseScheme(c *Components) error {
	if len(p.tokens) < 2 {
		return nil
	}
	if p.tokens[0].Kind() != tokenizer.TokenText || p.tokens[1].Kind() != tokenizer.TokenColon {
		return nil
	}
	name := p.tokens[0].ValueString()
	if !IsScheme(name) {
		// Not a scheme; the path-noscheme check rejects it later.
		return nil
	}
	c.Scheme = present(name)
	p.advance()
	p.advance()
	return nil
}

// parseAuthority consumes "//" authority.
func (p *Parser) parseAuthority(c *Components) error {
	if !p.peekIs(0, tokenizer.TokenSlash) || !p.peekIs(1, tokenizer.TokenSlash) {
		return nil
	}
	p.advance()
	p.advance()

	start := p.offset
	raw := p.collect(tokenizer.TokenSlash, tokenizer.TokenQuestion, tokenizer.TokenHash)
	c.Authority = present(raw)

	rest := raw
	if at := strings.IndexByte(rest, '@'); at >= 0 {
		info := rest[:at]
		if bad := scan(info, userInfoExtra); bad >= 0 {
			return errorAt(start+bad, "invalid character %q in userinfo", info[bad])
		}
		c.UserInfo = present(info)
		rest = rest[at+1:]
		start += at + 1
	}

	hostText, portText, hasPort, err := splitHostPort(rest, start)
	if err != nil {
		return err
	}

	kind, err := classifyHost(hostText, start)
	if err != nil {
		return err
	}
	c.Host = present(hostText)
	c.HostKind = kind

	if hasPort {
		if !IsPort(portText) {
			return errorAt(start+len(hostText)+1, "invalid port %q", portText)
		}
		c.Port = present(portText)
	}
	return nil
}

// splitHostPort separates host and port, honouring IP-literal brackets.
func splitHostPort(s string, start int) (host, port string, hasPort bool, err error) {
	if strings.HasPrefix(s, "[") {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return "", "", false, errorAt(start, "unterminated IP-literal")
		}
		host = s[:end+1]
		rest := s[end+1:]
		if rest == "" {
			return host, "", false, nil
		}
		if rest[0] != ':' {
			return "", "", false, errorAt(start+end+1, "unexpected %q after IP-literal", rest[0])
		}
		return host, rest[1:], true, nil
	}

	if colon := strings.IndexByte(s, ':'); colon >= 0 {
		return s[:colon], s[colon+1:], true, nil
	}
	return s, "", false, nil
}

// classifyHost applies the recognition order IP-literal > IPv4 > reg-name.
func classifyHost(host string, start int) (HostKind, error) {
	if host == "" {
		return HostNone, nil
	}
	if strings.HasPrefix(host, "[") {
		if err := validateIPLiteral(host[1:len(host)-1], start+1); err != nil {
			return HostNone, err
		}
		return HostIPLiteral, nil
	}
	if IsIPv4(host) {
		return HostIPv4, nil
	}
	if bad := scan(host, regNameExtra); bad >= 0 {
		return HostNone, errorAt(start+bad, "invalid character %q in host", host[bad])
	}
	return HostRegName, nil
}

// ValidateUserInfo checks a standalone userinfo subcomponent.
func ValidateUserInfo(info string) error {
	if bad := scan(info, userInfoExtra); bad >= 0 {
		return errorAt(bad, "invalid character %q in userinfo", info[bad])
	}
	return nil
}

// ValidateHost checks a standalone host subcomponent.
func ValidateHost(host string) (HostKind, error) {
	if strings.HasPrefix(host, "[") {
		if len(host) < 2 || !strings.HasSuffix(host, "]") {
			return HostNone, errorAt(0, "unterminated IP-literal")
		}
	} else if strings.ContainsAny(host, "[]") {
		return HostNone, errorAt(strings.IndexAny(host, "[]"), "unexpected bracket in host")
	}
	return classifyHost(host, 0)
}

func validateIPLiteral(lit string, start int) error {
	if lit == "" {
		return errorAt(start, "empty IP-literal")
	}
	if lit[0] == 'v' || lit[0] == 'V' {
		return validateIPvFuture(lit, start)
	}
	if strings.IndexByte(lit, '%') >= 0 {
		return errorAt(start+strings.IndexByte(lit, '%'), "zone identifiers are not allowed in IPv6address")
	}
	addr, err := netip.ParseAddr(lit)
	if err != nil || !addr.Is6() {
		return errorAt(start, "invalid IPv6address %q", lit)
	}
	return nil
}

// validateIPvFuture checks "v" 1*HEXDIG "." 1*( unreserved / sub-delims / ":" ).
func validateIPvFuture(lit string, start int) error {
	dot := strings.IndexByte(lit, '.')
	if dot < 2 {
		return errorAt(start, "invalid IPvFuture %q", lit)
	}
	for i := 1; i < dot; i++ {
		if !isHex(lit[i]) {
			return errorAt(start+i, "invalid IPvFuture version %q", lit[1:dot])
		}
	}
	tail := lit[dot+1:]
	if tail == "" {
		return errorAt(start+dot, "empty IPvFuture address")
	}
	for i := 0; i < len(tail); i++ {
		c := tail[i]
		if !isUnreserved(c) && !isSubDelim(c) && c != ':' {
			return errorAt(start+dot+1+i, "invalid character %q in IPvFuture", c)
		}
	}
	return nil
}

// IsIPv4 reports whether s is dec-octet "." dec-octet "." dec-octet "." dec-octet.
func IsIPv4(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, part := range parts {
		if !isDecOctet(part) {
			return false
		}
	}
	return true
}

func isDecOctet(s string) bool {
	if len(s) == 0 || len(s) > 3 {
		return false
	}
	if len(s) > 1 && s[0] == '0' {
		return false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n <= 255
}

// parsePath consumes the path up to "?" or "#".
func (p *Parser) parsePath(c *Components) error {
	start := p.offset
	path := p.collect(tokenizer.TokenQuestion, tokenizer.TokenHash)
	if err := ValidatePath(path, start); err != nil {
		return err
	}
	if !c.Scheme.Present && !c.Authority.Present {
		first := path
		if slash := strings.IndexByte(first, '/'); slash >= 0 {
			first = first[:slash]
		}
		if colon := strings.IndexByte(first, ':'); colon >= 0 {
			return errorAt(start+colon, "first path segment of a relative reference contains ':'")
		}
	}
	c.Path = path
	return nil
}

// parseQuery consumes "?" query up to "#".
func (p *Parser) parseQuery(c *Components) error {
	if !p.peekIs(0, tokenizer.TokenQuestion) {
		return nil
	}
	p.advance()
	start := p.offset
	query := p.collect(tokenizer.TokenHash)
	if err := ValidateQuery(query, start); err != nil {
		return err
	}
	c.Query = present(query)
	return nil
}

// parseFragment consumes "#" fragment to the end of input.
func (p *Parser) parseFragment(c *Components) error {
	if !p.peekIs(0, tokenizer.TokenHash) {
		return nil
	}
	p.advance()
	start := p.offset
	fragment := p.collect(tokenizer.TokenHash)
	if p.pos < len(p.tokens) {
		return errorAt(p.offset, "unexpected '#' in fragment")
	}
	if err := ValidateQuery(fragment, start); err != nil {
		return err
	}
	c.Fragment = present(fragment)
	return nil
}

// ValidatePath checks *( pchar / "/" ); start offsets reported positions.
func ValidatePath(path string, start int) error {
	if bad := scan(path, pathExtra); bad >= 0 {
		return errorAt(start+bad, "invalid character %q in path", path[bad])
	}
	return nil
}

// ValidateQuery checks *( pchar / "/" / "?" ), shared by query and fragment.
func ValidateQuery(query string, start int) error {
	if bad := scan(query, queryExtra); bad >= 0 {
		return errorAt(start+bad, "invalid character %q", query[bad])
	}
	return nil
}

// collect concatenates token values until a token of one of the stop kinds.
func (p *Parser) collect(stop ...string) string {
	var sb strings.Builder
	for p.pos < len(p.tokens) {
		kind := p.tokens[p.pos].Kind()
		for _, s := range stop {
			if kind == s {
				return sb.String()
			}
		}
		sb.WriteString(p.tokens[p.pos].ValueString())
		p.advance()
	}
	return sb.String()
}

func (p *Parser) peekIs(ahead int, kind string) bool {
	i := p.pos + ahead
	return i < len(p.tokens) && p.tokens[i].Kind() == kind
}

func (p *Parser) advance() {
	p.offset += len(p.tokens[p.pos].ValueString())
	p.pos++
}
