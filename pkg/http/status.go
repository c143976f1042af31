package http

import (
	"fmt"
	"strconv"
)

// Status code bounds.
const (
	MinStatusCode = 100
	MaxStatusCode = 599
)

var statusText = map[int]string{
	// Informational 1xx
	100: "Continue",
	101: "Switching Protocols",
	102: "Processing",
	103: "Early Hints",

	// Successful 2xx
	200: "OK",
	201: "Created",
	202: "Accepted",
	203: "Non-Authoritative Information",
	204: "No Content",
	205: "Reset Content",
	206: "Partial Content",
	207: "Multi-Status",
	208: "Already Reported",
	226: "IM Used",

	// Redirection 3xx
	300: "Multiple Choices",
	301: "Moved Permanently",
	302: "Found",
	303: "See Other",
	304: "Not Modified",
	305: "Use Proxy",
	306: "(Unused)",
	307: "Temporary Redirect",
	308: "Permanent Redirect",

	// Client Error 4xx
	400: "Bad Request",
	401: "Unauthorized",
	402: "Payment Required",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	406: "Not Acceptable",
	407: "Proxy Authentication Required",
	408: "Request Timeout",
	409: "Conflict",
	410: "Gone",
	411: "Length Required",
	412: "Precondition Failed",
	413: "Content Too Large",
	414: "URI Too Long",
	415: "Unsupported Media Type",
	416: "Range Not Satisfiable",
	417: "Expectation Failed",
	418: "I'm a teapot",
	421: "Misdirected Request",
	422: "Unprocessable Content",
	423: "Locked",
	424: "Failed Dependency",
	425: "Too Early",
	426: "Upgrade Required",
	428: "Precondition Required",
	429: "Too Many Requests",
	431: "Request Header Fields Too Large",
	451: "Unavailable For Legal Reasons",

	// Server Error 5xx
	500: "Internal Server Error",
	501: "Not Implemented",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Timeout",
	505: "HTTP Version Not Supported",
	506: "Variant Also Negotiates",
	507: "Insufficient Storage",
	508: "Loop Detected",
	510: "Not Extended",
	511: "Network Authentication Required",
}

// StatusText returns the standard reason phrase for code, or "" if the
// code is not in the table.
func StatusText(code int) string {
	return statusText[code]
}

// Status is a validated status code with its reason phrase.
type Status struct {
	code   int
	reason string
}

// NewStatus validates code and pairs it with reason, or with the standard
// phrase when reason is omitted. A reason containing control characters
// other than HTAB is rejected.
func NewStatus(code int, reason ...string) (Status, error) {
	if code < MinStatusCode || code > MaxStatusCode {
		return Status{}, fmt.Errorf("%w: %d", ErrInvalidStatusCode, code)
	}
	s := Status{code: code, reason: StatusText(code)}
	if len(reason) > 0 {
		return s.WithReason(reason[0])
	}
	return s, nil
}

// ParseStatus parses a three-digit status code such as "404".
// Anything else, including "200.5", " 200" and "600", is rejected.
func ParseStatus(text string) (Status, error) {
	if len(text) != 3 || text[0] < '1' || text[0] > '5' || !isDigit(text[1]) || !isDigit(text[2]) {
		return Status{}, fmt.Errorf("%w: %q", ErrInvalidStatusCode, text)
	}
	code, _ := strconv.Atoi(text)
	return NewStatus(code)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Code returns the numeric status code.
func (s Status) Code() int { return s.code }

// Reason returns the reason phrase.
func (s Status) Reason() string { return s.reason }

// WithReason returns a copy of s with a different reason phrase. The
// phrase is written verbatim into the status line, so CR, LF and other
// control characters except HTAB fail with ErrInvalidReasonPhrase.
func (s Status) WithReason(reason string) (Status, error) {
	if !isValidValue(reason) {
		return Status{}, fmt.Errorf("%w: %q", ErrInvalidReasonPhrase, reason)
	}
	s.reason = reason
	return s, nil
}

// IsInformational reports whether the code is 1xx.
func (s Status) IsInformational() bool { return s.code >= 100 && s.code < 200 }

// IsSuccessful reports whether the code is 2xx.
func (s Status) IsSuccessful() bool { return s.code >= 200 && s.code < 300 }

// IsRedirection reports whether the code is 3xx.
func (s Status) IsRedirection() bool { return s.code >= 300 && s.code < 400 }

// IsClientError reports whether the code is 4xx.
func (s Status) IsClientError() bool { return s.code >= 400 && s.code < 500 }

// IsServerError reports whether the code is 5xx.
func (s Status) IsServerError() bool { return s.code >= 500 && s.code < 600 }

// IsEmpty reports whether responses with this status never carry a body:
// 1xx, 204 and 304.
func (s Status) IsEmpty() bool {
	return s.IsInformational() || s.code == 204 || s.code == 304
}

// String renders "{code} {reason}" exactly as in the status line. An empty
// reason leaves the trailing space, e.g. "299 ".
func (s Status) String() string {
	return strconv.Itoa(s.code) + " " + s.reason
}
