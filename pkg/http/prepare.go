package http

import (
	"strconv"
	"strings"

	"github.com/shapestone/shape-message/pkg/stream"
)

// Prepare returns a copy of r ready to be written in reply to req.
//
// Bodyless statuses (1xx, 204, 304) lose their body, Content-Type and
// Content-Length. Other responses get a Content-Type (text/html by default)
// with a charset on text types, and a Content-Length from the body size
// unless Transfer-Encoding is set. A HEAD request empties the body but keeps
// Content-Length. The protocol is forced to 1.1 unless req is 1.0, and a
// 1.0 response with Cache-Control: no-cache gains Pragma and Expires.
//
// Neither r nor req is modified. A nil req skips the request-dependent steps.
func (r *Response) Prepare(req *Request) *Response {
	m := r.msg.copy()
	h := &m.headers

	if r.status.IsEmpty() {
		m.body = stream.Empty()
		h.Del("Content-Type")
		h.Del("Content-Length")
	} else {
		prepareContentType(h, r.charset)
		if h.Has("Transfer-Encoding") {
			h.Del("Content-Length")
		} else if !h.Has("Content-Length") {
			if n, ok := m.bodySize(); ok {
				h.set("Content-Length", []string{strconv.FormatInt(n, 10)})
			}
		}
	}

	if req != nil {
		if req.Method() == "HEAD" {
			m.body = stream.Empty()
		}
		if req.ProtocolVersion() != Version10 {
			m.version = Version11
		}
	}

	if m.version == Version10 && strings.Contains(h.Line("Cache-Control"), "no-cache") {
		h.set("Pragma", []string{"no-cache"})
		h.set("Expires", []string{"-1"})
	}

	return r.with(m)
}

func prepareContentType(h *Headers, charset string) {
	if charset == "" {
		charset = DefaultCharset
	}
	if !h.Has("Content-Type") {
		h.set("Content-Type", []string{"text/html; charset=" + charset})
		return
	}
	ct := h.First("Content-Type")
	lower := strings.ToLower(ct)
	if strings.HasPrefix(lower, "text/") && !strings.Contains(lower, "charset=") {
		h.set(h.Name("Content-Type"), []string{ct + "; charset=" + charset})
	}
}
