package http

import (
	"github.com/shapestone/shape-message/pkg/stream"
)

// appendRequest serializes a Request to wire format: request line,
// headers, blank line, body.
func appendRequest(buf []byte, req *Request) ([]byte, error) {
	buf = appendRequestLine(buf, req.method, req.RequestTarget(), req.msg.version)
	buf = appendHeaders(buf, req.msg.headers)
	buf = appendCRLF(buf)
	return appendBody(buf, req.msg.body)
}

// appendResponse serializes a Response to wire format: status line,
// headers, blank line, body.
func appendResponse(buf []byte, resp *Response) ([]byte, error) {
	buf = appendStatusLine(buf, resp.msg.version, resp.status)
	buf = appendHeaders(buf, resp.msg.headers)
	buf = appendCRLF(buf)
	return appendBody(buf, resp.msg.body)
}

func appendBody(buf []byte, body stream.Stream) ([]byte, error) {
	if body == nil {
		return buf, nil
	}
	data, err := stream.Snapshot(body)
	if err != nil {
		return nil, err
	}
	return append(buf, data...), nil
}
