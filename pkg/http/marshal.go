package http

import (
	"fmt"
	"io"
	"sync"
)

// Marshaler is the interface implemented by types that can marshal
// themselves into HTTP wire format.
type Marshaler interface {
	MarshalHTTP() ([]byte, error)
}

// bufPool pools []byte slices for the encoder fast path.
var bufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, 2048)
		return &b
	},
}

// Marshal returns the wire-format encoding of v, which must be a *Request,
// a *Response or a Marshaler.
//
// Headers are written as stored; Marshal adds none. Call Prepare first to
// get Content-Type and Content-Length. In-memory (*stream.Buffer) bodies are
// copied in full without moving their position, so concurrent Marshal calls
// on a shared value are safe. Other bodies are rewound when seekable and
// read, which consumes them.
func Marshal(v interface{}) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("http: Marshal(nil)")
	}

	if m, ok := v.(Marshaler); ok {
		return m.MarshalHTTP()
	}

	bp := bufPool.Get().(*[]byte)
	buf := (*bp)[:0]
	defer func() {
		*bp = buf[:0]
		bufPool.Put(bp)
	}()

	var (
		out []byte
		err error
	)
	switch msg := v.(type) {
	case *Request:
		out, err = appendRequest(buf, msg)
	case *Response:
		out, err = appendResponse(buf, msg)
	default:
		return nil, fmt.Errorf("http: Marshal unsupported type %T (expected *Request or *Response)", v)
	}
	if err != nil {
		return nil, err
	}
	buf = out

	result := make([]byte, len(buf))
	copy(result, buf)
	return result, nil
}

// Encoder writes HTTP messages to an output stream.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the wire-format encoding of v to the stream.
func (enc *Encoder) Encode(v interface{}) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	_, err = enc.w.Write(data)
	return err
}

// String returns the wire format of r, or "" if its body cannot be read.
func (r *Request) String() string {
	b, err := Marshal(r)
	if err != nil {
		return ""
	}
	return string(b)
}

// String returns the wire format of r, or "" if its body cannot be read.
func (r *Response) String() string {
	b, err := Marshal(r)
	if err != nil {
		return ""
	}
	return string(b)
}
