// Package stream defines the byte-stream contract used as an HTTP message
// body, with an in-memory implementation and an adapter over caller-owned
// handles.
//
// Every operation first checks that the stream is still attached, then
// that it supports the requested capability, and fails fast with a typed
// error instead of silently doing nothing.
package stream

import (
	"io"

	"github.com/pkg/errors"
)

// Sentinel errors.
var (
	ErrUnavailable = errors.New("stream: detached or closed")
	ErrNotReadable = errors.New("stream: not readable")
	ErrNotWritable = errors.New("stream: not writable")
	ErrNotSeekable = errors.New("stream: not seekable")
	ErrInvalidMode = errors.New("stream: invalid mode")
)

// Stream is a readable and/or writable byte sequence.
type Stream interface {
	// Read returns up to n bytes. At the end of the stream it returns
	// io.EOF with no data.
	Read(n int) ([]byte, error)
	Write(p []byte) (int, error)

	// Size returns the total size in bytes, if known.
	Size() (int64, bool)

	Seek(offset int64, whence int) error
	Tell() (int64, error)
	Rewind() error
	EOF() bool

	IsReadable() bool
	IsWritable() bool
	IsSeekable() bool

	// Contents returns the bytes from the current position to the end.
	Contents() ([]byte, error)

	// Detach separates the underlying handle from the stream and returns
	// it, leaving the stream unusable. It returns nil if already detached.
	Detach() any
	Close() error

	// String rewinds (when seekable) and returns the whole content, or ""
	// if the content cannot be read.
	String() string
}

// ReadAll rewinds s when possible and returns its whole content.
func ReadAll(s Stream) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	if s.IsSeekable() {
		if err := s.Rewind(); err != nil {
			return nil, err
		}
	}
	return s.Contents()
}

// Snapshot returns the whole content of s. Streams with a Bytes method,
// such as *Buffer, are copied without moving their position; anything else
// falls back to ReadAll.
func Snapshot(s Stream) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	if b, ok := s.(interface{ Bytes() ([]byte, error) }); ok {
		return b.Bytes()
	}
	return ReadAll(s)
}

// Copy writes the remaining content of src to w.
func Copy(w io.Writer, src Stream) (int64, error) {
	data, err := src.Contents()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), errors.Wrap(err, "stream: copy")
}

var (
	_ Stream = (*Buffer)(nil)
	_ Stream = (*Handle)(nil)
)
