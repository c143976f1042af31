package stream

import (
	"io"

	"github.com/pkg/errors"
)

// Buffer is an in-memory stream that is readable, writable and seekable.
// Writes overwrite from the current position and extend the buffer as
// needed, like a file opened with "r+".
type Buffer struct {
	data     []byte
	pos      int64
	attached bool
}

// NewBuffer returns a stream over a copy of b, positioned at the start.
func NewBuffer(b []byte) *Buffer {
	data := make([]byte, len(b))
	copy(data, b)
	return &Buffer{data: data, attached: true}
}

// NewString returns a stream over s, positioned at the start.
func NewString(s string) *Buffer {
	return &Buffer{data: []byte(s), attached: true}
}

// Empty returns an empty in-memory stream.
func Empty() *Buffer {
	return &Buffer{attached: true}
}

func (b *Buffer) require() error {
	if !b.attached {
		return ErrUnavailable
	}
	return nil
}

// Read implements Stream.
func (b *Buffer) Read(n int) ([]byte, error) {
	if err := b.require(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errors.Errorf("stream: negative read length %d", n)
	}
	if b.pos >= int64(len(b.data)) {
		return nil, io.EOF
	}
	if remaining := int64(len(b.data)) - b.pos; int64(n) > remaining {
		n = int(remaining)
	}
	end := b.pos + int64(n)
	out := make([]byte, n)
	copy(out, b.data[b.pos:end])
	b.pos = end
	return out, nil
}

// Write implements Stream.
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.require(); err != nil {
		return 0, err
	}
	end := b.pos + int64(len(p))
	if end > int64(len(b.data)) {
		grown := make([]byte, end)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[b.pos:end], p)
	b.pos = end
	return len(p), nil
}

// Size implements Stream. It is unknown once detached.
func (b *Buffer) Size() (int64, bool) {
	if !b.attached {
		return 0, false
	}
	return int64(len(b.data)), true
}

// Seek implements Stream.
func (b *Buffer) Seek(offset int64, whence int) error {
	if err := b.require(); err != nil {
		return err
	}
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = b.pos + offset
	case io.SeekEnd:
		abs = int64(len(b.data)) + offset
	default:
		return errors.Errorf("stream: invalid whence %d", whence)
	}
	if abs < 0 {
		return errors.Errorf("stream: negative position %d", abs)
	}
	b.pos = abs
	return nil
}

// Tell implements Stream.
func (b *Buffer) Tell() (int64, error) {
	if err := b.require(); err != nil {
		return 0, err
	}
	return b.pos, nil
}

// Rewind implements Stream.
func (b *Buffer) Rewind() error {
	return b.Seek(0, io.SeekStart)
}

// EOF implements Stream. A detached buffer is always at EOF.
func (b *Buffer) EOF() bool {
	return !b.attached || b.pos >= int64(len(b.data))
}

// IsReadable implements Stream.
func (b *Buffer) IsReadable() bool { return b.attached }

// IsWritable implements Stream.
func (b *Buffer) IsWritable() bool { return b.attached }

// IsSeekable implements Stream.
func (b *Buffer) IsSeekable() bool { return b.attached }

// Contents implements Stream.
func (b *Buffer) Contents() ([]byte, error) {
	if err := b.require(); err != nil {
		return nil, err
	}
	if b.pos >= int64(len(b.data)) {
		return []byte{}, nil
	}
	out := make([]byte, int64(len(b.data))-b.pos)
	copy(out, b.data[b.pos:])
	b.pos = int64(len(b.data))
	return out, nil
}

// Bytes returns a copy of the whole content without moving the position.
// It only reads, so concurrent Bytes and String calls are safe as long as
// nothing writes to the buffer.
func (b *Buffer) Bytes() ([]byte, error) {
	if err := b.require(); err != nil {
		return nil, err
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out, nil
}

// Detach implements Stream. The returned value is the backing []byte.
func (b *Buffer) Detach() any {
	if !b.attached {
		return nil
	}
	data := b.data
	b.data = nil
	b.pos = 0
	b.attached = false
	return data
}

// Close implements Stream.
func (b *Buffer) Close() error {
	b.Detach()
	return nil
}

// String implements Stream.
func (b *Buffer) String() string {
	if !b.attached {
		return ""
	}
	return string(b.data)
}
