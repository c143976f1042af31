package stream

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// statter is implemented by handles that can report their size, such as
// *os.File.
type statter interface {
	Stat() (os.FileInfo, error)
}

// Handle adapts a caller-owned handle to the Stream contract. The handle
// may implement any combination of io.Reader, io.Writer, io.Seeker and
// io.Closer; the open mode further restricts what is allowed.
type Handle struct {
	h        any
	mode     string
	readable bool
	writable bool
	eof      bool
}

// Wrap adapts h using an fopen-style mode: "r", "w", "a", "x" or "c", with
// optional "+" (read and write) and "b"/"t" flags. A capability granted by
// the mode but missing from h is reported as unsupported.
func Wrap(h any, mode string) (*Handle, error) {
	if h == nil {
		return nil, errors.Wrap(ErrUnavailable, "stream: nil handle")
	}
	readable, writable, err := parseMode(mode)
	if err != nil {
		return nil, err
	}
	_, canRead := h.(io.Reader)
	_, canWrite := h.(io.Writer)
	return &Handle{
		h:        h,
		mode:     mode,
		readable: readable && canRead,
		writable: writable && canWrite,
	}, nil
}

func parseMode(mode string) (readable, writable bool, err error) {
	base := strings.TrimRight(mode, "bt+")
	plus := strings.Contains(mode, "+")
	switch base {
	case "r":
		return true, plus, nil
	case "w", "a", "x", "c":
		return plus, true, nil
	default:
		return false, false, errors.Wrapf(ErrInvalidMode, "%q", mode)
	}
}

// Mode returns the mode the handle was wrapped with.
func (s *Handle) Mode() string { return s.mode }

func (s *Handle) require() error {
	if s.h == nil {
		return ErrUnavailable
	}
	return nil
}

func (s *Handle) seeker() (io.Seeker, bool) {
	sk, ok := s.h.(io.Seeker)
	return sk, ok
}

// Read implements Stream.
func (s *Handle) Read(n int) ([]byte, error) {
	if err := s.require(); err != nil {
		return nil, err
	}
	if !s.readable {
		return nil, ErrNotReadable
	}
	if n < 0 {
		return nil, errors.Errorf("stream: negative read length %d", n)
	}
	// n is a limit, not an allocation size.
	var buf bytes.Buffer
	got, err := io.CopyN(&buf, s.h.(io.Reader), int64(n))
	switch {
	case err == io.EOF && got == 0:
		s.eof = true
		return nil, io.EOF
	case err == io.EOF:
		s.eof = true
		return buf.Bytes(), nil
	case err != nil:
		return buf.Bytes(), errors.Wrap(err, "stream: read")
	}
	return buf.Bytes(), nil
}

// Write implements Stream.
func (s *Handle) Write(p []byte) (int, error) {
	if err := s.require(); err != nil {
		return 0, err
	}
	if !s.writable {
		return 0, ErrNotWritable
	}
	n, err := s.h.(io.Writer).Write(p)
	if err != nil {
		return n, errors.Wrap(err, "stream: write")
	}
	return n, nil
}

// Size implements Stream. The size is taken from Stat when available,
// otherwise from seeking to the end and back.
func (s *Handle) Size() (int64, bool) {
	if s.h == nil {
		return 0, false
	}
	if st, ok := s.h.(statter); ok {
		if fi, err := st.Stat(); err == nil && fi.Mode().IsRegular() {
			return fi.Size(), true
		}
	}
	if sk, ok := s.seeker(); ok {
		cur, err := sk.Seek(0, io.SeekCurrent)
		if err != nil {
			return 0, false
		}
		end, err := sk.Seek(0, io.SeekEnd)
		if err != nil {
			return 0, false
		}
		if _, err := sk.Seek(cur, io.SeekStart); err != nil {
			return 0, false
		}
		return end, true
	}
	return 0, false
}

// Seek implements Stream.
func (s *Handle) Seek(offset int64, whence int) error {
	if err := s.require(); err != nil {
		return err
	}
	sk, ok := s.seeker()
	if !ok {
		return ErrNotSeekable
	}
	if _, err := sk.Seek(offset, whence); err != nil {
		return errors.Wrap(err, "stream: seek")
	}
	s.eof = false
	return nil
}

// Tell implements Stream.
func (s *Handle) Tell() (int64, error) {
	if err := s.require(); err != nil {
		return 0, err
	}
	sk, ok := s.seeker()
	if !ok {
		return 0, ErrNotSeekable
	}
	pos, err := sk.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, errors.Wrap(err, "stream: tell")
	}
	return pos, nil
}

// Rewind implements Stream.
func (s *Handle) Rewind() error {
	return s.Seek(0, io.SeekStart)
}

// EOF implements Stream. It reports true once a read has hit the end, and
// always for a detached handle.
func (s *Handle) EOF() bool {
	return s.h == nil || s.eof
}

// IsReadable implements Stream.
func (s *Handle) IsReadable() bool { return s.h != nil && s.readable }

// IsWritable implements Stream.
func (s *Handle) IsWritable() bool { return s.h != nil && s.writable }

// IsSeekable implements Stream.
func (s *Handle) IsSeekable() bool {
	if s.h == nil {
		return false
	}
	_, ok := s.seeker()
	return ok
}

// Contents implements Stream.
func (s *Handle) Contents() ([]byte, error) {
	if err := s.require(); err != nil {
		return nil, err
	}
	if !s.readable {
		return nil, ErrNotReadable
	}
	data, err := io.ReadAll(s.h.(io.Reader))
	if err != nil {
		return data, errors.Wrap(err, "stream: read contents")
	}
	s.eof = true
	return data, nil
}

// Detach implements Stream.
func (s *Handle) Detach() any {
	h := s.h
	s.h = nil
	s.readable = false
	s.writable = false
	return h
}

// Close implements Stream. It closes the handle if it is an io.Closer.
func (s *Handle) Close() error {
	h := s.Detach()
	if c, ok := h.(io.Closer); ok {
		return errors.Wrap(c.Close(), "stream: close")
	}
	return nil
}

// String implements Stream.
func (s *Handle) String() string {
	if !s.IsReadable() {
		return ""
	}
	data, err := ReadAll(s)
	if err != nil {
		return ""
	}
	return string(data)
}
