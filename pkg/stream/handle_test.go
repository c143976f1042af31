package stream

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readOnly struct{ r io.Reader }

func (r readOnly) Read(p []byte) (int, error) { return r.r.Read(p) }

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

type trackingCloser struct {
	*strings.Reader
	closed bool
}

func (c *trackingCloser) Close() error {
	c.closed = true
	return nil
}

func TestWrap_Modes(t *testing.T) {
	testcases := []struct {
		mode         string
		wantReadable bool
		wantWritable bool
		wantErr      bool
	}{
		{mode: "r", wantReadable: true},
		{mode: "rb", wantReadable: true},
		{mode: "r+", wantReadable: true, wantWritable: true},
		{mode: "w", wantWritable: true},
		{mode: "w+", wantReadable: true, wantWritable: true},
		{mode: "a", wantWritable: true},
		{mode: "x+b", wantReadable: true, wantWritable: true},
		{mode: "c", wantWritable: true},
		{mode: "", wantErr: true},
		{mode: "q", wantErr: true},
	}

	for _, tc := range testcases {
		t.Run(tc.mode, func(t *testing.T) {
			s, err := Wrap(new(bytes.Buffer), tc.mode)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.mode, s.Mode())
			assert.Equal(t, tc.wantReadable, s.IsReadable())
			assert.Equal(t, tc.wantWritable, s.IsWritable())
		})
	}
}

func TestWrap_NilHandle(t *testing.T) {
	_, err := Wrap(nil, "r")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHandle_ReadOnlyRejectsWrite(t *testing.T) {
	s, err := Wrap(strings.NewReader("abc"), "r")
	require.NoError(t, err)

	_, err = s.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrNotWritable)

	got, err := s.Read(2)
	require.NoError(t, err)
	assert.Equal(t, []byte("ab"), got)

	got, err = s.Read(5)
	require.NoError(t, err)
	assert.Equal(t, []byte("c"), got)
	assert.True(t, s.EOF())
}

func TestHandle_WriteOnlyRejectsRead(t *testing.T) {
	var buf bytes.Buffer
	s, err := Wrap(&buf, "w")
	require.NoError(t, err)

	_, err = s.Read(1)
	assert.ErrorIs(t, err, ErrNotReadable)
	_, err = s.Contents()
	assert.ErrorIs(t, err, ErrNotReadable)

	n, err := s.Write([]byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "hi", buf.String())
	assert.Equal(t, "", s.String())
}

func TestHandle_NotSeekable(t *testing.T) {
	s, err := Wrap(readOnly{strings.NewReader("abc")}, "r")
	require.NoError(t, err)

	assert.False(t, s.IsSeekable())
	assert.ErrorIs(t, s.Rewind(), ErrNotSeekable)
	_, err = s.Tell()
	assert.ErrorIs(t, err, ErrNotSeekable)
	_, ok := s.Size()
	assert.False(t, ok)
}

func TestHandle_SizeFromSeeker(t *testing.T) {
	r := strings.NewReader("0123456789")
	s, err := Wrap(r, "r")
	require.NoError(t, err)

	_, _ = s.Read(4)
	size, ok := s.Size()
	assert.True(t, ok)
	assert.Equal(t, int64(10), size)

	pos, err := s.Tell()
	require.NoError(t, err)
	assert.Equal(t, int64(4), pos, "Size must restore the position")

	assert.Equal(t, "0123456789", s.String())
}

func TestHandle_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "body.txt")
	require.NoError(t, os.WriteFile(path, []byte("file body"), 0o600))

	f, err := os.Open(path)
	require.NoError(t, err)

	s, err := Wrap(f, "r")
	require.NoError(t, err)

	size, ok := s.Size()
	assert.True(t, ok)
	assert.Equal(t, int64(9), size)

	data, err := ReadAll(s)
	require.NoError(t, err)
	assert.Equal(t, []byte("file body"), data)

	require.NoError(t, s.Close())
	_, err = s.Read(1)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHandle_WrapsIOErrors(t *testing.T) {
	s, err := Wrap(failingWriter{}, "w")
	require.NoError(t, err)

	_, err = s.Write([]byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stream: write")
	assert.Contains(t, err.Error(), "disk full")
}

func TestHandle_DetachAndClose(t *testing.T) {
	c := &trackingCloser{Reader: strings.NewReader("x")}
	s, err := Wrap(c, "r")
	require.NoError(t, err)

	require.NoError(t, s.Close())
	assert.True(t, c.closed)
	assert.Nil(t, s.Detach())
	assert.True(t, s.EOF())
	assert.False(t, s.IsReadable())
	assert.False(t, s.IsSeekable())
	assert.ErrorIs(t, s.Seek(0, io.SeekStart), ErrUnavailable)
}

func TestCopy(t *testing.T) {
	var buf bytes.Buffer
	n, err := Copy(&buf, NewString("payload"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, "payload", buf.String())
}

func TestHandle_ReadHugeLength(t *testing.T) {
	s, err := Wrap(strings.NewReader("abc"), "r")
	require.NoError(t, err)

	_, err = s.Read(1)
	require.NoError(t, err)

	got, err := s.Read(math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, []byte("bc"), got)
	assert.True(t, s.EOF())

	_, err = s.Read(math.MaxInt)
	assert.ErrorIs(t, err, io.EOF)
}
