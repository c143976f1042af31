package http

import (
	"bytes"
	"errors"
	"testing"

	"github.com/shapestone/shape-message/pkg/stream"
)

func TestMarshal_Request_Simple(t *testing.T) {
	req := mustRequest(t, "GET", "http://example.com/api/users?q=1",
		WithRequestHeaders(map[string][]string{"Accept": {"application/json"}}))

	data, err := Marshal(req)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := "GET /api/users?q=1 HTTP/1.1\r\nHost: example.com\r\nAccept: application/json\r\n\r\n"
	if string(data) != want {
		t.Errorf("Marshal() =\n%q\nwant:\n%q", string(data), want)
	}
}

func TestMarshal_Request_WithBody(t *testing.T) {
	req := mustRequest(t, "POST", "http://example.com/api/users",
		WithRequestHeaders(map[string][]string{"Content-Type": {"application/json"}}),
		WithRequestBody(stream.NewString(`{"name":"John Doe"}`)))

	data, err := Marshal(req)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := "POST /api/users HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"Content-Type: application/json\r\n" +
		"\r\n" +
		`{"name":"John Doe"}`
	if string(data) != want {
		t.Errorf("Marshal() =\n%q\nwant:\n%q", string(data), want)
	}
}

func TestMarshal_Response_Prepared(t *testing.T) {
	resp := mustResponse(t, 200, WithResponseBody(stream.NewString("Hello")))

	data, err := Marshal(resp.Prepare(nil))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := "HTTP/1.1 200 OK\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"Content-Length: 5\r\n" +
		"\r\n" +
		"Hello"
	if string(data) != want {
		t.Errorf("Marshal() =\n%q\nwant:\n%q", string(data), want)
	}
}

func TestMarshal_Response_MultiValueHeader(t *testing.T) {
	resp := mustResponse(t, 404)
	resp, _ = resp.WithHeader("Vary", "Accept")
	resp, _ = resp.WithAddedHeader("VARY", "Accept-Encoding")

	data, err := Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := "HTTP/1.1 404 Not Found\r\nVary: Accept, Accept-Encoding\r\n\r\n"
	if string(data) != want {
		t.Errorf("Marshal() =\n%q\nwant:\n%q", string(data), want)
	}
}

func TestMarshal_BufferBodyInFull(t *testing.T) {
	body := stream.NewString("abcdef")
	if _, err := body.Read(3); err != nil {
		t.Fatal(err)
	}
	resp := mustResponse(t, 200, WithResponseBody(body))

	data, err := Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasSuffix(data, []byte("\r\n\r\nabcdef")) {
		t.Errorf("Marshal() = %q, want full body", data)
	}
	if pos, _ := body.Tell(); pos != 3 {
		t.Errorf("body position = %d, want 3", pos)
	}
}

func TestMarshal_DetachedBody(t *testing.T) {
	body := stream.NewString("x")
	body.Detach()
	resp := mustResponse(t, 200, WithResponseBody(body))

	if _, err := Marshal(resp); !errors.Is(err, stream.ErrUnavailable) {
		t.Errorf("Marshal() error = %v, want stream.ErrUnavailable", err)
	}
	if resp.String() != "" {
		t.Errorf("String() = %q, want empty", resp.String())
	}
}

func TestMarshal_Errors(t *testing.T) {
	if _, err := Marshal(nil); err == nil {
		t.Error("Marshal(nil) error = nil")
	}
	if _, err := Marshal("GET / HTTP/1.1"); err == nil {
		t.Error("Marshal(string) error = nil")
	}
}

type rawMessage string

func (m rawMessage) MarshalHTTP() ([]byte, error) { return []byte(m), nil }

func TestMarshal_Marshaler(t *testing.T) {
	data, err := Marshal(rawMessage("HTTP/1.1 204 No Content\r\n\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "HTTP/1.1 204 No Content\r\n\r\n" {
		t.Errorf("Marshal() = %q", data)
	}
}

func TestEncoder_Encode(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	req := mustRequest(t, "DELETE", "http://example.com/items/7")
	if err := enc.Encode(req); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if err := enc.Encode(mustResponse(t, 204)); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := "DELETE /items/7 HTTP/1.1\r\nHost: example.com\r\n\r\n" +
		"HTTP/1.1 204 No Content\r\n\r\n"
	if buf.String() != want {
		t.Errorf("Encode() wrote\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestRequest_String(t *testing.T) {
	req := mustRequest(t, "GET", "/", WithRequestProtocol("1.0"))
	if got := req.String(); got != "GET / HTTP/1.0\r\n\r\n" {
		t.Errorf("String() = %q", got)
	}
}
