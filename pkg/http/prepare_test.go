package http

import (
	"testing"

	"github.com/shapestone/shape-message/pkg/stream"
)

func TestPrepare_EmptyStatusStripsBody(t *testing.T) {
	for _, code := range []int{100, 101, 204, 304} {
		resp := mustResponse(t, code,
			WithResponseHeaders(map[string][]string{
				"Content-Type":   {"text/plain"},
				"Content-Length": {"5"},
				"X-Keep":         {"1"},
			}),
			WithResponseBody(stream.NewString("hello")))

		got := resp.Prepare(mustRequest(t, "GET", "/"))

		if got.HasHeader("Content-Type") || got.HasHeader("Content-Length") {
			t.Errorf("%d: Content-Type/Content-Length survived: %v", code, got.Headers().Map())
		}
		if size, _ := got.Body().Size(); size != 0 {
			t.Errorf("%d: body size = %d, want 0", code, size)
		}
		if !got.HasHeader("X-Keep") {
			t.Errorf("%d: unrelated header dropped", code)
		}
		// input untouched
		if !resp.HasHeader("Content-Type") || resp.Body().String() != "hello" {
			t.Errorf("%d: Prepare modified its input", code)
		}
	}
}

func TestPrepare_ContentType(t *testing.T) {
	tests := []struct {
		name    string
		ct      string
		charset string
		want    string
	}{
		{"default", "", "", "text/html; charset=utf-8"},
		{"default custom charset", "", "iso-8859-1", "text/html; charset=iso-8859-1"},
		{"text without charset", "text/plain", "", "text/plain; charset=utf-8"},
		{"text with charset", "text/plain; charset=latin1", "", "text/plain; charset=latin1"},
		{"upper-case text", "TEXT/CSV", "", "TEXT/CSV; charset=utf-8"},
		{"non-text untouched", "application/json", "", "application/json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []ResponseOption
			if tt.ct != "" {
				opts = append(opts, WithResponseHeaders(map[string][]string{"Content-Type": {tt.ct}}))
			}
			if tt.charset != "" {
				opts = append(opts, WithResponseCharset(tt.charset))
			}
			got := mustResponse(t, 200, opts...).Prepare(nil)
			if line := got.HeaderLine("Content-Type"); line != tt.want {
				t.Errorf("Content-Type = %q, want %q", line, tt.want)
			}
		})
	}
}

func TestPrepare_ContentLength(t *testing.T) {
	resp := mustResponse(t, 200, WithResponseBody(stream.NewString("hello world")))
	got := resp.Prepare(mustRequest(t, "GET", "/"))
	if line := got.HeaderLine("Content-Length"); line != "11" {
		t.Errorf("Content-Length = %q, want 11", line)
	}
	if resp.HasHeader("Content-Length") {
		t.Error("Prepare modified its input")
	}

	explicit := mustResponse(t, 200,
		WithResponseHeaders(map[string][]string{"Content-Length": {"99"}}),
		WithResponseBody(stream.NewString("hello")))
	if line := explicit.Prepare(nil).HeaderLine("Content-Length"); line != "99" {
		t.Errorf("explicit Content-Length = %q, want 99", line)
	}
}

func TestPrepare_TransferEncodingDropsContentLength(t *testing.T) {
	resp := mustResponse(t, 200,
		WithResponseHeaders(map[string][]string{
			"Transfer-Encoding": {"chunked"},
			"Content-Length":    {"5"},
		}),
		WithResponseBody(stream.NewString("hello")))

	got := resp.Prepare(nil)
	if got.HasHeader("Content-Length") {
		t.Errorf("Content-Length = %q, want absent", got.HeaderLine("Content-Length"))
	}
	if got.HeaderLine("Transfer-Encoding") != "chunked" {
		t.Error("Transfer-Encoding dropped")
	}
}

func TestPrepare_UnknownSizeLeavesContentLengthUnset(t *testing.T) {
	body := stream.NewString("hello")
	body.Detach()
	got := mustResponse(t, 200, WithResponseBody(body)).Prepare(nil)
	if got.HasHeader("Content-Length") {
		t.Errorf("Content-Length = %q for unknown size, want absent", got.HeaderLine("Content-Length"))
	}
}

func TestPrepare_HeadKeepsContentLength(t *testing.T) {
	resp := mustResponse(t, 200, WithResponseBody(stream.NewString("resource body")))
	got := resp.Prepare(mustRequest(t, "HEAD", "/"))

	if size, _ := got.Body().Size(); size != 0 {
		t.Errorf("HEAD body size = %d, want 0", size)
	}
	if line := got.HeaderLine("Content-Length"); line != "13" {
		t.Errorf("HEAD Content-Length = %q, want 13", line)
	}
	if resp.Body().String() != "resource body" {
		t.Error("Prepare modified its input body")
	}
}

func TestPrepare_ProtocolAlignment(t *testing.T) {
	tests := []struct {
		name    string
		reqVer  string
		respVer string
		wantVer string
	}{
		{"1.1 request upgrades 1.0 response", "1.1", "1.0", "1.1"},
		{"2 request forces 1.1", "2", "2", "1.1"},
		{"1.0 request keeps 1.0 response", "1.0", "1.0", "1.0"},
		{"1.0 request keeps 1.1 response", "1.0", "1.1", "1.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := mustRequest(t, "GET", "/", WithRequestProtocol(tt.reqVer))
			resp := mustResponse(t, 200, WithResponseProtocol(tt.respVer))
			if got := resp.Prepare(req).ProtocolVersion(); got != tt.wantVer {
				t.Errorf("ProtocolVersion() = %q, want %q", got, tt.wantVer)
			}
			if resp.ProtocolVersion() != tt.respVer {
				t.Error("Prepare modified its input")
			}
		})
	}
}

func TestPrepare_LegacyNoCache(t *testing.T) {
	req := mustRequest(t, "GET", "/", WithRequestProtocol("1.0"))
	resp := mustResponse(t, 200,
		WithResponseProtocol("1.0"),
		WithResponseHeaders(map[string][]string{"Cache-Control": {"private, no-cache"}}))

	got := resp.Prepare(req)
	if got.HeaderLine("Pragma") != "no-cache" {
		t.Errorf("Pragma = %q, want no-cache", got.HeaderLine("Pragma"))
	}
	if got.HeaderLine("Expires") != "-1" {
		t.Errorf("Expires = %q, want -1", got.HeaderLine("Expires"))
	}

	// 1.1 responses are left alone
	modern := resp.Prepare(mustRequest(t, "GET", "/"))
	if modern.HasHeader("Pragma") || modern.HasHeader("Expires") {
		t.Error("Pragma/Expires added to a 1.1 response")
	}
}

func TestPrepare_ReturnsNewResponse(t *testing.T) {
	resp := mustResponse(t, 200)
	if resp.Prepare(nil) == resp {
		t.Error("Prepare returned the receiver")
	}
}
