package tokenizer

import (
	"testing"

	coretok "github.com/shapestone/shape-core/pkg/tokenizer"
)

func TestTokenize_AbsoluteURI(t *testing.T) {
	tok := NewTokenizer()
	tok.Initialize("http://user@example.com:8080/a/b?q=1#top")

	tokens, eos := tok.Tokenize()
	if !eos {
		t.Error("expected EOS")
	}

	expected := []struct {
		kind  string
		value string
	}{
		{TokenText, "http"},
		{TokenColon, ":"},
		{TokenSlash, "/"},
		{TokenSlash, "/"},
		{TokenText, "user"},
		{TokenAt, "@"},
		{TokenText, "example.com"},
		{TokenColon, ":"},
		{TokenText, "8080"},
		{TokenSlash, "/"},
		{TokenText, "a"},
		{TokenSlash, "/"},
		{TokenText, "b"},
		{TokenQuestion, "?"},
		{TokenText, "q=1"},
		{TokenHash, "#"},
		{TokenText, "top"},
	}

	if len(tokens) != len(expected) {
		t.Fatalf("token count = %d, want %d. tokens = %v", len(tokens), len(expected), formatTokens(tokens))
	}

	for i, exp := range expected {
		if tokens[i].Kind() != exp.kind {
			t.Errorf("token[%d].Kind() = %q, want %q", i, tokens[i].Kind(), exp.kind)
		}
		if tokens[i].ValueString() != exp.value {
			t.Errorf("token[%d].Value() = %q, want %q", i, tokens[i].ValueString(), exp.value)
		}
	}
}

func TestTokenize_IPLiteral(t *testing.T) {
	tokens, eos := Tokenize("//[::1]:80")
	if !eos {
		t.Error("expected EOS")
	}

	kinds := []string{TokenSlash, TokenSlash, TokenLBracket, TokenColon, TokenColon, TokenText, TokenRBracket, TokenColon, TokenText}
	if len(tokens) != len(kinds) {
		t.Fatalf("token count = %d, want %d. tokens = %v", len(tokens), len(kinds), formatTokens(tokens))
	}
	for i, k := range kinds {
		if tokens[i].Kind() != k {
			t.Errorf("token[%d].Kind() = %q, want %q", i, tokens[i].Kind(), k)
		}
	}
}

func TestTokenize_Empty(t *testing.T) {
	tokens, eos := Tokenize("")
	if !eos {
		t.Error("expected EOS for empty input")
	}
	if len(tokens) != 0 {
		t.Errorf("expected no tokens, got %v", formatTokens(tokens))
	}
}

func TestTokenize_PercentEncodingStaysInText(t *testing.T) {
	tokens, _ := Tokenize("a%20b")
	if len(tokens) != 1 {
		t.Fatalf("token count = %d, want 1", len(tokens))
	}
	if tokens[0].ValueString() != "a%20b" {
		t.Errorf("Value = %q, want a%%20b", tokens[0].ValueString())
	}
}

func TestTextMatcher_EOS(t *testing.T) {
	matcher := TextMatcher()
	stream := coretok.NewStream("")
	tok := matcher(stream)
	if tok != nil {
		t.Errorf("expected nil for EOS stream, got %v", tok)
	}
}

func TestTextMatcher_StartWithDelimiter(t *testing.T) {
	matcher := TextMatcher()
	stream := coretok.NewStream("/path")
	tok := matcher(stream)
	if tok != nil {
		t.Errorf("expected nil when starting with slash, got %v", tok)
	}
}

func TestTextMatcher_StopsAtDelimiter(t *testing.T) {
	matcher := TextMatcher()
	stream := coretok.NewStream("example.com:443")
	tok := matcher(stream)
	if tok == nil {
		t.Fatal("expected token, got nil")
	}
	if tok.ValueString() != "example.com" {
		t.Errorf("Value = %q, want example.com", tok.ValueString())
	}
}

func TestIsDelimiter(t *testing.T) {
	for _, r := range ":/?#@[]" {
		if !IsDelimiter(r) {
			t.Errorf("IsDelimiter(%q) = false, want true", r)
		}
	}
	for _, r := range "a%=+!~" {
		if IsDelimiter(r) {
			t.Errorf("IsDelimiter(%q) = true, want false", r)
		}
	}
}

func formatTokens(tokens []coretok.Token) string {
	s := "["
	for i, t := range tokens {
		if i > 0 {
			s += ", "
		}
		s += t.String()
	}
	s += "]"
	return s
}
