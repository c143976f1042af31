package tokenizer

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// NewTokenizer creates a tokenizer for URI text.
// Matchers are tried in order:
// 1. Single-character gen-delims (: / ? # @ [ ])
// 2. Generic text (everything up to the next gen-delim)
//
// Whitespace is significant inside a URI (and invalid), so the default
// whitespace skipper is not used; spaces end up inside Text tokens and are
// rejected by the parser.
func NewTokenizer() tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		tokenizer.StringMatcherFunc(TokenColon, ":"),
		tokenizer.StringMatcherFunc(TokenSlash, "/"),
		tokenizer.StringMatcherFunc(TokenQuestion, "?"),
		tokenizer.StringMatcherFunc(TokenHash, "#"),
		tokenizer.StringMatcherFunc(TokenAt, "@"),
		tokenizer.StringMatcherFunc(TokenLBracket, "["),
		tokenizer.StringMatcherFunc(TokenRBracket, "]"),
		TextMatcher(),
	)
}

// IsDelimiter reports whether r is one of the gen-delims the tokenizer
// emits as its own token.
func IsDelimiter(r rune) bool {
	switch r {
	case ':', '/', '?', '#', '@', '[', ']':
		return true
	}
	return false
}

// TextMatcher matches any sequence of characters until a gen-delim or EOS.
func TextMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		var value []rune

		for {
			r, ok := stream.PeekChar()
			if !ok || IsDelimiter(r) {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}

		if len(value) == 0 {
			return nil
		}

		return tokenizer.NewToken(TokenText, value)
	}
}

// Tokenize lexes s and reports whether the whole input was consumed.
func Tokenize(s string) ([]tokenizer.Token, bool) {
	tok := NewTokenizer()
	tok.Initialize(s)
	return tok.Tokenize()
}
