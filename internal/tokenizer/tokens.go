// Package tokenizer provides URI tokenization using Shape's tokenizer framework.
package tokenizer

// Token type constants for URI text.
// The RFC 3986 generic syntax is delimited by a small set of gen-delims, so
// tokens are either a single delimiter or a run of anything else.
const (
	// Delimiter tokens
	TokenColon    = "Colon"    // : scheme and port separator
	TokenSlash    = "Slash"    // / authority prefix and path segments
	TokenQuestion = "Question" // ? query introducer
	TokenHash     = "Hash"     // # fragment introducer
	TokenAt       = "At"       // @ userinfo terminator
	TokenLBracket = "LBracket" // [ IP-literal start
	TokenRBracket = "RBracket" // ] IP-literal end

	// Content tokens
	TokenText = "Text" // run of non-delimiter characters
)
