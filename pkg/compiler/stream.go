package compiler

// TokenStream is a read-only token sequence with a cursor.
type TokenStream struct {
	tokens []Token
	pos    int
	lines  sourceLines
}

// NewTokenStream wraps tokens. rawSource is optional and only used to attach
// source snippets to diagnostics.
func NewTokenStream(tokens []Token, rawSource string) *TokenStream {
	return &TokenStream{tokens: tokens, lines: newSourceLines(rawSource)}
}

// Peek returns the token offset positions past the cursor.
// ok is false when that position is outside the stream.
func (s *TokenStream) Peek(offset int) (Token, bool) {
	i := s.pos + offset
	if i < 0 || i >= len(s.tokens) {
		return Token{}, false
	}
	return s.tokens[i], true
}

// peekType reports whether the token at offset exists and has type tt.
func (s *TokenStream) peekType(tt TokenType, offset int) bool {
	tok, ok := s.Peek(offset)
	return ok && tok.Type == tt
}

// Done reports whether every token has been consumed.
func (s *TokenStream) Done() bool { return s.pos >= len(s.tokens) }

// Consume returns the token at the cursor and advances past it. Callers must
// check Peek first; consuming past the end panics.
func (s *TokenStream) Consume() Token {
	tok := s.tokens[s.pos]
	s.pos++
	return tok
}

// TryConsume consumes the current token only if it has type tt.
func (s *TokenStream) TryConsume(tt TokenType) (Token, bool) {
	if s.peekType(tt, 0) {
		return s.Consume(), true
	}
	return Token{}, false
}

// Expect consumes the current token if it has type tt; otherwise it returns a
// parse diagnostic naming what was expected and what was found.
func (s *TokenStream) Expect(tt TokenType) (Token, error) {
	if tok, ok := s.TryConsume(tt); ok {
		return tok, nil
	}
	return Token{}, s.missing(tt.Display())
}

// line is the line of the current token or, once the stream is exhausted, of
// the last one.
func (s *TokenStream) line() int {
	if tok, ok := s.Peek(0); ok {
		return tok.Line
	}
	if tok, ok := s.Peek(-1); ok {
		return tok.Line
	}
	return 1
}

// found describes the current token for diagnostics.
func (s *TokenStream) found() string {
	if tok, ok := s.Peek(0); ok {
		return tok.describe()
	}
	return "end of input"
}

// missing builds the "missing <what>" parse diagnostic at the current position.
func (s *TokenStream) missing(what string) *Diagnostic {
	return s.lines.diag(StageParse, s.line(), "missing %s (found %s)", what, s.found())
}

// errorf builds a parse diagnostic at the current position.
func (s *TokenStream) errorf(format string, args ...any) *Diagnostic {
	return s.lines.diag(StageParse, s.line(), format, args...)
}
