package compiler

import "testing"

func streamOf(t *testing.T, src string) *TokenStream {
	t.Helper()
	tokens, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	return NewTokenStream(tokens, src)
}

func TestTokenStreamPeek(t *testing.T) {
	ts := streamOf(t, "x = 1")

	tests := []struct {
		offset int
		want   TokenType
		ok     bool
	}{
		{0, IDENTIFIER, true},
		{1, ASSIGN, true},
		{2, INTEGER, true},
		{3, 0, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		tok, ok := ts.Peek(tt.offset)
		if ok != tt.ok {
			t.Errorf("Peek(%d): ok = %v, want %v", tt.offset, ok, tt.ok)
			continue
		}
		if ok && tok.Type != tt.want {
			t.Errorf("Peek(%d): got %s, want %s", tt.offset, tok.Type, tt.want)
		}
	}

	// Peek never moves the cursor.
	if tok, _ := ts.Peek(0); tok.Type != IDENTIFIER {
		t.Errorf("cursor moved after Peek: %s", tok.Type)
	}
}

func TestTokenStreamConsume(t *testing.T) {
	ts := streamOf(t, "return x")

	if _, ok := ts.TryConsume(VAR); ok {
		t.Fatal("TryConsume(VAR) matched RETURN")
	}
	if tok, _ := ts.Peek(0); tok.Type != RETURN {
		t.Fatalf("failed TryConsume advanced the cursor to %s", tok.Type)
	}

	if _, ok := ts.TryConsume(RETURN); !ok {
		t.Fatal("TryConsume(RETURN) failed")
	}
	if tok := ts.Consume(); tok.Lexeme != "x" {
		t.Errorf("Consume: expected x, got %q", tok.Lexeme)
	}
	if !ts.Done() {
		t.Error("expected stream to be done")
	}

	// Looking behind the end still works.
	if tok, ok := ts.Peek(-1); !ok || tok.Lexeme != "x" {
		t.Errorf("Peek(-1) at end: got %v, %v", tok, ok)
	}
}

func TestTokenStreamExpect(t *testing.T) {
	ts := streamOf(t, "(\n x")

	if _, err := ts.Expect(LPAREN); err != nil {
		t.Fatalf("Expect(LPAREN): %v", err)
	}

	_, err := ts.Expect(RPAREN)
	d, ok := err.(*Diagnostic)
	if !ok {
		t.Fatalf("expected *Diagnostic, got %T", err)
	}
	if d.Message != `missing ')' (found identifier "x")` {
		t.Errorf("unexpected message %q", d.Message)
	}
	if d.Line != 2 || d.Snippet != "x" {
		t.Errorf("expected line 2 snippet x, got line %d snippet %q", d.Line, d.Snippet)
	}

	ts.Consume()
	_, err = ts.Expect(RPAREN)
	if d, ok := err.(*Diagnostic); !ok || d.Line != 2 || d.Message != "missing ')' (found end of input)" {
		t.Errorf("at end: got %v", err)
	}
}

func TestTokenStreamEmpty(t *testing.T) {
	ts := NewTokenStream(nil, "")
	if !ts.Done() {
		t.Error("empty stream must be done")
	}
	if ts.line() != 1 {
		t.Errorf("empty stream line: expected 1, got %d", ts.line())
	}
	if d := ts.missing("statement"); d.Snippet != "" {
		t.Errorf("expected no snippet without source, got %q", d.Snippet)
	}
}
