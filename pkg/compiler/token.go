package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	// Literals
	IDENTIFIER TokenType = iota // variable name
	INTEGER                     // decimal integer literal
	CHAR_LIT                    // character literal 'c'

	// Keywords
	RETURN // "return"
	VAR    // "var"
	FUNC   // "func"
	IF     // "if"
	ELIF   // "elif"
	ELSE   // "else"
	INT    // "int"
	CHAR   // "char"

	// Paired delimiters
	LBRACE // {
	RBRACE // }
	LPAREN // (
	RPAREN // )

	// Punctuation
	ASSIGN // =
	COLON  // :
	COMMA  // ,

	// Arithmetic operators
	PLUS  // +
	MINUS // -
	STAR  // *
	SLASH // /
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	IDENTIFIER: "IDENTIFIER",
	INTEGER:    "INTEGER",
	CHAR_LIT:   "CHAR_LIT",
	RETURN:     "RETURN",
	VAR:        "VAR",
	FUNC:       "FUNC",
	IF:         "IF",
	ELIF:       "ELIF",
	ELSE:       "ELSE",
	INT:        "INT",
	CHAR:       "CHAR",
	LBRACE:     "LBRACE",
	RBRACE:     "RBRACE",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	ASSIGN:     "ASSIGN",
	COLON:      "COLON",
	COMMA:      "COMMA",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	STAR:       "STAR",
	SLASH:      "SLASH",
}

// tokenDisplay is the human-facing spelling used in diagnostics.
var tokenDisplay = [...]string{
	IDENTIFIER: "identifier",
	INTEGER:    "integer literal",
	CHAR_LIT:   "char literal",
	RETURN:     "return",
	VAR:        "var",
	FUNC:       "func",
	IF:         "if",
	ELIF:       "elif",
	ELSE:       "else",
	INT:        "int",
	CHAR:       "char",
	LBRACE:     "'{'",
	RBRACE:     "'}'",
	LPAREN:     "'('",
	RPAREN:     "')'",
	ASSIGN:     "'='",
	COLON:      "':'",
	COMMA:      "','",
	PLUS:       "'+'",
	MINUS:      "'-'",
	STAR:       "'*'",
	SLASH:      "'/'",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Display returns the spelling of tt as it should appear in a diagnostic.
func (tt TokenType) Display() string {
	if int(tt) >= 0 && int(tt) < len(tokenDisplay) {
		return tokenDisplay[tt]
	}
	return tt.String()
}

// binPrec returns the binding power of a binary operator token.
// Higher binds tighter; ok is false for anything that is not a binary operator.
func binPrec(tt TokenType) (prec int, ok bool) {
	switch tt {
	case PLUS, MINUS:
		return 0, true
	case STAR, SLASH:
		return 1, true
	default:
		return 0, false
	}
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string // literal text; empty for keywords and punctuation
	Line   int    // 1-based source line
}

func (t Token) String() string {
	return fmt.Sprintf("%-10s %-14q  line %d", t.Type, t.Lexeme, t.Line)
}

// describe renders t for a "found ..." clause in a diagnostic.
func (t Token) describe() string {
	if t.Lexeme != "" {
		return fmt.Sprintf("%s %q", t.Type.Display(), t.Lexeme)
	}
	return t.Type.Display()
}
