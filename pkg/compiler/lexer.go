package compiler

import (
	"unicode"
)

// keywords maps reserved words to their TokenType. Anything else that scans
// as a word is an IDENTIFIER.
var keywords = map[string]TokenType{
	"return": RETURN,
	"var":    VAR,
	"func":   FUNC,
	"if":     IF,
	"elif":   ELIF,
	"else":   ELSE,
	"int":    INT,
	"char":   CHAR,
}

// punctuation maps single-character tokens to their TokenType.
var punctuation = map[rune]TokenType{
	'=': ASSIGN,
	':': COLON,
	',': COMMA,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
}

// Identifiers, numbers and char literals are ASCII only.
func isLetter(r rune) bool { return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' }
func isDigit(r rune) bool  { return '0' <= r && r <= '9' }

func isWordRune(r rune) bool {
	return isLetter(r) || isDigit(r) || r == '_'
}

// Lexer scans one source text. It is not reusable.
type Lexer struct {
	src   []rune
	pos   int // next rune
	line  int // 1-based
	lines sourceLines
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, lines: newSourceLines(src)}
}

// at returns the rune offset positions ahead of the cursor, or 0 past the end.
func (l *Lexer) at(offset int) rune {
	if i := l.pos + offset; i < len(l.src) {
		return l.src[i]
	}
	return 0
}

func (l *Lexer) done() bool { return l.pos >= len(l.src) }

// next consumes one rune, counting newlines.
func (l *Lexer) next() rune {
	if l.done() {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
	}
	return r
}

// skip consumes runes while keep reports true.
func (l *Lexer) skip(keep func(rune) bool) {
	for !l.done() && keep(l.at(0)) {
		l.next()
	}
}

func (l *Lexer) errorf(line int, format string, args ...any) error {
	return l.lines.diag(StageLex, line, format, args...)
}

// skipTrivia moves past whitespace and comments. A block comment that is never
// closed is reported at the line it opened on.
func (l *Lexer) skipTrivia() error {
	for {
		l.skip(unicode.IsSpace)

		if l.at(0) != '/' {
			return nil
		}
		switch l.at(1) {
		case '/':
			l.skip(func(r rune) bool { return r != '\n' })
		case '*':
			opened := l.line
			l.pos += 2
			for !(l.at(0) == '*' && l.at(1) == '/') {
				if l.done() {
					return l.errorf(opened, "unterminated block comment")
				}
				l.next()
			}
			l.pos += 2
		default:
			return nil
		}
	}
}

// word scans an identifier or keyword starting at a letter.
func (l *Lexer) word() Token {
	tok := Token{Type: IDENTIFIER, Line: l.line}
	start := l.pos
	l.skip(isWordRune)
	text := string(l.src[start:l.pos])
	if kw, ok := keywords[text]; ok {
		tok.Type = kw
		return tok
	}
	tok.Lexeme = text
	return tok
}

// number scans a run of decimal digits.
func (l *Lexer) number() Token {
	tok := Token{Type: INTEGER, Line: l.line}
	start := l.pos
	l.skip(isDigit)
	tok.Lexeme = string(l.src[start:l.pos])
	return tok
}

// charLit scans 'c' where c is a single ASCII letter or digit.
func (l *Lexer) charLit() (Token, error) {
	line := l.line
	l.next() // '

	c := l.at(0)
	if l.done() || !(isLetter(c) || isDigit(c)) {
		return Token{}, l.errorf(line, "expected a valid char")
	}
	l.next()

	if l.at(0) != '\'' {
		return Token{}, l.errorf(line, "expected `'`")
	}
	l.next()

	return Token{Type: CHAR_LIT, Lexeme: string(c), Line: line}, nil
}

// scan returns the next token; ok is false at end of input.
func (l *Lexer) scan() (tok Token, ok bool, err error) {
	if err := l.skipTrivia(); err != nil {
		return Token{}, false, err
	}
	if l.done() {
		return Token{}, false, nil
	}

	r := l.at(0)
	switch {
	case isLetter(r):
		return l.word(), true, nil
	case isDigit(r):
		return l.number(), true, nil
	case r == '\'':
		tok, err := l.charLit()
		return tok, err == nil, err
	}

	if tt, found := punctuation[r]; found {
		tok := Token{Type: tt, Line: l.line}
		l.next()
		return tok, true, nil
	}
	return Token{}, false, l.errorf(l.line, "invalid token `%c`", r)
}

// Lex splits src into tokens in source order. The first illegal character,
// malformed char literal or unterminated block comment ends the scan with a
// *Diagnostic and no tokens.
func Lex(src string) ([]Token, error) {
	l := newLexer(src)
	var tokens []Token
	for {
		tok, ok, err := l.scan()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}
