// Package lexer tokenizes RPL source text: numbers (decimal and #based),
// identifiers/command names, strings, operators, and the four bracketing
// delimiters ('…', «…», […], {…}). It has no notion of algebraic vs. RPL
// syntax — that distinction lives entirely in the parser, which switches
// grammars on seeing an opening delimiter.
package lexer

import (
	"db48x/internal/token"
)

// Lexer produces tokens from source text, buffering exactly one token of
// lookahead the way surge's Lexer buffers `look`.
type Lexer struct {
	cur  cursor
	look *token.Token
}

// New creates a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{cur: newCursor(src)}
}

// Next returns the next token, consuming it.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	return lx.scan()
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		t := lx.scan()
		lx.look = &t
	}
	return *lx.look
}

func (lx *Lexer) scan() token.Token {
	lx.skipTrivia()

	if lx.cur.eof() {
		return lx.tok(token.EOF, lx.cur.mark())
	}

	ch := lx.cur.peek()
	switch {
	case ch == '#':
		return lx.scanBased()
	case isDigit(ch):
		return lx.scanNumber()
	case ch == '.' && isDigit(peekAt(lx.cur, 1)):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	case isIdentStart(ch):
		return lx.scanIdent()
	default:
		return lx.scanOperatorOrPunct()
	}
}

func (lx *Lexer) skipTrivia() {
	for !lx.cur.eof() {
		switch lx.cur.peek() {
		case ' ', '\t', '\r', '\n':
			lx.cur.bump()
		case '@':
			for !lx.cur.eof() && lx.cur.peek() != '\n' {
				lx.cur.bump()
			}
		default:
			return
		}
	}
}

func (lx *Lexer) tok(k token.Kind, start mark) token.Token {
	return token.Token{
		Kind: k,
		Span: token.Span{Start: token.Pos(start), End: token.Pos(lx.cur.off)},
		Text: lx.cur.textFrom(start),
	}
}

func peekAt(c cursor, n int) byte {
	if c.off+n >= len(c.buf) {
		return 0
	}
	return c.buf[c.off+n]
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}
