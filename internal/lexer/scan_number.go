package lexer

import "db48x/internal/token"

// scanNumber consumes a decimal integer or decimal-point/exponent literal.
// The distinction between integer and decimal payload is left to the
// parser, which asks whether the literal text contains '.' or 'E'/'e'.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cur.mark()
	isDecimal := false

	for isDigit(lx.cur.peek()) || lx.cur.peek() == '_' {
		lx.cur.bump()
	}
	if lx.cur.peek() == '.' && isDigit(peekAt(lx.cur, 1)) {
		isDecimal = true
		lx.cur.bump()
		for isDigit(lx.cur.peek()) || lx.cur.peek() == '_' {
			lx.cur.bump()
		}
	}
	if b := lx.cur.peek(); b == 'e' || b == 'E' {
		b0, b1, ok := lx.cur.peek2()
		if ok && (isDigit(b1) || ((b1 == '+' || b1 == '-') && isDigit(peekAt(lx.cur, 2)))) {
			_ = b0
			isDecimal = true
			lx.cur.bump()
			if lx.cur.peek() == '+' || lx.cur.peek() == '-' {
				lx.cur.bump()
			}
			for isDigit(lx.cur.peek()) {
				lx.cur.bump()
			}
		}
	}

	kind := token.IntLit
	if isDecimal {
		kind = token.DecimalLit
	}
	return lx.tok(kind, start)
}

// scanBased consumes a based-number literal of the form #<digits><suffix>,
// where suffix is one of b/o/d/h (binary/octal/decimal/hex), case
// insensitive, matching the calculator's #1A3h grammar.
func (lx *Lexer) scanBased() token.Token {
	start := lx.cur.mark()
	lx.cur.bump() // '#'
	for {
		b := lx.cur.peek()
		if isDigit(b) || isHexAlpha(b) || b == '_' {
			lx.cur.bump()
			continue
		}
		break
	}
	if b := lx.cur.peek(); b == 'b' || b == 'B' || b == 'o' || b == 'O' ||
		b == 'd' || b == 'D' || b == 'h' || b == 'H' {
		lx.cur.bump()
	}
	return lx.tok(token.BasedLit, start)
}

func isHexAlpha(b byte) bool {
	return (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
