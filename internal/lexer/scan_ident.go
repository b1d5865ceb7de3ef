package lexer

import "db48x/internal/token"

// scanIdent consumes a symbol or command-name identifier. Command names
// like DUP, SIN, and SWAP are lexically ordinary identifiers; the
// distinction between "known command" and "user variable" is resolved by
// the evaluator's dispatch table, not by the lexer.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cur.mark()
	for isIdentContinue(lx.cur.peek()) {
		lx.cur.bump()
	}
	return lx.tok(token.Ident, start)
}
