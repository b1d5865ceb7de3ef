package parser

import (
	"db48x/internal/expr"
	"db48x/internal/token"
)

// binaryOp maps a binary-operator token to the expr.Op it builds, its
// binding power, and whether repeated application associates right
// (only '^'). Precedence values mirror expr.Op.precedence() so a parsed
// tree renders back without needing extra parentheses.
func binaryOp(k token.Kind) (op expr.Op, prec int, rightAssoc bool, ok bool) {
	switch k {
	case token.Plus:
		return expr.OpAdd, 2, false, true
	case token.Minus:
		return expr.OpSub, 2, false, true
	case token.Star:
		return expr.OpMul, 3, false, true
	case token.Slash:
		return expr.OpDiv, 3, false, true
	case token.Percent:
		return expr.OpMod, 3, false, true
	case token.Caret:
		return expr.OpPow, 4, true, true
	case token.Eq, token.EqEq:
		return expr.OpTestEQ, 1, false, true
	case token.BangEq:
		return expr.OpTestNE, 1, false, true
	case token.Lt:
		return expr.OpTestLT, 1, false, true
	case token.LtEq:
		return expr.OpTestLE, 1, false, true
	case token.Gt:
		return expr.OpTestGT, 1, false, true
	case token.GtEq:
		return expr.OpTestGE, 1, false, true
	default:
		return 0, 0, false, false
	}
}
