package expr

import "db48x/internal/bignum"

func intExpr(v int64) Expr { return Int(bignum.IntFromInt64(v)) }

var (
	holeA = Symbol("a")
	holeB = Symbol("b")
	holeC = Symbol("c")

	zero = intExpr(0)
	one  = intExpr(1)
)

// expandRules distributes products over sums and powers over sums/
// products: the half of "expand" that applies without needing a
// variadic sum/product representation.
var expandRules = []Rule{
	NewRule(Binary(OpMul, holeA, Binary(OpAdd, holeB, holeC)),
		Binary(OpAdd, Binary(OpMul, holeA, holeB), Binary(OpMul, holeA, holeC))),
	NewRule(Binary(OpMul, Binary(OpAdd, holeA, holeB), holeC),
		Binary(OpAdd, Binary(OpMul, holeA, holeC), Binary(OpMul, holeB, holeC))),
	NewRule(Binary(OpMul, holeA, Binary(OpSub, holeB, holeC)),
		Binary(OpSub, Binary(OpMul, holeA, holeB), Binary(OpMul, holeA, holeC))),
	NewRule(Binary(OpMul, Binary(OpSub, holeA, holeB), holeC),
		Binary(OpSub, Binary(OpMul, holeA, holeC), Binary(OpMul, holeB, holeC))),
	// (a+b)^2 -> a^2 + 2*a*b + b^2, (a-b)^2 -> a^2 - 2*a*b + b^2.
	NewRule(Binary(OpPow, Binary(OpAdd, holeA, holeB), intExpr(2)),
		Binary(OpAdd,
			Binary(OpAdd, Binary(OpPow, holeA, intExpr(2)), Binary(OpMul, Binary(OpMul, intExpr(2), holeA), holeB)),
			Binary(OpPow, holeB, intExpr(2)))),
	NewRule(Binary(OpPow, Binary(OpSub, holeA, holeB), intExpr(2)),
		Binary(OpAdd,
			Binary(OpSub, Binary(OpPow, holeA, intExpr(2)), Binary(OpMul, Binary(OpMul, intExpr(2), holeA), holeB)),
			Binary(OpPow, holeB, intExpr(2)))),
	// (a*b)^c -> a^c * b^c: distributes a power over a product for any
	// exponent, not just the literal 2 handled above.
	NewRule(Binary(OpPow, Binary(OpMul, holeA, holeB), holeC),
		Binary(OpMul, Binary(OpPow, holeA, holeC), Binary(OpPow, holeB, holeC))),
}

// collectRules combine like terms.
var collectRules = []Rule{
	NewRule(Binary(OpAdd, holeA, holeA), Binary(OpMul, intExpr(2), holeA)),
	NewRule(Binary(OpMul, holeA, holeA), Binary(OpPow, holeA, intExpr(2))),
	NewRule(Binary(OpSub, holeA, holeA), zero),
	NewRule(Binary(OpAdd, Binary(OpMul, holeB, holeA), Binary(OpMul, holeC, holeA)),
		Binary(OpMul, Binary(OpAdd, holeB, holeC), holeA)),
}

// simplifyRules are the algebraic identities (additive/multiplicative
// identity and absorbing elements, double negation).
var simplifyRules = []Rule{
	NewRule(Binary(OpAdd, holeA, zero), holeA),
	NewRule(Binary(OpAdd, zero, holeA), holeA),
	NewRule(Binary(OpSub, holeA, zero), holeA),
	NewRule(Binary(OpMul, holeA, one), holeA),
	NewRule(Binary(OpMul, one, holeA), holeA),
	NewRule(Binary(OpMul, holeA, zero), zero),
	NewRule(Binary(OpMul, zero, holeA), zero),
	NewRule(Binary(OpDiv, holeA, one), holeA),
	NewRule(Binary(OpPow, holeA, one), holeA),
	NewRule(Binary(OpPow, holeA, zero), one),
	NewRule(Unary(OpNeg, Unary(OpNeg, holeA)), holeA),
	NewRule(Unary(OpInv, Unary(OpInv, holeA)), holeA),
}

// Expand distributes products over sums to a fixpoint.
func (e Expr) Expand() Expr { return e.RewriteAll(expandRules) }

// Collect combines like terms to a fixpoint.
func (e Expr) Collect() Expr { return e.RewriteAll(collectRules) }

// SimplifyProducts normalizes commutative two-operand add/mul chains
// into a canonical operand order (by rendered text), so that equivalent
// products built in a different argument order compare and rewrite
// identically.
func (e Expr) SimplifyProducts() Expr {
	atoms := canonicalizeOrder(e.Atoms)
	return Expr{Atoms: atoms}
}

func canonicalizeOrder(atoms []Atom) []Atom {
	end := len(atoms) - 1
	root := atoms[end]
	if root.arity() == 0 {
		return append([]Atom{}, atoms...)
	}
	spans := operandSpans(atoms, end)
	children := make([][]Atom, len(spans))
	for i, sp := range spans {
		children[i] = canonicalizeOrder(atoms[sp.start : sp.end+1])
	}
	if root.Kind == KindOp && len(children) == 2 && (root.Op == OpAdd || root.Op == OpMul) {
		lhs := Expr{Atoms: children[0]}
		rhs := Expr{Atoms: children[1]}
		if lhs.Render() > rhs.Render() {
			children[0], children[1] = children[1], children[0]
		}
	}
	var out []Atom
	for _, c := range children {
		out = append(out, c...)
	}
	out = append(out, root)
	return out
}

// Simplify composes expansion, collection, algebraic-identity rewriting
// and product-order canonicalization to a fixpoint.
func (e Expr) Simplify() Expr {
	cur := e
	for pass := 0; pass < 64; pass++ {
		next := cur.Expand().Collect().RewriteAll(simplifyRules).SimplifyProducts()
		if exprEqual(next, cur) {
			return next
		}
		cur = next
	}
	return cur
}

// AsDifferenceForSolve rewrites A = B into A - B, the form a root
// solver consumes; e must be a top-level TestEQ expression.
func (e Expr) AsDifferenceForSolve() (Expr, bool) {
	if len(e.Atoms) == 0 {
		return Expr{}, false
	}
	root := e.root()
	if root.Kind != KindOp || root.Op != OpTestEQ {
		return Expr{}, false
	}
	lhs := e.operand(0)
	rhs := e.operand(1)
	return Binary(OpSub, lhs, rhs), true
}
