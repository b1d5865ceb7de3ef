package expr

import (
	"db48x/internal/bignum"
	"db48x/internal/decimal"
	"db48x/internal/fraction"
)

// Kind tags the variant an Atom holds.
type Kind uint8

const (
	KindInt Kind = iota
	KindFraction
	KindDecimal
	KindSymbol
	KindText
	KindOp
	// KindHole marks a pattern match-variable: a symbol atom that binds
	// to a subexpression during matching rather than requiring literal
	// equality. Only ever appears inside a compiled Pattern, never in an
	// ordinary Expr built for evaluation.
	KindHole
)

// Atom is one postfix-sequence element: a number, a symbol, text, or an
// operator consuming a fixed or (for funcall) explicit number of
// preceding operands.
type Atom struct {
	Kind Kind

	Int  bignum.Int
	Frac fraction.Fraction
	Dec  decimal.Decimal
	Sym  string
	Text string

	Op Op
	// Arity overrides Op.Arity() for OpFuncall, where the argument count
	// is not fixed by the operator.
	Arity int
}

// arity returns how many preceding operands this atom consumes.
func (a Atom) arity() int {
	if a.Kind != KindOp {
		return 0
	}
	if a.Op == OpFuncall {
		return a.Arity
	}
	return a.Op.Arity()
}

func number(i bignum.Int) Atom    { return Atom{Kind: KindInt, Int: i} }
func fractional(f fraction.Fraction) Atom { return Atom{Kind: KindFraction, Frac: f} }
func decimalAtom(d decimal.Decimal) Atom  { return Atom{Kind: KindDecimal, Dec: d} }
func symbol(name string) Atom      { return Atom{Kind: KindSymbol, Sym: name} }
func text(s string) Atom           { return Atom{Kind: KindText, Text: s} }
func unary(op Op) Atom             { return Atom{Kind: KindOp, Op: op} }
func binary(op Op) Atom            { return Atom{Kind: KindOp, Op: op} }
func funcall(name string, arity int) Atom {
	return Atom{Kind: KindOp, Op: OpFuncall, Sym: name, Arity: arity}
}

// atomEqual reports structural equality, the "byte-wise on the
// serialized form" rule: sound because every numeric constructor
// (bignum.Int, fraction.Fraction, decimal.Decimal) canonicalizes, so two
// equal values compare equal here even across the integer and fraction
// kinds — "special pattern constants (1, 0) match equal numeric values
// irrespective of concrete representation". A decimal atom equals only
// a decimal atom of the same width (see numericValue).
func atomEqual(a, b Atom) bool {
	av, aIsNum := numericValue(a)
	bv, bIsNum := numericValue(b)
	if aIsNum && bIsNum {
		return av.Cmp(bv) == 0
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindFraction:
		return fraction.Cmp(a.Frac, b.Frac) == 0
	case KindDecimal:
		if a.Dec.Width != b.Dec.Width {
			return false
		}
		return decimal.Cmp(a.Dec, b.Dec) == 0
	case KindSymbol, KindHole:
		return a.Sym == b.Sym
	case KindText:
		return a.Text == b.Text
	case KindOp:
		if a.Op != b.Op {
			return false
		}
		if a.Op == OpFuncall {
			return a.Sym == b.Sym && a.Arity == b.Arity
		}
		return true
	default:
		return false
	}
}

// numericValue normalizes Int/Fraction-as-integer atoms to a common
// bignum.Int for cross-representation comparison. Decimal atoms are
// compared only against other Decimal atoms of identical width: mixing
// an exact rational with a rounded float is not a "same value, different
// representation" case, so it is intentionally excluded.
func numericValue(a Atom) (bignum.Int, bool) {
	switch a.Kind {
	case KindInt:
		return a.Int, true
	case KindFraction:
		if i, ok := a.Frac.AsInteger(); ok {
			return i, true
		}
		return bignum.Int{}, false
	default:
		return bignum.Int{}, false
	}
}
