package expr

import (
	"fmt"

	"db48x/internal/bignum"
	"db48x/internal/decimal"
	"db48x/internal/fraction"
)

var oneInt = bignum.IntFromInt64(1)

// numericKind ranks an atom's representation in the promotion lattice
// integer -> fraction -> decimal, following original_source's
// compare.cc, which promotes the looser-typed operand of a mixed
// comparison up to the tighter one (real_promotion) before comparing.
type numericKind int

const (
	kindNone numericKind = iota
	kindIntRank
	kindFracRank
	kindDecRank
)

func rankOf(a Atom) numericKind {
	switch a.Kind {
	case KindInt:
		return kindIntRank
	case KindFraction:
		return kindFracRank
	case KindDecimal:
		return kindDecRank
	default:
		return kindNone
	}
}

// ErrNotComparable indicates one or both operands are not numeric atoms.
var ErrNotComparable = fmt.Errorf("expr: operands are not comparable numeric values")

// Compare orders two numeric leaf expressions, promoting the
// lower-ranked operand up the integer -> fraction -> decimal lattice
// before comparing, and returns -1, 0, or 1.
func Compare(x, y Expr) (int, error) {
	if !x.IsAtomic() || !y.IsAtomic() {
		return 0, ErrNotComparable
	}
	ax, ay := x.Atoms[0], y.Atoms[0]
	rx, ry := rankOf(ax), rankOf(ay)
	if rx == kindNone || ry == kindNone {
		return 0, ErrNotComparable
	}

	target := rx
	if ry > target {
		target = ry
	}

	pax, err := promote(ax, target)
	if err != nil {
		return 0, err
	}
	pay, err := promote(ay, target)
	if err != nil {
		return 0, err
	}

	switch target {
	case kindIntRank:
		return pax.Int.Cmp(pay.Int), nil
	case kindFracRank:
		return fraction.Cmp(pax.Frac, pay.Frac), nil
	case kindDecRank:
		return decimal.Cmp(pax.Dec, pay.Dec), nil
	default:
		return 0, ErrNotComparable
	}
}

func promote(a Atom, target numericKind) (Atom, error) {
	switch target {
	case kindIntRank:
		return a, nil
	case kindFracRank:
		if a.Kind == KindFraction {
			return a, nil
		}
		f, err := fraction.New(a.Int, oneInt)
		if err != nil {
			return Atom{}, err
		}
		return fractional(f), nil
	case kindDecRank:
		if a.Kind == KindDecimal {
			return a, nil
		}
		var i = a.Int
		if a.Kind == KindFraction {
			if exact, ok := a.Frac.AsInteger(); ok {
				i = exact
			} else {
				return Atom{}, fmt.Errorf("expr: promoting an inexact fraction to decimal requires evaluation, not comparison")
			}
		}
		d, err := decimal.FromInteger(decimal.Width128, i)
		if err != nil {
			return Atom{}, err
		}
		return decimalAtom(d), nil
	default:
		return Atom{}, ErrNotComparable
	}
}
