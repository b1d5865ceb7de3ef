package rplvm

import (
	"math"

	"db48x/internal/bignum"
	"db48x/internal/decimal"
	"db48x/internal/diagnostic"
	"db48x/internal/expr"
	"db48x/internal/fraction"
)

func mkInt(i bignum.Int) expr.Atom          { return expr.Atom{Kind: expr.KindInt, Int: i} }
func mkFrac(f fraction.Fraction) expr.Atom  { return expr.Atom{Kind: expr.KindFraction, Frac: f} }
func mkDec(d decimal.Decimal) expr.Atom     { return expr.Atom{Kind: expr.KindDecimal, Dec: d} }

// kindName names an atom's kind for a type_mismatch message.
func kindName(a expr.Atom) string {
	switch a.Kind {
	case expr.KindInt:
		return "integer"
	case expr.KindFraction:
		return "fraction"
	case expr.KindDecimal:
		return "real"
	case expr.KindSymbol:
		return "symbol"
	case expr.KindText:
		return "text"
	case expr.KindOp:
		return "operator"
	default:
		return "object"
	}
}

func wrapTypeMismatch(expected string, a expr.Atom) error {
	return diagnostic.ErrTypeMismatch(expected, kindName(a))
}

func wrapTypeMismatchName(expected, got, who string) error {
	if who == "" {
		return diagnostic.ErrTypeMismatch(expected, got)
	}
	return diagnostic.ErrTypeMismatch(expected, got+" ("+who+")")
}

func wrapValueOutOfRange(detail string) error { return diagnostic.ErrValueOutOfRange(detail) }

// defaultWidth is the decimal width a mixed-kind operation promotes to when
// neither operand is already a Decimal atom, matching expr/compare.go's own
// choice of Width128 for its integer/fraction-to-decimal promotions.
const defaultWidth = decimal.Width128

var one = bignum.IntFromInt64(1)

// rank mirrors expr/compare.go's integer < fraction < decimal lattice; it is
// re-declared here rather than imported because expr's promote() refuses the
// one promotion arithmetic actually needs — turning an inexact fraction into
// a decimal by division.
type rank int

const (
	rankNone rank = iota
	rankInt
	rankFrac
	rankDec
)

func rankOf(a expr.Atom) rank {
	switch a.Kind {
	case expr.KindInt:
		return rankInt
	case expr.KindFraction:
		return rankFrac
	case expr.KindDecimal:
		return rankDec
	default:
		return rankNone
	}
}

func widthOf(a expr.Atom) decimal.Width {
	if a.Kind == expr.KindDecimal {
		return a.Dec.Width
	}
	return defaultWidth
}

func asFraction(a expr.Atom) (fraction.Fraction, error) {
	switch a.Kind {
	case expr.KindFraction:
		return a.Frac, nil
	case expr.KindInt:
		return fraction.New(a.Int, one)
	default:
		return fraction.Fraction{}, diagErrKind(a)
	}
}

func asDecimal(a expr.Atom, w decimal.Width) (decimal.Decimal, error) {
	switch a.Kind {
	case expr.KindDecimal:
		return decimal.Rewidth(a.Dec, w)
	case expr.KindInt:
		return decimal.FromInteger(w, a.Int)
	case expr.KindFraction:
		num, err := decimal.FromInteger(w, a.Frac.Num)
		if err != nil {
			return decimal.Decimal{}, err
		}
		den, err := decimal.FromInteger(w, bignum.Int{Mag: a.Frac.Den.Mag})
		if err != nil {
			return decimal.Decimal{}, err
		}
		return decimal.Div(num, den)
	default:
		return decimal.Decimal{}, diagErrKind(a)
	}
}

func diagErrKind(a expr.Atom) error {
	return wrapTypeMismatch("number", a)
}

// numericAtom extracts the single leaf atom from a Number Value, erroring if
// v does not hold exactly one numeric atom.
func numericAtom(v Value, who string) (expr.Atom, error) {
	if v.Kind != KindNumber || len(v.Num.Atoms) != 1 {
		return expr.Atom{}, wrapTypeMismatchName("number", v.TypeName(), who)
	}
	a := v.Num.Atoms[0]
	if rankOf(a) == rankNone {
		return expr.Atom{}, wrapTypeMismatchName("number", v.TypeName(), who)
	}
	return a, nil
}

// collapse reduces a fraction atom back to a plain integer atom when its
// denominator has reduced to one, the representation rule every arithmetic
// result observes.
func collapse(a expr.Atom) expr.Atom {
	if a.Kind != expr.KindFraction {
		return a
	}
	if i, ok := a.Frac.AsInteger(); ok {
		return mkInt(i)
	}
	return a
}

func atomToValue(a expr.Atom) Value {
	return Number(expr.Expr{Atoms: []expr.Atom{collapse(a)}})
}

// binaryArith applies intOp/fracOp/decOp at whichever rank the higher of the
// two operands sits, promoting the lower-ranked one up — the same lattice
// expr/compare.go uses for ordering, generalized here to actually perform
// the fraction-to-decimal division rather than refusing it.
func binaryArith(
	x, y expr.Atom,
	intOp func(a, b bignum.Int) (bignum.Int, error),
	fracOp func(a, b fraction.Fraction) (fraction.Fraction, error),
	decOp func(a, b decimal.Decimal) (decimal.Decimal, error),
) (expr.Atom, error) {
	rx, ry := rankOf(x), rankOf(y)
	top := rx
	if ry > top {
		top = ry
	}
	switch top {
	case rankInt:
		r, err := intOp(x.Int, y.Int)
		if err != nil {
			return expr.Atom{}, wrapArithErr(err)
		}
		return mkInt(r), nil
	case rankFrac:
		fx, err := asFraction(x)
		if err != nil {
			return expr.Atom{}, err
		}
		fy, err := asFraction(y)
		if err != nil {
			return expr.Atom{}, err
		}
		r, err := fracOp(fx, fy)
		if err != nil {
			return expr.Atom{}, wrapArithErr(err)
		}
		return mkFrac(r), nil
	case rankDec:
		w := widthOf(x)
		if wy := widthOf(y); wy > w {
			w = wy
		}
		dx, err := asDecimal(x, w)
		if err != nil {
			return expr.Atom{}, err
		}
		dy, err := asDecimal(y, w)
		if err != nil {
			return expr.Atom{}, err
		}
		r, err := decOp(dx, dy)
		if err != nil {
			return expr.Atom{}, wrapArithErr(err)
		}
		return mkDec(r), nil
	default:
		return expr.Atom{}, wrapTypeMismatch("number", x)
	}
}

func arithAdd(x, y expr.Atom, maxBits int) (expr.Atom, error) {
	return binaryArith(x, y,
		func(a, b bignum.Int) (bignum.Int, error) { return bignum.IntAdd(a, b, maxBits) },
		fraction.Add,
		decimal.Add)
}

func arithSub(x, y expr.Atom, maxBits int) (expr.Atom, error) {
	return binaryArith(x, y,
		func(a, b bignum.Int) (bignum.Int, error) { return bignum.IntSub(a, b, maxBits) },
		fraction.Sub,
		decimal.Sub)
}

func arithMul(x, y expr.Atom, maxBits int) (expr.Atom, error) {
	return binaryArith(x, y,
		func(a, b bignum.Int) (bignum.Int, error) { return bignum.IntMul(a, b, maxBits) },
		fraction.Mul,
		decimal.Mul)
}

// arithDiv keeps integer/integer division exact: it only falls back to a
// fraction when the divisor does not evenly divide the dividend, rather than
// jumping straight to decimal the way the generic lattice would.
func arithDiv(x, y expr.Atom, maxBits int) (expr.Atom, error) {
	if rankOf(x) == rankInt && rankOf(y) == rankInt {
		if y.Int.IsZero() {
			return expr.Atom{}, wrapArithErr(bignum.ErrDivByZero)
		}
		q, r, err := bignum.IntDivMod(x.Int, y.Int, maxBits)
		if err != nil {
			return expr.Atom{}, wrapArithErr(err)
		}
		if r.IsZero() {
			return mkInt(q), nil
		}
		f, err := fraction.New(x.Int, y.Int)
		if err != nil {
			return expr.Atom{}, wrapArithErr(err)
		}
		return mkFrac(f), nil
	}
	return binaryArith(x, y,
		func(a, b bignum.Int) (bignum.Int, error) {
			if b.IsZero() {
				return bignum.Int{}, bignum.ErrDivByZero
			}
			q, r, err := bignum.IntDivMod(a, b, maxBits)
			if err != nil {
				return bignum.Int{}, err
			}
			if !r.IsZero() {
				return bignum.Int{}, bignum.ErrDivByZero // unreachable: rank forced non-int below
			}
			return q, nil
		},
		fraction.Div,
		decimal.Div)
}

// arithRem and arithMod back REM/MOD: integer-only, remainder sign rules differ
// (MOD's result takes the divisor's sign, REM's takes the dividend's, which
// is exactly bignum.IntDivMod's contract already).
func arithRem(x, y expr.Atom, maxBits int) (expr.Atom, error) {
	if rankOf(x) != rankInt || rankOf(y) != rankInt {
		return expr.Atom{}, wrapTypeMismatch("integer", x)
	}
	if y.Int.IsZero() {
		return expr.Atom{}, wrapArithErr(bignum.ErrDivByZero)
	}
	_, r, err := bignum.IntDivMod(x.Int, y.Int, maxBits)
	if err != nil {
		return expr.Atom{}, wrapArithErr(err)
	}
	return mkInt(r), nil
}

func arithMod(x, y expr.Atom, maxBits int) (expr.Atom, error) {
	r, err := arithRem(x, y, maxBits)
	if err != nil {
		return expr.Atom{}, err
	}
	if r.Int.IsZero() || r.Int.Neg == y.Int.Neg {
		return r, nil
	}
	return arithAdd(r, y, maxBits)
}

// arithPow supports an integer exponent against any base; a non-integer
// exponent against a decimal base falls back through the transcendental
// float bridge (b^e == exp(e*log(b))).
func arithPow(base, exp expr.Atom, maxBits int) (expr.Atom, error) {
	expInt, expIsInt := exponentAsInt(exp)
	if !expIsInt {
		return transcendentalBinary(base, exp, math.Pow)
	}
	neg := expInt.Neg
	mag := expInt.Abs()

	switch rankOf(base) {
	case rankInt:
		p, err := bignum.IntPow(base.Int, mag, maxBits)
		if err != nil {
			return expr.Atom{}, wrapArithErr(err)
		}
		if !neg {
			return mkInt(p), nil
		}
		if p.IsZero() {
			return expr.Atom{}, wrapArithErr(bignum.ErrDivByZero)
		}
		f, err := fraction.New(one, p)
		if err != nil {
			return expr.Atom{}, wrapArithErr(err)
		}
		return mkFrac(f), nil
	case rankFrac:
		f := base.Frac
		if neg {
			inv, err := fraction.New(bignum.Int{Mag: f.Den.Mag}, f.Num)
			if err != nil {
				return expr.Atom{}, wrapArithErr(err)
			}
			f = inv
		}
		numP, err := bignum.IntPow(f.Num, mag, maxBits)
		if err != nil {
			return expr.Atom{}, wrapArithErr(err)
		}
		denP, err := bignum.IntPow(bignum.Int{Mag: f.Den.Mag}, mag, maxBits)
		if err != nil {
			return expr.Atom{}, wrapArithErr(err)
		}
		r, err := fraction.New(numP, denP)
		if err != nil {
			return expr.Atom{}, wrapArithErr(err)
		}
		return mkFrac(r), nil
	case rankDec:
		w := widthOf(base)
		d, err := asDecimal(base, w)
		if err != nil {
			return expr.Atom{}, err
		}
		one, err := decimal.FromInteger(w, bignum.IntFromInt64(1))
		if err != nil {
			return expr.Atom{}, err
		}
		result := one
		for i := int64(0); i < magAsInt64(mag); i++ {
			result, err = decimal.Mul(result, d)
			if err != nil {
				return expr.Atom{}, wrapArithErr(err)
			}
		}
		if neg {
			result, err = decimal.Div(one, result)
			if err != nil {
				return expr.Atom{}, wrapArithErr(err)
			}
		}
		return mkDec(result), nil
	default:
		return expr.Atom{}, wrapTypeMismatch("number", base)
	}
}

func exponentAsInt(a expr.Atom) (bignum.Int, bool) {
	switch a.Kind {
	case expr.KindInt:
		return a.Int, true
	case expr.KindFraction:
		return a.Frac.AsInteger()
	case expr.KindDecimal:
		i, err := decimal.ToIntegerIfExact(a.Dec)
		return i, err == nil
	}
	return bignum.Int{}, false
}

func magAsInt64(m bignum.Uint) int64 {
	v, _ := m.Uint64()
	return int64(v)
}

func arithNeg(x expr.Atom) (expr.Atom, error) {
	switch x.Kind {
	case expr.KindInt:
		return mkInt(x.Int.Negated()), nil
	case expr.KindFraction:
		return mkFrac(fraction.Neg(x.Frac)), nil
	case expr.KindDecimal:
		return mkDec(decimal.Neg(x.Dec)), nil
	default:
		return expr.Atom{}, wrapTypeMismatch("number", x)
	}
}

func arithAbs(x expr.Atom) (expr.Atom, error) {
	switch x.Kind {
	case expr.KindInt:
		return mkInt(bignum.Int{Neg: false, Mag: x.Int.Mag}), nil
	case expr.KindFraction:
		if x.Frac.Num.Neg {
			return mkFrac(fraction.Neg(x.Frac)), nil
		}
		return x, nil
	case expr.KindDecimal:
		d := x.Dec
		d.Neg = false
		return mkDec(d), nil
	default:
		return expr.Atom{}, wrapTypeMismatch("number", x)
	}
}

func arithSign(x expr.Atom) (expr.Atom, error) {
	switch x.Kind {
	case expr.KindInt:
		if x.Int.IsZero() {
			return mkInt(bignum.IntZero()), nil
		}
		if x.Int.Neg {
			return mkInt(bignum.IntFromInt64(-1)), nil
		}
		return mkInt(bignum.IntFromInt64(1)), nil
	case expr.KindFraction:
		if x.Frac.IsZero() {
			return mkInt(bignum.IntZero()), nil
		}
		if x.Frac.Num.Neg {
			return mkInt(bignum.IntFromInt64(-1)), nil
		}
		return mkInt(bignum.IntFromInt64(1)), nil
	case expr.KindDecimal:
		if x.Dec.IsZero() {
			return mkDec(decimal.Zero(x.Dec.Width)), nil
		}
		one, err := decimal.FromInteger(x.Dec.Width, bignum.IntFromInt64(1))
		if err != nil {
			return expr.Atom{}, err
		}
		if x.Dec.Neg {
			one = decimal.Neg(one)
		}
		return mkDec(one), nil
	default:
		return expr.Atom{}, wrapTypeMismatch("number", x)
	}
}

func arithInv(x expr.Atom, maxBits int) (expr.Atom, error) {
	return arithDiv(mkInt(bignum.IntFromInt64(1)), x, maxBits)
}

func arithSq(x expr.Atom, maxBits int) (expr.Atom, error) { return arithMul(x, x, maxBits) }

func arithCubed(x expr.Atom, maxBits int) (expr.Atom, error) {
	sq, err := arithMul(x, x, maxBits)
	if err != nil {
		return expr.Atom{}, err
	}
	return arithMul(sq, x, maxBits)
}

// arithFact computes the factorial of a non-negative small integer; larger
// operands are refused rather than left to overflow an unbounded loop.
func arithFact(x expr.Atom, maxBits int) (expr.Atom, error) {
	if x.Kind != expr.KindInt || x.Int.Neg {
		return expr.Atom{}, wrapTypeMismatch("non-negative integer", x)
	}
	n, ok := x.Int.Int64()
	if !ok || n > 1_000_000 {
		return expr.Atom{}, wrapValueOutOfRange("factorial argument too large")
	}
	result := bignum.IntFromInt64(1)
	for i := int64(2); i <= n; i++ {
		var err error
		result, err = bignum.IntMul(result, bignum.IntFromInt64(i), maxBits)
		if err != nil {
			return expr.Atom{}, wrapArithErr(err)
		}
	}
	return mkInt(result), nil
}

// compareOp backs the TestLT/TestEQ/... operators, which evaluate to the
// canonical integers 0 or 1 rather than a bool Value.
func compareOp(x, y expr.Atom, cmp func(int) bool) (expr.Atom, error) {
	c, err := compareAtoms(x, y)
	if err != nil {
		return expr.Atom{}, err
	}
	if cmp(c) {
		return mkInt(bignum.IntFromInt64(1)), nil
	}
	return mkInt(bignum.IntZero()), nil
}

func compareAtoms(x, y expr.Atom) (int, error) {
	rx, ry := rankOf(x), rankOf(y)
	if rx == rankNone || ry == rankNone {
		return 0, wrapTypeMismatch("number", x)
	}
	top := rx
	if ry > top {
		top = ry
	}
	switch top {
	case rankInt:
		return x.Int.Cmp(y.Int), nil
	case rankFrac:
		fx, err := asFraction(x)
		if err != nil {
			return 0, err
		}
		fy, err := asFraction(y)
		if err != nil {
			return 0, err
		}
		return fraction.Cmp(fx, fy), nil
	default:
		w := widthOf(x)
		if wy := widthOf(y); wy > w {
			w = wy
		}
		dx, err := asDecimal(x, w)
		if err != nil {
			return 0, err
		}
		dy, err := asDecimal(y, w)
		if err != nil {
			return 0, err
		}
		return decimal.Cmp(dx, dy), nil
	}
}

// --- transcendental fallback -------------------------------------------
//
// No decimal-floating-point math library appears anywhere in the example
// corpus (grepped for shopspring/decimal, cockroachdb/apd, and
// ericlagergren/decimal with no hits), and internal/decimal implements only
// the four basic operations plus comparison — it has no series expansion for
// sin/cos/log/exp. Transcendental operators round-trip through float64 via
// the standard math package instead, accepting the precision loss as the
// cost of a function this module cannot compute exactly. This is the one
// deliberate stdlib-only corner of the evaluator's arithmetic; see
// DESIGN.md.

func transcendentalUnary(x expr.Atom, fn func(float64) float64) (expr.Atom, error) {
	w := widthOf(x)
	d, err := asDecimal(x, w)
	if err != nil {
		return expr.Atom{}, err
	}
	f := decimalToFloat64(d)
	r := fn(f)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return expr.Atom{}, wrapValueOutOfRange("result is not a finite real number")
	}
	rd, err := float64ToDecimal(r, w)
	if err != nil {
		return expr.Atom{}, err
	}
	return mkDec(rd), nil
}

func transcendentalBinary(x, y expr.Atom, fn func(float64, float64) float64) (expr.Atom, error) {
	w := widthOf(x)
	if wy := widthOf(y); wy > w {
		w = wy
	}
	dx, err := asDecimal(x, w)
	if err != nil {
		return expr.Atom{}, err
	}
	dy, err := asDecimal(y, w)
	if err != nil {
		return expr.Atom{}, err
	}
	r := fn(decimalToFloat64(dx), decimalToFloat64(dy))
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return expr.Atom{}, wrapValueOutOfRange("result is not a finite real number")
	}
	rd, err := float64ToDecimal(r, w)
	if err != nil {
		return expr.Atom{}, err
	}
	return mkDec(rd), nil
}

func decimalToFloat64(d decimal.Decimal) float64 {
	if d.IsZero() {
		return 0
	}
	m := d.Mant.Bytes()
	var v float64
	for i := len(m) - 1; i >= 0; i-- {
		v = v*256 + float64(m[i])
	}
	v *= math.Pow(2, float64(d.Exp))
	if d.Neg {
		v = -v
	}
	return v
}

func float64ToDecimal(v float64, w decimal.Width) (decimal.Decimal, error) {
	if v == 0 {
		return decimal.Zero(w), nil
	}
	neg := v < 0
	if neg {
		v = -v
	}
	frac, exp2 := math.Frexp(v) // v == frac * 2^exp2, frac in [0.5, 1)
	bits := w.MantissaBits()
	scaled := frac * math.Ldexp(1, bits)
	mant := uint64(math.Round(scaled))
	exp := exp2 - bits
	d := decimal.Decimal{Width: w, Neg: neg, Mant: bignum.UintFromUint64(mant), Exp: int32(exp)}
	return decimal.Rewidth(d, w)
}

func wrapArithErr(err error) error {
	switch err {
	case bignum.ErrDivByZero, fraction.ErrDivByZero, decimal.ErrDivByZero:
		return diagnostic.ErrZeroDivide()
	case bignum.ErrTooBig:
		return diagnostic.ErrNumberTooBig(err.Error())
	default:
		return err
	}
}
