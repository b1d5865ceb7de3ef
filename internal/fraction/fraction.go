// Package fraction implements canonicalized exact rationals built on top
// of internal/bignum, the way surge layers its VKBigFloat/VKBigInt numeric
// kinds over internal/vm/bignum rather than hand-rolling arithmetic inline.
// A Fraction is always reduced: gcd(|Num|, Den) == 1 and Den > 0. A
// reduction that reaches Den == 1 (zero is stored as 0/1) is reported by
// IsInteger, and the call site collapses such a value back to a plain
// Int, mirroring the calculator's promotion rule that an exact integer
// result is represented as an integer, not a fraction with denominator
// one.
package fraction

import (
	"errors"

	"db48x/internal/bignum"
)

var ErrDivByZero = errors.New("division by zero")

// Fraction is Num/Den in lowest terms, with Den always positive and the
// sign carried on Num.
type Fraction struct {
	Num bignum.Int
	Den bignum.Uint
}

// New builds a canonical Fraction from a numerator and a non-zero
// denominator magnitude, folding the denominator's sign into Num.
func New(num bignum.Int, den bignum.Int) (Fraction, error) {
	if den.IsZero() {
		return Fraction{}, ErrDivByZero
	}
	n := num
	if den.Neg {
		n = n.Negated()
	}
	return reduce(n, den.Abs())
}

func reduce(num bignum.Int, den bignum.Uint) (Fraction, error) {
	if num.IsZero() {
		return Fraction{Num: bignum.IntZero(), Den: bignum.UintFromUint64(1)}, nil
	}
	g := bignum.GCD(num.Abs(), den)
	if g.IsZero() {
		return Fraction{}, ErrDivByZero
	}
	if one, ok := g.Uint64(); ok && one == 1 {
		return Fraction{Num: num, Den: den}, nil
	}
	nq, _, err := bignum.UintDivMod(num.Abs(), g, 0)
	if err != nil {
		return Fraction{}, err
	}
	dq, _, err := bignum.UintDivMod(den, g, 0)
	if err != nil {
		return Fraction{}, err
	}
	return Fraction{Num: bignum.Int{Neg: num.Neg, Mag: nq.Mag}, Den: dq}, nil
}

// IsInteger reports whether f has reduced to an exact integer (Den == 1),
// the signal callers use to collapse a Fraction back to a plain Int.
func (f Fraction) IsInteger() bool {
	v, ok := f.Den.Uint64()
	return ok && v == 1
}

// AsInteger returns the numerator when IsInteger is true.
func (f Fraction) AsInteger() (bignum.Int, bool) {
	if !f.IsInteger() {
		return bignum.Int{}, false
	}
	return f.Num, true
}

// IsZero reports whether f is exactly zero.
func (f Fraction) IsZero() bool { return f.Num.IsZero() }

// Neg returns -f.
func Neg(f Fraction) Fraction { return Fraction{Num: f.Num.Negated(), Den: f.Den} }

// Cmp compares two Fractions by cross-multiplication.
func Cmp(a, b Fraction) int {
	lhs, err := bignum.IntMul(a.Num, bignum.Int{Mag: b.Den.Mag}, 0)
	if err != nil {
		return a.Num.Cmp(b.Num)
	}
	rhs, err := bignum.IntMul(b.Num, bignum.Int{Mag: a.Den.Mag}, 0)
	if err != nil {
		return a.Num.Cmp(b.Num)
	}
	return lhs.Cmp(rhs)
}

// Add returns a+b, reduced.
func Add(a, b Fraction) (Fraction, error) {
	if sameDen(a, b) {
		num, err := bignum.IntAdd(a.Num, b.Num, 0)
		if err != nil {
			return Fraction{}, err
		}
		return reduce(num, a.Den)
	}
	lt, err := bignum.IntMul(a.Num, bignum.Int{Mag: b.Den.Mag}, 0)
	if err != nil {
		return Fraction{}, err
	}
	rt, err := bignum.IntMul(b.Num, bignum.Int{Mag: a.Den.Mag}, 0)
	if err != nil {
		return Fraction{}, err
	}
	num, err := bignum.IntAdd(lt, rt, 0)
	if err != nil {
		return Fraction{}, err
	}
	den, err := bignum.UintMul(a.Den, b.Den, 0)
	if err != nil {
		return Fraction{}, err
	}
	return reduce(num, den)
}

// Sub returns a-b, reduced.
func Sub(a, b Fraction) (Fraction, error) { return Add(a, Neg(b)) }

// Mul returns a*b, reduced.
func Mul(a, b Fraction) (Fraction, error) {
	num, err := bignum.IntMul(a.Num, b.Num, 0)
	if err != nil {
		return Fraction{}, err
	}
	den, err := bignum.UintMul(a.Den, b.Den, 0)
	if err != nil {
		return Fraction{}, err
	}
	return reduce(num, den)
}

// Div returns a/b, reduced.
func Div(a, b Fraction) (Fraction, error) {
	if b.IsZero() {
		return Fraction{}, ErrDivByZero
	}
	num, err := bignum.IntMul(a.Num, bignum.Int{Mag: b.Den.Mag}, 0)
	if err != nil {
		return Fraction{}, err
	}
	den, err := bignum.UintMul(a.Den, b.Num.Abs(), 0)
	if err != nil {
		return Fraction{}, err
	}
	if b.Num.Neg {
		num = num.Negated()
	}
	return reduce(num, den)
}

func sameDen(a, b Fraction) bool { return a.Den.Cmp(b.Den) == 0 }

// Format renders f as "num/den", or a bare integer if IsInteger.
func Format(f Fraction) string {
	if f.IsInteger() {
		return bignum.FormatInt(f.Num)
	}
	return bignum.FormatInt(f.Num) + "/" + bignum.FormatUint(f.Den)
}
