package fraction

import (
	"testing"

	"db48x/internal/bignum"
)

func mustFrac(t *testing.T, num, den int64) Fraction {
	t.Helper()
	f, err := New(bignum.IntFromInt64(num), bignum.IntFromInt64(den))
	if err != nil {
		t.Fatalf("New(%d, %d): %v", num, den, err)
	}
	return f
}

func TestNewReducesToLowestTerms(t *testing.T) {
	f := mustFrac(t, 6, 8)
	if Format(f) != "3/4" {
		t.Errorf("6/8 reduced = %s, want 3/4", Format(f))
	}
}

func TestNewCollapsesToInteger(t *testing.T) {
	f := mustFrac(t, 10, 5)
	if !f.IsInteger() {
		t.Fatalf("10/5 should reduce to an integer")
	}
	if Format(f) != "2" {
		t.Errorf("10/5 = %s, want 2", Format(f))
	}
}

func TestNewNegativeDenominatorFoldsSign(t *testing.T) {
	f := mustFrac(t, 3, -4)
	if Format(f) != "-3/4" {
		t.Errorf("3/-4 = %s, want -3/4", Format(f))
	}
}

func TestDivByZero(t *testing.T) {
	if _, err := New(bignum.IntFromInt64(1), bignum.IntFromInt64(0)); err != ErrDivByZero {
		t.Errorf("New(1,0): got %v, want ErrDivByZero", err)
	}
}

func TestAddDifferentDenominators(t *testing.T) {
	a := mustFrac(t, 1, 2)
	b := mustFrac(t, 1, 3)
	sum, err := Add(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if Format(sum) != "5/6" {
		t.Errorf("1/2+1/3 = %s, want 5/6", Format(sum))
	}
}

func TestSubToZero(t *testing.T) {
	a := mustFrac(t, 2, 3)
	b := mustFrac(t, 2, 3)
	diff, err := Sub(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !diff.IsZero() {
		t.Errorf("2/3 - 2/3 not zero: %+v", diff)
	}
}

func TestMul(t *testing.T) {
	a := mustFrac(t, 2, 3)
	b := mustFrac(t, 3, 4)
	prod, err := Mul(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if Format(prod) != "1/2" {
		t.Errorf("2/3 * 3/4 = %s, want 1/2", Format(prod))
	}
}

func TestDiv(t *testing.T) {
	a := mustFrac(t, 1, 2)
	b := mustFrac(t, 1, 4)
	q, err := Div(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if Format(q) != "2" {
		t.Errorf("1/2 / 1/4 = %s, want 2", Format(q))
	}
}

func TestDivByZeroFraction(t *testing.T) {
	a := mustFrac(t, 1, 2)
	z := mustFrac(t, 0, 1)
	if _, err := Div(a, z); err != ErrDivByZero {
		t.Errorf("Div by zero fraction: got %v, want ErrDivByZero", err)
	}
}

func TestCmp(t *testing.T) {
	a := mustFrac(t, 1, 3)
	b := mustFrac(t, 1, 2)
	if Cmp(a, b) >= 0 {
		t.Errorf("1/3 vs 1/2: expected negative")
	}
	if Cmp(b, a) <= 0 {
		t.Errorf("1/2 vs 1/3: expected positive")
	}
	if Cmp(a, a) != 0 {
		t.Errorf("1/3 vs 1/3: expected zero")
	}
}

func TestNeg(t *testing.T) {
	a := mustFrac(t, 3, 4)
	n := Neg(a)
	if Format(n) != "-3/4" {
		t.Errorf("neg(3/4) = %s, want -3/4", Format(n))
	}
	if Format(Neg(n)) != "3/4" {
		t.Errorf("neg(neg(3/4)) = %s, want 3/4", Format(Neg(n)))
	}
}
