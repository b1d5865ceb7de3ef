package decimal

import (
	"testing"

	"db48x/internal/bignum"
)

func mustInt(t *testing.T, s string) bignum.Int {
	t.Helper()
	i, err := bignum.ParseInt(s)
	if err != nil {
		t.Fatalf("ParseInt(%q): %v", s, err)
	}
	return i
}

func mustDecimal(t *testing.T, w Width, s string) Decimal {
	t.Helper()
	d, err := FromInteger(w, mustInt(t, s))
	if err != nil {
		t.Fatalf("FromInteger(%q): %v", s, err)
	}
	return d
}

func TestFromIntegerRoundTrip(t *testing.T) {
	cases := []string{"0", "1", "-1", "12345", "-999999999", "1024"}
	for _, c := range cases {
		d := mustDecimal(t, Width64, c)
		i, err := ToIntegerIfExact(d)
		if err != nil {
			t.Fatalf("%s: ToIntegerIfExact: %v", c, err)
		}
		if bignum.FormatInt(i) != c {
			t.Errorf("%s: round-trip got %s", c, bignum.FormatInt(i))
		}
	}
}

func TestAddBasic(t *testing.T) {
	a := mustDecimal(t, Width64, "2")
	b := mustDecimal(t, Width64, "3")
	sum, err := Add(a, b)
	if err != nil {
		t.Fatal(err)
	}
	s, err := Format(sum)
	if err != nil {
		t.Fatal(err)
	}
	if s != "5" {
		t.Errorf("2+3 = %s, want 5", s)
	}
}

func TestSubToZero(t *testing.T) {
	a := mustDecimal(t, Width64, "7")
	b := mustDecimal(t, Width64, "7")
	diff, err := Sub(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !diff.IsZero() {
		t.Errorf("7-7 not zero: %+v", diff)
	}
}

func TestMulBasic(t *testing.T) {
	a := mustDecimal(t, Width64, "6")
	b := mustDecimal(t, Width64, "7")
	prod, err := Mul(a, b)
	if err != nil {
		t.Fatal(err)
	}
	s, err := Format(prod)
	if err != nil {
		t.Fatal(err)
	}
	if s != "42" {
		t.Errorf("6*7 = %s, want 42", s)
	}
}

func TestDivExact(t *testing.T) {
	a := mustDecimal(t, Width64, "10")
	b := mustDecimal(t, Width64, "4")
	q, err := Div(a, b)
	if err != nil {
		t.Fatal(err)
	}
	s, err := Format(q)
	if err != nil {
		t.Fatal(err)
	}
	if s != "2.5E+0" {
		t.Errorf("10/4 = %s, want 2.5E+0", s)
	}
}

func TestDivByZero(t *testing.T) {
	a := mustDecimal(t, Width64, "1")
	z := Zero(Width64)
	if _, err := Div(a, z); err != ErrDivByZero {
		t.Errorf("Div by zero: got %v, want ErrDivByZero", err)
	}
}

func TestCmpOrdering(t *testing.T) {
	a := mustDecimal(t, Width64, "3")
	b := mustDecimal(t, Width64, "5")
	if Cmp(a, b) >= 0 {
		t.Errorf("3 vs 5: expected negative")
	}
	if Cmp(b, a) <= 0 {
		t.Errorf("5 vs 3: expected positive")
	}
	if Cmp(a, a) != 0 {
		t.Errorf("3 vs 3: expected zero")
	}
}

func TestNegRoundTrip(t *testing.T) {
	a := mustDecimal(t, Width64, "42")
	n := Neg(a)
	back := Neg(n)
	sa, _ := Format(a)
	sb, _ := Format(back)
	if sa != sb {
		t.Errorf("neg(neg(x)) = %s, want %s", sb, sa)
	}
	ns, _ := Format(n)
	if ns != "-42" {
		t.Errorf("neg(42) = %s, want -42", ns)
	}
}

func TestRoundTruncatesFraction(t *testing.T) {
	a := mustDecimal(t, Width64, "10")
	b := mustDecimal(t, Width64, "4")
	q, err := Div(a, b)
	if err != nil {
		t.Fatal(err)
	}
	r := Round(q)
	s, err := Format(r)
	if err != nil {
		t.Fatal(err)
	}
	if s != "2" {
		t.Errorf("round(2.5) = %s, want 2", s)
	}
}

func TestToIntegerIfExactFailsOnFraction(t *testing.T) {
	a := mustDecimal(t, Width64, "10")
	b := mustDecimal(t, Width64, "3")
	q, err := Div(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ToIntegerIfExact(q); err != ErrNotExact {
		t.Errorf("ToIntegerIfExact(10/3): got %v, want ErrNotExact", err)
	}
}

func TestWidthMantissaBits(t *testing.T) {
	if Width32.mantissaBits() >= Width64.mantissaBits() {
		t.Errorf("Width32 mantissa should be narrower than Width64")
	}
	if Width64.mantissaBits() >= Width128.mantissaBits() {
		t.Errorf("Width64 mantissa should be narrower than Width128")
	}
}
