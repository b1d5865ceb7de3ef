package expr

import (
	"testing"

	"db48x/internal/bignum"
	"db48x/internal/fraction"
)

func i(v int64) Expr { return Int(bignum.IntFromInt64(v)) }

func fracHalf() (Expr, error) {
	f, err := fraction.New(bignum.IntFromInt64(1), bignum.IntFromInt64(2))
	if err != nil {
		return Expr{}, err
	}
	return Frac(f), nil
}

func TestRenderAtomic(t *testing.T) {
	if got := i(42).Render(); got != "42" {
		t.Errorf("Render(42) = %q", got)
	}
	if got := Symbol("x").Render(); got != "x" {
		t.Errorf("Render(x) = %q", got)
	}
}

func TestRenderInfixMinimalParens(t *testing.T) {
	// (x + 1) * y needs parens around the sum; x * y + 1 does not.
	sum := Binary(OpAdd, Symbol("x"), i(1))
	prod := Binary(OpMul, sum, Symbol("y"))
	if got := prod.Render(); got != "(x+1)*y" {
		t.Errorf("Render = %q, want (x+1)*y", got)
	}

	noParens := Binary(OpAdd, Binary(OpMul, Symbol("x"), Symbol("y")), i(1))
	if got := noParens.Render(); got != "x*y+1" {
		t.Errorf("Render = %q, want x*y+1", got)
	}
}

func TestRenderFuncall(t *testing.T) {
	e := Funcall("f", []Expr{Symbol("x"), i(2)})
	if got := e.Render(); got != "f(x;2)" {
		t.Errorf("Render = %q, want f(x;2)", got)
	}
}

func TestRenderPowRightAssociative(t *testing.T) {
	e := Binary(OpPow, Symbol("x"), Binary(OpPow, Symbol("y"), Symbol("z")))
	if got := e.Render(); got != "x^y^z" {
		t.Errorf("Render = %q, want x^y^z (no parens needed, right assoc)", got)
	}
}

func TestMatchLiteralAndHole(t *testing.T) {
	pat := Compile(Binary(OpAdd, Symbol("a"), i(0)))
	subject := Binary(OpAdd, Symbol("x"), i(0))
	bindings, ok := Match(pat, subject)
	if !ok {
		t.Fatal("expected match")
	}
	if bindings["a"].Render() != "x" {
		t.Errorf("a bound to %q, want x", bindings["a"].Render())
	}
}

func TestMatchRepeatedHoleRequiresEquality(t *testing.T) {
	pat := Compile(Binary(OpSub, Symbol("a"), Symbol("a")))
	same := Binary(OpSub, Symbol("x"), Symbol("x"))
	if _, ok := Match(pat, same); !ok {
		t.Error("expected match when both occurrences are equal")
	}
	diff := Binary(OpSub, Symbol("x"), Symbol("y"))
	if _, ok := Match(pat, diff); ok {
		t.Error("expected no match when occurrences differ")
	}
}

func TestMatchUppercaseSymbolIsLiteral(t *testing.T) {
	pat := Compile(Binary(OpAdd, Symbol("Pi"), Symbol("a")))
	subject := Binary(OpAdd, Symbol("Pi"), i(3))
	if _, ok := Match(pat, subject); !ok {
		t.Error("expected Pi to match literally")
	}
	wrong := Binary(OpAdd, Symbol("x"), i(3))
	if _, ok := Match(pat, wrong); ok {
		t.Error("Pi should not match an unrelated symbol")
	}
}

func TestSimplifyIdentities(t *testing.T) {
	e := Binary(OpAdd, Symbol("x"), i(0))
	got := e.Simplify()
	if got.Render() != "x" {
		t.Errorf("Simplify(x+0) = %q, want x", got.Render())
	}

	e2 := Binary(OpMul, i(1), Symbol("y"))
	if got := e2.Simplify(); got.Render() != "y" {
		t.Errorf("Simplify(1*y) = %q, want y", got.Render())
	}
}

func TestExpandDistributesProduct(t *testing.T) {
	e := Binary(OpMul, Symbol("a"), Binary(OpAdd, Symbol("b"), Symbol("c")))
	got := e.Expand()
	if got.Render() != "a*b+a*c" {
		t.Errorf("Expand = %q, want a*b+a*c", got.Render())
	}
}

func TestExpandDistributesPowerOverSum(t *testing.T) {
	e := Binary(OpPow, Binary(OpAdd, Symbol("a"), Symbol("b")), i(2))
	got := e.Expand()
	if got.Render() != "a^2+2*a*b+b^2" {
		t.Errorf("Expand((a+b)^2) = %q, want a^2+2*a*b+b^2", got.Render())
	}
}

func TestExpandDistributesPowerOverDifference(t *testing.T) {
	e := Binary(OpPow, Binary(OpSub, Symbol("a"), Symbol("b")), i(2))
	got := e.Expand()
	if got.Render() != "a^2-2*a*b+b^2" {
		t.Errorf("Expand((a-b)^2) = %q, want a^2-2*a*b+b^2", got.Render())
	}
}

func TestExpandDistributesPowerOverProduct(t *testing.T) {
	e := Binary(OpPow, Binary(OpMul, Symbol("a"), Symbol("b")), Symbol("n"))
	got := e.Expand()
	if got.Render() != "a^n*b^n" {
		t.Errorf("Expand((a*b)^n) = %q, want a^n*b^n", got.Render())
	}
}

func TestAsDifferenceForSolve(t *testing.T) {
	eq := Binary(OpTestEQ, Symbol("x"), i(5))
	diff, ok := eq.AsDifferenceForSolve()
	if !ok {
		t.Fatal("expected conversion to succeed")
	}
	if diff.Render() != "x-5" {
		t.Errorf("AsDifferenceForSolve = %q, want x-5", diff.Render())
	}

	notEq := Binary(OpAdd, Symbol("x"), i(5))
	if _, ok := notEq.AsDifferenceForSolve(); ok {
		t.Error("expected failure for a non-equation root")
	}
}

func TestRewriteSingleSubterm(t *testing.T) {
	rule := NewRule(Binary(OpAdd, Symbol("a"), i(0)), Symbol("a"))
	e := Binary(OpMul, Binary(OpAdd, Symbol("x"), i(0)), i(2))
	got := e.Rewrite(rule)
	if got.Render() != "x*2" {
		t.Errorf("Rewrite = %q, want x*2", got.Render())
	}
}

func TestCompareAcrossPromotionLattice(t *testing.T) {
	intOne := i(1)
	fracOneHalf, err := fracHalf()
	if err != nil {
		t.Fatal(err)
	}
	cmp, err := Compare(intOne, fracOneHalf)
	if err != nil {
		t.Fatal(err)
	}
	if cmp <= 0 {
		t.Errorf("Compare(1, 1/2) = %d, want > 0", cmp)
	}
}

func TestComplexArithmetic(t *testing.T) {
	a := Rect(i(1), i(2))
	b := Rect(i(3), i(4))
	sum := AddComplex(a, b)
	if sum.Re.Render() != "1+3" || sum.Im.Render() != "2+4" {
		t.Errorf("AddComplex built unexpected expressions: %+v", sum)
	}
	conj := Conjugate(a)
	if conj.Im.Render() != "neg(2)" {
		t.Errorf("Conjugate.Im = %q, want neg(2)", conj.Im.Render())
	}
}
