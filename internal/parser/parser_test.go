package parser

import (
	"testing"

	"db48x/internal/decimal"
)

func newTestParser(src string) *Parser {
	return New(src, 10, decimal.Width64)
}

func TestParseAlgebraicPrecedence(t *testing.T) {
	v, err := newTestParser("1+2*3").ParseAlgebraic()
	if err != nil {
		t.Fatal(err)
	}
	if got := v.Expr.Render(); got != "1+2*3" {
		t.Errorf("Render = %q, want 1+2*3", got)
	}
}

func TestParseAlgebraicParens(t *testing.T) {
	v, err := newTestParser("(1+2)*3").ParseAlgebraic()
	if err != nil {
		t.Fatal(err)
	}
	if got := v.Expr.Render(); got != "(1+2)*3" {
		t.Errorf("Render = %q, want (1+2)*3", got)
	}
}

func TestParseAlgebraicUnaryMinus(t *testing.T) {
	v, err := newTestParser("-x+1").ParseAlgebraic()
	if err != nil {
		t.Fatal(err)
	}
	if got := v.Expr.Render(); got != "neg(x)+1" {
		t.Errorf("Render = %q, want neg(x)+1", got)
	}
}

func TestParseAlgebraicPowRightAssoc(t *testing.T) {
	v, err := newTestParser("x^y^z").ParseAlgebraic()
	if err != nil {
		t.Fatal(err)
	}
	if got := v.Expr.Render(); got != "x^y^z" {
		t.Errorf("Render = %q, want x^y^z", got)
	}
}

func TestParseFuncall(t *testing.T) {
	v, err := newTestParser("SIN(x;2)").ParseAlgebraic()
	if err != nil {
		t.Fatal(err)
	}
	if got := v.Expr.Render(); got != "SIN(x;2)" {
		t.Errorf("Render = %q, want SIN(x;2)", got)
	}
}

func TestParseAlgebraicRejectsTrailingInput(t *testing.T) {
	if _, err := newTestParser("1+2 3").ParseAlgebraic(); err == nil {
		t.Error("expected an error for unconsumed trailing input")
	}
}

func TestParseProgramOfObjects(t *testing.T) {
	v, err := newTestParser("1 2 ADD").ParseProgram()
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != ValueProgram || len(v.Items) != 3 {
		t.Fatalf("got %+v", v)
	}
	if v.Items[2].Expr.Render() != "ADD" {
		t.Errorf("third item = %q, want ADD", v.Items[2].Expr.Render())
	}
}

func TestParseNestedProgram(t *testing.T) {
	v, err := newTestParser("«1 2 ADD»").ParseProgram()
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Items) != 1 || v.Items[0].Kind != ValueProgram {
		t.Fatalf("got %+v", v)
	}
	inner := v.Items[0].Items
	if len(inner) != 3 {
		t.Fatalf("inner program has %d items, want 3", len(inner))
	}
}

func TestParseList(t *testing.T) {
	v, err := newTestParser("{1 2 3}").ParseProgram()
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Items) != 1 || v.Items[0].Kind != ValueList {
		t.Fatalf("got %+v", v)
	}
	if len(v.Items[0].Items) != 3 {
		t.Errorf("list has %d items, want 3", len(v.Items[0].Items))
	}
}

func TestParseQuotedExpression(t *testing.T) {
	v, err := newTestParser("'x+1'").ParseProgram()
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Items) != 1 || v.Items[0].Kind != ValueExpr {
		t.Fatalf("got %+v", v)
	}
	if got := v.Items[0].Expr.Render(); got != "x+1" {
		t.Errorf("Render = %q, want x+1", got)
	}
}

func TestParseDecimalLiteral(t *testing.T) {
	v, err := newTestParser("3.5").ParseAlgebraic()
	if err != nil {
		t.Fatal(err)
	}
	s, err := decimal.Format(v.Expr.Atoms[0].Dec)
	if err != nil {
		t.Fatal(err)
	}
	if s != "3.5E+0" {
		t.Errorf("Format = %q, want 3.5E+0", s)
	}
}

func TestParseBasedLiteral(t *testing.T) {
	v, err := newTestParser("#FFh").ParseAlgebraic()
	if err != nil {
		t.Fatal(err)
	}
	if got := v.Expr.Render(); got != "255" {
		t.Errorf("Render = %q, want 255", got)
	}
}
