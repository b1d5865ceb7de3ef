package main

import (
	"testing"

	"db48x/internal/bignum"
	"db48x/internal/expr"
	"db48x/internal/fraction"
	"db48x/internal/rplvm"
	"db48x/internal/settings"
)

func TestRenderValueInteger(t *testing.T) {
	s := settings.Default()
	v := rplvm.Number(expr.Int(bignum.IntFromInt64(1234567)))
	got := renderValue(v, s)
	want := "1 234 567"
	if got != want {
		t.Errorf("renderValue(1234567) = %q, want %q", got, want)
	}
}

func TestRenderValueNegativeInteger(t *testing.T) {
	s := settings.Default()
	v := rplvm.Number(expr.Int(bignum.IntFromInt64(-42)))
	if got, want := renderValue(v, s), "-42"; got != want {
		t.Errorf("renderValue(-42) = %q, want %q", got, want)
	}
}

func TestRenderValueFraction(t *testing.T) {
	s := settings.Default()
	f := fraction.Fraction{Num: bignum.IntFromInt64(3), Den: bignum.UintFromUint64(4)}
	v := rplvm.Number(expr.Frac(f))
	if got, want := renderValue(v, s), "3/4"; got != want {
		t.Errorf("renderValue(3/4) = %q, want %q", got, want)
	}
}

func TestRenderValueSymbolAndText(t *testing.T) {
	s := settings.Default()
	if got, want := renderValue(rplvm.Symbol("X"), s), "X"; got != want {
		t.Errorf("renderValue(symbol X) = %q, want %q", got, want)
	}
	if got, want := renderValue(rplvm.Text("hi"), s), `"hi"`; got != want {
		t.Errorf("renderValue(text hi) = %q, want %q", got, want)
	}
}

func TestRenderValueProgramAndList(t *testing.T) {
	s := settings.Default()
	prog := rplvm.Value{Kind: rplvm.KindProgram, Items: []rplvm.Value{
		rplvm.Number(expr.Int(bignum.IntFromInt64(1))),
		rplvm.Symbol("DUP"),
	}}
	if got, want := renderValue(prog, s), "« 1 DUP »"; got != want {
		t.Errorf("renderValue(program) = %q, want %q", got, want)
	}

	list := rplvm.Value{Kind: rplvm.KindList, Items: []rplvm.Value{
		rplvm.Number(expr.Int(bignum.IntFromInt64(1))),
		rplvm.Number(expr.Int(bignum.IntFromInt64(2))),
	}}
	if got, want := renderValue(list, s), "{ 1 2 }"; got != want {
		t.Errorf("renderValue(list) = %q, want %q", got, want)
	}
}

func TestRenderValueBased(t *testing.T) {
	s := settings.Default()
	v := rplvm.Value{Kind: rplvm.KindBased, Based: rplvm.Based{
		Mag:      bignum.UintFromUint64(255),
		Base:     16,
		WordSize: 8,
	}}
	if got, want := renderValue(v, s), "#FFh"; got != want {
		t.Errorf("renderValue(#FFh) = %q, want %q", got, want)
	}
}
