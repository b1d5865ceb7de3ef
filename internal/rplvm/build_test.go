package rplvm

import (
	"testing"

	"db48x/internal/bignum"
	"db48x/internal/decimal"
	"db48x/internal/expr"
	"db48x/internal/parser"
	"db48x/internal/settings"
)

func TestFromParserBareCommandAndVariableAreIndistinguishable(t *testing.T) {
	cmdName := parser.Value{Kind: parser.ValueExpr, Expr: expr.Symbol("DUP")}
	varName := parser.Value{Kind: parser.ValueExpr, Expr: expr.Symbol("X")}

	cmdVal, err := FromParser(cmdName)
	if err != nil {
		t.Fatalf("FromParser(DUP): %v", err)
	}
	varVal, err := FromParser(varName)
	if err != nil {
		t.Fatalf("FromParser(X): %v", err)
	}
	if cmdVal.Kind != KindSymbol || varVal.Kind != KindSymbol {
		t.Fatalf("both a command name and a variable name must arrive as KindSymbol, got %v / %v", cmdVal.Kind, varVal.Kind)
	}
}

func TestFromParserNumberAndProgram(t *testing.T) {
	num := parser.Value{Kind: parser.ValueExpr, Expr: expr.Int(bignum.IntFromInt64(7))}
	v, err := FromParser(num)
	if err != nil {
		t.Fatalf("FromParser(7): %v", err)
	}
	if v.Kind != KindNumber {
		t.Fatalf("7 should decode as KindNumber, got %v", v.Kind)
	}

	prog := parser.Value{Kind: parser.ValueProgram, Items: []parser.Value{num, cmdExprValue("DROP")}}
	pv, err := FromParser(prog)
	if err != nil {
		t.Fatalf("FromParser(program): %v", err)
	}
	if pv.Kind != KindProgram || len(pv.Items) != 2 {
		t.Fatalf("program bridging lost shape: %+v", pv)
	}
}

func cmdExprValue(name string) parser.Value {
	return parser.Value{Kind: parser.ValueExpr, Expr: expr.Symbol(name)}
}

// TestCountedLoopSurfaceSyntaxPushesCounterEachIteration runs
// "1 10 start i next" through the real lexer, parser, and evaluator —
// the START keyword binds the loop counter under the fixed name "i"
// with no explicit declaration, so a body that is just "i" pushes the
// counter's value once per iteration. On an empty stack this leaves
// depth 10 with values 1..10, bottom to top.
func TestCountedLoopSurfaceSyntaxPushesCounterEachIteration(t *testing.T) {
	p := parser.New("1 10 start i next", 10, decimal.Width64)
	parsed, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	v, err := FromParser(parsed)
	if err != nil {
		t.Fatalf("FromParser: %v", err)
	}

	e := NewEvaluator(1<<16, settings.Default())
	if err := e.EvalTopLevel(v); err != nil {
		t.Fatalf("EvalTopLevel: %v", err)
	}
	if d := e.Stack.Depth(); d != 10 {
		t.Fatalf("depth = %d, want 10", d)
	}
	for n := 1; n <= 10; n++ {
		top, err := e.Stack.Top(11 - n)
		if err != nil {
			t.Fatalf("Top(%d): %v", 11-n, err)
		}
		if top.Kind != KindNumber || len(top.Num.Atoms) != 1 {
			t.Fatalf("value %d: not a plain number: %+v", n, top)
		}
		got, ok := top.Num.Atoms[0].Int.Int64()
		if !ok || got != int64(n) {
			t.Fatalf("value at depth %d = %v, want %d", 11-n, top.Num.Atoms[0], n)
		}
	}
}

// TestForLoopSurfaceSyntaxUsesExplicitName runs "1 3 for k k next"
// through the same pipeline, checking FOR's mandatory explicit name.
func TestForLoopSurfaceSyntaxUsesExplicitName(t *testing.T) {
	p := parser.New("1 3 for k k next", 10, decimal.Width64)
	parsed, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	v, err := FromParser(parsed)
	if err != nil {
		t.Fatalf("FromParser: %v", err)
	}

	e := NewEvaluator(1<<16, settings.Default())
	if err := e.EvalTopLevel(v); err != nil {
		t.Fatalf("EvalTopLevel: %v", err)
	}
	if d := e.Stack.Depth(); d != 3 {
		t.Fatalf("depth = %d, want 3", d)
	}
	if _, err := e.Dir.Recall("k"); err == nil {
		t.Fatal("loop variable k must not leak into the enclosing directory after the loop ends")
	}
}

// TestDoUntilSurfaceSyntax runs "0 do 1 ADD until DUP 3 TESTEQ end" and
// expects the body to have executed exactly three times.
func TestDoUntilSurfaceSyntax(t *testing.T) {
	p := parser.New("0 do 1 ADD until DUP 3 TESTEQ end", 10, decimal.Width64)
	parsed, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	v, err := FromParser(parsed)
	if err != nil {
		t.Fatalf("FromParser: %v", err)
	}

	e := NewEvaluator(1<<16, settings.Default())
	if err := e.EvalTopLevel(v); err != nil {
		t.Fatalf("EvalTopLevel: %v", err)
	}
	top, err := e.Stack.Top(1)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	got, ok := top.Num.Atoms[0].Int.Int64()
	if !ok || got != 3 {
		t.Fatalf("top = %v, want 3", top)
	}
}

// TestStartStepSurfaceSyntaxPopsStepEachIteration runs a START...STEP
// loop whose body leaves a fresh, ever-growing step value each pass
// ("1 100 start i DUP step": push the counter, DUP it so one copy
// accumulates and the other is consumed as the next step). A step
// that doubles the counter only produces 1, 2, 4, 8, 16, 32, 64 before
// the next counter value of 128 exceeds the upper bound — a sequence
// that a single pop-before-the-loop implementation could never
// produce, since no step value exists until the body has run once.
func TestStartStepSurfaceSyntaxPopsStepEachIteration(t *testing.T) {
	p := parser.New("1 100 start i DUP step", 10, decimal.Width64)
	parsed, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	v, err := FromParser(parsed)
	if err != nil {
		t.Fatalf("FromParser: %v", err)
	}

	e := NewEvaluator(1<<16, settings.Default())
	if err := e.EvalTopLevel(v); err != nil {
		t.Fatalf("EvalTopLevel: %v", err)
	}
	want := []int64{1, 2, 4, 8, 16, 32, 64}
	if d := e.Stack.Depth(); d != len(want) {
		t.Fatalf("depth = %d, want %d", d, len(want))
	}
	for i, w := range want {
		top, err := e.Stack.Top(len(want) - i)
		if err != nil {
			t.Fatalf("Top(%d): %v", len(want)-i, err)
		}
		got, ok := top.Num.Atoms[0].Int.Int64()
		if !ok || got != w {
			t.Fatalf("value at position %d = %v, want %d", i, top.Num.Atoms[0], w)
		}
	}
}
