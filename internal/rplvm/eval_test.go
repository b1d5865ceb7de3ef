package rplvm

import (
	"testing"

	"db48x/internal/bignum"
	"db48x/internal/expr"
	"db48x/internal/settings"
)

func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	return NewEvaluator(1<<16, settings.Default())
}

func pushInt(t *testing.T, e *Evaluator, v int64) {
	t.Helper()
	if err := e.Stack.Push(Number(expr.Int(bignum.IntFromInt64(v)))); err != nil {
		t.Fatalf("push %d: %v", v, err)
	}
}

func popInt(t *testing.T, e *Evaluator) int64 {
	t.Helper()
	v, err := e.Stack.Pop()
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if v.Kind != KindNumber || len(v.Num.Atoms) != 1 || v.Num.Atoms[0].Kind != expr.KindInt {
		t.Fatalf("pop: not an integer: %+v", v)
	}
	n, ok := v.Num.Atoms[0].Int.Int64()
	if !ok {
		t.Fatalf("pop: integer too large for int64")
	}
	return n
}

func TestStackOpsDupSwapDrop(t *testing.T) {
	e := newTestEvaluator(t)
	pushInt(t, e, 1)
	pushInt(t, e, 2)
	if err := e.evalSymbol("DUP"); err != nil {
		t.Fatalf("DUP: %v", err)
	}
	if d := e.Stack.Depth(); d != 3 {
		t.Fatalf("depth after DUP = %d, want 3", d)
	}
	if got := popInt(t, e); got != 2 {
		t.Errorf("top after DUP = %d, want 2", got)
	}
	if err := e.evalSymbol("SWAP"); err != nil {
		t.Fatalf("SWAP: %v", err)
	}
	if got := popInt(t, e); got != 1 {
		t.Errorf("top after SWAP = %d, want 1", got)
	}
	if got := popInt(t, e); got != 2 {
		t.Errorf("remaining after SWAP = %d, want 2", got)
	}
	if d := e.Stack.Depth(); d != 0 {
		t.Fatalf("depth at end = %d, want 0", d)
	}
}

func TestArithmeticCommandsAddDivStayExact(t *testing.T) {
	e := newTestEvaluator(t)
	pushInt(t, e, 4)
	pushInt(t, e, 2)
	if err := e.evalSymbol("ADD"); err != nil {
		t.Fatalf("ADD: %v", err)
	}
	if got := popInt(t, e); got != 6 {
		t.Errorf("4 2 ADD = %d, want 6", got)
	}

	pushInt(t, e, 4)
	pushInt(t, e, 2)
	if err := e.evalSymbol("DIV"); err != nil {
		t.Fatalf("DIV: %v", err)
	}
	if got := popInt(t, e); got != 2 {
		t.Errorf("4 2 DIV = %d, want 2 (exact integer, not decimal)", got)
	}
}

func TestDivByZeroLeavesStackUnchangedUnderEvalTopLevel(t *testing.T) {
	e := newTestEvaluator(t)
	prog := Value{Kind: KindProgram, Items: []Value{
		Number(expr.Int(bignum.IntFromInt64(1))),
		Number(expr.Int(bignum.IntFromInt64(0))),
		Symbol("DIV"),
	}}
	if err := e.EvalTopLevel(prog); err == nil {
		t.Fatal("expected zero_divide error")
	}
	if d := e.Stack.Depth(); d != 0 {
		t.Fatalf("stack depth after failed division = %d, want 0 (unchanged)", d)
	}
}

func TestStoRcl(t *testing.T) {
	e := newTestEvaluator(t)
	pushInt(t, e, 42)
	if err := e.Stack.Push(Symbol("X")); err != nil {
		t.Fatalf("push symbol: %v", err)
	}
	if err := e.evalSymbol("STO"); err != nil {
		t.Fatalf("STO: %v", err)
	}
	if d := e.Stack.Depth(); d != 0 {
		t.Fatalf("depth after STO = %d, want 0", d)
	}
	if err := e.Stack.Push(Symbol("X")); err != nil {
		t.Fatalf("push symbol: %v", err)
	}
	if err := e.evalSymbol("RCL"); err != nil {
		t.Fatalf("RCL: %v", err)
	}
	if got := popInt(t, e); got != 42 {
		t.Errorf("RCL X = %d, want 42", got)
	}
}

func TestUnboundSymbolRecallErrors(t *testing.T) {
	e := newTestEvaluator(t)
	if err := e.evalSymbol("UNDEFINEDNAME"); err == nil {
		t.Fatal("expected undefined_name error")
	}
}

// TestCountedLoopSumsToTen runs "0 1 10 FOR I I ADD NEXT" by
// hand-building the equivalent Loop object, adding each counter value
// 1..10 into the running total via ADD, and checks the final sum is 55.
func TestCountedLoopSumsToTen(t *testing.T) {
	e := newTestEvaluator(t)
	pushInt(t, e, 0) // running total

	body := Value{Kind: KindProgram, Items: []Value{
		Symbol("I"), Symbol("ADD"),
	}}
	loop := &Loop{
		Kind:    LoopCounted,
		Named:   true,
		Stepped: false,
		VarName: "I",
		Body:    body,
	}
	pushInt(t, e, 1)
	pushInt(t, e, 10)
	if err := e.runLoop(loop); err != nil {
		t.Fatalf("runLoop: %v", err)
	}
	if got := popInt(t, e); got != 55 {
		t.Errorf("sum 1..10 = %d, want 55", got)
	}
}

func TestDoUntilLoopRunsBodyAtLeastOnce(t *testing.T) {
	e := newTestEvaluator(t)
	pushInt(t, e, 0)
	body := Value{Kind: KindProgram, Items: []Value{
		Number(expr.Int(bignum.IntFromInt64(1))), Symbol("ADD"),
	}}
	cond := Value{Kind: KindProgram, Items: []Value{
		Number(expr.Int(bignum.IntFromInt64(1))),
	}}
	loop := &Loop{Kind: LoopDoUntil, Body: body, Cond: cond}
	if err := e.runLoop(loop); err != nil {
		t.Fatalf("runLoop: %v", err)
	}
	if got := popInt(t, e); got != 1 {
		t.Errorf("do-until ran %d times, want exactly 1", got)
	}
}

func TestInterruptAbortsLoop(t *testing.T) {
	e := newTestEvaluator(t)
	e.Interrupt()
	body := Value{Kind: KindProgram}
	cond := Value{Kind: KindProgram, Items: []Value{
		Number(expr.Int(bignum.IntFromInt64(0))),
	}}
	loop := &Loop{Kind: LoopWhileRepeat, Body: body, Cond: cond}
	if err := e.runLoop(loop); err == nil {
		t.Fatal("expected interrupted error")
	}
}

func TestEvalExpressionNumericReduction(t *testing.T) {
	e := newTestEvaluator(t)
	// (2 + 3) * 4
	sum := expr.Binary(expr.OpAdd, i(2), i(3))
	prod := expr.Binary(expr.OpMul, sum, i(4))
	if err := e.Stack.Push(Expression(prod)); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := e.evalSymbol("EVAL"); err != nil {
		t.Fatalf("EVAL: %v", err)
	}
	if got := popInt(t, e); got != 20 {
		t.Errorf("(2+3)*4 EVAL = %d, want 20", got)
	}
}

func i(v int64) expr.Expr { return expr.Int(bignum.IntFromInt64(v)) }
