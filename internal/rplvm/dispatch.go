package rplvm

import (
	"db48x/internal/bignum"
	"db48x/internal/diagnostic"
	"db48x/internal/expr"
)

// command is one entry in the closed, build-time-enumerated dispatch
// table: a name the evaluator checks before falling back to symbol
// recall, and the handler it invokes.
type command func(e *Evaluator) error

// commands is the closed command table. Grounded on
// vovakirdan-surge/internal/vm/dispatch.go's opcode-indexed jump table,
// generalized from a fixed numeric opcode space to a name-indexed map
// since RPL programs reference commands by symbol, not by compiled
// instruction.
var commands map[string]command

func init() {
	commands = map[string]command{
		"DUP":   cmdDup,
		"DUP2":  cmdDup2,
		"DROP":  cmdDrop,
		"DROP2": cmdDrop2,
		"SWAP":  cmdSwap,
		"OVER":  cmdOver,
		"ROT":   cmdRot,
		"PICK":  cmdPick,
		"ROLL":  cmdRoll,
		"ROLLD": cmdRollD,
		"DEPTH": cmdDepth,
		"CLEAR": cmdClear,

		"ADD": cmdBinary(arithAdd),
		"SUB": cmdBinary(arithSub),
		"MUL": cmdBinary(arithMul),
		"DIV": cmdBinary(arithDiv),
		"MOD": cmdBinary(arithMod),
		"REM": cmdBinary(arithRem),
		"POW": cmdBinary(arithPow),

		"NEG":   cmdUnary0(arithNeg),
		"ABS":   cmdUnary0(arithAbs),
		"SIGN":  cmdUnary0(arithSign),
		"INV":   cmdUnary(arithInv),
		"SQ":    cmdUnary(arithSq),
		"CUBED": cmdUnary(arithCubed),
		"FACT":  cmdUnary(arithFact),

		"SQRT":  cmdTranscendentalUnary(expr.OpSqrt),
		"CBRT":  cmdTranscendentalUnary(expr.OpCbrt),
		"SIN":   cmdTranscendentalUnary(expr.OpSin),
		"COS":   cmdTranscendentalUnary(expr.OpCos),
		"TAN":   cmdTranscendentalUnary(expr.OpTan),
		"ASIN":  cmdTranscendentalUnary(expr.OpAsin),
		"ACOS":  cmdTranscendentalUnary(expr.OpAcos),
		"ATAN":  cmdTranscendentalUnary(expr.OpAtan),
		"SINH":  cmdTranscendentalUnary(expr.OpSinh),
		"COSH":  cmdTranscendentalUnary(expr.OpCosh),
		"TANH":  cmdTranscendentalUnary(expr.OpTanh),
		"ASINH": cmdTranscendentalUnary(expr.OpAsinh),
		"ACOSH": cmdTranscendentalUnary(expr.OpAcosh),
		"ATANH": cmdTranscendentalUnary(expr.OpAtanh),
		"LOG":   cmdTranscendentalUnary(expr.OpLog),
		"LOG10": cmdTranscendentalUnary(expr.OpLog10),
		"LOG2":  cmdTranscendentalUnary(expr.OpLog2),
		"EXP":   cmdTranscendentalUnary(expr.OpExp),
		"EXP10": cmdTranscendentalUnary(expr.OpExp10),
		"EXP2":  cmdTranscendentalUnary(expr.OpExp2),

		"TESTLT": cmdCompare(func(c int) bool { return c < 0 }),
		"TESTLE": cmdCompare(func(c int) bool { return c <= 0 }),
		"TESTGT": cmdCompare(func(c int) bool { return c > 0 }),
		"TESTGE": cmdCompare(func(c int) bool { return c >= 0 }),
		"TESTEQ": cmdCompare(func(c int) bool { return c == 0 }),
		"TESTNE": cmdCompare(func(c int) bool { return c != 0 }),

		"STO":   cmdSto,
		"RCL":   cmdRcl,
		"PURGE": cmdPurge,
		"CD":    cmdCd,
		"UPDIR": cmdUpdir,
		"PATH":  cmdPath,

		"TYPE": cmdType,
		"EVAL": cmdEval,
		"UNDO": cmdUndo,

		"EXPAND":   cmdRewrite(expr.Expr.Expand),
		"COLLECT":  cmdRewrite(expr.Expr.Collect),
		"SIMPLIFY": cmdRewrite(expr.Expr.Simplify),
	}
}

func (e *Evaluator) popAtom(who string) (expr.Atom, error) {
	v, err := e.Stack.Pop()
	if err != nil {
		return expr.Atom{}, err
	}
	return numericAtom(v, who)
}

func (e *Evaluator) pushAtom(a expr.Atom) error {
	return e.Stack.Push(atomToValue(a))
}

// cmdBinary adapts one of arith.go's (x, y, maxBits) functions into a
// command: pop y then x (x was pushed first), apply, push the result.
func cmdBinary(op func(x, y expr.Atom, maxBits int) (expr.Atom, error)) command {
	return func(e *Evaluator) error {
		y, err := e.popAtom("")
		if err != nil {
			return err
		}
		x, err := e.popAtom("")
		if err != nil {
			return err
		}
		r, err := op(x, y, e.maxBits())
		if err != nil {
			return err
		}
		return e.pushAtom(r)
	}
}

// cmdUnary adapts one of arith.go's (x, maxBits) functions.
func cmdUnary(op func(x expr.Atom, maxBits int) (expr.Atom, error)) command {
	return func(e *Evaluator) error {
		x, err := e.popAtom("")
		if err != nil {
			return err
		}
		r, err := op(x, e.maxBits())
		if err != nil {
			return err
		}
		return e.pushAtom(r)
	}
}

// cmdUnary0 adapts one of arith.go's (x) functions, for the few
// operators (NEG/ABS/SIGN) that never overflow a fixed bit ceiling.
func cmdUnary0(op func(x expr.Atom) (expr.Atom, error)) command {
	return func(e *Evaluator) error {
		x, err := e.popAtom("")
		if err != nil {
			return err
		}
		r, err := op(x)
		if err != nil {
			return err
		}
		return e.pushAtom(r)
	}
}

func cmdTranscendentalUnary(op expr.Op) command {
	return func(e *Evaluator) error {
		x, err := e.popAtom("")
		if err != nil {
			return err
		}
		r, err := e.applyUnaryOp(op, x, e.maxBits())
		if err != nil {
			return err
		}
		return e.pushAtom(r)
	}
}

func cmdCompare(cmp func(int) bool) command {
	return func(e *Evaluator) error {
		y, err := e.popAtom("")
		if err != nil {
			return err
		}
		x, err := e.popAtom("")
		if err != nil {
			return err
		}
		r, err := compareOp(x, y, cmp)
		if err != nil {
			return err
		}
		return e.pushAtom(r)
	}
}

func cmdDup(e *Evaluator) error { return e.Stack.Pick(1) }
func cmdDup2(e *Evaluator) error {
	if err := e.Stack.Pick(2); err != nil {
		return err
	}
	return e.Stack.Pick(2)
}
func cmdDrop(e *Evaluator) error  { return e.Stack.Drop(1) }
func cmdDrop2(e *Evaluator) error { return e.Stack.Drop(2) }
func cmdSwap(e *Evaluator) error  { return e.Stack.Swap() }
func cmdOver(e *Evaluator) error  { return e.Stack.Over() }
func cmdDepth(e *Evaluator) error {
	return e.Stack.Push(Number(expr.Int(bignum.IntFromInt64(int64(e.Stack.Depth())))))
}
func cmdClear(e *Evaluator) error { return e.Stack.Drop(e.Stack.Depth()) }

// cmdRot moves the third-from-top value to the top, the classic RPL ROT.
func cmdRot(e *Evaluator) error { return e.Stack.Roll(3) }

// cmdPick pops an index n and duplicates the value at depth n onto the top.
func cmdPick(e *Evaluator) error {
	n, err := e.popLevel()
	if err != nil {
		return err
	}
	return e.Stack.Pick(n)
}

// cmdRoll pops an index n and moves the value at depth n to the top.
func cmdRoll(e *Evaluator) error {
	n, err := e.popLevel()
	if err != nil {
		return err
	}
	return e.Stack.Roll(n)
}

// cmdRollD pops an index n and moves the top value down to depth n.
func cmdRollD(e *Evaluator) error {
	n, err := e.popLevel()
	if err != nil {
		return err
	}
	if n < 1 || n > e.Stack.Depth() {
		return diagnostic.ErrNotEnoughArguments("rolld", n)
	}
	top, err := e.Stack.Pop()
	if err != nil {
		return err
	}
	// Re-insert top at depth n by rolling the (n-1) values above its
	// destination up and over it, then pushing top into the gap.
	above := make([]Value, 0, n-1)
	for i := 0; i < n-1; i++ {
		v, err := e.Stack.Pop()
		if err != nil {
			return err
		}
		above = append(above, v)
	}
	if err := e.Stack.Push(top); err != nil {
		return err
	}
	for i := len(above) - 1; i >= 0; i-- {
		if err := e.Stack.Push(above[i]); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) popLevel() (int, error) {
	a, err := e.popAtom("index")
	if err != nil {
		return 0, err
	}
	if a.Kind != expr.KindInt {
		return 0, wrapTypeMismatch("integer", a)
	}
	n, ok := a.Int.Int64()
	if !ok {
		return 0, wrapValueOutOfRange("index too large")
	}
	return int(n), nil
}

func cmdSto(e *Evaluator) error {
	nv, err := e.Stack.Pop()
	if err != nil {
		return err
	}
	if nv.Kind != KindSymbol {
		return wrapTypeMismatchName("symbol", nv.TypeName(), "STO")
	}
	v, err := e.Stack.Pop()
	if err != nil {
		return err
	}
	buf, err := Encode(v)
	if err != nil {
		return err
	}
	h, err := e.Arena.Alloc(buf)
	if err != nil {
		return diagnostic.ErrOutOfMemory()
	}
	e.Dir.Store(nv.Sym, h)
	return nil
}

func cmdRcl(e *Evaluator) error {
	nv, err := e.Stack.Pop()
	if err != nil {
		return err
	}
	if nv.Kind != KindSymbol {
		return wrapTypeMismatchName("symbol", nv.TypeName(), "RCL")
	}
	h, err := e.Dir.Recall(nv.Sym)
	if err != nil {
		return diagnostic.ErrUndefinedName(nv.Sym)
	}
	e.Stack.PushHandle(e.Arena.Retain(h))
	return nil
}

func cmdPurge(e *Evaluator) error {
	nv, err := e.Stack.Pop()
	if err != nil {
		return err
	}
	if nv.Kind != KindSymbol {
		return wrapTypeMismatchName("symbol", nv.TypeName(), "PURGE")
	}
	e.Dir.Purge(nv.Sym)
	return nil
}

func cmdCd(e *Evaluator) error {
	nv, err := e.Stack.Pop()
	if err != nil {
		return err
	}
	if nv.Kind != KindSymbol {
		return wrapTypeMismatchName("symbol", nv.TypeName(), "CD")
	}
	e.Dir = e.Dir.Cd(nv.Sym)
	return nil
}

func cmdUpdir(e *Evaluator) error {
	parent, err := e.Dir.Updir()
	if err != nil {
		return diagnostic.ErrUnimplemented(err.Error())
	}
	e.Dir = parent
	return nil
}

func cmdPath(e *Evaluator) error {
	return e.Stack.Push(Text(e.Dir.Path()))
}

func cmdType(e *Evaluator) error {
	v, err := e.Stack.Top(1)
	if err != nil {
		return err
	}
	return e.Stack.Push(Text(v.TypeName()))
}

// cmdEval pops the top object: a Program runs, an Expression (or a
// multi-atom Number) numerically reduces via evalExpr, and anything
// else is self-evaluating and is pushed back unchanged.
func cmdEval(e *Evaluator) error {
	v, err := e.Stack.Pop()
	if err != nil {
		return err
	}
	switch v.Kind {
	case KindProgram:
		return e.Run(v)
	case KindExpression:
		r, err := e.evalExpr(v.Num)
		if err != nil {
			return err
		}
		return e.pushAtom(r)
	case KindNumber:
		if len(v.Num.Atoms) == 1 {
			return e.Stack.Push(v)
		}
		r, err := e.evalExpr(v.Num)
		if err != nil {
			return err
		}
		return e.pushAtom(r)
	case KindSymbol:
		return e.evalSymbol(v.Sym)
	default:
		return e.Stack.Push(v)
	}
}

func cmdUndo(e *Evaluator) error { return e.Undo() }

// cmdRewrite adapts one of internal/expr's fixpoint rewrites (Expand/
// Collect/Simplify) into a command operating on the top Expression.
func cmdRewrite(rewrite func(expr.Expr) expr.Expr) command {
	return func(e *Evaluator) error {
		v, err := e.Stack.Pop()
		if err != nil {
			return err
		}
		var body expr.Expr
		switch v.Kind {
		case KindExpression, KindNumber:
			body = v.Num
		default:
			return wrapTypeMismatchName("expression", v.TypeName(), "rewrite")
		}
		out := rewrite(body)
		if len(out.Atoms) == 1 && out.Atoms[0].Kind != expr.KindOp {
			return e.pushAtom(out.Atoms[0])
		}
		return e.Stack.Push(Expression(out))
	}
}
