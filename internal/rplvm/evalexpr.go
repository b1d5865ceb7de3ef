package rplvm

import (
	"math"

	"db48x/internal/diagnostic"
	"db48x/internal/expr"
)

// evalExpr numerically evaluates an algebraic expression's postfix atom
// sequence: a leaf number pushes, a leaf symbol is resolved through the
// current directory (undefined_name if unbound — EVAL does not attempt
// partial symbolic simplification; that is internal/expr's rewrite
// engine's job, reached through EXPAND/COLLECT/SIMPLIFY instead), and
// each operator atom pops its operands and dispatches to arith.go. This
// is a local mini stack machine, independent of the value Stack, since
// an expression's atoms are not individually addressable objects in the
// heap.
func (e *Evaluator) evalExpr(ex expr.Expr) (expr.Atom, error) {
	var work []expr.Atom

	for _, a := range ex.Atoms {
		switch a.Kind {
		case expr.KindSymbol:
			resolved, err := e.resolveSymbolAtom(a.Sym)
			if err != nil {
				return expr.Atom{}, err
			}
			work = append(work, resolved)
		case expr.KindOp:
			arity := a.Op.Arity()
			if a.Op == expr.OpFuncall {
				arity = a.Arity
			}
			if len(work) < arity {
				return expr.Atom{}, diagnostic.ErrNotEnoughArguments(a.Op.String(), arity)
			}
			operands := work[len(work)-arity:]
			work = work[:len(work)-arity]
			r, err := e.applyOp(a, operands)
			if err != nil {
				return expr.Atom{}, err
			}
			work = append(work, r)
		default:
			work = append(work, a)
		}
	}
	if len(work) != 1 {
		return expr.Atom{}, diagnostic.ErrInvalidSyntax("expression does not reduce to a single value", 0)
	}
	return work[0], nil
}

// resolveSymbolAtom looks up name in the current directory and returns
// its bound numeric atom, erroring undefined_name if unbound or if the
// binding is not a single-atom Number.
func (e *Evaluator) resolveSymbolAtom(name string) (expr.Atom, error) {
	h, err := e.Dir.Recall(name)
	if err != nil {
		return expr.Atom{}, diagnostic.ErrUndefinedName(name)
	}
	v, err := Decode(e.Arena.Bytes(h))
	if err != nil {
		return expr.Atom{}, err
	}
	return numericAtom(v, name)
}

func (e *Evaluator) applyOp(a expr.Atom, operands []expr.Atom) (expr.Atom, error) {
	maxBits := e.maxBits()
	switch len(operands) {
	case 1:
		return e.applyUnaryOp(a.Op, operands[0], maxBits)
	case 2:
		return e.applyBinaryOp(a.Op, operands[0], operands[1], maxBits)
	default:
		return expr.Atom{}, diagnostic.ErrUnimplemented("user-defined function calls")
	}
}

func (e *Evaluator) applyUnaryOp(op expr.Op, x expr.Atom, maxBits int) (expr.Atom, error) {
	switch op {
	case expr.OpNeg:
		return arithNeg(x)
	case expr.OpAbs:
		return arithAbs(x)
	case expr.OpSign:
		return arithSign(x)
	case expr.OpInv:
		return arithInv(x, maxBits)
	case expr.OpSq:
		return arithSq(x, maxBits)
	case expr.OpCubed:
		return arithCubed(x, maxBits)
	case expr.OpFact:
		return arithFact(x, maxBits)
	case expr.OpSqrt:
		return transcendentalUnary(x, math.Sqrt)
	case expr.OpCbrt:
		return transcendentalUnary(x, math.Cbrt)
	case expr.OpSin:
		return transcendentalUnary(x, math.Sin)
	case expr.OpCos:
		return transcendentalUnary(x, math.Cos)
	case expr.OpTan:
		return transcendentalUnary(x, math.Tan)
	case expr.OpAsin:
		return transcendentalUnary(x, math.Asin)
	case expr.OpAcos:
		return transcendentalUnary(x, math.Acos)
	case expr.OpAtan:
		return transcendentalUnary(x, math.Atan)
	case expr.OpSinh:
		return transcendentalUnary(x, math.Sinh)
	case expr.OpCosh:
		return transcendentalUnary(x, math.Cosh)
	case expr.OpTanh:
		return transcendentalUnary(x, math.Tanh)
	case expr.OpAsinh:
		return transcendentalUnary(x, math.Asinh)
	case expr.OpAcosh:
		return transcendentalUnary(x, math.Acosh)
	case expr.OpAtanh:
		return transcendentalUnary(x, math.Atanh)
	case expr.OpLog:
		return transcendentalUnary(x, math.Log)
	case expr.OpLog10:
		return transcendentalUnary(x, math.Log10)
	case expr.OpLog2:
		return transcendentalUnary(x, math.Log2)
	case expr.OpExp:
		return transcendentalUnary(x, math.Exp)
	case expr.OpExp10:
		return transcendentalUnary(x, func(v float64) float64 { return math.Pow(10, v) })
	case expr.OpExp2:
		return transcendentalUnary(x, math.Exp2)
	case expr.OpRe, expr.OpIm, expr.OpArg, expr.OpConj:
		return expr.Atom{}, diagnostic.ErrUnimplemented("complex-valued operators")
	default:
		return expr.Atom{}, diagnostic.ErrUnimplemented(op.String())
	}
}

func (e *Evaluator) applyBinaryOp(op expr.Op, x, y expr.Atom, maxBits int) (expr.Atom, error) {
	switch op {
	case expr.OpAdd:
		return arithAdd(x, y, maxBits)
	case expr.OpSub:
		return arithSub(x, y, maxBits)
	case expr.OpMul:
		return arithMul(x, y, maxBits)
	case expr.OpDiv:
		return arithDiv(x, y, maxBits)
	case expr.OpMod:
		return arithMod(x, y, maxBits)
	case expr.OpRem:
		return arithRem(x, y, maxBits)
	case expr.OpPow:
		return arithPow(x, y, maxBits)
	case expr.OpTestLT:
		return compareOp(x, y, func(c int) bool { return c < 0 })
	case expr.OpTestLE:
		return compareOp(x, y, func(c int) bool { return c <= 0 })
	case expr.OpTestGT:
		return compareOp(x, y, func(c int) bool { return c > 0 })
	case expr.OpTestGE:
		return compareOp(x, y, func(c int) bool { return c >= 0 })
	case expr.OpTestEQ:
		return compareOp(x, y, func(c int) bool { return c == 0 })
	case expr.OpTestNE:
		return compareOp(x, y, func(c int) bool { return c != 0 })
	default:
		return expr.Atom{}, diagnostic.ErrUnimplemented(op.String())
	}
}
