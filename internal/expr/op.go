// Package expr implements algebraic expressions as postfix operator
// sequences: build, render, rewrite, and the fixpoint normalizations
// (expand, collect, simplify) built on rewriting. Grounded on
// original_source/src/expression.h, which documents an expression as "a
// program that is rendered and parsed specially", its body a postfix
// sequence of embedded objects.
package expr

// Op identifies an algebraic operator. The set is closed: every name
// appearing in original_source/src/expression.h's eq<> builder is
// represented here.
type Op uint8

const (
	OpNone Op = iota

	// Unary.
	OpNeg
	OpSqrt
	OpCbrt
	OpSin
	OpCos
	OpTan
	OpAsin
	OpAcos
	OpAtan
	OpSinh
	OpCosh
	OpTanh
	OpAsinh
	OpAcosh
	OpAtanh
	OpLog
	OpLog10
	OpLog2
	OpExp
	OpExp10
	OpExp2
	OpAbs
	OpSign
	OpInv
	OpSq
	OpCubed
	OpFact
	OpRe
	OpIm
	OpArg
	OpConj

	// Binary arithmetic.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpRem
	OpPow

	// Binary relational; evaluate to the canonical integers 0 or 1.
	OpTestLT
	OpTestEQ
	OpTestGT
	OpTestLE
	OpTestNE
	OpTestGE

	// Funcall carries its arity out of band (Atom.Arity), since a
	// function symbol's argument count is not fixed by the operator
	// alone: "F(1;2;3;4) is encoded as program `1 2 3 4 F`".
	OpFuncall
)

// Arity returns the fixed operand count for operators whose arity does
// not vary; OpFuncall's arity lives on the Atom instead.
func (o Op) Arity() int {
	switch o {
	case OpNeg, OpSqrt, OpCbrt, OpSin, OpCos, OpTan, OpAsin, OpAcos, OpAtan,
		OpSinh, OpCosh, OpTanh, OpAsinh, OpAcosh, OpAtanh,
		OpLog, OpLog10, OpLog2, OpExp, OpExp10, OpExp2,
		OpAbs, OpSign, OpInv, OpSq, OpCubed, OpFact,
		OpRe, OpIm, OpArg, OpConj:
		return 1
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpRem, OpPow,
		OpTestLT, OpTestEQ, OpTestGT, OpTestLE, OpTestNE, OpTestGE:
		return 2
	default:
		return 0
	}
}

// String names the operator the way it renders as a function call
// (unary/n-ary forms) or the way it renders infix (binary arithmetic and
// relational forms use infixSymbol instead).
func (o Op) String() string {
	switch o {
	case OpNeg:
		return "neg"
	case OpSqrt:
		return "sqrt"
	case OpCbrt:
		return "cbrt"
	case OpSin:
		return "sin"
	case OpCos:
		return "cos"
	case OpTan:
		return "tan"
	case OpAsin:
		return "asin"
	case OpAcos:
		return "acos"
	case OpAtan:
		return "atan"
	case OpSinh:
		return "sinh"
	case OpCosh:
		return "cosh"
	case OpTanh:
		return "tanh"
	case OpAsinh:
		return "asinh"
	case OpAcosh:
		return "acosh"
	case OpAtanh:
		return "atanh"
	case OpLog:
		return "log"
	case OpLog10:
		return "log10"
	case OpLog2:
		return "log2"
	case OpExp:
		return "exp"
	case OpExp10:
		return "exp10"
	case OpExp2:
		return "exp2"
	case OpAbs:
		return "abs"
	case OpSign:
		return "sign"
	case OpInv:
		return "inv"
	case OpSq:
		return "sq"
	case OpCubed:
		return "cubed"
	case OpFact:
		return "fact"
	case OpRe:
		return "re"
	case OpIm:
		return "im"
	case OpArg:
		return "arg"
	case OpConj:
		return "conj"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpMod:
		return "mod"
	case OpRem:
		return "rem"
	case OpPow:
		return "pow"
	case OpTestLT:
		return "TestLT"
	case OpTestEQ:
		return "TestEQ"
	case OpTestGT:
		return "TestGT"
	case OpTestLE:
		return "TestLE"
	case OpTestNE:
		return "TestNE"
	case OpTestGE:
		return "TestGE"
	case OpFuncall:
		return "funcall"
	default:
		return "none"
	}
}

// isBinaryInfix reports whether Op renders as "x op y" rather than as a
// prefix function call "op(x)".
func (o Op) isBinaryInfix() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv, OpPow,
		OpTestLT, OpTestEQ, OpTestGT, OpTestLE, OpTestNE, OpTestGE:
		return true
	default:
		return false
	}
}

// infixSymbol is the rendered spelling of a binary-infix operator.
func (o Op) infixSymbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	case OpTestLT:
		return "<"
	case OpTestEQ:
		return "=="
	case OpTestGT:
		return ">"
	case OpTestLE:
		return "<="
	case OpTestNE:
		return "!="
	case OpTestGE:
		return ">="
	default:
		return o.String()
	}
}

// precedence gives the binding power used to decide when a child needs
// parentheses. Higher binds tighter.
func (o Op) precedence() int {
	switch o {
	case OpTestLT, OpTestEQ, OpTestGT, OpTestLE, OpTestNE, OpTestGE:
		return 1
	case OpAdd, OpSub:
		return 2
	case OpMul, OpDiv, OpMod, OpRem:
		return 3
	case OpPow:
		return 4
	case OpNeg:
		return 5
	default:
		return 10
	}
}

// rightAssoc reports whether repeated application associates to the
// right (only pow: a^b^c means a^(b^c)).
func (o Op) rightAssoc() bool { return o == OpPow }
