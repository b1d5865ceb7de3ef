// Package rplvm implements the interpreter kernel: the value stack, the
// object evaluator and its command dispatch table, loop objects, and the
// cooperative interrupt/undo machinery. Grounded on
// original_source/src/loops.h for the loop variants and on
// vovakirdan-surge/internal/vm/{vm,frame}.go for the stack-machine shape,
// generalized from surge's compiled-bytecode frame model to the
// calculator's directly-interpreted postfix Program objects.
package rplvm

import (
	"db48x/internal/bignum"
	"db48x/internal/expr"
)

// Kind tags the variant a Value holds — the evaluator-facing counterpart
// of objmem.Tag, collapsing the byte-level tag families (IntPos/IntNeg/
// BigPos/BigNeg all become one KindNumber, the four TagBased* variants
// become one KindBased carrying its own base) into the shapes the
// evaluator actually branches on.
type Kind uint8

const (
	KindNumber Kind = iota
	KindBased
	KindSymbol
	KindText
	KindComplex
	KindList
	KindArray
	KindMatrix
	KindProgram
	KindExpression
	KindLoop
)

// Based is a based-number object: a bit pattern of a fixed word size,
// distinct from a plain integer even when the two compare equal, since
// TYPE and bitwise operators only accept the based family.
type Based struct {
	Mag      bignum.Uint
	Base     int // 2, 8, 10, or 16
	WordSize int // bits
}

// Value is one object the evaluator can push, pop, or dispatch on.
// Number and Expression both carry an expr.Expr: Number is always a
// single leaf atom (int, fraction, or decimal); Expression may hold a
// multi-atom postfix body and is self-evaluating (pushed as data, only
// unwrapped by an explicit algebraic operation).
type Value struct {
	Kind Kind

	Num   expr.Expr
	Based Based
	Sym   string
	Text  string
	Cplx  expr.Complex
	Items []Value
	Loop  *Loop
}

// Number wraps a single-atom numeric expression.
func Number(e expr.Expr) Value { return Value{Kind: KindNumber, Num: e} }

// Symbol builds a bare-symbol value.
func Symbol(name string) Value { return Value{Kind: KindSymbol, Sym: name} }

// Text builds a quoted-text value.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Expression wraps a (possibly multi-atom) algebraic postfix body as
// self-evaluating data.
func Expression(e expr.Expr) Value { return Value{Kind: KindExpression, Num: e} }

// Truthy implements the evaluator's truthiness rule: zero of any numeric
// kind is false, every other numeric value is true, non-empty text is
// true, and any other kind (symbol excepted — callers resolve a symbol's
// bound value before calling Truthy) is true.
func (v Value) Truthy() (bool, error) {
	switch v.Kind {
	case KindNumber:
		if len(v.Num.Atoms) != 1 {
			return true, nil
		}
		a := v.Num.Atoms[0]
		switch a.Kind {
		case expr.KindInt:
			return !a.Int.IsZero(), nil
		case expr.KindFraction:
			return !a.Frac.IsZero(), nil
		case expr.KindDecimal:
			return !a.Dec.IsZero(), nil
		}
		return true, nil
	case KindBased:
		return !v.Based.Mag.IsZero(), nil
	case KindText:
		return v.Text != "", nil
	default:
		return true, nil
	}
}

// TypeName names v's kind the way the calculator's TYPE command reports
// it.
func (v Value) TypeName() string {
	switch v.Kind {
	case KindNumber:
		if len(v.Num.Atoms) == 1 {
			switch v.Num.Atoms[0].Kind {
			case expr.KindInt:
				return "integer"
			case expr.KindFraction:
				return "fraction"
			case expr.KindDecimal:
				return "real"
			}
		}
		return "expression"
	case KindBased:
		return "based integer"
	case KindSymbol:
		return "symbol"
	case KindText:
		return "text"
	case KindComplex:
		return "complex"
	case KindList:
		return "list"
	case KindArray:
		return "array"
	case KindMatrix:
		return "matrix"
	case KindProgram:
		return "program"
	case KindExpression:
		return "expression"
	case KindLoop:
		return "loop"
	default:
		return "object"
	}
}
