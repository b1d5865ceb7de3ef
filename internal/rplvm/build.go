package rplvm

import (
	"db48x/internal/diagnostic"
	"db48x/internal/expr"
	"db48x/internal/parser"
)

// FromParser converts one parsed object into the Value the evaluator
// consumes. The parser never distinguishes a bare command name from an
// ordinary variable name — both arrive as a one-atom ValueExpr wrapping
// an expr.KindSymbol atom — so that disambiguation is deferred entirely
// to evalSymbol's command-table lookup.
func FromParser(v parser.Value) (Value, error) {
	switch v.Kind {
	case parser.ValueExpr:
		return fromExpr(v.Expr), nil
	case parser.ValueText:
		return Text(v.Text), nil
	case parser.ValueProgram:
		items, err := fromParserItems(v.Items)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindProgram, Items: items}, nil
	case parser.ValueList:
		items, err := fromParserItems(v.Items)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindList, Items: items}, nil
	case parser.ValueArray:
		items, err := fromParserItems(v.Items)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindArray, Items: items}, nil
	case parser.ValueLoop:
		return fromParserLoop(v)
	default:
		return Value{}, diagnostic.ErrUnimplemented("unknown parsed object kind")
	}
}

// fromParserLoop converts a parsed loop into the Loop object the
// evaluator runs. parser.LoopKind and LoopKind share the same const
// ordering (Counted, DoUntil, WhileRepeat) so the conversion is a plain
// cast.
func fromParserLoop(v parser.Value) (Value, error) {
	body, err := fromParserItems(v.Items)
	if err != nil {
		return Value{}, err
	}
	l := &Loop{
		Kind:    LoopKind(v.LoopKind),
		Named:   v.Named,
		Stepped: v.Stepped,
		VarName: v.VarName,
		Body:    Value{Kind: KindProgram, Items: body},
	}
	if v.Cond != nil {
		cond, err := FromParser(*v.Cond)
		if err != nil {
			return Value{}, err
		}
		l.Cond = cond
	}
	return Value{Kind: KindLoop, Loop: l}, nil
}

func fromParserItems(in []parser.Value) ([]Value, error) {
	out := make([]Value, 0, len(in))
	for _, it := range in {
		v, err := FromParser(it)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// fromExpr classifies a parsed algebraic expression: a bare single
// symbol becomes a Symbol Value (resolved through command dispatch or
// directory recall at evaluation time), a bare single number becomes a
// Number, and anything else (any operator present) becomes an
// Expression — self-evaluating data until EVAL or an EXPAND/COLLECT/
// SIMPLIFY command unwraps it.
func fromExpr(e expr.Expr) Value {
	if len(e.Atoms) == 1 {
		a := e.Atoms[0]
		if a.Kind == expr.KindSymbol {
			return Symbol(a.Sym)
		}
		if a.Kind != expr.KindOp {
			return Number(e)
		}
	}
	return Expression(e)
}
