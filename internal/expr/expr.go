package expr

import (
	"fmt"
	"strings"

	"db48x/internal/bignum"
	"db48x/internal/decimal"
	"db48x/internal/fraction"
)

// Expr is an algebraic expression: a postfix sequence of atoms. A bare
// number or symbol is a one-atom Expr; every operator atom consumes the
// operand atoms immediately preceding it in the sequence.
type Expr struct {
	Atoms []Atom
}

// Int builds a one-atom integer expression.
func Int(i bignum.Int) Expr { return Expr{Atoms: []Atom{number(i)}} }

// Frac builds a one-atom fraction expression.
func Frac(f fraction.Fraction) Expr { return Expr{Atoms: []Atom{fractional(f)}} }

// Dec builds a one-atom decimal expression.
func Dec(d decimal.Decimal) Expr { return Expr{Atoms: []Atom{decimalAtom(d)}} }

// Symbol builds a one-atom symbolic name expression.
func Symbol(name string) Expr { return Expr{Atoms: []Atom{symbol(name)}} }

// Text builds a one-atom quoted-text expression.
func Text(s string) Expr { return Expr{Atoms: []Atom{text(s)}} }

// Unary applies a one-operand operator, concatenating x's body and
// appending the operator atom.
func Unary(op Op, x Expr) Expr {
	out := append(append([]Atom{}, x.Atoms...), unary(op))
	return Expr{Atoms: out}
}

// Binary applies a two-operand operator.
func Binary(op Op, x, y Expr) Expr {
	out := append([]Atom{}, x.Atoms...)
	out = append(out, y.Atoms...)
	out = append(out, binary(op))
	return Expr{Atoms: out}
}

// Funcall builds F(args...), encoded as each argument's body in order
// followed by a funcall atom naming F and carrying the argument count.
func Funcall(name string, args []Expr) Expr {
	var out []Atom
	for _, a := range args {
		out = append(out, a.Atoms...)
	}
	out = append(out, funcall(name, len(args)))
	return Expr{Atoms: out}
}

// IsAtomic reports whether e is a single leaf (number or symbol), with
// no operator.
func (e Expr) IsAtomic() bool { return len(e.Atoms) == 1 && e.Atoms[0].Kind != KindOp }

// root returns e's outermost atom (the last one in postfix order).
func (e Expr) root() Atom { return e.Atoms[len(e.Atoms)-1] }

// spanStart returns the index at which the operand (or leaf) ending at
// atoms[end] begins, walking backward through as many nested operands as
// atoms[end]'s arity requires.
func spanStart(atoms []Atom, end int) int {
	pos := end
	arity := atoms[end].arity()
	for i := 0; i < arity; i++ {
		pos = spanStart(atoms, pos-1)
	}
	return pos
}

type span struct{ start, end int }

// operandSpans returns the operand spans of atoms[end] (an operator),
// left to right.
func operandSpans(atoms []Atom, end int) []span {
	arity := atoms[end].arity()
	spans := make([]span, 0, arity)
	pos := end - 1
	for i := 0; i < arity; i++ {
		start := spanStart(atoms, pos)
		spans = append(spans, span{start, pos})
		pos = start - 1
	}
	for i, j := 0, len(spans)-1; i < j; i, j = i+1, j-1 {
		spans[i], spans[j] = spans[j], spans[i]
	}
	return spans
}

// operand returns the i-th (left to right, 0-based) operand of e's root
// operator as its own Expr.
func (e Expr) operand(i int) Expr {
	spans := operandSpans(e.Atoms, len(e.Atoms)-1)
	sp := spans[i]
	return Expr{Atoms: append([]Atom{}, e.Atoms[sp.start:sp.end+1]...)}
}

// Render walks e and produces an infix rendering with minimal
// parentheses: a child is parenthesized only when its root operator
// binds looser than the parent's effective precedence on that side.
func (e Expr) Render() string {
	var b strings.Builder
	renderAt(&b, e.Atoms, len(e.Atoms)-1, 0)
	return b.String()
}

func renderAt(b *strings.Builder, atoms []Atom, end int, parentPrec int) {
	a := atoms[end]
	switch a.Kind {
	case KindInt:
		b.WriteString(bignum.FormatInt(a.Int))
	case KindFraction:
		b.WriteString(fraction.Format(a.Frac))
	case KindDecimal:
		s, err := decimal.Format(a.Dec)
		if err != nil {
			s = "?"
		}
		b.WriteString(s)
	case KindSymbol, KindHole:
		b.WriteString(a.Sym)
	case KindText:
		fmt.Fprintf(b, "%q", a.Text)
	case KindOp:
		renderOp(b, atoms, end, a, parentPrec)
	}
}

func renderOp(b *strings.Builder, atoms []Atom, end int, a Atom, parentPrec int) {
	if a.Op == OpFuncall {
		b.WriteString(a.Sym)
		b.WriteByte('(')
		spans := operandSpans(atoms, end)
		for i, sp := range spans {
			if i > 0 {
				b.WriteByte(';')
			}
			renderAt(b, atoms, sp.end, 0)
		}
		b.WriteByte(')')
		return
	}

	spans := operandSpans(atoms, end)
	prec := a.Op.precedence()
	needParens := prec < parentPrec
	if needParens {
		b.WriteByte('(')
	}

	switch len(spans) {
	case 1:
		if a.Op.isBinaryInfix() {
			b.WriteString(a.Op.infixSymbol())
			renderAt(b, atoms, spans[0].end, prec)
		} else {
			b.WriteString(a.Op.String())
			b.WriteByte('(')
			renderAt(b, atoms, spans[0].end, 0)
			b.WriteByte(')')
		}
	case 2:
		leftPrec, rightPrec := prec, prec
		if a.Op.rightAssoc() {
			leftPrec = prec + 1
		} else {
			rightPrec = prec + 1
		}
		renderAt(b, atoms, spans[0].end, leftPrec)
		if a.Op.isBinaryInfix() {
			b.WriteString(a.Op.infixSymbol())
		} else {
			b.WriteString(" " + a.Op.String() + " ")
		}
		renderAt(b, atoms, spans[1].end, rightPrec)
	}

	if needParens {
		b.WriteByte(')')
	}
}
