package main

import (
	"fmt"
	"strconv"
	"strings"

	"db48x/internal/bignum"
	"db48x/internal/decimal"
	"db48x/internal/expr"
	"db48x/internal/render"
	"db48x/internal/rplvm"
	"db48x/internal/settings"
)

// renderValue formats one stack value for display, applying s's digit
// grouping to plain numeric leaves via internal/render and falling back
// to expr's own infix renderer for algebraic expressions and to a
// bracket/delimiter notation for the composite kinds — the same set of
// object notations the parser accepts back in ("«…»" programs, "{…}"
// lists, "[…]" arrays).
func renderValue(v rplvm.Value, s settings.Settings) string {
	switch v.Kind {
	case rplvm.KindNumber:
		if len(v.Num.Atoms) == 1 {
			return formatAtom(v.Num.Atoms[0], s)
		}
		return v.Num.Render()
	case rplvm.KindExpression:
		return "'" + v.Num.Render() + "'"
	case rplvm.KindBased:
		buf := render.NewBuffer()
		r := render.New(buf, s)
		r.Based(bignum.FormatBased(v.Based.Mag, v.Based.Base), v.Based.Base)
		return "#" + buf.String()
	case rplvm.KindSymbol:
		return v.Sym
	case rplvm.KindText:
		return fmt.Sprintf("%q", v.Text)
	case rplvm.KindComplex:
		return "(" + v.Cplx.Re.Render() + "," + v.Cplx.Im.Render() + ")"
	case rplvm.KindList:
		return "{ " + renderItems(v.Items, s) + " }"
	case rplvm.KindArray:
		return "[ " + renderItems(v.Items, s) + " ]"
	case rplvm.KindMatrix:
		return "[[ " + renderItems(v.Items, s) + " ]]"
	case rplvm.KindProgram:
		return "« " + renderItems(v.Items, s) + " »"
	case rplvm.KindLoop:
		return renderLoop(v.Loop, s)
	default:
		return v.TypeName()
	}
}

func renderItems(items []rplvm.Value, s settings.Settings) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = renderValue(it, s)
	}
	return strings.Join(parts, " ")
}

func renderLoop(l *rplvm.Loop, s settings.Settings) string {
	if l == nil {
		return "«»"
	}
	switch l.Kind {
	case rplvm.LoopDoUntil:
		return "DO " + renderValue(l.Body, s) + " UNTIL " + renderValue(l.Cond, s) + " END"
	case rplvm.LoopWhileRepeat:
		return "WHILE " + renderValue(l.Cond, s) + " REPEAT " + renderValue(l.Body, s) + " END"
	default:
		if l.Named {
			return "FOR " + l.VarName + " " + renderValue(l.Body, s) + " NEXT"
		}
		return "START " + renderValue(l.Body, s) + " NEXT"
	}
}

func formatAtom(a expr.Atom, s settings.Settings) string {
	switch a.Kind {
	case expr.KindInt:
		return formatGroupedInt(a.Int, s)
	case expr.KindFraction:
		return formatGroupedInt(a.Frac.Num, s) + "/" + formatGroupedUint(a.Frac.Den, s)
	case expr.KindDecimal:
		out, err := formatGroupedDecimal(a.Dec, s)
		if err != nil {
			return "?"
		}
		return out
	case expr.KindSymbol, expr.KindHole:
		return a.Sym
	case expr.KindText:
		return fmt.Sprintf("%q", a.Text)
	default:
		return "?"
	}
}

func formatGroupedInt(i bignum.Int, s settings.Settings) string {
	digits := bignum.FormatUint(bignum.Uint{Mag: i.Mag})
	buf := render.NewBuffer()
	render.New(buf, s).Mantissa(i.Neg, digits, "")
	return buf.String()
}

func formatGroupedUint(u bignum.Uint, s settings.Settings) string {
	buf := render.NewBuffer()
	render.New(buf, s).Mantissa(false, bignum.FormatUint(u), "")
	return buf.String()
}

// formatGroupedDecimal re-splits decimal.Format's compact rendering
// ("-1.5E+10", "123", "0") into sign/mantissa/exponent parts so the
// digit-grouping and mark settings apply the same way they do to a
// plain integer.
func formatGroupedDecimal(d decimal.Decimal, s settings.Settings) (string, error) {
	str, err := decimal.Format(d)
	if err != nil {
		return "", err
	}
	neg := strings.HasPrefix(str, "-")
	if neg {
		str = str[1:]
	}
	mantissa, expPart, hasExp := strings.Cut(str, "E")
	exp := 0
	if hasExp {
		exp, err = strconv.Atoi(expPart)
		if err != nil {
			return "", err
		}
	}
	intPart, fracPart, _ := strings.Cut(mantissa, ".")

	buf := render.NewBuffer()
	r := render.New(buf, s)
	r.Mantissa(neg, intPart, fracPart)
	r.Exponent(exp)
	return buf.String(), nil
}
