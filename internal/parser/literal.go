package parser

import (
	"strings"

	"db48x/internal/bignum"
	"db48x/internal/decimal"
	"db48x/internal/diagnostic"
	"db48x/internal/expr"
	"db48x/internal/token"
)

func parseIntLiteral(tok token.Token) (expr.Expr, error) {
	i, err := bignum.ParseInt(tok.Text)
	if err != nil {
		return expr.Expr{}, diagnostic.ErrInvalidSyntax("malformed integer literal: "+tok.Text, int(tok.Span.Start))
	}
	return expr.Int(i), nil
}

func parseBasedLiteral(tok token.Token, defaultBase int) (expr.Expr, error) {
	text := tok.Text[1:] // drop leading '#'
	base := defaultBase
	if len(text) > 0 {
		switch text[len(text)-1] {
		case 'b', 'B':
			base, text = 2, text[:len(text)-1]
		case 'o', 'O':
			base, text = 8, text[:len(text)-1]
		case 'd', 'D':
			base, text = 10, text[:len(text)-1]
		case 'h', 'H':
			base, text = 16, text[:len(text)-1]
		}
	}
	u, err := bignum.ParseBased(text, base)
	if err != nil {
		return expr.Expr{}, diagnostic.ErrInvalidSyntax("malformed based literal: "+tok.Text, int(tok.Span.Start))
	}
	return expr.Int(bignum.Int{Mag: u.Mag}), nil
}

// parseDecimalLiteral converts "digits[.digits][e[+-]digits]" text into a
// Decimal by building the exact rational value num/den (den a power of
// ten) and dividing, reusing Div's rounding rather than duplicating a
// base-10-to-base-2 conversion.
func parseDecimalLiteral(tok token.Token, w decimal.Width) (expr.Expr, error) {
	text := strings.ReplaceAll(tok.Text, "_", "")
	mantissa := text
	exp := 0
	if idx := strings.IndexAny(text, "eE"); idx >= 0 {
		mantissa = text[:idx]
		e, err := bignum.ParseInt(text[idx+1:])
		if err != nil {
			return expr.Expr{}, diagnostic.ErrInvalidSyntax("malformed exponent: "+tok.Text, int(tok.Span.Start))
		}
		v, _ := e.Int64()
		exp = int(v)
	}

	intPart, fracPart := mantissa, ""
	if idx := strings.IndexByte(mantissa, '.'); idx >= 0 {
		intPart, fracPart = mantissa[:idx], mantissa[idx+1:]
	}
	digits := intPart + fracPart
	num, err := bignum.ParseInt(digits)
	if err != nil {
		return expr.Expr{}, diagnostic.ErrInvalidSyntax("malformed decimal literal: "+tok.Text, int(tok.Span.Start))
	}

	shift := exp - len(fracPart)
	var den bignum.Uint
	if shift >= 0 {
		scaled, err := scalePow10(num.Abs(), shift)
		if err != nil {
			return expr.Expr{}, err
		}
		num = bignum.Int{Neg: num.Neg, Mag: scaled.Mag}
		den = bignum.UintFromUint64(1)
	} else {
		var err error
		den, err = pow10(-shift)
		if err != nil {
			return expr.Expr{}, err
		}
	}

	numDec, err := decimal.FromInteger(w, num)
	if err != nil {
		return expr.Expr{}, err
	}
	denDec, err := decimal.FromInteger(w, bignum.Int{Mag: den.Mag})
	if err != nil {
		return expr.Expr{}, err
	}
	d, err := decimal.Div(numDec, denDec)
	if err != nil {
		return expr.Expr{}, err
	}
	return expr.Dec(d), nil
}

func pow10(n int) (bignum.Uint, error) {
	out := bignum.UintFromUint64(1)
	ten := bignum.UintFromUint64(10)
	for i := 0; i < n; i++ {
		var err error
		out, err = bignum.UintMul(out, ten, 0)
		if err != nil {
			return bignum.Uint{}, err
		}
	}
	return out, nil
}

func scalePow10(u bignum.Uint, n int) (bignum.Uint, error) {
	p, err := pow10(n)
	if err != nil {
		return bignum.Uint{}, err
	}
	return bignum.UintMul(u, p, 0)
}
