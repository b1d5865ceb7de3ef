package parser

import (
	"db48x/internal/diagnostic"
	"db48x/internal/expr"
	"db48x/internal/token"
)

// parseExpr is the Pratt entry point: minPrec is the minimum binding
// power a binary operator must have to be consumed at this recursion
// level, the same shape as surge's parseBinaryExpr(minPrec).
func (p *Parser) parseExpr(minPrec int) (expr.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return expr.Expr{}, err
	}

	for {
		tok := p.lx.Peek()
		op, prec, rightAssoc, ok := binaryOp(tok.Kind)
		if !ok || prec < minPrec {
			break
		}
		p.lx.Next()

		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		right, err := p.parseExpr(nextMin)
		if err != nil {
			return expr.Expr{}, err
		}
		left = expr.Binary(op, left, right)
	}

	return left, nil
}

// parseUnary handles the algebraic grammar's prefix operator: '-'. Every
// other leading token falls through to parsePrimary.
func (p *Parser) parseUnary() (expr.Expr, error) {
	if p.lx.Peek().Kind == token.Minus {
		p.lx.Next()
		operand, err := p.parseUnary()
		if err != nil {
			return expr.Expr{}, err
		}
		return expr.Unary(expr.OpNeg, operand), nil
	}
	return p.parsePrimary()
}

// parsePrimary consumes a literal, a symbol (optionally a funcall if
// followed immediately by '('), or a parenthesized subexpression.
func (p *Parser) parsePrimary() (expr.Expr, error) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.lx.Next()
		return parseIntLiteral(tok)
	case token.DecimalLit:
		p.lx.Next()
		return parseDecimalLiteral(tok, p.decimalWidth)
	case token.BasedLit:
		p.lx.Next()
		return parseBasedLiteral(tok, p.defaultBase)
	case token.StringLit:
		p.lx.Next()
		return expr.Text(unquote(tok.Text)), nil
	case token.Ident:
		p.lx.Next()
		if p.lx.Peek().Kind == token.LParen {
			return p.parseFuncallArgs(tok.Text)
		}
		return expr.Symbol(tok.Text), nil
	case token.LParen:
		p.lx.Next()
		inner, err := p.parseExpr(0)
		if err != nil {
			return expr.Expr{}, err
		}
		if err := p.expect(token.RParen); err != nil {
			return expr.Expr{}, err
		}
		return inner, nil
	default:
		return expr.Expr{}, diagnostic.ErrInvalidSyntax("expected an expression", int(tok.Span.Start))
	}
}

func (p *Parser) parseFuncallArgs(name string) (expr.Expr, error) {
	p.lx.Next() // '('
	var args []expr.Expr
	if p.lx.Peek().Kind != token.RParen {
		for {
			arg, err := p.parseExpr(0)
			if err != nil {
				return expr.Expr{}, err
			}
			args = append(args, arg)
			if p.lx.Peek().Kind != token.Semicolon {
				break
			}
			p.lx.Next()
		}
	}
	if err := p.expect(token.RParen); err != nil {
		return expr.Expr{}, err
	}
	return expr.Funcall(name, args), nil
}

func unquote(text string) string {
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	var out []byte
	for i := 0; i < len(text); i++ {
		if text[i] == '\\' && i+1 < len(text) {
			i++
		}
		out = append(out, text[i])
	}
	return string(out)
}
