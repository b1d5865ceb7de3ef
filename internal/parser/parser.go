// Package parser turns a token stream into either an algebraic
// expression (a Pratt parser over internal/expr, entered inside '…') or
// a stream of RPL objects (entered inside «…», […], {…}, or at the top
// level of a line of input). Grounded on
// vovakirdan-surge/internal/parser/expression.go's precedence-climbing
// shape, generalized from surge's AST-node output to build
// internal/expr postfix bodies directly, matching the calculator's own
// "the parser emits postfix directly (no AST)" contract.
package parser

import (
	"strings"

	"db48x/internal/decimal"
	"db48x/internal/diagnostic"
	"db48x/internal/lexer"
	"db48x/internal/token"
)

// Parser holds the lexer plus the two settings the literal grammar
// needs: the default base for a #-based literal with no suffix, and the
// decimal width new floating literals are built at.
type Parser struct {
	lx           *lexer.Lexer
	defaultBase  int
	decimalWidth decimal.Width
}

// New creates a Parser over src.
func New(src string, defaultBase int, decimalWidth decimal.Width) *Parser {
	return &Parser{lx: lexer.New(src), defaultBase: defaultBase, decimalWidth: decimalWidth}
}

func (p *Parser) expect(k token.Kind) error {
	tok := p.lx.Next()
	if tok.Kind != k {
		return diagnostic.ErrInvalidSyntax("unexpected token: "+tok.Text, int(tok.Span.Start))
	}
	return nil
}

// ParseAlgebraic parses a full algebraic expression and requires the
// input be fully consumed (used for text already known to be scoped by
// '…' delimiters, with the delimiters stripped by the caller).
func (p *Parser) ParseAlgebraic() (Value, error) {
	e, err := p.parseExpr(0)
	if err != nil {
		return Value{}, err
	}
	if tok := p.lx.Peek(); tok.Kind != token.EOF {
		return Value{}, diagnostic.ErrInvalidSyntax("unexpected trailing input: "+tok.Text, int(tok.Span.Start))
	}
	return Value{Kind: ValueExpr, Expr: e}, nil
}

// ParseProgram parses a top-level sequence of RPL objects until EOF —
// the grammar «…» delimits, minus the delimiters themselves.
func (p *Parser) ParseProgram() (Value, error) {
	items, err := p.parseObjectsUntil(token.EOF)
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: ValueProgram, Items: items}, nil
}

// parseObjectsUntil parses a whitespace-separated run of objects,
// stopping (without consuming) when it sees closing token end.
func (p *Parser) parseObjectsUntil(end token.Kind) ([]Value, error) {
	var out []Value
	for {
		tok := p.lx.Peek()
		if tok.Kind == end {
			return out, nil
		}
		v, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

// parseObject parses one RPL object: a number, a bare symbol/command
// name, or one of the four delimited forms.
func (p *Parser) parseObject() (Value, error) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Quote:
		return p.parseQuoted()
	case token.ProgOpen:
		return p.parseNestedProgram()
	case token.LBracket:
		return p.parseDelimited(token.LBracket, token.RBracket, ValueArray)
	case token.LBrace:
		return p.parseDelimited(token.LBrace, token.RBrace, ValueList)
	case token.StringLit:
		p.lx.Next()
		return Value{Kind: ValueText, Text: unquote(tok.Text)}, nil
	case token.Ident:
		if kw, ok := loopOpeners[strings.ToUpper(tok.Text)]; ok {
			return kw(p)
		}
		e, err := p.parseExpr(0)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: ValueExpr, Expr: e}, nil
	case token.IntLit, token.DecimalLit, token.BasedLit:
		e, err := p.parseExpr(0)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: ValueExpr, Expr: e}, nil
	default:
		return Value{}, diagnostic.ErrInvalidSyntax("expected an object", int(tok.Span.Start))
	}
}

// loopOpeners dispatches the identifier that opens one of the six loop
// forms to the parse function that reads the rest of it. Keyed
// case-insensitively since the calculator's own command names are
// conventionally typed uppercase but loop keywords read naturally
// lowercase too ("1 10 start i next").
var loopOpeners map[string]func(*Parser) (Value, error)

func init() {
	loopOpeners = map[string]func(*Parser) (Value, error){
		"START": func(p *Parser) (Value, error) { return p.parseCountedLoop(false) },
		"FOR":   func(p *Parser) (Value, error) { return p.parseCountedLoop(true) },
		"DO":    (*Parser).parseDoUntilLoop,
		"WHILE": (*Parser).parseWhileRepeatLoop,
	}
}

// parseCountedLoop reads a START or FOR loop: START binds the counter
// under the fixed name "i" and never declares one explicitly; FOR
// requires an explicit variable name token right after the keyword.
// Either form closes on NEXT (fixed step 1) or STEP (step popped after
// the body runs each iteration, per the interpreter's stepped-loop
// contract).
func (p *Parser) parseCountedLoop(named bool) (Value, error) {
	p.lx.Next() // START or FOR
	varName := "i"
	if named {
		nameTok := p.lx.Next()
		if nameTok.Kind != token.Ident {
			return Value{}, diagnostic.ErrInvalidSyntax("expected a loop variable name after FOR", int(nameTok.Span.Start))
		}
		varName = nameTok.Text
	}
	items, closer, err := p.parseObjectsUntilKeyword("NEXT", "STEP")
	if err != nil {
		return Value{}, err
	}
	return Value{
		Kind:     ValueLoop,
		LoopKind: LoopCounted,
		Named:    true,
		Stepped:  closer == "STEP",
		VarName:  varName,
		Items:    items,
	}, nil
}

// parseDoUntilLoop reads "DO body UNTIL cond END": body always runs at
// least once, then cond is checked.
func (p *Parser) parseDoUntilLoop() (Value, error) {
	p.lx.Next() // DO
	body, _, err := p.parseObjectsUntilKeyword("UNTIL")
	if err != nil {
		return Value{}, err
	}
	cond, _, err := p.parseObjectsUntilKeyword("END")
	if err != nil {
		return Value{}, err
	}
	condVal := Value{Kind: ValueProgram, Items: cond}
	return Value{Kind: ValueLoop, LoopKind: LoopDoUntil, Items: body, Cond: &condVal}, nil
}

// parseWhileRepeatLoop reads "WHILE cond REPEAT body END": cond is
// checked before every run of body, including the first.
func (p *Parser) parseWhileRepeatLoop() (Value, error) {
	p.lx.Next() // WHILE
	cond, _, err := p.parseObjectsUntilKeyword("REPEAT")
	if err != nil {
		return Value{}, err
	}
	body, _, err := p.parseObjectsUntilKeyword("END")
	if err != nil {
		return Value{}, err
	}
	condVal := Value{Kind: ValueProgram, Items: cond}
	return Value{Kind: ValueLoop, LoopKind: LoopWhileRepeat, Items: body, Cond: &condVal}, nil
}

// parseObjectsUntilKeyword parses objects until it peeks an identifier
// token whose text case-insensitively matches one of closers, consuming
// that token and reporting which one matched.
func (p *Parser) parseObjectsUntilKeyword(closers ...string) ([]Value, string, error) {
	var out []Value
	for {
		tok := p.lx.Peek()
		if tok.Kind == token.EOF {
			return nil, "", diagnostic.ErrInvalidSyntax("unterminated loop: expected "+strings.Join(closers, " or "), int(tok.Span.Start))
		}
		if tok.Kind == token.Ident {
			upper := strings.ToUpper(tok.Text)
			for _, c := range closers {
				if upper == c {
					p.lx.Next()
					return out, c, nil
				}
			}
		}
		v, err := p.parseObject()
		if err != nil {
			return nil, "", err
		}
		out = append(out, v)
	}
}

func (p *Parser) parseQuoted() (Value, error) {
	p.lx.Next() // opening '
	e, err := p.parseExpr(0)
	if err != nil {
		return Value{}, err
	}
	if err := p.expect(token.Quote); err != nil {
		return Value{}, err
	}
	return Value{Kind: ValueExpr, Expr: e}, nil
}

func (p *Parser) parseNestedProgram() (Value, error) {
	p.lx.Next() // «
	items, err := p.parseObjectsUntil(token.ProgClose)
	if err != nil {
		return Value{}, err
	}
	if err := p.expect(token.ProgClose); err != nil {
		return Value{}, err
	}
	return Value{Kind: ValueProgram, Items: items}, nil
}

func (p *Parser) parseDelimited(open, closeTok token.Kind, kind ValueKind) (Value, error) {
	p.lx.Next() // opening delimiter
	var items []Value
	for {
		tok := p.lx.Peek()
		if tok.Kind == closeTok {
			break
		}
		v, err := p.parseObject()
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
		if p.lx.Peek().Kind == token.Comma {
			p.lx.Next()
		}
	}
	if err := p.expect(closeTok); err != nil {
		return Value{}, err
	}
	return Value{Kind: kind, Items: items}, nil
}
