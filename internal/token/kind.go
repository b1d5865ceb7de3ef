package token

// Kind classifies a lexical token, the same closed-enum shape surge's
// token.Kind uses so IsLiteral/IsPunctOrOp/IsKeyword can switch on it.
type Kind uint8

const (
	EOF Kind = iota
	Ident       // symbol / command name (DUP, SIN, foo)
	IntLit      // 42
	BasedLit    // #1A3h, #101b, #17o
	DecimalLit  // 3.14, 1.5E10
	StringLit   // "text"

	Plus
	Minus
	Star
	Slash
	Percent
	Caret // ^ power
	Amp   // AND
	Pipe  // OR
	Bang  // NOT

	Eq // =
	EqEq
	BangEq
	Lt
	LtEq
	Gt
	GtEq

	LParen
	RParen
	LBracket // [ vector/matrix
	RBracket
	LBrace // { list
	RBrace
	Quote      // ' algebraic expression delimiter
	ProgOpen   // «
	ProgClose  // »
	Comma
	Colon      // directory path separator
	ColonColon // root-directory prefix ::
	Semicolon
)

// IsLiteral reports whether the token is a literal value.
func (t Kind) IsLiteral() bool {
	switch t {
	case IntLit, BasedLit, DecimalLit, StringLit:
		return true
	default:
		return false
	}
}

// IsOperator reports whether the token is an infix/prefix arithmetic or
// comparison operator.
func (t Kind) IsOperator() bool {
	switch t {
	case Plus, Minus, Star, Slash, Percent, Caret, Amp, Pipe, Bang,
		Eq, EqEq, BangEq, Lt, LtEq, Gt, GtEq:
		return true
	default:
		return false
	}
}

// IsDelimiter reports whether the token opens or closes a parenthesis or
// one of the four bracketing forms ('…', «…», […], {…}).
func (t Kind) IsDelimiter() bool {
	switch t {
	case LParen, RParen, LBracket, RBracket, LBrace, RBrace,
		Quote, ProgOpen, ProgClose:
		return true
	default:
		return false
	}
}
