// Package token defines the lexical tokens the RPL and algebraic grammars
// share: both read the same stream, they just nest it differently ('…'
// scopes algebraic syntax, «…» scopes RPL syntax, each delegating the
// interior to the other grammar's parser).
package token

// Pos is a byte offset into the source text.
type Pos int

// Span is a half-open byte range [Start, End) in the source text.
type Span struct {
	Start Pos
	End   Pos
}

// Token is a single lexical unit with its source location and literal text.
type Token struct {
	Kind Kind
	Span Span
	Text string
}

// IsLiteral reports whether t is a literal value.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// IsOperator reports whether t is an operator token.
func (t Token) IsOperator() bool { return t.Kind.IsOperator() }

// IsIdent reports whether t is an identifier/command name.
func (t Token) IsIdent() bool { return t.Kind == Ident }
