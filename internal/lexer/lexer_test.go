package lexer

import (
	"testing"

	"db48x/internal/token"
)

func kinds(src string) []token.Kind {
	lx := New(src)
	var out []token.Kind
	for {
		tok := lx.Next()
		out = append(out, tok.Kind)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func TestScanIntLiteral(t *testing.T) {
	lx := New("42")
	tok := lx.Next()
	if tok.Kind != token.IntLit || tok.Text != "42" {
		t.Errorf("got %+v", tok)
	}
}

func TestScanDecimalLiteral(t *testing.T) {
	cases := []string{"3.14", "1.5E10", "2E+3", "0.5"}
	for _, c := range cases {
		lx := New(c)
		tok := lx.Next()
		if tok.Kind != token.DecimalLit {
			t.Errorf("%q: got kind %v, want DecimalLit", c, tok.Kind)
		}
		if tok.Text != c {
			t.Errorf("%q: got text %q", c, tok.Text)
		}
	}
}

func TestScanBasedLiteral(t *testing.T) {
	lx := New("#1A3h")
	tok := lx.Next()
	if tok.Kind != token.BasedLit || tok.Text != "#1A3h" {
		t.Errorf("got %+v", tok)
	}
}

func TestScanIdent(t *testing.T) {
	lx := New("DUP2")
	tok := lx.Next()
	if tok.Kind != token.Ident || tok.Text != "DUP2" {
		t.Errorf("got %+v", tok)
	}
}

func TestScanString(t *testing.T) {
	lx := New(`"hello world"`)
	tok := lx.Next()
	if tok.Kind != token.StringLit || tok.Text != `"hello world"` {
		t.Errorf("got %+v", tok)
	}
}

func TestScanStringEscapes(t *testing.T) {
	lx := New(`"a\"b"`)
	tok := lx.Next()
	if tok.Kind != token.StringLit || tok.Text != `"a\"b"` {
		t.Errorf("got %+v", tok)
	}
}

func TestScanOperators(t *testing.T) {
	got := kinds("+ - * / ^ == != <= >=")
	want := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Caret,
		token.EqEq, token.BangEq, token.LtEq, token.GtEq, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanDelimiters(t *testing.T) {
	got := kinds("'«[{}]»'")
	want := []token.Kind{
		token.Quote, token.ProgOpen, token.LBracket, token.LBrace,
		token.RBrace, token.RBracket, token.ProgClose, token.Quote, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx := New("DUP SWAP")
	p1 := lx.Peek()
	p2 := lx.Peek()
	if p1 != p2 {
		t.Fatalf("Peek should be idempotent: %+v vs %+v", p1, p2)
	}
	n := lx.Next()
	if n != p1 {
		t.Fatalf("Next after Peek should return the peeked token")
	}
	n2 := lx.Next()
	if n2.Text != "SWAP" {
		t.Errorf("expected SWAP next, got %q", n2.Text)
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	got := kinds("1 @ this is a comment\n2")
	want := []token.Kind{token.IntLit, token.IntLit, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEmptyInputYieldsEOF(t *testing.T) {
	lx := New("")
	tok := lx.Next()
	if tok.Kind != token.EOF {
		t.Errorf("got %v, want EOF", tok.Kind)
	}
	tok2 := lx.Next()
	if tok2.Kind != token.EOF {
		t.Errorf("subsequent Next after EOF should stay EOF, got %v", tok2.Kind)
	}
}
