package expr

// Pattern is a compiled rewrite pattern: an Expr whose single-lowercase-
// letter symbol atoms ("a" through "z") have been reclassified as
// holes (match variables) once, at construction time, rather than
// inferred from context at every match — the approach this package's
// documented Open Question decision settled on. Any other symbol
// (multi-character, or starting with an uppercase letter) stays literal
// and must match the identical name in the subject.
type Pattern struct {
	Expr
}

// Compile builds a Pattern from an Expr written with ordinary Symbol
// atoms for its match variables.
func Compile(e Expr) Pattern {
	atoms := make([]Atom, len(e.Atoms))
	for i, a := range e.Atoms {
		if a.Kind == KindSymbol && isHoleName(a.Sym) {
			a.Kind = KindHole
		}
		atoms[i] = a
	}
	return Pattern{Expr{Atoms: atoms}}
}

func isHoleName(name string) bool {
	return len(name) == 1 && name[0] >= 'a' && name[0] <= 'z'
}

// Bindings maps a pattern hole's name to the subexpression it matched.
type Bindings map[string]Expr

// Match attempts to match pat against the whole of subject, returning
// the bindings on success.
func Match(pat Pattern, subject Expr) (Bindings, bool) {
	bindings := Bindings{}
	pi, si, ok := matchAt(pat.Atoms, len(pat.Atoms)-1, subject.Atoms, len(subject.Atoms)-1, bindings)
	if !ok || pi != -1 || si != -1 {
		return nil, false
	}
	return bindings, true
}

// matchAt matches the subexpression of pat ending at pi against the
// subexpression of subj ending at si, returning the index immediately
// before each matched span (so a caller matching sibling operands can
// continue from there) and whether the match succeeded.
func matchAt(pat []Atom, pi int, subj []Atom, si int, bindings Bindings) (int, int, bool) {
	p := pat[pi]

	if p.Kind == KindHole {
		start := spanStart(subj, si)
		candidate := Expr{Atoms: append([]Atom{}, subj[start:si+1]...)}
		if bound, ok := bindings[p.Sym]; ok {
			if !exprEqual(bound, candidate) {
				return 0, 0, false
			}
		} else {
			bindings[p.Sym] = candidate
		}
		return pi - 1, start - 1, true
	}

	if p.Kind == KindOp {
		s := subj[si]
		if s.Kind != KindOp || s.Op != p.Op {
			return 0, 0, false
		}
		if p.Op == OpFuncall && (p.Sym != s.Sym || p.Arity != s.Arity) {
			return 0, 0, false
		}
		arity := p.arity()
		pPos, sPos := pi-1, si-1
		for i := 0; i < arity; i++ {
			var ok bool
			pPos, sPos, ok = matchAt(pat, pPos, subj, sPos, bindings)
			if !ok {
				return 0, 0, false
			}
		}
		return pPos, sPos, true
	}

	// Literal leaf: number, symbol, or text.
	if !atomEqual(p, subj[si]) {
		return 0, 0, false
	}
	return pi - 1, si - 1, true
}

func exprEqual(a, b Expr) bool {
	if len(a.Atoms) != len(b.Atoms) {
		return false
	}
	for i := range a.Atoms {
		if !atomEqual(a.Atoms[i], b.Atoms[i]) {
			return false
		}
	}
	return true
}

// Instantiate substitutes bindings into a rewrite template: every hole
// atom's position is replaced by its bound subexpression's atoms, which
// is sound in postfix notation because a hole always has arity zero, so
// splicing its binding's body in its place leaves every surrounding
// operator's operand count unchanged.
func Instantiate(tmpl Expr, bindings Bindings) Expr {
	var out []Atom
	for _, a := range tmpl.Atoms {
		if a.Kind == KindHole {
			out = append(out, bindings[a.Sym].Atoms...)
			continue
		}
		out = append(out, a)
	}
	return Expr{Atoms: out}
}
