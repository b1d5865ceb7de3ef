package expr

// Rule is a rewrite rule: a pattern and the template instantiated in its
// place when the pattern matches.
type Rule struct {
	Pattern Pattern
	Template Expr
}

// NewRule compiles pattern and pairs it with template. Template is
// compiled the same way (single-lowercase-letter symbols become holes)
// so Instantiate can splice in the pattern's bindings by name; any other
// symbol in template stays a literal, unsubstituted symbol.
func NewRule(pattern, template Expr) Rule {
	return Rule{Pattern: Compile(pattern), Template: Compile(template).Expr}
}

// Rewrite applies rule once, bottom-up: every subterm is rewritten
// before its enclosing term is tested against the pattern, and at most
// one substitution happens per subterm per pass.
func (e Expr) Rewrite(rule Rule) Expr {
	out, _ := rewriteOnce(e.Atoms, rule)
	return Expr{Atoms: out}
}

// RewriteAll applies the rule set to a fixpoint: repeated bottom-up
// passes until no rule fires anywhere in the expression. maxPasses
// bounds runaway rule sets (e.g. a rule whose template re-matches its
// own pattern) the way the interpreter's cooperative-interrupt polling
// bounds a runaway rewrite in the full evaluator.
func (e Expr) RewriteAll(rules []Rule) Expr {
	const maxPasses = 256
	cur := e.Atoms
	for pass := 0; pass < maxPasses; pass++ {
		changedThisPass := false
		for _, rule := range rules {
			next, changed := rewriteOnce(cur, rule)
			cur = next
			changedThisPass = changedThisPass || changed
		}
		if !changedThisPass {
			break
		}
	}
	return Expr{Atoms: cur}
}

func rewriteOnce(atoms []Atom, rule Rule) ([]Atom, bool) {
	end := len(atoms) - 1
	root := atoms[end]
	arity := root.arity()

	changed := false
	var rebuilt []Atom
	if arity > 0 {
		for _, sp := range operandSpans(atoms, end) {
			childAtoms, childChanged := rewriteOnce(atoms[sp.start:sp.end+1], rule)
			rebuilt = append(rebuilt, childAtoms...)
			changed = changed || childChanged
		}
		rebuilt = append(rebuilt, root)
	} else {
		rebuilt = append([]Atom{}, atoms...)
	}

	bindings := Bindings{}
	pi, si, ok := matchAt(rule.Pattern.Atoms, len(rule.Pattern.Atoms)-1, rebuilt, len(rebuilt)-1, bindings)
	if ok && pi == -1 && si == -1 {
		return Instantiate(rule.Template, bindings).Atoms, true
	}
	return rebuilt, changed
}
