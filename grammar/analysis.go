package grammar

// Static grammar analysis. All the set computations are fixed point
// iterations over finite sets of symbols, and therefore terminate.
//
// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.,
// Section 4.5 (Grammar Analysis Algorithms).

// EpsilonGenerating computes the set of nonterminals A with A ⇒* ε.
// The set is seeded with the Epsilon marker, which therefore is a member, too.
func EpsilonGenerating(g *Grammar) *NonterminalSet {
	E := newNonterminalSet(Epsilon)
	changed := true
	for changed {
		changed = false
		for _, p := range g.rules.list {
			if E.Contains(p.LHS) {
				continue
			}
			if allNullable(p.rhs, E) {
				changed = E.add(p.LHS) || changed
			}
		}
	}
	tracer().Debugf("ε-generating = %v", E)
	return E
}

func allNullable(syms []Symbol, E *NonterminalSet) bool {
	for _, sym := range syms {
		if !E.ContainsSymbol(sym) {
			return false
		}
	}
	return true
}

// Generating computes the set of nonterminals which derive at least one
// string of terminals.
//
// Every production carries a counter of right-hand-side occurrences of nonterminals
// not yet known to be generating. Whenever a nonterminal turns out to be generating,
// the counters of all productions it occurs in are decremented. A production
// with a counter of 0 makes its left hand side generating.
func Generating(g *Grammar) *NonterminalSet {
	counters := make(map[*Production]int, g.rules.Len())
	occurrences := make(map[Nonterminal][]*Production)
	G := newNonterminalSet()
	var worklist []Nonterminal
	for _, p := range g.rules.list {
		for _, sym := range p.rhs {
			if A, ok := sym.Nonterminal(); ok {
				counters[p]++
				occurrences[A] = append(occurrences[A], p) // once per occurrence
			}
		}
		if counters[p] == 0 && G.add(p.LHS) {
			worklist = append(worklist, p.LHS)
		}
	}
	for len(worklist) > 0 {
		A := worklist[0]
		worklist = worklist[1:]
		for _, p := range occurrences[A] {
			counters[p]--
			if counters[p] == 0 && G.add(p.LHS) {
				worklist = append(worklist, p.LHS)
			}
		}
	}
	tracer().Debugf("generating = %v", G)
	return G
}

// Reachable computes the set of nonterminals reachable from start, following
// the productions given.
func Reachable(start Nonterminal, productions []*Production) *NonterminalSet {
	R := newNonterminalSet(start)
	queue := []Nonterminal{start}
	for len(queue) > 0 {
		A := queue[0]
		queue = queue[1:]
		for _, p := range productions {
			if p.LHS != A {
				continue
			}
			for _, sym := range p.rhs {
				if B, ok := sym.Nonterminal(); ok && R.add(B) {
					queue = append(queue, B)
				}
			}
		}
	}
	tracer().Debugf("reachable from %v = %v", start, R)
	return R
}

// Clean returns a grammar without useless symbols, i.e., without non-generating
// and unreachable nonterminals and the productions mentioning them.
// Terminals and the start symbol are the same as for g. The start symbol
// always stays a nonterminal of the cleaned grammar, as otherwise the result
// would not be a valid grammar.
//
// Cleaning is idempotent: Clean(Clean(g)) equals Clean(g).
func Clean(g *Grammar) *Grammar {
	cg := g.cleaned()
	cg.analyseClean()
	return cg
}

func (g *Grammar) cleaned() *Grammar {
	G := Generating(g)
	generatingOnly := g.rules.filter(func(p *Production) bool {
		return mentionsOnly(p, G)
	})
	R := Reachable(g.start, generatingOnly.list)
	reachableOnly := generatingOnly.filter(func(p *Production) bool {
		return mentionsOnly(p, R)
	})
	var nts []Nonterminal
	for _, A := range g.nonterminals {
		if A == g.start || (R.Contains(A) && G.Contains(A)) {
			nts = append(nts, A)
		}
	}
	cg := newGrammar(g.symbols, nts, g.start)
	cg.name = g.name
	for _, p := range reachableOnly.list {
		cg.rules.Add(p)
	}
	tracer().Debugf("cleaned grammar has %d of %d rules", cg.rules.Len(), g.rules.Len())
	return cg
}

// mentionsOnly is true if every nonterminal on either side of p is in S.
func mentionsOnly(p *Production, S *NonterminalSet) bool {
	if !S.Contains(p.LHS) {
		return false
	}
	for _, sym := range p.rhs {
		if A, ok := sym.Nonterminal(); ok && !S.Contains(A) {
			return false
		}
	}
	return true
}

// analyse computes the ε-generating set of g, and FIRST and FOLLOW over
// the cleaned version of g.
func (g *Grammar) analyse() {
	g.epsilons = EpsilonGenerating(g)
	cg := Clean(g)
	g.first, g.follow = cg.first, cg.follow
}

// analyseClean computes analysis sets for a grammar which is known to be clean.
func (g *Grammar) analyseClean() {
	g.epsilons = EpsilonGenerating(g)
	g.first = g.firstSets()
	g.follow = g.followSets()
}

// --- FIRST and FOLLOW ------------------------------------------------------

// closure propagates terminals along dependencies to a fixed point:
// every nonterminal A receives the terminals of all nonterminals in deps[A].
// Dependencies are closed transitively, as terminals flow along chains of
// nonterminals.
func closure(sets map[Nonterminal]*TerminalSet, deps map[Nonterminal]*NonterminalSet,
	order []Nonterminal, keepEpsilon bool) {
	//
	changed := true
	for changed {
		changed = false
		for _, A := range order {
			D := deps[A]
			if D == nil {
				continue
			}
			for _, B := range D.Values() { // D may grow while iterating
				if B == A {
					continue
				}
				if keepEpsilon {
					changed = sets[A].Union(sets[B]) || changed
				} else {
					changed = sets[A].unionWithoutEpsilon(sets[B]) || changed
				}
				for _, C := range deps[B].Values() {
					changed = D.add(C) || changed
				}
			}
		}
	}
}

// firstSets computes FIRST(A) for all nonterminals:
//
//     FIRST(A) = { c | A ⇒* cβ } ∪ { ε if A ⇒* ε }
//
// Scanning every production A ➞ X1 … Xn from left to right, the raw contribution
// of the production are the symbols X1 … Xk, where Xk is the first symbol
// not deriving ε. Terminals go into FIRST(A) directly, nonterminals become
// dependencies.
func (g *Grammar) firstSets() map[Nonterminal]*TerminalSet {
	first := make(map[Nonterminal]*TerminalSet, len(g.nonterminals))
	deps := make(map[Nonterminal]*NonterminalSet, len(g.nonterminals))
	for _, A := range g.nonterminals {
		first[A] = newTerminalSet(g.symbols)
		deps[A] = newNonterminalSet()
	}
	for _, p := range g.rules.list {
		for _, sym := range p.rhs {
			if B, ok := sym.Nonterminal(); ok {
				deps[p.LHS].add(B)
				if g.IsEpsilonGenerating(B) {
					continue
				}
			} else {
				first[p.LHS].Add(sym)
			}
			break
		}
	}
	closure(first, deps, g.nonterminals, false)
	for _, A := range g.nonterminals {
		if g.IsEpsilonGenerating(A) {
			first[A].Add(Epsilon.Symbol())
		}
		tracer().Debugf("FIRST(%v) = %v", A, first[A])
	}
	return first
}

// followSets computes FOLLOW(A) for all nonterminals:
//
//     FOLLOW(A) = { c | S ⇒* αAcβ } ∪ { #eof if S ⇒* αA }
//
//     A ➞ αBβ ∈ P                 ⇒  FIRST(β)∖{ε} ⊂ FOLLOW(B)
//     A ➞ αBβ ∈ P ∧ β ⇒* ε        ⇒  FOLLOW(A) ⊂ FOLLOW(B)
//
// Every production is scanned from right to left, carrying along the
// terminals which may follow the current symbol.
func (g *Grammar) followSets() map[Nonterminal]*TerminalSet {
	follow := make(map[Nonterminal]*TerminalSet, len(g.nonterminals))
	deps := make(map[Nonterminal]*NonterminalSet, len(g.nonterminals))
	for _, A := range g.nonterminals {
		follow[A] = newTerminalSet(g.symbols)
		deps[A] = newNonterminalSet()
	}
	follow[g.start].Add(EOF.Symbol())
	for _, p := range g.rules.list {
		trailer := newTerminalSet(g.symbols) // FIRST of the suffix right of the current symbol
		nullableTail := true                 // suffix right of the current symbol ⇒* ε
		for i := len(p.rhs) - 1; i >= 0; i-- {
			sym := p.rhs[i]
			B, ok := sym.Nonterminal()
			if !ok {
				trailer = newTerminalSet(g.symbols)
				trailer.Add(sym)
				nullableTail = false
				continue
			}
			follow[B].Union(trailer)
			if nullableTail {
				deps[B].add(p.LHS)
			}
			if g.IsEpsilonGenerating(B) {
				trailer.unionWithoutEpsilon(g.first[B])
			} else {
				trailer = g.first[B].Copy()
				trailer.Remove(Epsilon.Symbol())
				nullableTail = false
			}
		}
	}
	closure(follow, deps, g.nonterminals, true)
	for _, A := range g.nonterminals {
		tracer().Debugf("FOLLOW(%v) = %v", A, follow[A])
	}
	return follow
}
