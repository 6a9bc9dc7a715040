package grammar

import (
	"errors"
	"fmt"
)

// Errors returned by grammar construction.
var (
	ErrInvalidStartSymbol = errors.New("invalid start symbol")
	ErrInvalidProduction  = errors.New("invalid production")
	ErrInvalidSymbol      = errors.New("invalid symbol")
	// ErrNotImplemented is returned by algorithms which are part of the API,
	// but have no implementation yet.
	ErrNotImplemented = errors.New("not implemented")
)

// InvalidStartSymbolError is returned if the start symbol of a grammar is not
// one of its nonterminals.
type InvalidStartSymbolError struct {
	Symbol Nonterminal
}

func (e *InvalidStartSymbolError) Error() string {
	return fmt.Sprintf("symbol %v can't be a start symbol because it is not in nonterminals set", e.Symbol)
}

// Is makes InvalidStartSymbolError match ErrInvalidStartSymbol.
func (e *InvalidStartSymbolError) Is(target error) bool {
	return target == ErrInvalidStartSymbol
}

// InvalidProductionError is returned if a production contains a symbol which
// is neither a terminal nor a nonterminal of the grammar.
type InvalidProductionError struct {
	Production *Production
	Violator   Symbol
}

func (e *InvalidProductionError) Error() string {
	return fmt.Sprintf("production %v is incorrect due to symbol %v, which is not in terminals and nonterminals sets",
		e.Production, e.Violator)
}

// Is makes InvalidProductionError match ErrInvalidProduction.
func (e *InvalidProductionError) Is(target error) bool {
	return target == ErrInvalidProduction
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a context-free grammar, consisting of terminals, nonterminals,
// a start symbol and productions. Grammars are validated at construction
// time and immutable afterwards.
//
// FIRST- and FOLLOW-sets are computed once during construction, always over
// the cleaned grammar (see Clean).
type Grammar struct {
	name         string
	terminals    []Symbol
	nonterminals []Nonterminal
	ntIndex      map[Nonterminal]int
	start        Nonterminal
	rules        *Productions
	symbols      *symtab
	epsilons     *NonterminalSet // epsilon-generating nonterminals
	first        map[Nonterminal]*TerminalSet
	follow       map[Nonterminal]*TerminalSet
}

// New creates a grammar. It returns an error if
//
//     • start is not contained in nonterminals (InvalidStartSymbolError)
//     • a production mentions a symbol not contained in terminals ∪ nonterminals
//       (InvalidProductionError)
//
// Terminals have to be comparable values. Special nonterminals (Epsilon, EOF, Start)
// may not be listed as nonterminals and may not be used on the right hand side
// of productions.
func New(terminals []Terminal, nonterminals []Nonterminal, start Nonterminal,
	productions []*Production) (*Grammar, error) {
	//
	terms := make([]Symbol, 0, len(terminals))
	for _, t := range terminals {
		if !isComparable(t) {
			return nil, fmt.Errorf("%w: terminal %v is not comparable", ErrInvalidSymbol, t)
		}
		terms = append(terms, T(t))
	}
	for _, A := range nonterminals {
		if A.IsSpecial() || A.IsZero() {
			return nil, fmt.Errorf("%w: %q can't be used as a nonterminal", ErrInvalidSymbol, A.Name())
		}
	}
	g := newGrammar(newSymtab(terms), nonterminals, start)
	if _, ok := g.ntIndex[start]; !ok {
		tracer().Errorf("invalid start symbol %v", start)
		return nil, &InvalidStartSymbolError{Symbol: start}
	}
	for _, p := range productions {
		if err := g.validate(p); err != nil {
			tracer().Errorf("%v", err)
			return nil, err
		}
		g.rules.Add(p)
	}
	g.analyse()
	return g, nil
}

func newGrammar(st *symtab, nonterminals []Nonterminal, start Nonterminal) *Grammar {
	g := &Grammar{
		terminals: st.terminals,
		ntIndex:   make(map[Nonterminal]int, len(nonterminals)),
		start:     start,
		rules:     NewProductions(),
		symbols:   st,
	}
	for _, A := range nonterminals {
		if _, dup := g.ntIndex[A]; !dup {
			g.ntIndex[A] = len(g.nonterminals)
			g.nonterminals = append(g.nonterminals, A)
		}
	}
	return g
}

func (g *Grammar) validate(p *Production) error {
	if p == nil {
		return fmt.Errorf("%w: <nil>", ErrInvalidProduction)
	}
	if _, ok := g.ntIndex[p.LHS]; !ok {
		return &InvalidProductionError{Production: p, Violator: p.LHS.Symbol()}
	}
	for _, sym := range p.rhs {
		if sym.IsNonterminal() {
			if A, _ := sym.Nonterminal(); A.IsSpecial() {
				return &InvalidProductionError{Production: p, Violator: sym}
			}
			if !g.IsNonterminal(sym) {
				return &InvalidProductionError{Production: p, Violator: sym}
			}
		} else if !isComparable(sym.t) || !g.IsTerminal(sym) {
			return &InvalidProductionError{Production: p, Violator: sym}
		}
	}
	return nil
}

// Name returns the (optional) name of the grammar.
func (g *Grammar) Name() string {
	return g.name
}

// StartSymbol returns the start symbol of g.
func (g *Grammar) StartSymbol() Nonterminal {
	return g.start
}

// Terminals returns the terminal symbols of g, in the order given at construction.
func (g *Grammar) Terminals() []Symbol {
	return append([]Symbol(nil), g.terminals...)
}

// Nonterminals returns the nonterminals of g, in the order given at construction.
func (g *Grammar) Nonterminals() []Nonterminal {
	return append([]Nonterminal(nil), g.nonterminals...)
}

// Productions returns all productions of g, in insertion order.
func (g *Grammar) Productions() []*Production {
	return g.rules.Values()
}

// RuleCount returns the number of productions.
func (g *Grammar) RuleCount() int {
	return g.rules.Len()
}

// Rule returns the production at position i.
func (g *Grammar) Rule(i int) *Production {
	if i < 0 || i >= g.rules.Len() {
		return nil
	}
	return g.rules.At(i)
}

// RuleIndex returns the position of a production structurally equal to p,
// or -1.
func (g *Grammar) RuleIndex(p *Production) int {
	return g.rules.Index(p)
}

// RulesFor returns the productions with left hand side A.
func (g *Grammar) RulesFor(A Nonterminal) []*Production {
	return g.rules.LHSFilter(A)
}

// IsTerminal checks if sym is a terminal of g.
func (g *Grammar) IsTerminal(sym Symbol) bool {
	if !sym.IsTerminal() {
		return false
	}
	_, ok := g.symbols.index[sym]
	return ok
}

// IsNonterminal checks if sym is an (ordinary) nonterminal of g.
func (g *Grammar) IsNonterminal(sym Symbol) bool {
	A, ok := sym.Nonterminal()
	if !ok {
		return false
	}
	_, ok = g.ntIndex[A]
	return ok
}

// EachSymbol calls f for every terminal and then for every nonterminal,
// in grammar order.
func (g *Grammar) EachSymbol(f func(Symbol)) {
	for _, t := range g.terminals {
		f(t)
	}
	for _, A := range g.nonterminals {
		f(A.Symbol())
	}
}

// IsEpsilonGenerating is true if A ⇒* ε.
func (g *Grammar) IsEpsilonGenerating(A Nonterminal) bool {
	return g.epsilons.Contains(A)
}

// IsNullable is true if the symbol derives the empty string. Terminals never do.
func (g *Grammar) IsNullable(sym Symbol) bool {
	return g.epsilons.ContainsSymbol(sym)
}

// First returns FIRST(A), including Epsilon if A ⇒* ε. The set is a copy.
// Nonterminals removed by cleaning the grammar have an empty FIRST-set.
func (g *Grammar) First(A Nonterminal) *TerminalSet {
	if f, ok := g.first[A]; ok {
		return f.Copy()
	}
	return g.NewTerminalSet()
}

// Follow returns FOLLOW(A), including EOF if A may end a sentential form.
// The set is a copy.
func (g *Grammar) Follow(A Nonterminal) *TerminalSet {
	if f, ok := g.follow[A]; ok {
		return f.Copy()
	}
	return g.NewTerminalSet()
}

// FirstOfSequence returns FIRST(X1 … Xn). The result contains Epsilon if all
// symbols derive ε (trivially so for an empty sequence).
func (g *Grammar) FirstOfSequence(syms []Symbol) *TerminalSet {
	F := g.NewTerminalSet()
	for _, sym := range syms {
		if !sym.IsNonterminal() || sym.IsEOF() {
			F.Add(sym)
			return F
		}
		A, _ := sym.Nonterminal()
		F.unionWithoutEpsilon(g.first[A])
		if !g.IsNullable(sym) {
			return F
		}
	}
	F.Add(Epsilon.Symbol())
	return F
}

// Equals is true if both grammars have the same start symbol, the same terminals,
// nonterminals and productions, irrespective of order.
func (g *Grammar) Equals(other *Grammar) bool {
	if g == other {
		return true
	}
	if g == nil || other == nil || g.start != other.start ||
		len(g.terminals) != len(other.terminals) ||
		len(g.nonterminals) != len(other.nonterminals) ||
		g.rules.Len() != other.rules.Len() {
		return false
	}
	for _, t := range g.terminals {
		if !other.IsTerminal(t) {
			return false
		}
	}
	for _, A := range g.nonterminals {
		if _, ok := other.ntIndex[A]; !ok {
			return false
		}
	}
	for _, p := range g.rules.list {
		if !other.rules.Contains(p) {
			return false
		}
	}
	return true
}

// HasLeftRecursion checks if some nonterminal A derives a sentential form
// starting with A. Leads are closed transitively, so besides direct recursion
// indirect recursion (A ➞ B x, B ➞ A y) is reported, too.
// Derivation leads are followed through epsilon-generating prefixes, i.e. for
//
//     A ➞ B A x
//     B ➞ ε
//
// A is left-recursive.
func (g *Grammar) HasLeftRecursion() bool {
	for _, A := range g.nonterminals {
		if g.leadsTo(A, A) {
			tracer().Debugf("nonterminal %v is left-recursive", A)
			return true
		}
	}
	return false
}

// leadsTo checks if B is a derivation lead of A.
func (g *Grammar) leadsTo(A, B Nonterminal) bool {
	leads := newNonterminalSet()
	queue := []Nonterminal{A}
	for len(queue) > 0 {
		N := queue[0]
		queue = queue[1:]
		for _, p := range g.rules.LHSFilter(N) {
			for _, sym := range p.rhs {
				C, ok := sym.Nonterminal()
				if !ok {
					break
				}
				if leads.add(C) {
					queue = append(queue, C)
				}
				if !g.IsEpsilonGenerating(C) {
					break
				}
			}
		}
	}
	return leads.Contains(B)
}

// Dump traces the productions of g at debug level.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ---------------", g.name)
	for i, p := range g.rules.list {
		tracer().Debugf("%3d: %s", i, p)
	}
	tracer().Debugf("-------------------------------")
}

func (g *Grammar) String() string {
	return fmt.Sprintf("grammar %q (start %v, %d rules)", g.name, g.start, g.rules.Len())
}
