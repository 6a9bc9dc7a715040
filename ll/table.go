package ll

import (
	"errors"
	"fmt"

	"github.com/npillmayer/parsergen"
	"github.com/npillmayer/parsergen/grammar"
	"github.com/npillmayer/parsergen/iteratable"
)

// Errors of LL table construction.
var (
	ErrLeftRecursion    = errors.New("left recursion found")
	ErrInvalidLookahead = errors.New("invalid lookahead")
)

// LeftRecursionError is returned for left-recursive grammars. It matches both
// ErrLeftRecursion and parsergen.ErrIncompatibleGrammar.
type LeftRecursionError struct {
	Grammar *grammar.Grammar
}

func (e *LeftRecursionError) Error() string {
	return fmt.Sprintf("%v: grammar %q is left-recursive", ErrLeftRecursion, e.Grammar.Name())
}

// Is matches ErrLeftRecursion and parsergen.ErrIncompatibleGrammar.
func (e *LeftRecursionError) Is(target error) bool {
	return target == ErrLeftRecursion || target == parsergen.ErrIncompatibleGrammar
}

// ConflictError is returned if two productions for a nonterminal share a
// directing terminal, i.e. the grammar is not LL(1).
type ConflictError struct {
	Nonterminal grammar.Nonterminal
	Lookahead   grammar.Symbol
	First       *grammar.Production // the production already in the table cell
	Second      *grammar.Production
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: LL(1) conflict for (%v, %v) between %v and %v",
		parsergen.ErrIncompatibleGrammar, e.Nonterminal, e.Lookahead, e.First, e.Second)
}

// Is matches parsergen.ErrIncompatibleGrammar.
func (e *ConflictError) Is(target error) bool {
	return target == parsergen.ErrIncompatibleGrammar
}

// --- Parse tables ----------------------------------------------------------

// ParseTable is an LL(1) parse table, mapping a nonterminal and a lookahead
// (terminal or EOF) to the production to expand. ParseTables are immutable
// and may be shared between runtimes.
type ParseTable struct {
	g     *grammar.Grammar
	cells map[grammar.Nonterminal]map[grammar.Symbol]*grammar.Production
	count int
}

// TableK creates an LL(k) parse table. Only k = 1 is supported.
func TableK(g *grammar.Grammar, k int) (*ParseTable, error) {
	switch {
	case k <= 0:
		return nil, fmt.Errorf("%w: LL(%d)", ErrInvalidLookahead, k)
	case k > 1:
		return nil, fmt.Errorf("LL(%d) tables: %w", k, parsergen.ErrNotImplemented)
	}
	return Table(g)
}

// Table creates an LL(1) parse table for g. It fails for left-recursive
// grammars and for grammars with conflicting directing terminals.
//
// The directing terminals of a production A ➞ α are FIRST(α)∖{ε}, plus
// FOLLOW(A) if α ⇒* ε.
func Table(g *grammar.Grammar) (*ParseTable, error) {
	if g.HasLeftRecursion() {
		err := &LeftRecursionError{Grammar: g}
		tracer().Errorf("%v", err)
		return nil, err
	}
	pt := &ParseTable{
		g:     g,
		cells: make(map[grammar.Nonterminal]map[grammar.Symbol]*grammar.Production),
	}
	queue := iteratable.NewSet(0)
	queue.Add(g.StartSymbol())
	queue.IterateOnce()
	for queue.Next() { // queue grows while iterating
		A := queue.Item().(grammar.Nonterminal)
		for _, p := range g.RulesFor(A) {
			for _, sym := range p.RHS() {
				if B, ok := sym.Nonterminal(); ok {
					queue.Add(B)
				}
			}
			for _, la := range directing(g, p).Symbols() {
				if err := pt.set(A, la, p); err != nil {
					tracer().Errorf("%v", err)
					return nil, err
				}
			}
		}
	}
	tracer().Infof("LL(1) table for %q has %d entries", g.Name(), pt.count)
	return pt, nil
}

func directing(g *grammar.Grammar, p *grammar.Production) *grammar.TerminalSet {
	D := g.FirstOfSequence(p.RHS())
	if D.Remove(grammar.Epsilon.Symbol()) {
		D.Union(g.Follow(p.LHS))
	}
	tracer().Debugf("directing(%v) = %v", p, D)
	return D
}

func (pt *ParseTable) set(A grammar.Nonterminal, la grammar.Symbol, p *grammar.Production) error {
	row, ok := pt.cells[A]
	if !ok {
		row = make(map[grammar.Symbol]*grammar.Production)
		pt.cells[A] = row
	}
	if q, occupied := row[la]; occupied {
		if q == p {
			return nil
		}
		return &ConflictError{Nonterminal: A, Lookahead: la, First: q, Second: p}
	}
	row[la] = p
	pt.count++
	return nil
}

// Grammar returns the grammar the table has been built for.
func (pt *ParseTable) Grammar() *grammar.Grammar {
	return pt.g
}

// Lookup returns the production to expand A with for lookahead la.
func (pt *ParseTable) Lookup(A grammar.Nonterminal, la grammar.Symbol) (*grammar.Production, bool) {
	p, ok := pt.cells[A][la]
	return p, ok
}

// Cells returns the number of table entries.
func (pt *ParseTable) Cells() int {
	return pt.count
}

// expected returns the lookaheads with an entry for A, in grammar order.
func (pt *ParseTable) expected(A grammar.Nonterminal) []grammar.Symbol {
	row := pt.cells[A]
	var syms []grammar.Symbol
	if _, ok := row[grammar.EOF.Symbol()]; ok {
		syms = append(syms, grammar.EOF.Symbol())
	}
	for _, t := range pt.g.Terminals() {
		if _, ok := row[t]; ok {
			syms = append(syms, t)
		}
	}
	return syms
}
