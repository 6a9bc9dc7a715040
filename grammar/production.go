package grammar

import (
	"bytes"
)

// Production is a grammar rule
//
//     A ➞ X1 … Xn
//
// with a nonterminal A as its left hand side. An empty right hand side denotes
// an epsilon-production; the Epsilon symbol is never part of a right hand side.
// Productions are immutable.
type Production struct {
	LHS Nonterminal
	rhs []Symbol
}

// NewProduction creates a production A ➞ rhs. Epsilon symbols in rhs are dropped,
// thus NewProduction(A, Epsilon.Symbol()) is the same as NewProduction(A).
func NewProduction(A Nonterminal, rhs ...Symbol) *Production {
	p := &Production{LHS: A, rhs: make([]Symbol, 0, len(rhs))}
	for _, sym := range rhs {
		if !sym.IsEpsilon() {
			p.rhs = append(p.rhs, sym)
		}
	}
	return p
}

// RHS returns a copy of the right hand side.
func (p *Production) RHS() []Symbol {
	return append([]Symbol(nil), p.rhs...)
}

// Len returns the number of symbols on the right hand side.
func (p *Production) Len() int {
	return len(p.rhs)
}

// At returns the i-th symbol of the right hand side.
func (p *Production) At(i int) Symbol {
	return p.rhs[i]
}

// IsEpsilon is true for productions with an empty right hand side.
func (p *Production) IsEpsilon() bool {
	return len(p.rhs) == 0
}

// Equals compares productions structurally.
func (p *Production) Equals(other *Production) bool {
	if p == other {
		return true
	}
	if p == nil || other == nil || p.LHS != other.LHS || len(p.rhs) != len(other.rhs) {
		return false
	}
	for i, sym := range p.rhs {
		if sym != other.rhs[i] {
			return false
		}
	}
	return true
}

func (p *Production) String() string {
	var b bytes.Buffer
	b.WriteString(p.LHS.String())
	b.WriteString(" ➞")
	if len(p.rhs) == 0 {
		b.WriteString(" ε")
	}
	for _, sym := range p.rhs {
		b.WriteString(" ")
		b.WriteString(sym.String())
	}
	return b.String()
}

// --- Collections of productions --------------------------------------------

// Productions is an insertion-ordered collection of productions without
// duplicates. Adding a production structurally equal to one already contained
// is a no-op.
type Productions struct {
	list  []*Production
	byLHS map[Nonterminal][]*Production
}

// NewProductions creates a collection from a list of productions.
func NewProductions(prods ...*Production) *Productions {
	ps := &Productions{byLHS: make(map[Nonterminal][]*Production)}
	for _, p := range prods {
		ps.Add(p)
	}
	return ps
}

// Add appends p, if no structurally equal production is present, and returns
// the production contained in the collection.
func (ps *Productions) Add(p *Production) *Production {
	for _, q := range ps.byLHS[p.LHS] {
		if q.Equals(p) {
			return q
		}
	}
	ps.list = append(ps.list, p)
	ps.byLHS[p.LHS] = append(ps.byLHS[p.LHS], p)
	return p
}

// Len returns the number of productions.
func (ps *Productions) Len() int {
	return len(ps.list)
}

// At returns the i-th production.
func (ps *Productions) At(i int) *Production {
	return ps.list[i]
}

// Values returns the productions in insertion order, as a new slice.
func (ps *Productions) Values() []*Production {
	return append([]*Production(nil), ps.list...)
}

// Index returns the position of a production structurally equal to p,
// or -1.
func (ps *Productions) Index(p *Production) int {
	for i, q := range ps.list {
		if q.Equals(p) {
			return i
		}
	}
	return -1
}

// Contains checks for a production structurally equal to p.
func (ps *Productions) Contains(p *Production) bool {
	for _, q := range ps.byLHS[p.LHS] {
		if q.Equals(p) {
			return true
		}
	}
	return false
}

// LHSFilter returns all productions with left hand side A, in insertion order.
func (ps *Productions) LHSFilter(A Nonterminal) []*Production {
	return append([]*Production(nil), ps.byLHS[A]...)
}

// RHSFilter returns all productions with sym occurring on the right hand side.
func (ps *Productions) RHSFilter(sym Symbol) []*Production {
	var r []*Production
	for _, p := range ps.list {
		for _, x := range p.rhs {
			if x == sym {
				r = append(r, p)
				break
			}
		}
	}
	return r
}

// filter returns a new collection with the productions matching a predicate.
func (ps *Productions) filter(keep func(*Production) bool) *Productions {
	r := NewProductions()
	for _, p := range ps.list {
		if keep(p) {
			r.Add(p)
		}
	}
	return r
}
