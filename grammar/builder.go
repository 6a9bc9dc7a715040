package grammar

import "fmt"

// Builder is a helper type to construct grammars rule by rule. Terminals and
// nonterminals are collected in order of first use. Create one with
// NewBuilder:
//
//     b := grammar.NewBuilder("Signed Variables Grammar")
//     b.LHS("Var").N("Sign").T("a").End()  // Var  ➞ Sign a
//     b.LHS("Sign").T("+").End()           // Sign ➞ +
//     b.LHS("Sign").T("-").End()           // Sign ➞ -
//     b.LHS("Sign").Epsilon()              // Sign ➞ ε
//     g, err := b.Grammar()
//
// Unless set explicitly by Start, the start symbol is the left hand side of
// the first rule.
type Builder struct {
	name         string
	start        Nonterminal
	terminals    []Terminal
	tindex       map[Terminal]bool
	nonterminals []Nonterminal
	ntindex      map[Nonterminal]bool
	rules        []*Production
	err          error
}

// NewBuilder gets a new grammar builder, given the name of the grammar to build.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:    name,
		tindex:  make(map[Terminal]bool),
		ntindex: make(map[Nonterminal]bool),
	}
}

// RuleBuilder collects the right hand side of a single rule.
type RuleBuilder struct {
	b   *Builder
	lhs Nonterminal
	rhs []Symbol
}

// Start sets the start symbol of the grammar.
func (b *Builder) Start(name string) *Builder {
	b.start = NT(name)
	b.addNonterminal(b.start)
	return b
}

// LHS starts a new rule with left hand side name.
func (b *Builder) LHS(name string) *RuleBuilder {
	A := NT(name)
	if b.start.IsZero() {
		b.start = A
	}
	b.addNonterminal(A)
	return &RuleBuilder{b: b, lhs: A}
}

// N appends a nonterminal to the right hand side.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	A := NT(name)
	rb.b.addNonterminal(A)
	rb.rhs = append(rb.rhs, A.Symbol())
	return rb
}

// T appends a terminal to the right hand side.
func (rb *RuleBuilder) T(t Terminal) *RuleBuilder {
	if !isComparable(t) {
		if rb.b.err == nil {
			rb.b.err = fmt.Errorf("%w: terminal %v in rule for %v is not comparable",
				ErrInvalidSymbol, t, rb.lhs)
		}
		return rb
	}
	rb.b.addTerminal(t)
	rb.rhs = append(rb.rhs, T(t))
	return rb
}

// End closes the rule and adds it to the grammar.
func (rb *RuleBuilder) End() *Production {
	p := NewProduction(rb.lhs, rb.rhs...)
	rb.b.rules = append(rb.b.rules, p)
	return p
}

// Epsilon closes the rule as an epsilon-production, discarding symbols
// appended so far.
func (rb *RuleBuilder) Epsilon() *Production {
	rb.rhs = nil
	return rb.End()
}

// Grammar returns the grammar built so far, or an error if it is invalid.
func (b *Builder) Grammar() (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}
	g, err := New(b.terminals, b.nonterminals, b.start, b.rules)
	if err != nil {
		return nil, err
	}
	g.name = b.name
	return g, nil
}

func (b *Builder) addTerminal(t Terminal) {
	if !b.tindex[t] {
		b.tindex[t] = true
		b.terminals = append(b.terminals, t)
	}
}

func (b *Builder) addNonterminal(A Nonterminal) {
	if !b.ntindex[A] {
		b.ntindex[A] = true
		b.nonterminals = append(b.nonterminals, A)
	}
}
