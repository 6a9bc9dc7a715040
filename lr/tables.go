package lr

import (
	"fmt"

	"github.com/npillmayer/parsergen"
	"github.com/npillmayer/parsergen/grammar"
	"github.com/npillmayer/parsergen/lr/sparse"
	"github.com/npillmayer/schuko/gconf"
)

// Actions for parser action tables. Other (non-negative) entries denote
// a reduce action for the rule with that index.
const (
	ShiftAction  = -1
	AcceptAction = -2
)

// Mode selects the class of LR tables to create.
type Mode int

// Modes of table generation, by increasing precision of lookaheads
// for reduce actions.
const (
	LR0 Mode = iota
	SLR1
	LALR1
)

func (m Mode) String() string {
	switch m {
	case LR0:
		return "LR(0)"
	case SLR1:
		return "SLR(1)"
	case LALR1:
		return "LALR(1)"
	}
	return fmt.Sprintf("<mode %d>", int(m))
}

// TableGenerator is a generator object to construct LR parser tables.
// Clients usually create a Grammar G, then a table generator for G.
// TableGenerator.CreateTables() constructs the CFSM and parser tables for
// an LR-parser recognizing grammar G.
//
// The generator works on the augmented grammar, with rule 0 being S' ➞ S.
type TableGenerator struct {
	g     *grammar.Grammar
	rules []*grammar.Production // augmented rules
	byLHS map[grammar.Nonterminal][]int
	dfa   *CFSM
	// If CollectConflicts is set, table generation reports all conflicts
	// instead of stopping at the first one. It is initialized from the
	// configuration flag 'lr-collect-conflicts'.
	CollectConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a grammar.
func NewTableGenerator(g *grammar.Grammar) *TableGenerator {
	lrgen := &TableGenerator{
		g:                g,
		byLHS:            make(map[grammar.Nonterminal][]int),
		CollectConflicts: gconf.GetBool("lr-collect-conflicts"),
	}
	start := grammar.NewProduction(grammar.Start, g.StartSymbol().Symbol())
	lrgen.rules = append([]*grammar.Production{start}, g.Productions()...)
	for r, p := range lrgen.rules {
		lrgen.byLHS[p.LHS] = append(lrgen.byLHS[p.LHS], r)
	}
	return lrgen
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// The CFSM will be created, if it has not been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = lrgen.buildCFSM()
	}
	return lrgen.dfa
}

// CreateTables creates the GOTO and ACTION tables for an LR parser. It returns
// a *ConflictError if the grammar is not of the class selected by mode.
func (lrgen *TableGenerator) CreateTables(mode Mode) (*Tables, error) {
	if mode < LR0 || mode > LALR1 {
		return nil, fmt.Errorf("%v tables: %w", mode, parsergen.ErrNotImplemented)
	}
	cfsm := lrgen.CFSM()
	t := newTables(lrgen.g, mode, lrgen.rules, cfsm)
	lrgen.buildGotoTable(t)
	if err := lrgen.buildActionTable(t); err != nil {
		tracer().Errorf("%v", err)
		return nil, err
	}
	tracer().Infof("%v tables for %q: %d states, %d actions, %d gotos", mode, lrgen.g.Name(),
		t.StateCount(), t.actionT.ValueCount(), t.gotoT.ValueCount())
	return t, nil
}

// LR0Tables creates LR(0) tables for g.
func LR0Tables(g *grammar.Grammar) (*Tables, error) {
	return NewTableGenerator(g).CreateTables(LR0)
}

// SLR1Tables creates SLR(1) tables for g.
func SLR1Tables(g *grammar.Grammar) (*Tables, error) {
	return NewTableGenerator(g).CreateTables(SLR1)
}

// LALR1Tables creates LALR(1) tables for g.
func LALR1Tables(g *grammar.Grammar) (*Tables, error) {
	return NewTableGenerator(g).CreateTables(LALR1)
}

// CanonicalLR1Tables would create tables for a canonical LR(1) parser.
func CanonicalLR1Tables(g *grammar.Grammar) (*Tables, error) {
	return nil, fmt.Errorf("canonical LR(1) tables: %w", parsergen.ErrNotImplemented)
}

// ===========================================================================

// buildGotoTable builds the GOTO table from the edges of the CFSM. We
// include transitions for terminals, which are the targets of shift actions.
func (lrgen *TableGenerator) buildGotoTable(t *Tables) {
	for _, e := range t.cfsm.Edges() {
		t.gotoT.Set(e.From.ID, t.columns[e.Label], int32(e.To.ID))
	}
}

// reduction is a candidate reduce action, with the lookaheads it applies to.
type reduction struct {
	item Item
	la   []grammar.Symbol
}

// For building an ACTION table we iterate over all the states of the CFSM.
// An inner loop iterates over all the items within a CFSM-state.
// If an item has a terminal immediately after the dot, we produce a shift
// entry. If an item's dot is behind the complete RHS of a rule, then
// - for the LR(0) case: we produce a reduce-entry for the rule for every terminal
// - for the SLR case: we produce a reduce-entry for the rule for each
//   terminal from FOLLOW(LHS)
// - for the LALR case: we produce a reduce-entry for the rule for each
//   LALR(1) lookahead of the item.
// The completed start rule S' ➞ S . produces an accept entry for EOF.
//
// The table is a sparse matrix, where every entry may consist of up
// to 2 entries, thus recording shift/reduce- or reduce/reduce-conflicts.
func (lrgen *TableGenerator) buildActionTable(t *Tables) error {
	var lookaheads map[kernelItem]*grammar.TerminalSet
	if t.mode == LALR1 {
		lookaheads = lrgen.kernelLookaheads(t.cfsm)
	}
	var conflicts []Conflict
	record := func(c *Conflict) bool {
		if c == nil {
			return true
		}
		tracer().Debugf("    conflict: %v", c)
		conflicts = append(conflicts, *c)
		return lrgen.CollectConflicts
	}
	for _, state := range t.cfsm.States() {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		var reductions []reduction
		for _, i := range state.Items() {
			A := i.PeekSymbol()
			switch {
			case A.IsTerminal(): // create a shift entry
				if !record(t.add(state.ID, A, ShiftAction)) {
					return &ConflictError{Conflicts: conflicts}
				}
			case i.IsComplete() && i.rule == 0:
				if !record(t.add(state.ID, grammar.EOF.Symbol(), AcceptAction)) {
					return &ConflictError{Conflicts: conflicts}
				}
			case i.IsComplete() && t.mode == LR0:
				las := append([]grammar.Symbol{grammar.EOF.Symbol()}, lrgen.g.Terminals()...)
				reductions = append(reductions, reduction{item: i, la: las})
			case i.IsComplete() && t.mode == SLR1:
				las := lrgen.g.Follow(i.prod.LHS).Symbols()
				reductions = append(reductions, reduction{item: i, la: las})
			}
		}
		if t.mode == LALR1 {
			for _, x := range lrgen.stateLookaheads(state, lookaheads) {
				if x.item.IsComplete() && x.item.rule != 0 {
					reductions = append(reductions, reduction{item: x.item, la: x.la.Symbols()})
				}
			}
		}
		for _, r := range reductions {
			tracer().Debugf("    reduce %v on %v", r.item, r.la)
			for _, la := range r.la {
				if !record(t.add(state.ID, la, int32(r.item.rule))) {
					return &ConflictError{Conflicts: conflicts}
				}
			}
		}
	}
	if len(conflicts) > 0 {
		return &ConflictError{Conflicts: conflicts}
	}
	return nil
}

// === Tables ================================================================

// Tables are the parse tables for an LR parser: a GOTO table and an ACTION table,
// together with the CFSM they have been built from. Tables are immutable and may
// be shared between parser runtimes.
//
// Columns of both tables are indexed by grammar symbols: EOF first, then the
// terminals of the grammar, then its nonterminals.
type Tables struct {
	g       *grammar.Grammar
	mode    Mode
	rules   []*grammar.Production
	columns map[grammar.Symbol]int
	cfsm    *CFSM
	gotoT   *sparse.IntMatrix
	actionT *sparse.IntMatrix
}

func newTables(g *grammar.Grammar, mode Mode, rules []*grammar.Production, cfsm *CFSM) *Tables {
	t := &Tables{
		g:       g,
		mode:    mode,
		rules:   rules,
		columns: make(map[grammar.Symbol]int),
		cfsm:    cfsm,
	}
	t.columns[grammar.EOF.Symbol()] = 0
	g.EachSymbol(func(A grammar.Symbol) {
		t.columns[A] = len(t.columns)
	})
	n := cfsm.states.Size()
	t.gotoT = sparse.NewIntMatrix(n, len(t.columns), sparse.DefaultNullValue)
	t.actionT = sparse.NewIntMatrix(n, len(t.columns), sparse.DefaultNullValue)
	return t
}

// add enters an action value into the ACTION table. If the cell already
// holds a different action, the new one is added as a second value and
// the conflict is returned. The table records the first two actions of a
// cell; further actions are reported as conflicts with the first one.
func (t *Tables) add(state int, la grammar.Symbol, action int32) *Conflict {
	col := t.columns[la]
	a1, a2 := t.actionT.Values(state, col)
	if a1 == t.actionT.NullValue() {
		t.actionT.Set(state, col, action)
		return nil
	}
	if a1 == action || a2 == action { // relax, e.g. double shift
		return nil
	}
	if a2 == t.actionT.NullValue() {
		t.actionT.Add(state, col, action)
	}
	return &Conflict{
		State:     state,
		Lookahead: la,
		Actions:   [2]Action{t.decode(state, col, a1), t.decode(state, col, action)},
	}
}

func (t *Tables) decode(state, col int, v int32) Action {
	switch {
	case v == t.actionT.NullValue():
		return Action{Type: NoAction}
	case v == AcceptAction:
		return Action{Type: Accept}
	case v == ShiftAction:
		return Action{Type: Shift, State: int(t.gotoT.Value(state, col))}
	}
	return Action{Type: Reduce, Rule: int(v), Production: t.rules[v]}
}

// Grammar returns the grammar the tables have been built for.
func (t *Tables) Grammar() *grammar.Grammar {
	return t.g
}

// Mode returns the class of the tables.
func (t *Tables) Mode() Mode {
	return t.mode
}

// CFSM returns the characteristic finite state machine the tables have been
// built from.
func (t *Tables) CFSM() *CFSM {
	return t.cfsm
}

// StartState returns the ID of the start state.
func (t *Tables) StartState() int {
	return t.cfsm.S0.ID
}

// StateCount returns the number of states.
func (t *Tables) StateCount() int {
	return t.cfsm.states.Size()
}

// Rule returns the rule with index i of the augmented grammar. Rule 0 is S' ➞ S,
// rule i+1 is rule i of the grammar.
func (t *Tables) Rule(i int) *grammar.Production {
	if i < 0 || i >= len(t.rules) {
		return nil
	}
	return t.rules[i]
}

// Action returns the parser action for a state and a lookahead, which has to be
// a terminal or EOF.
func (t *Tables) Action(state int, la grammar.Symbol) Action {
	col, ok := t.columns[la]
	if !ok || la.IsNonterminal() && !la.IsEOF() {
		return Action{Type: NoAction}
	}
	return t.decode(state, col, t.actionT.Value(state, col))
}

// Goto returns the state to enter after reducing to A in a state.
func (t *Tables) Goto(state int, A grammar.Nonterminal) (int, bool) {
	col, ok := t.columns[A.Symbol()]
	if !ok {
		return 0, false
	}
	v := t.gotoT.Value(state, col)
	if v == t.gotoT.NullValue() {
		return 0, false
	}
	return int(v), true
}

// Expected returns the lookaheads with an action in a state, in column order.
func (t *Tables) Expected(state int) []grammar.Symbol {
	var syms []grammar.Symbol
	if t.Action(state, grammar.EOF.Symbol()).Type != NoAction {
		syms = append(syms, grammar.EOF.Symbol())
	}
	for _, a := range t.g.Terminals() {
		if t.Action(state, a).Type != NoAction {
			syms = append(syms, a)
		}
	}
	return syms
}
