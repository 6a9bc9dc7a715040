package lr

import (
	"errors"
	"testing"

	"github.com/npillmayer/parsergen"
	"github.com/npillmayer/parsergen/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// Expression grammar, right-recursive:
//
//     E ➞ T | T + E
//     T ➞ F | F * T
//     F ➞ num | ( E )
//
func makeExprGrammar(t *testing.T) *grammar.Grammar {
	b := grammar.NewBuilder("Expressions")
	b.LHS("E").N("T").End()
	b.LHS("E").N("T").T("+").N("E").End()
	b.LHS("T").N("F").End()
	b.LHS("T").N("F").T("*").N("T").End()
	b.LHS("F").T("num").End()
	b.LHS("F").T("(").N("E").T(")").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// Grammar for assignments, which is LALR(1) but not SLR(1):
//
//     S ➞ L = R | R
//     L ➞ * R | id
//     R ➞ L
//
func makeAssignGrammar(t *testing.T) *grammar.Grammar {
	b := grammar.NewBuilder("Assignments")
	b.LHS("S").N("L").T("=").N("R").End()
	b.LHS("S").N("R").End()
	b.LHS("L").T("*").N("R").End()
	b.LHS("L").T("id").End()
	b.LHS("R").N("L").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	i := StartItem(g.Rule(1), 2)
	if i.String() != "[E ➞ . T + E]" {
		t.Errorf("unexpected start item %v", i)
	}
	i = i.Advance()
	if i.String() != "[E ➞ T . + E]" || i.PeekSymbol() != grammar.T("+") {
		t.Errorf("unexpected item %v", i)
	}
	if len(i.Prefix()) != 1 || len(i.rest()) != 1 {
		t.Errorf("expected prefix T and rest E, have %v and %v", i.Prefix(), i.rest())
	}
	i = i.Advance().Advance()
	if !i.IsComplete() || !i.PeekSymbol().IsZero() || i.Advance() != i {
		t.Errorf("expected item %v to be complete", i)
	}
}

func TestCFSM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.lr")
	defer teardown()
	//
	lrgen := NewTableGenerator(makeExprGrammar(t))
	cfsm := lrgen.CFSM()
	if len(cfsm.States()) != 12 {
		t.Errorf("expected CFSM to have 12 states, has %d", len(cfsm.States()))
	}
	if cfsm.S0.ID != 0 || len(cfsm.S0.Kernel()) != 1 || len(cfsm.S0.Items()) != 7 {
		t.Errorf("unexpected start state %v", cfsm.S0)
	}
	accepting := 0
	for _, s := range cfsm.States() {
		if s.Accept {
			accepting++
		}
	}
	if accepting != 1 {
		t.Errorf("expected exactly one accepting state, have %d", accepting)
	}
	s1, ok := cfsm.S0.Successor(grammar.N("E"))
	if !ok || !s1.Accept {
		t.Errorf("expected goto(S0, E) to be the accepting state")
	}
	if len(cfsm.Edges()) != 22 {
		t.Errorf("expected 22 transitions, have %d", len(cfsm.Edges()))
	}
	if cfsm.State(11) == nil || cfsm.State(12) != nil {
		t.Errorf("states not accessible by ID")
	}
}

func TestSLR1Tables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	tables, err := SLR1Tables(g)
	if err != nil {
		t.Fatal(err)
	}
	if tables.Mode() != SLR1 || tables.StateCount() != 12 {
		t.Errorf("unexpected tables %v with %d states", tables.Mode(), tables.StateCount())
	}
	S0 := tables.StartState()
	a := tables.Action(S0, grammar.T("num"))
	if a.Type != Shift {
		t.Fatalf("expected shift on num in start state, have %v", a)
	}
	a = tables.Action(a.State, grammar.EOF.Symbol())
	if a.Type != Reduce || a.Production != g.Rule(4) || a.Rule != 5 {
		t.Errorf("expected reduce F ➞ num on #eof, have %v", a)
	}
	s1, ok := tables.Goto(S0, grammar.NT("E"))
	if !ok {
		t.Fatalf("expected goto(S0, E)")
	}
	if a = tables.Action(s1, grammar.EOF.Symbol()); a.Type != Accept {
		t.Errorf("expected accept, have %v", a)
	}
	if a = tables.Action(S0, grammar.T("+")); a.Type != NoAction {
		t.Errorf("expected no action for + in start state, have %v", a)
	}
	if a = tables.Action(S0, grammar.N("E")); a.Type != NoAction {
		t.Errorf("expected no action for nonterminal, have %v", a)
	}
	exp := tables.Expected(S0)
	if len(exp) != 2 || exp[0] != grammar.T("num") || exp[1] != grammar.T("(") {
		t.Errorf("expected num and ( to be acceptable in start state, have %v", exp)
	}
	if tables.Rule(0).LHS != grammar.Start || tables.Rule(7) != nil {
		t.Errorf("augmented rules not accessible")
	}
}

func TestLR0Conflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	lrgen := NewTableGenerator(g)
	lrgen.CollectConflicts = false
	_, err := lrgen.CreateTables(LR0)
	if !errors.Is(err, parsergen.ErrIncompatibleGrammar) {
		t.Fatalf("expected expression grammar not to be LR(0), have %v", err)
	}
	var cerr *ConflictError
	if !errors.As(err, &cerr) || len(cerr.Conflicts) != 1 {
		t.Fatalf("expected to stop at first conflict, have %v", err)
	}
	lrgen.CollectConflicts = true
	_, err = lrgen.CreateTables(LR0)
	if !errors.As(err, &cerr) || len(cerr.Conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, have %v", err)
	}
	for _, c := range cerr.Conflicts {
		t.Logf("%v", c)
		if c.Kind() != "shift/reduce" {
			t.Errorf("expected shift/reduce conflict, have %v", c)
		}
		if c.Lookahead != grammar.T("+") && c.Lookahead != grammar.T("*") {
			t.Errorf("expected conflict on + or *, have %v", c)
		}
	}
}

func TestConflictKinds(t *testing.T) {
	for kind, actions := range map[string][2]Action{
		"shift/reduce":  {{Type: Shift}, {Type: Reduce}},
		"accept/reduce": {{Type: Accept}, {Type: Reduce}},
		"reduce/reduce": {{Type: Reduce, Rule: 1}, {Type: Reduce, Rule: 2}},
	} {
		if c := (Conflict{Actions: actions}); c.Kind() != kind {
			t.Errorf("expected %s conflict, have %s", kind, c.Kind())
		}
	}
}

func TestActionCellKeepsFirstTwoActions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	lrgen := NewTableGenerator(g)
	tables := newTables(g, LR0, lrgen.rules, lrgen.CFSM())
	eof := grammar.EOF.Symbol()
	if c := tables.add(0, eof, 1); c != nil {
		t.Errorf("expected empty cell to take an action, have %v", c)
	}
	if c := tables.add(0, eof, 2); c == nil || c.Kind() != "reduce/reduce" {
		t.Errorf("expected reduce/reduce conflict, have %v", c)
	}
	if c := tables.add(0, eof, 2); c != nil {
		t.Errorf("expected repeated action not to be a new conflict, have %v", c)
	}
	c := tables.add(0, eof, 3)
	if c == nil || c.Actions[0].Rule != 1 || c.Actions[1].Rule != 3 {
		t.Errorf("expected conflict between rules 1 and 3, have %v", c)
	}
	if a, b := tables.actionT.Values(0, tables.columns[eof]); a != 1 || b != 2 {
		t.Errorf("expected cell to hold rules (1,2), holds (%d,%d)", a, b)
	}
}

func TestLALR1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.lr")
	defer teardown()
	//
	g := makeAssignGrammar(t)
	_, err := SLR1Tables(g)
	var cerr *ConflictError
	if !errors.As(err, &cerr) || cerr.Conflicts[0].Lookahead != grammar.T("=") {
		t.Fatalf("expected assignment grammar to have an SLR(1) conflict on =, have %v", err)
	}
	tables, err := LALR1Tables(g)
	if err != nil {
		t.Fatal(err)
	}
	if tables.StateCount() != 10 {
		t.Errorf("expected 10 LALR(1) states, have %d", tables.StateCount())
	}
	// in state goto(S0, L) reduce R ➞ L on #eof only
	sL, _ := tables.Goto(tables.StartState(), grammar.NT("L"))
	if a := tables.Action(sL, grammar.T("=")); a.Type != Shift {
		t.Errorf("expected shift on =, have %v", a)
	}
	if a := tables.Action(sL, grammar.EOF.Symbol()); a.Type != Reduce || a.Production != g.Rule(4) {
		t.Errorf("expected reduce R ➞ L on #eof, have %v", a)
	}
}

func TestLALR1Epsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.lr")
	defer teardown()
	//
	b := grammar.NewBuilder("G")
	b.LHS("S").N("A").T("a").End()
	b.LHS("A").N("B").N("D").End()
	b.LHS("B").T("b").End()
	b.LHS("B").Epsilon()
	b.LHS("D").T("d").End()
	b.LHS("D").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	tables, err := LALR1Tables(g)
	if err != nil {
		t.Fatal(err)
	}
	S0 := tables.StartState()
	for _, la := range []grammar.Symbol{grammar.T("a"), grammar.T("d")} {
		if a := tables.Action(S0, la); a.Type != Reduce || a.Production != g.Rule(3) {
			t.Errorf("expected reduce B ➞ ε on %v in start state, have %v", la, a)
		}
	}
	if a := tables.Action(S0, grammar.T("b")); a.Type != Shift {
		t.Errorf("expected shift on b in start state, have %v", a)
	}
	if a := tables.Action(S0, grammar.EOF.Symbol()); a.Type != NoAction {
		t.Errorf("expected no action on #eof in start state, have %v", a)
	}
}

func TestNotImplemented(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	if _, err := CanonicalLR1Tables(g); !errors.Is(err, parsergen.ErrNotImplemented) {
		t.Errorf("expected canonical LR(1) to be not implemented, have %v", err)
	}
	if _, err := NewTableGenerator(g).CreateTables(Mode(7)); !errors.Is(err, parsergen.ErrNotImplemented) {
		t.Errorf("expected unknown mode to be rejected, have %v", err)
	}
}
