package grammar

import (
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func makeEpsGrammar(t *testing.T) *Grammar {
	b := NewBuilder("G")
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
	return g
}

// Grammar with useless symbols:
//
//     S ➞ A b | c      A is not generating
//     A ➞ A a
//     B ➞ c            B is not reachable
//
func makeUselessGrammar(t *testing.T) *Grammar {
	b := NewBuilder("Useless")
	b.LHS("S").N("A").T("b").End()
	b.LHS("S").T("c").End()
	b.LHS("A").N("A").T("a").End()
	b.LHS("B").T("c").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func checkTerminals(t *testing.T, what string, set *TerminalSet, expected ...Symbol) {
	t.Helper()
	if set.Len() != len(expected) {
		t.Errorf("expected %s = %v, have %v", what, expected, set)
		return
	}
	for _, sym := range expected {
		if !set.Contains(sym) {
			t.Errorf("expected %s to contain %v, is %v", what, sym, set)
		}
	}
}

func TestEpsilonGenerating(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.grammar")
	defer teardown()
	//
	g := makeEpsGrammar(t)
	E := EpsilonGenerating(g)
	for _, A := range []Nonterminal{Epsilon, NT("A"), NT("B"), NT("D")} {
		if !E.Contains(A) {
			t.Errorf("expected %v to be ε-generating", A)
		}
	}
	if E.Contains(NT("S")) {
		t.Errorf("expected S not to be ε-generating")
	}
}

func TestFirstSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.grammar")
	defer teardown()
	//
	g := makeEpsGrammar(t)
	a, b, d, eps := T("a"), T("b"), T("d"), Epsilon.Symbol()
	checkTerminals(t, "FIRST(S)", g.First(NT("S")), a, b, d)
	checkTerminals(t, "FIRST(A)", g.First(NT("A")), eps, b, d)
	checkTerminals(t, "FIRST(B)", g.First(NT("B")), eps, b)
	checkTerminals(t, "FIRST(D)", g.First(NT("D")), eps, d)
	//
	ex := makeExprGrammar(t)
	for _, A := range ex.Nonterminals() {
		checkTerminals(t, "FIRST("+A.Name()+")", ex.First(A), T("num"), T("("))
	}
}

func TestFollowSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.grammar")
	defer teardown()
	//
	g := makeEpsGrammar(t)
	a, d, eof := T("a"), T("d"), EOF.Symbol()
	checkTerminals(t, "FOLLOW(S)", g.Follow(NT("S")), eof)
	checkTerminals(t, "FOLLOW(A)", g.Follow(NT("A")), a)
	checkTerminals(t, "FOLLOW(B)", g.Follow(NT("B")), a, d)
	checkTerminals(t, "FOLLOW(D)", g.Follow(NT("D")), a)
	//
	ex := makeExprGrammar(t)
	plus, times, rparen := T("+"), T("*"), T(")")
	checkTerminals(t, "FOLLOW(E)", ex.Follow(NT("E")), eof, rparen)
	checkTerminals(t, "FOLLOW(T)", ex.Follow(NT("T")), eof, rparen, plus)
	checkTerminals(t, "FOLLOW(F)", ex.Follow(NT("F")), eof, rparen, plus, times)
}

func TestTerminalSetUnionReportsChanges(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.grammar")
	defer teardown()
	//
	g := makeEpsGrammar(t)
	sup := g.NewTerminalSet()
	sup.Add(T("a"))
	sup.Add(T("b"))
	sup.Add(EOF.Symbol())
	sub := g.NewTerminalSet()
	sub.Add(T("b"))
	if sup.Union(sub) {
		t.Errorf("expected union with a subset to leave %v unchanged", sup)
	}
	if sup.Len() != 3 {
		t.Errorf("expected %v to have 3 elements", sup)
	}
	if !sub.Union(sup) {
		t.Errorf("expected union with a superset to change %v", sub)
	}
	if sub.Union(sup) || !sub.Equals(sup) {
		t.Errorf("expected second union to change nothing, have %v", sub)
	}
}

// S ➞ B a | A,  A ➞ B,  B ➞ c
//
// FOLLOW(B) is a strict superset of FOLLOW(A), which it depends on.
func TestFollowSupersetDependency(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.grammar")
	defer teardown()
	//
	done := make(chan *Grammar, 1)
	go func() {
		b := NewBuilder("Superset")
		b.LHS("S").N("B").T("a").End()
		b.LHS("S").N("A").End()
		b.LHS("A").N("B").End()
		b.LHS("B").T("c").End()
		g, err := b.Grammar()
		if err != nil {
			t.Error(err)
		}
		done <- g
	}()
	var g *Grammar
	select {
	case g = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("grammar analysis did not terminate")
	}
	if g == nil {
		return
	}
	eof := EOF.Symbol()
	checkTerminals(t, "FOLLOW(S)", g.Follow(NT("S")), eof)
	checkTerminals(t, "FOLLOW(A)", g.Follow(NT("A")), eof)
	checkTerminals(t, "FOLLOW(B)", g.Follow(NT("B")), T("a"), eof)
}

func TestFirstOfSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.grammar")
	defer teardown()
	//
	g := makeEpsGrammar(t)
	checkTerminals(t, "FIRST(B D)", g.FirstOfSequence([]Symbol{N("B"), N("D")}),
		T("b"), T("d"), Epsilon.Symbol())
	checkTerminals(t, "FIRST(B a)", g.FirstOfSequence([]Symbol{N("B"), T("a")}),
		T("b"), T("a"))
	checkTerminals(t, "FIRST()", g.FirstOfSequence(nil), Epsilon.Symbol())
}

func TestAnalysisIsFixedPoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.grammar")
	defer teardown()
	//
	for _, g := range []*Grammar{makeEpsGrammar(t), makeExprGrammar(t), makeUselessGrammar(t)} {
		cg := Clean(g)
		first, follow := cg.firstSets(), cg.followSets()
		for _, A := range cg.Nonterminals() {
			if !first[A].Equals(cg.first[A]) || !follow[A].Equals(cg.follow[A]) {
				t.Errorf("%s: re-running analysis changed sets for %v", g.Name(), A)
			}
			if first[A].ContainsEpsilon() != cg.IsEpsilonGenerating(A) {
				t.Errorf("%s: ε ∈ FIRST(%v) does not match ε-generating", g.Name(), A)
			}
		}
	}
}

func TestGeneratingAndReachable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.grammar")
	defer teardown()
	//
	g := makeUselessGrammar(t)
	G := Generating(g)
	if !G.Contains(NT("S")) || !G.Contains(NT("B")) || G.Contains(NT("A")) {
		t.Errorf("expected generating = { S, B }, have %v", G)
	}
	R := Reachable(g.StartSymbol(), g.Productions())
	if !R.Contains(NT("S")) || !R.Contains(NT("A")) || R.Contains(NT("B")) {
		t.Errorf("expected reachable = { S, A }, have %v", R)
	}
}

func TestGeneratingCountsOccurrences(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.LHS("S").N("A").N("A").End()
	b.LHS("A").T("a").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if G := Generating(g); !G.Contains(NT("S")) {
		t.Errorf("expected S ➞ A A to be generating, have %v", G)
	}
}

func TestClean(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.grammar")
	defer teardown()
	//
	g := makeUselessGrammar(t)
	cg := Clean(g)
	cg.Dump()
	if cg.RuleCount() != 1 || cg.Rule(0).String() != "S ➞ c" {
		t.Errorf("expected cleaned grammar to have the single rule S ➞ c, has %v", cg.Productions())
	}
	if len(cg.Nonterminals()) != 1 || cg.StartSymbol() != g.StartSymbol() {
		t.Errorf("expected cleaned grammar with nonterminals { S }, have %v", cg.Nonterminals())
	}
	if len(cg.Terminals()) != len(g.Terminals()) {
		t.Errorf("expected cleaned grammar to keep the terminals")
	}
	if !Clean(cg).Equals(cg) {
		t.Errorf("expected cleaning to be idempotent")
	}
	// FIRST and FOLLOW of g do not depend on dead symbols
	checkTerminals(t, "FIRST(S)", g.First(NT("S")), T("c"))
	if !g.First(NT("A")).IsEmpty() {
		t.Errorf("expected FIRST of non-generating A to be empty, is %v", g.First(NT("A")))
	}
}

func TestCleanKeepsStartSymbol(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.LHS("S").N("S").T("a").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	cg := Clean(g)
	if cg.RuleCount() != 0 || len(cg.Nonterminals()) != 1 {
		t.Errorf("expected empty grammar with start symbol only, have %v", cg.Productions())
	}
	checkTerminals(t, "FOLLOW(S)", g.Follow(NT("S")), EOF.Symbol())
}
