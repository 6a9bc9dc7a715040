package parsergen

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/parsergen/grammar"
)

func TestSpan(t *testing.T) {
	s := Span{3, 5}
	if s.From() != 3 || s.To() != 5 || s.Len() != 2 {
		t.Errorf("unexpected span accessors for %v", s)
	}
	if !(Span{}).IsNull() || s.IsNull() {
		t.Errorf("expected only the zero span to be null")
	}
	if x := s.Extend(Span{}); x != s {
		t.Errorf("expected null span to be neutral, have %v", x)
	}
	if x := (Span{}).Extend(s); x != s {
		t.Errorf("expected null span to be neutral, have %v", x)
	}
	if x := s.Extend(Span{1, 4}); x != (Span{1, 5}) {
		t.Errorf("expected (1…5), have %v", x)
	}
	if s.String() != "(3…5)" {
		t.Errorf("unexpected span string %s", s)
	}
}

func TestTreeBuilder(t *testing.T) {
	A := grammar.NT("A")
	pA := grammar.NewProduction(A, grammar.T("a"), grammar.T("b"))
	pS := grammar.NewProduction(grammar.NT("S"), A.Symbol(), grammar.NT("E").Symbol())
	pE := grammar.NewProduction(grammar.NT("E"))
	var tb Listener = TreeBuilder{}
	a := tb.Terminal(grammar.T("a"), 0)
	b := tb.Terminal(grammar.T("b"), 1)
	nA := tb.Reduce(pA, []interface{}{a, b})
	nE := tb.Reduce(pE, nil)
	root := tb.Reduce(pS, []interface{}{nA, nE}).(*Node)
	if root.String() != "S(A(a b) E())" {
		t.Errorf("unexpected tree %s", root)
	}
	if root.Span != (Span{0, 2}) {
		t.Errorf("expected tree to span (0…2), spans %v", root.Span)
	}
	if root.IsLeaf() || !root.Children[0].Children[0].IsLeaf() {
		t.Errorf("expected only terminals to be leaves")
	}
	if !root.Children[1].Span.IsNull() {
		t.Errorf("expected epsilon node to have a null span, has %v", root.Children[1].Span)
	}
}

// fakeRuntime accepts a fixed number of terminals.
type fakeRuntime struct {
	limit  int
	pushed []grammar.Terminal
	final  bool
}

func (rt *fakeRuntime) Push(t grammar.Terminal) error {
	if len(rt.pushed) == rt.limit {
		return &ParsingError{Terminal: grammar.T(t), Position: len(rt.pushed), State: 0}
	}
	rt.pushed = append(rt.pushed, t)
	return nil
}

func (rt *fakeRuntime) Finalize() error {
	rt.final = true
	return nil
}

func (rt *fakeRuntime) Result() (interface{}, error) {
	if !rt.final {
		return nil, ErrNotReady
	}
	return len(rt.pushed), nil
}

func TestParseAll(t *testing.T) {
	rt := &fakeRuntime{limit: 3}
	if _, err := rt.Result(); !errors.Is(err, ErrNotReady) {
		t.Errorf("expected result to be not ready, have %v", err)
	}
	result, err := ParseAll(rt, []grammar.Terminal{"a", "b", "c"})
	if err != nil || result != 3 {
		t.Errorf("expected 3 terminals to be parsed, have %v, %v", result, err)
	}
	rt = &fakeRuntime{limit: 1}
	_, err = ParseAll(rt, []grammar.Terminal{"a", "b", "c"})
	if !errors.Is(err, ErrParsing) || rt.final {
		t.Errorf("expected parsing to stop at the second terminal, have %v", err)
	}
}

func TestParsingError(t *testing.T) {
	err := &ParsingError{
		Terminal: grammar.T("+"),
		Position: 2,
		State:    6,
		Expected: []grammar.Symbol{grammar.T("num"), grammar.T("(")},
	}
	if !errors.Is(err, ErrParsing) || errors.Is(err, ErrTerminated) {
		t.Errorf("expected parsing error to match ErrParsing only")
	}
	msg := err.Error()
	if !strings.Contains(msg, "position 2") || !strings.Contains(msg, "state 6") ||
		!strings.Contains(msg, "num (") {
		t.Errorf("unexpected error message %q", msg)
	}
	llerr := &ParsingError{Terminal: grammar.EOF.Symbol(), State: -1, Top: grammar.NT("E").Symbol()}
	if strings.Contains(llerr.Error(), "state") || !strings.Contains(llerr.Error(), "E") {
		t.Errorf("unexpected error message %q", llerr.Error())
	}
}

type nullListener struct{}

func (nullListener) Terminal(grammar.Symbol, int) interface{}                  { return nil }
func (nullListener) Reduce(*grammar.Production, []interface{}) interface{} { return nil }

func TestConfigure(t *testing.T) {
	if _, ok := Configure().Listener.(TreeBuilder); !ok {
		t.Errorf("expected default listener to be a tree builder")
	}
	if _, ok := Configure(WithListener(nullListener{})).Listener.(nullListener); !ok {
		t.Errorf("expected listener option to be applied")
	}
}
