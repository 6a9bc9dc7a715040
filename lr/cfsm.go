package lr

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/parsergen/grammar"
	"github.com/npillmayer/parsergen/iteratable"
)

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     int             // serial ID of this state
	kernel []Item          // kernel items, ordered by rule and dot
	items  *iteratable.Set // closure of the kernel
	next   map[grammar.Symbol]*CFSMState
	Accept bool // is this an accepting state?
}

// Edge is a transition of the CFSM between 2 states, labeled with a grammar symbol.
type Edge struct {
	From  *CFSMState
	To    *CFSMState
	Label grammar.Symbol
}

// Items returns the items of a state, i.e. the closure of its kernel.
func (s *CFSMState) Items() []Item {
	items := make([]Item, 0, s.items.Size())
	for _, x := range s.items.Values() {
		items = append(items, asItem(x))
	}
	return items
}

// Kernel returns the kernel items of a state.
func (s *CFSMState) Kernel() []Item {
	return append([]Item(nil), s.kernel...)
}

// Successor returns the state reached from s by a transition labeled with sym.
func (s *CFSMState) Successor(sym grammar.Symbol) (*CFSMState, bool) {
	t, ok := s.next[sym]
	return t, ok
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	Dump(s.items)
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, i := range s.kernel {
		if i.rule == 0 && i.IsComplete() {
			return true
		}
	}
	return false
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(c1.ID, c2.ID)
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// LR(0) state diagram. Will be constructed by a TableGenerator.
// Clients normally do not use it directly. Nevertheless, there are some methods
// defined on it, e.g, for debugging purposes, or even to
// compute your own tables from it.
type CFSM struct {
	g        *grammar.Grammar      // this CFSM is for Grammar g
	states   *treeset.Set          // all the states
	edges    *arraylist.List       // all the edges between states
	byKernel map[string]*CFSMState // states by kernel hash
	S0       *CFSMState            // start state
	cfsmIds  int                   // serial IDs for CFSM states
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *grammar.Grammar) *CFSM {
	return &CFSM{
		g:        g,
		states:   treeset.NewWith(stateComparator),
		edges:    arraylist.New(),
		byKernel: make(map[string]*CFSMState),
	}
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	states := make([]*CFSMState, 0, c.states.Size())
	it := c.states.Iterator()
	for it.Next() {
		states = append(states, it.Value().(*CFSMState))
	}
	return states
}

// State returns the state with a given ID.
func (c *CFSM) State(id int) *CFSMState {
	if id < 0 || id >= c.states.Size() {
		return nil
	}
	return c.states.Values()[id].(*CFSMState)
}

// Edges returns all transitions, in order of construction.
func (c *CFSM) Edges() []Edge {
	edges := make([]Edge, 0, c.edges.Size())
	it := c.edges.Iterator()
	for it.Next() {
		edges = append(edges, *it.Value().(*Edge))
	}
	return edges
}

// findOrAddState returns the state with a given kernel. If no such state
// exists, it is created with the closure of the kernel.
func (c *CFSM) findOrAddState(kernel *iteratable.Set, closure func(*iteratable.Set) *iteratable.Set) (*CFSMState, bool) {
	items := sortedItems(kernel)
	h := kernelHash(items)
	if s, ok := c.byKernel[h]; ok {
		return s, false
	}
	s := &CFSMState{
		ID:     c.cfsmIds,
		kernel: items,
		items:  closure(kernel),
		next:   make(map[grammar.Symbol]*CFSMState),
	}
	s.Accept = s.containsCompletedStartRule()
	c.cfsmIds++
	c.byKernel[h] = s
	c.states.Add(s)
	return s, true
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym grammar.Symbol) *Edge {
	e := &Edge{From: s0, To: s1, Label: sym}
	s0.next[sym] = s1
	c.edges.Add(e)
	return e
}

// Construct the characteristic finite state machine CFSM for a grammar.
func (lrgen *TableGenerator) buildCFSM() *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	cfsm := emptyCFSM(lrgen.g)
	k0 := newItemSet()
	k0.Add(StartItem(lrgen.rules[0], 0))
	cfsm.S0, _ = cfsm.findOrAddState(k0, lrgen.closureSet)
	cfsm.S0.Dump()
	S := treeset.NewWith(stateComparator)
	S.Add(cfsm.S0)
	for S.Size() > 0 {
		s := S.Values()[0].(*CFSMState)
		S.Remove(s)
		lrgen.g.EachSymbol(func(A grammar.Symbol) {
			kernel := lrgen.gotoSet(s.items, A)
			if kernel.Empty() {
				return
			}
			snew, isNew := cfsm.findOrAddState(kernel, lrgen.closureSet)
			if isNew {
				tracer().Debugf("goto(%d, %v) = new state %d", s.ID, A, snew.ID)
				snew.Dump()
				S.Add(snew)
			}
			cfsm.addEdge(s, snew, A)
		})
	}
	tracer().Infof("CFSM for %q has %d states", lrgen.g.Name(), cfsm.states.Size())
	return cfsm
}
