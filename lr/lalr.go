package lr

import (
	"github.com/npillmayer/parsergen/grammar"
)

// LALR(1) lookaheads are computed by the method of spontaneous generation and
// propagation of lookaheads over the kernels of the LR(0) CFSM.
//
// Refer to "Compilers: Principles, Techniques, and Tools" by Aho, Lam, Sethi & Ullman,
// Section 4.7.5 (Efficient Construction of LALR Parsing Tables).

// lr1Item is an item within an LR(1) closure. Instead of a dummy lookahead
// symbol, propagation of lookaheads from the closure's kernel is tracked
// by a flag.
type lr1Item struct {
	item      Item
	la        *grammar.TerminalSet // lookaheads
	propagate bool                 // receives the lookaheads of the kernel
}

// closure1 computes the LR(1) closure of a set of items: for every item
// [A ➞ α . B β, a] add items [B ➞ . γ, b] for all b ∈ FIRST(β a).
// The result is ordered by insertion.
func (lrgen *TableGenerator) closure1(seeds []lr1Item) []*lr1Item {
	C := make([]*lr1Item, 0, len(seeds))
	index := make(map[Item]*lr1Item)
	for _, seed := range seeds {
		x := &lr1Item{item: seed.item, la: seed.la.Copy(), propagate: seed.propagate}
		C = append(C, x)
		index[seed.item] = x
	}
	changed := true
	for changed {
		changed = false
		for k := 0; k < len(C); k++ { // C grows while iterating
			x := C[k]
			B, ok := x.item.PeekSymbol().Nonterminal()
			if !ok {
				continue
			}
			first := lrgen.g.FirstOfSequence(x.item.rest())
			nullable := first.Remove(grammar.Epsilon.Symbol())
			for _, r := range lrgen.byLHS[B] {
				i := StartItem(lrgen.rules[r], r)
				y, found := index[i]
				if !found {
					y = &lr1Item{item: i, la: lrgen.g.NewTerminalSet()}
					C = append(C, y)
					index[i] = y
					changed = true
				}
				changed = y.la.Union(first) || changed
				if nullable {
					changed = y.la.Union(x.la) || changed
					if x.propagate && !y.propagate {
						y.propagate = true
						changed = true
					}
				}
			}
		}
	}
	return C
}

// kernelItem identifies a kernel item of a CFSM state.
type kernelItem struct {
	state int
	item  Item
}

// kernelLookaheads computes the LALR(1) lookaheads for all kernel items of the CFSM.
func (lrgen *TableGenerator) kernelLookaheads(cfsm *CFSM) map[kernelItem]*grammar.TerminalSet {
	lookaheads := make(map[kernelItem]*grammar.TerminalSet)
	states := cfsm.States()
	for _, s := range states {
		for _, i := range s.kernel {
			lookaheads[kernelItem{s.ID, i}] = lrgen.g.NewTerminalSet()
		}
	}
	lookaheads[kernelItem{cfsm.S0.ID, StartItem(lrgen.rules[0], 0)}].Add(grammar.EOF.Symbol())
	var sources []kernelItem // propagation origins, in order of discovery
	links := make(map[kernelItem][]kernelItem)
	for _, s := range states {
		for _, K := range s.kernel {
			from := kernelItem{s.ID, K}
			seed := lr1Item{item: K, la: lrgen.g.NewTerminalSet(), propagate: true}
			for _, x := range lrgen.closure1([]lr1Item{seed}) {
				X := x.item.PeekSymbol()
				if X.IsZero() {
					continue
				}
				t, ok := s.Successor(X)
				if !ok {
					panic("CFSM is missing a transition") // goto-sets are never empty here
				}
				to := kernelItem{t.ID, x.item.Advance()}
				lookaheads[to].Union(x.la) // spontaneously generated
				if x.propagate {
					if len(links[from]) == 0 {
						sources = append(sources, from)
					}
					links[from] = append(links[from], to)
				}
			}
		}
	}
	changed := true
	for changed {
		changed = false
		for _, from := range sources {
			for _, to := range links[from] {
				changed = lookaheads[to].Union(lookaheads[from]) || changed
			}
		}
	}
	for _, s := range states {
		for _, i := range s.kernel {
			tracer().Debugf("LA(%d, %v) = %v", s.ID, i, lookaheads[kernelItem{s.ID, i}])
		}
	}
	return lookaheads
}

// stateLookaheads computes the LR(1) closure of a state's kernel, with
// kernel items carrying their LALR(1) lookaheads. This provides the lookaheads
// for all items of the state, including non-kernel epsilon items.
func (lrgen *TableGenerator) stateLookaheads(s *CFSMState,
	lookaheads map[kernelItem]*grammar.TerminalSet) []*lr1Item {
	//
	seeds := make([]lr1Item, len(s.kernel))
	for k, i := range s.kernel {
		seeds[k] = lr1Item{item: i, la: lookaheads[kernelItem{s.ID, i}]}
	}
	return lrgen.closure1(seeds)
}
