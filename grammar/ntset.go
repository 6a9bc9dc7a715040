package grammar

import (
	"github.com/npillmayer/parsergen/iteratable"
)

// NonterminalSet is an insertion-ordered set of nonterminals, as computed by
// the grammar analysis (epsilon-generating, generating and reachable
// nonterminals).
type NonterminalSet struct {
	set *iteratable.Set
}

func newNonterminalSet(nts ...Nonterminal) *NonterminalSet {
	S := &NonterminalSet{set: iteratable.NewSet(len(nts))}
	for _, A := range nts {
		S.set.Add(A)
	}
	return S
}

// Contains checks for A in S.
func (S *NonterminalSet) Contains(A Nonterminal) bool {
	return S != nil && S.set.Contains(A)
}

// ContainsSymbol checks for a nonterminal symbol in S. Terminals are never
// contained.
func (S *NonterminalSet) ContainsSymbol(sym Symbol) bool {
	A, ok := sym.Nonterminal()
	return ok && S.Contains(A)
}

// Len returns the number of nonterminals in S.
func (S *NonterminalSet) Len() int {
	if S == nil {
		return 0
	}
	return S.set.Size()
}

// Values returns the nonterminals of S in insertion order.
func (S *NonterminalSet) Values() []Nonterminal {
	if S == nil {
		return nil
	}
	vals := S.set.Values()
	nts := make([]Nonterminal, len(vals))
	for i, v := range vals {
		nts[i] = v.(Nonterminal)
	}
	return nts
}

// Equals is true if S and other contain the same nonterminals.
func (S *NonterminalSet) Equals(other *NonterminalSet) bool {
	return S.set.Equals(other.set)
}

func (S *NonterminalSet) add(A Nonterminal) bool {
	if S.set.Contains(A) {
		return false
	}
	S.set.Add(A)
	return true
}

func (S *NonterminalSet) String() string {
	return S.set.String()
}
