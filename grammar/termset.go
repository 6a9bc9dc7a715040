package grammar

import (
	"bytes"

	"golang.org/x/tools/container/intsets"
)

// Terminals are numbered for use in bit sets. The markers EOF and Epsilon
// take the first two positions.
const (
	eofIndex = iota
	epsilonIndex
	firstTerminalIndex
)

// symtab numbers the terminals of a grammar.
type symtab struct {
	terminals []Symbol
	index     map[Symbol]int
}

func newSymtab(terminals []Symbol) *symtab {
	st := &symtab{index: make(map[Symbol]int, len(terminals))}
	for _, t := range terminals {
		if _, dup := st.index[t]; !dup {
			st.index[t] = len(st.terminals) + firstTerminalIndex
			st.terminals = append(st.terminals, t)
		}
	}
	return st
}

func (st *symtab) indexOf(sym Symbol) (int, bool) {
	switch {
	case sym.IsEOF():
		return eofIndex, true
	case sym.IsEpsilon():
		return epsilonIndex, true
	}
	i, ok := st.index[sym]
	return i, ok
}

func (st *symtab) symbolAt(i int) Symbol {
	switch i {
	case eofIndex:
		return EOF.Symbol()
	case epsilonIndex:
		return Epsilon.Symbol()
	}
	return st.terminals[i-firstTerminalIndex]
}

// --- Terminal sets ---------------------------------------------------------

// TerminalSet is a set of terminals of a grammar, possibly including the
// markers Epsilon (in FIRST-sets) and EOF (in FOLLOW-sets).
// Sets returned by a Grammar are copies; modifying them does not alter the
// grammar's analysis.
type TerminalSet struct {
	st   *symtab
	bits intsets.Sparse
}

func newTerminalSet(st *symtab) *TerminalSet {
	return &TerminalSet{st: st}
}

// NewTerminalSet creates an empty set for the terminals of g.
func (g *Grammar) NewTerminalSet() *TerminalSet {
	return newTerminalSet(g.symbols)
}

// Add inserts a terminal, EOF or Epsilon. Other symbols are ignored.
// Returns true if the set changed.
func (s *TerminalSet) Add(sym Symbol) bool {
	if i, ok := s.st.indexOf(sym); ok {
		return s.bits.Insert(i)
	}
	return false
}

// Remove deletes sym from s. Returns true if the set changed.
func (s *TerminalSet) Remove(sym Symbol) bool {
	if i, ok := s.st.indexOf(sym); ok {
		return s.bits.Remove(i)
	}
	return false
}

// Union adds all elements of other to s. Returns true if s changed.
//
// intsets.Sparse.UnionWith may report a change for a subset of s, therefore
// changes are detected by comparing sizes.
func (s *TerminalSet) Union(other *TerminalSet) bool {
	if other == nil {
		return false
	}
	before := s.bits.Len()
	s.bits.UnionWith(&other.bits)
	return s.bits.Len() != before
}

// unionWithoutEpsilon adds all elements of other except Epsilon.
// Returns true if s changed.
func (s *TerminalSet) unionWithoutEpsilon(other *TerminalSet) bool {
	if other == nil {
		return false
	}
	hadEps := s.bits.Has(epsilonIndex)
	before := s.bits.Len()
	s.bits.UnionWith(&other.bits)
	if !hadEps {
		s.bits.Remove(epsilonIndex)
	}
	return s.bits.Len() != before
}

// Contains checks for a symbol in s.
func (s *TerminalSet) Contains(sym Symbol) bool {
	if s == nil {
		return false
	}
	if i, ok := s.st.indexOf(sym); ok {
		return s.bits.Has(i)
	}
	return false
}

// ContainsEpsilon checks for the Epsilon marker.
func (s *TerminalSet) ContainsEpsilon() bool {
	return s != nil && s.bits.Has(epsilonIndex)
}

// ContainsEOF checks for the EOF marker.
func (s *TerminalSet) ContainsEOF() bool {
	return s != nil && s.bits.Has(eofIndex)
}

// Len returns the number of elements, markers included.
func (s *TerminalSet) Len() int {
	if s == nil {
		return 0
	}
	return s.bits.Len()
}

// IsEmpty is true for an empty set.
func (s *TerminalSet) IsEmpty() bool {
	return s.Len() == 0
}

// Symbols returns the elements of s: EOF first, then Epsilon, then terminals
// in grammar order.
func (s *TerminalSet) Symbols() []Symbol {
	if s == nil {
		return nil
	}
	inx := s.bits.AppendTo(nil)
	syms := make([]Symbol, len(inx))
	for i, x := range inx {
		syms[i] = s.st.symbolAt(x)
	}
	return syms
}

// Equals compares two sets.
func (s *TerminalSet) Equals(other *TerminalSet) bool {
	if s == nil || other == nil {
		return s.Len() == other.Len()
	}
	return s.bits.Equals(&other.bits)
}

// Copy returns an independent copy of s.
func (s *TerminalSet) Copy() *TerminalSet {
	c := newTerminalSet(s.st)
	c.bits.Copy(&s.bits)
	return c
}

func (s *TerminalSet) String() string {
	var b bytes.Buffer
	b.WriteString("{")
	for i, sym := range s.Symbols() {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(" ")
		b.WriteString(sym.String())
	}
	b.WriteString(" }")
	return b.String()
}
