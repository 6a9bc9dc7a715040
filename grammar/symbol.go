package grammar

import (
	"fmt"
	"reflect"
)

// Terminal is an input symbol, as supplied by clients. Terminals are opaque to
// the parser generator, it will just compare them. A common choice are token
// categories (parsergen.TokType) or strings.
// Terminal values must be comparable.
type Terminal interface{}

// --- Nonterminals ----------------------------------------------------------

// Special nonterminals carry a kind different from ordinary nonterminals,
// making them unequal to any ordinary nonterminal, even one with the same name.
type ntKind uint8

const (
	ordinaryNT ntKind = iota
	epsilonNT
	eofNT
	startNT
)

// Nonterminal is a grammar symbol which is expanded by productions.
// Nonterminals have value semantics: two ordinary nonterminals with equal
// names are equal. Create them with NT.
type Nonterminal struct {
	name string
	kind ntKind
}

// Special nonterminals.
var (
	// Epsilon marks the empty string. It will show up in FIRST-sets, but
	// never inside a production's right hand side.
	Epsilon = Nonterminal{name: "ε", kind: epsilonNT}
	// EOF marks the end of input. It will show up in FOLLOW-sets and as
	// a lookahead in parse tables.
	EOF = Nonterminal{name: "#eof", kind: eofNT}
	// Start is the start symbol of augmented grammars, S' ➞ S.
	Start = Nonterminal{name: "S'", kind: startNT}
)

// NT creates an ordinary nonterminal.
func NT(name string) Nonterminal {
	return Nonterminal{name: name}
}

// Name returns the name of a nonterminal.
func (A Nonterminal) Name() string {
	return A.name
}

// IsSpecial is true for Epsilon, EOF and Start.
func (A Nonterminal) IsSpecial() bool {
	return A.kind != ordinaryNT
}

// IsZero is true for the zero value of Nonterminal, which does not denote
// any symbol.
func (A Nonterminal) IsZero() bool {
	return A == Nonterminal{}
}

// Symbol wraps A into a Symbol.
func (A Nonterminal) Symbol() Symbol {
	return Symbol{isNT: true, nt: A}
}

func (A Nonterminal) String() string {
	return A.name
}

// --- Symbols ---------------------------------------------------------------

// Symbol is either a terminal or a nonterminal (ordinary or special).
// Symbols are comparable and may be used as map keys.
type Symbol struct {
	isNT bool
	nt   Nonterminal
	t    Terminal
}

// T creates a terminal symbol.
func T(value Terminal) Symbol {
	return Symbol{t: value}
}

// N creates a symbol for an ordinary nonterminal.
func N(name string) Symbol {
	return NT(name).Symbol()
}

// IsTerminal is true for terminal symbols.
func (sym Symbol) IsTerminal() bool {
	return !sym.isNT && sym.t != nil
}

// IsNonterminal is true for nonterminal symbols, including special ones.
func (sym Symbol) IsNonterminal() bool {
	return sym.isNT
}

// IsEpsilon is true for the Epsilon marker.
func (sym Symbol) IsEpsilon() bool {
	return sym.isNT && sym.nt == Epsilon
}

// IsEOF is true for the EOF marker.
func (sym Symbol) IsEOF() bool {
	return sym.isNT && sym.nt == EOF
}

// IsSpecial is true for the special nonterminals.
func (sym Symbol) IsSpecial() bool {
	return sym.isNT && sym.nt.IsSpecial()
}

// IsZero is true for the zero value of Symbol.
func (sym Symbol) IsZero() bool {
	return sym == Symbol{}
}

// Terminal returns the terminal value of sym, or nil for nonterminals.
func (sym Symbol) Terminal() Terminal {
	if sym.isNT {
		return nil
	}
	return sym.t
}

// Nonterminal returns the nonterminal of sym. For terminal symbols the second
// return value is false.
func (sym Symbol) Nonterminal() (Nonterminal, bool) {
	return sym.nt, sym.isNT
}

// Name returns a display name for sym.
func (sym Symbol) Name() string {
	if sym.isNT {
		return sym.nt.name
	}
	if s, ok := sym.t.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", sym.t)
}

func (sym Symbol) String() string {
	return sym.Name()
}

// isComparable checks if a terminal value may be used as a map key.
func isComparable(t Terminal) bool {
	if t == nil {
		return false
	}
	return reflect.TypeOf(t).Comparable()
}
