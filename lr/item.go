package lr

import (
	"bytes"
	"sort"

	"github.com/cnf/structhash"
	"github.com/npillmayer/parsergen/grammar"
	"github.com/npillmayer/parsergen/iteratable"
)

// Item is an LR(0) item, i.e. a production with a marked position (dot)
//
//     [A ➞ α . β]
//
// Items are values and may be compared with ==.
type Item struct {
	prod *grammar.Production
	rule int // index of prod in the augmented rule list
	dot  int
}

// StartItem returns the item [A ➞ . α] for a rule.
func StartItem(prod *grammar.Production, rule int) Item {
	return Item{prod: prod, rule: rule}
}

// Production returns the production of an item.
func (i Item) Production() *grammar.Production {
	return i.prod
}

// Rule returns the index of an item's production in the augmented grammar.
// Rule 0 is S' ➞ S.
func (i Item) Rule() int {
	return i.rule
}

// Dot returns the position of the dot.
func (i Item) Dot() int {
	return i.dot
}

// PeekSymbol returns the symbol after the dot, or the zero symbol for
// completed items.
func (i Item) PeekSymbol() grammar.Symbol {
	if i.dot >= i.prod.Len() {
		return grammar.Symbol{}
	}
	return i.prod.At(i.dot)
}

// IsComplete is true if the dot is behind the right hand side.
func (i Item) IsComplete() bool {
	return i.dot >= i.prod.Len()
}

// Advance returns an item with the dot moved one symbol to the right.
func (i Item) Advance() Item {
	if i.IsComplete() {
		return i
	}
	return Item{prod: i.prod, rule: i.rule, dot: i.dot + 1}
}

// Prefix returns the symbols in front of the dot.
func (i Item) Prefix() []grammar.Symbol {
	return i.prod.RHS()[:i.dot]
}

// rest returns β for an item [A ➞ α . X β].
func (i Item) rest() []grammar.Symbol {
	if i.dot+1 >= i.prod.Len() {
		return nil
	}
	return i.prod.RHS()[i.dot+1:]
}

func (i Item) String() string {
	var b bytes.Buffer
	b.WriteString("[")
	b.WriteString(i.prod.LHS.String())
	b.WriteString(" ➞")
	for k := 0; k < i.prod.Len(); k++ {
		if k == i.dot {
			b.WriteString(" .")
		}
		b.WriteString(" ")
		b.WriteString(i.prod.At(k).String())
	}
	if i.IsComplete() {
		b.WriteString(" .")
	}
	b.WriteString("]")
	return b.String()
}

// --- Item sets -------------------------------------------------------------

func newItemSet() *iteratable.Set {
	return iteratable.NewSet(0)
}

func asItem(x interface{}) Item {
	return x.(Item)
}

func itemSetString(S *iteratable.Set) string {
	var b bytes.Buffer
	b.WriteString("{")
	for k, x := range S.Values() {
		if k > 0 {
			b.WriteString(",")
		}
		b.WriteString(" ")
		b.WriteString(asItem(x).String())
	}
	b.WriteString(" }")
	return b.String()
}

// Dump is a debugging helper, tracing the items of a set.
func Dump(S *iteratable.Set) {
	for _, x := range S.Values() {
		tracer().Debugf("    %v", asItem(x))
	}
}

// sortedItems returns the items of S ordered by rule and dot.
func sortedItems(S *iteratable.Set) []Item {
	items := make([]Item, 0, S.Size())
	for _, x := range S.Values() {
		items = append(items, asItem(x))
	}
	sort.Slice(items, func(k, l int) bool {
		if items[k].rule == items[l].rule {
			return items[k].dot < items[l].dot
		}
		return items[k].rule < items[l].rule
	})
	return items
}

// Kernels of CFSM states are identified by a hash over their items.
type kernelSignature struct {
	Items []itemSignature
}

type itemSignature struct {
	Rule int
	Dot  int
}

func kernelHash(kernel []Item) string {
	sig := kernelSignature{Items: make([]itemSignature, len(kernel))}
	for k, i := range kernel {
		sig.Items[k] = itemSignature{Rule: i.rule, Dot: i.dot}
	}
	h, err := structhash.Hash(sig, 1)
	if err != nil {
		panic(err) // signatures contain only ints
	}
	return h
}

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// closureSet computes the closure of a set of items: for every item
// [A ➞ α . B β] add all items [B ➞ . γ].
// https://www.cs.bgu.ac.il/~comp151/wiki.files/ps6.html#sec-2-7-3
func (lrgen *TableGenerator) closureSet(S *iteratable.Set) *iteratable.Set {
	C := S.Copy() // add start items to closure
	C.IterateOnce()
	for C.Next() { // C grows while iterating
		item := asItem(C.Item())
		if B, ok := item.PeekSymbol().Nonterminal(); ok {
			for _, r := range lrgen.byLHS[B] {
				C.Add(StartItem(lrgen.rules[r], r))
			}
		}
	}
	return C
}

// gotoSet computes the kernel of goto(C, A): for every item [N ➞ … . A …]
// in C advance to [N ➞ … A . …].
func (lrgen *TableGenerator) gotoSet(closure *iteratable.Set, A grammar.Symbol) *iteratable.Set {
	gotoset := newItemSet()
	for _, x := range closure.Values() {
		i := asItem(x)
		if i.PeekSymbol() == A {
			gotoset.Add(i.Advance())
		}
	}
	return gotoset
}
