package parsergen

import (
	"strings"

	"github.com/npillmayer/parsergen/grammar"
)

// Listener receives matched terminals and reductions from a runtime and produces
// the values the parse result is made of. Runtimes call Reduce with the values of
// the matched children in right hand side order.
type Listener interface {
	Terminal(t grammar.Symbol, pos int) interface{}
	Reduce(p *grammar.Production, children []interface{}) interface{}
}

// Node is a node of a derivation tree. Leaves represent terminals and do not
// have a production. Epsilon-productions result in nodes without children.
type Node struct {
	Symbol     grammar.Symbol
	Production *grammar.Production
	Children   []*Node
	Span       Span // input positions covered
}

// IsLeaf is true for terminal nodes.
func (n *Node) IsLeaf() bool {
	return n.Production == nil
}

// String renders a tree in prefix notation, e.g. "E(T(F(num)) + E(T(F(num))))".
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	b.WriteString(n.Symbol.String())
	if n.IsLeaf() {
		return
	}
	b.WriteString("(")
	for i, ch := range n.Children {
		if i > 0 {
			b.WriteString(" ")
		}
		ch.write(b)
	}
	b.WriteString(")")
}

// TreeBuilder is the default listener. It creates a derivation tree of *Node.
type TreeBuilder struct{}

var _ Listener = TreeBuilder{}

// Terminal creates a leaf.
func (TreeBuilder) Terminal(t grammar.Symbol, pos int) interface{} {
	return &Node{Symbol: t, Span: Span{uint64(pos), uint64(pos) + 1}}
}

// Reduce creates a node for p. Children have to be nodes.
func (TreeBuilder) Reduce(p *grammar.Production, children []interface{}) interface{} {
	n := &Node{Symbol: p.LHS.Symbol(), Production: p}
	n.Children = make([]*Node, len(children))
	for i, ch := range children {
		n.Children[i] = ch.(*Node)
		n.Span = n.Span.Extend(n.Children[i].Span)
	}
	return n
}
