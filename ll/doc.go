/*
Package ll implements LL(1) parse tables and a predictive parser.

Clients construct a grammar, usually by using a grammar builder. The grammar
must not be left-recursive, and for every nonterminal the directing terminals
of its productions have to be pairwise disjoint.

	b := grammar.NewBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a").End()   // Var  ➞ Sign a
	b.LHS("Sign").T("+").End()            // Sign ➞ +
	b.LHS("Sign").T("-").End()            // Sign ➞ -
	b.LHS("Sign").Epsilon()               // Sign ➞ ε
	g, err := b.Grammar()

	p, err := ll.NewParser(g)             // fails for non-LL(1) grammars
	tree, err := p.Parse([]grammar.Terminal{"-", "a"})

Parsing may as well be done incrementally, pushing one terminal at a time:

	rt := p.Runtime()
	for _, t := range input {
		if err := rt.Push(t); err != nil { … }
	}
	err = rt.Finalize()
	tree, err := rt.Result()

The default result is a derivation tree of *parsergen.Node. Clients may
provide their own parsergen.Listener to build a different result.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsergen.ll'.
func tracer() tracing.Trace {
	return tracing.Select("parsergen.ll")
}
