/*
Package grammar implements context-free grammars and their static analysis.

Building a Grammar

Grammars are either constructed directly from sets of terminals, nonterminals,
a start symbol and a list of productions, using grammar.New, or by help of a
grammar builder object. Clients add rules, consisting of nonterminal symbols
and terminals. Terminals are arbitrary comparable values, usually token
categories. Grammars may contain epsilon-productions.

Example:

    b := grammar.NewBuilder("G")
    b.LHS("S").N("A").T("a").End()   // S  ➞  A a
    b.LHS("A").N("B").N("D").End()   // A  ➞  B D
    b.LHS("B").T("b").End()          // B  ➞  b
    b.LHS("B").Epsilon()             // B  ➞  ε
    b.LHS("D").T("d").End()          // D  ➞  d
    b.LHS("D").Epsilon()             // D  ➞  ε
    g, err := b.Grammar()

This results in the following trivial grammar:

   g.Dump()

   0: S ➞ A a
   1: A ➞ B D
   2: B ➞ b
   3: B ➞ ε
   4: D ➞ d
   5: D ➞ ε

Epsilon-productions have an empty right hand side. The special nonterminal
Epsilon will show up in FIRST-sets, but never inside a production.

Static Grammar Analysis

Grammars are analysed once, at construction time. Analysis computes the
epsilon-generating nonterminals and FIRST- and FOLLOW-sets. FIRST and FOLLOW
are always computed over the cleaned grammar (see Clean), i.e. without
non-generating or unreachable symbols.

Although FIRST and FOLLOW-sets are mainly intended to be used for internal
purposes of constructing the parser tables, methods for getting FIRST(N)
and FOLLOW(N) of nonterminals are public.

    for _, A := range g.Nonterminals() {
        fmt.Printf("FIRST(%s) = %v\n", A, g.First(A))
    }

    // Output:
    FIRST(S) = { a, b, d }
    FIRST(A) = { ε, b, d }
    FIRST(B) = { ε, b }
    FIRST(D) = { ε, d }

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsergen.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("parsergen.grammar")
}
