/*
Package parsergen is a parser generator toolbox.

Clients construct a context-free grammar, either directly or with a grammar builder,
and let parsergen compute analysis sets and parse tables. Tables drive incremental
parsing runtimes, which are fed one terminal at a time. Package structure is
as follows:

■ grammar: Package grammar implements context-free grammars, together with static
grammar analysis (FIRST- and FOLLOW-sets, epsilon-generating, generating and
reachable symbols).

■ ll: Package ll implements LL(1) parse tables and a predictive parser.

■ lr: Package lr implements LR(0), SLR(1) and LALR(1) parse tables, and
lr/shiftreduce a shift-reduce parser driven by them.

■ scanner: Package scanner provides tokenizers and drives runtimes from token streams.

The base package contains data types which are used throughout all the other packages:
tokens, the runtime protocol, derivation trees and errors.

A parse with an SLR(1) parser looks like this:

    g, err := b.Grammar()                  // b is a grammar.Builder
    tables, err := lr.SLR1Tables(g)
    p := shiftreduce.NewParser(tables)
    result, err := p.Parse([]grammar.Terminal{"num", "+", "num"})
    fmt.Println(result)                    // E(T(F(num)) + E(T(F(num))))

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parsergen
