/*
Package lr implements prerequisites for LR parsing: LR(0) items, the
characteristic finite state machine (CFSM) of a grammar and LR parse tables.

Parser Construction

Using a grammar as input, a bottom-up parser can be constructed.
First a CFSM is built from the grammar. The CFSM will then be transformed
into a GOTO table and an ACTION table. The CFSM will not be thrown away,
but is made available to the client. This is intended for debugging purposes,
but may be useful for error recovery, too.

Tables come in three flavours, differing in the lookaheads of reduce actions:

    LR(0)    reduce on every terminal
    SLR(1)   reduce on FOLLOW(A) for a rule A ➞ α
    LALR(1)  reduce on the lookaheads of merged LR(1)-states with the same core

Example:

    lrgen := lr.NewTableGenerator(g)    // g is a *grammar.Grammar
    tables, err := lrgen.CreateTables(lr.LALR1)
    if err != nil {                     // grammar is not LALR(1)
        var cerr *lr.ConflictError
        errors.As(err, &cerr)           // cerr.Conflicts lists the conflicts
    }

Grammars which are not of the requested class result in a *ConflictError.
By default, table generation stops at the first conflict. If the global
configuration flag 'lr-collect-conflicts' is set, all conflicts are reported.

Tables are used by package shiftreduce to drive a parser.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsergen.lr'.
func tracer() tracing.Trace {
	return tracing.Select("parsergen.lr")
}
