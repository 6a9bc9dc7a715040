/*
Package shiftreduce provides a shift-reduce parser. Clients have to use the tools
of package lr to prepare the necessary parse tables. The parser utilizes these
tables to create a right derivation for a given input, pushed terminal by terminal.

The parser is able to use LR(0), SLR(1) and LALR(1) tables alike, as it is
driven by the tables only.

The main focus for this implementation is adaptability and on-the-fly usage.
Clients are able to construct the parse tables from a grammar and use the
parser directly, without a code-generation or compile step. If you want, you
can create a grammar from user input and use a parser for it in a couple of
lines of code.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := grammar.NewBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a").End()  // Var  ➞ Sign a
	b.LHS("Sign").T("+").End()           // Sign ➞ +
	b.LHS("Sign").T("-").End()           // Sign ➞ -
	b.LHS("Sign").Epsilon()              // Sign ➞ ε
	g, err := b.Grammar()

This grammar is subjected to table generation.

	tables, err := lr.SLR1Tables(g)
	if err != nil { ... }  // cannot use an SLR(1) parser

Finally parse some input:

	p := shiftreduce.NewParser(tables)
	tree, err := p.Parse([]grammar.Terminal{"+", "a"})

Clients may provide a parsergen.Listener to perform semantic actions on
reductions, or let the parser create a parse tree.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package shiftreduce

import (
	"github.com/npillmayer/parsergen"
	"github.com/npillmayer/parsergen/grammar"
	"github.com/npillmayer/parsergen/lr"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsergen.lr'.
func tracer() tracing.Trace {
	return tracing.Select("parsergen.lr")
}

// Parser is a shift-reduce parser for LR tables. Create one with NewParser(...).
type Parser struct {
	tables *lr.Tables
}

var _ parsergen.Parser = (*Parser)(nil)

// NewParser creates a shift-reduce parser.
func NewParser(tables *lr.Tables) *Parser {
	return &Parser{tables: tables}
}

// Tables returns the parse tables of p.
func (p *Parser) Tables() *lr.Tables {
	return p.tables
}

// Runtime creates a runtime for a new parse.
func (p *Parser) Runtime(opts ...parsergen.Option) parsergen.Runtime {
	return NewRuntime(p.tables, opts...)
}

// Parse parses a complete input.
func (p *Parser) Parse(terminals []grammar.Terminal, opts ...parsergen.Option) (interface{}, error) {
	return parsergen.ParseAll(NewRuntime(p.tables, opts...), terminals)
}

// --- Runtime ---------------------------------------------------------------

// Runtime is a shift-reduce parser run.
type Runtime struct {
	tables   *lr.Tables
	listener parsergen.Listener
	stack    []stackitem // parser stack
	state    int         // current state
	pos      int         // position of the next input terminal
	result   interface{}
	done     bool
	failed   bool
}

var _ parsergen.Runtime = (*Runtime)(nil)

// We store pairs of state-IDs and values on the parse stack. The state is the
// one current before the value has been pushed.
type stackitem struct {
	state int         // ID of a CFSM state
	value interface{} // terminal or subtree
}

// NewRuntime creates a runtime for LR tables.
func NewRuntime(tables *lr.Tables, opts ...parsergen.Option) *Runtime {
	conf := parsergen.Configure(opts...)
	return &Runtime{
		tables:   tables,
		listener: conf.Listener,
		stack:    make([]stackitem, 0, 64),
		state:    tables.StartState(),
	}
}

// Push consumes the next input terminal.
func (rt *Runtime) Push(t grammar.Terminal) error {
	return rt.step(grammar.T(t))
}

// Finalize signals end of input. The parser has to reach the accepting state.
func (rt *Runtime) Finalize() error {
	return rt.step(grammar.EOF.Symbol())
}

// Result returns the parse result, i.e. the value created for the start symbol.
func (rt *Runtime) Result() (interface{}, error) {
	if rt.failed {
		return nil, parsergen.ErrTerminated
	}
	if !rt.done {
		return nil, parsergen.ErrNotReady
	}
	return rt.result, nil
}

// step performs actions for a lookahead until it is consumed (shift or accept).
func (rt *Runtime) step(la grammar.Symbol) error {
	if rt.failed || rt.done {
		return parsergen.ErrTerminated
	}
	for {
		action := rt.tables.Action(rt.state, la)
		tracer().Debugf("action(%d, %v) = %v", rt.state, la, action)
		switch action.Type {
		case lr.Shift:
			rt.stack = append(rt.stack, stackitem{rt.state, rt.listener.Terminal(la, rt.pos)})
			rt.state = action.State
			rt.pos++
			return nil
		case lr.Reduce:
			if err := rt.reduce(action.Production, la); err != nil {
				return err
			}
		case lr.Accept:
			if len(rt.stack) != 1 {
				return rt.fail(la)
			}
			rt.result = rt.stack[0].value
			rt.stack = rt.stack[:0]
			rt.done = true
			tracer().Debugf("input accepted")
			return nil
		default:
			return rt.fail(la)
		}
	}
}

// reduce performs a reduce action for a rule
//
//    LHS ➞ X1 ... Xn   (with X being terminals or nonterminals)
//
// Symbols X1 to Xn are represented on the stack as
//
//    [TOS]  (Sn, Xn) ... (S1, X1)  ...
//
// After popping them, S1 is the exposed state.
func (rt *Runtime) reduce(rule *grammar.Production, la grammar.Symbol) error {
	n := rule.Len()
	exposed := rt.state // epsilon-productions do not pop anything
	children := make([]interface{}, n)
	if n > 0 {
		handle := rt.stack[len(rt.stack)-n:]
		exposed = handle[0].state
		for i, item := range handle {
			children[i] = item.value
		}
		rt.stack = rt.stack[:len(rt.stack)-n]
	}
	tracer().Debugf("reduce %v", rule)
	node := rt.listener.Reduce(rule, children)
	next, ok := rt.tables.Goto(exposed, rule.LHS)
	if !ok {
		return rt.fail(la) // cannot happen for tables from lr
	}
	rt.stack = append(rt.stack, stackitem{exposed, node})
	rt.state = next
	return nil
}

func (rt *Runtime) fail(la grammar.Symbol) error {
	rt.failed = true
	err := &parsergen.ParsingError{
		Terminal: la,
		Position: rt.pos,
		State:    rt.state,
		Expected: rt.tables.Expected(rt.state),
	}
	tracer().Errorf("%v", err)
	if gconf.GetBool("panic-on-parse-error") {
		panic(err.Error())
	}
	return err
}
