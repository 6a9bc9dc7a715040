package ll

import (
	"github.com/npillmayer/parsergen"
	"github.com/npillmayer/parsergen/grammar"
	"github.com/npillmayer/schuko/gconf"
)

// Runtime is a predictive parser run. It keeps a stack of grammar symbols,
// starting with [EOF, S], and a stack of reduction frames.
// Every expansion of a nonterminal opens a frame, which collects the values of
// the production's children. A frame is complete when all children of the
// production are present; its value then becomes a child of the frame below.
type Runtime struct {
	table    *ParseTable
	listener parsergen.Listener
	stack    []grammar.Symbol
	frames   []*frame
	pos      int // position of the next input terminal
	result   interface{}
	done     bool
	failed   bool
}

var _ parsergen.Runtime = (*Runtime)(nil)

type frame struct {
	prod     *grammar.Production // nil for the root frame
	children []interface{}
}

func (f *frame) complete() bool {
	return f.prod != nil && len(f.children) == f.prod.Len()
}

// NewRuntime creates a runtime for an LL(1) parse table.
func NewRuntime(table *ParseTable, opts ...parsergen.Option) *Runtime {
	conf := parsergen.Configure(opts...)
	start := table.Grammar().StartSymbol()
	return &Runtime{
		table:    table,
		listener: conf.Listener,
		stack:    []grammar.Symbol{grammar.EOF.Symbol(), start.Symbol()},
		frames:   []*frame{{}},
	}
}

// Push consumes the next input terminal.
func (rt *Runtime) Push(t grammar.Terminal) error {
	return rt.step(grammar.T(t))
}

// Finalize signals end of input. The symbol stack has to drain completely.
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

func (rt *Runtime) step(la grammar.Symbol) error {
	if rt.failed || rt.done {
		return parsergen.ErrTerminated
	}
	for {
		top := rt.stack[len(rt.stack)-1]
		tracer().Debugf("stack top = %v, lookahead = %v", top, la)
		switch {
		case top.IsEOF():
			if !la.IsEOF() {
				return rt.fail(la, top, []grammar.Symbol{top})
			}
			rt.stack = rt.stack[:0]
			root := rt.frames[0]
			rt.result = root.children[0]
			rt.done = true
			tracer().Debugf("input accepted")
			return nil
		case top.IsNonterminal():
			A, _ := top.Nonterminal()
			p, ok := rt.table.Lookup(A, la)
			if !ok {
				return rt.fail(la, top, rt.table.expected(A))
			}
			tracer().Debugf("expand %v", p)
			rt.stack = rt.stack[:len(rt.stack)-1]
			for i := p.Len() - 1; i >= 0; i-- {
				rt.stack = append(rt.stack, p.At(i))
			}
			rt.frames = append(rt.frames, &frame{prod: p, children: make([]interface{}, 0, p.Len())})
			rt.reduceFrames() // epsilon-productions are complete immediately
		default:
			if top != la {
				return rt.fail(la, top, []grammar.Symbol{top})
			}
			rt.stack = rt.stack[:len(rt.stack)-1]
			rt.addChild(rt.listener.Terminal(la, rt.pos))
			rt.reduceFrames()
			rt.pos++
			return nil
		}
	}
}

func (rt *Runtime) addChild(value interface{}) {
	f := rt.frames[len(rt.frames)-1]
	f.children = append(f.children, value)
}

// reduceFrames pops all complete frames, passing their values to their parents.
func (rt *Runtime) reduceFrames() {
	for {
		f := rt.frames[len(rt.frames)-1]
		if !f.complete() {
			return
		}
		rt.frames = rt.frames[:len(rt.frames)-1]
		tracer().Debugf("reduce %v", f.prod)
		rt.addChild(rt.listener.Reduce(f.prod, f.children))
	}
}

func (rt *Runtime) fail(la, top grammar.Symbol, expected []grammar.Symbol) error {
	rt.failed = true
	err := &parsergen.ParsingError{
		Terminal: la,
		Position: rt.pos,
		State:    -1,
		Top:      top,
		Expected: expected,
	}
	tracer().Errorf("%v", err)
	if gconf.GetBool("panic-on-parse-error") {
		panic(err.Error())
	}
	return err
}
