package parsergen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/parsergen/grammar"
)

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. We do not define any constants here, as
// it is up to applications to define them.
type TokType int

// TokTypeStringer is a type to be provided by a scanner/parser combination to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// Tokens represent input tokens. They are usually produced by a scanner and
// reflect terminals in a language.
//
// An example would be a token for a floating point numer:
//
//    TokType = Float       // identifier for this kind of tokens (appliation specific)
//    Lexeme  = "3.1316"    // lexeme how it appreared in the input stream
//    Value   = 3.1416      // is a float64 value
//    Span    = 67…73       // occured from position 67 in the input stream
//
// Token.Value() could either have been set by the scanner, or converted from Token.Lexeme()
// by a parse tree listener.
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. For every
// terminal and nonterminal, a parse tree will track which input positions
// this symbol covers. A span denotes a start position and the position just
// behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns a span covering s and other. Null spans are neutral.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other.IsNull() {
		return s
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- Parsers and runtimes --------------------------------------------------

// Runtime is a single, incremental parse. Clients push terminals one at a time
// and signal end of input by calling Finalize. A runtime may not be re-used
// after a parsing error. Runtimes are not safe for concurrent use, but any
// number of runtimes may share the tables of a parser.
type Runtime interface {
	Push(t grammar.Terminal) error // push the next input terminal
	Finalize() error               // signal end of input
	Result() (interface{}, error)  // available after successful Finalize
}

// Parser is a parser for a grammar, creating runtimes for individual parses.
type Parser interface {
	Runtime(opts ...Option) Runtime
	Parse(terminals []grammar.Terminal, opts ...Option) (interface{}, error)
}

// Option configures a runtime.
type Option func(*RuntimeConfig)

// RuntimeConfig is the configuration of a runtime, set up by options.
// Runtime implementations call Configure to get one.
type RuntimeConfig struct {
	Listener Listener // receives terminals and reductions
}

// WithListener sets the listener of a runtime. The default is a TreeBuilder.
func WithListener(l Listener) Option {
	return func(c *RuntimeConfig) {
		c.Listener = l
	}
}

// Configure applies options to a default configuration.
func Configure(opts ...Option) RuntimeConfig {
	c := RuntimeConfig{}
	for _, opt := range opts {
		opt(&c)
	}
	if c.Listener == nil {
		c.Listener = TreeBuilder{}
	}
	return c
}

// ParseAll pushes all terminals to rt, finalizes it and returns the result.
func ParseAll(rt Runtime, terminals []grammar.Terminal) (interface{}, error) {
	for _, t := range terminals {
		if err := rt.Push(t); err != nil {
			return nil, err
		}
	}
	if err := rt.Finalize(); err != nil {
		return nil, err
	}
	return rt.Result()
}

// --- Errors ----------------------------------------------------------------

// Errors shared by parser generators and runtimes.
var (
	// ErrIncompatibleGrammar is returned by table generators if a grammar does not
	// belong to the class of grammars they are able to handle.
	ErrIncompatibleGrammar = errors.New("incompatible grammar")
	// ErrNotImplemented is returned by algorithms which are part of the API,
	// but have no implementation yet.
	ErrNotImplemented = grammar.ErrNotImplemented
	// ErrNotReady is returned if a parse result is requested before Finalize.
	ErrNotReady = errors.New("parse result not ready")
	// ErrTerminated is returned by runtimes after a parsing error.
	ErrTerminated = errors.New("parser runtime terminated")
	// ErrParsing is matched by every *ParsingError.
	ErrParsing = errors.New("parsing error")
)

// ParsingError is returned by runtimes if an input terminal is not acceptable.
type ParsingError struct {
	Terminal grammar.Symbol   // the offending terminal, EOF for end of input
	Position int              // 0-based index of the terminal in the input
	State    int              // LR state, or -1 for LL parsers
	Top      grammar.Symbol   // LL stack top, if any
	Expected []grammar.Symbol // acceptable terminals, if known
}

func (e *ParsingError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error at position %d: unexpected %v", e.Position, e.Terminal)
	if e.State >= 0 {
		fmt.Fprintf(&b, " in state %d", e.State)
	} else if !e.Top.IsZero() {
		fmt.Fprintf(&b, " for %v", e.Top)
	}
	if len(e.Expected) > 0 {
		b.WriteString(", expected one of")
		for _, sym := range e.Expected {
			b.WriteString(" ")
			b.WriteString(sym.String())
		}
	}
	return b.String()
}

// Is makes ParsingError match ErrParsing.
func (e *ParsingError) Is(target error) bool {
	return target == ErrParsing
}
