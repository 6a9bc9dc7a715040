/*
Package scanner defines an interface for scanners to be used with the parsers
of packages ll and lr/shiftreduce, and a driver to feed a token stream into a
parser runtime.

Two default scanner implementations are provided: (1) a thin wrapper over the Go std lib
'text/scanner', and (2) an adapter for lexmachine, living in sub-package `lexmach`.

Parsers operate on grammar terminals, not on tokens. Parse maps every token to
a terminal, by default to its token type:

	tok := scanner.GoTokenizer("input", strings.NewReader("1 + 2"))
	result, err := scanner.Parse(rt, tok, scanner.MapTerminal(func(t parsergen.Token) grammar.Terminal {
		if t.TokType() == scanner.Int {
			return "num"
		}
		return t.Lexeme()
	}))

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/parsergen"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsergen.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("parsergen.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner interface. At the end of input, NextToken returns
// tokens of type EOF.
type Tokenizer interface {
	NextToken() parsergen.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars and raw strings to strings
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// LogError is the default error handler of tokenizers. It traces scanner errors.
func LogError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
// Comments are skipped by default.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = LogError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner. A nil handler
// restores the default.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = LogError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() parsergen.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	return DefaultToken{
		kind:   parsergen.TokType(t.lastToken),
		lexeme: t.TokenText(),
		span:   parsergen.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	}
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as the lexmachine scanner.
type DefaultToken struct {
	kind   parsergen.TokType
	lexeme string
	Val    interface{}
	span   parsergen.Span
}

// MakeDefaultToken creates a token without a value.
func MakeDefaultToken(typ parsergen.TokType, lexeme string, span parsergen.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

// TokType is part of the parsergen.Token interface.
func (t DefaultToken) TokType() parsergen.TokType {
	return t.kind
}

// Value is part of the parsergen.Token interface.
func (t DefaultToken) Value() interface{} {
	return t.Val
}

// Lexeme is part of the parsergen.Token interface.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Span is part of the parsergen.Token interface.
func (t DefaultToken) Span() parsergen.Span {
	return t.span
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("<%d|%q>", t.kind, t.lexeme)
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenizer.
type Option func(p *DefaultTokenizer)

// SkipComments sets or clears mode-flag SkipComments.
// If cleared, comments are passed as tokens of type Comment.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

// Lexeme is a helper function to receive a string from a token value.
func Lexeme(token interface{}) string {
	switch t := token.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case parsergen.Token:
		return t.Lexeme()
	default:
		return fmt.Sprintf("%v", t)
	}
}
