package scanner

import (
	"github.com/npillmayer/parsergen"
	"github.com/npillmayer/parsergen/grammar"
)

// TerminalMapper maps an input token to a grammar terminal.
type TerminalMapper func(parsergen.Token) grammar.Terminal

// ParseOption configures Parse.
type ParseOption func(*driver)

// MapTerminal sets the token to terminal mapping of Parse. The default
// mapping uses the token type as terminal.
func MapTerminal(m TerminalMapper) ParseOption {
	return func(d *driver) {
		if m != nil {
			d.mapper = m
		}
	}
}

// OnToken sets a function called for every token before it is pushed.
// Tokens are reported with their position in the token stream.
func OnToken(f func(pos int, token parsergen.Token)) ParseOption {
	return func(d *driver) {
		d.onToken = f
	}
}

type driver struct {
	mapper  TerminalMapper
	onToken func(int, parsergen.Token)
}

func tokenType(t parsergen.Token) grammar.Terminal {
	return t.TokType()
}

// Parse reads tokens from tok until EOF and feeds them into rt. After the
// end of input, rt is finalized and its result is returned.
// Parse stops at the first parsing error.
func Parse(rt parsergen.Runtime, tok Tokenizer, opts ...ParseOption) (interface{}, error) {
	d := &driver{mapper: tokenType}
	for _, opt := range opts {
		opt(d)
	}
	pos := 0
	for token := tok.NextToken(); token.TokType() != EOF; token = tok.NextToken() {
		if d.onToken != nil {
			d.onToken(pos, token)
		}
		t := d.mapper(token)
		tracer().Debugf("token %d: %q ⇒ %v", pos, token.Lexeme(), t)
		if err := rt.Push(t); err != nil {
			tracer().Infof("parse stopped at token %d: %v", pos, err)
			return nil, err
		}
		pos++
	}
	if err := rt.Finalize(); err != nil {
		return nil, err
	}
	return rt.Result()
}
