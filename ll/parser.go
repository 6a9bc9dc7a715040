package ll

import (
	"github.com/npillmayer/parsergen"
	"github.com/npillmayer/parsergen/grammar"
)

// Parser is an LL(1) parser for a grammar. Create one with NewParser.
type Parser struct {
	table *ParseTable
}

var _ parsergen.Parser = (*Parser)(nil)

// NewParser creates an LL(1) parser for g. It returns an error if g is not LL(1).
func NewParser(g *grammar.Grammar) (*Parser, error) {
	table, err := Table(g)
	if err != nil {
		return nil, err
	}
	return &Parser{table: table}, nil
}

// Table returns the parse table of p.
func (p *Parser) Table() *ParseTable {
	return p.table
}

// Runtime creates a runtime for a new parse.
func (p *Parser) Runtime(opts ...parsergen.Option) parsergen.Runtime {
	return NewRuntime(p.table, opts...)
}

// Parse parses a complete input.
func (p *Parser) Parse(terminals []grammar.Terminal, opts ...parsergen.Option) (interface{}, error) {
	return parsergen.ParseAll(NewRuntime(p.table, opts...), terminals)
}
