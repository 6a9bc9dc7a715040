package lr

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/parsergen"
	"github.com/npillmayer/parsergen/grammar"
)

// ActionType is the type of an LR parser action.
type ActionType int

// Types of parser actions.
const (
	NoAction ActionType = iota
	Shift
	Reduce
	Accept
)

// Action is an entry of an ACTION table.
type Action struct {
	Type       ActionType
	State      int                 // target state of a shift
	Rule       int                 // index of the rule to reduce
	Production *grammar.Production // rule to reduce
}

func (a Action) String() string {
	switch a.Type {
	case Shift:
		return fmt.Sprintf("shift %d", a.State)
	case Reduce:
		return fmt.Sprintf("reduce %v", a.Production)
	case Accept:
		return "accept"
	}
	return "<none>"
}

// Conflict is a table cell with two different actions.
type Conflict struct {
	State     int
	Lookahead grammar.Symbol
	Actions   [2]Action
}

// Kind returns "shift/reduce", "accept/reduce" or "reduce/reduce".
func (c Conflict) Kind() string {
	switch {
	case c.Actions[0].Type == Shift || c.Actions[1].Type == Shift:
		return "shift/reduce"
	case c.Actions[0].Type == Accept || c.Actions[1].Type == Accept:
		return "accept/reduce"
	}
	return "reduce/reduce"
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s conflict in state %d for %v: %v | %v",
		c.Kind(), c.State, c.Lookahead, c.Actions[0], c.Actions[1])
}

// ConflictError is returned if a grammar is not of the class of the LR tables
// to create.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	var b bytes.Buffer
	b.WriteString(parsergen.ErrIncompatibleGrammar.Error())
	b.WriteString(": ")
	for k, c := range e.Conflicts {
		if k > 0 {
			b.WriteString("; ")
		}
		b.WriteString(c.String())
	}
	return b.String()
}

// Is matches parsergen.ErrIncompatibleGrammar.
func (e *ConflictError) Is(target error) bool {
	return target == parsergen.ErrIncompatibleGrammar
}
