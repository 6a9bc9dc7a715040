package grammar

// Grammar transformations. They are part of the API, but still lack an
// implementation.

// EpsilonFree returns a grammar without epsilon-productions, generating
// the same language (except for ε).
func EpsilonFree(g *Grammar) (*Grammar, error) {
	return nil, ErrNotImplemented
}

// NonLeftRecursive returns a grammar without left recursion, generating the
// same language.
func NonLeftRecursive(g *Grammar) (*Grammar, error) {
	return nil, ErrNotImplemented
}

// NonLong returns a grammar where no right hand side has more than two symbols.
func NonLong(g *Grammar) (*Grammar, error) {
	return nil, ErrNotImplemented
}
