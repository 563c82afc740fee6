package lazy

import "github.com/rickm/regexcore/nfa"

// Builder drives subset construction against one NFA, materializing DFA
// states into a Cache on demand.
type Builder struct {
	nfa   *nfa.NFA
	cache *Cache
}

// NewBuilder creates a Builder over n, storing new states in cache.
func NewBuilder(n *nfa.NFA, cache *Cache) *Builder {
	return &Builder{nfa: n, cache: cache}
}

// Start returns the DFA's start state, the epsilon-closure of the NFA's
// start state.
func (b *Builder) Start() (StateID, error) {
	closure := b.nfa.EpsilonClosure([]nfa.StateID{b.nfa.Start()})
	s, err := b.cache.getOrCreate(closure, b.nfa)
	if err != nil {
		return InvalidState, err
	}
	return s.id, nil
}

// Step consumes r from the state identified by id, returning the successor
// state. The successor is computed and cached the first time any search
// steps on (id, r); later callers on the same state/rune pair hit the
// memo instead of re-running subset construction.
func (b *Builder) Step(id StateID, r rune) (StateID, error) {
	s := b.cache.Get(id)

	if next, ok := s.transition(r); ok {
		return next, nil
	}

	nfaNext := b.nfa.Step(s.nfaStates, r)
	closure := b.nfa.EpsilonClosure(nfaNext)

	next, err := b.cache.getOrCreate(closure, b.nfa)
	if err != nil {
		return InvalidState, err
	}

	s.setTransition(r, next.id)
	return next.id, nil
}

// IsAccepting reports whether id identifies an accepting DFA state.
func (b *Builder) IsAccepting(id StateID) bool {
	return b.cache.Get(id).IsAccepting()
}

// IsDead reports whether id identifies a state with an empty NFA subset —
// one from which no input can ever reach an accepting state.
func (b *Builder) IsDead(id StateID) bool {
	return len(b.cache.Get(id).nfaStates) == 0
}
