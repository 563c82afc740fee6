// Package lazy implements a lazy (on-demand) DFA over a Thompson NFA.
//
// Unlike a byte-oriented DFA, this one runs directly on Unicode code points:
// the NFA's alphabet is a handful of rune predicates (literal, any,
// whitespace, class, negated class) rather than 256 bytes, so a state's
// transition table cannot be precomputed — it is filled in one rune at a
// time as the search actually encounters that rune, and memoized on the
// State for the rest of the search.
//
// The state cache is hard-capped and never evicts: once a StateID is
// assigned, the NFA state set behind it never changes for the life of the
// DFA. Rather than clearing the cache under pressure (which would reassign
// ids and break that guarantee), the cache reports ErrStateLimitExceeded and
// the caller falls back to the NFA matcher for the remainder of the search.
package lazy

// DFAError reports a lazy-DFA-specific condition. ErrStateLimitExceeded is
// the only variant callers are expected to handle specially — it signals
// "fall back to the NFA matcher", not a programming error.
type DFAError struct {
	Message string
}

func (e *DFAError) Error() string { return e.Message }

// ErrStateLimitExceeded is returned by the builder when materializing a new
// DFA state would exceed the cache's configured capacity.
var ErrStateLimitExceeded = &DFAError{Message: "lazy DFA state cache limit exceeded"}
