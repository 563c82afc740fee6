package lazy

import (
	"sync"

	"github.com/rickm/regexcore/internal/conv"
	"github.com/rickm/regexcore/nfa"
)

// Cache stores the states materialized so far for one lazy DFA. It is
// hard-capped: once maxStates states exist, getOrCreate refuses to mint any
// more and returns ErrStateLimitExceeded instead of clearing itself, so
// that every StateID it has already handed out stays valid for the
// remainder of the search.
//
// Safe for concurrent use: lookups and insertions are guarded by an
// RWMutex. The operations surface builds a fresh Cache for each operation.
type Cache struct {
	mu        sync.RWMutex
	byKey     map[StateKey]*State
	byID      []*State
	maxStates uint32

	hits   uint64
	misses uint64
}

// NewCache creates a Cache with room for at most maxStates states.
func NewCache(maxStates uint32) *Cache {
	return &Cache{
		byKey:     make(map[StateKey]*State, maxStates),
		maxStates: maxStates,
	}
}

// getOrCreate returns the State for the given (already epsilon-closed)
// NFA subset, creating it if this is the first time the subset has been
// seen.
func (c *Cache) getOrCreate(nfaStates []nfa.StateID, n *nfa.NFA) (*State, error) {
	key := keyFor(nfaStates)

	c.mu.RLock()
	if s, ok := c.byKey[key]; ok {
		c.mu.RUnlock()
		c.recordHit()
		return s, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.byKey[key]; ok {
		c.hits++
		return s, nil
	}

	if conv.IntToUint32(len(c.byID)) >= c.maxStates {
		c.misses++
		return nil, ErrStateLimitExceeded
	}

	s := &State{
		id:        StateID(len(c.byID)),
		nfaStates: nfaStates,
		accepting: n.AnyAccepting(nfaStates),
		trans:     make(map[rune]StateID),
	}
	c.byKey[key] = s
	c.byID = append(c.byID, s)
	c.misses++
	return s, nil
}

func (c *Cache) recordHit() {
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
}

// Get returns the state previously assigned id. The caller must only pass
// ids it received from this same Cache.
func (c *Cache) Get(id StateID) *State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byID[id]
}

// Len reports how many states are currently cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}

// Stats returns cache hit/miss counters, useful for tuning MaxDFAStates.
func (c *Cache) Stats() (hits, misses uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
