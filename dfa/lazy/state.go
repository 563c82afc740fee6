package lazy

import (
	"strconv"
	"strings"
	"sync"

	"github.com/rickm/regexcore/nfa"
)

// StateID identifies a lazy DFA state within one Cache.
type StateID uint32

// InvalidState marks the absence of a state.
const InvalidState StateID = 0xFFFFFFFF

// StartState is always the first state a Cache assigns.
const StartState StateID = 0

// StateKey canonicalizes an NFA subset (already epsilon-closed and sorted
// by nfa.EpsilonClosure) so that two equal subsets always produce the same
// cache entry — this is what keeps a StateID stable for identical state
// sets across the DFA's lifetime.
type StateKey string

func keyFor(nfaStates []nfa.StateID) StateKey {
	var sb strings.Builder
	for i, id := range nfaStates {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return StateKey(sb.String())
}

// State is one DFA state: the NFA subset it represents, whether that subset
// contains an accepting NFA state, and a memo of runes already stepped from
// this state.
type State struct {
	id        StateID
	nfaStates []nfa.StateID
	accepting bool

	transMu sync.RWMutex
	trans   map[rune]StateID
}

// ID returns the state's identifier.
func (s *State) ID() StateID { return s.id }

// IsAccepting reports whether this state's NFA subset includes a match
// state.
func (s *State) IsAccepting() bool { return s.accepting }

// transition returns the memoized successor for r, if this state has
// already been stepped on r during the current search.
func (s *State) transition(r rune) (StateID, bool) {
	s.transMu.RLock()
	defer s.transMu.RUnlock()
	id, ok := s.trans[r]
	return id, ok
}

// setTransition memoizes the successor for r.
func (s *State) setTransition(r rune, next StateID) {
	s.transMu.Lock()
	s.trans[r] = next
	s.transMu.Unlock()
}
