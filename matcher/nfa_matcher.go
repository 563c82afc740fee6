package matcher

import (
	"time"

	"github.com/rickm/regexcore/nfa"
)

// NFAMatcher runs a two-set epsilon-closure simulation directly over an
// NFA. It never backtracks, so its find/findAll semantics are
// leftmost-longest rather than the backtracker's leftmost-first.
type NFAMatcher struct {
	nfa     *nfa.NFA
	timeout time.Duration
}

// NewNFAMatcher creates an NFAMatcher over n, bounded by timeout.
func NewNFAMatcher(n *nfa.NFA, timeout time.Duration) *NFAMatcher {
	return &NFAMatcher{nfa: n, timeout: timeout}
}

// MatchFull succeeds iff the whole input drives the NFA to an accepting
// state set.
func (m *NFAMatcher) MatchFull(input []rune) (Result, error) {
	start := time.Now()
	current := m.nfa.EpsilonClosure([]nfa.StateID{m.nfa.Start()})
	var workUnits int64 = int64(len(current))

	for _, r := range input {
		if err := m.checkTimeout(start); err != nil {
			return Result{}, err
		}
		current = m.nfa.EpsilonClosure(m.nfa.Step(current, r))
		workUnits += int64(len(current))
		if len(current) == 0 {
			return NoMatch(workUnits), nil
		}
	}

	if m.nfa.AnyAccepting(current) {
		return Result{Matched: true, Start: 0, End: len(input), WorkUnits: workUnits}, nil
	}
	return NoMatch(workUnits), nil
}

// Find returns the leftmost-longest match: the smallest start position
// that reaches any accept, and for that start, the largest end reached.
func (m *NFAMatcher) Find(input []rune) (Result, error) {
	start := time.Now()
	var workUnits int64
	return m.findFrom(input, 0, start, &workUnits)
}

// FindAll repeatedly finds non-overlapping leftmost-longest matches,
// advancing past zero-width matches to guarantee progress.
func (m *NFAMatcher) FindAll(input []rune) ([]Result, error) {
	startTime := time.Now()
	var workUnits int64
	var results []Result

	pos := 0
	for pos <= len(input) {
		res, err := m.findFrom(input, pos, startTime, &workUnits)
		if err != nil {
			return nil, err
		}
		if !res.Matched {
			break
		}
		results = append(results, res)
		if res.End == res.Start {
			pos = res.End + 1
		} else {
			pos = res.End
		}
	}
	return results, nil
}

func (m *NFAMatcher) findFrom(input []rune, from int, startTime time.Time, workUnits *int64) (Result, error) {
	for s := from; s <= len(input); s++ {
		current := m.nfa.EpsilonClosure([]nfa.StateID{m.nfa.Start()})
		*workUnits += int64(len(current))

		bestEnd := -1
		if m.nfa.AnyAccepting(current) {
			bestEnd = s
		}

		pos := s
		for pos < len(input) && len(current) > 0 {
			if err := m.checkTimeout(startTime); err != nil {
				return Result{}, err
			}
			current = m.nfa.EpsilonClosure(m.nfa.Step(current, input[pos]))
			*workUnits += int64(len(current))
			pos++
			if m.nfa.AnyAccepting(current) {
				bestEnd = pos
			}
		}

		if bestEnd >= 0 {
			return Result{Matched: true, Start: s, End: bestEnd, WorkUnits: *workUnits}, nil
		}
	}
	return NoMatch(*workUnits), nil
}

func (m *NFAMatcher) checkTimeout(start time.Time) error {
	if elapsed := time.Since(start); elapsed > m.timeout {
		return &TimeoutError{TimeoutMs: m.timeout.Milliseconds(), ElapsedMs: elapsed.Milliseconds()}
	}
	return nil
}
