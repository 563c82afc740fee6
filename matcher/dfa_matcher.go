package matcher

import (
	"time"

	"github.com/rickm/regexcore/dfa/lazy"
)

// DFAMatcher drives a lazy DFA table-walk. If the DFA's state cache is
// exhausted mid-search, it falls back to an NFAMatcher over the same
// pattern for the rest of that operation — the spec's sanctioned response
// to a capped, non-evicting state cache (see package lazy's doc comment
// for why the cache cannot simply clear itself instead).
type DFAMatcher struct {
	builder  *lazy.Builder
	fallback *NFAMatcher
	timeout  time.Duration
}

// NewDFAMatcher creates a DFAMatcher driven by builder, bounded by
// timeout, falling back to fallback on cache exhaustion.
func NewDFAMatcher(builder *lazy.Builder, fallback *NFAMatcher, timeout time.Duration) *DFAMatcher {
	return &DFAMatcher{builder: builder, fallback: fallback, timeout: timeout}
}

// MatchFull succeeds iff the whole input drives the DFA to an accepting
// state.
func (m *DFAMatcher) MatchFull(input []rune) (Result, error) {
	start := time.Now()

	state, err := m.builder.Start()
	if err == lazy.ErrStateLimitExceeded {
		return m.fallback.MatchFull(input)
	}

	var workUnits int64
	for _, r := range input {
		if terr := m.checkTimeout(start); terr != nil {
			return Result{}, terr
		}
		state, err = m.builder.Step(state, r)
		if err == lazy.ErrStateLimitExceeded {
			return m.fallback.MatchFull(input)
		}
		workUnits++
		if m.builder.IsDead(state) {
			return NoMatch(workUnits), nil
		}
	}

	if m.builder.IsAccepting(state) {
		return Result{Matched: true, Start: 0, End: len(input), WorkUnits: workUnits}, nil
	}
	return NoMatch(workUnits), nil
}

// Find returns the leftmost-longest match, same discipline as NFAMatcher.
func (m *DFAMatcher) Find(input []rune) (Result, error) {
	start := time.Now()
	var workUnits int64
	return m.findFrom(input, 0, start, &workUnits)
}

// FindAll repeatedly finds non-overlapping leftmost-longest matches.
func (m *DFAMatcher) FindAll(input []rune) ([]Result, error) {
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

func (m *DFAMatcher) findFrom(input []rune, from int, startTime time.Time, workUnits *int64) (Result, error) {
	for s := from; s <= len(input); s++ {
		state, err := m.builder.Start()
		if err == lazy.ErrStateLimitExceeded {
			res, ferr := m.fallback.Find(input[s:])
			if ferr != nil {
				return Result{}, ferr
			}
			if !res.Matched {
				return NoMatch(*workUnits), nil
			}
			return Result{Matched: true, Start: s + res.Start, End: s + res.End, WorkUnits: *workUnits}, nil
		}
		*workUnits++

		bestEnd := -1
		if m.builder.IsAccepting(state) {
			bestEnd = s
		}

		pos := s
		for pos < len(input) && !m.builder.IsDead(state) {
			if terr := m.checkTimeout(startTime); terr != nil {
				return Result{}, terr
			}
			state, err = m.builder.Step(state, input[pos])
			if err == lazy.ErrStateLimitExceeded {
				res, ferr := m.fallback.Find(input[s:])
				if ferr != nil {
					return Result{}, ferr
				}
				if !res.Matched {
					return NoMatch(*workUnits), nil
				}
				return Result{Matched: true, Start: s + res.Start, End: s + res.End, WorkUnits: *workUnits}, nil
			}
			*workUnits++
			pos++
			if m.builder.IsAccepting(state) {
				bestEnd = pos
			}
		}

		if bestEnd >= 0 {
			return Result{Matched: true, Start: s, End: bestEnd, WorkUnits: *workUnits}, nil
		}
	}
	return NoMatch(*workUnits), nil
}

func (m *DFAMatcher) checkTimeout(start time.Time) error {
	if elapsed := time.Since(start); elapsed > m.timeout {
		return &TimeoutError{TimeoutMs: m.timeout.Milliseconds(), ElapsedMs: elapsed.Milliseconds()}
	}
	return nil
}
