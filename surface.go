package regexcore

import (
	"fmt"
	"strings"
	"time"

	"github.com/rickm/regexcore/dfa/lazy"
	"github.com/rickm/regexcore/matcher"
	"github.com/rickm/regexcore/nfa"
	"github.com/rickm/regexcore/patterncache"
)

// engine is the common shape of Backtracker, NFAMatcher and DFAMatcher —
// enough for the operations surface to dispatch on Engine without
// knowing which concrete matcher it built.
type engine interface {
	MatchFull(input []rune) (matcher.Result, error)
	Find(input []rune) (matcher.Result, error)
	FindAll(input []rune) ([]matcher.Result, error)
}

// Surface is the operations surface: validate, compile-or-get-cached,
// build the chosen matcher, run, attach timing and work counters. It is
// the sole entry point external collaborators (an HTTP façade, a CLI) are
// expected to use.
//
// A Surface is safe for concurrent use: the compiled-pattern cache
// serializes its own writes, and every matcher is built fresh per call.
type Surface struct {
	config Config
	cache  *patterncache.Cache[*CompiledPattern]
}

// NewSurface creates a Surface governed by config.
func NewSurface(config Config) *Surface {
	s := &Surface{config: config}
	if config.CacheEnabled {
		s.cache = patterncache.New[*CompiledPattern](config.CacheMaxSize)
	}
	return s
}

// Compile parses pattern (or returns the cached artifact for it) after
// validating its length.
func (s *Surface) Compile(pattern string) (*CompiledPattern, error) {
	if err := s.validatePattern(pattern); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cp, ok := s.cache.Get(pattern); ok {
			return cp, nil
		}
	}

	cp, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Put(pattern, cp)
	}
	return cp, nil
}

// MatchFull succeeds iff engine's matcher consumes the entire input
// from position 0.
func (s *Surface) MatchFull(pattern, input string, eng Engine) (Result, error) {
	return s.runSingle(pattern, input, eng, func(e engine, in []rune) (matcher.Result, error) {
		return e.MatchFull(in)
	})
}

// Find returns the leftmost match (semantics depend on engine — see
// Engine's doc comment).
func (s *Surface) Find(pattern, input string, eng Engine) (Result, error) {
	return s.runSingle(pattern, input, eng, func(e engine, in []rune) (matcher.Result, error) {
		return e.Find(in)
	})
}

// FindAll returns every non-overlapping match, in increasing start-index
// order.
func (s *Surface) FindAll(pattern, input string, eng Engine) (Result, error) {
	if err := s.validateInput(input); err != nil {
		return Result{}, err
	}
	cp, err := s.Compile(pattern)
	if err != nil {
		return Result{}, err
	}

	runes := []rune(input)
	start := time.Now()

	var out Result
	ierr := s.safely(func() error {
		e, err := s.buildEngine(cp, eng)
		if err != nil {
			return err
		}
		results, err := e.FindAll(runes)
		if err != nil {
			return err
		}
		out = findAllResult(pattern, runes, results, time.Since(start))
		return nil
	})
	if ierr != nil {
		return Result{}, ierr
	}
	return out, nil
}

// Replace finds every match with engine and substitutes replacement (a
// literal string, never back-referenced) at each match range.
func (s *Surface) Replace(pattern, input, replacement string, eng Engine) (ReplaceResult, error) {
	res, err := s.FindAll(pattern, input, eng)
	if err != nil {
		return ReplaceResult{}, err
	}
	if !res.Matched {
		return ReplaceResult{Text: input, ReplacementCount: 0}, nil
	}

	runes := []rune(input)
	var sb strings.Builder
	cursor := 0
	for _, m := range res.SubMatches {
		sb.WriteString(string(runes[cursor:m.Start]))
		sb.WriteString(replacement)
		cursor = m.End
	}
	sb.WriteString(string(runes[cursor:]))

	return ReplaceResult{Text: sb.String(), ReplacementCount: len(res.SubMatches)}, nil
}

// Split cuts input at every match with engine, returning the N+1 parts
// around N matches — including empty leading/trailing parts when a match
// abuts a boundary.
func (s *Surface) Split(pattern, input string, eng Engine) ([]string, error) {
	res, err := s.FindAll(pattern, input, eng)
	if err != nil {
		return nil, err
	}
	if !res.Matched {
		return []string{input}, nil
	}

	runes := []rune(input)
	parts := make([]string, 0, len(res.SubMatches)+1)
	cursor := 0
	for _, m := range res.SubMatches {
		parts = append(parts, string(runes[cursor:m.Start]))
		cursor = m.End
	}
	parts = append(parts, string(runes[cursor:]))
	return parts, nil
}

func (s *Surface) runSingle(pattern, input string, eng Engine, run func(engine, []rune) (matcher.Result, error)) (Result, error) {
	if err := s.validateInput(input); err != nil {
		return Result{}, err
	}
	cp, err := s.Compile(pattern)
	if err != nil {
		return Result{}, err
	}

	runes := []rune(input)
	start := time.Now()

	var out Result
	ierr := s.safely(func() error {
		e, err := s.buildEngine(cp, eng)
		if err != nil {
			return err
		}
		r, err := run(e, runes)
		if err != nil {
			return err
		}
		out = singleResult(pattern, runes, r, time.Since(start))
		return nil
	})
	if ierr != nil {
		return Result{}, ierr
	}
	return out, nil
}

// safely runs fn, converting any panic it did not itself raise as a typed
// error into an InternalError rather than letting it escape the surface.
func (s *Surface) safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &InternalError{Message: fmt.Sprintf("%v", r)}
		}
	}()
	return fn()
}

func (s *Surface) buildEngine(cp *CompiledPattern, eng Engine) (engine, error) {
	timeout := time.Duration(s.config.TimeoutMs) * time.Millisecond

	switch eng {
	case EngineBacktracking:
		return matcher.NewBacktracker(cp.AST, s.config.MaxBacktracks, timeout), nil

	case EngineNFA:
		n, err := nfa.Build(cp.AST)
		if err != nil {
			return nil, &InternalError{Message: err.Error()}
		}
		return matcher.NewNFAMatcher(n, timeout), nil

	case EngineDFA:
		n, err := nfa.Build(cp.AST)
		if err != nil {
			return nil, &InternalError{Message: err.Error()}
		}
		fallback := matcher.NewNFAMatcher(n, timeout)
		builder := lazy.NewBuilder(n, lazy.NewCache(s.config.MaxDFAStates))
		return matcher.NewDFAMatcher(builder, fallback, timeout), nil

	default:
		return nil, fmt.Errorf("%w: unknown engine %v", ErrInvalidArgument, eng)
	}
}

func (s *Surface) validatePattern(pattern string) error {
	if n := len([]rune(pattern)); n > s.config.MaxPatternLength {
		return fmt.Errorf("%w: pattern length %d exceeds maxPatternLength %d", ErrInvalidArgument, n, s.config.MaxPatternLength)
	}
	return nil
}

func (s *Surface) validateInput(input string) error {
	if n := len([]rune(input)); n > s.config.MaxInputLength {
		return fmt.Errorf("%w: input length %d exceeds maxInputLength %d", ErrInvalidArgument, n, s.config.MaxInputLength)
	}
	return nil
}
