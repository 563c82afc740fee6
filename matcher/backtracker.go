package matcher

import (
	"time"

	"github.com/rickm/regexcore/internal/charclass"
	"github.com/rickm/regexcore/parser"
)

// Backtracker runs a continuation-passing match directly over the AST.
// Every level of match restores the cursor on return, success or failure —
// callers recover the actual matched extent through the continuation's
// side effects, not through a return value, because match only reports
// whether *some* continuation eventually succeeded.
//
// Not safe for concurrent use: a single instance carries per-run mutable
// state (the backtrack counter and start time) and is meant to be built
// fresh for each operation.
type Backtracker struct {
	ast           *parser.AstNode
	input         []rune
	maxBacktracks int64
	timeout       time.Duration

	backtracks int64
	startTime  time.Time
}

// NewBacktracker creates a Backtracker for one matching operation against
// ast, bounded by maxBacktracks total backtrack steps and timeout
// wall-clock duration.
func NewBacktracker(ast *parser.AstNode, maxBacktracks int64, timeout time.Duration) *Backtracker {
	return &Backtracker{ast: ast, maxBacktracks: maxBacktracks, timeout: timeout}
}

// limitSignal is panicked from deep inside the recursive match to unwind
// straight to the operation entry point once a budget is exhausted,
// without threading an error return through every continuation.
type limitSignal struct{ err error }

// WorkUnits reports the number of backtrack steps spent so far, including
// prior calls on this instance (FindAll accumulates across its find
// calls).
func (b *Backtracker) WorkUnits() int64 { return b.backtracks }

// MatchFull succeeds iff some run of the AST from position 0 consumes the
// entire input.
func (b *Backtracker) MatchFull(input []rune) (Result, error) {
	b.input = input
	b.startTime = time.Now()

	matched, err := b.run(func() bool {
		return b.match(b.ast, 0, func(p int) bool { return p == len(b.input) })
	})
	if err != nil {
		return Result{}, err
	}
	if matched {
		return Result{Matched: true, Start: 0, End: len(input), WorkUnits: b.backtracks}, nil
	}
	return NoMatch(b.backtracks), nil
}

// Find returns the leftmost match in input, leftmost-first: among all
// successful start positions it picks the smallest, and among the ways
// that start can match it picks whichever the greedy, left-to-right
// exploration reaches first.
func (b *Backtracker) Find(input []rune) (Result, error) {
	b.input = input
	b.startTime = time.Now()
	return b.findFrom(0)
}

// FindAll repeatedly finds non-overlapping matches, advancing by one code
// point past zero-width matches to guarantee progress. The backtrack
// budget and timeout accumulate across the whole call.
func (b *Backtracker) FindAll(input []rune) ([]Result, error) {
	b.input = input
	b.startTime = time.Now()

	var results []Result
	pos := 0
	for pos <= len(input) {
		res, err := b.findFrom(pos)
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

func (b *Backtracker) findFrom(from int) (Result, error) {
	var end int
	matched, err := b.run(func() bool {
		return b.match(b.ast, from, func(p int) bool { end = p; return true })
	})
	if err != nil {
		return Result{}, err
	}
	if matched {
		return Result{Matched: true, Start: from, End: end, WorkUnits: b.backtracks}, nil
	}
	if from < len(b.input) {
		return b.findFrom(from + 1)
	}
	return NoMatch(b.backtracks), nil
}

// run executes fn, converting a panicked limitSignal into a returned
// error. Any other panic propagates — it is a genuine bug, not a budget
// exhaustion.
func (b *Backtracker) run(fn func() bool) (matched bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ls, ok := r.(limitSignal)
			if !ok {
				panic(r)
			}
			err = ls.err
		}
	}()
	return fn(), nil
}

// checkTimeout is called once per atom visited, per the spec's "between
// each atom" cancellation granularity.
func (b *Backtracker) checkTimeout() {
	if elapsed := time.Since(b.startTime); elapsed > b.timeout {
		panic(limitSignal{&TimeoutError{
			TimeoutMs: b.timeout.Milliseconds(),
			ElapsedMs: elapsed.Milliseconds(),
		}})
	}
}

// countBacktrack records one backtrack step (a failed alternative or
// quantifier step-down) and re-checks both budgets.
func (b *Backtracker) countBacktrack() {
	b.backtracks++
	if b.backtracks > b.maxBacktracks {
		panic(limitSignal{&BacktrackLimitError{Limit: b.maxBacktracks, Actual: b.backtracks}})
	}
	b.checkTimeout()
}

// match attempts node starting at pos, invoking cont with the position
// reached on every way node could match. It returns true as soon as some
// invocation of cont returns true; cont decides, at every level, what
// "the rest of the match" requires.
func (b *Backtracker) match(node *parser.AstNode, pos int, cont func(int) bool) bool {
	b.checkTimeout()

	switch node.Kind {
	case parser.NLiteral:
		if node.Char == parser.EmptyRune {
			return cont(pos)
		}
		return b.matchPredicate(pos, cont, func(r rune) bool { return r == node.Char })

	case parser.NEscaped, parser.NTab:
		return b.matchPredicate(pos, cont, func(r rune) bool { return r == node.Char })

	case parser.NWhitespace:
		return b.matchPredicate(pos, cont, charclass.IsWhitespace)

	case parser.NAnyChar:
		return b.matchPredicate(pos, cont, func(r rune) bool { return !charclass.IsLineTerminator(r) })

	case parser.NCharClass:
		return b.matchPredicate(pos, cont, func(r rune) bool {
			_, ok := node.CharSet[r]
			return ok
		})

	case parser.NNegatedCharClass:
		return b.matchPredicate(pos, cont, func(r rune) bool {
			if charclass.IsLineTerminator(r) {
				return false
			}
			_, ok := node.CharSet[r]
			return !ok
		})

	case parser.NConcat:
		return b.matchConcat(node.Children, 0, pos, cont)

	case parser.NAlternation:
		return b.matchAlternation(node.Children, pos, cont)

	case parser.NStar:
		return b.matchRepeat(node.Children[0], pos, 0, -1, cont)

	case parser.NPlus:
		return b.matchRepeat(node.Children[0], pos, 1, -1, cont)

	case parser.NQuestion:
		return b.matchRepeat(node.Children[0], pos, 0, 1, cont)

	case parser.NGroup:
		return b.match(node.Children[0], pos, cont)

	default:
		return false
	}
}

func (b *Backtracker) matchPredicate(pos int, cont func(int) bool, pred func(rune) bool) bool {
	if pos >= len(b.input) || !pred(b.input[pos]) {
		return false
	}
	return cont(pos + 1)
}

func (b *Backtracker) matchConcat(children []*parser.AstNode, i, pos int, cont func(int) bool) bool {
	if i == len(children) {
		return cont(pos)
	}
	return b.match(children[i], pos, func(p int) bool {
		return b.matchConcat(children, i+1, p, cont)
	})
}

func (b *Backtracker) matchAlternation(children []*parser.AstNode, pos int, cont func(int) bool) bool {
	for i, child := range children {
		if i > 0 {
			b.countBacktrack()
		}
		if b.match(child, pos, cont) {
			return true
		}
	}
	return false
}

// matchRepeat implements the spec's iterative greedy quantifier: it first
// walks the child forward as many times as it will go (recording the
// position reached after each iteration), then tries the continuation
// from the longest reach down to the minimum required count.
func (b *Backtracker) matchRepeat(child *parser.AstNode, pos, min, max int, cont func(int) bool) bool {
	positions := []int{pos}
	cur := pos
	for max < 0 || len(positions)-1 < max {
		var reached int
		ok := b.match(child, cur, func(p int) bool { reached = p; return true })
		if !ok || reached == cur {
			break
		}
		cur = reached
		positions = append(positions, cur)
	}

	if len(positions)-1 < min {
		return false
	}

	for i := len(positions) - 1; i >= min; i-- {
		if i != len(positions)-1 {
			b.countBacktrack()
		}
		if cont(positions[i]) {
			return true
		}
	}
	return false
}
