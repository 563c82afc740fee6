package regexcore

import (
	"time"

	"github.com/rickm/regexcore/matcher"
)

// Result is a match operation's outcome, with the pattern and timing
// attached the way the spec's operations surface requires. A no-match
// Result carries Start == End == -1 and an empty Text.
type Result struct {
	Pattern   string
	Matched   bool
	Start     int
	End       int
	Text      string
	WorkUnits int64
	Elapsed   time.Duration
	// SubMatches carries the ordered matches of a findAll operation. Nil
	// for matchFull and find.
	SubMatches []SubMatch
}

// SubMatch is one match within a findAll operation's SubMatches list.
type SubMatch struct {
	Start int
	End   int
	Text  string
}

func singleResult(pattern string, input []rune, r matcher.Result, elapsed time.Duration) Result {
	return Result{
		Pattern:   pattern,
		Matched:   r.Matched,
		Start:     r.Start,
		End:       r.End,
		Text:      r.Text(input),
		WorkUnits: r.WorkUnits,
		Elapsed:   elapsed,
	}
}

func findAllResult(pattern string, input []rune, rs []matcher.Result, elapsed time.Duration) Result {
	subs := make([]SubMatch, len(rs))
	var workUnits int64
	for i, r := range rs {
		subs[i] = SubMatch{Start: r.Start, End: r.End, Text: r.Text(input)}
		workUnits = r.WorkUnits // cumulative; the last match's count excludes the final unsuccessful search
	}
	matched := len(rs) > 0
	start, end := -1, -1
	if matched {
		start, end = rs[0].Start, rs[len(rs)-1].End
	}
	return Result{
		Pattern:    pattern,
		Matched:    matched,
		Start:      start,
		End:        end,
		WorkUnits:  workUnits,
		Elapsed:    elapsed,
		SubMatches: subs,
	}
}

// ReplaceResult is the outcome of a replace operation.
type ReplaceResult struct {
	Text             string
	ReplacementCount int
}
