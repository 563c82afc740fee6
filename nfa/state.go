package nfa

import (
	"fmt"

	"github.com/rickm/regexcore/internal/charclass"
)

// StateID uniquely identifies an NFA state within an NFA's state slice.
type StateID uint32

// InvalidState marks a not-yet-patched or absent transition target.
const InvalidState StateID = 0xFFFFFFFF

// StateKind identifies the role of a State and which of its fields are
// meaningful.
type StateKind uint8

const (
	// StateMatch is an accepting state with no outgoing transitions.
	StateMatch StateKind = iota
	// StateSplit has two epsilon transitions, used for alternation and
	// quantifiers.
	StateSplit
	// StateEpsilon has a single epsilon transition, used for sequencing.
	StateEpsilon
	// StateConsume transitions on exactly one input rune, if Cond matches it.
	StateConsume
)

func (k StateKind) String() string {
	switch k {
	case StateMatch:
		return "Match"
	case StateSplit:
		return "Split"
	case StateEpsilon:
		return "Epsilon"
	case StateConsume:
		return "Consume"
	default:
		return fmt.Sprintf("StateKind(%d)", int(k))
	}
}

// CondKind identifies which predicate a Cond applies to an input rune.
type CondKind uint8

const (
	CondLiteral CondKind = iota
	CondAny
	CondWhitespace
	CondClass
	CondNegatedClass
)

func (k CondKind) String() string {
	switch k {
	case CondLiteral:
		return "Literal"
	case CondAny:
		return "Any"
	case CondWhitespace:
		return "Whitespace"
	case CondClass:
		return "Class"
	case CondNegatedClass:
		return "NegatedClass"
	default:
		return fmt.Sprintf("CondKind(%d)", int(k))
	}
}

// Cond is the rune predicate carried by a StateConsume state.
type Cond struct {
	Kind CondKind
	Char rune
	Set  map[rune]struct{}
}

// Matches reports whether r satisfies the predicate. Any and NegatedClass
// never match a line terminator, regardless of what Set contains.
func (c Cond) Matches(r rune) bool {
	switch c.Kind {
	case CondLiteral:
		return r == c.Char
	case CondAny:
		return !charclass.IsLineTerminator(r)
	case CondWhitespace:
		return charclass.IsWhitespace(r)
	case CondClass:
		_, ok := c.Set[r]
		return ok
	case CondNegatedClass:
		if charclass.IsLineTerminator(r) {
			return false
		}
		_, ok := c.Set[r]
		return !ok
	default:
		return false
	}
}

func (c Cond) String() string {
	switch c.Kind {
	case CondLiteral:
		return fmt.Sprintf("Literal(%q)", c.Char)
	default:
		return c.Kind.String()
	}
}

// State is one node of a Thompson NFA. Only the fields relevant to Kind are
// meaningful.
type State struct {
	kind StateKind

	// StateConsume
	cond Cond
	next StateID

	// StateEpsilon reuses next.

	// StateSplit
	out1, out2 StateID
}

// Kind returns the state's role.
func (s State) Kind() StateKind { return s.kind }

// IsMatch reports whether this is an accepting state.
func (s State) IsMatch() bool { return s.kind == StateMatch }

// Cond returns the predicate for a StateConsume state.
func (s State) Cond() Cond { return s.cond }

// Next returns the single successor for StateConsume/StateEpsilon states.
func (s State) Next() StateID { return s.next }

// Split returns the two successors for a StateSplit state.
func (s State) Split() (StateID, StateID) { return s.out1, s.out2 }

func (s State) String() string {
	switch s.kind {
	case StateMatch:
		return "Match"
	case StateEpsilon:
		return fmt.Sprintf("Epsilon -> %d", s.next)
	case StateSplit:
		return fmt.Sprintf("Split -> [%d, %d]", s.out1, s.out2)
	case StateConsume:
		return fmt.Sprintf("Consume %s -> %d", s.cond, s.next)
	default:
		return "Unknown"
	}
}
