package lazy

import (
	"testing"

	"github.com/rickm/regexcore/nfa"
	"github.com/rickm/regexcore/parser"
)

func build(t *testing.T, pattern string) *nfa.NFA {
	t.Helper()
	ast, err := parser.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", pattern, err)
	}
	n, err := nfa.Build(ast)
	if err != nil {
		t.Fatalf("Build(%q) error: %v", pattern, err)
	}
	return n
}

func runDFA(t *testing.T, b *Builder, input string) bool {
	t.Helper()
	state, err := b.Start()
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	for _, r := range input {
		state, err = b.Step(state, r)
		if err != nil {
			t.Fatalf("Step error: %v", err)
		}
	}
	return b.IsAccepting(state)
}

func TestBuilderMatchesNFASemantics(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"a*b", []string{"b", "aaab"}, []string{"a", "ba"}},
		{"cat|dog", []string{"cat", "dog"}, []string{"ca", "dogg"}},
		{"[a-c]+", []string{"abc", "a"}, []string{"d", ""}},
		{"[^a]", []string{"b"}, []string{"a", "\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n := build(t, tt.pattern)
			b := NewBuilder(n, NewCache(1000))
			for _, in := range tt.accept {
				if !runDFA(t, b, in) {
					t.Errorf("pattern %q should accept %q", tt.pattern, in)
				}
			}
			for _, in := range tt.reject {
				if runDFA(t, b, in) {
					t.Errorf("pattern %q should reject %q", tt.pattern, in)
				}
			}
		})
	}
}

func TestStateIdentityStableForEqualSubsets(t *testing.T) {
	// "a*" visited after different numbers of 'a's can revisit the same
	// NFA subset; the DFA must reuse the same StateID rather than minting
	// a fresh one, since distinct ids for identical subsets would break
	// the invariant that a state's transitions are fully memoized.
	n := build(t, "a*")
	b := NewBuilder(n, NewCache(1000))

	start, err := b.Start()
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	s1, err := b.Step(start, 'a')
	if err != nil {
		t.Fatalf("Step error: %v", err)
	}
	s2, err := b.Step(s1, 'a')
	if err != nil {
		t.Fatalf("Step error: %v", err)
	}

	if s1 != s2 {
		t.Errorf("expected stepping 'a' from the post-'a' state to revisit the same state, got %d and %d", s1, s2)
	}
}

func TestCacheLimitExceeded(t *testing.T) {
	n := build(t, "[a-z][a-z][a-z][a-z]")
	cache := NewCache(1)
	b := NewBuilder(n, cache)

	start, err := b.Start()
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	_, err = b.Step(start, 'a')
	if err == nil {
		t.Fatal("expected ErrStateLimitExceeded once the cache is exhausted")
	}
	if err != ErrStateLimitExceeded {
		t.Errorf("got error %v, want ErrStateLimitExceeded", err)
	}
}

func TestCacheDeduplicatesStates(t *testing.T) {
	n := build(t, "ab|ac")
	b := NewBuilder(n, NewCache(1000))

	start, err := b.Start()
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	first, err := b.Step(start, 'a')
	if err != nil {
		t.Fatalf("Step error: %v", err)
	}

	if got := b.cache.Len(); got < 2 {
		t.Errorf("expected at least 2 cached states, got %d", got)
	}

	before := b.cache.Len()
	again, err := b.Step(start, 'a')
	if err != nil {
		t.Fatalf("Step error: %v", err)
	}
	if again != first {
		t.Errorf("repeated step returned state %d, want %d", again, first)
	}
	if got := b.cache.Len(); got != before {
		t.Errorf("repeated step grew the cache from %d to %d states", before, got)
	}
}
