// Package charclass holds the small set of character predicates shared by
// the parser, the NFA builder, and all three matchers so that "whitespace"
// and "line terminator" mean exactly the same thing everywhere in the engine.
package charclass

// Whitespace is the documented \s class: space, tab, newline, carriage
// return, form feed, vertical tab.
var Whitespace = [...]rune{' ', '\t', '\n', '\r', '\f', '\v'}

// IsWhitespace reports whether r belongs to the \s class.
func IsWhitespace(r rune) bool {
	for _, w := range Whitespace {
		if r == w {
			return true
		}
	}
	return false
}

// IsLineTerminator reports whether r is excluded from "any character" (.)
// and from negated character classes regardless of their set contents.
func IsLineTerminator(r rune) bool {
	return r == '\n' || r == '\r'
}
