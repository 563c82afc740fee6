// Package parser implements a recursive-descent parser that turns a regex
// pattern into an AstNode tree.
//
// Grammar (lowest to highest precedence):
//
//	expr        := concat ('|' concat)*
//	concat      := quantified+
//	quantified  := atom ( '*' | '+' | '?' )?
//	atom        := literal | escape | tab | whitespace
//	             | '.' | '(' expr ')' | charClass
//	             | '^' | '-' | ']'     -- treated as literal outside [ ]
//	charClass   := '[' '^'? classItem+ ']'
//	classItem   := classChar ( '-' classChar )?
package parser

import (
	"fmt"

	"github.com/rickm/regexcore/internal/charclass"
	"github.com/rickm/regexcore/lexer"
)

// Parser holds the token stream and cursor for one parse.
type Parser struct {
	pattern string
	tokens  []lexer.Token
	idx     int
}

// New creates a Parser for pattern, tokenizing it immediately.
func New(pattern string) *Parser {
	return &Parser{pattern: pattern, tokens: lexer.Tokenize(pattern)}
}

// Parse parses pattern into an AstNode tree.
func Parse(pattern string) (*AstNode, error) {
	return New(pattern).Parse()
}

// Parse runs the parser to completion.
func (p *Parser) Parse() (*AstNode, error) {
	if p.pattern == "" {
		return NewLiteral(EmptyRune), nil
	}

	ast, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if !p.isAtEnd() {
		return nil, p.errorf("unexpected token: %s", p.current().Kind)
	}

	return ast, nil
}

// parseExpr := concat ('|' concat)*
func (p *Parser) parseExpr() (*AstNode, error) {
	first, err := p.parseConcat()
	if err != nil {
		return nil, err
	}

	branches := []*AstNode{first}
	for p.match(lexer.Pipe) {
		next, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		branches = append(branches, next)
	}

	if len(branches) == 1 {
		return branches[0], nil
	}
	return NewAlternation(branches), nil
}

// parseConcat := quantified+
func (p *Parser) parseConcat() (*AstNode, error) {
	var parts []*AstNode

	for !p.isAtEnd() && !p.check(lexer.Pipe) && !p.check(lexer.RParen) {
		quantified, err := p.parseQuantified()
		if err != nil {
			return nil, err
		}
		if quantified == nil {
			break
		}
		parts = append(parts, quantified)
	}

	if len(parts) == 0 {
		return NewLiteral(EmptyRune), nil
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return NewConcat(parts), nil
}

// parseQuantified := atom ( '*' | '+' | '?' )?
func (p *Parser) parseQuantified() (*AstNode, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if atom == nil {
		return nil, nil
	}

	switch {
	case p.match(lexer.Star):
		return NewQuantifier(NStar, atom), nil
	case p.match(lexer.Plus):
		return NewQuantifier(NPlus, atom), nil
	case p.match(lexer.Question):
		return NewQuantifier(NQuestion, atom), nil
	}

	return atom, nil
}

// parseAtom handles a single atomic expression. It returns (nil, nil) when
// the current token cannot start an atom (end of concatenation).
func (p *Parser) parseAtom() (*AstNode, error) {
	if p.isAtEnd() ||
		p.check(lexer.RParen) ||
		p.check(lexer.Pipe) ||
		p.check(lexer.Star) ||
		p.check(lexer.Plus) ||
		p.check(lexer.Question) {
		return nil, nil
	}

	tok := p.current()

	switch tok.Kind {
	case lexer.Literal:
		p.advance()
		return NewLiteral(tok.Char), nil

	case lexer.Dot:
		p.advance()
		return NewAnyChar(), nil

	case lexer.Tab:
		p.advance()
		return NewTab(), nil

	case lexer.Whitespace:
		p.advance()
		return NewWhitespace(), nil

	case lexer.EscapedChar:
		p.advance()
		return NewEscaped(tok.Char), nil

	case lexer.LBracket:
		return p.parseCharClass()

	case lexer.LParen:
		return p.parseGroup()

	case lexer.Caret:
		p.advance()
		return NewLiteral('^'), nil

	case lexer.Hyphen:
		p.advance()
		return NewLiteral('-'), nil

	case lexer.RBracket:
		p.advance()
		return NewLiteral(']'), nil

	default:
		return nil, p.errorf("unexpected token: %s", tok.Kind)
	}
}

// parseGroup := '(' expr ')'
func (p *Parser) parseGroup() (*AstNode, error) {
	startOffset := p.current().Offset
	if err := p.consume(lexer.LParen, "expected '('"); err != nil {
		return nil, err
	}

	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if !p.match(lexer.RParen) {
		return nil, &ParseError{Message: "unmatched '('", Pattern: p.pattern, Offset: startOffset}
	}

	return NewGroup(inner), nil
}

// parseCharClass := '[' '^'? classItem+ ']'
func (p *Parser) parseCharClass() (*AstNode, error) {
	startOffset := p.current().Offset
	if err := p.consume(lexer.LBracket, "expected '['"); err != nil {
		return nil, err
	}

	negated := p.match(lexer.Caret)

	if p.check(lexer.RBracket) {
		return nil, &ParseError{Message: "empty character class", Pattern: p.pattern, Offset: startOffset}
	}

	set := make(map[rune]struct{})
	for !p.isAtEnd() && !p.check(lexer.RBracket) {
		if err := p.parseClassItem(set); err != nil {
			return nil, err
		}
	}

	if !p.match(lexer.RBracket) {
		return nil, &ParseError{Message: "unmatched '['", Pattern: p.pattern, Offset: startOffset}
	}

	if len(set) == 0 {
		return nil, &ParseError{Message: "empty character class", Pattern: p.pattern, Offset: startOffset}
	}

	return NewCharClass(set, negated), nil
}

// parseClassItem := classChar ( '-' classChar )?
//
// \s inside a class contributes the full whitespace set in a single item,
// per the documented semantics (see SPEC_FULL.md, open question #1).
func (p *Parser) parseClassItem(set map[rune]struct{}) error {
	if p.check(lexer.Whitespace) {
		p.advance()
		for _, r := range charclass.Whitespace {
			set[r] = struct{}{}
		}
		return nil
	}

	first, err := p.classChar()
	if err != nil {
		return err
	}

	if p.check(lexer.Hyphen) && !p.isNextToken(lexer.RBracket) {
		rangeOffset := p.current().Offset
		p.advance() // consume '-'
		last, err := p.classChar()
		if err != nil {
			return err
		}
		if last < first {
			return &ParseError{
				Message: "invalid character range (descending)",
				Pattern: p.pattern,
				Offset:  rangeOffset,
			}
		}
		for r := first; r <= last; r++ {
			set[r] = struct{}{}
		}
		return nil
	}

	set[first] = struct{}{}
	return nil
}

// classChar reads a single code point for use inside a character class.
func (p *Parser) classChar() (rune, error) {
	if p.isAtEnd() {
		return 0, p.errorf("unexpected end inside character class")
	}

	tok := p.current()
	p.advance()

	switch tok.Kind {
	case lexer.Literal, lexer.EscapedChar, lexer.Caret, lexer.Hyphen,
		lexer.Star, lexer.Plus, lexer.Question, lexer.Pipe, lexer.Dot,
		lexer.LParen, lexer.RParen:
		return tok.Char, nil
	case lexer.Tab:
		return '\t', nil
	default:
		return 0, &ParseError{
			Message: "invalid character in character class: " + tok.Kind.String(),
			Pattern: p.pattern,
			Offset:  tok.Offset,
		}
	}
}

// ===== token cursor helpers =====

func (p *Parser) isAtEnd() bool {
	return p.idx >= len(p.tokens) || p.tokens[p.idx].Kind == lexer.End
}

func (p *Parser) current() lexer.Token {
	if p.idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.idx]
}

func (p *Parser) check(kind lexer.Kind) bool {
	if p.isAtEnd() {
		return kind == lexer.End
	}
	return p.current().Kind == kind
}

func (p *Parser) isNextToken(kind lexer.Kind) bool {
	if p.idx+1 >= len(p.tokens) {
		return kind == lexer.End
	}
	return p.tokens[p.idx+1].Kind == kind
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if !p.isAtEnd() {
		p.idx++
	}
	return tok
}

func (p *Parser) match(kind lexer.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(kind lexer.Kind, message string) error {
	if !p.match(kind) {
		return &ParseError{Message: message, Pattern: p.pattern, Offset: p.current().Offset}
	}
	return nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Pattern: p.pattern,
		Offset:  p.current().Offset,
	}
}
