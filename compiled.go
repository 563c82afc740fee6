package regexcore

import (
	"time"

	"github.com/rickm/regexcore/parser"
)

// CompiledPattern is the artifact produced by compiling a pattern string:
// its AST, how long that took, and a pretty-printed tree kept only for
// diagnostics.
type CompiledPattern struct {
	Pattern        string
	AST            *parser.AstNode
	CompileElapsed time.Duration
	Pretty         string
}

func compilePattern(pattern string) (*CompiledPattern, error) {
	start := time.Now()
	ast, err := parser.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return &CompiledPattern{
		Pattern:        pattern,
		AST:            ast,
		CompileElapsed: time.Since(start),
		Pretty:         ast.String(),
	}, nil
}
