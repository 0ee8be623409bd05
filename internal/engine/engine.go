// Package engine is the analysis entry point: it parses source with the
// syntax adapter, builds a General Syntax Graph with the language's builder,
// discovers every function depth-first (including functions nested inside
// other functions), and scores each one independently.
package engine

import (
	"context"
	"fmt"

	"github.com/rohaquinlop/cogniplexity/internal/adapter"
	"github.com/rohaquinlop/cogniplexity/internal/builders"
	"github.com/rohaquinlop/cogniplexity/internal/gsg"
	"github.com/rohaquinlop/cogniplexity/internal/scorer"
)

// Engine parses and scores source files. It owns a single adapter.Parser,
// which is not safe for concurrent use, mirroring tree-sitter's own parser
// contract.
type Engine struct {
	parser *adapter.Parser
}

// New creates an Engine backed by the tree-sitter syntax adapter.
func New() *Engine {
	return &Engine{parser: adapter.NewParser()}
}

// Analyze parses source under lang and returns one FunctionComplexity per
// function found, including functions nested inside other functions: each
// is scored independently and never summed into its enclosing function.
// An Unknown language yields no functions and no error.
func (e *Engine) Analyze(ctx context.Context, source []byte, lang gsg.Language) ([]gsg.FunctionComplexity, error) {
	if lang == gsg.Unknown {
		return nil, nil
	}

	root, err := e.parser.Parse(ctx, source, lang)
	if err != nil {
		return nil, fmt.Errorf("engine: parse: %w", err)
	}

	builder, err := builders.For(lang)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	topLevel := builder.BuildFunctions(root, source)
	functions := discoverFunctions(topLevel, 0)

	results := make([]gsg.FunctionComplexity, 0, len(functions))
	for _, fn := range functions {
		complexity, lines := scorer.Score(fn.node, fn.depth)
		results = append(results, gsg.FunctionComplexity{
			Name:       fn.node.Name,
			Complexity: complexity,
			Loc:        fn.node.Loc,
			Lines:      lines,
		})
	}
	return results, nil
}

// nestedFunction pairs a discovered Function node with its depth: the count
// of Function nodes enclosing it, root functions at depth 0. This is the
// starting nesting level it is scored at, independent of how deep it sits in
// its enclosing function's control flow.
type nestedFunction struct {
	node  *gsg.Node
	depth int
}

// discoverFunctions walks nodes depth-first, pre-order, collecting every
// Function node regardless of how deeply it is nested. A Function node's own
// children are walked at depth+1, so a lambda defined three functions deep
// is still found and starts its own score at nesting 3.
func discoverFunctions(nodes []*gsg.Node, depth int) []nestedFunction {
	var out []nestedFunction
	for _, n := range nodes {
		if n.Kind == gsg.Function {
			out = append(out, nestedFunction{n, depth})
			out = append(out, discoverFunctions(n.Children, depth+1)...)
			continue
		}
		out = append(out, discoverFunctions(n.Children, depth)...)
	}
	return out
}
