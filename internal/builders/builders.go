package builders

import (
	"fmt"

	"github.com/rohaquinlop/cogniplexity/internal/adapter"
	"github.com/rohaquinlop/cogniplexity/internal/gsg"
)

// Builder turns a parsed root node into the top-level Function nodes of a
// General Syntax Graph. Nested functions are not returned here: they appear
// as Function children inside the bodies this builder produces, and the
// engine discovers them by walking the resulting tree.
type Builder interface {
	BuildFunctions(root adapter.Node, source []byte) []*gsg.Node
}

// For returns the builder for lang. C and C++ share one builder, as do
// JavaScript and TypeScript: their grammars diverge only in a handful of
// node kinds already parameterized below.
func For(lang gsg.Language) (Builder, error) {
	switch lang {
	case gsg.Python:
		return pythonBuilder{}, nil
	case gsg.C, gsg.Cpp:
		return clikeBuilder{}, nil
	case gsg.JavaScript:
		return ecmaBuilder{ternaryKind: "ternary_expression"}, nil
	case gsg.TypeScript:
		return ecmaBuilder{ternaryKind: "ternary_expression"}, nil
	default:
		return nil, fmt.Errorf("no builder for language: %s", lang)
	}
}

func identifierText(source []byte, n adapter.Node) string {
	if n.IsNull() {
		return ""
	}
	return string(adapter.Slice(source, n))
}

func lambdaName(n adapter.Node) string {
	row, col := n.StartPoint()
	return fmt.Sprintf("lambda@%d:%d", row, col)
}
