// Package builders holds the per-language General Syntax Graph builders.
// Each builder is the only place that knows its grammar's kind vocabulary;
// the scorer downstream depends only on the closed gsg.NodeKind set.
package builders

import (
	"bytes"

	"github.com/rohaquinlop/cogniplexity/internal/adapter"
	"github.com/rohaquinlop/cogniplexity/internal/gsg"
)

type boolOp int

const (
	opOther boolOp = iota
	opAnd
	opOr
)

func unwrapParens(n adapter.Node, parenKind string) adapter.Node {
	for !n.IsNull() && n.Kind() == parenKind {
		inner := n.ChildByFieldName("expression")
		if inner.IsNull() && n.NamedChildCount() == 1 {
			inner = n.NamedChild(0)
		}
		if inner.IsNull() {
			break
		}
		n = inner
	}
	return n
}

func betweenText(source []byte, left, right adapter.Node) []byte {
	if left.IsNull() || right.IsNull() {
		return nil
	}
	a, b := left.EndByte(), right.StartByte()
	if a > b || int(b) > len(source) {
		return nil
	}
	return bytes.TrimSpace(source[a:b])
}

// pythonExprCost computes the expression cost of a Python subexpression per
// the uniform semantics shared by every language this package builds for: a
// base of 1 the first time a logical chain (a run of "and"/"or") is entered,
// +1 for every alternation between AND and OR found anywhere in that chain,
// +1 flat for a bare "not" wherever it appears, and 1+nesting for a ternary,
// with parentheses transparent throughout.
func pythonExprCost(n adapter.Node, source []byte, nesting int) uint32 {
	if n.IsNull() {
		return 0
	}
	n = unwrapParens(n, "parenthesized_expression")
	switch n.Kind() {
	case "lambda":
		// scored independently as its own Function node; contributes nothing here.
		return 0
	case "not_operator":
		return 1 + pythonExprCost(n.ChildByFieldName("argument"), source, nesting)
	case "boolean_operator":
		return 1 + pythonChainCost(n, source, nesting)
	case "conditional_expression":
		cost := uint32(1) + uint32(nesting)
		for i := 0; i < n.NamedChildCount(); i++ {
			cost += pythonExprCost(n.NamedChild(i), source, nesting)
		}
		return cost
	default:
		var total uint32
		for i := 0; i < n.NamedChildCount(); i++ {
			total += pythonExprCost(n.NamedChild(i), source, nesting)
		}
		return total
	}
}

// pythonChainCost walks a run of "and"/"or" operators without re-adding the
// base cost pythonExprCost already charged once for the whole chain: it only
// counts alternations between differing operators and the cost of whatever
// hangs off the chain's edges (a nested "not", ternary, or unrelated
// subexpression, each of which is free to start its own chain and its own
// base cost).
func pythonChainCost(n adapter.Node, source []byte, nesting int) uint32 {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	op := pythonBoolOp(n, source)

	var alt uint32
	if lb := pythonBoolOp(unwrapParens(left, "parenthesized_expression"), source); lb != opOther && lb != op {
		alt++
	}
	if rb := pythonBoolOp(unwrapParens(right, "parenthesized_expression"), source); rb != opOther && rb != op {
		alt++
	}
	return alt + pythonChainEdgeCost(left, source, nesting) + pythonChainEdgeCost(right, source, nesting)
}

// pythonChainEdgeCost continues into an operand of a boolean chain: another
// boolean_operator extends the same chain (no new base), anything else falls
// back to pythonExprCost so it can start a chain, a not, or a ternary of its own.
func pythonChainEdgeCost(n adapter.Node, source []byte, nesting int) uint32 {
	n = unwrapParens(n, "parenthesized_expression")
	if n.Kind() == "boolean_operator" {
		return pythonChainCost(n, source, nesting)
	}
	return pythonExprCost(n, source, nesting)
}

func pythonBoolOp(n adapter.Node, source []byte) boolOp {
	if n.IsNull() || n.Kind() != "boolean_operator" {
		return opOther
	}
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	switch string(betweenText(source, left, right)) {
	case "and":
		return opAnd
	case "or":
		return opOr
	default:
		return opOther
	}
}

// binaryExprCost computes expression cost for the C-like and ECMAScript-like
// builders, whose grammars expose a real "operator" field on binary and
// unary expressions. ternaryKind differs per grammar ("conditional_expression"
// for C/C++, "ternary_expression" for JS/TS).
func binaryExprCost(n adapter.Node, source []byte, nesting int, ternaryKind string) uint32 {
	if n.IsNull() {
		return 0
	}
	n = unwrapParens(n, "parenthesized_expression")
	switch n.Kind() {
	case "arrow_function", "function_expression", "function_declaration", "lambda_expression", "method_definition":
		// scored independently as its own Function node; contributes nothing here.
		return 0
	case "unary_expression":
		if string(adapter.Slice(source, n.ChildByFieldName("operator"))) == "!" {
			return 1 + binaryExprCost(n.ChildByFieldName("argument"), source, nesting, ternaryKind)
		}
		return binaryExprCost(n.ChildByFieldName("argument"), source, nesting, ternaryKind)
	case "binary_expression":
		if binaryBoolOp(n, source) == opOther {
			left := n.ChildByFieldName("left")
			right := n.ChildByFieldName("right")
			return binaryExprCost(left, source, nesting, ternaryKind) + binaryExprCost(right, source, nesting, ternaryKind)
		}
		return 1 + binaryChainCost(n, source, nesting, ternaryKind)
	default:
		if n.Kind() == ternaryKind {
			cost := uint32(1) + uint32(nesting)
			for i := 0; i < n.NamedChildCount(); i++ {
				cost += binaryExprCost(n.NamedChild(i), source, nesting, ternaryKind)
			}
			return cost
		}
		var total uint32
		for i := 0; i < n.NamedChildCount(); i++ {
			total += binaryExprCost(n.NamedChild(i), source, nesting, ternaryKind)
		}
		return total
	}
}

// binaryChainCost is binaryExprCost's counterpart to pythonChainCost: it
// counts alternations through a run of "&&"/"||" without re-adding the base
// binaryExprCost already charged once for the whole chain.
func binaryChainCost(n adapter.Node, source []byte, nesting int, ternaryKind string) uint32 {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	op := binaryBoolOp(n, source)

	var alt uint32
	if lb := binaryBoolOp(unwrapParens(left, "parenthesized_expression"), source); lb != opOther && lb != op {
		alt++
	}
	if rb := binaryBoolOp(unwrapParens(right, "parenthesized_expression"), source); rb != opOther && rb != op {
		alt++
	}
	return alt + binaryChainEdgeCost(left, source, nesting, ternaryKind) + binaryChainEdgeCost(right, source, nesting, ternaryKind)
}

func binaryChainEdgeCost(n adapter.Node, source []byte, nesting int, ternaryKind string) uint32 {
	n = unwrapParens(n, "parenthesized_expression")
	if n.Kind() == "binary_expression" && binaryBoolOp(n, source) != opOther {
		return binaryChainCost(n, source, nesting, ternaryKind)
	}
	return binaryExprCost(n, source, nesting, ternaryKind)
}

func binaryBoolOp(n adapter.Node, source []byte) boolOp {
	if n.IsNull() || n.Kind() != "binary_expression" {
		return opOther
	}
	switch string(adapter.Slice(source, n.ChildByFieldName("operator"))) {
	case "&&":
		return opAnd
	case "||":
		return opOr
	default:
		return opOther
	}
}

// sumChildren is a small helper used by builders when a construct's
// "additional cost" is the sum of the expression cost of several children
// (the items of a Python with statement).
func sumChildren(n adapter.Node, source []byte, nesting int, cost func(adapter.Node, []byte, int) uint32) uint32 {
	var total uint32
	for i := 0; i < n.NamedChildCount(); i++ {
		total += cost(n.NamedChild(i), source, nesting)
	}
	return total
}

func newExpr(loc gsg.SourceLoc, addlCost uint32) *gsg.Node {
	return &gsg.Node{Kind: gsg.Expr, Loc: loc, AddlCost: addlCost}
}
