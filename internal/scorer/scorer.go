// Package scorer implements the single, language-independent cognitive
// complexity traversal over a General Syntax Graph. It is grounded on the
// reference scorer's switch-over-node-kind shape, adapted to the explicit
// Try/Else/Finally wrapper nodes the builders now emit and to independent
// nested-function scoring, which is done by the caller: this package never
// descends into a nested Function node, it only reports that it stopped.
package scorer

import "github.com/rohaquinlop/cogniplexity/internal/gsg"

// Score computes the cognitive complexity of a single function's body,
// starting at the given nesting level. A top-level function passes 0; the
// engine passes a nested function the count of functions enclosing it,
// whatever the control-flow depth of its definition site. Nested Function
// children are not visited here: callers score those independently and add
// them as separate results.
func Score(fn *gsg.Node, startNesting int) (uint32, []gsg.LineComplexity) {
	children := fn.Children
	if inner, ok := decoratorFactoryInner(fn); ok {
		children = inner.Children
	}

	var total uint32
	var lines []gsg.LineComplexity
	for _, child := range children {
		c, l := score(child, startNesting)
		total += c
		lines = append(lines, l...)
	}
	return total, lines
}

// decoratorFactoryInner returns the nested Function a decorator-factory
// function was marked as wrapping, so its score can be computed from that
// function's children instead of its own.
func decoratorFactoryInner(fn *gsg.Node) (*gsg.Node, bool) {
	if !fn.DecoratorFactory || len(fn.Children) == 0 {
		return nil, false
	}
	if inner := fn.Children[0]; inner != nil && inner.Kind == gsg.Function {
		return inner, true
	}
	return nil, false
}

func score(n *gsg.Node, nesting int) (uint32, []gsg.LineComplexity) {
	if n == nil {
		return 0, nil
	}

	switch n.Kind {
	case gsg.Function:
		// Nested functions are scored independently by the engine.
		return 0, nil

	case gsg.For, gsg.While, gsg.DoWhile:
		return structural(n, nesting, uint32(1+nesting)+n.AddlCost)

	case gsg.If:
		return conditional(n, nesting, uint32(1+nesting)+n.AddlCost)

	case gsg.Switch:
		// Own cost is 0; Case children see the same nesting level Switch was
		// scored at, since Case is the one that opens the deeper level.
		return sumChildren(n.Children, nesting)

	case gsg.Case:
		return structural(n, nesting, 0)

	case gsg.ElseIf:
		return conditional(n, nesting, n.AddlCost)

	case gsg.Else:
		return structural(n, nesting, 0)

	case gsg.With:
		return structural(n, nesting, n.AddlCost)

	case gsg.Try, gsg.Finally:
		return structural(n, nesting, 0)

	case gsg.Except:
		return structural(n, nesting, n.AddlCost)

	case gsg.Ternary:
		return structural(n, nesting, uint32(1+nesting)+n.AddlCost)

	case gsg.Expr:
		return contribute(n, n.AddlCost, 0, nil)

	case gsg.Return, gsg.Break, gsg.Continue:
		return sumChildren(n.Children, nesting)

	default: // Block, Class, Root, NodeUnknown: transparent grouping
		return sumChildren(n.Children, nesting)
	}
}

// structural scores a node that opens a new nesting level: it contributes
// own, then recurses into its children one level deeper.
func structural(n *gsg.Node, nesting int, own uint32) (uint32, []gsg.LineComplexity) {
	childCost, childLines := sumChildren(n.Children, nesting+1)
	return contribute(n, own, childCost, childLines)
}

// conditional scores an If or ElseIf: its body opens a new nesting level like
// any other structural node, but a chained ElseIf/Else child is a sibling
// branch of the same decision, not a deeper block, so it stays at the
// current nesting instead of following the body down a level.
func conditional(n *gsg.Node, nesting int, own uint32) (uint32, []gsg.LineComplexity) {
	var childCost uint32
	var childLines []gsg.LineComplexity
	for _, c := range n.Children {
		var cc uint32
		var cl []gsg.LineComplexity
		if c != nil && (c.Kind == gsg.ElseIf || c.Kind == gsg.Else) {
			cc, cl = score(c, nesting)
		} else {
			cc, cl = score(c, nesting+1)
		}
		childCost += cc
		childLines = append(childLines, cl...)
	}
	return contribute(n, own, childCost, childLines)
}

func sumChildren(children []*gsg.Node, nesting int) (uint32, []gsg.LineComplexity) {
	var total uint32
	var lines []gsg.LineComplexity
	for _, c := range children {
		cc, cl := score(c, nesting)
		total += cc
		lines = append(lines, cl...)
	}
	return total, lines
}

func contribute(n *gsg.Node, own uint32, childCost uint32, childLines []gsg.LineComplexity) (uint32, []gsg.LineComplexity) {
	lines := childLines
	if own > 0 {
		lines = append([]gsg.LineComplexity{{Loc: n.Loc, Contribution: own}}, lines...)
	}
	return own + childCost, lines
}
