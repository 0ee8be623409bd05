package builders

import (
	"github.com/rohaquinlop/cogniplexity/internal/adapter"
	"github.com/rohaquinlop/cogniplexity/internal/gsg"
)

// ecmaBuilder serves both JavaScript and TypeScript. TypeScript's grammar is
// a superset of JavaScript's for every statement kind this builder touches,
// so a single implementation covers both; ternaryKind lets a caller pin the
// grammar's name for the conditional expression node if it ever diverges.
type ecmaBuilder struct {
	ternaryKind string
}

func (b ecmaBuilder) BuildFunctions(root adapter.Node, source []byte) []*gsg.Node {
	return jsCollectFunctions(root, source, b.ternaryKind)
}

func jsCollectFunctions(scope adapter.Node, source []byte, ternaryKind string) []*gsg.Node {
	var out []*gsg.Node
	for i := 0; i < scope.NamedChildCount(); i++ {
		out = append(out, jsTopLevel(scope.NamedChild(i), source, ternaryKind)...)
	}
	return out
}

func jsTopLevel(n adapter.Node, source []byte, ternaryKind string) []*gsg.Node {
	switch n.Kind() {
	case "function_declaration":
		return []*gsg.Node{jsBuildFunction(n, source, "", ternaryKind)}
	case "class_declaration":
		className := identifierText(source, n.ChildByFieldName("name"))
		body := n.ChildByFieldName("body")
		var out []*gsg.Node
		for i := 0; i < body.NamedChildCount(); i++ {
			member := body.NamedChild(i)
			if member.Kind() == "method_definition" {
				out = append(out, jsBuildFunction(member, source, className, ternaryKind))
			}
		}
		return out
	case "export_statement":
		if decl := n.ChildByFieldName("declaration"); !decl.IsNull() {
			return jsTopLevel(decl, source, ternaryKind)
		}
		return nil
	default:
		return nil
	}
}

func jsName(source []byte, n adapter.Node) string {
	name := n.ChildByFieldName("name")
	if !name.IsNull() {
		return identifierText(source, name)
	}
	return firstIdentifier(n, source)
}

func jsBuildFunction(n adapter.Node, source []byte, qualifier, ternaryKind string) *gsg.Node {
	name := jsName(source, n)
	if qualifier != "" {
		name = qualifier + "." + name
	}
	body := n.ChildByFieldName("body")
	return &gsg.Node{
		Kind:     gsg.Function,
		Name:     name,
		Loc:      adapter.Loc(n),
		Children: jsBuildBlock(body, source, 0, ternaryKind),
	}
}

func jsBuildBlock(block adapter.Node, source []byte, nesting int, ternaryKind string) []*gsg.Node {
	var out []*gsg.Node
	for i := 0; i < block.NamedChildCount(); i++ {
		out = append(out, jsBuildStatement(block.NamedChild(i), source, nesting, ternaryKind)...)
	}
	return out
}

// jsBuildStatement dispatches on statement kind. Statement kinds that recurse
// into their own condition/body through a dedicated builder (if/while/for/
// do/switch/statement_block) or that build an entirely separate function
// scope of their own (function_declaration/method_definition) must not also
// be scanned for lambdas here: those builders already collect from their own
// condition/init/update fields and rebuild their bodies from scratch, so
// collecting over the whole subtree here as well would double-count every
// arrow/function expression nested inside one of them. Only leaf kinds with
// no further structural recursion collect their lambdas at this level.
func jsBuildStatement(stmt adapter.Node, source []byte, nesting int, ternaryKind string) []*gsg.Node {
	switch stmt.Kind() {
	case "function_declaration", "method_definition":
		return []*gsg.Node{jsBuildFunction(stmt, source, "", ternaryKind)}
	case "if_statement":
		return []*gsg.Node{jsBuildIf(stmt, source, nesting, ternaryKind)}
	case "while_statement":
		return []*gsg.Node{jsBuildWhile(stmt, source, nesting, ternaryKind)}
	case "for_statement", "for_in_statement":
		return []*gsg.Node{jsBuildFor(stmt, source, nesting, ternaryKind)}
	case "do_statement":
		return []*gsg.Node{jsBuildDoWhile(stmt, source, nesting, ternaryKind)}
	case "switch_statement":
		return []*gsg.Node{jsBuildSwitch(stmt, source, nesting, ternaryKind)}
	case "statement_block":
		return jsBuildBlock(stmt, source, nesting, ternaryKind)
	case "return_statement", "throw_statement", "expression_statement",
		"lexical_declaration", "variable_declaration":
		lambdas := jsCollectLambdas(stmt, source, ternaryKind)
		return append(lambdas, jsBuildExprBearingStatement(stmt, source, nesting, ternaryKind)...)
	default:
		return jsCollectLambdas(stmt, source, ternaryKind)
	}
}

func jsBuildExprBearingStatement(stmt adapter.Node, source []byte, nesting int, ternaryKind string) []*gsg.Node {
	var cost uint32
	for i := 0; i < stmt.NamedChildCount(); i++ {
		cost += binaryExprCost(stmt.NamedChild(i), source, nesting, ternaryKind)
	}
	if cost == 0 {
		return nil
	}
	return []*gsg.Node{newExpr(adapter.Loc(stmt), cost)}
}

func jsBuildIf(n adapter.Node, source []byte, nesting int, ternaryKind string) *gsg.Node {
	cond := n.ChildByFieldName("condition")
	consequence := n.ChildByFieldName("consequence")
	condCost := binaryExprCost(cond, source, nesting, ternaryKind)

	children := jsCollectLambdas(cond, source, ternaryKind)
	children = append(children, jsBuildStatement(consequence, source, nesting+1, ternaryKind)...)

	alt := n.ChildByFieldName("alternative")
	if !alt.IsNull() {
		children = append(children, jsBuildElse(alt, source, nesting, ternaryKind))
	}

	return &gsg.Node{Kind: gsg.If, Loc: adapter.Loc(n), AddlCost: condCost, Children: children}
}

func jsBuildElse(n adapter.Node, source []byte, nesting int, ternaryKind string) *gsg.Node {
	stmt := n
	if n.Kind() == "else_clause" && n.NamedChildCount() == 1 {
		stmt = n.NamedChild(0)
	}
	if stmt.Kind() == "if_statement" {
		asIf := jsBuildIf(stmt, source, nesting, ternaryKind)
		return &gsg.Node{Kind: gsg.ElseIf, Loc: asIf.Loc, AddlCost: asIf.AddlCost, Children: asIf.Children}
	}
	return &gsg.Node{Kind: gsg.Else, Loc: adapter.Loc(n), Children: jsBuildStatement(stmt, source, nesting+1, ternaryKind)}
}

func jsBuildWhile(n adapter.Node, source []byte, nesting int, ternaryKind string) *gsg.Node {
	cond := n.ChildByFieldName("condition")
	body := n.ChildByFieldName("body")
	condCost := binaryExprCost(cond, source, nesting, ternaryKind)
	children := jsCollectLambdas(cond, source, ternaryKind)
	children = append(children, jsBuildStatement(body, source, nesting+1, ternaryKind)...)
	return &gsg.Node{Kind: gsg.While, Loc: adapter.Loc(n), AddlCost: condCost, Children: children}
}

func jsBuildFor(n adapter.Node, source []byte, nesting int, ternaryKind string) *gsg.Node {
	body := n.ChildByFieldName("body")
	children := jsCollectLambdas(n.ChildByFieldName("initializer"), source, ternaryKind)
	children = append(children, jsCollectLambdas(n.ChildByFieldName("condition"), source, ternaryKind)...)
	children = append(children, jsCollectLambdas(n.ChildByFieldName("increment"), source, ternaryKind)...)
	children = append(children, jsCollectLambdas(n.ChildByFieldName("left"), source, ternaryKind)...)
	children = append(children, jsCollectLambdas(n.ChildByFieldName("right"), source, ternaryKind)...)
	children = append(children, jsBuildStatement(body, source, nesting+1, ternaryKind)...)
	return &gsg.Node{Kind: gsg.For, Loc: adapter.Loc(n), Children: children}
}

// jsBuildDoWhile follows the reference builder's quirk of costing the
// do-while condition with the raw alternation count rather than the full
// logical expression cost.
func jsBuildDoWhile(n adapter.Node, source []byte, nesting int, ternaryKind string) *gsg.Node {
	cond := n.ChildByFieldName("condition")
	body := n.ChildByFieldName("body")
	condCost := jsAlternationCount(cond, source)
	children := jsCollectLambdas(cond, source, ternaryKind)
	children = append(children, jsBuildStatement(body, source, nesting+1, ternaryKind)...)
	return &gsg.Node{Kind: gsg.DoWhile, Loc: adapter.Loc(n), AddlCost: condCost, Children: children}
}

// jsAlternationCount counts AND/OR alternations in a boolean chain without
// the base-1 and without recursing through nested independent expressions,
// mirroring the reference implementation's do-while special case.
func jsAlternationCount(n adapter.Node, source []byte) uint32 {
	n = unwrapParens(n, "parenthesized_expression")
	if n.Kind() != "binary_expression" {
		return 0
	}
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	op := binaryBoolOp(n, source)
	if op == opOther {
		return 0
	}
	var alt uint32
	if lb := binaryBoolOp(unwrapParens(left, "parenthesized_expression"), source); lb != opOther && lb != op {
		alt++
	}
	if rb := binaryBoolOp(unwrapParens(right, "parenthesized_expression"), source); rb != opOther && rb != op {
		alt++
	}
	return alt + jsAlternationCount(left, source) + jsAlternationCount(right, source)
}

func jsBuildSwitch(n adapter.Node, source []byte, nesting int, ternaryKind string) *gsg.Node {
	body := n.ChildByFieldName("body")
	cases := jsCollectLambdas(n.ChildByFieldName("value"), source, ternaryKind)
	for i := 0; i < body.NamedChildCount(); i++ {
		c := body.NamedChild(i)
		if c.Kind() != "switch_case" && c.Kind() != "switch_default" {
			continue
		}
		var caseChildren []*gsg.Node
		for j := 0; j < c.NamedChildCount(); j++ {
			caseChildren = append(caseChildren, jsBuildStatement(c.NamedChild(j), source, nesting+1, ternaryKind)...)
		}
		cases = append(cases, &gsg.Node{Kind: gsg.Case, Loc: adapter.Loc(c), Children: caseChildren})
	}
	return &gsg.Node{Kind: gsg.Switch, Loc: adapter.Loc(n), Children: cases}
}

func jsCollectLambdas(n adapter.Node, source []byte, ternaryKind string) []*gsg.Node {
	if n.IsNull() {
		return nil
	}
	switch n.Kind() {
	case "arrow_function", "function_expression":
		body := n.ChildByFieldName("body")
		var children []*gsg.Node
		if body.Kind() == "statement_block" {
			children = jsBuildBlock(body, source, 0, ternaryKind)
		} else {
			cost := binaryExprCost(body, source, 0, ternaryKind)
			if cost > 0 {
				children = append(children, newExpr(adapter.Loc(body), cost))
			}
			children = append(children, jsCollectLambdas(body, source, ternaryKind)...)
		}
		return []*gsg.Node{{Kind: gsg.Function, Name: lambdaName(n), Loc: adapter.Loc(n), Children: children}}
	}
	var out []*gsg.Node
	for i := 0; i < n.NamedChildCount(); i++ {
		out = append(out, jsCollectLambdas(n.NamedChild(i), source, ternaryKind)...)
	}
	return out
}
