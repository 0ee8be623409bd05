package builders

import (
	"github.com/rohaquinlop/cogniplexity/internal/adapter"
	"github.com/rohaquinlop/cogniplexity/internal/gsg"
)

// clikeBuilder serves both C and C++: their grammars share the statement
// vocabulary this builder dispatches on. Qualified names accumulate the
// enclosing namespace/class/struct chain the way a C++ compiler would.
type clikeBuilder struct{}

const ternaryKindC = "conditional_expression"

func (clikeBuilder) BuildFunctions(root adapter.Node, source []byte) []*gsg.Node {
	return cCollectFunctions(root, source, "")
}

func cCollectFunctions(scope adapter.Node, source []byte, qualifier string) []*gsg.Node {
	var out []*gsg.Node
	for i := 0; i < scope.NamedChildCount(); i++ {
		out = append(out, cTopLevel(scope.NamedChild(i), source, qualifier)...)
	}
	return out
}

func cTopLevel(n adapter.Node, source []byte, qualifier string) []*gsg.Node {
	switch n.Kind() {
	case "function_definition":
		return []*gsg.Node{cBuildFunction(n, source, qualifier)}
	case "template_declaration":
		var out []*gsg.Node
		for i := 0; i < n.NamedChildCount(); i++ {
			out = append(out, cTopLevel(n.NamedChild(i), source, qualifier)...)
		}
		return out
	case "namespace_definition", "class_specifier", "struct_specifier", "union_specifier":
		name := identifierText(source, n.ChildByFieldName("name"))
		newQualifier := name
		if qualifier != "" && name != "" {
			newQualifier = qualifier + "::" + name
		} else if qualifier != "" {
			newQualifier = qualifier
		}
		body := n.ChildByFieldName("body")
		return cCollectFunctions(body, source, newQualifier)
	default:
		return nil
	}
}

// cFunctionName extracts a declarator's function name: the substring up to
// the first '(', with leading pointer/reference/parenthesis tokens trimmed,
// falling back to the first identifier-like descendant.
func cFunctionName(source []byte, declarator adapter.Node) string {
	if declarator.IsNull() {
		return ""
	}
	text := string(adapter.Slice(source, declarator))
	if idx := indexByte(text, '('); idx >= 0 {
		text = text[:idx]
	}
	text = trimLeadingPunct(text)
	if text != "" {
		return text
	}
	return firstIdentifier(declarator, source)
}

func cBuildFunction(n adapter.Node, source []byte, qualifier string) *gsg.Node {
	declarator := n.ChildByFieldName("declarator")
	name := cFunctionName(source, declarator)
	if qualifier != "" && name != "" {
		name = qualifier + "::" + name
	}
	body := n.ChildByFieldName("body")
	return &gsg.Node{
		Kind:     gsg.Function,
		Name:     name,
		Loc:      adapter.Loc(n),
		Children: cBuildBlock(body, source, 0),
	}
}

func cBuildBlock(block adapter.Node, source []byte, nesting int) []*gsg.Node {
	var out []*gsg.Node
	for i := 0; i < block.NamedChildCount(); i++ {
		out = append(out, cBuildStatement(block.NamedChild(i), source, nesting)...)
	}
	return out
}

// cBuildStatement dispatches on statement kind. Statement kinds that recurse
// into their own condition/body through a dedicated builder (if/while/for/
// do/switch/compound) must not also be scanned for lambdas here: those
// builders already collect from their own condition/init/update fields and
// recurse into their bodies via cBuildStatement itself, so collecting over
// the whole subtree here as well would double-count every lambda nested
// inside one of them. Only leaf kinds with no further structural recursion
// collect their lambdas at this level.
func cBuildStatement(stmt adapter.Node, source []byte, nesting int) []*gsg.Node {
	switch stmt.Kind() {
	case "if_statement":
		return []*gsg.Node{cBuildIf(stmt, source, nesting)}
	case "while_statement":
		return []*gsg.Node{cBuildWhile(stmt, source, nesting)}
	case "for_statement", "for_range_loop":
		return []*gsg.Node{cBuildFor(stmt, source, nesting)}
	case "do_statement":
		return []*gsg.Node{cBuildDoWhile(stmt, source, nesting)}
	case "switch_statement":
		return []*gsg.Node{cBuildSwitch(stmt, source, nesting)}
	case "compound_statement":
		return cBuildBlock(stmt, source, nesting)
	case "return_statement", "expression_statement", "declaration":
		lambdas := cCollectLambdas(stmt, source)
		return append(lambdas, cBuildExprBearingStatement(stmt, source, nesting)...)
	default:
		return cCollectLambdas(stmt, source)
	}
}

func cBuildExprBearingStatement(stmt adapter.Node, source []byte, nesting int) []*gsg.Node {
	var cost uint32
	for i := 0; i < stmt.NamedChildCount(); i++ {
		cost += binaryExprCost(stmt.NamedChild(i), source, nesting, ternaryKindC)
	}
	if cost == 0 {
		return nil
	}
	return []*gsg.Node{newExpr(adapter.Loc(stmt), cost)}
}

// cBuildIf builds an If node; its else branch goes through cBuildElse, which
// normalizes an alternative that is itself an if_statement (bare or alone in
// braces) into an ElseIf, matching how "else { if (...) { ... } }" reads in
// cognitive-complexity tools as a single else-if chain link.
func cBuildIf(n adapter.Node, source []byte, nesting int) *gsg.Node {
	cond := n.ChildByFieldName("condition")
	consequence := n.ChildByFieldName("consequence")
	condCost := binaryExprCost(cond, source, nesting, ternaryKindC)

	children := cCollectLambdas(cond, source)
	children = append(children, cBuildStatement(consequence, source, nesting+1)...)

	alt := n.ChildByFieldName("alternative")
	if !alt.IsNull() {
		children = append(children, cBuildElse(alt, source, nesting))
	}

	return &gsg.Node{Kind: gsg.If, Loc: adapter.Loc(n), AddlCost: condCost, Children: children}
}

func cBuildElse(n adapter.Node, source []byte, nesting int) *gsg.Node {
	stmt := n
	if n.Kind() == "else_clause" && n.NamedChildCount() == 1 {
		stmt = n.NamedChild(0)
	}
	if inner := singleIfInside(stmt); !inner.IsNull() {
		asIf := cBuildIf(inner, source, nesting)
		return &gsg.Node{Kind: gsg.ElseIf, Loc: asIf.Loc, AddlCost: asIf.AddlCost, Children: asIf.Children}
	}
	return &gsg.Node{Kind: gsg.Else, Loc: adapter.Loc(n), Children: cBuildStatement(stmt, source, nesting+1)}
}

// singleIfInside returns the sole if_statement inside n when n is either
// that if_statement directly or a compound_statement wrapping only it.
func singleIfInside(n adapter.Node) adapter.Node {
	if n.Kind() == "if_statement" {
		return n
	}
	if n.Kind() == "compound_statement" && n.NamedChildCount() == 1 && n.NamedChild(0).Kind() == "if_statement" {
		return n.NamedChild(0)
	}
	return adapterNull()
}

func cBuildWhile(n adapter.Node, source []byte, nesting int) *gsg.Node {
	cond := n.ChildByFieldName("condition")
	body := n.ChildByFieldName("body")
	condCost := binaryExprCost(cond, source, nesting, ternaryKindC)
	children := cCollectLambdas(cond, source)
	children = append(children, cBuildStatement(body, source, nesting+1)...)
	return &gsg.Node{Kind: gsg.While, Loc: adapter.Loc(n), AddlCost: condCost, Children: children}
}

// cBuildFor carries no condition cost: matching the Python for-loop, the
// iteration clause is not treated as a boolean decision.
func cBuildFor(n adapter.Node, source []byte, nesting int) *gsg.Node {
	body := n.ChildByFieldName("body")
	children := cCollectLambdas(n.ChildByFieldName("initializer"), source)
	children = append(children, cCollectLambdas(n.ChildByFieldName("condition"), source)...)
	children = append(children, cCollectLambdas(n.ChildByFieldName("update"), source)...)
	children = append(children, cCollectLambdas(n.ChildByFieldName("right"), source)...)
	children = append(children, cBuildStatement(body, source, nesting+1)...)
	return &gsg.Node{Kind: gsg.For, Loc: adapter.Loc(n), Children: children}
}

func cBuildDoWhile(n adapter.Node, source []byte, nesting int) *gsg.Node {
	cond := n.ChildByFieldName("condition")
	body := n.ChildByFieldName("body")
	condCost := binaryExprCost(cond, source, nesting, ternaryKindC)
	children := cCollectLambdas(cond, source)
	children = append(children, cBuildStatement(body, source, nesting+1)...)
	return &gsg.Node{Kind: gsg.DoWhile, Loc: adapter.Loc(n), AddlCost: condCost, Children: children}
}

func cBuildSwitch(n adapter.Node, source []byte, nesting int) *gsg.Node {
	body := n.ChildByFieldName("body")
	cases := cCollectLambdas(n.ChildByFieldName("condition"), source)
	for i := 0; i < body.NamedChildCount(); i++ {
		c := body.NamedChild(i)
		if c.Kind() != "case_statement" {
			continue
		}
		var caseChildren []*gsg.Node
		for j := 0; j < c.NamedChildCount(); j++ {
			caseChildren = append(caseChildren, cBuildStatement(c.NamedChild(j), source, nesting+1)...)
		}
		cases = append(cases, &gsg.Node{Kind: gsg.Case, Loc: adapter.Loc(c), Children: caseChildren})
	}
	return &gsg.Node{Kind: gsg.Switch, Loc: adapter.Loc(n), Children: cases}
}

func cCollectLambdas(n adapter.Node, source []byte) []*gsg.Node {
	if n.IsNull() {
		return nil
	}
	if n.Kind() == "lambda_expression" {
		body := n.ChildByFieldName("body")
		return []*gsg.Node{{
			Kind:     gsg.Function,
			Name:     lambdaName(n),
			Loc:      adapter.Loc(n),
			Children: cBuildStatement(body, source, 0),
		}}
	}
	var out []*gsg.Node
	for i := 0; i < n.NamedChildCount(); i++ {
		out = append(out, cCollectLambdas(n.NamedChild(i), source)...)
	}
	return out
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func trimLeadingPunct(s string) string {
	for len(s) > 0 && (s[0] == '*' || s[0] == '&' || s[0] == '(' || s[0] == ' ' || s[0] == '\t' || s[0] == '\n') {
		s = s[1:]
	}
	return s
}

func firstIdentifier(n adapter.Node, source []byte) string {
	if n.Kind() == "identifier" || n.Kind() == "field_identifier" {
		return string(adapter.Slice(source, n))
	}
	for i := 0; i < n.NamedChildCount(); i++ {
		if id := firstIdentifier(n.NamedChild(i), source); id != "" {
			return id
		}
	}
	return ""
}

func adapterNull() adapter.Node {
	return nullNode{}
}

type nullNode struct{}

func (nullNode) Kind() string                         { return "" }
func (nullNode) NamedChildCount() int                 { return 0 }
func (nullNode) NamedChild(int) adapter.Node          { return nullNode{} }
func (nullNode) ChildByFieldName(string) adapter.Node { return nullNode{} }
func (nullNode) StartByte() uint32                    { return 0 }
func (nullNode) EndByte() uint32                      { return 0 }
func (nullNode) StartPoint() (uint32, uint32)         { return 0, 0 }
func (nullNode) EndPoint() (uint32, uint32)           { return 0, 0 }
func (nullNode) IsNull() bool                         { return true }
