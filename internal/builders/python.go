package builders

import (
	"github.com/rohaquinlop/cogniplexity/internal/adapter"
	"github.com/rohaquinlop/cogniplexity/internal/gsg"
)

// pythonBuilder walks a tree-sitter-python concrete syntax tree into the
// General Syntax Graph. It is grounded on the reference Python builder's
// statement dispatch, with one deliberate correction: try_statement emits
// explicit Try/Else/Finally wrapper nodes instead of inlining their bodies,
// so the scorer's dispatch table can attribute nesting to each independently.
type pythonBuilder struct{}

func (pythonBuilder) BuildFunctions(root adapter.Node, source []byte) []*gsg.Node {
	return pyCollectFunctions(root, source, "")
}

func pyCollectFunctions(scope adapter.Node, source []byte, qualifier string) []*gsg.Node {
	var out []*gsg.Node
	for i := 0; i < scope.NamedChildCount(); i++ {
		out = append(out, pyTopLevel(scope.NamedChild(i), source, qualifier)...)
	}
	return out
}

func pyTopLevel(n adapter.Node, source []byte, qualifier string) []*gsg.Node {
	switch n.Kind() {
	case "function_definition":
		return []*gsg.Node{pyBuildFunction(n, source, qualifier)}
	case "class_definition":
		name := identifierText(source, n.ChildByFieldName("name"))
		newQualifier := name
		if qualifier != "" {
			newQualifier = qualifier + "." + name
		}
		return pyCollectFunctions(n.ChildByFieldName("body"), source, newQualifier)
	case "decorated_definition":
		return pyTopLevel(n.ChildByFieldName("definition"), source, qualifier)
	default:
		return nil
	}
}

func pyBuildFunction(n adapter.Node, source []byte, qualifier string) *gsg.Node {
	name := identifierText(source, n.ChildByFieldName("name"))
	if qualifier != "" {
		name = qualifier + "." + name
	}
	body := n.ChildByFieldName("body")
	return &gsg.Node{
		Kind:             gsg.Function,
		Name:             name,
		Loc:              adapter.Loc(n),
		Children:         pyBuildBlock(body, source, 0),
		DecoratorFactory: isDecoratorFactoryBody(body, source),
	}
}

// isDecoratorFactoryBody recognizes the two-statement decorator-factory
// shape: a nested function definition immediately followed by a bare
// "return <that function's name>" and nothing else.
func isDecoratorFactoryBody(body adapter.Node, source []byte) bool {
	if body.NamedChildCount() != 2 {
		return false
	}
	def := body.NamedChild(0)
	ret := body.NamedChild(1)
	if def.Kind() != "function_definition" || ret.Kind() != "return_statement" {
		return false
	}
	if ret.NamedChildCount() != 1 {
		return false
	}
	innerName := identifierText(source, def.ChildByFieldName("name"))
	returned := ret.NamedChild(0)
	return returned.Kind() == "identifier" && string(adapter.Slice(source, returned)) == innerName
}

func pyBuildBlock(block adapter.Node, source []byte, nesting int) []*gsg.Node {
	var out []*gsg.Node
	for i := 0; i < block.NamedChildCount(); i++ {
		out = append(out, pyBuildStatement(block.NamedChild(i), source, nesting)...)
	}
	return out
}

func pyBuildStatement(stmt adapter.Node, source []byte, nesting int) []*gsg.Node {
	switch stmt.Kind() {
	case "function_definition":
		return []*gsg.Node{pyBuildFunction(stmt, source, "")}
	case "class_definition":
		return pyTopLevel(stmt, source, "")
	case "decorated_definition":
		return pyTopLevel(stmt, source, "")
	case "if_statement":
		return []*gsg.Node{pyBuildIf(stmt, source, nesting)}
	case "for_statement":
		return []*gsg.Node{pyBuildFor(stmt, source, nesting)}
	case "while_statement":
		return []*gsg.Node{pyBuildWhile(stmt, source, nesting)}
	case "try_statement":
		return []*gsg.Node{pyBuildTry(stmt, source, nesting)}
	case "with_statement":
		return pyBuildWith(stmt, source, nesting)
	case "match_statement":
		return pyBuildMatch(stmt, source, nesting)
	case "return_statement", "expression_statement", "assert_statement", "raise_statement",
		"assignment", "augmented_assignment":
		return pyBuildExprBearingStatement(stmt, source, nesting)
	default:
		return nil
	}
}

// pyBuildExprBearingStatement handles any statement whose only contribution
// is the expression cost of the values it carries, plus any lambdas nested
// inside those values.
func pyBuildExprBearingStatement(stmt adapter.Node, source []byte, nesting int) []*gsg.Node {
	var out []*gsg.Node
	var cost uint32
	for i := 0; i < stmt.NamedChildCount(); i++ {
		child := stmt.NamedChild(i)
		cost += pythonExprCost(child, source, nesting)
		out = append(out, pyCollectLambdas(child, source)...)
	}
	if cost > 0 {
		out = append([]*gsg.Node{newExpr(adapter.Loc(stmt), cost)}, out...)
	}
	return out
}

func pyBuildIf(n adapter.Node, source []byte, nesting int) *gsg.Node {
	cond := n.ChildByFieldName("condition")
	body := n.ChildByFieldName("consequence")
	condCost := pythonExprCost(cond, source, nesting)

	children := pyCollectLambdas(cond, source)
	children = append(children, pyBuildBlock(body, source, nesting+1)...)

	var links []*gsg.Node
	for i := 0; i < n.NamedChildCount(); i++ {
		if c := n.NamedChild(i); c.Kind() == "elif_clause" || c.Kind() == "else_clause" {
			links = append(links, pyBuildElse(c, source, nesting))
		}
	}
	for i := len(links) - 1; i > 0; i-- {
		links[i-1].Children = append(links[i-1].Children, links[i])
	}
	if len(links) > 0 {
		children = append(children, links[0])
	}

	return &gsg.Node{Kind: gsg.If, Loc: adapter.Loc(n), AddlCost: condCost, Children: children}
}

func pyBuildElse(n adapter.Node, source []byte, nesting int) *gsg.Node {
	switch n.Kind() {
	case "elif_clause":
		cond := n.ChildByFieldName("condition")
		body := n.ChildByFieldName("consequence")
		condCost := pythonExprCost(cond, source, nesting)
		children := pyCollectLambdas(cond, source)
		children = append(children, pyBuildBlock(body, source, nesting+1)...)
		alt := n.ChildByFieldName("alternative")
		if !alt.IsNull() {
			children = append(children, pyBuildElse(alt, source, nesting))
		}
		return &gsg.Node{Kind: gsg.ElseIf, Loc: adapter.Loc(n), AddlCost: condCost, Children: children}
	case "else_clause":
		body := n.ChildByFieldName("body")
		if inner := pySingleIfInside(body); !inner.IsNull() {
			asIf := pyBuildIf(inner, source, nesting)
			return &gsg.Node{Kind: gsg.ElseIf, Loc: asIf.Loc, AddlCost: asIf.AddlCost, Children: asIf.Children}
		}
		return &gsg.Node{Kind: gsg.Else, Loc: adapter.Loc(n), Children: pyBuildBlock(body, source, nesting+1)}
	default:
		return &gsg.Node{Kind: gsg.Else, Loc: adapter.Loc(n), Children: pyBuildBlock(n, source, nesting+1)}
	}
}

// pySingleIfInside returns the sole if_statement inside an else_clause's
// body when that body holds nothing else, so "else:\n  if ...:" normalizes
// into the same ElseIf chain link an "elif" would produce.
func pySingleIfInside(body adapter.Node) adapter.Node {
	if body.NamedChildCount() == 1 && body.NamedChild(0).Kind() == "if_statement" {
		return body.NamedChild(0)
	}
	return adapterNull()
}

func pyBuildFor(n adapter.Node, source []byte, nesting int) *gsg.Node {
	body := n.ChildByFieldName("body")
	return &gsg.Node{Kind: gsg.For, Loc: adapter.Loc(n), Children: pyBuildBlock(body, source, nesting+1)}
}

func pyBuildWhile(n adapter.Node, source []byte, nesting int) *gsg.Node {
	cond := n.ChildByFieldName("condition")
	body := n.ChildByFieldName("body")
	condCost := pythonExprCost(cond, source, nesting)
	children := pyCollectLambdas(cond, source)
	children = append(children, pyBuildBlock(body, source, nesting+1)...)
	return &gsg.Node{Kind: gsg.While, Loc: adapter.Loc(n), AddlCost: condCost, Children: children}
}

func pyBuildWith(n adapter.Node, source []byte, nesting int) []*gsg.Node {
	body := n.ChildByFieldName("body")
	var cost uint32
	for i := 0; i < n.NamedChildCount(); i++ {
		if c := n.NamedChild(i); c.Kind() == "with_clause" {
			cost += sumChildren(c, source, nesting, pythonExprCost)
		}
	}
	return []*gsg.Node{{Kind: gsg.With, Loc: adapter.Loc(n), AddlCost: cost, Children: pyBuildBlock(body, source, nesting+1)}}
}

// pyBuildMatch wraps each case body in a Case node under a zero-cost Switch,
// the same shape the C-like and ECMAScript switch builders use: the match/case
// form itself contributes no cost of its own, but the scorer only applies the
// nesting+1 a case body needs when it sees a Case node at its position in the
// graph, not from the nesting argument threaded through the build.
func pyBuildMatch(n adapter.Node, source []byte, nesting int) []*gsg.Node {
	block := n.ChildByFieldName("body")
	if block.IsNull() {
		block = n.NamedChild(n.NamedChildCount() - 1)
	}

	var cases []*gsg.Node
	for i := 0; i < block.NamedChildCount(); i++ {
		clause := block.NamedChild(i)
		if clause.Kind() != "case_clause" {
			continue
		}
		body := clause.ChildByFieldName("consequence")
		if body.IsNull() {
			body = clause.NamedChild(clause.NamedChildCount() - 1)
		}
		caseChildren := pyBuildBlock(body, source, nesting+1)
		cases = append(cases, &gsg.Node{Kind: gsg.Case, Loc: adapter.Loc(clause), Children: caseChildren})
	}
	return []*gsg.Node{{Kind: gsg.Switch, Loc: adapter.Loc(n), Children: cases}}
}

// pyBuildTry emits an explicit Try wrapper around the guarded body, one
// Except node per handler, and Else/Finally wrappers when present.
func pyBuildTry(n adapter.Node, source []byte, nesting int) *gsg.Node {
	body := n.ChildByFieldName("body")
	tryNode := &gsg.Node{Kind: gsg.Try, Loc: adapter.Loc(n), Children: pyBuildBlock(body, source, nesting+1)}

	var children []*gsg.Node
	children = append(children, tryNode)

	for i := 0; i < n.NamedChildCount(); i++ {
		clause := n.NamedChild(i)
		switch clause.Kind() {
		case "except_clause":
			except := &gsg.Node{
				Kind:     gsg.Except,
				Loc:      adapter.Loc(clause),
				AddlCost: 1,
				Children: pyBuildBlock(pyExceptBody(clause), source, nesting+1),
			}
			children = append(children, except)
		case "else_clause":
			children = append(children, &gsg.Node{
				Kind:     gsg.Else,
				Loc:      adapter.Loc(clause),
				Children: pyBuildBlock(clause.ChildByFieldName("body"), source, nesting+1),
			})
		case "finally_clause":
			children = append(children, &gsg.Node{
				Kind:     gsg.Finally,
				Loc:      adapter.Loc(clause),
				Children: pyBuildBlock(pyExceptBody(clause), source, nesting+1),
			})
		}
	}

	return &gsg.Node{Kind: gsg.Block, Loc: adapter.Loc(n), Children: children}
}

// pyExceptBody returns the statement block of an except_clause or a
// finally_clause: its body field when the grammar names one, otherwise its
// block child, which follows an except_clause's optional exception type/name.
func pyExceptBody(clause adapter.Node) adapter.Node {
	if body := clause.ChildByFieldName("body"); !body.IsNull() {
		return body
	}
	for i := 0; i < clause.NamedChildCount(); i++ {
		if c := clause.NamedChild(i); c.Kind() == "block" {
			return c
		}
	}
	return clause
}

func pyCollectLambdas(n adapter.Node, source []byte) []*gsg.Node {
	if n.IsNull() {
		return nil
	}
	if n.Kind() == "lambda" {
		body := n.ChildByFieldName("body")
		cost := pythonExprCost(body, source, 0)
		var children []*gsg.Node
		if cost > 0 {
			children = append(children, newExpr(adapter.Loc(body), cost))
		}
		children = append(children, pyCollectLambdas(body, source)...)
		return []*gsg.Node{{Kind: gsg.Function, Name: lambdaName(n), Loc: adapter.Loc(n), Children: children}}
	}
	var out []*gsg.Node
	for i := 0; i < n.NamedChildCount(); i++ {
		out = append(out, pyCollectLambdas(n.NamedChild(i), source)...)
	}
	return out
}
