// Package adapter is the narrow boundary between the complexity engine and
// a concrete concrete-syntax-tree implementation. The engine core never
// imports tree-sitter directly outside this package: builders only see the
// capability set described here (node kind, named-child iteration,
// field lookup, byte/point ranges, and source slicing).
package adapter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/rohaquinlop/cogniplexity/internal/gsg"
)

// Node is the capability set the core depends on. It is implemented here by
// wrapping *sitter.Node; a different concrete-syntax-tree library could
// implement the same interface without the core changing.
type Node interface {
	Kind() string
	NamedChildCount() int
	NamedChild(i int) Node
	ChildByFieldName(name string) Node
	StartByte() uint32
	EndByte() uint32
	StartPoint() (row, col uint32)
	EndPoint() (row, col uint32)
	IsNull() bool
}

// sitterNode adapts *sitter.Node to Node.
type sitterNode struct {
	n *sitter.Node
}

func wrap(n *sitter.Node) Node {
	if n == nil {
		return sitterNode{nil}
	}
	return sitterNode{n}
}

func (s sitterNode) IsNull() bool { return s.n == nil }

func (s sitterNode) Kind() string {
	if s.n == nil {
		return ""
	}
	return s.n.Type()
}

func (s sitterNode) NamedChildCount() int {
	if s.n == nil {
		return 0
	}
	return int(s.n.NamedChildCount())
}

func (s sitterNode) NamedChild(i int) Node {
	if s.n == nil {
		return wrap(nil)
	}
	return wrap(s.n.NamedChild(i))
}

func (s sitterNode) ChildByFieldName(name string) Node {
	if s.n == nil {
		return wrap(nil)
	}
	return wrap(s.n.ChildByFieldName(name))
}

func (s sitterNode) StartByte() uint32 {
	if s.n == nil {
		return 0
	}
	return s.n.StartByte()
}

func (s sitterNode) EndByte() uint32 {
	if s.n == nil {
		return 0
	}
	return s.n.EndByte()
}

func (s sitterNode) StartPoint() (uint32, uint32) {
	if s.n == nil {
		return 0, 0
	}
	p := s.n.StartPoint()
	return p.Row, p.Column
}

func (s sitterNode) EndPoint() (uint32, uint32) {
	if s.n == nil {
		return 0, 0
	}
	p := s.n.EndPoint()
	return p.Row, p.Column
}

// Slice returns the source bytes spanned by n. Used only for operator-text
// inspection and name extraction; never retained past the builder call.
func Slice(source []byte, n Node) []byte {
	if n.IsNull() {
		return nil
	}
	a, b := n.StartByte(), n.EndByte()
	if b > uint32(len(source)) {
		b = uint32(len(source))
	}
	if a > b {
		return nil
	}
	return source[a:b]
}

// Loc builds a gsg.SourceLoc from a node's start/end points.
func Loc(n Node) gsg.SourceLoc {
	if n.IsNull() {
		return gsg.SourceLoc{}
	}
	row, startCol := n.StartPoint()
	endRow, endCol := n.EndPoint()
	return gsg.SourceLoc{Row: row, EndRow: endRow, StartCol: startCol, EndCol: endCol}
}

// Parser wraps a tree-sitter parser for the languages the engine supports.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a tree-sitter-backed parser.
func NewParser() *Parser {
	return &Parser{parser: sitter.NewParser()}
}

// Parse parses source under the given language and returns the root Node.
func (p *Parser) Parse(ctx context.Context, source []byte, lang gsg.Language) (Node, error) {
	tsLang, err := grammarFor(lang)
	if err != nil {
		return wrap(nil), err
	}

	p.parser.SetLanguage(tsLang)
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return wrap(nil), fmt.Errorf("parse error: %w", err)
	}

	return wrap(tree.RootNode()), nil
}

func grammarFor(lang gsg.Language) (*sitter.Language, error) {
	switch lang {
	case gsg.Python:
		return python.GetLanguage(), nil
	case gsg.C:
		return c.GetLanguage(), nil
	case gsg.Cpp:
		return cpp.GetLanguage(), nil
	case gsg.JavaScript:
		return javascript.GetLanguage(), nil
	case gsg.TypeScript:
		return typescript.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}
