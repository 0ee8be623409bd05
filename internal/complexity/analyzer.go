//go:build cgo

package complexity

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rohaquinlop/cogniplexity/internal/engine"
	"github.com/rohaquinlop/cogniplexity/internal/gsg"
)

// Analyzer runs the tree-sitter-backed engine. Building it requires cgo,
// since go-tree-sitter links the grammars as C libraries; see stub.go for
// the non-cgo fallback.
type Analyzer struct {
	engine *engine.Engine
}

// NewAnalyzer creates an Analyzer backed by a fresh engine.
func NewAnalyzer() *Analyzer {
	return &Analyzer{engine: engine.New()}
}

// IsAvailable reports whether this build can actually parse source.
func (a *Analyzer) IsAvailable() bool { return true }

// AnalyzeSource analyzes in-memory source already tagged with its language.
func (a *Analyzer) AnalyzeSource(ctx context.Context, path string, source []byte, lang gsg.Language) (*FileReport, error) {
	fns, err := a.engine.Analyze(ctx, source, lang)
	if err != nil {
		return nil, err
	}
	return aggregate(path, lang, fns), nil
}

// AnalyzeFile reads path from disk, infers its language from the extension,
// and analyzes it.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*FileReport, error) {
	lang, ok := gsg.LanguageFromExtension(filepath.Ext(path))
	if !ok {
		return nil, fmt.Errorf("complexity: unsupported file extension: %s", filepath.Ext(path))
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("complexity: read %s: %w", path, err)
	}

	return a.AnalyzeSource(ctx, path, source, lang)
}
