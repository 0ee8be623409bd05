//go:build !cgo

package complexity

import (
	"context"
	"errors"

	"github.com/rohaquinlop/cogniplexity/internal/gsg"
)

// ErrNoCGO is returned by every Analyzer method when the binary was built
// without cgo, so the tree-sitter grammars could not be linked.
var ErrNoCGO = errors.New("complexity: built without cgo; tree-sitter grammars are unavailable")

// Analyzer is the non-cgo stand-in: every operation fails with ErrNoCGO.
type Analyzer struct{}

// NewAnalyzer returns a stub Analyzer.
func NewAnalyzer() *Analyzer { return &Analyzer{} }

// IsAvailable always reports false in a non-cgo build.
func (a *Analyzer) IsAvailable() bool { return false }

func (a *Analyzer) AnalyzeSource(ctx context.Context, path string, source []byte, lang gsg.Language) (*FileReport, error) {
	return nil, ErrNoCGO
}

func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*FileReport, error) {
	return nil, ErrNoCGO
}
