package main

import (
	"github.com/spf13/cobra"

	"github.com/rohaquinlop/cogniplexity/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cogniplexity",
	Short: "Cognitive complexity analysis for Python, C, C++, JavaScript, and TypeScript",
	Long: `cogniplexity parses source files with tree-sitter and scores every function's
cognitive complexity: how hard it is for a human to follow the control flow,
as opposed to cyclomatic complexity's count of independent paths.

Examples:
  cogniplexity analyze internal/api/handler.py
  cogniplexity analyze --format=json --threshold=15 src/
  cogniplexity analyze --sort=name --limit=10 pkg/`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("cogniplexity version {{.Version}}\n")
}
