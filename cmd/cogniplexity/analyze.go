package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rohaquinlop/cogniplexity/internal/complexity"
	"github.com/rohaquinlop/cogniplexity/internal/config"
	"github.com/rohaquinlop/cogniplexity/internal/gsg"
	"github.com/rohaquinlop/cogniplexity/internal/output"
	"github.com/rohaquinlop/cogniplexity/internal/paths"
	"github.com/rohaquinlop/cogniplexity/internal/walk"
)

var (
	analyzeFormat    string
	analyzeThreshold uint32
	analyzeSort      string
	analyzeLimit     int
	analyzeLanguages []string
	analyzeExclude   []string
	analyzeNoGitignore bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <path> [path...]",
	Short: "Score cognitive complexity for files or directories",
	Long: `analyze walks the given files and directories, parses every source file
whose extension maps to a supported language, and reports the cognitive
complexity of every function found, including functions nested inside other
functions.

Examples:
  cogniplexity analyze internal/api/handler.py
  cogniplexity analyze --format=json --threshold=15 src/
  cogniplexity analyze --sort=name --limit=10 pkg/`,
	Args: cobra.MinimumNArgs(1),
	Run:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "", "Output format (json, human, csv)")
	analyzeCmd.Flags().Uint32Var(&analyzeThreshold, "threshold", 0, "Cognitive complexity above which a function is flagged")
	analyzeCmd.Flags().StringVar(&analyzeSort, "sort", "", "Sort functions by: complexity, name")
	analyzeCmd.Flags().IntVar(&analyzeLimit, "limit", -1, "Limit number of functions shown per file (0 for all)")
	analyzeCmd.Flags().StringSliceVar(&analyzeLanguages, "languages", nil, "Restrict analysis to these languages")
	analyzeCmd.Flags().StringSliceVar(&analyzeExclude, "exclude", nil, "Additional glob patterns to exclude")
	analyzeCmd.Flags().BoolVar(&analyzeNoGitignore, "no-gitignore", false, "Do not skip files .gitignore would exclude")
	rootCmd.AddCommand(analyzeCmd)
}

// AnalyzeResponse is the top-level shape printed by the analyze command,
// whichever format it's rendered in.
type AnalyzeResponse struct {
	Files    []complexity.FileReport `json:"files"`
	Summary  AnalyzeSummary          `json:"summary"`
	Warnings []output.Warning        `json:"warnings,omitempty"`
}

// AnalyzeSummary aggregates every file's report into run-level totals.
type AnalyzeSummary struct {
	FileCount      int    `json:"fileCount"`
	FunctionCount  int    `json:"functionCount"`
	TotalCognitive uint32 `json:"totalCognitive"`
	MaxCognitive   uint32 `json:"maxCognitive"`
	OverThreshold  int    `json:"overThreshold"`
}

func runAnalyze(cmd *cobra.Command, args []string) {
	start := time.Now()
	repoRoot := mustGetRepoRoot()

	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyAnalyzeFlags(cmd, cfg)

	logger := newLogger(cfg).WithFields(map[string]interface{}{"command": "analyze"})

	analyzer := complexity.NewAnalyzer()
	if !analyzer.IsAvailable() {
		fmt.Fprintln(os.Stderr, "Error: complexity analysis requires CGO (tree-sitter)")
		fmt.Fprintln(os.Stderr, "This binary was built without CGO support.")
		os.Exit(1)
	}

	files, err := walk.DiscoverFiles(args, walkOptionsFromConfig(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error discovering files: %v\n", err)
		os.Exit(1)
	}

	ctx := newContext()
	resp := &AnalyzeResponse{Summary: AnalyzeSummary{}}

	for _, sf := range files {
		fr, err := analyzer.AnalyzeFile(ctx, sf.Path)
		if err != nil {
			resp.Warnings = append(resp.Warnings, output.Warning{
				Severity: "warning",
				Text:     err.Error(),
				Path:     sf.Path,
			})
			continue
		}
		if canonical, err := paths.CanonicalizePath(sf.Path, repoRoot); err == nil {
			fr.Path = canonical
		}
		if err := complexity.SortFunctions(fr.Functions, cfg.Sort); err != nil {
			logger.Warn("failed to sort functions", map[string]interface{}{"file": fr.Path, "error": err.Error()})
		}
		if cfg.Limit > 0 && len(fr.Functions) > cfg.Limit {
			fr.Functions = fr.Functions[:cfg.Limit]
		}
		resp.Files = append(resp.Files, *fr)
		resp.Summary.FunctionCount += fr.FunctionCount
		resp.Summary.TotalCognitive += fr.TotalCognitive
		if fr.MaxCognitive > resp.Summary.MaxCognitive {
			resp.Summary.MaxCognitive = fr.MaxCognitive
		}
		for _, fn := range fr.Functions {
			if fn.Complexity > cfg.Threshold {
				resp.Summary.OverThreshold++
			}
		}
	}
	resp.Summary.FileCount = len(resp.Files)

	out, err := FormatResponse(resp, cfg.Format, cfg.Threshold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)

	logger.Debug("analyze completed", map[string]interface{}{
		"fileCount":     resp.Summary.FileCount,
		"functionCount": resp.Summary.FunctionCount,
		"overThreshold": resp.Summary.OverThreshold,
		"durationMs":    time.Since(start).Milliseconds(),
	})

	if resp.Summary.OverThreshold > 0 {
		os.Exit(1)
	}
}

// applyAnalyzeFlags overrides config values the caller explicitly passed on
// the command line, leaving the project config's own values in place
// otherwise.
func applyAnalyzeFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("format") {
		cfg.Format = analyzeFormat
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Threshold = analyzeThreshold
	}
	if cmd.Flags().Changed("sort") {
		cfg.Sort = analyzeSort
	}
	if cmd.Flags().Changed("limit") {
		cfg.Limit = analyzeLimit
	}
	if cmd.Flags().Changed("languages") {
		cfg.Languages = analyzeLanguages
	}
	if cmd.Flags().Changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, analyzeExclude...)
	}
	if cmd.Flags().Changed("no-gitignore") {
		cfg.RespectGitignore = !analyzeNoGitignore
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func walkOptionsFromConfig(cfg *config.Config) walk.Options {
	var langs []gsg.Language
	for _, l := range cfg.Languages {
		langs = append(langs, gsg.Language(strings.ToLower(l)))
	}
	return walk.Options{
		Languages:        langs,
		ExcludeDirs:      cfg.Exclude,
		ExcludeFiles:     nil,
		RespectGitignore: cfg.RespectGitignore,
	}
}
