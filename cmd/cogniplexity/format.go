package main

import (
	"fmt"
	"strings"

	"github.com/rohaquinlop/cogniplexity/internal/output"
)

// FormatResponse renders an AnalyzeResponse in the requested format.
// threshold is only used by the human renderer, to mark functions that
// exceed it.
func FormatResponse(resp *AnalyzeResponse, format string, threshold uint32) (string, error) {
	switch format {
	case "json":
		return formatJSON(resp)
	case "csv":
		return formatCSV(resp), nil
	case "human":
		return formatHuman(resp, threshold), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp *AnalyzeResponse) (string, error) {
	data, err := output.DeterministicEncodeIndented(resp, "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatCSV(resp *AnalyzeResponse) string {
	var b strings.Builder
	b.WriteString("file,function,complexity,risk,startLine,endLine\n")
	for _, fr := range resp.Files {
		for _, fn := range fr.Functions {
			fmt.Fprintf(&b, "%s,%s,%d,%s,%d,%d\n", fr.Path, fn.Name, fn.Complexity, fn.Risk, fn.StartLine, fn.EndLine)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatHuman(resp *AnalyzeResponse, threshold uint32) string {
	var b strings.Builder

	for _, fr := range resp.Files {
		fmt.Fprintf(&b, "%s (%s)\n", fr.Path, fr.Language)
		if fr.Error != "" {
			fmt.Fprintf(&b, "  error: %s\n\n", fr.Error)
			continue
		}
		if len(fr.Functions) == 0 {
			b.WriteString("  no functions found\n\n")
			continue
		}
		for _, fn := range fr.Functions {
			marker := " "
			if fn.Complexity > threshold {
				marker = "!"
			}
			fmt.Fprintf(&b, "  %s %-30s complexity=%-4d risk=%-6s lines=%d-%d\n",
				marker, fn.Name, fn.Complexity, fn.Risk, fn.StartLine, fn.EndLine)
		}
		fmt.Fprintf(&b, "  total=%d max=%d functions=%d\n\n", fr.TotalCognitive, fr.MaxCognitive, fr.FunctionCount)
	}

	fmt.Fprintf(&b, "Summary: %d file(s), %d function(s), total cognitive complexity %d, max %d, %d over threshold %d\n",
		resp.Summary.FileCount, resp.Summary.FunctionCount, resp.Summary.TotalCognitive, resp.Summary.MaxCognitive,
		resp.Summary.OverThreshold, threshold)

	if len(resp.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range resp.Warnings {
			fmt.Fprintf(&b, "  ! %s: %s\n", w.Path, w.Text)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
