package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rohaquinlop/cogniplexity/internal/config"
	"github.com/rohaquinlop/cogniplexity/internal/logging"
)

// getRepoRoot returns the directory the command was invoked from, which
// LoadConfig treats as the root to look for a .cogniplexity file in.
func getRepoRoot() (string, error) {
	return os.Getwd()
}

// mustGetRepoRoot returns the repository root or exits on error.
func mustGetRepoRoot() string {
	repoRoot, err := getRepoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return repoRoot
}

func newContext() context.Context {
	return context.Background()
}

// newLogger creates a logger whose format matches the command's own output
// format, so JSON output isn't interleaved with human-readable log lines,
// at the level the project config requests.
func newLogger(cfg *config.Config) *logging.Logger {
	logFormat := logging.HumanFormat
	if cfg.Format == "json" {
		logFormat = logging.JSONFormat
	}
	return logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})
}
