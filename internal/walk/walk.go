package walk

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/rohaquinlop/cogniplexity/internal/gsg"
)

// SourceFile is one discovered file paired with the language its extension
// maps to.
type SourceFile struct {
	Path     string
	Language gsg.Language
}

// Options controls file discovery under DiscoverFiles.
type Options struct {
	// Languages restricts discovery to these languages. Empty means "all
	// languages LanguageFromExtension recognizes".
	Languages []gsg.Language
	// ExcludeDirs and ExcludeFiles are glob patterns matched against a
	// directory or file's basename (e.g. "node_modules", "*_test.py").
	ExcludeDirs  []string
	ExcludeFiles []string
	// RespectGitignore walks each directory's .gitignore stack the way git
	// itself would, skipping anything git would not track.
	RespectGitignore bool
}

// DiscoverFiles walks roots (files or directories) and returns every source
// file whose language Options selects, skipping .git and anything Options
// excludes. Non-existent inputs are skipped silently, matching the reference
// CLI's own tolerance for stale paths in a file list.
func DiscoverFiles(roots []string, opts Options) ([]SourceFile, error) {
	dirGlobs, err := compileGlobs(opts.ExcludeDirs)
	if err != nil {
		return nil, fmt.Errorf("walk: %w", err)
	}
	fileGlobs, err := compileGlobs(opts.ExcludeFiles)
	if err != nil {
		return nil, fmt.Errorf("walk: %w", err)
	}

	var out []SourceFile
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			continue
		}

		if !info.IsDir() {
			if sf, ok := classify(root, opts.Languages); ok {
				out = append(out, sf)
			}
			continue
		}

		if matchesAny(dirGlobs, filepath.Base(root)) {
			continue
		}

		var stack []rulesFile
		if err := walkDir(root, opts, dirGlobs, fileGlobs, &stack, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func walkDir(dir string, opts Options, dirGlobs, fileGlobs []glob.Glob, stack *[]rulesFile, out *[]SourceFile) error {
	if opts.RespectGitignore {
		rf := loadRulesForDir(dir)
		if len(rf.rules) > 0 {
			*stack = append(*stack, rf)
			defer func() { *stack = (*stack)[:len(*stack)-1] }()
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil // unreadable directory, skip rather than fail the whole run
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		isDir := entry.IsDir()

		if isDir && entry.Name() == ".git" {
			continue
		}
		if isDir && matchesAny(dirGlobs, entry.Name()) {
			continue
		}
		if opts.RespectGitignore && isIgnored(*stack, path, isDir) {
			continue
		}

		if isDir {
			if err := walkDir(path, opts, dirGlobs, fileGlobs, stack, out); err != nil {
				return err
			}
			continue
		}

		if matchesAny(fileGlobs, entry.Name()) {
			continue
		}
		if sf, ok := classify(path, opts.Languages); ok {
			*out = append(*out, sf)
		}
	}
	return nil
}

func classify(path string, filter []gsg.Language) (SourceFile, bool) {
	lang, ok := gsg.LanguageFromExtension(filepath.Ext(path))
	if !ok {
		return SourceFile{}, false
	}
	if len(filter) > 0 && !languageSelected(lang, filter) {
		return SourceFile{}, false
	}
	return SourceFile{Path: path, Language: lang}, true
}

func languageSelected(lang gsg.Language, filter []gsg.Language) bool {
	for _, l := range filter {
		if l == lang {
			return true
		}
	}
	return false
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchesAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
