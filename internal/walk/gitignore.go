// Package walk discovers analyzable source files under a set of roots,
// honoring .gitignore rules and explicit exclude patterns the way the
// reference command-line tool's file sourcing does.
package walk

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// rule is one parsed line of a .gitignore file.
type rule struct {
	pattern  glob.Glob
	dirOnly  bool
	anchored bool
	hasSlash bool
	negated  bool
	raw      string
}

// rulesFile is the parsed .gitignore rules for one directory, plus the
// directory they are rooted at (patterns without a slash match basenames
// anywhere below it; patterns with a slash are relative to it).
type rulesFile struct {
	base  string
	rules []rule
}

func loadRulesForDir(dir string) rulesFile {
	rf := rulesFile{base: dir}

	f, err := os.Open(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return rf
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if r, ok := parseRuleLine(scanner.Text()); ok {
			rf.rules = append(rf.rules, r)
		}
	}
	return rf
}

func parseRuleLine(raw string) (rule, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.HasPrefix(s, "#") {
		return rule{}, false
	}

	var r rule
	r.raw = s
	if strings.HasPrefix(s, "!") {
		r.negated = true
		s = s[1:]
	}
	if strings.HasSuffix(s, "/") {
		r.dirOnly = true
		s = strings.TrimSuffix(s, "/")
	}
	if strings.HasPrefix(s, "/") {
		r.anchored = true
		s = s[1:]
	}
	if s == "" {
		return rule{}, false
	}

	r.hasSlash = r.anchored || strings.Contains(s, "/")
	var g glob.Glob
	var err error
	if r.hasSlash {
		g, err = glob.Compile(s, '/')
	} else {
		g, err = glob.Compile(s)
	}
	if err != nil {
		return rule{}, false
	}
	r.pattern = g
	return r, true
}

func matchAgainst(r rule, base, absPath string, isDir bool) bool {
	if r.dirOnly && !isDir {
		return false
	}

	rel, err := filepath.Rel(base, absPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)

	if !r.hasSlash {
		return r.pattern.Match(filepath.Base(absPath))
	}
	return r.pattern.Match(rel)
}

// isIgnored reports whether absPath is ignored by the last matching rule
// across stack, parents first, mirroring git's own precedence: a later,
// more specific rule (including a negation) overrides an earlier one.
func isIgnored(stack []rulesFile, absPath string, isDir bool) bool {
	ignored := false
	for _, rf := range stack {
		for _, r := range rf.rules {
			if matchAgainst(r, rf.base, absPath, isDir) {
				ignored = !r.negated
			}
		}
	}
	return ignored
}
