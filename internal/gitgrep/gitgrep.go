package gitgrep

import (
	"context"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Match is one grep hit: a tracked file and the line that matched.
type Match struct {
	Path string
	Line int
	Text string
}

// GitGrep runs exact substring searches over the tracked files of a
// repository via `git grep -n`. The query is always passed as a literal
// fixed string, never as a pattern.
type GitGrep struct {
	dir        string
	sourceOnly bool
	logger     *zap.Logger
}

type Option func(*GitGrep)

// WithSourceOnly drops matches in files whose extension is not a known
// source-code extension.
func WithSourceOnly() Option {
	return func(g *GitGrep) { g.sourceOnly = true }
}

func WithLogger(logger *zap.Logger) Option {
	return func(g *GitGrep) { g.logger = logger }
}

// New creates a searcher rooted at dir. dir must be inside a git worktree
// for searches to return anything; if it is not, searches degrade to empty.
func New(dir string, opts ...Option) *GitGrep {
	g := &GitGrep{dir: dir, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Search returns every (file, line) pair whose text contains query as an
// exact substring. All failure modes degrade to an empty result: a missing
// git binary, a directory outside any repository, or an unexpected exit are
// logged and absorbed, never surfaced to the caller.
func (g *GitGrep) Search(ctx context.Context, query string) []Match {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	// -I skips binary files; --fixed-strings keeps regex metacharacters in
	// the query literal; -e guards against queries starting with a dash.
	cmd := exec.CommandContext(ctx, "git", "-C", g.dir, "grep", "-nI", "--fixed-strings", "-e", query)
	output, err := cmd.Output()
	if err != nil {
		// Exit status 1 with empty output means "no matches" for git grep.
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 && len(output) == 0 {
			return nil
		}
		g.logger.Warn("git grep failed", zap.String("query", query), zap.Error(err))
		return nil
	}

	var matches []Match
	for _, line := range strings.Split(string(output), "\n") {
		m, ok := parseGrepLine(line)
		if !ok {
			continue
		}
		if g.sourceOnly && !isSourceFile(m.Path) {
			continue
		}
		matches = append(matches, m)
	}
	return matches
}

// parseGrepLine splits a `path:line_number:text` grep output line on the
// first two colons only; the matched text may itself contain colons.
func parseGrepLine(line string) (Match, bool) {
	if line == "" {
		return Match{}, false
	}
	parts := strings.SplitN(line, ":", 3)
	if len(parts) != 3 {
		return Match{}, false
	}
	lineNo, err := strconv.Atoi(parts[1])
	if err != nil {
		return Match{}, false
	}
	return Match{Path: parts[0], Line: lineNo, Text: parts[2]}, true
}

var sourceExtensions = map[string]bool{
	".c":    true,
	".cc":   true,
	".cpp":  true,
	".cs":   true,
	".go":   true,
	".h":    true,
	".hpp":  true,
	".java": true,
	".js":   true,
	".kt":   true,
	".py":   true,
	".rb":   true,
	".rs":   true,
	".ts":   true,
	".tsx":  true,
}

func isSourceFile(path string) bool {
	return sourceExtensions[strings.ToLower(filepath.Ext(path))]
}
