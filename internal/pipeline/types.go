// Package pipeline implements the patch-context retrieval pipeline: derive
// search queries from a patch, resolve them to candidate files via exact
// grep, narrow the candidates to the relevant ones, and assemble the
// surviving evidence into one context bundle for the summarizer.
package pipeline

import (
	"context"

	"prbrief/internal/gitgrep"
)

// Grep has no ranking signal, so every exact match carries the same
// sentinel confidence.
const exactMatchConfidence = 1.0

// Candidate is one file identified as potentially relevant to the patch,
// with the evidence that surfaced it.
type Candidate struct {
	Path       string
	Query      string   // the derived query that first matched this file
	Snippet    string   // the matched line text
	Line       int      // 1-based line number of the match
	Symbols    []string // top-level declarations in the file, if parseable
	Confidence float64
}

// Searcher resolves one query to exact line matches over tracked files.
// Failures degrade to an empty result inside the implementation.
type Searcher interface {
	Search(ctx context.Context, query string) []gitgrep.Match
}

// Annotator enumerates the top-level declared symbols of a source file,
// returning nil when the file cannot be parsed.
type Annotator interface {
	TopLevelSymbols(path string) []string
}

// CandidateSet is an insertion-ordered mapping from file path to Candidate.
// Insertion is first-writer-wins: once a path is present, later matches for
// it are dropped, so no path ever appears twice.
type CandidateSet struct {
	order  []string
	byPath map[string]Candidate
}

func NewCandidateSet() *CandidateSet {
	return &CandidateSet{byPath: make(map[string]Candidate)}
}

// Add inserts c unless its path is already present. It reports whether the
// candidate was inserted.
func (s *CandidateSet) Add(c Candidate) bool {
	if _, exists := s.byPath[c.Path]; exists {
		return false
	}
	s.byPath[c.Path] = c
	s.order = append(s.order, c.Path)
	return true
}

func (s *CandidateSet) Get(path string) (Candidate, bool) {
	c, ok := s.byPath[path]
	return c, ok
}

func (s *CandidateSet) Contains(path string) bool {
	_, ok := s.byPath[path]
	return ok
}

// Paths returns the candidate paths in insertion order.
func (s *CandidateSet) Paths() []string {
	return append([]string(nil), s.order...)
}

func (s *CandidateSet) Len() int {
	return len(s.order)
}

// Entry is one surviving (file path, content) pair produced by a filter.
// Content granularity depends on the strategy: the matched snippet for the
// per-candidate filter, the full file for the batched filter.
type Entry struct {
	Path    string
	Content string
}
