package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"prbrief/internal/llm"
)

// Filter narrows a candidate set to the entries worth bundling. Its output
// paths are always drawn from the candidate set, with one exception: the
// batched strategy maps paths hallucinated by the completion service to
// empty-content entries rather than failing the run.
type Filter interface {
	Filter(ctx context.Context, patch string, cands *CandidateSet) []Entry
}

// NewFilter builds the filter for the configured strategy name.
func NewFilter(strategy string, completer llm.Completer, repoRoot string, logger *zap.Logger) (Filter, error) {
	switch strategy {
	case "", "per-candidate":
		return NewPerCandidateFilter(completer, logger), nil
	case "batched":
		return NewBatchedFilter(completer, repoRoot, logger), nil
	default:
		return nil, fmt.Errorf("unsupported filter strategy: %s", strategy)
	}
}

// PerCandidateFilter asks a boolean classifier about each candidate in turn.
// A kept entry's content is the matched snippet. A failed or malformed
// judgment excludes that one candidate and never aborts the batch.
type PerCandidateFilter struct {
	completer llm.Completer
	prompts   PromptBuilder
	logger    *zap.Logger
}

func NewPerCandidateFilter(completer llm.Completer, logger *zap.Logger) *PerCandidateFilter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PerCandidateFilter{completer: completer, logger: logger}
}

func (f *PerCandidateFilter) Filter(ctx context.Context, patch string, cands *CandidateSet) []Entry {
	var entries []Entry
	for _, path := range cands.Paths() {
		cand, _ := cands.Get(path)

		raw, err := f.completer.Complete(ctx, f.prompts.BuildRelevancePrompt(patch, cand), llm.ShapeBoolFlag)
		if err != nil {
			f.logger.Warn("relevance judgment failed, excluding candidate",
				zap.String("path", path), zap.Error(err))
			continue
		}
		relevant, err := llm.DecodeBoolFlag(raw)
		if err != nil {
			f.logger.Warn("relevance judgment malformed, excluding candidate",
				zap.String("path", path), zap.Error(err))
			continue
		}
		if relevant {
			entries = append(entries, Entry{Path: path, Content: cand.Snippet})
		}
	}
	return entries
}

// BatchedFilter vets all candidate paths in a single classifier call. Since
// the judgment is whole-file relevance rather than line-level evidence, a
// kept entry's content is the full file re-read from disk. Paths returned
// by the classifier that were never candidates, or whose files cannot be
// read, get empty content.
type BatchedFilter struct {
	completer llm.Completer
	repoRoot  string
	prompts   PromptBuilder
	logger    *zap.Logger
}

func NewBatchedFilter(completer llm.Completer, repoRoot string, logger *zap.Logger) *BatchedFilter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchedFilter{completer: completer, repoRoot: repoRoot, logger: logger}
}

func (f *BatchedFilter) Filter(ctx context.Context, patch string, cands *CandidateSet) []Entry {
	if cands.Len() == 0 {
		return nil
	}

	raw, err := f.completer.Complete(ctx, f.prompts.BuildVetPrompt(patch, cands), llm.ShapeStringList)
	if err != nil {
		f.logger.Warn("batched vetting failed, excluding all candidates", zap.Error(err))
		return nil
	}
	selected, err := llm.DecodeStringList(raw)
	if err != nil {
		f.logger.Warn("batched vetting returned malformed output, excluding all candidates", zap.Error(err))
		return nil
	}

	var entries []Entry
	seen := make(map[string]bool)
	for _, path := range selected {
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true

		if !cands.Contains(path) {
			f.logger.Warn("batched vetting returned unknown path, substituting empty content",
				zap.String("path", path))
			entries = append(entries, Entry{Path: path})
			continue
		}
		entries = append(entries, Entry{Path: path, Content: f.readFile(path)})
	}
	return entries
}

func (f *BatchedFilter) readFile(path string) string {
	content, err := os.ReadFile(filepath.Join(f.repoRoot, path))
	if err != nil {
		f.logger.Warn("failed to read vetted file, substituting empty content",
			zap.String("path", path), zap.Error(err))
		return ""
	}
	return string(content)
}
