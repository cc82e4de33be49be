package pipeline

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"prbrief/internal/llm"
)

// maxQueries bounds search cost: only the first N derived queries are
// consumed, regardless of how many the completion service returns.
const maxQueries = 10

// Pipeline runs one patch through derivation, aggregation, filtering, and
// assembly. All external collaborators are constructor-injected; a Pipeline
// owns no process-wide state and one Run owns its candidate set exclusively.
type Pipeline struct {
	completer llm.Completer
	searcher  Searcher
	annotator Annotator
	filter    Filter
	prompts   PromptBuilder
	logger    *zap.Logger
}

func New(completer llm.Completer, searcher Searcher, annotator Annotator, filter Filter, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		completer: completer,
		searcher:  searcher,
		annotator: annotator,
		filter:    filter,
		logger:    logger,
	}
}

// Run executes the full retrieval pipeline for one patch and returns the
// context bundle. Retrieval and filtering failures degrade silently to a
// smaller bundle; the only hard failure is a cancelled context.
func (p *Pipeline) Run(ctx context.Context, patch string) (string, error) {
	logger := p.logger.With(zap.String("run_id", uuid.NewString()))

	queries := p.deriveQueries(ctx, logger, patch)
	logger.Info("derived search queries", zap.Strings("queries", queries))

	cands := p.aggregate(ctx, queries)
	logger.Info("aggregated candidates", zap.Int("count", cands.Len()))

	if err := ctx.Err(); err != nil {
		return "", err
	}

	entries := p.filter.Filter(ctx, patch, cands)
	logger.Info("filtered candidates", zap.Int("kept", len(entries)))

	return AssembleBundle(patch, entries), nil
}

// deriveQueries asks the completion service for search terms and validates
// the structured result. Any failure degrades to no queries.
func (p *Pipeline) deriveQueries(ctx context.Context, logger *zap.Logger, patch string) []string {
	raw, err := p.completer.Complete(ctx, p.prompts.BuildDeriveQueriesPrompt(patch), llm.ShapeStringList)
	if err != nil {
		logger.Warn("query derivation failed", zap.Error(err))
		return nil
	}
	queries, err := llm.DecodeStringList(raw)
	if err != nil {
		logger.Warn("query derivation returned malformed output", zap.Error(err))
		return nil
	}
	if len(queries) > maxQueries {
		queries = queries[:maxQueries]
	}
	return queries
}

// aggregate turns the derived queries into one deduplicated candidate set.
// The first query to match a path wins; later matches for the same path are
// dropped, so the set holds at most one candidate per file.
func (p *Pipeline) aggregate(ctx context.Context, queries []string) *CandidateSet {
	cands := NewCandidateSet()
	for _, query := range queries {
		for _, m := range p.searcher.Search(ctx, query) {
			if cands.Contains(m.Path) {
				continue
			}
			cands.Add(Candidate{
				Path:       m.Path,
				Query:      query,
				Snippet:    m.Text,
				Line:       m.Line,
				Symbols:    p.annotator.TopLevelSymbols(m.Path),
				Confidence: exactMatchConfidence,
			})
		}
	}
	return cands
}
