// Package summary is the boundary to the summarization collaborator: it
// turns an assembled context bundle into a natural-language PR description.
package summary

import (
	"context"
	"fmt"
	"strings"

	"prbrief/internal/llm"
)

type Summarizer interface {
	Summarize(ctx context.Context, bundle string) (string, error)
}

// LLMSummarizer produces the description with a free-text completion call.
type LLMSummarizer struct {
	completer llm.Completer
}

func NewLLMSummarizer(completer llm.Completer) *LLMSummarizer {
	return &LLMSummarizer{completer: completer}
}

func (s *LLMSummarizer) Summarize(ctx context.Context, bundle string) (string, error) {
	var sb strings.Builder
	sb.WriteString("You are a code review assistant. You will be given a patch file (diff) wrapped in <Patch File> tags, followed by excerpts from the codebase wrapped in tags named after their file paths.\n\n")
	sb.WriteString("Write a concise summary of the change for a pull request comment: what was changed, why it matters, and how it interacts with the referenced code. Use the codebase excerpts to explain interactions; do not invent behavior the context does not show. Format as GitHub-flavored markdown.\n\n")
	sb.WriteString(bundle)

	text, err := s.completer.Complete(ctx, sb.String(), llm.ShapeText)
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("summarization returned empty output")
	}
	return strings.TrimSpace(text), nil
}
