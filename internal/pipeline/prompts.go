package pipeline

import (
	"fmt"
	"strings"
)

// PromptBuilder constructs the role-tagged prompts for query derivation and
// relevance judging.
type PromptBuilder struct{}

// BuildDeriveQueriesPrompt asks for identifier-like search terms that the
// patch uses but does not define.
func (pb *PromptBuilder) BuildDeriveQueriesPrompt(patch string) string {
	var sb strings.Builder
	sb.WriteString("You are a static code analysis agent. You will be given a patch file (diff) showing code changes made to a source codebase.\n\n")
	sb.WriteString("Extract a list of search terms usable with git grep to locate code relevant to the changes but defined elsewhere in the codebase. Each term must be a specific identifier or symbol name that is:\n")
	sb.WriteString("- referenced or invoked in the patch,\n")
	sb.WriteString("- not declared, assigned, implemented, or modified as a definition in the patch's + lines,\n")
	sb.WriteString("- not part of a standard library or known external module,\n")
	sb.WriteString("- unique enough to pinpoint related code; skip overly broad or generic patterns.\n\n")
	sb.WriteString("Be strict: if a symbol was defined in the patch, do not include it. Return the terms as a JSON array of strings.\n\n")
	sb.WriteString("<Patch File>\n")
	sb.WriteString(patch)
	sb.WriteString("\n</Patch File>\n")
	return sb.String()
}

// BuildRelevancePrompt asks for a boolean judgment on one candidate excerpt.
func (pb *PromptBuilder) BuildRelevancePrompt(patch string, cand Candidate) string {
	var sb strings.Builder
	sb.WriteString("You are a code analysis agent. You will be given a patch file (diff) and a single excerpt returned from git grep, with its file path.\n\n")
	sb.WriteString("Determine whether the excerpt is relevant to the changes in the patch. Relevance means either: the excerpt's file path matches a file modified in the patch, or the excerpt's content references a function, variable, type, or concept that the patch adds, modifies, or removes.\n\n")
	sb.WriteString("Be conservative: if there is insufficient evidence for relevance, answer false.\n\n")
	sb.WriteString("<Patch File>\n")
	sb.WriteString(patch)
	sb.WriteString("\n</Patch File>\n\n")
	fmt.Fprintf(&sb, "<Content>\n%s:%d: %s\n", cand.Path, cand.Line, cand.Snippet)
	if len(cand.Symbols) > 0 {
		fmt.Fprintf(&sb, "Top-level declarations in %s: %s\n", cand.Path, strings.Join(cand.Symbols, ", "))
	}
	sb.WriteString("</Content>\n")
	fmt.Fprintf(&sb, "<Query>%s</Query>\n", cand.Query)
	return sb.String()
}

// BuildVetPrompt asks for the subset of candidate paths worth keeping, in a
// single batched judgment.
func (pb *PromptBuilder) BuildVetPrompt(patch string, cands *CandidateSet) string {
	var sb strings.Builder
	sb.WriteString("You are a code analysis agent. You will be given a patch file (diff) and a list of candidate file paths found by searching the codebase for symbols the patch references.\n\n")
	sb.WriteString("Select the subset of candidate paths whose files are genuinely relevant to understanding the patch. Only choose from the listed candidates. Be conservative: omit a path when in doubt. Return the selected paths as a JSON array of strings.\n\n")
	if changed := ChangedFiles(patch); len(changed) > 0 {
		fmt.Fprintf(&sb, "Files modified by the patch: %s\n\n", strings.Join(changed, ", "))
	}
	sb.WriteString("<Patch File>\n")
	sb.WriteString(patch)
	sb.WriteString("\n</Patch File>\n\n")
	sb.WriteString("Candidates:\n")
	for _, path := range cands.Paths() {
		c, _ := cands.Get(path)
		fmt.Fprintf(&sb, "- %s (matched %q on line %d: %s)\n", path, c.Query, c.Line, c.Snippet)
	}
	return sb.String()
}
