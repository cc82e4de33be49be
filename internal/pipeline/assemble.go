package pipeline

import (
	"fmt"
	"strings"
)

// AssembleBundle serializes the patch and the filtered entries into one
// delimited text bundle for the summarizer. Pure function: the same inputs
// in the same order produce byte-identical output.
func AssembleBundle(patch string, entries []Entry) string {
	var sb strings.Builder
	sb.WriteString("<Patch File>\n")
	sb.WriteString(patch)
	sb.WriteString("\n</Patch File>\n\n")

	for _, e := range entries {
		fmt.Fprintf(&sb, "<%s>\n%s\n</%s>\n\n", e.Path, e.Content, e.Path)
	}
	return sb.String()
}
