package pipeline

import (
	"bufio"
	"strings"
)

// ChangedFiles extracts the paths modified by a unified diff, in order of
// appearance. It reads only the `diff --git a/... b/...` headers and keeps
// the b/ side (the new version). Deletion-only hunks need no special
// handling here; the header still names the file.
func ChangedFiles(patch string) []string {
	scanner := bufio.NewScanner(strings.NewReader(patch))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paths []string
	seen := make(map[string]bool)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "diff --git") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 4 {
			continue
		}
		path := strings.TrimPrefix(parts[3], "b/")
		if path != "" && !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}
	return paths
}
