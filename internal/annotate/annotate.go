// Package annotate statically enumerates the top-level declarations of a
// source file. It gives the relevance filter structural context beyond the
// single grep-matched line, without building a full index.
package annotate

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/python"
)

// language pairs a tree-sitter grammar with the query that captures the
// names of its top-level function/class/type declarations.
type language struct {
	grammar *sitter.Language
	query   string
}

var languages = map[string]language{
	".go": {
		grammar: golang.GetLanguage(),
		query: `
			(function_declaration name: (identifier) @name)
			(method_declaration name: (field_identifier) @name)
			(type_declaration (type_spec name: (type_identifier) @name))
		`,
	},
	".py": {
		grammar: python.GetLanguage(),
		query: `
			(module (function_definition name: (identifier) @name))
			(module (class_definition name: (identifier) @name))
			(module (decorated_definition definition: (function_definition name: (identifier) @name)))
			(module (decorated_definition definition: (class_definition name: (identifier) @name)))
		`,
	},
}

// Annotator extracts declared symbol names from source files.
type Annotator struct{}

func New() *Annotator {
	return &Annotator{}
}

// TopLevelSymbols returns the names of the top-level declarations in the
// file at path, in source order. Every failure mode degrades to nil: an
// unreadable path, an unsupported extension, binary content, or a parse
// failure. This must never abort the pipeline.
func (a *Annotator) TopLevelSymbols(path string) []string {
	lang, ok := languages[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang.grammar)
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil
	}

	query, err := sitter.NewQuery([]byte(lang.query), lang.grammar)
	if err != nil {
		return nil
	}

	qc := sitter.NewQueryCursor()
	qc.Exec(query, tree.RootNode())

	var names []string
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			names = append(names, c.Node.Content(source))
		}
	}
	return names
}
