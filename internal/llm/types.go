// Package llm wraps the external completion service behind a small
// structured-output contract: a role-tagged prompt goes in, a value
// conforming to a declared result shape comes out. Everything returned by
// the service is treated as untrusted until decoded.
package llm

import "context"

// Shape declares the structured result a completion must conform to.
type Shape int

const (
	// ShapeText is free text with no structure requirement.
	ShapeText Shape = iota
	// ShapeStringList is an ordered list of strings, returned as JSON.
	ShapeStringList
	// ShapeBoolFlag is a single boolean judgment, returned as JSON.
	ShapeBoolFlag
)

// Completer is the completion-service contract. Implementations return the
// raw response text; callers decode it with the contract decoders, which
// validate shape conformance defensively.
type Completer interface {
	Complete(ctx context.Context, prompt string, shape Shape) (string, error)
}
