// Package completion walks the static command tree to complete command lines,
// and falls back to the full CLI for what the tree cannot answer.
package completion

import "github.com/NikitaCOEUR/fastcomplete/internal/tree"

// Sources reported in Result
const (
	SourceStatic   = "static"
	SourceFallback = "fallback"
)

// Request is a tokenized completion request
type Request struct {
	Line      string   // Command line up to the cursor
	Words     []string // Words after the program name; the last one is being completed
	Separator string   // Separator the fallback writes candidates with
	// NoFallback forbids consulting the full CLI
	NoFallback bool
}

// Result represents the outcome of a completion request
type Result struct {
	Candidates []string
	Source     string // Which completer provided the candidates
	// Reason is why the static tree could not answer, when the fallback did
	Reason string
}

// TreeLoader provides the static tree, typically by reading it from disk
type TreeLoader func() (*tree.Node, error)
