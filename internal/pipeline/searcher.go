// internal/pipeline/searcher.go
package pipeline

import (
	"amplicon/internal/engine"
	"amplicon/internal/primer"
)

// Searcher is the minimal capability the pipeline needs.
// Any engine (including fakes in tests) can satisfy this.
type Searcher interface {
	SearchAll(seqID string, seq []byte, pairs []primer.Pair) []engine.PairResult
}
