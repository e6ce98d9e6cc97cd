// internal/engine/engine.go
package engine

import (
	"errors"
	"fmt"

	"amplicon/internal/primer"
)

// ErrResultCapReached is returned together with the capped results when a
// single (record, pair) search produces more than Config.MaxResults hits.
var ErrResultCapReached = errors.New("amplicon result cap reached")

// Config holds search parameters that are not part of the primer table.
type Config struct {
	MaxResults int // per (record, pair); 0 = unlimited
}

// Engine runs the exact-match amplicon search.
type Engine struct {
	cfg Config
}

// New creates a new Engine.
func New(c Config) *Engine { return &Engine{cfg: c} }

// Search reports every amplicon of p in seq.
//
// Each forward hit is combined with each reverse-complemented reverse hit,
// forward offsets ascending then reverse offsets ascending. A reverse site
// starting before the forward site ends is not a candidate; one starting
// exactly at it is a zero-length insert. Overlapping and nested amplicons
// are all reported.
func (e *Engine) Search(seqID string, seq []byte, p primer.Pair) ([]Amplicon, error) {
	rc, err := primer.ReverseComplement(p.Reverse)
	if err != nil {
		return nil, fmt.Errorf("primer %s reverse: %w", p.Name, err)
	}
	fwdHits, err := primer.FindAll(seq, p.Forward)
	if err != nil {
		return nil, fmt.Errorf("primer %s forward: %w", p.Name, err)
	}
	if len(fwdHits) == 0 {
		return nil, nil
	}
	revHits, err := primer.FindAll(seq, rc)
	if err != nil {
		return nil, fmt.Errorf("primer %s reverse: %w", p.Name, err)
	}
	if len(revHits) == 0 {
		return nil, nil
	}

	flen, rlen := len(p.Forward), len(p.Reverse)
	var out []Amplicon
	for _, f := range fwdHits {
		start := f + flen
		for _, r := range revHits {
			if r < start {
				continue
			}
			ins := r - start
			if ins > p.MaxInsert {
				break // revHits ascend; every later r is longer still
			}
			if ins < p.MinInsert {
				continue
			}
			if e.cfg.MaxResults > 0 && len(out) >= e.cfg.MaxResults {
				return out, ErrResultCapReached
			}
			out = append(out, Amplicon{
				SequenceID:   seqID,
				PrimerName:   p.Name,
				Start:        start,
				End:          r,
				InsertLength: ins,
				TotalLength:  flen + ins + rlen,
				Insert:       seq[start:r],
			})
		}
	}
	return out, nil
}

// PairResult is the outcome of one pair within SearchAll.
type PairResult struct {
	Pair      primer.Pair
	Amplicons []Amplicon
	Err       error
}

// SearchAll runs Search for every pair against one record. A failing pair
// does not stop the others; its error is carried in its PairResult.
func (e *Engine) SearchAll(seqID string, seq []byte, pairs []primer.Pair) []PairResult {
	out := make([]PairResult, len(pairs))
	for i, p := range pairs {
		amps, err := e.Search(seqID, seq, p)
		out[i] = PairResult{Pair: p, Amplicons: amps, Err: err}
	}
	return out
}
