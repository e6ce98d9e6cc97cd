// internal/primer/pair.go
package primer

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPrimer    = errors.New("empty primer")
	ErrNegativeLength = errors.New("negative insert length bound")
	ErrInvertedWindow = errors.New("min insert length exceeds max insert length")
)

// Pair is one named primer assay. Forward and Reverse are written 5'→3' as
// synthesized; the engine reverse-complements Reverse before matching.
// MinInsert and MaxInsert bound the region strictly between the two sites.
//
// A Pair is immutable once loaded and is shared read-only by all workers.
type Pair struct {
	Name      string
	Forward   []byte
	Reverse   []byte
	MinInsert int
	MaxInsert int
}

// NewPair builds a Pair from text primers, upper-casing them.
func NewPair(name, fwd, rev string, minInsert, maxInsert int) Pair {
	return Pair{
		Name:      name,
		Forward:   upper(fwd),
		Reverse:   upper(rev),
		MinInsert: minInsert,
		MaxInsert: maxInsert,
	}
}

// FromExpected builds a Pair whose window is expected±margin, floored at 0.
func FromExpected(name, fwd, rev string, expected, margin int) Pair {
	lo := expected - margin
	if lo < 0 {
		lo = 0
	}
	return NewPair(name, fwd, rev, lo, expected+margin)
}

// Validate reports the first problem that makes p unusable.
func (p Pair) Validate() error {
	if len(p.Forward) == 0 {
		return fmt.Errorf("forward: %w", ErrEmptyPrimer)
	}
	if len(p.Reverse) == 0 {
		return fmt.Errorf("reverse: %w", ErrEmptyPrimer)
	}
	if err := checkBases(p.Forward); err != nil {
		return fmt.Errorf("forward: %w", err)
	}
	if err := checkBases(p.Reverse); err != nil {
		return fmt.Errorf("reverse: %w", err)
	}
	if p.MinInsert < 0 || p.MaxInsert < 0 {
		return ErrNegativeLength
	}
	if p.MinInsert > p.MaxInsert {
		return fmt.Errorf("%w (%d > %d)", ErrInvertedWindow, p.MinInsert, p.MaxInsert)
	}
	return nil
}

// String is used in log attributes.
func (p Pair) String() string {
	return fmt.Sprintf("%s(%s/%s %d-%d)", p.Name, p.Forward, p.Reverse, p.MinInsert, p.MaxInsert)
}

func checkBases(seq []byte) error {
	for i, b := range seq {
		if complement[b] == 0 {
			return &UnsupportedBaseError{Base: b, Pos: i}
		}
	}
	return nil
}

func upper(s string) []byte {
	out := []byte(s)
	for i, c := range out {
		if 'a' <= c && c <= 'z' {
			out[i] = c - ('a' - 'A')
		}
	}
	return out
}
