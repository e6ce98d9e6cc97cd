// internal/primer/rc.go
package primer

import (
	"errors"
	"fmt"
)

// ErrUnsupportedBase marks a byte outside {A,C,G,T} in complementation input.
var ErrUnsupportedBase = errors.New("unsupported base")

// UnsupportedBaseError records which byte could not be complemented.
type UnsupportedBaseError struct {
	Base byte
	Pos  int
}

func (e *UnsupportedBaseError) Error() string {
	return fmt.Sprintf("unsupported base %q at %d", e.Base, e.Pos)
}

func (e *UnsupportedBaseError) Unwrap() error { return ErrUnsupportedBase }

var complement [256]byte

func init() {
	complement['A'] = 'T'
	complement['C'] = 'G'
	complement['G'] = 'C'
	complement['T'] = 'A'
}

// ReverseComplement returns a new slice holding seq reversed with A↔T, C↔G.
// Only the four canonical upper-case bases are accepted; Pos in the returned
// error indexes the input, not the output.
func ReverseComplement(seq []byte) ([]byte, error) {
	n := len(seq)
	if n == 0 {
		return nil, nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b := seq[n-1-i]
		c := complement[b]
		if c == 0 {
			return nil, &UnsupportedBaseError{Base: b, Pos: n - 1 - i}
		}
		out[i] = c
	}
	return out, nil
}
