// internal/primer/match.go
package primer

import "bytes"

// FindAll returns every start offset of pattern in haystack, ascending,
// including overlapping occurrences.
//
// Scanning is a bytes.Index jump scan (vectorized on amd64/arm64) restarted
// one byte past each hit, so the cost tracks the number of hits rather than
// len(haystack)*len(pattern).
func FindAll(haystack, pattern []byte) ([]int, error) {
	pl := len(pattern)
	if pl == 0 {
		return nil, ErrEmptyPrimer
	}
	if len(haystack) < pl {
		return nil, nil
	}
	var out []int
	for i := 0; i <= len(haystack)-pl; {
		j := bytes.Index(haystack[i:], pattern)
		if j < 0 {
			break
		}
		pos := i + j
		out = append(out, pos)
		i = pos + 1
	}
	return out, nil
}
