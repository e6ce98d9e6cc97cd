// internal/engine/amplicon.go
package engine

// Amplicon is one accepted (forward hit, reverse hit) combination.
//
// Start is the first base after the forward primer site and End is where the
// reverse primer's reverse complement begins, so Insert == seq[Start:End]
// and excludes both primers. Insert aliases the record's sequence; call
// Clone before keeping an Amplicon past the record.
type Amplicon struct {
	SequenceID   string
	PrimerName   string
	Start        int
	End          int
	InsertLength int
	TotalLength  int
	Insert       []byte
}

// Clone returns a copy whose Insert no longer aliases the source record.
func (a Amplicon) Clone() Amplicon {
	a.Insert = append([]byte(nil), a.Insert...)
	return a
}
