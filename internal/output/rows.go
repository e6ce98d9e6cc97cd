// internal/output/rows.go
package output

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"amplicon/internal/engine"
)

// ErrNotText is returned by NewRow when an insert is not valid UTF-8.
var ErrNotText = errors.New("amplicon is not valid text")

// Row is one report line. Unlike engine.Amplicon it owns its data and can
// outlive the source record.
type Row struct {
	SequenceID   string
	PrimerName   string
	Start        int
	End          int
	InsertLength int
	TotalLength  int
	Amplicon     string
}

// NewRow decodes a's insert as text. Sequence bytes are not validated by
// the reader, so a record can carry arbitrary binary; such rows fail here
// and only that row is lost.
func NewRow(a engine.Amplicon) (Row, error) {
	if !utf8.Valid(a.Insert) {
		return Row{}, fmt.Errorf("%s/%s %d-%d: %w", a.SequenceID, a.PrimerName, a.Start, a.End, ErrNotText)
	}
	return Row{
		SequenceID:   a.SequenceID,
		PrimerName:   a.PrimerName,
		Start:        a.Start,
		End:          a.End,
		InsertLength: a.InsertLength,
		TotalLength:  a.TotalLength,
		Amplicon:     string(a.Insert),
	}, nil
}

// FormatRowTSV returns the seven TSVHeader columns (no trailing newline).
func FormatRowTSV(r Row) string {
	var b strings.Builder
	b.Grow(len(r.SequenceID) + len(r.PrimerName) + len(r.Amplicon) + 48)
	b.WriteString(r.SequenceID)
	b.WriteByte('\t')
	b.WriteString(r.PrimerName)
	for _, n := range [...]int{r.Start, r.End, r.InsertLength, r.TotalLength} {
		b.WriteByte('\t')
		b.WriteString(strconv.Itoa(n))
	}
	b.WriteByte('\t')
	b.WriteString(r.Amplicon)
	return b.String()
}
