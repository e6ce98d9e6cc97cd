package output

import "fmt"

// FormatRowFASTA renders r as a two-line FASTA record whose header carries
// the coordinates, e.g. ">chr1|16S|100-350 insert=250 actual=290".
func FormatRowFASTA(r Row) string {
	return fmt.Sprintf(">%s|%s|%d-%d insert=%d actual=%d\n%s",
		r.SequenceID, r.PrimerName, r.Start, r.End, r.InsertLength, r.TotalLength, r.Amplicon)
}
