// internal/output/json.go
package output

import "amplicon/pkg/api"

// ToAPI converts a Row to the stable wire schema (v1).
func ToAPI(r Row) api.AmpliconV1 {
	return api.AmpliconV1{
		SequenceID:   r.SequenceID,
		PrimerName:   r.PrimerName,
		Start:        r.Start,
		End:          r.End,
		InsertLength: r.InsertLength,
		ActualLength: r.TotalLength,
		Amplicon:     r.Amplicon,
	}
}
