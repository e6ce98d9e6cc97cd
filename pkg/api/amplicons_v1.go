// pkg/api/amplicons_v1.go
package api

// AmpliconV1 is the stable JSONL schema for one reported amplicon.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
// ActualLength counts both primers plus the insert; Amplicon is the insert only.
type AmpliconV1 struct {
	SequenceID   string `json:"sequence_id"`
	PrimerName   string `json:"primer_name"`
	Start        int    `json:"start"`
	End          int    `json:"end"`
	InsertLength int    `json:"insert_length"`
	ActualLength int    `json:"actual_length"`
	Amplicon     string `json:"amplicon"`
}
