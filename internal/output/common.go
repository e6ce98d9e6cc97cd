package output

// Output formats understood by the writers package.
const (
	FormatTSV   = "tsv"
	FormatJSONL = "jsonl"
	FormatFASTA = "fasta"
)

// Formats lists every supported format, in help-text order.
var Formats = []string{FormatTSV, FormatJSONL, FormatFASTA}

// TSVHeader is the canonical header row for TSV output.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "sequence_id\tprimer_name\tstart\tend\tinsert_length\tactual_length\tamplicon"
