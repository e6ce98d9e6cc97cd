// Package writers turns report rows into serialized output.
//
// Design:
//   - One goroutine owns the sink, so rows are never interleaved.
//   - Writers own all presentation knowledge (TSV/JSONL/FASTA).
//   - JSONL goes through pkg/api (v1) for a stable wire format.
package writers
