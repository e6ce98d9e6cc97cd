// internal/writers/registry.go
package writers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"sort"

	"amplicon/internal/output"
)

// RowEncoder writes one row to the buffered sink.
type RowEncoder func(output.Row) error

// EncoderFactory prepares an encoder for a fresh sink, emitting any
// preamble (such as a TSV header) first.
type EncoderFactory func(bw *bufio.Writer, header bool) (RowEncoder, error)

var registry = map[string]EncoderFactory{}

// Register adds or replaces the encoder for format (last wins).
func Register(format string, f EncoderFactory) { registry[format] = f }

// Lookup returns the encoder factory for format.
func Lookup(format string) (EncoderFactory, error) {
	f, ok := registry[format]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return f, nil
}

// Registered lists the registered formats, sorted.
func Registered() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func init() {
	Register(output.FormatTSV, func(bw *bufio.Writer, header bool) (RowEncoder, error) {
		if header {
			if _, err := bw.WriteString(output.TSVHeader + "\n"); err != nil {
				return nil, err
			}
		}
		return func(r output.Row) error {
			_, err := bw.WriteString(output.FormatRowTSV(r) + "\n")
			return err
		}, nil
	})

	Register(output.FormatJSONL, func(bw *bufio.Writer, _ bool) (RowEncoder, error) {
		enc := json.NewEncoder(bw)
		return func(r output.Row) error {
			return enc.Encode(output.ToAPI(r))
		}, nil
	})

	Register(output.FormatFASTA, func(bw *bufio.Writer, _ bool) (RowEncoder, error) {
		return func(r output.Row) error {
			_, err := bw.WriteString(output.FormatRowFASTA(r) + "\n")
			return err
		}, nil
	})
}
