// Package outfile opens the report sink named on the command line.
package outfile

import (
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/biogo/hts/bgzf"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/multierr"
)

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// stack closes its layers innermost (compressor) first, then the file.
type stack struct {
	io.Writer
	layers []io.Closer
}

func (s *stack) Close() error {
	var err error
	for _, c := range s.layers {
		err = multierr.Append(err, c.Close())
	}
	return err
}

// Create opens path for writing; stdout stands in for "-".
//
//	"" or "-"  stdout (Close does not close it)
//	*.gz       BGZF, readable by gzip and indexable by tabix
//	*.zst      zstd
//	otherwise  plain file
func Create(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{stdout}, nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(path, ".gz"):
		zw := bgzf.NewWriter(fh, runtime.NumCPU())
		return &stack{Writer: zw, layers: []io.Closer{zw, fh}}, nil
	case strings.HasSuffix(path, ".zst"):
		zw, err := zstd.NewWriter(fh)
		if err != nil {
			return nil, multierr.Append(err, fh.Close())
		}
		return &stack{Writer: zw, layers: []io.Closer{zw, fh}}, nil
	}
	return fh, nil
}
