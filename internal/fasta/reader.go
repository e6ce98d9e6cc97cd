// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// Record is one FASTA entry. Seq is upper-cased and owned by the receiver.
type Record struct {
	ID  string
	Seq []byte
}

// Scan parses FASTA from r and calls emit once per record.
//
// The ID is the first whitespace-delimited token of the header. Sequence
// data before the first header, records with an empty ID, and records with
// no sequence are dropped without error. Scan returns ctx.Err() promptly
// once ctx is done, and stops at the first error returned by emit.
func Scan(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		id    string
		inRec bool
		seq   = make([]byte, 0, 1<<16)
	)

	flush := func() error {
		if !inRec || id == "" || len(seq) == 0 {
			return nil
		}
		return emit(Record{ID: id, Seq: append([]byte(nil), seq...)})
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			seq = seq[:0]
			id = parseHeaderID(line[1:])
			inRec = true
			continue
		}
		if !inRec {
			continue
		}
		n := len(seq)
		seq = append(seq, bytes.TrimSpace(line)...)
		upperASCII(seq[n:])
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// Stream opens path and scans it on a goroutine. Open failures are returned
// immediately; a scan failure is delivered on the error channel, which
// yields exactly one value (nil on success) after the record channel closes.
func Stream(ctx context.Context, path string) (<-chan Record, <-chan error, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, nil, err
	}

	out := make(chan Record, 8)
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		err := Scan(ctx, rc, func(r Record) error {
			select {
			case out <- r:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if cerr := rc.Close(); err == nil {
			err = cerr
		}
		close(out)
		errc <- err
	}()
	return out, errc, nil
}

// upperASCII upper-cases a-z in place. Other bytes, including invalid
// UTF-8, are left alone so offsets keep indexing the input.
func upperASCII(b []byte) {
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
