// internal/writers/writer.go
package writers

import (
	"bufio"
	"context"
	"io"

	"amplicon/internal/output"
)

// Writer funnels rows from many producers into a single goroutine that owns
// the output. After the first write error the goroutine keeps draining its
// input, so producers never block on a dead sink.
type Writer struct {
	in     chan output.Row
	done   chan error
	failed chan struct{}
	err    error // set before failed is closed
}

// Start spins up the writer goroutine for format. Unknown formats fail here,
// before anything is written.
func Start(out io.Writer, format string, header bool, bufSize int) (*Writer, error) {
	factory, err := Lookup(format)
	if err != nil {
		return nil, err
	}
	if bufSize <= 0 {
		bufSize = 64
	}
	w := &Writer{
		in:     make(chan output.Row, bufSize),
		done:   make(chan error, 1),
		failed: make(chan struct{}),
	}

	go func() {
		bw := bufio.NewWriterSize(out, 64<<10)
		enc, err := factory(bw, header)
		if err != nil {
			w.fail(err)
		}
		for r := range w.in {
			if w.err != nil {
				continue
			}
			if err := enc(r); err != nil {
				w.fail(err)
			}
		}
		if w.err == nil {
			if err := bw.Flush(); err != nil {
				w.fail(err)
			}
		}
		w.done <- w.err
	}()
	return w, nil
}

func (w *Writer) fail(err error) {
	w.err = err
	close(w.failed)
}

// Send queues r. It returns the sink's error once the sink has failed, or
// ctx.Err() if ctx ends first.
func (w *Writer) Send(ctx context.Context, r output.Row) error {
	select {
	case <-w.failed:
		return w.err
	default:
	}
	select {
	case w.in <- r:
		return nil
	case <-w.failed:
		return w.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting rows, waits for everything queued to be written and
// flushed, and returns the first write error.
func (w *Writer) Close() error {
	close(w.in)
	return <-w.done
}
