// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"amplicon/internal/engine"
	"amplicon/internal/fasta"
	"amplicon/internal/primer"
)

// Config controls the scanning pipeline.
type Config struct {
	Threads int  // worker goroutines; 0 = runtime.NumCPU()
	Ordered bool // release records to visit in input order

	Log *slog.Logger
	// OnRecord, if set, is called from the collector once per record with
	// the number of amplicons it produced.
	OnRecord func(amplicons int)
}

// Stats summarizes a run.
type Stats struct {
	Records   int // records whose results reached the collector
	Amplicons int // amplicons handed to visit
	Skipped   int // (record, pair) units dropped because of an error
	Capped    int // (record, pair) units truncated by the result cap
}

// reorderWindow is how many records per worker may be read ahead of the
// oldest unemitted one in ordered mode.
const reorderWindow = 4

type job struct {
	idx int
	rec fasta.Record
}

type batch struct {
	idx     int
	rec     fasta.Record
	results []engine.PairResult
}

// ForEachAmplicon reads every record of seqFiles, searches it against all
// pairs on cfg.Threads workers, and calls visit for each amplicon from a
// single goroutine.
//
// Errors on a (record, pair) unit are logged and skipped. An unreadable
// input, a visit error, or ctx ending stops the run: no new records are
// taken, in-flight work winds down, and the first error is returned.
// Without cfg.Ordered, rows of different records may arrive in any order.
func ForEachAmplicon(
	ctx context.Context,
	cfg Config,
	seqFiles []string,
	pairs []primer.Pair,
	s Searcher,
	visit func(engine.Amplicon) error,
) (Stats, error) {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan job, threads*2)
	results := make(chan batch, threads*2)

	// Ordered mode: a slot is held from feeding until emit, which bounds
	// the reorder buffer behind one slow record.
	var window chan struct{}
	if cfg.Ordered {
		window = make(chan struct{}, threads*reorderWindow)
	}

	// Feed work
	g.Go(func() error {
		defer close(jobs)
		idx := 0
		for _, fa := range seqFiles {
			recs, errc, err := fasta.Stream(gctx, fa)
			if err != nil {
				return fmt.Errorf("open %s: %w", fa, err)
			}
			for rec := range recs {
				if window != nil {
					select {
					case window <- struct{}{}:
					case <-gctx.Done():
						return gctx.Err()
					}
				}
				select {
				case jobs <- job{idx: idx, rec: rec}:
					idx++
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			if err := <-errc; err != nil {
				return fmt.Errorf("read %s: %w", fa, err)
			}
		}
		return nil
	})

	// Workers
	var wg sync.WaitGroup
	for w := 0; w < threads; w++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for j := range jobs {
				b := batch{idx: j.idx, rec: j.rec, results: s.SearchAll(j.rec.ID, j.rec.Seq, pairs)}
				select {
				case results <- b:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	// Collector
	var st Stats
	g.Go(func() error {
		emit := func(b batch) error {
			n := 0
			for _, pr := range b.results {
				switch {
				case pr.Err == nil:
				case errors.Is(pr.Err, engine.ErrResultCapReached):
					st.Capped++
					log.Warn("result cap reached; amplicons truncated",
						"sequence_id", b.rec.ID, "primer", pr.Pair.Name, "kept", len(pr.Amplicons))
				default:
					st.Skipped++
					log.Warn("skipping primer pair for record",
						"sequence_id", b.rec.ID, "primer", pr.Pair.Name, "err", pr.Err)
					continue
				}
				for _, a := range pr.Amplicons {
					if err := visit(a); err != nil {
						return err
					}
					n++
				}
			}
			st.Records++
			st.Amplicons += n
			if cfg.OnRecord != nil {
				cfg.OnRecord(n)
			}
			return nil
		}

		if !cfg.Ordered {
			for b := range results {
				if err := emit(b); err != nil {
					return err
				}
			}
			return nil
		}

		pending := make(map[int]batch)
		next := 0
		for b := range results {
			pending[b.idx] = b
			for {
				nb, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				err := emit(nb)
				<-window
				if err != nil {
					return err
				}
			}
		}
		return nil
	})

	err := g.Wait()
	if ctx.Err() != nil {
		return st, ctx.Err()
	}
	return st, err
}
