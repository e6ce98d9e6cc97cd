// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"amplicon/internal/config"
	"amplicon/internal/engine"
	"amplicon/internal/fasta"
	"amplicon/internal/logging"
	"amplicon/internal/outfile"
	"amplicon/internal/output"
	"amplicon/internal/pipeline"
	"amplicon/internal/primer"
	"amplicon/internal/progress"
	"amplicon/internal/writers"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitNoMatches = 1 // only with FailOnEmpty
	ExitUsage     = 2 // bad flags, unreadable inputs, no primers
	ExitIO        = 3 // read or report-write failure mid-run
	ExitCancelled = 130
)

// Summary describes a finished run.
type Summary struct {
	Primers     int
	Records     int
	Amplicons   int
	Rows        int
	SkippedRows int
	Skipped     int
	Capped      int
}

// Run executes one scan described by cfg and returns the process exit code.
// Warnings and the run summary go to stderr through slog.
func Run(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) int {
	prog := progress.New(stderr, cfg.Progress && logging.IsTerminal(stderr), 0)
	log, err := logging.New(prog.Writer(), cfg.Logging().Resolve(stderr))
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return ExitUsage
	}
	log = log.With("run_id", uuid.NewString())

	_, code := run(ctx, cfg, log, prog, stdout)
	return code
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger, prog *progress.Reporter, stdout io.Writer) (Summary, int) {
	var sum Summary
	started := time.Now()

	pairs, err := primer.Load(cfg.Primers, log)
	if err != nil {
		log.Error("cannot load primers", "path", cfg.Primers, "err", err)
		return sum, ExitUsage
	}
	sum.Primers = len(pairs)
	log.Debug("primers loaded", "count", len(pairs))

	for _, fa := range cfg.Fasta {
		if err := checkReadable(fa); err != nil {
			log.Error("cannot open sequence file", "path", fa, "err", err)
			return sum, ExitUsage
		}
	}

	sink, err := outfile.Create(cfg.Output, stdout)
	if err != nil {
		log.Error("cannot create output", "path", cfg.Output, "err", err)
		return sum, ExitUsage
	}
	w, err := writers.Start(sink, cfg.Format, cfg.Header, 256)
	if err != nil {
		_ = sink.Close()
		log.Error("cannot start writer", "err", err)
		return sum, ExitUsage
	}

	eng := engine.New(engine.Config{MaxResults: cfg.MaxResults})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Info("finding amplicons", "fasta", cfg.Fasta, "primers", len(pairs), "threads", cfg.Threads)
	prog.Start()
	st, perr := pipeline.ForEachAmplicon(ctx,
		pipeline.Config{Threads: cfg.Threads, Ordered: cfg.Ordered, Log: log, OnRecord: prog.Record},
		cfg.Fasta, pairs, eng,
		func(a engine.Amplicon) error {
			row, err := output.NewRow(a)
			if err != nil {
				sum.SkippedRows++
				log.Warn("skipping amplicon row", "err", err)
				return nil
			}
			if err := w.Send(ctx, row); err != nil {
				return err
			}
			sum.Rows++
			return nil
		},
	)
	prog.Finish()

	werr := multierr.Append(w.Close(), sink.Close())

	sum.Records, sum.Amplicons = st.Records, st.Amplicons
	sum.Skipped, sum.Capped = st.Skipped, st.Capped
	log.Info("done",
		"records", sum.Records, "amplicons", sum.Amplicons, "rows", sum.Rows,
		"skipped_pairs", sum.Skipped, "skipped_rows", sum.SkippedRows, "capped_pairs", sum.Capped,
		"elapsed", time.Since(started).Round(time.Millisecond).String())

	switch {
	case writers.IsBrokenPipe(perr) || writers.IsBrokenPipe(werr):
		return sum, ExitOK
	case errors.Is(perr, context.Canceled):
		log.Warn("cancelled; output is incomplete")
		return sum, ExitCancelled
	case perr != nil:
		log.Error("scan failed", "err", perr)
		return sum, ExitIO
	case werr != nil:
		log.Error("cannot write report", "path", cfg.Output, "err", werr)
		return sum, ExitIO
	case sum.Rows == 0 && cfg.FailOnEmpty:
		return sum, ExitNoMatches
	}
	return sum, ExitOK
}

// checkReadable opens and closes path so a bad input fails before any
// output is produced. Stdin is not probed.
func checkReadable(path string) error {
	if path == "-" {
		return nil
	}
	rc, err := fasta.Open(path)
	if err != nil {
		return err
	}
	return rc.Close()
}
