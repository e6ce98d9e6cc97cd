// Package progress draws a single self-overwriting status line on stderr
// while records are being scanned.
package progress

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	frames       = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
)

// Reporter counts records and amplicons. Its methods are safe for concurrent
// use; a disabled Reporter only counts.
type Reporter struct {
	w        io.Writer
	interval time.Duration
	enabled  bool

	records   atomic.Int64
	amplicons atomic.Int64

	start time.Time
	stop  chan struct{}
	wg    sync.WaitGroup

	mu    sync.Mutex // guards w and drawn
	drawn bool       // a status line is on screen
}

// New returns a Reporter that draws on w every interval when enabled.
func New(w io.Writer, enabled bool, interval time.Duration) *Reporter {
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	return &Reporter{w: w, enabled: enabled, interval: interval}
}

// Start begins drawing. It is a no-op when disabled.
func (r *Reporter) Start() {
	r.start = time.Now()
	if !r.enabled {
		return
	}
	r.stop = make(chan struct{})
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		t := time.NewTicker(r.interval)
		defer t.Stop()
		for i := 0; ; i++ {
			select {
			case <-r.stop:
				return
			case <-t.C:
				r.draw(frames[i%len(frames)])
			}
		}
	}()
}

// Record notes one finished record and the amplicons it produced.
func (r *Reporter) Record(amplicons int) {
	r.records.Add(1)
	r.amplicons.Add(int64(amplicons))
}

// Finish stops drawing and clears the line.
func (r *Reporter) Finish() {
	if !r.enabled || r.stop == nil {
		return
	}
	close(r.stop)
	r.wg.Wait()
	r.draw("✓")
	r.mu.Lock()
	_, _ = fmt.Fprintln(r.w)
	r.drawn = false
	r.mu.Unlock()
}

// Writer returns a writer for log output that shares the terminal with the
// status line: each write first erases the line, and the next tick redraws
// it. A disabled Reporter returns its underlying writer.
func (r *Reporter) Writer() io.Writer {
	if !r.enabled {
		return r.w
	}
	return lineClearer{r}
}

type lineClearer struct{ r *Reporter }

func (c lineClearer) Write(p []byte) (int, error) {
	c.r.mu.Lock()
	defer c.r.mu.Unlock()
	if c.r.drawn {
		_, _ = io.WriteString(c.r.w, "\r\x1b[K")
		c.r.drawn = false
	}
	return c.r.w.Write(p)
}

// Counts returns the records and amplicons seen so far.
func (r *Reporter) Counts() (records, amplicons int64) {
	return r.records.Load(), r.amplicons.Load()
}

func (r *Reporter) draw(frame string) {
	rec, amp := r.Counts()
	elapsed := time.Since(r.start).Truncate(time.Second)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drawn = true
	_, _ = fmt.Fprintf(r.w, "\r%s %s %d records, %d amplicons",
		spinnerStyle.Render(frame), dimStyle.Render("["+elapsed.String()+"]"), rec, amp)
}
