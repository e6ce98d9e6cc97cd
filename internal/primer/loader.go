// internal/primer/loader.go
package primer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrNoPrimers is returned when a primer table yields no usable pair.
var ErrNoPrimers = errors.New("no primers found")

const tsvFields = 5

// Load reads a primer table, choosing the parser by extension:
// .yaml/.yml go through LoadYAML, everything else through LoadTSV.
func Load(path string, log *slog.Logger) ([]Pair, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path, log)
	default:
		return LoadTSV(path, log)
	}
}

// LoadTSV reads a tab-delimited file with exactly five columns:
//
//	name forward reverse min_insert_len max_insert_len
//
// Blank lines and '#' comments are ignored. Bad lines are skipped with a
// warning; the call fails only if the file cannot be read or nothing usable
// remains.
func LoadTSV(path string, log *slog.Logger) ([]Pair, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open primer file: %w", err)
	}
	defer func() { _ = fh.Close() }()
	return ParseTSV(fh, path, log)
}

// ParseTSV is LoadTSV over an arbitrary reader; name prefixes warnings.
func ParseTSV(r io.Reader, name string, log *slog.Logger) ([]Pair, error) {
	if log == nil {
		log = slog.Default()
	}
	var list []Pair
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p, err := parseLine(line)
		if err != nil {
			log.Warn("skipping primer line", "file", name, "line", ln, "err", err)
			continue
		}
		list = append(list, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoPrimers)
	}
	return list, nil
}

func parseLine(line string) (Pair, error) {
	f := strings.Split(line, "\t")
	if len(f) != tsvFields {
		return Pair{}, fmt.Errorf("expected %d tab-separated fields, got %d", tsvFields, len(f))
	}
	for i := range f {
		f[i] = strings.TrimSpace(f[i])
	}
	if f[0] == "" {
		return Pair{}, errors.New("empty primer name")
	}
	minL, err := strconv.Atoi(f[3])
	if err != nil {
		return Pair{}, fmt.Errorf("bad min_insert_len %q", f[3])
	}
	maxL, err := strconv.Atoi(f[4])
	if err != nil {
		return Pair{}, fmt.Errorf("bad max_insert_len %q", f[4])
	}
	p := NewPair(f[0], f[1], f[2], minL, maxL)
	if err := p.Validate(); err != nil {
		return Pair{}, err
	}
	return p, nil
}
