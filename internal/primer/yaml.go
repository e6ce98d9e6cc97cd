package primer

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlPair accepts either an explicit window (min_insert/max_insert) or
// expected_length with an optional margin.
type yamlPair struct {
	Name      string `yaml:"name"`
	Forward   string `yaml:"forward"`
	Reverse   string `yaml:"reverse"`
	MinInsert *int   `yaml:"min_insert"`
	MaxInsert *int   `yaml:"max_insert"`
	Expected  *int   `yaml:"expected_length"`
	Margin    int    `yaml:"margin"`
}

type yamlTable struct {
	Primers []yamlPair `yaml:"primers"`
}

// LoadYAML reads a primer table of the form
//
//	primers:
//	  - {name: p1, forward: ACGT, reverse: ACGT, min_insert: 8, max_insert: 8}
//	  - {name: p2, forward: GGCC, reverse: TTAA, expected_length: 120, margin: 10}
//
// Invalid entries are skipped with a warning, as in LoadTSV.
func LoadYAML(path string, log *slog.Logger) ([]Pair, error) {
	if log == nil {
		log = slog.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open primer file: %w", err)
	}
	var tbl yamlTable
	if err := yaml.Unmarshal(data, &tbl); err != nil {
		return nil, fmt.Errorf("%s: parse yaml: %w", path, err)
	}

	var list []Pair
	for i, yp := range tbl.Primers {
		p, err := yp.pair()
		if err == nil {
			err = p.Validate()
		}
		if err != nil {
			log.Warn("skipping primer entry", "file", path, "entry", i+1, "name", yp.Name, "err", err)
			continue
		}
		list = append(list, p)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoPrimers)
	}
	return list, nil
}

func (y yamlPair) pair() (Pair, error) {
	if y.Name == "" {
		return Pair{}, errors.New("empty primer name")
	}
	switch {
	case y.MinInsert != nil && y.MaxInsert != nil:
		return NewPair(y.Name, y.Forward, y.Reverse, *y.MinInsert, *y.MaxInsert), nil
	case y.Expected != nil:
		return FromExpected(y.Name, y.Forward, y.Reverse, *y.Expected, y.Margin), nil
	default:
		return Pair{}, errors.New("need min_insert and max_insert, or expected_length")
	}
}
