// Package config resolves run settings from flags, AMPLICON_* environment
// variables, and an optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"amplicon/internal/logging"
	"amplicon/internal/output"
)

// EnvPrefix prefixes every environment override, e.g. AMPLICON_THREADS.
const EnvPrefix = "AMPLICON"

// Config is the resolved configuration for one run. Length windows are
// deliberately absent: they come from the primer table only.
type Config struct {
	// FASTA inputs; "-" is stdin.
	Fasta []string `mapstructure:"fasta"`
	// Primer table (.tsv, or .yaml/.yml).
	Primers string `mapstructure:"primers"`
	// Report path; "-" is stdout, .gz is BGZF, .zst is zstd.
	Output string `mapstructure:"output"`
	Format string `mapstructure:"format"`
	Header bool   `mapstructure:"header"`

	Threads    int  `mapstructure:"threads"`
	Ordered    bool `mapstructure:"ordered"`
	MaxResults int  `mapstructure:"max-results"`

	LogLevel    string `mapstructure:"log-level"`
	LogFormat   string `mapstructure:"log-format"`
	Progress    bool   `mapstructure:"progress"`
	FailOnEmpty bool   `mapstructure:"fail-on-empty"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	lc := logging.DefaultConfig()
	return Config{
		Output:    "-",
		Format:    output.FormatTSV,
		Header:    true,
		LogLevel:  lc.Level,
		LogFormat: lc.Format,
		Progress:  true,
	}
}

// RegisterFlags declares every configurable key on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Defaults()
	fs.StringSliceP("fasta", "f", nil, "FASTA file(s), plain/gzip/zstd; repeatable; '-' for stdin [*]")
	fs.StringP("primers", "p", "", "primer table: TSV (name fwd rev min max) or YAML [*]")
	fs.StringP("output", "o", d.Output, "report path ('-' = stdout; .gz = BGZF; .zst = zstd)")
	fs.String("format", d.Format, "report format: "+strings.Join(output.Formats, " | "))
	fs.Bool("header", d.Header, "write the TSV header row")
	fs.IntP("threads", "t", d.Threads, "worker goroutines (0 = all CPUs)")
	fs.Bool("ordered", d.Ordered, "emit rows in input record order (buffers out-of-order records)")
	fs.Int("max-results", d.MaxResults, "cap amplicons per record and primer pair (0 = unlimited)")
	fs.String("log-level", d.LogLevel, "log level: debug | info | warn | error")
	fs.String("log-format", d.LogFormat, "log format: auto | text | json")
	fs.Bool("progress", d.Progress, "show a progress line when stderr is a terminal")
	fs.Bool("fail-on-empty", d.FailOnEmpty, "exit 1 when no amplicon is found")
	fs.String("config", "", "YAML config file (flags and AMPLICON_* env vars override it)")
}

// Load layers fs over the environment, the optional config file named by the
// "config" flag, and Defaults, then validates the result.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return Config{}, err
	}
	if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
		v.SetConfigFile(f.Value.String())
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return c, c.Validate()
}

// Validate reports the first usage error in c.
func (c Config) Validate() error {
	switch {
	case len(c.Fasta) == 0:
		return errors.New("at least one --fasta input is required")
	case c.Primers == "":
		return errors.New("--primers is required")
	case c.Threads < 0:
		return errors.New("--threads must be ≥ 0")
	case c.MaxResults < 0:
		return errors.New("--max-results must be ≥ 0")
	case !slices.Contains(output.Formats, c.Format):
		return fmt.Errorf("invalid --format %q", c.Format)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Logging extracts the logging section.
func (c Config) Logging() logging.Config {
	return logging.Config{Level: c.LogLevel, Format: c.LogFormat}
}
