package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jcorbin/gorpn/internal/rpn"
)

// Config collects every setting of a run; it may be loaded from a YAML file,
// with command line flags taking precedence.
type Config struct {
	MaxDepth    int      `yaml:"max_depth"`
	Bits        int      `yaml:"bits"`
	Operators   []string `yaml:"operators"`
	Format      string   `yaml:"format"`
	Jobs        int      `yaml:"jobs"`
	Strict      bool     `yaml:"strict"`
	MetricsFile string   `yaml:"metrics_file"`
}

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
)

// DefaultConfig returns the reference settings: a 10 deep stack of 32-bit
// integers, all four operators, and text output.
func DefaultConfig() Config {
	return Config{
		MaxDepth:  rpn.DefaultMaxDepth,
		Bits:      rpn.DefaultBits,
		Operators: []string{"+", "-", "*", "/"},
		Format:    formatText,
		Jobs:      1,
	}
}

// LoadConfig reads a YAML config file over the defaults; unknown keys are an
// error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("unable to parse config %v: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (cfg Config) Validate() error {
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("invalid max_depth %v, must not be negative", cfg.MaxDepth)
	}
	if cfg.Bits < 2 || cfg.Bits > 64 {
		return fmt.Errorf("invalid bits %v, must be within 2..64", cfg.Bits)
	}
	if len(cfg.Operators) == 0 {
		return errors.New("no operators enabled")
	}
	if _, err := rpn.NewOpSet(cfg.Operators...); err != nil {
		return err
	}
	switch cfg.Format {
	case formatText, formatJSON:
	default:
		return fmt.Errorf("invalid format %q, must be %q or %q", cfg.Format, formatText, formatJSON)
	}
	if cfg.Jobs < 1 {
		return fmt.Errorf("invalid jobs %v, must be at least 1", cfg.Jobs)
	}
	return nil
}

// EvalOptions converts the config into evaluator options.
func (cfg Config) EvalOptions() ([]rpn.Option, error) {
	ops, err := rpn.NewOpSet(cfg.Operators...)
	if err != nil {
		return nil, err
	}
	return []rpn.Option{
		rpn.WithMaxDepth(cfg.MaxDepth),
		rpn.WithBits(cfg.Bits),
		rpn.WithOperators(ops),
	}, nil
}
