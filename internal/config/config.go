// Package config loads settings for the equations command from TOML or YAML
// files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/equations"
)

// Config is the command configuration. Fields absent from a file keep their
// defaults.
type Config struct {
	// Precision is the precision of calculations in bits.
	Precision uint `toml:"precision" yaml:"precision"`
	// Integers restricts number literals to integers.
	Integers bool `toml:"integers" yaml:"integers"`
	// MaxDepth limits the nesting of parentheses. Zero means no limit.
	MaxDepth int `toml:"max_depth" yaml:"max_depth"`
	// Separator is written between results.
	Separator string `toml:"separator" yaml:"separator"`
	// LogLevel is a zerolog level name.
	LogLevel string `toml:"log_level" yaml:"log_level"`
	// Vars maps variable names to expressions bound before the program runs.
	Vars map[string]string `toml:"vars" yaml:"vars"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Precision: 64,
		LogLevel:  "warn",
	}
}

// Load reads a configuration file over the defaults. The format is chosen by
// the file extension: .toml, or .yaml and .yml. An empty path gives the
// defaults. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, fmt.Errorf("decoding %s: %w", path, err)
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return cfg, fmt.Errorf("decoding %s: unknown keys %v", path, keys)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("decoding %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unknown config format %q", ext)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Precision == 0 || c.Precision > big.MaxPrec {
		return fmt.Errorf("precision %d out of range", c.Precision)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("negative max_depth %d", c.MaxDepth)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	for name := range c.Vars {
		if !isName(name) {
			return fmt.Errorf("invalid variable name %q", name)
		}
	}
	return nil
}

// Level returns the configured log level, or warn if it does not parse.
func (c Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.WarnLevel
	}
	return l
}

// ParseOptions returns the parsing options the configuration describes.
func (c Config) ParseOptions() []equations.ParseOption {
	var opts []equations.ParseOption
	if c.Integers {
		opts = append(opts, equations.IntegersOnly())
	}
	if c.MaxDepth > 0 {
		opts = append(opts, equations.MaxDepth(c.MaxDepth))
	}
	return opts
}

// ContextOptions returns the evaluation options the configuration describes,
// parsing each variable's expression.
func (c Config) ContextOptions() ([]equations.ContextOption, error) {
	opts := []equations.ContextOption{equations.Prec(c.Precision)}
	names := make([]string, 0, len(c.Vars))
	for name := range c.Vars {
		names = append(names, name)
	}
	// Sorted so that the first error is always the same one.
	sort.Strings(names)
	popts := c.ParseOptions()
	for _, name := range names {
		e, err := equations.ParseString(c.Vars[name], popts...)
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}
		opts = append(opts, equations.Define(name, e))
	}
	return opts, nil
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
