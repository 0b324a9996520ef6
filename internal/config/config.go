// Package config loads the gorex command-line settings from a TOML or YAML
// file. Settings given on the command line take precedence and are applied by
// the caller.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/zyedidia/glob"
	"gopkg.in/yaml.v3"

	"github.com/twinfer/gorex"
)

// Format is the encoding of a configuration file.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	default:
		return "toml"
	}
}

// ErrUnknownPattern is returned by Resolve for an @name missing from the
// pattern library.
var ErrUnknownPattern = errors.New("config: unknown pattern")

// Config holds the complete command-line configuration
type Config struct {
	Search   SearchConfig      `toml:"search" yaml:"search"`
	Log      LogConfig         `toml:"log" yaml:"log"`
	Patterns map[string]string `toml:"patterns" yaml:"patterns"`
}

// SearchConfig holds the defaults for `gorex match`
type SearchConfig struct {
	Jobs      int      `toml:"jobs" yaml:"jobs"`
	Fold      bool     `toml:"ignore_case" yaml:"ignore_case"`
	Recursive bool     `toml:"recursive" yaml:"recursive"`
	Color     bool     `toml:"color" yaml:"color"`
	Include   []string `toml:"include" yaml:"include"`
	Exclude   []string `toml:"exclude" yaml:"exclude"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			Jobs: 4,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Patterns: map[string]string{},
	}
}

// Load reads a configuration file on top of the defaults. The format is
// chosen from the file extension; anything other than .yaml or .yml is read
// as TOML.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: read")
	}

	cfg, err := Parse(content, detectFormat(path))
	if err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// Parse decodes content on top of the defaults and validates the result.
func Parse(content []byte, format Format) (*Config, error) {
	cfg := Default()

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, errors.Wrap(err, "YAML parse error")
		}
	default:
		if _, err := toml.Decode(string(content), cfg); err != nil {
			return nil, errors.Wrap(err, "TOML parse error")
		}
	}

	if cfg.Patterns == nil {
		cfg.Patterns = map[string]string{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// detectFormat determines the configuration format from file extension
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Validate checks value ranges and that every library pattern and exclude
// glob compiles.
func (c *Config) Validate() error {
	if c.Search.Jobs < 1 {
		return errors.Errorf("search.jobs must be at least 1, got %d", c.Search.Jobs)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.Errorf("log.format %q is not one of text, json", c.Log.Format)
	}

	for name, expr := range c.Patterns {
		if name == "" {
			return errors.New("patterns: empty pattern name")
		}
		if _, err := gorex.Compile(expr); err != nil {
			return errors.Wrapf(err, "patterns.%s", name)
		}
	}

	for _, g := range c.Search.Exclude {
		if _, err := glob.Compile(g); err != nil {
			return errors.Wrapf(err, "search.exclude %q", g)
		}
	}

	return nil
}

// Resolve returns the pattern source for arg. An argument of the form @name
// is looked up in the pattern library; "@@..." stands for a literal pattern
// starting with "@". Any other argument is returned unchanged.
func (c *Config) Resolve(arg string) (string, error) {
	name, ok := strings.CutPrefix(arg, "@")
	if !ok {
		return arg, nil
	}
	if strings.HasPrefix(name, "@") {
		return name, nil
	}

	expr, ok := c.Patterns[name]
	if !ok {
		return "", errors.Wrapf(ErrUnknownPattern, "@%s", name)
	}
	return expr, nil
}
