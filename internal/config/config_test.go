package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/twinfer/gorex"
)

const tomlConfig = `
[search]
jobs = 8
ignore_case = true
include = ["*.log", "*.txt"]
exclude = ["*.{gz,zip}"]

[log]
level = "debug"
format = "json"

[patterns]
version = "v.+\\..+\\..+"
empty = ""
`

const yamlConfig = `
search:
  jobs: 2
  recursive: true
  color: true
log:
  level: info
patterns:
  word: "(a)+b?"
`

func TestParseTOML(t *testing.T) {
	cfg, err := Parse([]byte(tomlConfig), FormatTOML)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := &Config{
		Search: SearchConfig{
			Jobs:    8,
			Fold:    true,
			Include: []string{"*.log", "*.txt"},
			Exclude: []string{"*.{gz,zip}"},
		},
		Log: LogConfig{Level: "debug", Format: "json"},
		Patterns: map[string]string{
			"version": `v.+\..+\..+`,
			"empty":   "",
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAMLKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(yamlConfig), FormatYAML)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := &Config{
		Search:   SearchConfig{Jobs: 2, Recursive: true, Color: true},
		Log:      LogConfig{Level: "info", Format: "text"},
		Patterns: map[string]string{"word": "(a)+b?"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDetectsFormat(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name    string
		content string
		jobs    int
	}{
		{"gorex.toml", tomlConfig, 8},
		{"gorex.yaml", yamlConfig, 2},
		{"gorex.YML", yamlConfig, 2},
		{"gorex.conf", tomlConfig, 8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name)
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load(%s) failed: %v", tc.name, err)
			}
			if cfg.Search.Jobs != tc.jobs {
				t.Errorf("Expected jobs=%d, got %d", tc.jobs, cfg.Search.Jobs)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("Expected an error for a missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist in the chain, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		format  Format
		want    string
	}{
		{"bad toml", "[search\njobs = 1", FormatTOML, "TOML parse error"},
		{"bad yaml", "search: [", FormatYAML, "YAML parse error"},
		{"zero jobs", "[search]\njobs = 0", FormatTOML, "search.jobs"},
		{"bad level", "[log]\nlevel = \"loud\"", FormatTOML, "log.level"},
		{"bad format", "log:\n  format: xml", FormatYAML, "log.format"},
		{"bad pattern", "[patterns]\nbroken = \"(ab\"", FormatTOML, "patterns.broken"},
		{"bad exclude", "[search]\nexclude = [\"[\"]", FormatTOML, "search.exclude"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.content), tc.format)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Expected error containing %q, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestParseBadPatternWrapsSyntaxError(t *testing.T) {
	_, err := Parse([]byte("[patterns]\nbroken = \"x(ab\""), FormatTOML)

	var syntaxErr *gorex.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Expected a *gorex.SyntaxError in the chain, got %v", err)
	}
	if syntaxErr.Index != 1 {
		t.Errorf("Expected index 1, got %d", syntaxErr.Index)
	}
}

func TestResolve(t *testing.T) {
	cfg := Default()
	cfg.Patterns["semver"] = `.+\..+\..+`

	cases := []struct {
		arg  string
		want string
		err  error
	}{
		{"plain", "plain", nil},
		{"", "", nil},
		{"@semver", `.+\..+\..+`, nil},
		{"@@handle", "@handle", nil},
		{"@missing", "", ErrUnknownPattern},
	}

	for _, tc := range cases {
		t.Run(tc.arg, func(t *testing.T) {
			got, err := cfg.Resolve(tc.arg)
			if !errors.Is(err, tc.err) {
				t.Fatalf("Resolve(%q) error = %v, expected %v", tc.arg, err, tc.err)
			}
			if got != tc.want {
				t.Errorf("Resolve(%q) = %q, expected %q", tc.arg, got, tc.want)
			}
		})
	}
}

func TestFormatString(t *testing.T) {
	if FormatTOML.String() != "toml" || FormatYAML.String() != "yaml" {
		t.Errorf("Unexpected format names %q, %q", FormatTOML, FormatYAML)
	}
}
