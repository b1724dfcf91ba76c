// Package config loads simpleparser.toml / simpleparser.yaml project settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"simpleparser/internal/trace"
)

// ErrNotFound is returned by Find when no config file exists up the tree.
var ErrNotFound = errors.New("no simpleparser config found")

// FileNames are probed in every directory, in this order.
var FileNames = []string{"simpleparser.toml", "simpleparser.yaml", "simpleparser.yml"}

// Formats accepted by [parse].format.
var Formats = []string{"json", "tree", "graph", "msgpack"}

// Config holds the complete CLI configuration.
type Config struct {
	Parse ParseConfig `toml:"parse" yaml:"parse"`
	Cache CacheConfig `toml:"cache" yaml:"cache"`
	Trace TraceConfig `toml:"trace" yaml:"trace"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

type ParseConfig struct {
	Format         string   `toml:"format" yaml:"format"`
	Jobs           int      `toml:"jobs" yaml:"jobs"` // 0 = GOMAXPROCS
	Extensions     []string `toml:"extensions" yaml:"extensions"`
	MaxDiagnostics int      `toml:"max_diagnostics" yaml:"max_diagnostics"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Dir     string `toml:"dir" yaml:"dir"` // "" = $XDG_CACHE_HOME/simpleparser
}

type TraceConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Output string `toml:"output" yaml:"output"`
	Format string `toml:"format" yaml:"format"`
	Mode   string `toml:"mode" yaml:"mode"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Parse: ParseConfig{
			Format:         "json",
			Extensions:     []string{".js"},
			MaxDiagnostics: 100,
		},
		Trace: TraceConfig{
			Level:  "off",
			Format: "auto",
			Mode:   "stream",
		},
	}
}

// Find walks up from startDir looking for one of FileNames.
func Find(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Load reads path (TOML or YAML by extension) over the defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// пустой YAML-файл — это просто значения по умолчанию
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported config format (want .toml, .yaml or .yml)", path)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the nearest config above startDir, or the defaults when
// there is none.
func Discover(startDir string) (*Config, error) {
	path, err := Find(startDir)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if !isFormat(c.Parse.Format) {
		return fmt.Errorf("[parse].format: unknown format %q (expected: %s)", c.Parse.Format, strings.Join(Formats, "|"))
	}
	if c.Parse.Jobs < 0 {
		return fmt.Errorf("[parse].jobs: must be >= 0, got %d", c.Parse.Jobs)
	}
	if c.Parse.MaxDiagnostics < 0 {
		return fmt.Errorf("[parse].max_diagnostics: must be >= 0, got %d", c.Parse.MaxDiagnostics)
	}
	if len(c.Parse.Extensions) == 0 {
		return errors.New("[parse].extensions: at least one extension required")
	}
	for _, ext := range c.Parse.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("[parse].extensions: %q must look like \".js\"", ext)
		}
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("[trace].level: %w", err)
	}
	if _, err := trace.ParseFormat(c.Trace.Format); err != nil {
		return fmt.Errorf("[trace].format: %w", err)
	}
	if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
		return fmt.Errorf("[trace].mode: %w", err)
	}
	return nil
}

func isFormat(s string) bool {
	return slices.Contains(Formats, s)
}
