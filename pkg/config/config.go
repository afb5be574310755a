package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the manifest looked up by Find.
const FileName = "pysub.yml"

// ErrNotFound reports that no pysub.yml exists at or above the search root.
var ErrNotFound = errors.New("config: pysub.yml not found")

// Log formats understood by the CLI.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config models pysub.yml.
type Config struct {
	Path  string `yaml:"-"`
	Log   Log    `yaml:"log"`
	Suite Suite  `yaml:"suite"`
}

// Log selects the zerolog level and output format.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Suite locates the conformance cases. Repo is optional; when set, the
// cases are cloned from it at Ref and read from Path inside the checkout.
type Suite struct {
	Dir  string `yaml:"dir"`
	Repo string `yaml:"repo,omitempty"`
	Ref  string `yaml:"ref,omitempty"`
	Path string `yaml:"path,omitempty"`
}

// Default returns the settings used when no pysub.yml is present.
func Default() *Config {
	return &Config{
		Log:   Log{Level: "info", Format: FormatConsole},
		Suite: Suite{Dir: "testcases"},
	}
}

// Load parses a pysub.yml from disk. Unknown keys are rejected and omitted
// keys keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if len(bytes.TrimSpace(data)) > 0 {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", abs, err)
		}
	}
	cfg.Path = abs
	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", abs, err)
	}
	return cfg, nil
}

// Find walks from dir towards the filesystem root and returns the path of
// the first pysub.yml it sees.
func Find(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(current, FileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNotFound
		}
		current = parent
	}
}

// Write serialises cfg to path, or to cfg.Path when path is empty.
func Write(cfg *Config, path string) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}
	if path == "" {
		if cfg.Path == "" {
			return fmt.Errorf("config: missing path")
		}
		path = cfg.Path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: resolve %s: %w", path, err)
	}
	if err := cfg.normalize(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: marshal %s: %w", abs, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("config: encoder close: %w", err)
	}
	if err := os.WriteFile(abs, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", abs, err)
	}
	cfg.Path = abs
	return nil
}

// SuiteDir resolves Suite.Dir against the directory holding the config
// file. Absolute directories are returned unchanged.
func (c *Config) SuiteDir() string {
	dir := c.Suite.Dir
	if dir == "" || filepath.IsAbs(dir) || c.Path == "" {
		return dir
	}
	return filepath.Join(filepath.Dir(c.Path), dir)
}

func (c *Config) normalize() error {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	switch c.Log.Format {
	case "":
		c.Log.Format = FormatConsole
	case FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	c.Suite.Dir = strings.TrimSpace(c.Suite.Dir)
	c.Suite.Repo = strings.TrimSpace(c.Suite.Repo)
	c.Suite.Ref = strings.TrimSpace(c.Suite.Ref)
	c.Suite.Path = filepath.ToSlash(strings.Trim(strings.TrimSpace(c.Suite.Path), "/"))
	return nil
}
