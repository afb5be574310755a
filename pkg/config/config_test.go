package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "log:\n  level: DEBUG\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected lowercased level, got %q", cfg.Log.Level)
	}
	if cfg.Log.Format != FormatConsole {
		t.Fatalf("expected default format, got %q", cfg.Log.Format)
	}
	if cfg.Suite.Dir != "testcases" {
		t.Fatalf("expected default suite dir, got %q", cfg.Suite.Dir)
	}
	if cfg.Path != path {
		t.Fatalf("expected path %s, got %s", path, cfg.Path)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "info" || cfg.Suite.Dir != "testcases" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "log:\n  colour: true\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "log:\n  format: xml\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "xml") {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestFindWalksUpwards(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, FileName)
	writeFile(t, path, "suite:\n  dir: cases\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if found != path {
		t.Fatalf("expected %s, got %s", path, found)
	}

	cfg, err := Load(found)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.SuiteDir(); got != filepath.Join(root, "cases") {
		t.Fatalf("SuiteDir = %s", got)
	}
}

func TestFindNotFound(t *testing.T) {
	// A fresh temp dir may still sit below a directory holding pysub.yml,
	// so only check the error identity when nothing is found.
	_, err := Find(t.TempDir())
	if err != nil && !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := Default()
	cfg.Log.Format = FormatJSON
	cfg.Suite.Repo = "https://example.com/suite.git"
	cfg.Suite.Ref = "main"
	cfg.Suite.Path = "/basic-testcases/"

	if err := Write(cfg, path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "  format: json") {
		t.Fatalf("expected two-space indented output, got:\n%s", data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Suite.Path != "basic-testcases" {
		t.Fatalf("expected trimmed suite path, got %q", loaded.Suite.Path)
	}
	if loaded.Suite.Repo != cfg.Suite.Repo || loaded.Suite.Ref != "main" || loaded.Log.Format != FormatJSON {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}

func TestWriteRequiresPath(t *testing.T) {
	if err := Write(Default(), ""); err == nil {
		t.Fatalf("expected missing path error")
	}
	if err := Write(nil, "x"); err == nil {
		t.Fatalf("expected nil config error")
	}
}
