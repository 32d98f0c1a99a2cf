package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"picdex/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected missing config to report exists=false")
	}
	if filepath.Base(cfg.Paths.CatalogPath) != "pictures.db" {
		t.Fatalf("expected default catalog filename, got %q", cfg.Paths.CatalogPath)
	}
	if !filepath.IsAbs(cfg.Paths.CatalogPath) {
		t.Fatalf("expected catalog path to be absolute, got %q", cfg.Paths.CatalogPath)
	}
	if cfg.Scanner.Workers != 4 || cfg.Scanner.SniffCommand != "file" {
		t.Fatalf("unexpected scanner defaults: %+v", cfg.Scanner)
	}
	if cfg.CollectEnabled() {
		t.Fatal("relocation must be disabled by default")
	}
}

func TestLoadParsesAndExpands(t *testing.T) {
	path := writeConfig(t, `
[paths]
catalog_path = "~/pics/catalog.db"
collect_dir = "~/pics/collected"

[scanner]
workers = 2
sniff_command = "/usr/bin/file"

[logging]
format = "JSON"
level = "Debug"
`)
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved=%q exists=true, got %q %v", path, resolved, exists)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("user home: %v", err)
	}
	if !strings.HasPrefix(cfg.Paths.CatalogPath, home) {
		t.Fatalf("expected tilde expansion, got %q", cfg.Paths.CatalogPath)
	}
	if !cfg.CollectEnabled() {
		t.Fatal("expected relocation enabled")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowercased logging values, got %+v", cfg.Logging)
	}
	if cfg.Scanner.Workers != 2 {
		t.Fatalf("expected 2 workers, got %d", cfg.Scanner.Workers)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"negative workers", "[scanner]\nworkers = -1\n"},
		{"bad format", "[logging]\nformat = \"xml\"\n"},
		{"bad level", "[logging]\nlevel = \"loud\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, _, err := config.Load(writeConfig(t, tc.content)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CatalogPath = filepath.Join(base, "db", "pictures.db")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.CollectDir = filepath.Join(base, "collected")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{filepath.Join(base, "db"), cfg.Paths.LogDir, cfg.Paths.CollectDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s, err=%v", dir, err)
		}
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[paths]") {
		t.Fatalf("sample config missing [paths] section")
	}
}
