package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"picdex/internal/catalog"
	"picdex/internal/classify"
	"picdex/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CatalogPath = filepath.Join(base, "pictures.db")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Scanner.Workers = 2

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithCollectDir enables relocation into a temp subdirectory.
func WithCollectDir(dir string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.CollectDir = dir
	}
}

// WithWorkers overrides the scanner worker count.
func WithWorkers(workers int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Scanner.Workers = workers
	}
}

// MustOpenStore opens the catalog for the given config and closes it when
// the test finishes.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("open catalog store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// WriteFile creates path (and parent directories) with the given content.
func WriteFile(t testing.TB, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// StaticSniffer returns a classify.Sniffer that reports a fixed label for
// every file.
func StaticSniffer(label string) classify.Sniffer {
	return classify.SnifferFunc(func(context.Context, string) (string, error) {
		return label, nil
	})
}

// ExtensionSniffer maps filename extensions (with leading dot) to labels so
// pipeline tests can exercise multiple types without real image bytes.
func ExtensionSniffer(labels map[string]string, fallback string) classify.Sniffer {
	return classify.SnifferFunc(func(_ context.Context, path string) (string, error) {
		if label, ok := labels[filepath.Ext(path)]; ok {
			return label, nil
		}
		return fallback, nil
	})
}
