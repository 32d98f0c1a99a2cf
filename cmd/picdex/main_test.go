package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	catalogDir string
	root       string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	catalogDir := filepath.Join(base, "catalog")
	logDir := filepath.Join(base, "logs")
	root := filepath.Join(base, "photos")
	for _, dir := range []string{catalogDir, logDir, root} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	sniffer := writeStubSniffer(t, base)

	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
catalog_path = %q
log_dir = %q

[scanner]
workers = 2
sniff_command = %q

[logging]
format = "json"
level = "error"
`, filepath.Join(catalogDir, "pictures.db"), logDir, sniffer)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{
		baseDir:    base,
		configPath: configPath,
		catalogDir: catalogDir,
		root:       root,
	}
}

func writeStubSniffer(t *testing.T, dir string) string {
	t.Helper()

	script := `#!/bin/sh
case "$3" in
	*.jpg) echo "JPEG image data" ;;
	*.png) echo "PNG image data" ;;
	*) echo "data" ;;
esac
`
	path := filepath.Join(dir, "stub-file")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub sniffer: %v", err)
	}
	return path
}

func (env *cliTestEnv) writeSource(t *testing.T, rel string, content []byte) {
	t.Helper()

	path := filepath.Join(env.root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLIIngestStatsAndSearch(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeSource(t, filepath.Join("2020", "vacation", "beach.jpg"), []byte("beach bytes"))
	env.writeSource(t, filepath.Join("backup", "beach-copy.jpg"), []byte("beach bytes"))
	env.writeSource(t, filepath.Join("2021", "chart.png"), []byte("chart bytes"))

	out, _, err := runCLI(t, env.configPath, "ingest", env.root)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if !strings.Contains(out, "Processed") || !strings.Contains(out, "Inserted") {
		t.Fatalf("unexpected ingest output: %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "Pictures: 2") {
		t.Fatalf("unexpected stats output: %q", out)
	}
	if !strings.Contains(out, "JPEG image data") || !strings.Contains(out, "PNG image data") {
		t.Fatalf("stats missing type breakdown: %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "types")
	if err != nil {
		t.Fatalf("types: %v", err)
	}
	if !strings.Contains(out, "JPEG image data") {
		t.Fatalf("types missing label: %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "search", "vacation")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "beach") {
		t.Fatalf("search missing hit: %q", out)
	}
	if strings.Contains(out, "chart.png") {
		t.Fatalf("search returned unrelated picture: %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "search", "no-such-tag")
	if err != nil {
		t.Fatalf("search miss: %v", err)
	}
	if !strings.Contains(out, "No pictures tagged") {
		t.Fatalf("unexpected miss output: %q", out)
	}
}

func TestCLIIngestWithCollectFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeSource(t, "solo.jpg", []byte("solo bytes"))
	collectDir := filepath.Join(env.baseDir, "collected")
	if err := os.MkdirAll(collectDir, 0o755); err != nil {
		t.Fatalf("mkdir collect dir: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "ingest", "--collect", collectDir, env.root)
	if err != nil {
		t.Fatalf("ingest with collect: %v", err)
	}
	if !strings.Contains(out, "Relocated") {
		t.Fatalf("expected relocation metrics in output: %q", out)
	}

	entries, err := os.ReadDir(collectDir)
	if err != nil {
		t.Fatalf("read collect dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one relocated file, got %d", len(entries))
	}
	if ext := filepath.Ext(entries[0].Name()); ext != ".jpg" {
		t.Fatalf("relocated file should keep its extension, got %q", entries[0].Name())
	}
}

func TestCLIIngestRejectsMissingRoot(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env.configPath, "ingest", filepath.Join(env.baseDir, "never-created"))
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCLIIngestRequiresRoot(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env.configPath, "ingest")
	if err == nil {
		t.Fatal("expected error when no roots are given")
	}
}

func TestCLIStatus(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Content sniffer") {
		t.Fatalf("status missing sniffer check: %q", out)
	}
	if !strings.Contains(out, "Catalog database") {
		t.Fatalf("status missing database check: %q", out)
	}
}
