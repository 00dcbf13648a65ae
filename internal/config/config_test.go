package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
source:
  bucket: near-lake-mainnet
  region: eu-central-1
  start_block_height: 9820210
indexer:
  strict_mode: true
database:
  url: "user:pass@tcp(127.0.0.1:3306)/near_indexer"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, sampleYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Indexer.BatchChunkSize != 500 {
		t.Errorf("BatchChunkSize = %d, want 500", cfg.Indexer.BatchChunkSize)
	}
	if cfg.Indexer.CacheCapacity != 100_000 {
		t.Errorf("CacheCapacity = %d, want 100000", cfg.Indexer.CacheCapacity)
	}
	if !cfg.Indexer.StrictMode {
		t.Error("StrictMode = false, want true")
	}
	if cfg.Source.MaxRequestsPerSecond != 50 {
		t.Errorf("Source.MaxRequestsPerSecond = %v, want 50", cfg.Source.MaxRequestsPerSecond)
	}
	if cfg.Source.Burst != 100 {
		t.Errorf("Source.Burst = %d, want 100", cfg.Source.Burst)
	}
}

func TestLoadEnvOverridesWin(t *testing.T) {
	path := writeConfig(t, sampleYAML)
	t.Setenv("DATABASE_URL", "override:dsn@tcp(db:3306)/x")
	t.Setenv("STRICT_MODE", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.URL != "override:dsn@tcp(db:3306)/x" {
		t.Errorf("Database.URL = %q, want override", cfg.Database.URL)
	}
	if cfg.Indexer.StrictMode {
		t.Error("StrictMode = true, want false after env override")
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	path := writeConfig(t, "source:\n  bucket: b\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing database.url")
	}
}
