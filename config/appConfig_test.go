package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  addr: ":9090"
database:
  driver: sqlite
  sqlite:
    path: compare.db
apify:
  token: file-token
ingest:
  dataset-limit: 100
  default-source: Hepsiburada
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("APIFY_TOKEN", "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("expected addr :9090, got %q", cfg.Server.Addr)
	}
	if cfg.Apify.Token != "file-token" {
		t.Fatalf("expected token from file, got %q", cfg.Apify.Token)
	}
	if cfg.Apify.BaseURL != "https://api.apify.com/v2" {
		t.Fatalf("expected default base url, got %q", cfg.Apify.BaseURL)
	}
	if cfg.Ingest.DatasetLimit != 100 || cfg.Ingest.DefaultSource != "Hepsiburada" || cfg.Ingest.Currency != "TRY" {
		t.Fatalf("unexpected ingest values %+v", cfg.Ingest)
	}
	if _, ok := cfg.DbConfig().(*SqliteConfig); !ok {
		t.Fatalf("expected sqlite db config, got %T", cfg.DbConfig())
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("apify:\n  token: file-token\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("APIFY_TOKEN", "env-token")
	t.Setenv("POSTGRES_HOST", "db.internal")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Apify.Token != "env-token" {
		t.Fatalf("expected env token, got %q", cfg.Apify.Token)
	}
	want := "host=db.internal port=5432 user=postgres password=postgres dbname=postgres sslmode=disable"
	if got := cfg.DbConfig().GetConnectionString(); got != want {
		t.Fatalf("unexpected connection string %q", got)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Ingest.DatasetLimit != 500 {
		t.Fatalf("expected dataset limit 500, got %d", cfg.Ingest.DatasetLimit)
	}
	if cfg.Display.CurrencyLabel != "TL" {
		t.Fatalf("expected TL currency label, got %q", cfg.Display.CurrencyLabel)
	}
}

func TestLoadConfig_BrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}
