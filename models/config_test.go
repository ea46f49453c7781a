package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
settings:
  num_papers: 3
  per_row_delay: 750ms
cache_dir: /tmp/leads
openalex:
  mailto: ops@example.com
semantic_scholar:
  api_key: secret
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Settings.NumPapers != 3 {
		t.Errorf("NumPapers = %d, want 3", cfg.Settings.NumPapers)
	}
	if cfg.Settings.PerRowDelay != 750*time.Millisecond {
		t.Errorf("PerRowDelay = %v, want 750ms", cfg.Settings.PerRowDelay)
	}
	if cfg.Settings.MatchScoreThreshold != 65 || cfg.Settings.MaxRows != 50 {
		t.Errorf("unset settings lost their defaults: %+v", cfg.Settings)
	}
	if cfg.CacheDir != "/tmp/leads" {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}
	if cfg.OpenAlex.Mailto != "ops@example.com" || cfg.OpenAlex.BaseURL != DefaultOpenAlexBaseURL {
		t.Errorf("OpenAlex = %+v", cfg.OpenAlex)
	}
	if cfg.SemanticScholar.APIKey != "secret" {
		t.Errorf("SemanticScholar.APIKey = %q", cfg.SemanticScholar.APIKey)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig(missing) error = nil")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("settings: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig(bad yaml) error = nil")
	}
}
