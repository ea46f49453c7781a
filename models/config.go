// Package models defines data structures for leads, run settings and enrichment output.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCacheDir            = ".cache/lead_enricher"
	DefaultUserAgent           = "lead-enricher/1.0"
	DefaultOpenAlexBaseURL     = "https://api.openalex.org"
	DefaultSemanticScholarBase = "https://api.semanticscholar.org/graph/v1"
)

// OpenAlexConfig configures the OpenAlex catalog client.
type OpenAlexConfig struct {
	BaseURL string `yaml:"base_url"`
	Mailto  string `yaml:"mailto"` // joins the OpenAlex polite pool when set
}

// SemanticScholarConfig configures the Semantic Scholar catalog client.
type SemanticScholarConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// Config holds runtime configuration for an enrichment run.
// Values come from an optional YAML file and are overridden by CLI flags.
type Config struct {
	Settings        Settings              `yaml:"settings"`
	CacheDir        string                `yaml:"cache_dir"`
	UserAgent       string                `yaml:"user_agent"`
	Retries         int                   `yaml:"retries"`
	Backoff         time.Duration         `yaml:"backoff"`
	Timeout         time.Duration         `yaml:"timeout"`
	OpenAlex        OpenAlexConfig        `yaml:"openalex"`
	SemanticScholar SemanticScholarConfig `yaml:"semantic_scholar"`
}

// DefaultConfig returns the configuration used when no file or flag overrides a value.
func DefaultConfig() Config {
	return Config{
		Settings:  DefaultSettings(),
		CacheDir:  DefaultCacheDir,
		UserAgent: DefaultUserAgent,
		Retries:   3,
		Backoff:   time.Second,
		Timeout:   10 * time.Second,
		OpenAlex: OpenAlexConfig{
			BaseURL: DefaultOpenAlexBaseURL,
		},
		SemanticScholar: SemanticScholarConfig{
			BaseURL: DefaultSemanticScholarBase,
		},
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
// An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}
