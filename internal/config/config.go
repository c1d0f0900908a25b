// Package config provides configuration loading and structs for the Kaisetsu client.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Backend   BackendConfig   `yaml:"backend"`
	Grounding GroundingConfig `yaml:"grounding"`
	Storage   StorageConfig   `yaml:"storage"`
	Server    ServerConfig    `yaml:"server"`
	Watch     WatchConfig     `yaml:"watch"`
}

// BackendConfig holds settings for the remote RAG backend.
type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
	// Timeouts in seconds. Query is long because the backend runs
	// retrieval + generation synchronously.
	UploadTimeoutSec int `yaml:"upload_timeout_sec"`
	QueryTimeoutSec  int `yaml:"query_timeout_sec"`
	// Poll settings for upload-status checks.
	PollIntervalMs  int `yaml:"poll_interval_ms"`
	PollDeadlineSec int `yaml:"poll_deadline_sec"`
	TopK            int `yaml:"top_k"`
}

// GroundingConfig holds the evidence-linking heuristic thresholds.
// The linker is a lexical-overlap heuristic by contract; these values tune it
// but the matching stays textual (no embedding similarity on the client).
type GroundingConfig struct {
	// MinOverlap is the word-overlap threshold cap: a snippet supports a
	// sentence when min(MinOverlap, words/2) of the sentence's long words
	// occur in it.
	MinOverlap int `yaml:"min_overlap"`
	// MinWordLength filters short words out of the overlap check; only words
	// strictly longer than this count.
	MinWordLength int `yaml:"min_word_length"`
	// DedupeEntities collapses entities sharing a case-insensitive name in
	// presentation output (first-seen entity keeps its type).
	DedupeEntities *bool `yaml:"dedupe_entities"`
}

// DedupeOrDefault returns whether to de-duplicate entities; defaults to true when unset.
func (g *GroundingConfig) DedupeOrDefault() bool {
	if g.DedupeEntities != nil {
		return *g.DedupeEntities
	}
	return true
}

// StorageConfig holds paths for the local query-history database and index.
type StorageConfig struct {
	HistoryDatabasePath string `yaml:"history_database_path"`
	HistoryIndexPath    string `yaml:"history_index_path"`
}

// ServerConfig holds local inspection HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// WatchConfig holds auto-upload directory watch settings.
type WatchConfig struct {
	Directories []string `yaml:"directories"`
	Extensions  []string `yaml:"extensions"`
	Recursive   *bool    `yaml:"recursive"`
}

// RecursiveOrDefault returns whether to watch recursively; defaults to true when unset.
func (w *WatchConfig) RecursiveOrDefault() bool {
	if w.Recursive != nil {
		return *w.Recursive
	}
	return true
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.HistoryDatabasePath = expandPath(cfg.Storage.HistoryDatabasePath, configDir)
	cfg.Storage.HistoryIndexPath = expandPath(cfg.Storage.HistoryIndexPath, configDir)
	for i := range cfg.Watch.Directories {
		cfg.Watch.Directories[i] = expandPath(cfg.Watch.Directories[i], configDir)
	}

	return &cfg, nil
}

// Save writes the config to path. Used for persisting watch directory add/remove.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
