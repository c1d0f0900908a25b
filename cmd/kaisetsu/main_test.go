package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hyperjump/kaisetsu/internal/config"
)

func TestQueryArgsReorder(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flags after question are moved first",
			args:     []string{"who discovered radium", "-top-k", "5"},
			expected: []string{"-top-k", "5", "who discovered radium"},
		},
		{
			name:     "flags first returns unchanged",
			args:     []string{"-top-k", "5", "who discovered radium"},
			expected: []string{"-top-k", "5", "who discovered radium"},
		},
		{
			name:     "question only returns unchanged",
			args:     []string{"who discovered radium"},
			expected: []string{"who discovered radium"},
		},
		{
			name:     "empty args returns unchanged",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "multiple positionals then flags",
			args:     []string{"one", "two", "-index", "idx-1"},
			expected: []string{"-index", "idx-1", "one", "two"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := queryArgsReorder(tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("queryArgsReorder() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBuildQueryText(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"single word", []string{"radium"}, "radium"},
		{"multiple words", []string{"who", "discovered", "radium"}, "who discovered radium"},
		{"quoted phrase", []string{"who discovered radium"}, "who discovered radium"},
		{"empty args", []string{}, ""},
		{"blank args", []string{"  ", "  "}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildQueryText(tt.args)
			if got != tt.expected {
				t.Errorf("buildQueryText(%v) = %q, want %q", tt.args, got, tt.expected)
			}
		})
	}
}

func TestGroundingFromConfig(t *testing.T) {
	cfg := &config.Config{}
	g := groundingFromConfig(cfg)
	if g.MinOverlap != 3 || g.MinWordLength != 4 || !g.DedupeEntities {
		t.Errorf("defaults: %+v", g)
	}

	dedupe := false
	cfg = &config.Config{
		Grounding: config.GroundingConfig{
			MinOverlap:     5,
			MinWordLength:  6,
			DedupeEntities: &dedupe,
		},
	}
	g = groundingFromConfig(cfg)
	if g.MinOverlap != 5 || g.MinWordLength != 6 || g.DedupeEntities {
		t.Errorf("overrides: %+v", g)
	}
}

func TestLoadConfig_prefersCwdConfigWhenDefaultPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
debug: true
backend:
  base_url: "http://127.0.0.1:8000"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(origWd) }()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	// On macOS, cwd can be /private/var/... while configPath from t.TempDir() is /var/...; compare canonical paths.
	resolvedCanon, _ := filepath.EvalSymlinks(resolved)
	configPathCanon, _ := filepath.EvalSymlinks(configPath)
	if resolvedCanon != configPathCanon {
		t.Errorf("resolved path = %s, want %s", resolvedCanon, configPathCanon)
	}
	if !cfg.Debug {
		t.Error("debug should be true from cwd config.yaml")
	}
}

func TestLoadConfig_usesExplicitPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != configPath {
		t.Errorf("resolved path = %s, want %s", resolved, configPath)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
}
