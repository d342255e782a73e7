package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DOCSASK_API_BASE_URL", "DOCSASK_THEME", "DOCSASK_EXAMPLES", "DOCSASK_HEALTH_INTERVAL"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with no file: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Errorf("default api_base_url: got %q", cfg.APIBaseURL)
	}
	if cfg.HealthInterval != 30*time.Second {
		t.Errorf("default health_interval: got %s, want 30s", cfg.HealthInterval)
	}
	if cfg.Theme != ThemePaper {
		t.Errorf("default theme: got %q, want %q", cfg.Theme, ThemePaper)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if got := len(cfg.ResolvedExamples()); got != 10 {
		t.Errorf("default example count: got %d, want 10", got)
	}
}

func TestLoadFromYAML(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "config.yaml")
	content := `api_base_url: "http://rag.internal:9000/"
health_interval: 45s
request_timeout: 10s
title: "Resume RAG System"
theme: dusk
examples:
  - label: Skills
    text: "What are your key skills?"
  - text: "Where did you study?"
`
	if err := os.WriteFile(yamlPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	cfg, err := Load(yamlPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"api_base_url", cfg.APIBaseURL, "http://rag.internal:9000"},
		{"health_interval", cfg.HealthInterval, 45 * time.Second},
		{"request_timeout", cfg.RequestTimeout, 10 * time.Second},
		{"health_timeout", cfg.HealthTimeout, 5 * time.Second},
		{"title", cfg.Title, "Resume RAG System"},
		{"theme", cfg.Theme, ThemeDusk},
		{"examples", len(cfg.ResolvedExamples()), 2},
		{"fallback label", cfg.ResolvedExamples()[1].DisplayLabel(), "Where did you study?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "config.yaml")
	content := "api_base_url: http://from-file:8000\nexamples:\n  - text: custom\n"
	if err := os.WriteFile(yamlPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	t.Setenv("DOCSASK_API_BASE_URL", "http://from-env:8000")
	t.Setenv("DOCSASK_EXAMPLES", "resume")
	t.Setenv("DOCSASK_HEALTH_INTERVAL", "5s")

	cfg, err := Load(yamlPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "http://from-env:8000" {
		t.Errorf("env should win over file, got %q", cfg.APIBaseURL)
	}
	if cfg.HealthInterval != 5*time.Second {
		t.Errorf("health interval override: got %s", cfg.HealthInterval)
	}
	examples := cfg.ResolvedExamples()
	if len(examples) == 0 || examples[1].Text != "Tell me about this resume" {
		t.Errorf("env example set should replace file examples, got %#v", examples)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil || !strings.HasPrefix(err.Error(), "config: read file") {
		t.Fatalf("expected read error, got %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("theme: [unterminated"), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	if _, err := Load(bad); err == nil || !strings.HasPrefix(err.Error(), "config: parse yaml") {
		t.Fatalf("expected parse error, got %v", err)
	}

	t.Setenv("DOCSASK_HEALTH_INTERVAL", "soon")
	if _, err := Load(""); err == nil {
		t.Fatal("expected invalid duration error")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"relative url", func(c *Config) { c.APIBaseURL = "localhost:8000" }, "api_base_url"},
		{"ftp url", func(c *Config) { c.APIBaseURL = "ftp://host" }, "api_base_url"},
		{"zero interval", func(c *Config) { c.HealthInterval = 0 }, "health_interval"},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -time.Second }, "request_timeout"},
		{"unknown theme", func(c *Config) { c.Theme = "neon" }, "unknown theme"},
		{"unknown preset", func(c *Config) { c.ExampleSet = "recipes" }, "unknown example set"},
		{"blank example", func(c *Config) { c.Examples = []Example{{Label: "x", Text: "  "}} }, "has no text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestNamesAreCaseInsensitive(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCSASK_THEME", " Dusk ")
	t.Setenv("DOCSASK_EXAMPLES", "RESUME")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme != ThemeDusk || cfg.ExampleSet != PresetResume {
		t.Fatalf("names not folded: theme=%q examples=%q", cfg.Theme, cfg.ExampleSet)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	flagged := Defaults()
	flagged.Theme = "Dusk"
	flagged.ExampleSet = "DOCS"
	if err := flagged.Validate(); err != nil {
		t.Fatalf("mixed-case names should validate: %v", err)
	}
	if got := flagged.Normalized(); got.Theme != ThemeDusk || got.ExampleSet != PresetDocs {
		t.Fatalf("normalized: theme=%q examples=%q", got.Theme, got.ExampleSet)
	}
}

func TestExampleSetForReturnsCopy(t *testing.T) {
	set, ok := ExampleSetFor("Resume")
	if !ok {
		t.Fatal("resume preset should resolve case-insensitively")
	}
	set[0].Text = "mutated"
	again, _ := ExampleSetFor(PresetResume)
	if again[0].Text == "mutated" {
		t.Fatal("preset storage leaked to caller")
	}
	if got := strings.Join(Presets(), ","); got != "docs,resume" {
		t.Fatalf("presets: got %q", got)
	}
}
