package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultAPIBaseURL     = "http://localhost:8000"
	defaultHealthInterval = 30 * time.Second
	defaultHealthTimeout  = 5 * time.Second
	defaultRequestTimeout = 2 * time.Minute
	defaultTitle          = "Document Q&A"
	defaultSubtitle       = "Ask questions about the indexed documents."
)

// Theme names understood by the TUI.
const (
	ThemePaper = "paper"
	ThemeDusk  = "dusk"
)

// Config holds the client settings. It is built once at startup and passed
// by value; nothing mutates it afterwards.
type Config struct {
	APIBaseURL     string        `yaml:"api_base_url"`
	HealthInterval time.Duration `yaml:"health_interval"`
	HealthTimeout  time.Duration `yaml:"health_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Title          string        `yaml:"title"`
	Subtitle       string        `yaml:"subtitle"`
	Theme          string        `yaml:"theme"`
	ExampleSet     string        `yaml:"example_set"`
	Examples       []Example     `yaml:"examples"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		APIBaseURL:     defaultAPIBaseURL,
		HealthInterval: defaultHealthInterval,
		HealthTimeout:  defaultHealthTimeout,
		RequestTimeout: defaultRequestTimeout,
		Title:          defaultTitle,
		Subtitle:       defaultSubtitle,
		Theme:          ThemePaper,
		ExampleSet:     PresetDocs,
	}
}

// Load reads defaults, then the YAML file at path (if non-empty), then
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if v := os.Getenv("DOCSASK_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("DOCSASK_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("DOCSASK_EXAMPLES"); v != "" {
		cfg.ExampleSet = v
		cfg.Examples = nil
	}
	if v := os.Getenv("DOCSASK_HEALTH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid DOCSASK_HEALTH_INTERVAL %q: %w", v, err)
		}
		cfg.HealthInterval = d
	}

	return cfg.Normalized(), nil
}

// Normalized trims the base URL and case-folds the theme and example set
// names, so flags, env and YAML all accept "Dusk" or "DOCS".
func (c Config) Normalized() Config {
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	c.Theme = foldName(c.Theme)
	c.ExampleSet = foldName(c.ExampleSet)
	return c
}

func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Validate reports the first setting that would make the client unusable.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("config: api_base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: api_base_url must be an absolute http(s) URL, got %q", c.APIBaseURL)
	}
	if c.HealthInterval <= 0 {
		return fmt.Errorf("config: health_interval must be positive, got %s", c.HealthInterval)
	}
	if c.HealthTimeout <= 0 {
		return fmt.Errorf("config: health_timeout must be positive, got %s", c.HealthTimeout)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request_timeout must be positive, got %s", c.RequestTimeout)
	}
	switch foldName(c.Theme) {
	case ThemePaper, ThemeDusk:
	default:
		return fmt.Errorf("config: unknown theme %q (want %s or %s)", c.Theme, ThemePaper, ThemeDusk)
	}
	if len(c.Examples) == 0 {
		if _, ok := ExampleSetFor(c.ExampleSet); !ok {
			return fmt.Errorf("config: unknown example set %q (want one of %s)", c.ExampleSet, strings.Join(Presets(), ", "))
		}
	}
	for i, ex := range c.ResolvedExamples() {
		if strings.TrimSpace(ex.Text) == "" {
			return fmt.Errorf("config: example %d has no text", i+1)
		}
	}
	return nil
}
