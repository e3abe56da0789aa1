// Package config provides unified configuration loading for the pipeline.
// Supports YAML files, a .env file, and environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "30s"
// or "2m". Plain integers are taken as nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration value: %w", err)
	}
	*d = Duration(n)
	return nil
}

// Std returns the value as a standard time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds all configuration for the menu conversion pipeline.
type Config struct {
	LLM     LLMConfig     `yaml:"llm"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Extract ExtractConfig `yaml:"extract"`
}

// LLMConfig holds hosted-model settings. The API key is never read from the
// YAML file: it comes from the environment or is supplied per-request by the
// web shell, and is held only in memory.
type LLMConfig struct {
	APIKey         string      `yaml:"-"`
	Model          string      `yaml:"model"`
	BaseURL        string      `yaml:"base_url"`
	RequestTimeout Duration    `yaml:"request_timeout"`
	Retry          RetryConfig `yaml:"retry"`
}

// RetryConfig bounds the retry-with-backoff policy on transient API failures.
type RetryConfig struct {
	MaxRetries     int      `yaml:"max_retries"`
	InitialBackoff Duration `yaml:"initial_backoff"`
	MaxBackoff     Duration `yaml:"max_backoff"`
}

// ServerConfig holds web-shell settings.
type ServerConfig struct {
	Addr         string   `yaml:"addr"`
	UploadDir    string   `yaml:"upload_dir"`
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
}

// LogConfig holds pipeline log sink settings.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// ExtractConfig holds extraction behavior toggles.
type ExtractConfig struct {
	// StrictSchema validates the parsed section array against the menu JSON
	// schema before flattening. Off by default: partial-schema replies flow
	// through as nulls for a human to review.
	StrictSchema bool `yaml:"strict_schema"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:          "gpt-4o-mini",
			BaseURL:        "https://api.openai.com/v1/chat/completions",
			RequestTimeout: Duration(2 * time.Minute),
			Retry: RetryConfig{
				MaxRetries:     3,
				InitialBackoff: Duration(1 * time.Second),
				MaxBackoff:     Duration(30 * time.Second),
			},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			UploadDir:    "uploads",
			ReadTimeout:  Duration(30 * time.Second),
			WriteTimeout: Duration(30 * time.Second),
		},
		Log: LogConfig{
			File:  "process_log.log",
			Level: "info",
		},
		Extract: ExtractConfig{
			StrictSchema: false,
		},
	}
}

// Load reads configuration from an optional YAML file, then applies
// environment overrides. A missing path loads defaults plus environment.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("HAPPYPLATES_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("HAPPYPLATES_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("HAPPYPLATES_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}
