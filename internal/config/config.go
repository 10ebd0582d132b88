// Package config loads the docgen CLI and server configuration from YAML with
// DOCGEN_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "docgen.yaml"

// Config is the top-level configuration.
type Config struct {
	Assets   AssetsConfig   `yaml:"assets"`
	Branding BrandingConfig `yaml:"branding"`
	Output   OutputConfig   `yaml:"output"`
	Server   ServerConfig   `yaml:"server"`
	Batch    BatchConfig    `yaml:"batch"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AssetsConfig locates the letterhead logo.
type AssetsConfig struct {
	Dir          string `yaml:"dir"`
	Logo         string `yaml:"logo"`
	MaxLogoWidth int    `yaml:"max_logo_width"`
}

// BrandingConfig carries go-theme tokens applied to the letterhead and PDF
// renderer.
type BrandingConfig struct {
	Theme   string            `yaml:"theme"`
	Variant string            `yaml:"variant"`
	Tokens  map[string]string `yaml:"tokens"`
}

// OutputConfig controls where generated files go.
type OutputConfig struct {
	Dir      string `yaml:"dir"`
	Renderer string `yaml:"renderer"`
}

// ServerConfig configures `docgen serve`.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	BasePath     string `yaml:"base_path"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
	ReadTimeout  string `yaml:"read_timeout"`
	WriteTimeout string `yaml:"write_timeout"`
}

// BatchConfig configures `docgen batch`.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// LoggingConfig selects the zap preset and level.
type LoggingConfig struct {
	Mode  string `yaml:"mode"`
	Level string `yaml:"level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Assets: AssetsConfig{
			Dir:          "assets",
			Logo:         "logo.png",
			MaxLogoWidth: 600,
		},
		Output: OutputConfig{
			Dir:      ".",
			Renderer: "pdf",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			BasePath:     "/api",
			MaxBodyBytes: 64 << 10,
			ReadTimeout:  "10s",
			WriteTimeout: "30s",
		},
		Batch: BatchConfig{
			Concurrency: 4,
		},
		Logging: LoggingConfig{
			Mode:  "development",
			Level: "info",
		},
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate rejects values the CLI cannot work with.
func (c *Config) Validate() error {
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("config: batch.concurrency must be at least 1, got %d", c.Batch.Concurrency)
	}
	if c.Server.MaxBodyBytes < 1 {
		return fmt.Errorf("config: server.max_body_bytes must be positive")
	}
	for name, value := range map[string]string{
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	return nil
}

// ReadTimeout returns server.read_timeout as a duration.
func (c *Config) ReadTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ReadTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// WriteTimeout returns server.write_timeout as a duration.
func (c *Config) WriteTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.WriteTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnvOverrides(lookup lookupFunc) error {
	strs := map[string]*string{
		"DOCGEN_ASSETS_DIR":   &c.Assets.Dir,
		"DOCGEN_LOGO":         &c.Assets.Logo,
		"DOCGEN_THEME":        &c.Branding.Theme,
		"DOCGEN_OUTPUT_DIR":   &c.Output.Dir,
		"DOCGEN_RENDERER":     &c.Output.Renderer,
		"DOCGEN_ADDR":         &c.Server.Addr,
		"DOCGEN_BASE_PATH":    &c.Server.BasePath,
		"DOCGEN_LOG_MODE":     &c.Logging.Mode,
		"DOCGEN_LOG_LEVEL":    &c.Logging.Level,
		"DOCGEN_READ_TIMEOUT": &c.Server.ReadTimeout,
	}
	for name, target := range strs {
		if value, ok := lookup(name); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}

	if value, ok := lookup("DOCGEN_CONCURRENCY"); ok && strings.TrimSpace(value) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("config: DOCGEN_CONCURRENCY: %w", err)
		}
		c.Batch.Concurrency = n
	}
	return nil
}
