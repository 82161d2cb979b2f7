// Package config provides configuration loading for govctl.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the complete tool configuration.
type Config struct {
	// Catalog is the controls YAML evaluated by every command.
	Catalog string `yaml:"catalog" validate:"required"`
	// Profile is the default system profile when -p is not given.
	Profile  string         `yaml:"profile"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	Evaluate EvaluateConfig `yaml:"evaluate"`
	Watch    WatchConfig    `yaml:"watch"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Tables   TablesConfig   `yaml:"tables"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" validate:"required,oneof=debug info warn error"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `yaml:"max_body_bytes" validate:"gt=0"`
}

type EvaluateConfig struct {
	// MinSeverity drops controls below this level (empty keeps all).
	MinSeverity string `yaml:"min_severity" validate:"omitempty,oneof=low medium high critical"`
	FailedOnly  bool   `yaml:"failed_only"`
	// StrictValidation treats catalog warnings as failures.
	StrictValidation bool `yaml:"strict_validation"`
}

type WatchConfig struct {
	// Debounce collapses bursts of file events into one re-run.
	Debounce time.Duration `yaml:"debounce" validate:"gte=0"`
}

type MetricsConfig struct {
	// Textfile, when set, receives gauges after every evaluation.
	Textfile string `yaml:"textfile"`
}

// TablesConfig points at replacement reference tables. Empty uses the
// built-in ones.
type TablesConfig struct {
	Remediation string `yaml:"remediation"`
	Risk        string `yaml:"risk"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Catalog: filepath.Join("controls", "controls.yaml"),
		Log:     LogConfig{Level: "info"},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Watch: WatchConfig{Debounce: 300 * time.Millisecond},
	}
}

var validate = validator.New()

// Validate checks field constraints and reports every violation.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", yamlPath(fe.Namespace()), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// yamlPath turns "Config.Server.Addr" into "server.addr".
func yamlPath(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.ToLower(strings.Join(parts, "."))
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Merge merges another config into this one (other takes precedence for non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Catalog != "" {
		c.Catalog = other.Catalog
	}
	if other.Profile != "" {
		c.Profile = other.Profile
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}

	// Server
	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Server.ReadTimeout != 0 {
		c.Server.ReadTimeout = other.Server.ReadTimeout
	}
	if other.Server.ShutdownTimeout != 0 {
		c.Server.ShutdownTimeout = other.Server.ShutdownTimeout
	}
	if other.Server.MaxBodyBytes != 0 {
		c.Server.MaxBodyBytes = other.Server.MaxBodyBytes
	}

	// Evaluate
	if other.Evaluate.MinSeverity != "" {
		c.Evaluate.MinSeverity = other.Evaluate.MinSeverity
	}
	if other.Evaluate.FailedOnly {
		c.Evaluate.FailedOnly = true
	}
	if other.Evaluate.StrictValidation {
		c.Evaluate.StrictValidation = true
	}

	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
	if other.Metrics.Textfile != "" {
		c.Metrics.Textfile = other.Metrics.Textfile
	}
	if other.Tables.Remediation != "" {
		c.Tables.Remediation = other.Tables.Remediation
	}
	if other.Tables.Risk != "" {
		c.Tables.Risk = other.Tables.Risk
	}
}
