package config

import (
	"log/slog"
	"os"
)

const (
	// ProjectConfigFile is looked up in the working directory.
	ProjectConfigFile = "aigov.yaml"

	EnvCatalog  = "AIGOV_CATALOG"
	EnvProfile  = "AIGOV_PROFILE"
	EnvLogLevel = "AIGOV_LOG_LEVEL"
	EnvAddr     = "AIGOV_ADDR"
)

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger *slog.Logger
	getenv func(string) string
}

func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, getenv: os.Getenv}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. The file at path, or aigov.yaml in the working directory when path is empty
// 3. AIGOV_* environment variables
//
// An explicit path that cannot be read is an error; a missing aigov.yaml
// is not.
func (l *Loader) Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded config", slog.String("path", path))
		config.Merge(fileConfig)
	} else if fileConfig, err := LoadFromFile(ProjectConfigFile); err == nil {
		l.logger.Debug("Loaded project config", slog.String("path", ProjectConfigFile))
		config.Merge(fileConfig)
	} else if _, statErr := os.Stat(ProjectConfigFile); statErr == nil {
		l.logger.Warn("Failed to load project config", slog.String("path", ProjectConfigFile), slog.String("error", err.Error()))
	}

	l.applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (l *Loader) applyEnv(c *Config) {
	if v := l.getenv(EnvCatalog); v != "" {
		c.Catalog = v
	}
	if v := l.getenv(EnvProfile); v != "" {
		c.Profile = v
	}
	if v := l.getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := l.getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
}
