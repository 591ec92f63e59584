// Package config loads server configuration from defaults, an optional
// YAML file, and FAIRLENS_-prefixed environment variables, in that
// order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/fairlens/fairlens/internal/domain"
)

// envPrefix namespaces environment overrides. Double underscores nest,
// e.g. FAIRLENS_SERVER__PORT=9000 sets server.port and
// FAIRLENS_LOG_LEVEL=debug sets log_level.
const envPrefix = "FAIRLENS_"

// Config is the full server configuration.
type Config struct {
	Environment string `koanf:"environment" validate:"oneof=development staging production"`
	LogLevel    string `koanf:"log_level" validate:"oneof=debug info warn error"`

	Server  ServerConfig  `koanf:"server"`
	Dataset DatasetConfig `koanf:"dataset"`
	Engine  EngineConfig  `koanf:"engine"`
	Explain ExplainConfig `koanf:"explain"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            int           `koanf:"port" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// DatasetConfig locates the loan application CSV and the timeline
// storage file.
type DatasetConfig struct {
	Path         string `koanf:"path" validate:"required"`
	TimelinePath string `koanf:"timeline_path"`
}

// EngineConfig locates the optional decision engine configuration file.
// When Path is empty the engine runs with built-in defaults.
type EngineConfig struct {
	Path string `koanf:"path"`
}

// ExplainConfig configures the optional chat-completion provider for
// narrative explanations. An empty provider disables external calls and
// the explainer falls back to deterministic summaries.
type ExplainConfig struct {
	Provider          string        `koanf:"provider"`
	APIKey            string        `koanf:"api_key"`
	Model             string        `koanf:"model"`
	BaseURL           string        `koanf:"base_url"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Environment: "development",
		LogLevel:    "info",
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Dataset: DatasetConfig{
			Path:         "data/loan_applications.csv",
			TimelinePath: "data/compliance_timeline.json",
		},
		Explain: ExplainConfig{
			Timeout:           30 * time.Second,
			RequestsPerSecond: 1,
			Burst:             3,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path
// when non-empty, and environment variables. The file must exist when
// a path is given.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	defaults := Default()
	if err := k.Load(structs.Provider(&defaults, "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration against its struct constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}
	return nil
}
