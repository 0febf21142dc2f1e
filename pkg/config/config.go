// Package config loads the quadm client configuration: session parameters
// for the meta server connection and logging behavior.
//
// Configuration sources, highest precedence first:
//  1. Environment variables (QUADM_*)
//  2. Configuration file (-f flag, YAML)
//  3. Default values
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// DefaultMaxContentLength caps response payload size at 512 MiB, matching
// the meta server's dump sizes.
const DefaultMaxContentLength = 512 << 20

// Config is the quadm client configuration.
type Config struct {
	// Client holds meta server session parameters.
	Client ClientConfig `mapstructure:"client"`

	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging"`
}

// ClientConfig holds meta server session parameters.
type ClientConfig struct {
	// Timeout bounds a single admin round-trip, dial included.
	Timeout time.Duration `mapstructure:"timeout"`

	// MaxContentLength is the largest response payload accepted, in bytes.
	MaxContentLength int `mapstructure:"max_content_length"`
}

// LoggingConfig controls log output behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // DEBUG, INFO, WARN, ERROR
	Format string `mapstructure:"format"` // text, json
	Output string `mapstructure:"output"` // stdout, stderr, or file path
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Client: ClientConfig{
			Timeout:          30 * time.Second,
			MaxContentLength: DefaultMaxContentLength,
		},
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load loads the configuration. With an empty path only defaults and
// environment overrides apply; a named file must exist and parse.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// QUADM_CLIENT_TIMEOUT=5s, QUADM_LOGGING_LEVEL=DEBUG, ...
	v.SetEnvPrefix("QUADM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(
		mapstructure.StringToTimeDurationHookFunc())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers defaults so env overrides apply even without a file.
func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("client.timeout", def.Client.Timeout)
	v.SetDefault("client.max_content_length", def.Client.MaxContentLength)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.output", def.Logging.Output)
}

// Validate checks the configuration for usable values.
func Validate(cfg *Config) error {
	if cfg.Client.Timeout <= 0 {
		return fmt.Errorf("client.timeout must be positive, got %s", cfg.Client.Timeout)
	}
	if cfg.Client.MaxContentLength <= 0 {
		return fmt.Errorf("client.max_content_length must be positive, got %d",
			cfg.Client.MaxContentLength)
	}
	switch strings.ToUpper(cfg.Logging.Level) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("logging.level must be one of DEBUG, INFO, WARN, ERROR, got %q",
			cfg.Logging.Level)
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", cfg.Logging.Format)
	}
	return nil
}
