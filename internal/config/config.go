package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds runtime configuration for both binaries.
type Config struct {
	Log     LogConfig
	Console ConsoleConfig
	Server  ServerConfig
	Metrics MetricsConfig
}

// LogConfig mirrors logging.Config.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.Console.normalize()
	cfg.Server.normalize()
	if err := cfg.Console.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files when they exist.
// Variables already present in the environment win.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	return nil
}

// Usage describes every supported environment variable.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}
