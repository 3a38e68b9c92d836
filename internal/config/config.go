package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// Config aggregates runtime configuration for the client.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Logger LoggerConfig `yaml:"logger"`
}

// APIConfig points at the remote catalog service.
type APIConfig struct {
	// Base is the service root, including the API version segment.
	Base string `yaml:"base"`
	// Path is the shop-specific path segment used by catalog and cart routes.
	Path string `yaml:"path"`
	// TimeoutSeconds bounds each HTTP request. 0 means no client timeout.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// LoggerConfig configures the file logger.
type LoggerConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Timeout returns the request timeout duration.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Load reads configuration in increasing precedence: baked-in defaults,
// ~/.shopcli/config.yaml, .env / environment variables.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("home: %w", err)
	}
	return LoadFrom(filepath.Join(home, ".shopcli"))
}

// LoadFrom is Load with an explicit base directory. Tests pass a temp dir.
func LoadFrom(dir string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			Base:           "https://ec-course-api.hexschool.io/v2",
			Path:           "shopcli",
			TimeoutSeconds: 30,
		},
		Logger: LoggerConfig{
			Level: "info",
			File:  filepath.Join(dir, "shopcli.log"),
		},
	}

	if err := mergeFile(cfg, filepath.Join(dir, configFileName)); err != nil {
		return nil, err
	}

	cfg.API.Base = getEnv("SHOPCLI_API_BASE", cfg.API.Base)
	cfg.API.Path = getEnv("SHOPCLI_API_PATH", cfg.API.Path)
	cfg.API.TimeoutSeconds = getEnvAsInt("SHOPCLI_HTTP_TIMEOUT_SECONDS", cfg.API.TimeoutSeconds)
	cfg.Logger.Level = getEnv("SHOPCLI_LOG_LEVEL", cfg.Logger.Level)
	cfg.Logger.File = getEnv("SHOPCLI_LOG_FILE", cfg.Logger.File)

	if cfg.API.Base == "" {
		return nil, fmt.Errorf("api base URL must not be empty")
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil // no config file is fine
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
