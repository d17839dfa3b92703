// Package config handles reading and writing the crema config file and
// its environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for config.yaml in the crema home
// directory.
type Config struct {
	Version               int           `yaml:"version"`
	APIBaseURL            string        `yaml:"api_base_url"`
	RequestTimeoutSeconds int           `yaml:"request_timeout_seconds"`
	Optimal               OptimalConfig `yaml:"optimal"`
}

// OptimalConfig holds the client-side fallback thresholds for counting a
// shot as optimal when the server does not supply its own.
type OptimalConfig struct {
	RatioMin       float64 `yaml:"ratio_min"`
	RatioMax       float64 `yaml:"ratio_max"`
	TimeMinSeconds int     `yaml:"time_min_seconds"`
	TimeMaxSeconds int     `yaml:"time_max_seconds"`
}

const configFile = "config.yaml"

// Home returns the crema home directory (~/.crema).
func Home() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".crema"), nil
}

// ReadConfig reads config.yaml from dir. A missing file yields the
// defaults rather than an error; only malformed YAML fails.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// WriteConfig writes cfg to config.yaml in dir, creating the directory
// if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dir, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:               1,
		APIBaseURL:            "http://localhost:8000",
		RequestTimeoutSeconds: 30,
		Optimal: OptimalConfig{
			RatioMin:       1.8,
			RatioMax:       2.2,
			TimeMinSeconds: 25,
			TimeMaxSeconds: 30,
		},
	}
}

// ApplyEnv overlays environment overrides onto cfg. A .env file in the
// working directory is loaded first, best-effort; explicit environment
// variables win over it.
func ApplyEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("CREMA_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("CREMA_REQUEST_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestTimeoutSeconds = n
		}
	}
}
