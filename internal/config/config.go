package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the service configuration. Values come from an optional YAML
// file overlaid by environment variables; env wins.
type Config struct {
	HTTPAddr        string `yaml:"http_addr"`
	NATSURL         string `yaml:"nats_url"`
	DatasetPath     string `yaml:"dataset_path"`
	DatasetSize     int    `yaml:"dataset_size"`
	DatasetSeed     int64  `yaml:"dataset_seed"`
	HistorySessions int    `yaml:"history_sessions"`
	LogLevel        string `yaml:"log_level"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		HTTPAddr:        ":8080",
		NATSURL:         "",
		DatasetPath:     "",
		DatasetSize:     10000,
		DatasetSeed:     42,
		HistorySessions: 1000,
		LogLevel:        "info",
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then environment variables.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.HTTPAddr = getEnv("ASKSIEM_HTTP_ADDR", cfg.HTTPAddr)
	cfg.NATSURL = getEnv("ASKSIEM_NATS_URL", cfg.NATSURL)
	cfg.DatasetPath = getEnv("ASKSIEM_DATASET_PATH", cfg.DatasetPath)
	cfg.DatasetSize = getEnvInt("ASKSIEM_DATASET_SIZE", cfg.DatasetSize)
	cfg.DatasetSeed = int64(getEnvInt("ASKSIEM_DATASET_SEED", int(cfg.DatasetSeed)))
	cfg.HistorySessions = getEnvInt("ASKSIEM_HISTORY_SESSIONS", cfg.HistorySessions)
	cfg.LogLevel = getEnv("ASKSIEM_LOG_LEVEL", cfg.LogLevel)

	if cfg.DatasetSize <= 0 {
		return cfg, fmt.Errorf("dataset_size must be positive, got %d", cfg.DatasetSize)
	}
	if cfg.HistorySessions <= 0 {
		return cfg, fmt.Errorf("history_sessions must be positive, got %d", cfg.HistorySessions)
	}

	return cfg, nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
