package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the roadmap service
type Config struct {
	ServiceName string
	Port        string
	DatabaseURL string
	DataPath    string
	GinMode     string
	LogLevel    slog.Level
	Palette     []string
}

// fileConfig mirrors the optional YAML overrides file
type fileConfig struct {
	ServiceName string   `yaml:"service_name"`
	LogLevel    string   `yaml:"log_level"`
	Palette     []string `yaml:"palette"`
}

// LoadEnv loads the first .env found in the working directory or its parents
func LoadEnv() {
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}
}

// Load builds a Config from the environment, applying ROADMAP_CONFIG when set
func Load() (Config, error) {
	LoadEnv()

	cfg := Config{
		ServiceName: GetString("SERVICE_NAME", "roadmap-api"),
		Port:        GetString("PORT", "8000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DataPath:    GetString("DATA_PATH", "roadmap.db"),
		GinMode:     os.Getenv("GIN_MODE"),
		LogLevel:    ParseLevel(GetString("LOG_LEVEL", "info")),
	}

	if path := os.Getenv("ROADMAP_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if fc.ServiceName != "" {
		c.ServiceName = fc.ServiceName
	}
	if fc.LogLevel != "" {
		c.LogLevel = ParseLevel(fc.LogLevel)
	}
	if len(fc.Palette) > 0 {
		c.Palette = fc.Palette
	}
	return nil
}

// GetString returns the environment value for key or fallback when unset
func GetString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// ParseLevel maps debug/info/warn/error to a slog level, defaulting to info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
