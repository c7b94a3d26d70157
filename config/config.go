// Package config handles loading and managing application configuration
// from YAML files, .env files, and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// QRConfig controls how generated QR images are rendered.
type QRConfig struct {
	Size       int    `yaml:"size"`
	Border     bool   `yaml:"border"`
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
}

// Config holds all application configuration values.
type Config struct {
	Port     int      `yaml:"port"`
	DataDir  string   `yaml:"data_dir"`
	LogLevel string   `yaml:"log_level"`
	QR       QRConfig `yaml:"qr"`
}

// defaults returns a Config populated with sensible default values.
func defaults() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return &Config{
		Port:     8560,
		DataDir:  filepath.Join(homeDir, ".payqr"),
		LogLevel: "info",
		QR: QRConfig{
			Size:       512,
			Border:     true,
			Foreground: "#000000",
			Background: "#ffffff",
		},
	}
}

// Load reads configuration from the YAML file at path, falling back to
// defaults if the file does not exist. A .env file in the working directory
// is loaded first, then environment variables with the PAYQR_ prefix
// override any file or default values.
func Load(path string) (*Config, error) {
	// Best effort; a missing .env is not an error.
	_ = godotenv.Load()

	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// File doesn't exist — proceed with defaults.
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides applies PAYQR_* environment variable overrides to cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PAYQR_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("PAYQR_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("PAYQR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PAYQR_QR_SIZE"); v != "" {
		if s, err := strconv.Atoi(v); err == nil {
			cfg.QR.Size = s
		}
	}
	if v := os.Getenv("PAYQR_QR_BORDER"); v != "" {
		switch strings.ToLower(v) {
		case "true", "1", "yes":
			cfg.QR.Border = true
		case "false", "0", "no":
			cfg.QR.Border = false
		}
	}
	if v := os.Getenv("PAYQR_QR_FOREGROUND"); v != "" {
		cfg.QR.Foreground = v
	}
	if v := os.Getenv("PAYQR_QR_BACKGROUND"); v != "" {
		cfg.QR.Background = v
	}
}

// EnsureDataDir creates the DataDir if it does not already exist.
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir %s: %w", c.DataDir, err)
	}
	return nil
}
