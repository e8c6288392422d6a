package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Data layout
	DataDir   string `env:"DATA_DIR" default:"data"`
	DataDirCN string `env:"DATA_DIR_CN" default:"data_cn"`

	// Corpus window: first year the catalog covers.
	StartYear int `env:"START_YEAR" default:"2006"`

	// External APIs
	JikanAPIURL   string `env:"JIKAN_API_URL" default:"https://api.jikan.moe/v4"`
	BangumiAPIURL string `env:"BANGUMI_API_URL" default:"https://api.bgm.tv"`
	BangumiWebURL string `env:"BANGUMI_WEB_URL" default:"https://bgm.tv"`

	// Rate limiting and timeouts for upstream requests
	JikanRequestInterval   time.Duration `env:"JIKAN_REQUEST_INTERVAL" default:"2s"`
	BangumiRequestInterval time.Duration `env:"BANGUMI_REQUEST_INTERVAL" default:"500ms"`
	HTTPTimeout            time.Duration `env:"HTTP_TIMEOUT" default:"30s"`

	// Preview server
	HTTPPort int `env:"HTTP_PORT" default:"8080"`

	// Development
	LogLevel string `env:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from the environment, with an optional .env
// file layered underneath.
func Load() (*Config, error) {
	// Missing .env is fine; system env vars still apply.
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := loadEnvString(&cfg.DataDir, "DATA_DIR", "data"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&cfg.DataDirCN, "DATA_DIR_CN", "data_cn"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&cfg.StartYear, "START_YEAR", 2006); err != nil {
		return nil, err
	}
	if err := loadEnvString(&cfg.JikanAPIURL, "JIKAN_API_URL", "https://api.jikan.moe/v4"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&cfg.BangumiAPIURL, "BANGUMI_API_URL", "https://api.bgm.tv"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&cfg.BangumiWebURL, "BANGUMI_WEB_URL", "https://bgm.tv"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&cfg.JikanRequestInterval, "JIKAN_REQUEST_INTERVAL", 2*time.Second); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&cfg.BangumiRequestInterval, "BANGUMI_REQUEST_INTERVAL", 500*time.Millisecond); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&cfg.HTTPTimeout, "HTTP_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&cfg.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}
	if err := loadEnvString(&cfg.LogLevel, "LOG_LEVEL", "info"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate performs validation on the loaded configuration.
func (c *Config) Validate() error {
	var errs []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, "HTTP_PORT must be between 1 and 65535")
	}
	if c.StartYear < 1950 || c.StartYear > time.Now().Year() {
		errs = append(errs, "START_YEAR must be between 1950 and the current year")
	}
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}
	if c.JikanRequestInterval <= 0 || c.BangumiRequestInterval <= 0 {
		errs = append(errs, "request intervals must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// DataDirFor returns the data directory for a corpus language.
func (c *Config) DataDirFor(lang string) string {
	if lang == "cn" {
		return c.DataDirCN
	}
	return c.DataDir
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
