/*-------------------------------------------------------------------------
 *
 * config.go
 *    Configuration loading for the CodeScore server
 *
 * Provides YAML file and environment variable based configuration for
 * the HTTP server, database pool, SMTP notifications, the review
 * provider, and the retention sweep.
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/config/config.go
 *
 *-------------------------------------------------------------------------
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Admin     AdminConfig     `yaml:"admin"`
	Provider  ProviderConfig  `yaml:"provider"`
	Auth      AuthConfig      `yaml:"auth"`
	Retention RetentionConfig `yaml:"retention"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

/* AdminConfig identifies the approver and where decision links point */
type AdminConfig struct {
	Email   string `yaml:"email"`
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

type ProviderConfig struct {
	BaseURL   string        `yaml:"base_url"`
	APIKey    string        `yaml:"api_key"`
	Model     string        `yaml:"model"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxTokens int           `yaml:"max_tokens"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type RetentionConfig struct {
	ReviewMaxAge  time.Duration `yaml:"review_max_age"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

/* DefaultConfig returns a configuration with sensible defaults */
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "codescore",
			Database:        "codescore",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			ConnMaxIdleTime: 10 * time.Minute,
		},
		SMTP: SMTPConfig{
			Port: 587,
		},
		Admin: AdminConfig{
			BaseURL: "http://localhost:8080",
		},
		Provider: ProviderConfig{
			BaseURL:   "https://api.deepseek.com/v1",
			Model:     "deepseek-coder",
			Timeout:   120 * time.Second,
			MaxTokens: 2000,
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Retention: RetentionConfig{
			ReviewMaxAge:  7 * 24 * time.Hour,
			SweepInterval: 24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

/* LoadConfig loads configuration from a YAML file on top of defaults */
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	LoadFromEnv(cfg)
	return cfg, nil
}

/* LoadFromEnv overrides configuration from environment variables */
func LoadFromEnv(cfg *Config) {
	setString(&cfg.Server.Host, "CODESCORE_HOST")
	setInt(&cfg.Server.Port, "CODESCORE_PORT")

	setString(&cfg.Database.Host, "CODESCORE_DB_HOST")
	setInt(&cfg.Database.Port, "CODESCORE_DB_PORT")
	setString(&cfg.Database.User, "CODESCORE_DB_USER")
	setString(&cfg.Database.Password, "CODESCORE_DB_PASSWORD")
	setString(&cfg.Database.Database, "CODESCORE_DB_NAME")

	setString(&cfg.SMTP.Host, "CODESCORE_SMTP_HOST")
	setInt(&cfg.SMTP.Port, "CODESCORE_SMTP_PORT")
	setString(&cfg.SMTP.User, "CODESCORE_SMTP_USER")
	setString(&cfg.SMTP.Password, "CODESCORE_SMTP_PASSWORD")
	setString(&cfg.SMTP.From, "CODESCORE_SMTP_FROM")

	setString(&cfg.Admin.Email, "CODESCORE_ADMIN_EMAIL")
	setString(&cfg.Admin.BaseURL, "CODESCORE_BASE_URL")
	setString(&cfg.Admin.APIKey, "CODESCORE_ADMIN_API_KEY")

	setString(&cfg.Provider.BaseURL, "DEEPSEEK_BASE_URL")
	setString(&cfg.Provider.APIKey, "DEEPSEEK_API_KEY")
	setString(&cfg.Provider.Model, "DEEPSEEK_MODEL")

	setString(&cfg.Auth.JWTSecret, "CODESCORE_JWT_SECRET")

	setString(&cfg.Logging.Level, "CODESCORE_LOG_LEVEL")
	setString(&cfg.Logging.Format, "CODESCORE_LOG_FORMAT")
}

/* Validate checks that required configuration is present */
func (c *Config) Validate() error {
	if c.Admin.Email == "" {
		return fmt.Errorf("admin email is required (admin.email or CODESCORE_ADMIN_EMAIL)")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required (auth.jwt_secret or CODESCORE_JWT_SECRET)")
	}
	if c.Provider.APIKey == "" {
		return fmt.Errorf("provider API key is required (provider.api_key or DEEPSEEK_API_KEY)")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
