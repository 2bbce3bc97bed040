package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSecret = "dev-secret-change-me"

	// ConfigPathEnv names the YAML file to load instead of ./config.yaml.
	ConfigPathEnv = "MACROTRACKER_CONFIG"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Admin    AdminConfig    `yaml:"admin"`
	Session  SessionConfig  `yaml:"session"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type AppConfig struct {
	Env      string `yaml:"env"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Secret   string `yaml:"secret"`
	LogLevel string `yaml:"log_level" split_words:"true"`
}

type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int           `yaml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" split_words:"true"`
}

// AdminConfig holds the credentials used to seed the first administrator.
type AdminConfig struct {
	Email    string `yaml:"email"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type SessionConfig struct {
	Duration     time.Duration `yaml:"duration"`
	SecureCookie bool          `yaml:"secure_cookie" split_words:"true"`
}

type MetricsConfig struct {
	Enabled         bool     `yaml:"enabled"`
	AllowedNetworks []string `yaml:"allowed_networks" split_words:"true"`
}

func Default() *Config {
	return &Config{
		App: AppConfig{
			Env:      "development",
			Host:     "127.0.0.1",
			Port:     8080,
			Secret:   DefaultSecret,
			LogLevel: "info",
		},
		Database: DatabaseConfig{
			URL:             "postgres://localhost:5432/macrotracker?sslmode=disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 10 * time.Minute,
		},
		Admin: AdminConfig{
			Email:    "admin@example.com",
			Username: "admin",
			Password: "admin123",
		},
		Session: SessionConfig{
			Duration: 24 * time.Hour,
		},
		Metrics: MetricsConfig{
			Enabled:         true,
			AllowedNetworks: []string{"127.0.0.1/32", "::1/128"},
		},
	}
}

// Load builds the configuration from defaults, an optional .env file, an
// optional YAML file and finally the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	path := os.Getenv(ConfigPathEnv)
	explicit := path != ""
	if !explicit {
		path = "config.yaml"
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	// No prefix: nested structs produce APP_PORT, DATABASE_URL, ADMIN_EMAIL, ...
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.App.Port)
	}
	if c.Database.URL == "" {
		return errors.New("database url is required")
	}
	if !c.IsDevelopment() && c.App.Secret == DefaultSecret {
		return errors.New("app secret must be changed outside development")
	}
	if c.Session.Duration <= 0 {
		return fmt.Errorf("invalid session duration %s", c.Session.Duration)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}
