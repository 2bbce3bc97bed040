package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		env      string
		expected bool
	}{
		{"development", true},
		{"production", false},
		{"staging", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := &Config{App: AppConfig{Env: tt.env}}
			if got := cfg.IsDevelopment(); got != tt.expected {
				t.Errorf("IsDevelopment() = %v, want %v for env %q", got, tt.expected, tt.env)
			}
		})
	}
}

// chdirTemp moves the test into an empty directory so no stray config.yaml or
// .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestConfig_Defaults(t *testing.T) {
	chdirTemp(t)
	for _, v := range []string{"APP_ENV", "APP_PORT", "APP_SECRET", "DATABASE_URL", "ADMIN_EMAIL", ConfigPathEnv} {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.App.Host)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, DefaultSecret, cfg.App.Secret)
	assert.Equal(t, "postgres://localhost:5432/macrotracker?sslmode=disable", cfg.Database.URL)
	assert.Equal(t, "admin@example.com", cfg.Admin.Email)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "admin123", cfg.Admin.Password)
	assert.Equal(t, 24*time.Hour, cfg.Session.Duration)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
}

func TestConfig_EnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://db:5432/food")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "3")
	t.Setenv("ADMIN_EMAIL", "root@example.org")
	t.Setenv("SESSION_DURATION", "2h")
	t.Setenv("METRICS_ALLOWED_NETWORKS", "10.0.0.0/8,192.168.1.1/32")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 9000, cfg.App.Port)
	assert.Equal(t, "postgres://db:5432/food", cfg.Database.URL)
	assert.Equal(t, 3, cfg.Database.MaxOpenConns)
	assert.Equal(t, "root@example.org", cfg.Admin.Email)
	assert.Equal(t, 2*time.Hour, cfg.Session.Duration)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1/32"}, cfg.Metrics.AllowedNetworks)
}

func TestConfig_YAMLThenEnv(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.yaml")
	yml := `
app:
  port: 7000
  secret: from-yaml
database:
  url: postgres://yaml/db
  conn_max_lifetime: 90s
admin:
  username: chef
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv(ConfigPathEnv, path)
	t.Setenv("APP_SECRET", "from-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.App.Port)
	assert.Equal(t, "from-env", cfg.App.Secret, "environment wins over yaml")
	assert.Equal(t, "postgres://yaml/db", cfg.Database.URL)
	assert.Equal(t, 90*time.Second, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "chef", cfg.Admin.Username)
	assert.Equal(t, "admin@example.com", cfg.Admin.Email, "unset yaml keys keep defaults")
}

func TestConfig_MissingExplicitFile(t *testing.T) {
	chdirTemp(t)
	t.Setenv(ConfigPathEnv, "/nonexistent/macrotracker.yaml")

	_, err := Load()
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad port", func(c *Config) { c.App.Port = 0 }, true},
		{"empty database url", func(c *Config) { c.Database.URL = "" }, true},
		{"default secret in production", func(c *Config) { c.App.Env = "production" }, true},
		{"custom secret in production", func(c *Config) {
			c.App.Env = "production"
			c.App.Secret = "s3cr3t"
		}, false},
		{"zero session duration", func(c *Config) { c.Session.Duration = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
