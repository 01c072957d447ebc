package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups the application configuration (read via Viper from env vars
// and optionally a file).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Upstream UpstreamConfig
	Auth     AuthConfig
	Session  SessionConfig
	Prefs    PrefsConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig settings for the dashboard's own HTTP server.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UpstreamConfig points at the LoMEMIS core API that owns all business logic.
type UpstreamConfig struct {
	BaseURL string        // e.g. https://api.lomemis.gov.sl
	Timeout time.Duration // per-request network timeout
}

// AuthConfig bearer-token verification at the dashboard edge. The secret is
// shared with the core API's token issuer; this service never issues tokens.
type AuthConfig struct {
	JWTSecret string
	Issuer    string // expected issuer claim; empty skips the check
}

// SessionConfig in-memory dashboard session registry.
type SessionConfig struct {
	TTL           time.Duration // idle lifetime of a viewer session
	SweepInterval time.Duration
}

// PrefsConfig viewer preference persistence. An empty path keeps preferences
// in memory only (they die with the process).
type PrefsConfig struct {
	Path string // e.g. /var/lib/lomemis-dashboard/prefs.json
}

// Load reads configuration from environment variables (and optionally from a
// .env/config.env file). Env vars take priority. Expected names: APP_ENV,
// HTTP_PORT, UPSTREAM_BASE_URL, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Optional config file (.env or config.env); missing files are fine.
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "lomemis-dashboard"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8090),
		},
		Upstream: UpstreamConfig{
			BaseURL: getString(v, "UPSTREAM_BASE_URL", "http://localhost:3001/api"),
			Timeout: time.Duration(getInt(v, "UPSTREAM_TIMEOUT_SECONDS", 25)) * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret: getString(v, "JWT_SECRET", ""),
			Issuer:    getString(v, "JWT_ISSUER", ""),
		},
		Session: SessionConfig{
			TTL:           time.Duration(getInt(v, "SESSION_TTL_MINUTES", 120)) * time.Minute,
			SweepInterval: time.Duration(getInt(v, "SESSION_SWEEP_MINUTES", 10)) * time.Minute,
		},
		Prefs: PrefsConfig{
			Path: getString(v, "PREFS_PATH", ""),
		},
	}

	if cfg.Upstream.BaseURL == "" {
		return nil, fmt.Errorf("config: UPSTREAM_BASE_URL must not be empty")
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
