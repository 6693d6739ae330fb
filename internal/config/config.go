package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrInsecureSecret is returned when the session secret is set but too short.
var ErrInsecureSecret = errors.New("config: session secret must be at least 32 bytes")

// Config holds all configuration for the application.
type Config struct {
	APIURL        string        `env:"FINASSIST_API_URL" envDefault:"http://localhost:5000"`
	Addr          string        `env:"FINASSIST_ADDR" envDefault:":8080"`
	SessionSecret string        `env:"FINASSIST_SESSION_SECRET"`
	SessionTTL    time.Duration `env:"FINASSIST_SESSION_TTL" envDefault:"30m"`
	ReplyDelay    time.Duration `env:"FINASSIST_REPLY_DELAY" envDefault:"500ms"`
	AlertDelay    time.Duration `env:"FINASSIST_ALERT_DELAY" envDefault:"1500ms"`
	HTTPTimeout   time.Duration `env:"FINASSIST_HTTP_TIMEOUT" envDefault:"30s"`
	StateDir      string        `env:"FINASSIST_STATE_DIR" envDefault:"~/.finassist"`

	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg.finish()
}

// FromMap builds a Config from the given variables only.
func FromMap(vars map[string]string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg.finish()
}

func (c *Config) finish() (*Config, error) {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("config: FINASSIST_API_URL %q is not an absolute URL", c.APIURL)
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")

	if c.SessionSecret != "" && len(c.SessionSecret) < 32 {
		return nil, ErrInsecureSecret
	}
	c.StateDir = expandHome(c.StateDir)
	return c, nil
}

// HasSessionSecret reports whether a fixed secret was configured. Without one
// the server generates a random secret and cookies do not survive restarts.
func (c *Config) HasSessionSecret() bool {
	return c.SessionSecret != ""
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
