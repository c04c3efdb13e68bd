// Package config loads runtime settings from FLOTENN_* environment variables.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration.
type Config struct {
	Env        string `env:"FLOTENN_ENV" envDefault:"development"`
	Addr       string `env:"FLOTENN_ADDR" envDefault:":8080"`
	DBPath     string `env:"FLOTENN_DB_PATH" envDefault:"flotenn.db"`
	UploadsDir string `env:"FLOTENN_UPLOADS_DIR" envDefault:"uploads"`
	BaseURL    string `env:"FLOTENN_BASE_URL" envDefault:"http://localhost:8080"`

	CSRFKey        string   `env:"FLOTENN_CSRF_KEY"`
	TrustedOrigins []string `env:"FLOTENN_TRUSTED_ORIGINS" envDefault:"localhost:8080,127.0.0.1:8080" envSeparator:","`
	RateLimit      int      `env:"FLOTENN_RATE_LIMIT" envDefault:"10"`

	ResendKey   string `env:"FLOTENN_RESEND_KEY"`
	MailFrom    string `env:"FLOTENN_MAIL_FROM" envDefault:"Flotenn <noreply@flotenn.in>"`
	NotifyEmail string `env:"FLOTENN_NOTIFY_EMAIL" envDefault:"hello@flotenn.in"`

	SlowRequest time.Duration `env:"FLOTENN_SLOW_REQUEST" envDefault:"200ms"`
	SlowQuery   time.Duration `env:"FLOTENN_SLOW_QUERY" envDefault:"50ms"`

	OutboxInterval  time.Duration `env:"FLOTENN_OUTBOX_INTERVAL" envDefault:"1m"`
	ShutdownTimeout time.Duration `env:"FLOTENN_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	LogLevel string `env:"FLOTENN_LOG_LEVEL" envDefault:"info"`

	AdminEmail    string `env:"FLOTENN_ADMIN_EMAIL" envDefault:"admin@flotenn.in"`
	AdminPassword string `env:"FLOTENN_ADMIN_PASSWORD"`
}

var (
	ErrCSRFKeyFormat   = errors.New("FLOTENN_CSRF_KEY must be 64 hex characters (32 bytes)")
	ErrCSRFKeyRequired = errors.New("FLOTENN_CSRF_KEY is required in production")
)

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Production reports whether the process runs in production.
func (c Config) Production() bool {
	return c.Env == "production"
}

// SlogLevel maps LogLevel to a slog level. Unknown names mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// CSRFSecret decodes the configured CSRF key. Outside production a missing key
// yields a random one, so sessions do not survive a restart; generated reports
// that case.
func (c Config) CSRFSecret() (key []byte, generated bool, err error) {
	if c.CSRFKey != "" {
		key, err := hex.DecodeString(c.CSRFKey)
		if err != nil || len(key) != 32 {
			return nil, false, ErrCSRFKeyFormat
		}
		return key, false, nil
	}
	if c.Production() {
		return nil, false, ErrCSRFKeyRequired
	}
	key = make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, false, fmt.Errorf("generate csrf key: %w", err)
	}
	return key, true, nil
}
