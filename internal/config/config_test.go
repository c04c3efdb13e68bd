package config

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.DBPath != "flotenn.db" || cfg.RateLimit != 10 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.SlowQuery != 50*time.Millisecond || cfg.OutboxInterval != time.Minute {
		t.Errorf("durations = %v %v", cfg.SlowQuery, cfg.OutboxInterval)
	}
	if len(cfg.TrustedOrigins) != 2 {
		t.Errorf("TrustedOrigins = %v", cfg.TrustedOrigins)
	}
	if cfg.Production() {
		t.Error("default env should not be production")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("FLOTENN_ENV", "production")
	t.Setenv("FLOTENN_ADDR", ":9090")
	t.Setenv("FLOTENN_SLOW_REQUEST", "1s")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Production() || cfg.Addr != ":9090" || cfg.SlowRequest != time.Second {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("FLOTENN_RATE_LIMIT", "lots")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Errorf("err = %v, want parse env error", err)
	}
}

func TestCSRFSecret(t *testing.T) {
	valid := strings.Repeat("ab", 32)
	tests := []struct {
		name          string
		cfg           Config
		wantErr       error
		wantGenerated bool
	}{
		{"configured", Config{CSRFKey: valid}, nil, false},
		{"bad hex", Config{CSRFKey: "zz"}, ErrCSRFKeyFormat, false},
		{"short", Config{CSRFKey: "abcd"}, ErrCSRFKeyFormat, false},
		{"missing in production", Config{Env: "production"}, ErrCSRFKeyRequired, false},
		{"missing in development", Config{Env: "development"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, generated, err := tt.cfg.CSRFSecret()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err == nil && len(key) != 32 {
				t.Errorf("key length = %d", len(key))
			}
			if generated != tt.wantGenerated {
				t.Errorf("generated = %v, want %v", generated, tt.wantGenerated)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := (Config{LogLevel: tt.in}).SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
