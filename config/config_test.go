package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPort != 8080 {
		t.Fatalf("port = %d, want 8080", cfg.ServerPort)
	}
	if cfg.SnapshotInterval != 5*time.Minute {
		t.Fatalf("snapshot interval = %s, want 5m", cfg.SnapshotInterval)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("origins = %v", cfg.CORSAllowedOrigins)
	}
	if level, _ := cfg.SlogLevel(); level != slog.LevelInfo {
		t.Fatalf("level = %s, want info", level)
	}
	if cfg.R2Configured() {
		t.Fatalf("R2 reported configured without credentials")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/tournaments")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SNAPSHOT_INTERVAL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StorageDriver != StoragePostgres || cfg.ServerPort != 9090 || cfg.SnapshotInterval != 30*time.Second {
		t.Fatalf("cfg = %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("origins = %v", cfg.CORSAllowedOrigins)
	}
	if level, _ := cfg.SlogLevel(); level != slog.LevelDebug {
		t.Fatalf("level = %s, want debug", level)
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{"STORAGE_DRIVER": "memory"}, "JWT_SECRET_KEY"},
		{"postgres without url", map[string]string{"JWT_SECRET_KEY": "s"}, "DATABASE_URL"},
		{"unknown driver", map[string]string{"JWT_SECRET_KEY": "s", "STORAGE_DRIVER": "sqlite"}, "STORAGE_DRIVER"},
		{"port out of range", map[string]string{"JWT_SECRET_KEY": "s", "STORAGE_DRIVER": "memory", "SERVER_PORT": "70000"}, "SERVER_PORT"},
		{"bad log level", map[string]string{"JWT_SECRET_KEY": "s", "STORAGE_DRIVER": "memory", "LOG_LEVEL": "loud"}, "LOG_LEVEL"},
		{"bad port type", map[string]string{"JWT_SECRET_KEY": "s", "STORAGE_DRIVER": "memory", "SERVER_PORT": "http"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"JWT_SECRET_KEY", "STORAGE_DRIVER", "DATABASE_URL", "SERVER_PORT", "LOG_LEVEL"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}
