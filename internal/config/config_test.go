package config

import (
	"log/slog"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Environment != "development" {
		t.Errorf("Expected development environment, got %q", cfg.Environment)
	}
	if cfg.StorageBackend != "memory" {
		t.Errorf("Expected memory backend, got %q", cfg.StorageBackend)
	}
	if cfg.SimulationDays != 30 || cfg.SettlementSize != 6 {
		t.Errorf("Unexpected simulation defaults: %d days, %d settlers", cfg.SimulationDays, cfg.SettlementSize)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/test.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.StorageBackend != "sqlite" || cfg.SQLitePath != "/tmp/test.db" {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("Expected debug level, got %v", cfg.SlogLevel())
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"unset", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		if got := cfg.SlogLevel(); got != tt.expected {
			t.Errorf("Level %q: expected %v, got %v", tt.level, tt.expected, got)
		}
	}
}
