package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearSchedulerEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"SCHEDULER_CONFIG",
		"SCHEDULER_HTTP_PORT",
		"SCHEDULER_SQLITE_DSN",
		"SCHEDULER_ALLOWED_ORIGIN",
		"SCHEDULER_MAX_SLOTS_PER_DAY",
	} {
		// t.Setenv registers the restore; the empty value is then unset so
		// the loader sees a clean environment.
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearSchedulerEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "file:scheduler.db" {
		t.Errorf("SQLiteDSN = %q, want default", cfg.SQLiteDSN)
	}
	if cfg.AllowedOrigin != "*" {
		t.Errorf("AllowedOrigin = %q, want wildcard", cfg.AllowedOrigin)
	}
	if cfg.MaxSlotsPerDay != 2 {
		t.Errorf("MaxSlotsPerDay = %d, want 2", cfg.MaxSlotsPerDay)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	clearSchedulerEnv(t)

	path := filepath.Join(t.TempDir(), "scheduler.yaml")
	contents := "http_port: 9090\nsqlite_dsn: file:custom.db\nmax_slots_per_day: 3\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("SCHEDULER_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.HTTPPort != 9090 {
		t.Errorf("HTTPPort = %d, want 9090", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "file:custom.db" {
		t.Errorf("SQLiteDSN = %q, want file:custom.db", cfg.SQLiteDSN)
	}
	if cfg.MaxSlotsPerDay != 3 {
		t.Errorf("MaxSlotsPerDay = %d, want 3", cfg.MaxSlotsPerDay)
	}
	// Values absent from the file keep their defaults.
	if cfg.AllowedOrigin != "*" {
		t.Errorf("AllowedOrigin = %q, want wildcard", cfg.AllowedOrigin)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	clearSchedulerEnv(t)

	path := filepath.Join(t.TempDir(), "scheduler.yaml")
	if err := os.WriteFile(path, []byte("http_port: 9090\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("SCHEDULER_CONFIG", path)
	t.Setenv("SCHEDULER_HTTP_PORT", "7070")
	t.Setenv("SCHEDULER_ALLOWED_ORIGIN", "https://app.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.HTTPPort != 7070 {
		t.Errorf("HTTPPort = %d, want env override 7070", cfg.HTTPPort)
	}
	if cfg.AllowedOrigin != "https://app.example.com" {
		t.Errorf("AllowedOrigin = %q, want env override", cfg.AllowedOrigin)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric port", "SCHEDULER_HTTP_PORT", "eighty"},
		{"negative port", "SCHEDULER_HTTP_PORT", "-1"},
		{"zero cap", "SCHEDULER_MAX_SLOTS_PER_DAY", "0"},
		{"non-numeric cap", "SCHEDULER_MAX_SLOTS_PER_DAY", "two"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearSchedulerEnv(t)
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearSchedulerEnv(t)
	t.Setenv("SCHEDULER_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Error("expected error for missing config file")
	}
}
