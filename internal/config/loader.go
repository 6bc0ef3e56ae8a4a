package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime configuration for the scheduler service.
//
// Values are resolved in three layers: built-in defaults, then an optional
// YAML file named by SCHEDULER_CONFIG, then individual environment variable
// overrides.
type Config struct {
	HTTPPort       int    `yaml:"http_port"`
	SQLiteDSN      string `yaml:"sqlite_dsn"`
	AllowedOrigin  string `yaml:"allowed_origin"`
	MaxSlotsPerDay int    `yaml:"max_slots_per_day"`
}

// Load resolves configuration from defaults, the optional config file and
// the process environment.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:       8080,
		SQLiteDSN:      "file:scheduler.db",
		AllowedOrigin:  "*",
		MaxSlotsPerDay: 2,
	}

	if path := strings.TrimSpace(os.Getenv("SCHEDULER_CONFIG")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("SCHEDULER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "SCHEDULER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("SCHEDULER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if origin := strings.TrimSpace(os.Getenv("SCHEDULER_ALLOWED_ORIGIN")); origin != "" {
		cfg.AllowedOrigin = origin
	}

	if maxValue := strings.TrimSpace(os.Getenv("SCHEDULER_MAX_SLOTS_PER_DAY")); maxValue != "" {
		max, err := strconv.Atoi(maxValue)
		if err != nil || max <= 0 {
			invalid = append(invalid, "SCHEDULER_MAX_SLOTS_PER_DAY")
		} else {
			cfg.MaxSlotsPerDay = max
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}
