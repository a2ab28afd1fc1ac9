package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Vec3 is a point written as [x, y, z]. Empty means "not set".
type Vec3 []float64

// IsSet reports whether the point was configured.
func (v Vec3) IsSet() bool {
	return len(v) > 0
}

// XYZ returns coordinates. Call only after Validate.
func (v Vec3) XYZ() (x, y, z float64) {
	return v[0], v[1], v[2]
}

func (v Vec3) validate(field string) error {
	if len(v) != 0 && len(v) != 3 {
		return fmt.Errorf("%s: want [x, y, z], got %d values", field, len(v))
	}
	return nil
}

// ParseLogLevel maps config string to slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
