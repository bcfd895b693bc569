package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const devJWTSecret = "dev-secret-change-in-production"

type Config struct {
	Port             string
	Env              string
	LogLevel         slog.Level
	DatabaseDSN      string
	AutoMigrate      bool
	JWTSecret        string
	JWTExpiry        time.Duration
	EnforceOwnership bool
	ShutdownTimeout  time.Duration
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads the environment. Call godotenv first to pick up a .env file.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/campusnotes?parseTime=true"),
		JWTSecret:   getEnv("JWT_SECRET", devJWTSecret),
	}

	var errs []error
	var err error

	if err = cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if cfg.AutoMigrate, err = strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "true")); err != nil {
		errs = append(errs, fmt.Errorf("DB_AUTO_MIGRATE: %w", err))
	}
	if cfg.EnforceOwnership, err = strconv.ParseBool(getEnv("ENFORCE_PROFILE_OWNERSHIP", "false")); err != nil {
		errs = append(errs, fmt.Errorf("ENFORCE_PROFILE_OWNERSHIP: %w", err))
	}
	if cfg.JWTExpiry, err = ParseDuration(getEnv("JWT_EXPIRES_IN", "7d")); err != nil {
		errs = append(errs, fmt.Errorf("JWT_EXPIRES_IN: %w", err))
	}
	if cfg.ShutdownTimeout, err = ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err))
	}

	if cfg.IsProduction() && cfg.JWTSecret == devJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET must be set in production environment"))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseDuration accepts Go durations plus a whole-day suffix such as "7d".
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", s)
	}
	return d, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
