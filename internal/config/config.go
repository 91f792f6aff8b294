package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	Env        string
	ServerPort int

	DatabasePath      string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnMaxIdleTime time.Duration

	JWTSecret       string
	JWTIssuer       string
	JWTAudience     string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	FrontendOrigin   string
	ReminderSchedule string
}

// Load loads configuration from environment variables or sets defaults.
// The JWT signing secret has no default: the process must not start without it.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required and has no default")
	}

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		ServerPort:       port,
		DatabasePath:     getEnv("DATABASE_PATH", "./taskmanager.db"),
		JWTSecret:        secret,
		JWTIssuer:        getEnv("JWT_ISSUER", "task-manager"),
		JWTAudience:      getEnv("JWT_AUDIENCE", "task-manager-client"),
		FrontendOrigin:   getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
		ReminderSchedule: getEnv("REMINDER_SCHEDULE", "* * * * *"),
	}

	if cfg.DBMaxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleConns, err = getEnvInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return nil, err
	}
	if cfg.DBConnMaxLifetime, err = getEnvDuration("DB_CONN_MAX_LIFETIME", time.Hour); err != nil {
		return nil, err
	}
	if cfg.DBConnMaxIdleTime, err = getEnvDuration("DB_CONN_MAX_IDLE_TIME", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.AccessTokenTTL, err = getEnvDuration("JWT_ACCESS_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RefreshTokenTTL, err = getEnvDuration("JWT_REFRESH_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsDevelopment reports whether the process runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
