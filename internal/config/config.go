package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Seed         SeedConfig
	Catalog      CatalogConfig
	Confirmation ConfirmationConfig
	RateLimit    RateLimitConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior. When File is set, logs are also
// written to a size-rotated file.
type LoggerConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// PasswordMode selects how stored credentials are compared.
type PasswordMode string

const (
	PasswordModePlain  PasswordMode = "plain"
	PasswordModeBcrypt PasswordMode = "bcrypt"
)

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	PasswordMode          PasswordMode
	BcryptCost            int
	// EnforceAdminRole makes admin login and admin routes reject non-admin
	// accounts. Off by default: any valid session passes.
	EnforceAdminRole bool
}

// SeedConfig controls the startup seeding of catalog and admin account.
type SeedConfig struct {
	Enabled       bool
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// CatalogConfig tunes the catalog read cache.
type CatalogConfig struct {
	CacheTTLSeconds int
}

// ConfirmationConfig points at the external confirmation text service.
type ConfirmationConfig struct {
	URL          string
	APIKey       string
	ResponsePath string
	TimeoutMS    int
}

// RateLimitConfig bounds requests to the credential endpoints per client IP.
type RateLimitConfig struct {
	AuthRPS   float64
	AuthBurst int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	authRPS, err := strconv.ParseFloat(getEnv("RATE_LIMIT_AUTH_RPS", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_AUTH_RPS: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "storefront-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "5000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       os.Getenv("LOG_FILE"),
			MaxSizeMB:  getEnvAsInt("LOG_FILE_MAX_SIZE_MB", 100),
			MaxBackups: getEnvAsInt("LOG_FILE_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvAsInt("LOG_FILE_MAX_AGE_DAYS", 28),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			PasswordMode:          PasswordMode(strings.ToLower(getEnv("AUTH_PASSWORD_MODE", string(PasswordModePlain)))),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			EnforceAdminRole:      getEnvAsBool("AUTH_ENFORCE_ADMIN_ROLE", false),
		},
		Seed: SeedConfig{
			Enabled:       getEnvAsBool("SEED_ENABLED", true),
			AdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@ecommercestore.com"),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admim"),
			AdminName:     getEnv("SEED_ADMIN_NAME", "Admin"),
		},
		Catalog: CatalogConfig{
			CacheTTLSeconds: getEnvAsInt("CATALOG_CACHE_TTL_SECONDS", 60),
		},
		Confirmation: ConfirmationConfig{
			URL:          os.Getenv("CONFIRMATION_URL"),
			APIKey:       os.Getenv("CONFIRMATION_API_KEY"),
			ResponsePath: getEnv("CONFIRMATION_RESPONSE_PATH", "choices.0.message.content"),
			TimeoutMS:    getEnvAsInt("CONFIRMATION_TIMEOUT_MS", 3000),
		},
		RateLimit: RateLimitConfig{
			AuthRPS:   authRPS,
			AuthBurst: getEnvAsInt("RATE_LIMIT_AUTH_BURST", 10),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Postgres.DSN) == "" {
		return errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("AUTH_JWT_SECRET must not be empty")
	}
	switch c.Auth.PasswordMode {
	case PasswordModePlain, PasswordModeBcrypt:
	default:
		return fmt.Errorf("invalid AUTH_PASSWORD_MODE %q", c.Auth.PasswordMode)
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// CacheTTL returns the catalog cache lifetime; zero disables caching.
func (c CatalogConfig) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Timeout bounds a single confirmation request.
func (c ConfirmationConfig) Timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
