package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	EnvProduction = "production"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is read from an optional TOML file (AUTH_CONFIG_FILE) and then from
// the environment. Environment variables win over the file; anything left
// unset keeps its default.
type Config struct {
	Env       string `toml:"env"`        // Environment (development, test, production) (default: development; ENV, then NODE_ENV)
	Port      int    `toml:"port"`       // HTTP server port (default: 3001)
	APIPrefix string `toml:"api_prefix"` // Path prefix for every API route (default: /api)

	DatabaseDriver string `toml:"database_driver"` // sqlite or postgres (default: sqlite)
	DatabasePath   string `toml:"database_path"`   // SQLite file (default: auth-app.sqlite)
	DatabaseURL    string `toml:"database_url"`    // Postgres DSN, required for the postgres driver

	JWTSecret  string `toml:"jwt_secret"`  // Required in production; ephemeral otherwise
	PepperFile string `toml:"pepper_file"` // Optional: path to password pepper file (default: none)
	TOTPIssuer string `toml:"totp_issuer"` // Issuer label shown in authenticator apps (default: AuthApp)

	AllowedOrigins []string `toml:"allowed_origins"` // CORS allow list (default: http://localhost:5173)

	RateLimitRegisterMax int           `toml:"rate_limit_register_max"`  // default: 5
	RateLimitLoginMax    int           `toml:"rate_limit_login_max"`     // default: 10
	RateLimitLogin2FAMax int           `toml:"rate_limit_login_2fa_max"` // default: 10
	RateLimitWindow      time.Duration `toml:"rate_limit_window"`        // default: 1m
	RateLimitBackend     string        `toml:"rate_limit_backend"`       // memory or redis (default: memory)

	RedisAddr     string `toml:"redis_addr"` // default: localhost:6379
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	LogLevel            string        `toml:"log_level"`             // debug, info, warn, error (default: info)
	LogFormat           string        `toml:"log_format"`            // json, text (default: json)
	ShutdownGracePeriod time.Duration `toml:"shutdown_grace_period"` // Graceful shutdown timeout (default: 10s)
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Env:                  "development",
		Port:                 3001,
		APIPrefix:            "/api",
		DatabaseDriver:       DriverSQLite,
		DatabasePath:         "auth-app.sqlite",
		TOTPIssuer:           "AuthApp",
		AllowedOrigins:       []string{"http://localhost:5173"},
		RateLimitRegisterMax: 5,
		RateLimitLoginMax:    10,
		RateLimitLogin2FAMax: 10,
		RateLimitWindow:      time.Minute,
		RateLimitBackend:     BackendMemory,
		RedisAddr:            "localhost:6379",
		LogLevel:             "info",
		LogFormat:            "json",
		ShutdownGracePeriod:  10 * time.Second,
	}
}

func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("AUTH_CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg.Env = getEnvOrDefault("ENV", getEnvOrDefault("NODE_ENV", cfg.Env))
	cfg.Port = getEnvIntOrDefault("PORT", cfg.Port)
	cfg.APIPrefix = getEnvOrDefault("API_PREFIX", cfg.APIPrefix)

	cfg.DatabaseDriver = getEnvOrDefault("DATABASE_DRIVER", cfg.DatabaseDriver)
	cfg.DatabasePath = getEnvOrDefault("DATABASE_PATH", cfg.DatabasePath)
	cfg.DatabaseURL = getEnvOrDefault("DATABASE_URL", cfg.DatabaseURL)

	cfg.JWTSecret = getEnvOrDefault("AUTH_JWT_SECRET", getEnvOrDefault("JWT_SECRET", cfg.JWTSecret))
	cfg.PepperFile = getEnvOrDefault("AUTH_PEPPER_FILE", cfg.PepperFile)
	cfg.TOTPIssuer = getEnvOrDefault("TOTP_ISSUER", cfg.TOTPIssuer)

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	}

	cfg.RateLimitRegisterMax = getEnvIntOrDefault("RATE_LIMIT_REGISTER_MAX", cfg.RateLimitRegisterMax)
	cfg.RateLimitLoginMax = getEnvIntOrDefault("RATE_LIMIT_LOGIN_MAX", cfg.RateLimitLoginMax)
	cfg.RateLimitLogin2FAMax = getEnvIntOrDefault("RATE_LIMIT_LOGIN_2FA_MAX", cfg.RateLimitLogin2FAMax)
	if ms := getEnvIntOrDefault("RATE_LIMIT_WINDOW_MS", 0); ms > 0 {
		cfg.RateLimitWindow = time.Duration(ms) * time.Millisecond
	}
	cfg.RateLimitBackend = getEnvOrDefault("RATE_LIMIT_BACKEND", cfg.RateLimitBackend)

	cfg.RedisAddr = getEnvOrDefault("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnvOrDefault("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = getEnvIntOrDefault("REDIS_DB", cfg.RedisDB)

	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.ShutdownGracePeriod = getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", cfg.ShutdownGracePeriod)

	return cfg, nil
}

// IsProduction reports whether the service runs with production safeguards.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Validate rejects configurations the application cannot start with.
func (c Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.APIPrefix != "" && (!strings.HasPrefix(c.APIPrefix, "/") || strings.HasSuffix(c.APIPrefix, "/")) {
		errs = append(errs, fmt.Errorf("api prefix %q must start and not end with /", c.APIPrefix))
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabasePath == "" {
			errs = append(errs, errors.New("database path is required for sqlite"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.DatabaseDriver))
	}

	switch c.RateLimitBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis rate limit backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown rate limit backend %q", c.RateLimitBackend))
	}

	if c.RateLimitRegisterMax <= 0 || c.RateLimitLoginMax <= 0 || c.RateLimitLogin2FAMax <= 0 {
		errs = append(errs, errors.New("rate limit maximums must be positive"))
	}
	if c.RateLimitWindow <= 0 {
		errs = append(errs, errors.New("rate limit window must be positive"))
	}

	if c.IsProduction() && c.JWTSecret == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET is required in production"))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
