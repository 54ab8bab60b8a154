package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// StorageBackend selects the snapshot persistence backend.
type StorageBackend string

const (
	StorageFile     StorageBackend = "file"
	StorageRedis    StorageBackend = "redis"
	StoragePostgres StorageBackend = "postgres"
)

// Config holds all application configuration.
type Config struct {
	// Application
	App AppConfig

	// Snapshot storage
	Storage StorageConfig

	// PostgreSQL (when Storage.Backend is "postgres")
	Database DatabaseConfig

	// Redis (when Storage.Backend is "redis")
	Redis RedisConfig

	// Gemini insight API
	Gemini GeminiConfig

	// Session passphrases
	Session SessionConfig

	// Observability
	Observability ObservabilityConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string
	Environment Environment
	Debug       bool
	Version     string

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration
}

// StorageConfig selects and configures the snapshot backend.
type StorageConfig struct {
	// Backend is one of "file", "redis", "postgres".
	Backend StorageBackend

	// FilePath is the snapshot file location for the file backend.
	FilePath string
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string

	// Connection pool settings
	MaxConns       int
	MinConns       int
	ConnectTimeout time.Duration
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int

	// Timeouts
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// GeminiConfig holds Gemini API settings.
type GeminiConfig struct {
	// BaseURL of the Generative Language API.
	BaseURL string

	// APIKey authorizes requests. Empty disables live insight calls.
	APIKey string

	// Model is the generation model name.
	Model string

	RequestTimeout time.Duration
}

// SessionConfig holds the access passphrases. Values starting with
// "$2" are treated as bcrypt hashes, anything else as plain text.
type SessionConfig struct {
	// LoginPassphrase gates the application.
	LoginPassphrase string

	// UnlockPassphrase gates the wrong-weekday override.
	UnlockPassphrase string
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App:           loadAppConfig(),
		Storage:       loadStorageConfig(),
		Database:      loadDatabaseConfig(),
		Redis:         loadRedisConfig(),
		Gemini:        loadGeminiConfig(),
		Session:       loadSessionConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func loadAppConfig() AppConfig {
	env := Environment(getEnv("APP_ENV", "development"))

	return AppConfig{
		Name:            getEnv("APP_NAME", "siraj-hub"),
		Environment:     env,
		Debug:           env == EnvDevelopment || getEnvBool("APP_DEBUG", false),
		Version:         getEnv("APP_VERSION", "0.1.0"),
		ShutdownTimeout: getEnvDuration("APP_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Backend:  StorageBackend(getEnv("STORAGE_BACKEND", "file")),
		FilePath: getEnv("STORAGE_FILE_PATH", "data/snapshot.json"),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:           getEnv("DB_HOST", "localhost"),
		Port:           getEnvInt("DB_PORT", 5432),
		Name:           getEnv("DB_NAME", "siraj"),
		User:           getEnv("DB_USER", "siraj"),
		Password:       getEnv("DB_PASSWORD", ""),
		SSLMode:        getEnv("DB_SSLMODE", "disable"),
		MaxConns:       getEnvInt("DB_MAX_CONNS", 4),
		MinConns:       getEnvInt("DB_MIN_CONNS", 1),
		ConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Host:         getEnv("REDIS_HOST", "localhost"),
		Port:         getEnvInt("REDIS_PORT", 6379),
		Password:     getEnv("REDIS_PASSWORD", ""),
		DB:           getEnvInt("REDIS_DB", 0),
		DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		ReadTimeout:  getEnvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		WriteTimeout: getEnvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
	}
}

func loadGeminiConfig() GeminiConfig {
	return GeminiConfig{
		BaseURL:        getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		APIKey:         getEnv("GEMINI_API_KEY", ""),
		Model:          getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		RequestTimeout: getEnvDuration("GEMINI_REQUEST_TIMEOUT", 30*time.Second),
	}
}

func loadSessionConfig() SessionConfig {
	return SessionConfig{
		LoginPassphrase:  getEnv("SESSION_LOGIN_PASSPHRASE", "09528863"),
		UnlockPassphrase: getEnv("SESSION_UNLOCK_PASSPHRASE", "0785150356"),
	}
}

func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []string

	switch c.Storage.Backend {
	case StorageFile, StorageRedis, StoragePostgres:
	default:
		errs = append(errs, fmt.Sprintf("STORAGE_BACKEND %q must be file, redis or postgres", c.Storage.Backend))
	}

	if c.Storage.Backend == StorageFile && c.Storage.FilePath == "" {
		errs = append(errs, "STORAGE_FILE_PATH is required for the file backend")
	}

	if c.Session.LoginPassphrase == "" {
		errs = append(errs, "SESSION_LOGIN_PASSPHRASE must not be empty")
	}
	if c.Session.UnlockPassphrase == "" {
		errs = append(errs, "SESSION_UNLOCK_PASSPHRASE must not be empty")
	}

	if c.App.Environment == EnvProduction && c.Gemini.APIKey == "" {
		errs = append(errs, "GEMINI_API_KEY is required in production")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}

// --- Helper functions for environment variable parsing ---

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
