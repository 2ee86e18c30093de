package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"flightadmin/database"
	"flightadmin/infrastructure/apiclient"
	"flightadmin/logging"
)

// AppConfig holds the dashboard's process configuration.
type AppConfig struct {
	HTTPAddr    string
	HTTPLogPath string
	AssetsDir   string
	Database    *database.Config
	Logging     *logging.Config
	API         *apiclient.Config
	Session     *SessionConfig
	Cache       *CacheConfig
}

// SessionConfig controls the staff session cookie.
type SessionConfig struct {
	CookieName   string
	TTL          time.Duration // used when neither the login response nor the token says when it expires
	SecureCookie bool
}

// CacheConfig controls the in-memory caches.
type CacheConfig struct {
	ScreenIdleTTL   time.Duration // idle time before a session's list screens are dropped
	CountryCacheTTL time.Duration
}

// LoadAppConfigFromEnv loads complete application configuration from environment variables.
func LoadAppConfigFromEnv() *AppConfig {
	return &AppConfig{
		HTTPAddr:    getEnvWithDefault("HTTP_ADDR", ":8080"),
		HTTPLogPath: getEnvWithDefault("HTTP_LOG_PATH", ""),
		AssetsDir:   getEnvWithDefault("ASSETS_DIR", ""),
		Database:    LoadDatabaseConfigFromEnv(),
		Logging:     LoadLoggingConfigFromEnv(),
		API:         LoadAPIConfigFromEnv(),
		Session:     LoadSessionConfigFromEnv(),
		Cache:       LoadCacheConfigFromEnv(),
	}
}

// Validate reports settings the server cannot start without.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.API == nil || c.API.BaseURL == "" {
		errs = append(errs, errors.New("API_BASE_URL is required"))
	}
	if c.API != nil && c.API.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required"))
	}
	if c.Session == nil || c.Session.CookieName == "" {
		errs = append(errs, errors.New("SESSION_COOKIE_NAME must not be empty"))
	}
	return errors.Join(errs...)
}

// LoadDatabaseConfigFromEnv loads database configuration from environment variables.
func LoadDatabaseConfigFromEnv() *database.Config {
	def := database.DefaultConfig()
	return &database.Config{
		Path:            getEnvWithDefault("DB_PATH", def.Path),
		MaxOpenConns:    getEnvIntWithDefault("DB_MAX_OPEN_CONNS", def.MaxOpenConns),
		MaxIdleConns:    getEnvIntWithDefault("DB_MAX_IDLE_CONNS", def.MaxIdleConns),
		ConnMaxLifetime: getEnvDurationWithDefault("DB_CONN_MAX_LIFETIME", def.ConnMaxLifetime),
		ConnMaxIdleTime: getEnvDurationWithDefault("DB_CONN_MAX_IDLE_TIME", def.ConnMaxIdleTime),
		BusyTimeoutMs:   getEnvIntWithDefault("DB_BUSY_TIMEOUT_MS", def.BusyTimeoutMs),
		EnableWAL:       getEnvBoolWithDefault("DB_ENABLE_WAL", def.EnableWAL),
	}
}

// LoadLoggingConfigFromEnv loads logging configuration from environment variables.
func LoadLoggingConfigFromEnv() *logging.Config {
	return &logging.Config{
		Level:  getEnvWithDefault("LOG_LEVEL", "info"),
		Format: getEnvWithDefault("LOG_FORMAT", "json"),
		Output: getEnvWithDefault("LOG_OUTPUT", "stdout"),
	}
}

// LoadAPIConfigFromEnv loads the remote API settings. The keys have no
// defaults and must come from the environment.
func LoadAPIConfigFromEnv() *apiclient.Config {
	return &apiclient.Config{
		BaseURL:      getEnvWithDefault("API_BASE_URL", ""),
		APIKey:       os.Getenv("API_KEY"),
		AdminAPIKey:  os.Getenv("ADMIN_API_KEY"),
		APIKeyHeader: getEnvWithDefault("API_KEY_HEADER", apiclient.DefaultAPIKeyHeader),
		Timeout:      getEnvDurationWithDefault("API_TIMEOUT", apiclient.DefaultTimeout),
	}
}

// LoadSessionConfigFromEnv loads the session cookie settings.
func LoadSessionConfigFromEnv() *SessionConfig {
	return &SessionConfig{
		CookieName:   getEnvWithDefault("SESSION_COOKIE_NAME", "flightadmin_session"),
		TTL:          getEnvDurationWithDefault("SESSION_TTL", 24*time.Hour),
		SecureCookie: getEnvBoolWithDefault("SESSION_SECURE_COOKIE", false),
	}
}

// LoadCacheConfigFromEnv loads cache lifetimes.
func LoadCacheConfigFromEnv() *CacheConfig {
	return &CacheConfig{
		ScreenIdleTTL:   getEnvDurationWithDefault("SCREEN_IDLE_TTL", 30*time.Minute),
		CountryCacheTTL: getEnvDurationWithDefault("COUNTRY_CACHE_TTL", 6*time.Hour),
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBool(v string, def bool) bool {
	v = strings.TrimSpace(strings.ToLower(v))
	switch v {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return parseBool(value, defaultValue)
	}
	return defaultValue
}

func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
