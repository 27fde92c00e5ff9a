package config

import (
	"os"
	"strconv"
	"time"

	"tixswap/internal/cache"
	"tixswap/internal/database"
	"tixswap/internal/messaging"
)

// Config holds the application configuration
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	// Identity tokens
	JWTSecret string
	TokenTTL  time.Duration

	// Auth endpoint rate limiting (requests per window per client IP)
	AuthRateLimit  int64
	AuthRateWindow time.Duration

	Database database.Config
	NATS     messaging.Config
	Valkey   cache.Config
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:  time.Duration(getEnvInt("TOKEN_TTL_MIN", 60)) * time.Minute,

		AuthRateLimit:  int64(getEnvInt("AUTH_RATE_LIMIT", 10)),
		AuthRateWindow: time.Duration(getEnvInt("AUTH_RATE_WINDOW_SEC", 60)) * time.Second,

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "tixswap"),
			Password:           getEnv("DB_PASSWORD", "tixswap123"),
			DBName:             getEnv("DB_NAME", "tixswap"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "tixswap"),
			ClientID:  getEnv("NATS_CLIENT_ID", "tixswap-api"),
			Enabled:   getEnv("NATS_ENABLED", "false") == "true",
		},

		Valkey: cache.Config{
			Addr:     getEnv("VALKEY_ADDR", "localhost:6379"),
			Password: getEnv("VALKEY_PASSWORD", ""),
			Enabled:  getEnv("VALKEY_ENABLED", "false") == "true",
		},
	}
}

// getEnv returns an environment variable or the default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or the default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
