package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database    DatabaseConfig
	Server      ServerConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Payment     PaymentConfig
	FrontendURL string
	Environment string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MaxIdle  int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in hours
}

// PaymentConfig holds reconciliation flow tuning
type PaymentConfig struct {
	// PendingPaymentTTL is how long a transaction may sit in pending_payment
	// before the maintenance sweep marks it errored.
	PendingPaymentTTL time.Duration
}

// LoadConfig creates a new Config instance with values from environment variables.
// It tries a .env file first for local development.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Database: DatabaseConfig{
			URL:      databaseURL(),
			MaxConns: getEnvInt("DATABASE_MAX_CONNS", 20),
			MaxIdle:  getEnvInt("DATABASE_MAX_IDLE", 5),
		},
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 10),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 10),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "amora_development_jwt_secret_key"),
			Expiration: getEnvInt("JWT_EXPIRATION", 24),
		},
		Payment: PaymentConfig{
			PendingPaymentTTL: time.Duration(getEnvInt("PENDING_PAYMENT_TTL_HOURS", 48)) * time.Hour,
		},
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}
}

// databaseURL prefers DATABASE_URL but assembles a DSN from the discrete
// DB_USER/DB_HOST/DB_NAME/DB_PASSWORD/DB_PORT variables when it is unset.
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	name := getEnv("DB_NAME", "amora")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}
