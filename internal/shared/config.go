package shared

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// DBConfig holds the postgres connection settings, read from the
// environment with local-development defaults.
type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

func DBConfigFromEnv() DBConfig {
	return DBConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		Name:     getEnv("DB_NAME", "tododb"),
		User:     getEnv("DB_USER", "admin"),
		Password: getEnv("DB_PASSWORD", "admin"),
	}
}

func (c DBConfig) URL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
	)
}

// AppConfig general application configurations
type AppConfig struct {
	ServerPort   string
	MetricsPort  string
	OTLPEndpoint string
	Environment  string

	RateLimitEnabled bool
	CacheEnabled     bool
	CacheConfigs     map[string]ResponseCacheConfig
}

// GetDefaultConfig returns default configuration
func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		ServerPort:       getEnv("PORT", "8080"),
		MetricsPort:      getEnv("METRICS_PORT", "9090"),
		OTLPEndpoint:     getEnv("OTLP_ENDPOINT", "localhost:4317"),
		Environment:      getEnv("APP_ENV", "development"),
		RateLimitEnabled: true,
		CacheEnabled:     true,
		CacheConfigs: map[string]ResponseCacheConfig{
			"/api/todos": {
				TTL:     3 * time.Second,
				Enabled: true,
			},
			"/api/users": {
				TTL:     30 * time.Second,
				Enabled: true,
			},
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
