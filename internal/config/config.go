// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/settings"
)

// Config holds all configuration for the API service
type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string
	CORSOrigins []string

	// AI backend; empty leaves the URL unconfigured until set through the API
	BackendURL     string
	BackendTimeout time.Duration

	// Storage, all optional
	DatabaseURL string
	RedisURL    string
	NATSURL     string
	SessionTTL  time.Duration

	// Telemetry
	OTLPEndpoint string

	// Diagrams and search
	PlantUMLServerURL string
	SearchCacheSize   int
	GeminiModel       string

	// Export
	BundleSigningKey string

	// AdminJWTSecret verifies bearer tokens on the settings routes. Empty
	// disables the settings API.
	AdminJWTSecret string

	// Rate limiting per client IP
	RateLimitRPS   float64
	RateLimitBurst int

	// APIKeys seeds the settings store
	APIKeys map[string]string
}

// Load reads .env when present, then environment variables
func Load() *Config {
	_ = godotenv.Load()

	keys := make(map[string]string)
	for _, name := range settings.KeyNames {
		if v := os.Getenv(name); v != "" {
			keys[name] = v
		}
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("GO_ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		BackendURL:        getEnv("BACKEND_URL", ""),
		BackendTimeout:    getEnvAsDuration("BACKEND_TIMEOUT", 60*time.Second),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		NATSURL:           getEnv("NATS_URL", ""),
		SessionTTL:        getEnvAsDuration("SESSION_TTL", 30*time.Minute),
		OTLPEndpoint:      getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		PlantUMLServerURL: getEnv("PLANTUML_SERVER_URL", ""),
		SearchCacheSize:   getEnvAsInt("SEARCH_CACHE_SIZE", 256),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		BundleSigningKey:  getEnv("BUNDLE_SIGNING_KEY", ""),
		AdminJWTSecret:    getEnv("ADMIN_JWT_SECRET", ""),
		RateLimitRPS:      getEnvAsFloat("RATE_LIMIT_RPS", 2),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 20),
		APIKeys:           keys,
	}
}

// IsProduction reports whether GO_ENV is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	var errs []error

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %q", c.Port))
	}
	if c.BackendURL != "" {
		if _, err := settings.ValidateBackendURL(c.BackendURL); err != nil {
			errs = append(errs, fmt.Errorf("BACKEND_URL: %w", err))
		}
	}
	if c.BackendTimeout <= 0 {
		errs = append(errs, errors.New("BACKEND_TIMEOUT must be positive"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.PlantUMLServerURL != "" {
		if u, err := url.Parse(c.PlantUMLServerURL); err != nil || u.Host == "" {
			errs = append(errs, fmt.Errorf("PLANTUML_SERVER_URL is not a valid URL: %q", c.PlantUMLServerURL))
		}
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	if c.IsProduction() && c.BundleSigningKey == "" {
		errs = append(errs, errors.New("BUNDLE_SIGNING_KEY is required in production"))
	}
	if c.AdminJWTSecret != "" && len(c.AdminJWTSecret) < 32 {
		errs = append(errs, errors.New("ADMIN_JWT_SECRET must be at least 32 characters"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}
