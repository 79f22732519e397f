package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/wolfman30/onboardai/pkg/logging"
)

// Environment names a deployment profile.
type Environment string

const (
	EnvLocal       Environment = "local"
	EnvDevelopment Environment = "development"
	EnvQA          Environment = "qa"
	EnvProduction  Environment = "production"
)

// Valid reports whether e is one of the known profiles.
func (e Environment) Valid() bool {
	switch e {
	case EnvLocal, EnvDevelopment, EnvQA, EnvProduction:
		return true
	default:
		return false
	}
}

// Store backends understood by cmd/api.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config holds application configuration
type Config struct {
	Env            Environment
	APIBaseURL     string
	UseMock        bool
	AppName        string
	Debug          bool
	APITimeout     time.Duration
	MockLatency    bool
	Port           string
	LogLevel       string
	StoreBackend   string
	DatabaseURL    string
	RedisAddr      string
	RedisPassword  string
	RedisTLS       bool
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	AdminJWTSecret string

	// Notification email
	EmailProvider    string
	SendGridAPIKey   string
	EmailFrom        string
	SalesNotifyEmail string

	// AWS (SES + SQS)
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string
	LeadsQueueURL       string
}

// LoadDotEnv seeds the process environment from .env files. Missing files are
// ignored; variables already set win over file values.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables
func Load() *Config {
	env := Environment(strings.ToLower(getEnv("APP_ENV", string(EnvDevelopment))))
	if !env.Valid() {
		env = EnvDevelopment
	}
	debug := getEnvAsBool("DEBUG_MODE", false)
	logLevel := getEnv("LOG_LEVEL", "info")
	if debug {
		logLevel = "debug"
	}

	return &Config{
		Env:            env,
		APIBaseURL:     strings.TrimRight(getEnv("API_URL", "http://localhost:8080/api"), "/"),
		UseMock:        getEnvAsBool("USE_MOCK", false),
		AppName:        getEnv("APP_NAME", "OnboardAI"),
		Debug:          debug,
		APITimeout:     getEnvAsDuration("API_TIMEOUT", 30*time.Second),
		MockLatency:    getEnvAsBool("MOCK_LATENCY", true),
		Port:           getEnv("PORT", "8080"),
		LogLevel:       logLevel,
		StoreBackend:   strings.ToLower(strings.TrimSpace(getEnv("STORE_BACKEND", StoreMemory))),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisTLS:       getEnvAsBool("REDIS_TLS", false),
		CORSOrigins:    getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 10),
		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),

		EmailProvider:    strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "stub"))),
		SendGridAPIKey:   getEnv("SENDGRID_API_KEY", ""),
		EmailFrom:        getEnv("EMAIL_FROM", ""),
		SalesNotifyEmail: getEnv("SALES_NOTIFY_EMAIL", ""),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),
		LeadsQueueURL:       getEnv("LEADS_QUEUE_URL", ""),
	}
}

// IsProduction reports whether the production profile is active.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// LogSummary writes the resolved configuration at debug level when debug mode
// is on. Secrets are never logged.
func (c *Config) LogSummary(logger *logging.Logger) {
	if !c.Debug || logger == nil {
		return
	}
	logger.Debug("api configuration",
		"environment", string(c.Env),
		"base_url", c.APIBaseURL,
		"use_mock", c.UseMock,
		"app_name", c.AppName,
		"timeout", c.APITimeout.String(),
		"store_backend", c.StoreBackend,
		"email_provider", c.EmailProvider,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	// Bare integers are milliseconds.
	if ms, err := strconv.Atoi(valueStr); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
