package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// TransitionPolicy selects how strictly the order workflow enforces the status graph.
type TransitionPolicy string

const (
	// PolicyLinear allows forward moves along the fulfillment path and cancellation.
	PolicyLinear TransitionPolicy = "linear"
	// PolicyPermissive lets an administrator set any status on a non-terminal order.
	PolicyPermissive TransitionPolicy = "permissive"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Workflow     WorkflowConfig
	Notification NotificationConfig
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
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	MinPasswordLength     int
}

// WorkflowConfig tunes the order workflow.
type WorkflowConfig struct {
	Policy              TransitionPolicy
	NotifyTimeoutSecond int
}

// NotificationConfig configures the customer notification channel.
type NotificationConfig struct {
	WebhookURL     string
	MaxAttempts    int
	BaseBackoffMs  int
	RequestTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	policy := TransitionPolicy(strings.ToLower(getEnv("ORDER_TRANSITION_POLICY", string(PolicyLinear))))
	if policy != PolicyLinear && policy != PolicyPermissive {
		return nil, fmt.Errorf("invalid ORDER_TRANSITION_POLICY: %q", policy)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "agri-storefront"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			MinPasswordLength:     getEnvAsInt("AUTH_MIN_PASSWORD_LENGTH", 6),
		},
		Workflow: WorkflowConfig{
			Policy:              policy,
			NotifyTimeoutSecond: getEnvAsInt("ORDER_NOTIFY_TIMEOUT_SECONDS", 10),
		},
		Notification: NotificationConfig{
			WebhookURL:     getEnv("NOTIFY_WEBHOOK_URL", ""),
			MaxAttempts:    getEnvAsInt("NOTIFY_MAX_ATTEMPTS", 3),
			BaseBackoffMs:  getEnvAsInt("NOTIFY_BASE_BACKOFF_MS", 200),
			RequestTimeout: time.Duration(getEnvAsInt("NOTIFY_REQUEST_TIMEOUT_SECONDS", 5)) * time.Second,
		},
	}

	return cfg, nil
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

// NotifyTimeout bounds a single post-commit notification.
func (w WorkflowConfig) NotifyTimeout() time.Duration {
	if w.NotifyTimeoutSecond <= 0 {
		return 10 * time.Second
	}
	return time.Duration(w.NotifyTimeoutSecond) * time.Second
}

// AccessTokenTTL returns the bearer token and session lifetime.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	if a.AccessTokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
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
