package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Idecor    IdecorConfig
	Advisor   AdvisorConfig
	Telemetry TelemetryConfig
	Mail      MailConfig
	Stats     StatsConfig
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
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines the admin access gate parameters.
//
// Passcode is the demo shared secret. PasscodeHash, when set, takes
// precedence and is compared with bcrypt. A successful challenge is exchanged
// for a signed session token so handlers never touch the raw secret.
type AuthConfig struct {
	Passcode          string
	PasscodeHash      string
	JWTSecret         string
	SessionTTLMinutes int
}

// IdecorConfig points at the provincial cadastral WFS endpoint.
type IdecorConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// AdvisorConfig configures the generative text collaborator.
type AdvisorConfig struct {
	BaseURL        string
	APIKey         string
	Model          string
	TimeoutSeconds int
}

// TelemetryConfig configures the fire-and-forget analytics sink.
type TelemetryConfig struct {
	Endpoint      string
	MeasurementID string
	APISecret     string
}

// MailConfig holds SMTP settings for valuation reports.
type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// StatsConfig tunes the dashboard counters.
type StatsConfig struct {
	NewLeadsPollSeconds int
	FallbackVisitsToday int64
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "inmo-crm-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8000"),
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
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			Passcode:          getEnv("AUTH_ADMIN_PASSCODE", "1234"),
			PasscodeHash:      os.Getenv("AUTH_ADMIN_PASSCODE_HASH"),
			JWTSecret:         getEnv("AUTH_JWT_SECRET", "dev-secret"),
			SessionTTLMinutes: getEnvAsInt("AUTH_SESSION_TTL_MINUTES", 480),
		},
		Idecor: IdecorConfig{
			BaseURL:        getEnv("IDECOR_WFS_URL", "https://mapas.cba.gov.ar/geoserver/wfs"),
			TimeoutSeconds: getEnvAsInt("IDECOR_TIMEOUT_SECONDS", 10),
		},
		Advisor: AdvisorConfig{
			BaseURL:        getEnv("ADVISOR_BASE_URL", ""),
			APIKey:         os.Getenv("ADVISOR_API_KEY"),
			Model:          getEnv("ADVISOR_MODEL", "gemini-3-flash-preview"),
			TimeoutSeconds: getEnvAsInt("ADVISOR_TIMEOUT_SECONDS", 20),
		},
		Telemetry: TelemetryConfig{
			Endpoint:      getEnv("TELEMETRY_ENDPOINT", "https://www.google-analytics.com/mp/collect"),
			MeasurementID: os.Getenv("TELEMETRY_MEASUREMENT_ID"),
			APISecret:     os.Getenv("TELEMETRY_API_SECRET"),
		},
		Mail: MailConfig{
			Host:     os.Getenv("MAIL_HOST"),
			Port:     getEnvAsInt("MAIL_PORT", 587),
			User:     os.Getenv("MAIL_USER"),
			Password: os.Getenv("MAIL_PASS"),
			From:     getEnv("MAIL_FROM", "no-responder@connectinmobiliaria.com.ar"),
		},
		Stats: StatsConfig{
			NewLeadsPollSeconds: getEnvAsInt("STATS_NEW_LEADS_POLL_SECONDS", 30),
			FallbackVisitsToday: int64(getEnvAsInt("STATS_FALLBACK_VISITS_TODAY", 1420)),
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

// SessionTTL returns the admin session lifetime.
func (a AuthConfig) SessionTTL() time.Duration {
	if a.SessionTTLMinutes <= 0 {
		return 8 * time.Hour
	}
	return time.Duration(a.SessionTTLMinutes) * time.Minute
}

// PollInterval returns the new-leads badge refresh period.
func (s StatsConfig) PollInterval() time.Duration {
	if s.NewLeadsPollSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.NewLeadsPollSeconds) * time.Second
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
