package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Audit     AuditConfig
	JWT       JWTConfig
	Auth      AuthConfig
	Log       LogConfig
	Tracing   TracingConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Sweep     SweepConfig
	Seed      SeedConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Version     string
	// Location decides which calendar day "today" is for overdue sweeps.
	Location *time.Location
}

func (a AppConfig) IsDevelopment() bool { return a.Environment == "development" }

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AuditConfig controls where audit entries go. With Database disabled they
// are only logged.
type AuditConfig struct {
	Database bool
	DB       DatabaseConfig
}

type DatabaseConfig struct {
	Host               string
	Port               int
	Name               string
	User               string
	Password           string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	ConnMaxIdleTime    time.Duration
	SlowQueryThreshold time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type JWTConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Issuer          string
}

type AuthConfig struct {
	BcryptCost int
}

type LogConfig struct {
	Level      string
	Format     string
	OutputPath string
}

type TracingConfig struct {
	Enabled      bool
	ServiceName  string
	OTLPEndpoint string
	Insecure     bool
	SampleRate   float64
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         time.Duration
}

type RateLimitConfig struct {
	// Global rate limit per IP
	RequestsPerSecond float64
	BurstSize         int
	// Login is limited separately and much more strictly
	AuthRequestsPerMinute int
}

// SweepConfig drives the background job that flips past-due invoices to
// overdue.
type SweepConfig struct {
	Enabled  bool
	Interval time.Duration
}

type SeedConfig struct {
	DemoData  bool
	DemoUsers bool
}

// devJWTSecret is only ever used when APP_ENV=development and JWT_SECRET is unset.
const devJWTSecret = "psiklinik-development-secret-do-not-use"

func Load() (*Config, error) {
	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "Europe/Istanbul"))
	if err != nil {
		return nil, fmt.Errorf("loading APP_TIMEZONE: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "psiklinik-api"),
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "0.0.0"),
			Location:    loc,
		},
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Audit: AuditConfig{
			Database: getEnvBool("AUDIT_DB_ENABLED", false),
			DB: DatabaseConfig{
				Host:               getEnv("DB_HOST", "localhost"),
				Port:               getEnvInt("DB_PORT", 5432),
				Name:               getEnv("DB_NAME", "psiklinik"),
				User:               getEnv("DB_USER", "psiklinik"),
				Password:           getEnv("DB_PASSWORD", ""),
				SSLMode:            getEnv("DB_SSLMODE", "require"),
				MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
				MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
				ConnMaxLifetime:    getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
				ConnMaxIdleTime:    getEnvDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
				SlowQueryThreshold: getEnvDuration("DB_SLOW_QUERY_THRESHOLD", 200*time.Millisecond),
			},
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", ""),
			AccessTokenTTL:  getEnvDuration("JWT_ACCESS_TTL", 15*time.Minute),
			RefreshTokenTTL: getEnvDuration("JWT_REFRESH_TTL", 7*24*time.Hour),
			Issuer:          getEnv("JWT_ISSUER", "psiklinik-api"),
		},
		Auth: AuthConfig{
			BcryptCost: getEnvInt("AUTH_BCRYPT_COST", bcrypt.DefaultCost),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
		Tracing: TracingConfig{
			Enabled:      getEnvBool("TRACING_ENABLED", false),
			ServiceName:  getEnv("TRACING_SERVICE_NAME", "psiklinik-api"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			Insecure:     getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			SampleRate:   getEnvFloat("TRACING_SAMPLE_RATE", 0.1),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			AllowedMethods: getEnvSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			AllowedHeaders: getEnvSlice("CORS_ALLOWED_HEADERS", []string{"Authorization", "Content-Type", "X-Request-ID"}),
			MaxAge:         getEnvDuration("CORS_MAX_AGE", 12*time.Hour),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond:     getEnvFloat("RATE_LIMIT_RPS", 50),
			BurstSize:             getEnvInt("RATE_LIMIT_BURST", 100),
			AuthRequestsPerMinute: getEnvInt("RATE_LIMIT_AUTH_RPM", 10),
		},
		Sweep: SweepConfig{
			Enabled:  getEnvBool("SWEEP_ENABLED", true),
			Interval: getEnvDuration("SWEEP_INTERVAL", time.Hour),
		},
		Seed: SeedConfig{
			DemoData:  getEnvBool("SEED_DEMO_DATA", true),
			DemoUsers: getEnvBool("SEED_DEMO_USERS", true),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate enforces production security requirements.
func validate(cfg *Config) error {
	var errs []string

	switch {
	case cfg.JWT.Secret == "" && cfg.App.IsDevelopment():
		cfg.JWT.Secret = devJWTSecret
	case cfg.JWT.Secret == "":
		errs = append(errs, "JWT_SECRET is required")
	case len(cfg.JWT.Secret) < 32 && cfg.App.Environment == "production":
		errs = append(errs, "JWT_SECRET must be at least 32 characters in production")
	}

	if cfg.App.Environment == "production" && cfg.Seed.DemoUsers {
		errs = append(errs, "SEED_DEMO_USERS must be false in production")
	}

	if cfg.Auth.BcryptCost < bcrypt.MinCost || cfg.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Sprintf("AUTH_BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}

	if cfg.Sweep.Enabled && cfg.Sweep.Interval <= 0 {
		errs = append(errs, "SWEEP_INTERVAL must be positive")
	}

	if cfg.Audit.Database {
		if cfg.Audit.DB.Password == "" && !cfg.App.IsDevelopment() {
			errs = append(errs, "DB_PASSWORD is required in non-development environments")
		}
		if cfg.Audit.DB.SSLMode == "disable" && cfg.App.Environment == "production" {
			errs = append(errs, "DB_SSLMODE=disable is not allowed in production")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if v, ok := os.LookupEnv(key); ok {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if t := strings.TrimSpace(p); t != "" {
				result = append(result, t)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
