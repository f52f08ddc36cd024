package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Server    ServerConfig    `env:",prefix=SERVER_"`
	Postgres  PostgresConfig  `env:",prefix=POSTGRES_"`
	Redis     RedisConfig     `env:",prefix=REDIS_"`
	Session   SessionConfig   `env:",prefix=SESSION_"`
	Security  SecurityConfig  `env:",prefix="`
	RateLimit RateLimitConfig `env:",prefix=RATE_LIMIT_"`
	SMTP      SMTPConfig      `env:",prefix=SMTP_"`
	App       AppConfig       `env:",prefix=APP_"`
	CORS      CORSConfig      `env:",prefix=CORS_"`
	Env       string          `env:"ENV,default=development"`
}

type ServerConfig struct {
	Port         string   `env:"PORT,default=8080"`
	Host         string   `env:"HOST,default=0.0.0.0"`
	ReadTimeout  Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout Duration `env:"WRITE_TIMEOUT,default=15s"`
}

type PostgresConfig struct {
	Host          string `env:"HOST,default=localhost"`
	Port          string `env:"PORT,default=5432"`
	User          string `env:"USER,default=hefica"`
	Password      string `env:"PASSWORD,default=hefica_password"`
	DBName        string `env:"DB,default=hefica_db"`
	SSLMode       string `env:"SSLMODE,default=disable"`
	MigrationsURL string `env:"MIGRATIONS_URL,default=file://migrations"`
}

type RedisConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=6379"`
	Password string `env:"PASSWORD,default="`
	DB       int    `env:"DB,default=0"`
}

type SessionConfig struct {
	Secret string   `env:"SECRET,required"`
	Expiry Duration `env:"EXPIRY,default=30d"`
}

type SecurityConfig struct {
	BCryptCost       int      `env:"BCRYPT_COST,default=12"`
	MaxLoginAttempts int      `env:"MAX_LOGIN_ATTEMPTS,default=5"`
	LockoutDuration  Duration `env:"LOCKOUT_DURATION,default=15m"`
}

// RateLimitConfig holds per-flow throttling thresholds. The limiter is
// in-process: thresholds apply per instance, not across replicas.
type RateLimitConfig struct {
	SignupMax     int      `env:"SIGNUP_MAX,default=5"`
	SignupWindow  Duration `env:"SIGNUP_WINDOW,default=1h"`
	ResendMax     int      `env:"RESEND_MAX,default=3"`
	ResendWindow  Duration `env:"RESEND_WINDOW,default=1h"`
	ForgotMax     int      `env:"FORGOT_MAX,default=3"`
	ForgotWindow  Duration `env:"FORGOT_WINDOW,default=1h"`
	ResetMax      int      `env:"RESET_MAX,default=5"`
	ResetWindow   Duration `env:"RESET_WINDOW,default=1h"`
	SweepInterval Duration `env:"SWEEP_INTERVAL,default=5m"`
}

type SMTPConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=587"`
	Username string `env:"USERNAME,default="`
	Password string `env:"PASSWORD,default="`
	From     string `env:"FROM,default=Hefica <onboarding@hefica.app>"`
}

type AppConfig struct {
	Name    string `env:"NAME,default=Hefica"`
	BaseURL string `env:"BASE_URL,default=http://localhost:3000"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
	AllowedMethods []string `env:"ALLOWED_METHODS,default=GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS,default=Content-Type,Authorization"`
}

// DSN returns PostgreSQL connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// Address returns Redis connection address
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// Address returns SMTP server address
func (s SMTPConfig) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var config Config

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(config.Session.Secret) < 32 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 32 characters long")
	}

	return &config, nil
}

// LoadWithDefaults loads configuration with default context
func LoadWithDefaults() (*Config, error) {
	return Load(context.Background())
}
