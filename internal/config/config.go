package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      string `envconfig:"GO_ENV" default:"dev"`
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	MinIO    MinIOConfig
	Sentry   SentryConfig
}

type ServerConfig struct {
	Port         string        `envconfig:"SERVER_PORT" default:"8010"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	AllowOrigins string        `envconfig:"SERVER_ALLOW_ORIGINS" default:"*"`
	// RateLimit is the number of API requests allowed per client per minute; 0 disables limiting.
	RateLimit int `envconfig:"SERVER_RATE_LIMIT" default:"120"`
}

type DatabaseConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            string        `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER" default:"postgres"`
	Password        string        `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName          string        `envconfig:"DB_NAME" default:"movie_catalog"`
	SSLMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	QueryTimeout    time.Duration `envconfig:"DB_QUERY_TIMEOUT" default:"10s"`
	AutoMigrate     bool          `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	Debug           bool          `envconfig:"DB_DEBUG" default:"false"`
}

type AuthConfig struct {
	JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	// TokenTTL of zero issues tokens that never expire.
	TokenTTL time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"720h"`
	Issuer   string        `envconfig:"AUTH_ISSUER" default:"movie-catalog"`
}

type MinIOConfig struct {
	Endpoint        string        `envconfig:"AWS_ENDPOINT"`
	AccessKeyID     string        `envconfig:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string        `envconfig:"AWS_SECRET_ACCESS_KEY"`
	BucketName      string        `envconfig:"AWS_BUCKET" default:"posters"`
	Region          string        `envconfig:"AWS_DEFAULT_REGION" default:"us-east-1"`
	UseSSL          bool          `envconfig:"AWS_USE_SSL" default:"true"`
	PublicURL       string        `envconfig:"AWS_URL"`
	PresignExpiry   time.Duration `envconfig:"AWS_PRESIGN_EXPIRY" default:"15m"`
}

type SentryConfig struct {
	DSN string `envconfig:"SENTRY_DSN"`
}

// Enabled reports whether every setting needed to reach the object store is present.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// Load reads the process environment. Call LoadEnvFiles first to pick up envs/.env files.
func Load() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}
	return cfg, nil
}

// LoadEnvFiles loads envs/.env.<GO_ENV> from dir, falling back to envs/.env.
// It returns the file that was loaded, or an error when neither could be read.
func LoadEnvFiles(dir string) (string, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "dev"
	}

	envFile := filepath.Join(dir, "envs", ".env."+env)
	if err := godotenv.Load(envFile); err == nil {
		return envFile, nil
	}

	defaultEnvFile := filepath.Join(dir, "envs", ".env")
	if err := godotenv.Load(defaultEnvFile); err != nil {
		return "", fmt.Errorf("could not load %s or %s: %w", envFile, defaultEnvFile, err)
	}
	return defaultEnvFile, nil
}

// GetDSN returns PostgreSQL connection string
func (c *Config) GetDSN() string {
	return c.Database.DSN()
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC connect_timeout=10",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.DBName,
		c.SSLMode,
	)
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "dev" || c.Env == "development"
}

// Validate returns an error for settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("AUTH_JWT_SECRET must be at least 32 characters")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	return nil
}

// Warnings lists settings that are tolerated but probably wrong.
func (c *Config) Warnings() []string {
	var warnings []string
	m := c.MinIO
	if !m.Enabled() && (m.Endpoint != "" || m.AccessKeyID != "" || m.SecretAccessKey != "") {
		warnings = append(warnings, "object storage is partially configured (AWS_ENDPOINT, AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are all required); poster uploads are disabled")
	}
	if c.Sentry.DSN == "" {
		warnings = append(warnings, "SENTRY_DSN is empty; errors will not be reported")
	}
	return warnings
}
