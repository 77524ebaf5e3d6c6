package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Annotator AnnotatorConfig
	Extract   ExtractConfig
	Log       LogConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Auth      AuthConfig
	S3        S3Config
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings for the parse log.
type DBConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`

	// Parse log writes are queued and written in the background.
	LogQueueSize    int           `mapstructure:"log_queue_size"`
	LogWriters      int           `mapstructure:"log_writers"`
	LogWriteTimeout time.Duration `mapstructure:"log_write_timeout"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// AnnotatorProviderConfig holds settings for a single annotation backend.
type AnnotatorProviderConfig struct {
	Provider    string `mapstructure:"provider"`
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
	Language    string `mapstructure:"language"`
}

// AnnotatorConfig holds the annotation backend chain.
type AnnotatorConfig struct {
	Primary   AnnotatorProviderConfig `mapstructure:"primary"`
	Secondary AnnotatorProviderConfig `mapstructure:"secondary"`
	CacheTTL  time.Duration           `mapstructure:"cache_ttl"`
}

// PrimaryConfig returns the primary annotator config.
func (a *AnnotatorConfig) PrimaryConfig() *AnnotatorProviderConfig {
	return &a.Primary
}

// SecondaryConfig returns the secondary annotator config, or nil if not configured.
func (a *AnnotatorConfig) SecondaryConfig() *AnnotatorProviderConfig {
	if a.Secondary.Provider != "" && a.Secondary.Provider != a.Primary.Provider {
		return &a.Secondary
	}
	return nil
}

// ExtractConfig holds extraction heuristics settings.
type ExtractConfig struct {
	Prepositions []string `mapstructure:"prepositions"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig holds per-client rate limiting for the parse endpoint.
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// AuthConfig holds JWT settings for the parse log endpoints.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// S3Config holds settings for publishing batch reports.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// Load reads configuration from environment variables with the PAYNLP_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PAYNLP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults (parse log is off unless enabled)
	v.SetDefault("db.enabled", false)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "paynlp")
	v.SetDefault("db.password", "paynlp_secret")
	v.SetDefault("db.name", "paynlp_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)
	v.SetDefault("db.log_queue_size", 1024)
	v.SetDefault("db.log_writers", 2)
	v.SetDefault("db.log_write_timeout", "5s")

	// Annotator defaults: CoreNLP server first, in-process tokenizer as fallback
	v.SetDefault("annotator.primary.provider", "corenlp")
	v.SetDefault("annotator.primary.base_url", "http://localhost:9000")
	v.SetDefault("annotator.primary.timeout_secs", 10)
	v.SetDefault("annotator.primary.language", "english")
	v.SetDefault("annotator.secondary.provider", "simple")
	v.SetDefault("annotator.secondary.base_url", "")
	v.SetDefault("annotator.secondary.timeout_secs", 0)
	v.SetDefault("annotator.secondary.language", "")
	v.SetDefault("annotator.cache_ttl", "10m")

	// Extraction defaults
	v.SetDefault("extract.prepositions", "to,a,para")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 5)
	v.SetDefault("rate_limit.burst", 20)

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.issuer", "paynlp")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "paynlp-reports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                      "PAYNLP_SERVER_PORT",
		"server.read_timeout":              "PAYNLP_SERVER_READ_TIMEOUT",
		"server.write_timeout":             "PAYNLP_SERVER_WRITE_TIMEOUT",
		"server.shutdown_timeout":          "PAYNLP_SERVER_SHUTDOWN_TIMEOUT",
		"server.environment":               "PAYNLP_SERVER_ENVIRONMENT",
		"db.enabled":                       "PAYNLP_DB_ENABLED",
		"db.host":                          "PAYNLP_DB_HOST",
		"db.port":                          "PAYNLP_DB_PORT",
		"db.user":                          "PAYNLP_DB_USER",
		"db.password":                      "PAYNLP_DB_PASSWORD",
		"db.name":                          "PAYNLP_DB_NAME",
		"db.sslmode":                       "PAYNLP_DB_SSLMODE",
		"db.max_open":                      "PAYNLP_DB_MAX_OPEN",
		"db.max_idle":                      "PAYNLP_DB_MAX_IDLE",
		"db.log_queue_size":                "PAYNLP_DB_LOG_QUEUE_SIZE",
		"db.log_writers":                   "PAYNLP_DB_LOG_WRITERS",
		"db.log_write_timeout":             "PAYNLP_DB_LOG_WRITE_TIMEOUT",
		"annotator.primary.provider":       "PAYNLP_ANNOTATOR_PRIMARY_PROVIDER",
		"annotator.primary.base_url":       "PAYNLP_ANNOTATOR_PRIMARY_BASE_URL",
		"annotator.primary.timeout_secs":   "PAYNLP_ANNOTATOR_PRIMARY_TIMEOUT_SECS",
		"annotator.primary.language":       "PAYNLP_ANNOTATOR_PRIMARY_LANGUAGE",
		"annotator.secondary.provider":     "PAYNLP_ANNOTATOR_SECONDARY_PROVIDER",
		"annotator.secondary.base_url":     "PAYNLP_ANNOTATOR_SECONDARY_BASE_URL",
		"annotator.secondary.timeout_secs": "PAYNLP_ANNOTATOR_SECONDARY_TIMEOUT_SECS",
		"annotator.secondary.language":     "PAYNLP_ANNOTATOR_SECONDARY_LANGUAGE",
		"annotator.cache_ttl":              "PAYNLP_ANNOTATOR_CACHE_TTL",
		"extract.prepositions":             "PAYNLP_EXTRACT_PREPOSITIONS",
		"log.level":                        "PAYNLP_LOG_LEVEL",
		"log.format":                       "PAYNLP_LOG_FORMAT",
		"cors.allowed_origins":             "PAYNLP_CORS_ALLOWED_ORIGINS",
		"rate_limit.enabled":               "PAYNLP_RATE_LIMIT_ENABLED",
		"rate_limit.requests_per_second":   "PAYNLP_RATE_LIMIT_REQUESTS_PER_SECOND",
		"rate_limit.burst":                 "PAYNLP_RATE_LIMIT_BURST",
		"auth.jwt_secret":                  "PAYNLP_AUTH_JWT_SECRET",
		"auth.issuer":                      "PAYNLP_AUTH_ISSUER",
		"s3.region":                        "PAYNLP_S3_REGION",
		"s3.bucket":                        "PAYNLP_S3_BUCKET",
		"s3.endpoint":                      "PAYNLP_S3_ENDPOINT",
		"s3.access_key":                    "PAYNLP_S3_ACCESS_KEY",
		"s3.secret_key":                    "PAYNLP_S3_SECRET_KEY",
		"s3.presign_expiry":                "PAYNLP_S3_PRESIGN_EXPIRY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if PAYNLP_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PAYNLP_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Enabled:  v.GetBool("db.enabled"),
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),

		LogQueueSize:    v.GetInt("db.log_queue_size"),
		LogWriters:      v.GetInt("db.log_writers"),
		LogWriteTimeout: v.GetDuration("db.log_write_timeout"),
	}
	cfg.Annotator = AnnotatorConfig{
		Primary: AnnotatorProviderConfig{
			Provider:    v.GetString("annotator.primary.provider"),
			BaseURL:     v.GetString("annotator.primary.base_url"),
			TimeoutSecs: v.GetInt("annotator.primary.timeout_secs"),
			Language:    v.GetString("annotator.primary.language"),
		},
		Secondary: AnnotatorProviderConfig{
			Provider:    v.GetString("annotator.secondary.provider"),
			BaseURL:     v.GetString("annotator.secondary.base_url"),
			TimeoutSecs: v.GetInt("annotator.secondary.timeout_secs"),
			Language:    v.GetString("annotator.secondary.language"),
		},
		CacheTTL: v.GetDuration("annotator.cache_ttl"),
	}
	cfg.Extract = ExtractConfig{
		Prepositions: splitList(v.GetString("extract.prepositions")),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.RateLimit = RateLimitConfig{
		Enabled:           v.GetBool("rate_limit.enabled"),
		RequestsPerSecond: v.GetFloat64("rate_limit.requests_per_second"),
		Burst:             v.GetInt("rate_limit.burst"),
	}
	cfg.Auth = AuthConfig{
		JWTSecret: v.GetString("auth.jwt_secret"),
		Issuer:    v.GetString("auth.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}

	return cfg, nil
}

// splitList parses a comma-separated value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
