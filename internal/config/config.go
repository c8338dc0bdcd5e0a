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
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	S3       S3Config
	Log      LogConfig
	CORS     CORSConfig
	Stamping StampingConfig
	Notary   NotaryConfig
	Email    EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// RedisConfig holds wizard session store settings.
type RedisConfig struct {
	URL        string        `mapstructure:"url"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// JWTConfig holds download token signing settings.
type JWTConfig struct {
	Secret         string        `mapstructure:"secret"`
	DownloadExpiry time.Duration `mapstructure:"download_expiry"`
	Issuer         string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for uploaded and generated artifacts.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
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

// StampingConfig holds stamping collaborator settings.
type StampingConfig struct {
	URL         string `mapstructure:"url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// NotaryConfig holds notary-session collaborator settings.
type NotaryConfig struct {
	URL         string `mapstructure:"url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// Load reads configuration from environment variables with the NOTARYFLOW_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("NOTARYFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "notaryflow")
	v.SetDefault("db.password", "notaryflow_secret")
	v.SetDefault("db.name", "notaryflow_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Redis defaults
	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.session_ttl", "168h")

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.download_expiry", "15m")
	v.SetDefault("jwt.issuer", "notaryflow")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "notaryflow-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Collaborator defaults
	v.SetDefault("stamping.url", "http://localhost:9090/api/stamp")
	v.SetDefault("stamping.timeout_secs", 60)
	v.SetDefault("notary.url", "http://localhost:9091/api/schedule")
	v.SetDefault("notary.timeout_secs", 30)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@notaryflow.com")
	v.SetDefault("email.from_name", "NotaryFlow")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "NOTARYFLOW_SERVER_PORT",
		"server.read_timeout":   "NOTARYFLOW_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "NOTARYFLOW_SERVER_WRITE_TIMEOUT",
		"server.environment":    "NOTARYFLOW_SERVER_ENVIRONMENT",
		"db.host":               "NOTARYFLOW_DB_HOST",
		"db.port":               "NOTARYFLOW_DB_PORT",
		"db.user":               "NOTARYFLOW_DB_USER",
		"db.password":           "NOTARYFLOW_DB_PASSWORD",
		"db.name":               "NOTARYFLOW_DB_NAME",
		"db.sslmode":            "NOTARYFLOW_DB_SSLMODE",
		"db.max_open":           "NOTARYFLOW_DB_MAX_OPEN",
		"db.max_idle":           "NOTARYFLOW_DB_MAX_IDLE",
		"redis.url":             "NOTARYFLOW_REDIS_URL",
		"redis.session_ttl":     "NOTARYFLOW_REDIS_SESSION_TTL",
		"jwt.secret":            "NOTARYFLOW_JWT_SECRET",
		"jwt.download_expiry":   "NOTARYFLOW_JWT_DOWNLOAD_EXPIRY",
		"jwt.issuer":            "NOTARYFLOW_JWT_ISSUER",
		"s3.region":             "NOTARYFLOW_S3_REGION",
		"s3.bucket":             "NOTARYFLOW_S3_BUCKET",
		"s3.endpoint":           "NOTARYFLOW_S3_ENDPOINT",
		"s3.access_key":         "NOTARYFLOW_S3_ACCESS_KEY",
		"s3.secret_key":         "NOTARYFLOW_S3_SECRET_KEY",
		"s3.max_file_size_mb":   "NOTARYFLOW_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":     "NOTARYFLOW_S3_PRESIGN_EXPIRY",
		"log.level":             "NOTARYFLOW_LOG_LEVEL",
		"log.format":            "NOTARYFLOW_LOG_FORMAT",
		"cors.allowed_origins":  "NOTARYFLOW_CORS_ALLOWED_ORIGINS",
		"stamping.url":          "NOTARYFLOW_STAMPING_URL",
		"stamping.timeout_secs": "NOTARYFLOW_STAMPING_TIMEOUT_SECS",
		"notary.url":            "NOTARYFLOW_NOTARY_URL",
		"notary.timeout_secs":   "NOTARYFLOW_NOTARY_TIMEOUT_SECS",
		"email.provider":        "NOTARYFLOW_EMAIL_PROVIDER",
		"email.region":          "NOTARYFLOW_EMAIL_REGION",
		"email.from_address":    "NOTARYFLOW_EMAIL_FROM_ADDRESS",
		"email.from_name":       "NOTARYFLOW_EMAIL_FROM_NAME",
		"email.frontend_url":    "NOTARYFLOW_EMAIL_FRONTEND_URL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if NOTARYFLOW_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("NOTARYFLOW_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Redis = RedisConfig{
		URL:        v.GetString("redis.url"),
		SessionTTL: v.GetDuration("redis.session_ttl"),
	}
	cfg.JWT = JWTConfig{
		Secret:         v.GetString("jwt.secret"),
		DownloadExpiry: v.GetDuration("jwt.download_expiry"),
		Issuer:         v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Stamping = StampingConfig{
		URL:         v.GetString("stamping.url"),
		TimeoutSecs: v.GetInt("stamping.timeout_secs"),
	}
	cfg.Notary = NotaryConfig{
		URL:         v.GetString("notary.url"),
		TimeoutSecs: v.GetInt("notary.timeout_secs"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}

	return cfg, nil
}
