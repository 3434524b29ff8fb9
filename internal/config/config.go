package config

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rajasharmaa/dttt/internal/platform/logger"
)

// Config holds all configuration for the service.
type Config struct {
	ServiceName string `mapstructure:"SERVICE_NAME"`
	Environment string `mapstructure:"ENVIRONMENT"` // "development" or "production"
	HTTPPort    string `mapstructure:"HTTP_PORT"`

	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	SessionBackend string `mapstructure:"SESSION_BACKEND"` // "memory" or "redis"
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisDB        int    `mapstructure:"REDIS_DB"`

	NATSURL string `mapstructure:"NATS_URL"` // blank disables event publishing

	SMTPHost           string `mapstructure:"SMTP_HOST"` // blank disables mail
	SMTPPort           int    `mapstructure:"SMTP_PORT"`
	SMTPEmail          string `mapstructure:"SMTP_EMAIL"`
	SMTPPassword       string `mapstructure:"SMTP_PASSWORD"`
	InquiryNotifyEmail string `mapstructure:"INQUIRY_NOTIFY_EMAIL"`

	PrometheusMetricsPort string `mapstructure:"PROMETHEUS_METRICS_PORT"`
	CORSAllowedOrigins    string `mapstructure:"CORS_ALLOWED_ORIGINS"` // comma separated

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

// LoadConfig reads configuration from environment variables with defaults.
func LoadConfig(appLogger *logger.Logger) (*Config, error) {
	viper.SetDefault("SERVICE_NAME", "storefront")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("HTTP_PORT", "3000")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "damodarTraders")
	viper.SetDefault("SESSION_BACKEND", "memory")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("NATS_URL", "")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_EMAIL", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("INQUIRY_NOTIFY_EMAIL", "")
	viper.SetDefault("PROMETHEUS_METRICS_PORT", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001,http://127.0.0.1:5500")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")

	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		appLogger.Error("Failed to unmarshal configuration", zap.Error(err))
		return nil, err
	}

	if cfg.MongoURI == "" {
		appLogger.Fatal("MONGO_URI is not set. This is required.")
	}
	if cfg.MongoDatabase == "" {
		appLogger.Fatal("MONGO_DATABASE is not set. This is required.")
	}
	if cfg.SessionBackend == "redis" && cfg.RedisAddr == "" {
		appLogger.Fatal("SESSION_BACKEND is redis but REDIS_ADDR is not set.")
	}

	appLogger.Debug("Configuration loaded",
		zap.String("service_name", cfg.ServiceName),
		zap.String("environment", cfg.Environment),
		zap.String("http_port", cfg.HTTPPort),
		zap.Bool("mongo_uri_present", cfg.MongoURI != ""),
		zap.String("mongo_database", cfg.MongoDatabase),
		zap.String("session_backend", cfg.SessionBackend),
		zap.Bool("nats_enabled", cfg.NATSURL != ""),
		zap.Bool("smtp_enabled", cfg.SMTPHost != ""),
		zap.String("prometheus_port", cfg.PrometheusMetricsPort),
	)

	return &cfg, nil
}

// IsProduction reports whether the service runs in production mode. It
// controls cookie security attributes and error detail suppression.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins parses the comma separated CORS origin list.
func (c *Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
