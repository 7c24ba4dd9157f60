// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers accepted by store.driver.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// EnvironmentDevelopment enables error details on the 500 page.
const EnvironmentDevelopment = "development"

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	App      AppConfig      `mapstructure:"app"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Store    StoreConfig    `mapstructure:"store"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Webhook  WebhookConfig  `mapstructure:"webhook"`
	PubSub   PubSubConfig   `mapstructure:"pubsub"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port                  int `mapstructure:"port"`
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds"`
}

// AppConfig holds deployment-level toggles.
type AppConfig struct {
	Environment string `mapstructure:"environment"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// StoreConfig selects the persistence driver.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

// MongoConfig describes the MongoDB connection.
type MongoConfig struct {
	URI            string `mapstructure:"uri"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	Database       string `mapstructure:"database"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// PostgresConfig controls access to the relational database.
type PostgresConfig struct {
	DSN      string `mapstructure:"dsn"`
	MaxConns int    `mapstructure:"max_conns"`
}

// WebhookConfig configures the deploy webhook. An empty Secret disables it.
type WebhookConfig struct {
	Secret                 string `mapstructure:"secret"`
	RepoDir                string `mapstructure:"repo_dir"`
	Executable             string `mapstructure:"executable"`
	MinIntervalSeconds     int    `mapstructure:"min_interval_seconds"`
	RateLimitRequests      int    `mapstructure:"rate_limit_requests"`
	RateLimitWindowSeconds int    `mapstructure:"rate_limit_window_seconds"`
}

// PubSubConfig holds metadata for change notifications.
type PubSubConfig struct {
	ProjectID string `mapstructure:"project_id"`
	TopicName string `mapstructure:"topic_name"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MOVIES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.request_timeout_seconds", 30)
	v.SetDefault("app.environment", "production")
	v.SetDefault("logging.development", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("store.driver", DriverMongo)
	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.host", "localhost")
	v.SetDefault("mongo.port", 27017)
	v.SetDefault("mongo.user", "")
	v.SetDefault("mongo.password", "")
	v.SetDefault("mongo.database", "movies")
	v.SetDefault("mongo.timeout_seconds", 10)
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.max_conns", 4)
	v.SetDefault("webhook.secret", "")
	v.SetDefault("webhook.repo_dir", ".")
	v.SetDefault("webhook.executable", "moviecatalog")
	v.SetDefault("webhook.min_interval_seconds", 5)
	v.SetDefault("webhook.rate_limit_requests", 10)
	v.SetDefault("webhook.rate_limit_window_seconds", 60)
	v.SetDefault("pubsub.project_id", "")
	v.SetDefault("pubsub.topic_name", "")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Server.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("server.request_timeout_seconds must be > 0")
	}
	switch c.Store.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" && c.Mongo.Host == "" {
			return fmt.Errorf("mongo.host or mongo.uri must be set when store.driver is mongo")
		}
		if c.Mongo.Database == "" {
			return fmt.Errorf("mongo.database must be set when store.driver is mongo")
		}
		if c.Mongo.TimeoutSeconds <= 0 {
			return fmt.Errorf("mongo.timeout_seconds must be > 0")
		}
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn must be set when store.driver is postgres")
		}
		if c.Postgres.MaxConns <= 0 {
			return fmt.Errorf("postgres.max_conns must be > 0")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("store.driver must be one of mongo, postgres, memory (got %q)", c.Store.Driver)
	}
	if c.Webhook.Secret != "" {
		if c.Webhook.Executable == "" {
			return fmt.Errorf("webhook.executable must be set when the webhook is enabled")
		}
		if c.Webhook.RateLimitRequests <= 0 || c.Webhook.RateLimitWindowSeconds <= 0 {
			return fmt.Errorf("webhook.rate_limit_requests and webhook.rate_limit_window_seconds must be > 0")
		}
		if c.Webhook.MinIntervalSeconds < 0 {
			return fmt.Errorf("webhook.min_interval_seconds must be >= 0")
		}
	}
	if c.PubSub.TopicName != "" && c.PubSub.ProjectID == "" {
		return fmt.Errorf("pubsub.project_id must be set when pubsub.topic_name is set")
	}
	return nil
}

// Development reports whether internal error details may be shown to clients.
func (c Config) Development() bool {
	return strings.EqualFold(c.App.Environment, EnvironmentDevelopment)
}

// RequestTimeout converts the request timeout into a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}

// MongoTimeout converts the Mongo timeout into a duration.
func (c Config) MongoTimeout() time.Duration {
	return time.Duration(c.Mongo.TimeoutSeconds) * time.Second
}

// WebhookEnabled reports whether the deploy webhook should be mounted.
func (c Config) WebhookEnabled() bool {
	return c.Webhook.Secret != ""
}

// WebhookMinInterval is the minimum spacing between two repository syncs.
func (c Config) WebhookMinInterval() time.Duration {
	return time.Duration(c.Webhook.MinIntervalSeconds) * time.Second
}

// WebhookRateWindow is the window used by the per-client request limiter.
func (c Config) WebhookRateWindow() time.Duration {
	return time.Duration(c.Webhook.RateLimitWindowSeconds) * time.Second
}
