package config

import (
	"time"
)

type Config struct {
	Server         ServerConfig
	Logging        LoggingConfig
	OpenAI         OpenAIConfig
	Sheety         SheetyConfig
	Webhook        WebhookConfig
	RateLimit      RateLimitConfig
	CircuitBreaker CircuitBreakerConfig
}

// ServerConfig holds the HTTP bind address and timeouts. Timeouts are
// plain integer seconds so env vars like SERVER_READ_TIMEOUT_SECONDS=30
// decode without a duration unit; conversion to time.Duration happens
// once at server construction.
type ServerConfig struct {
	Host                string `mapstructure:"host"`
	Port                int    `mapstructure:"port"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// OpenAIConfig configures the structured extraction backend.
type OpenAIConfig struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// SheetyConfig configures the spreadsheet delivery sink. An empty URL
// disables delivery: webhooks are still acknowledged and processed,
// the final delivery step is skipped with a warning.
type SheetyConfig struct {
	URL       string   `mapstructure:"url"`
	Resource  string   `mapstructure:"resource"`
	Keys      []string `mapstructure:"keys"`
	AuthToken string   `mapstructure:"auth_token"`
}

// WebhookConfig bounds the background pipeline: a fixed number of
// workers fed by a bounded queue.
type WebhookConfig struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queue_size"`
}

type RateLimitConfig struct {
	Enabled         bool    `mapstructure:"enabled"`
	RPS             float64 `mapstructure:"rps"`
	Burst           int     `mapstructure:"burst"`
	CleanupInterval int     `mapstructure:"cleanup_interval"`
	MaxAge          int     `mapstructure:"max_age"`
}

type CircuitBreakerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
	MinRequests  uint32        `mapstructure:"min_requests"`
}
