package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                "0.0.0.0",
			Port:                8000,
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 15,
		},
		Logging: LoggingConfig{Level: "info"},
		OpenAI: OpenAIConfig{
			APIKey:         "key",
			Model:          "gpt-5",
			BaseURL:        "https://api.openai.com/v1",
			TimeoutSeconds: 60,
		},
		Sheety: SheetyConfig{
			URL:      "https://api.sheety.co/project/sheet",
			Resource: "phone",
			Keys:     []string{"name", "email"},
		},
		Webhook: WebhookConfig{
			Workers:   8,
			QueueSize: 64,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     10,
			Burst:   20,
		},
		CircuitBreaker: CircuitBreakerConfig{
			Enabled:      true,
			MaxRequests:  3,
			Interval:     time.Minute,
			Timeout:      time.Minute,
			FailureRatio: 0.5,
			MinRequests:  3,
		},
	}
}

func TestValidateStaticValid(t *testing.T) {
	assert.NoError(t, ValidateStatic(validConfig()))
}

func TestValidateStaticDisabledSheety(t *testing.T) {
	cfg := validConfig()
	cfg.Sheety = SheetyConfig{}

	// No delivery URL is a supported degraded mode.
	assert.NoError(t, ValidateStatic(cfg))
}

func TestValidateStaticErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantMsg string
	}{
		{
			name:    "invalid port",
			mutate:  func(cfg *Config) { cfg.Server.Port = 0 },
			wantMsg: "server.port",
		},
		{
			name:    "port too large",
			mutate:  func(cfg *Config) { cfg.Server.Port = 70000 },
			wantMsg: "server.port",
		},
		{
			name:    "non-positive read timeout",
			mutate:  func(cfg *Config) { cfg.Server.ReadTimeoutSeconds = 0 },
			wantMsg: "server.read_timeout_seconds",
		},
		{
			name:    "missing model",
			mutate:  func(cfg *Config) { cfg.OpenAI.Model = "" },
			wantMsg: "openai.model",
		},
		{
			name:    "bad openai base url",
			mutate:  func(cfg *Config) { cfg.OpenAI.BaseURL = "api.openai.com" },
			wantMsg: "openai.base_url",
		},
		{
			name:    "non-positive timeout",
			mutate:  func(cfg *Config) { cfg.OpenAI.TimeoutSeconds = 0 },
			wantMsg: "openai.timeout_seconds",
		},
		{
			name:    "bad sheety url",
			mutate:  func(cfg *Config) { cfg.Sheety.URL = "sheety.co" },
			wantMsg: "sheety.url",
		},
		{
			name:    "sheety url without resource",
			mutate:  func(cfg *Config) { cfg.Sheety.Resource = "" },
			wantMsg: "sheety.resource",
		},
		{
			name:    "sheety url without keys",
			mutate:  func(cfg *Config) { cfg.Sheety.Keys = nil },
			wantMsg: "sheety.keys",
		},
		{
			name:    "empty sheety key",
			mutate:  func(cfg *Config) { cfg.Sheety.Keys = []string{"name", ""} },
			wantMsg: "sheety.keys[1]",
		},
		{
			name:    "zero workers",
			mutate:  func(cfg *Config) { cfg.Webhook.Workers = 0 },
			wantMsg: "webhook.workers",
		},
		{
			name:    "zero queue size",
			mutate:  func(cfg *Config) { cfg.Webhook.QueueSize = 0 },
			wantMsg: "webhook.queue_size",
		},
		{
			name:    "rate limit enabled without rps",
			mutate:  func(cfg *Config) { cfg.RateLimit.RPS = 0 },
			wantMsg: "ratelimit.rps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := ValidateStatic(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "server.port", Message: "port must be between 1 and 65535, got 0"}
	assert.Equal(t, "validation error for field 'server.port': port must be between 1 and 65535, got 0", err.Error())
}
