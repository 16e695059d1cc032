package config

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

func ValidateStatic(cfg *Config) error {
	var errors []error

	if err := validateServer(cfg.Server); err != nil {
		errors = append(errors, err)
	}

	if err := validateOpenAI(cfg.OpenAI); err != nil {
		errors = append(errors, err)
	}

	if err := validateSheety(cfg.Sheety); err != nil {
		errors = append(errors, err)
	}

	if err := validateWebhook(cfg.Webhook); err != nil {
		errors = append(errors, err)
	}

	if err := validateRateLimit(cfg.RateLimit); err != nil {
		errors = append(errors, err)
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %v", errors)
	}

	return nil
}

func validateServer(cfg ServerConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return &ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("port must be between 1 and 65535, got %d", cfg.Port),
		}
	}

	if cfg.ReadTimeoutSeconds <= 0 {
		return &ValidationError{
			Field:   "server.read_timeout_seconds",
			Message: "read timeout must be positive",
		}
	}

	if cfg.WriteTimeoutSeconds <= 0 {
		return &ValidationError{
			Field:   "server.write_timeout_seconds",
			Message: "write timeout must be positive",
		}
	}

	return nil
}

func validateOpenAI(cfg OpenAIConfig) error {
	if cfg.Model == "" {
		return &ValidationError{
			Field:   "openai.model",
			Message: "model identifier is required",
		}
	}

	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return &ValidationError{
			Field:   "openai.base_url",
			Message: fmt.Sprintf("base URL must start with http:// or https://, got %q", cfg.BaseURL),
		}
	}

	if cfg.TimeoutSeconds <= 0 {
		return &ValidationError{
			Field:   "openai.timeout_seconds",
			Message: "timeout must be positive",
		}
	}

	return nil
}

func validateSheety(cfg SheetyConfig) error {
	// An empty URL means the sink is disabled, which is a supported
	// degraded mode rather than a configuration error.
	if cfg.URL == "" {
		return nil
	}

	if !strings.HasPrefix(cfg.URL, "http://") && !strings.HasPrefix(cfg.URL, "https://") {
		return &ValidationError{
			Field:   "sheety.url",
			Message: fmt.Sprintf("URL must start with http:// or https://, got %q", cfg.URL),
		}
	}

	if cfg.Resource == "" {
		return &ValidationError{
			Field:   "sheety.resource",
			Message: "resource name is required when a URL is configured",
		}
	}

	if len(cfg.Keys) == 0 {
		return &ValidationError{
			Field:   "sheety.keys",
			Message: "at least one allow-listed key is required when a URL is configured",
		}
	}

	for i, key := range cfg.Keys {
		if key == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("sheety.keys[%d]", i),
				Message: "allow-listed key cannot be empty",
			}
		}
	}

	return nil
}

func validateWebhook(cfg WebhookConfig) error {
	if cfg.Workers < 1 {
		return &ValidationError{
			Field:   "webhook.workers",
			Message: fmt.Sprintf("workers must be at least 1, got %d", cfg.Workers),
		}
	}

	if cfg.QueueSize < 1 {
		return &ValidationError{
			Field:   "webhook.queue_size",
			Message: fmt.Sprintf("queue size must be at least 1, got %d", cfg.QueueSize),
		}
	}

	return nil
}

func validateRateLimit(cfg RateLimitConfig) error {
	if !cfg.Enabled {
		return nil
	}

	if cfg.RPS <= 0 {
		return &ValidationError{
			Field:   "ratelimit.rps",
			Message: "rps must be positive when rate limiting is enabled",
		}
	}

	if cfg.Burst < 1 {
		return &ValidationError{
			Field:   "ratelimit.burst",
			Message: "burst must be at least 1 when rate limiting is enabled",
		}
	}

	return nil
}
