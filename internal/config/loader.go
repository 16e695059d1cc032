package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"leadrelay/internal/constants"
)

// LoadConfig reads configuration from an optional YAML file plus
// environment variables. The service was designed to run env-only, so
// a missing config file path is not an error.
func LoadConfig(configFile string) (*Config, error) {
	viper.Reset()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()
	bindEnvVariables()

	if configFile != "" {
		viper.SetConfigType("yaml")
		viper.SetConfigFile(configFile)

		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := ValidateStatic(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.host", constants.DefaultHost)
	viper.SetDefault("server.port", constants.DefaultPort)
	viper.SetDefault("server.read_timeout_seconds", 15)
	viper.SetDefault("server.write_timeout_seconds", 15)

	viper.SetDefault("logging.level", "info")

	viper.SetDefault("openai.model", constants.DefaultModel)
	viper.SetDefault("openai.base_url", constants.DefaultOpenAIBaseURL)
	viper.SetDefault("openai.timeout_seconds", int(constants.DefaultExtractionTimeout.Seconds()))

	viper.SetDefault("sheety.resource", constants.DefaultSheetResource)

	viper.SetDefault("webhook.workers", constants.DefaultWorkers)
	viper.SetDefault("webhook.queue_size", constants.DefaultQueueSize)

	viper.SetDefault("ratelimit.rps", 10.0)
	viper.SetDefault("ratelimit.burst", 20)
	viper.SetDefault("ratelimit.cleanup_interval", 300)
	viper.SetDefault("ratelimit.max_age", 600)

	viper.SetDefault("circuit_breaker.max_requests", 3)
	viper.SetDefault("circuit_breaker.interval", "60s")
	viper.SetDefault("circuit_breaker.timeout", "60s")
	viper.SetDefault("circuit_breaker.failure_ratio", 0.5)
	viper.SetDefault("circuit_breaker.min_requests", 3)
}

func bindEnvVariables() {
	viper.BindEnv("server.host", "SERVER_HOST", "HOST")
	viper.BindEnv("server.port", "SERVER_PORT", "PORT")
	viper.BindEnv("server.read_timeout_seconds", "SERVER_READ_TIMEOUT_SECONDS")
	viper.BindEnv("server.write_timeout_seconds", "SERVER_WRITE_TIMEOUT_SECONDS")

	viper.BindEnv("logging.level", "LOGGING_LEVEL")

	viper.BindEnv("openai.api_key", "OPENAI_API_KEY")
	viper.BindEnv("openai.model", "OPENAI_MODEL")
	viper.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	viper.BindEnv("openai.timeout_seconds", "OPENAI_TIMEOUT_SECONDS")

	viper.BindEnv("sheety.url", "SHEETY_URL")
	viper.BindEnv("sheety.resource", "SHEETY_RESOURCE")
	viper.BindEnv("sheety.auth_token", "SHEETY_AUTH_TOKEN")

	viper.BindEnv("webhook.workers", "WEBHOOK_WORKERS")
	viper.BindEnv("webhook.queue_size", "WEBHOOK_QUEUE_SIZE")

	viper.BindEnv("ratelimit.enabled", "RATELIMIT_ENABLED")
	viper.BindEnv("ratelimit.rps", "RATELIMIT_RPS")
	viper.BindEnv("ratelimit.burst", "RATELIMIT_BURST")

	viper.BindEnv("circuit_breaker.enabled", "CIRCUIT_BREAKER_ENABLED")
}

func applyEnvOverrides(cfg *Config) error {
	if keysEnv := viper.GetString("SHEETY_KEYS"); keysEnv != "" {
		keys := strings.Split(keysEnv, ",")
		for i := range keys {
			keys[i] = strings.TrimSpace(keys[i])
		}
		if len(keys) > 0 && keys[0] != "" {
			cfg.Sheety.Keys = keys
		}
	}

	return nil
}
