package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/circuitlab/circuitlab/api/internal/domain"
)

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read from environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Optionally read from config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/circuitlab")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	// Server
	cfg.Server.Host = v.GetString("server_host")
	cfg.Server.Port = v.GetInt("server_port")
	cfg.Server.Env = v.GetString("server_env")
	cfg.Server.BasePath = strings.TrimRight(v.GetString("server_base_path"), "/")
	cfg.Server.ReadTimeout = v.GetDuration("server_read_timeout")
	cfg.Server.WriteTimeout = v.GetDuration("server_write_timeout")
	cfg.Server.ShutdownTimeout = v.GetDuration("server_shutdown_timeout")

	// Logging
	cfg.Log.Level = v.GetString("log_level")
	cfg.Log.Format = v.GetString("log_format")

	// Store
	cfg.Store.IDStrategy = strings.ToLower(v.GetString("store_id_strategy"))
	cfg.Store.Seed = v.GetBool("store_seed")

	// Simulator
	cfg.Simulator.EmbedURLTemplate = v.GetString("simulator_embed_url_template")

	// CORS
	cfg.CORS.AllowOrigins = v.GetStringSlice("cors_allow_origins")

	// Rate limiting
	cfg.RateLimit.Enabled = v.GetBool("rate_limit_enabled")
	cfg.RateLimit.Max = v.GetInt("rate_limit_max")
	cfg.RateLimit.Window = v.GetDuration("rate_limit_window")

	// Redis
	cfg.Redis.Host = v.GetString("redis_host")
	cfg.Redis.Port = v.GetInt("redis_port")
	cfg.Redis.Password = v.GetString("redis_password")
	cfg.Redis.DB = v.GetInt("redis_db")

	// Sentry
	cfg.Sentry.Enabled = v.GetBool("sentry_enabled")
	cfg.Sentry.DSN = v.GetString("sentry_dsn")
	cfg.Sentry.Environment = v.GetString("sentry_environment")
	cfg.Sentry.Release = v.GetString("sentry_release")
	cfg.Sentry.Debug = v.GetBool("sentry_debug")
	cfg.Sentry.SampleRate = v.GetFloat64("sentry_sample_rate")
	cfg.Sentry.TracesSampleRate = v.GetFloat64("sentry_traces_sample_rate")

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", 8080)
	v.SetDefault("server_env", "development")
	v.SetDefault("server_base_path", "/api")
	v.SetDefault("server_read_timeout", "30s")
	v.SetDefault("server_write_timeout", "30s")
	v.SetDefault("server_shutdown_timeout", "30s")

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// Store defaults
	v.SetDefault("store_id_strategy", IDStrategySequence)
	v.SetDefault("store_seed", true)

	// Simulator defaults
	v.SetDefault("simulator_embed_url_template", domain.DefaultEmbedURLTemplate)

	// CORS defaults
	v.SetDefault("cors_allow_origins", []string{"*"})

	// Rate limiting defaults
	v.SetDefault("rate_limit_enabled", false)
	v.SetDefault("rate_limit_max", 100)
	v.SetDefault("rate_limit_window", "1m")

	// Redis defaults
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", 6379)
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	// Sentry defaults
	v.SetDefault("sentry_enabled", false)
	v.SetDefault("sentry_sample_rate", 1.0)
	v.SetDefault("sentry_traces_sample_rate", 0.1)
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	switch cfg.Store.IDStrategy {
	case IDStrategySequence, IDStrategyLength:
	default:
		return fmt.Errorf("unknown store id strategy %q", cfg.Store.IDStrategy)
	}
	if !strings.Contains(cfg.Simulator.EmbedURLTemplate, domain.EmbedPlaceholder) {
		return fmt.Errorf("simulator embed url template must contain %s", domain.EmbedPlaceholder)
	}
	if cfg.RateLimit.Enabled && (cfg.RateLimit.Max <= 0 || cfg.RateLimit.Window <= 0) {
		return fmt.Errorf("rate limit needs a positive max and window")
	}
	return nil
}
