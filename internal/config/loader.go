package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load builds the configuration from, in increasing precedence:
// 1. built-in defaults
// 2. an optional config.yaml in the working directory
// 3. NEEDLE_* environment variables (a .env file is read first if present)
//
// The Gemini API key is usually supplied as NEEDLE_GEMINI_API_KEY; the bare
// GEMINI_API_KEY variable is accepted as a fallback for convenience.
func Load() (*Config, error) {
	// Load .env before viper inspects the environment. A missing file is fine.
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded environment from .env file")
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("NEEDLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		slog.Debug("config file not found, using defaults")
	} else {
		slog.Debug("config file loaded", "path", v.ConfigFileUsed())
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = v.GetString("gemini_api_key_fallback")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", false)

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-2.0-flash")
	v.SetDefault("gemini.temperature", 0.0)
	v.SetDefault("gemini.timeout", 2*time.Minute)
	v.SetDefault("gemini.max_attempts", 3)
	v.SetDefault("gemini.retry_delay", 500*time.Millisecond)

	v.SetDefault("report.output_dir", "output")

	v.SetDefault("window_size", 20)
	v.SetDefault("threshold", 0.99)

	// The bare variable the genai ecosystem conventionally sets.
	_ = v.BindEnv("gemini_api_key_fallback", "GEMINI_API_KEY")
}
