// Package config provides configuration loading, validation, and management
// for the crawler. It handles reading from an optional YAML file, NEEDLE_*
// environment variables, and a .env file for the judgment service credential.
package config

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Config defines the runtime parameters for an analysis run. The Gemini
// credential is the only required value; everything else has a default.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger"`
	Gemini GeminiConfig `mapstructure:"gemini"`
	Report ReportConfig `mapstructure:"report"`

	// WindowSize is how many messages after each question are inspected.
	WindowSize int `mapstructure:"window_size" validate:"gt=0"`

	// Threshold is the answer-likelihood cutoff phrased into the judgment
	// request. It does not gate anything locally.
	Threshold float64 `mapstructure:"threshold" validate:"min=0,max=1"`
}

// LoggerConfig controls log output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// GeminiConfig holds the judgment service settings.
type GeminiConfig struct {
	APIKey      string        `mapstructure:"api_key" validate:"required"`
	ModelName   string        `mapstructure:"model_name" validate:"required"`
	Temperature float32       `mapstructure:"temperature" validate:"min=0,max=2"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"min=1s,max=10m"`
	MaxAttempts int           `mapstructure:"max_attempts" validate:"gt=0"`
	RetryDelay  time.Duration `mapstructure:"retry_delay" validate:"gt=0"`
}

// ReportConfig holds output settings.
type ReportConfig struct {
	OutputDir string `mapstructure:"output_dir" validate:"required"`
}

// Validate checks the configuration against the struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
