// Package config loads and validates the picograd CLI configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/picograd-ml/picograd/internal/scenario"
)

// Precision values.
const (
	Float32 = "float32"
	Float64 = "float64"
)

// Config is the CLI configuration.
type Config struct {
	// Precision is the element type of every graph the CLI builds.
	Precision string `yaml:"precision" validate:"required,oneof=float32 float64"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"required,oneof=debug info warn error"`
	// Tolerance is the absolute tolerance of scenario checks.
	Tolerance float64 `yaml:"tolerance" validate:"gt=0"`
	// Color is auto, always or never.
	Color string `yaml:"color" validate:"required,oneof=auto always never"`
	// Scenarios to run; empty means all.
	Scenarios []string `yaml:"scenarios" validate:"dive,scenario"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("scenario", validateScenario)
}

func validateScenario(fl validator.FieldLevel) bool {
	_, err := scenario.Describe(fl.Field().String())
	return err == nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Precision: Float64,
		LogLevel:  "warn",
		Tolerance: 1e-4,
		Color:     "auto",
	}
}

// Load reads the YAML file at path on top of Default and validates the
// result. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// ScenarioNames returns the configured scenarios, or all of them.
func (c Config) ScenarioNames() []string {
	if len(c.Scenarios) == 0 {
		return scenario.Names()
	}
	return c.Scenarios
}

// SlogLevel maps LogLevel to a slog.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errors.Join(fmt.Errorf("log level %q", c.LogLevel), err)
	}
	return level, nil
}
