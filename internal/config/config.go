package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"time-picker/internal/timeofday"
	"time-picker/internal/validation"
)

// EnvPrefix prefixes every environment variable, e.g. TP_PICKER_STEP.
const EnvPrefix = "TP"

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Config holds all configuration options for the time picker tool
type Config struct {
	Picker      PickerConfig      `yaml:"picker" envconfig:"PICKER"`
	Output      OutputConfig      `yaml:"output" envconfig:"OUTPUT"`
	Application ApplicationConfig `yaml:"application" envconfig:"APP"`
}

// PickerConfig holds the picker properties applied to every command
type PickerConfig struct {
	Use24Hour        bool     `yaml:"use_24_hour" envconfig:"USE_24_HOUR"`
	AllowSeconds     bool     `yaml:"allow_seconds" envconfig:"ALLOW_SECONDS"`
	Masked           bool     `yaml:"masked" envconfig:"MASKED"`
	AllowInvalidTime bool     `yaml:"allow_invalid_time" envconfig:"ALLOW_INVALID_TIME"`
	ShowNow          bool     `yaml:"show_now" envconfig:"SHOW_NOW"`
	ShowHourOptions  bool     `yaml:"show_hour_options" envconfig:"SHOW_HOUR_OPTIONS"`
	Step             int      `yaml:"step" envconfig:"STEP"`
	Min              string   `yaml:"min" envconfig:"MIN"`
	Max              string   `yaml:"max" envconfig:"MAX"`
	StartTime        string   `yaml:"start_time" envconfig:"START_TIME"`
	RestrictedTimes  []string `yaml:"restricted_times" envconfig:"RESTRICTED_TIMES"`
}

// OutputConfig holds output formatting configuration
type OutputConfig struct {
	Format string `yaml:"format" envconfig:"FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Verbose     bool        `yaml:"verbose" envconfig:"VERBOSE"`
	Environment Environment `yaml:"environment" envconfig:"ENV"`
	// FixedNow pins the clock in the testing environment (RFC 3339).
	FixedNow string `yaml:"fixed_now" envconfig:"FIXED_NOW"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Picker: PickerConfig{
			Masked:          true,
			ShowHourOptions: true,
			Step:            60,
		},
		Output: OutputConfig{
			Format: FormatTable,
		},
		Application: ApplicationConfig{
			Environment: Production,
		},
	}
}

// LoadFromEnvironment overrides fields whose TP_* variables are set
func (c *Config) LoadFromEnvironment() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return &ConfigError{Field: "environment", Message: err.Error()}
	}
	return nil
}

// LoadFile overrides fields present in a YAML file. Unknown keys are errors.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigError{Field: "config_file", Message: err.Error()}
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		return &ConfigError{Field: "config_file", Message: fmt.Sprintf("%s: %v", path, err)}
	}
	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	validator := validation.NewTimeValidator()

	if err := validator.ValidateStep(c.Picker.Step); err != nil {
		return &ConfigError{Field: "picker.step", Message: "step must be between 0 and 1440 minutes"}
	}

	bounds := make(map[string]*timeofday.TimeOfDay, 3)
	for field, value := range map[string]string{
		"picker.min":        c.Picker.Min,
		"picker.max":        c.Picker.Max,
		"picker.start_time": c.Picker.StartTime,
	} {
		t, err := validator.ParseTimeField(field, value, true)
		if err != nil {
			return &ConfigError{Field: field, Message: fmt.Sprintf("%q is not a HH:mm[:ss] time", value)}
		}
		bounds[field] = t
	}

	restricted := make([]timeofday.TimeOfDay, 0, len(c.Picker.RestrictedTimes))
	for _, value := range c.Picker.RestrictedTimes {
		t, err := validator.ParseTimeField("picker.restricted_times", value, true)
		if err != nil || t == nil {
			return &ConfigError{Field: "picker.restricted_times", Message: fmt.Sprintf("%q is not a HH:mm[:ss] time", value)}
		}
		restricted = append(restricted, *t)
	}

	constraints := validation.NewConstraints(bounds["picker.min"], bounds["picker.max"], restricted...)
	if err := validator.ValidateConstraints(constraints); err != nil {
		return &ConfigError{Field: "picker.min", Message: "min must not be later than max"}
	}

	switch c.Output.Format {
	case FormatTable, FormatJSON:
	default:
		return &ConfigError{Field: "output.format", Message: fmt.Sprintf("unsupported format %q (use table or json)", c.Output.Format)}
	}

	switch c.Application.Environment {
	case Development, Testing, Production:
	default:
		return &ConfigError{Field: "application.environment", Message: fmt.Sprintf("unknown environment %q", c.Application.Environment)}
	}

	if c.Application.FixedNow != "" {
		if _, err := time.Parse(time.RFC3339, c.Application.FixedNow); err != nil {
			return &ConfigError{Field: "application.fixed_now", Message: "fixed now must be an RFC 3339 timestamp"}
		}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
