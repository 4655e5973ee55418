package config

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
	file   string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// WithFile adds a YAML file between the defaults and the environment.
func (l *Loader) WithFile(path string) *Loader {
	l.file = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the config file, if any
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if l.file != "" {
		if err := l.config.LoadFile(l.file); err != nil {
			return nil, err
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Picker overrides
	Use24Hour        *bool
	AllowSeconds     *bool
	Masked           *bool
	AllowInvalidTime *bool
	ShowNow          *bool
	ShowHourOptions  *bool
	Step             *int
	Min              *string
	Max              *string
	StartTime        *string
	RestrictedTimes  *[]string

	// Output overrides
	OutputFormat *string

	// Application overrides
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.Use24Hour != nil {
		config.Picker.Use24Hour = *overrides.Use24Hour
	}
	if overrides.AllowSeconds != nil {
		config.Picker.AllowSeconds = *overrides.AllowSeconds
	}
	if overrides.Masked != nil {
		config.Picker.Masked = *overrides.Masked
	}
	if overrides.AllowInvalidTime != nil {
		config.Picker.AllowInvalidTime = *overrides.AllowInvalidTime
	}
	if overrides.ShowNow != nil {
		config.Picker.ShowNow = *overrides.ShowNow
	}
	if overrides.ShowHourOptions != nil {
		config.Picker.ShowHourOptions = *overrides.ShowHourOptions
	}
	if overrides.Step != nil {
		config.Picker.Step = *overrides.Step
	}
	if overrides.Min != nil {
		config.Picker.Min = *overrides.Min
	}
	if overrides.Max != nil {
		config.Picker.Max = *overrides.Max
	}
	if overrides.StartTime != nil {
		config.Picker.StartTime = *overrides.StartTime
	}
	if overrides.RestrictedTimes != nil {
		config.Picker.RestrictedTimes = append([]string(nil), (*overrides.RestrictedTimes)...)
	}

	if overrides.OutputFormat != nil {
		config.Output.Format = *overrides.OutputFormat
	}

	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}
