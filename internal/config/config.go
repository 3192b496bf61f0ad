// Package config loads psytext settings from defaults, an optional YAML file
// and PSYTEXT_* environment variables.
package config

// Config holds all application configuration.
type Config struct {
	Output  OutputConfig  `mapstructure:"output" validate:"required"`
	Lexicon LexiconConfig `mapstructure:"lexicon"`
	Log     LogConfig     `mapstructure:"log" validate:"required"`
	Batch   BatchConfig   `mapstructure:"batch" validate:"required"`
}

// OutputConfig controls where and which output files are written.
type OutputConfig struct {
	Dir          string `mapstructure:"dir" validate:"required"`
	CSV          bool   `mapstructure:"csv"`
	ValidateJSON bool   `mapstructure:"validate_json"`
	Charts       bool   `mapstructure:"charts"`
}

// LexiconConfig points at optional lexicon files replacing or extending the
// bundled dictionary.
type LexiconConfig struct {
	BasePath      string `mapstructure:"base_path" validate:"omitempty,file"`
	OverridesPath string `mapstructure:"overrides_path" validate:"omitempty,file"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// BatchConfig bounds concurrent analyses in batch mode.
type BatchConfig struct {
	Workers int `mapstructure:"workers" validate:"required,min=1,max=64"`
}
