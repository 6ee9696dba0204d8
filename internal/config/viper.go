package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		// Directory holds one subdirectory per condominium with the raw
		// record CSV collections.
		Directory string `mapstructure:"directory" yaml:"directory"`
		// SnapshotDirectory holds the persisted statement snapshots.
		SnapshotDirectory string `mapstructure:"snapshot_directory" yaml:"snapshot_directory"`
	} `mapstructure:"data" yaml:"data"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Reconcile struct {
		// AmountTolerance is the maximum absolute difference between a bank
		// movement and an app payment that still counts as a match.
		AmountTolerance string `mapstructure:"amount_tolerance" yaml:"amount_tolerance"`
		// ReferenceLength is how many trailing characters of a reference
		// are compared.
		ReferenceLength int `mapstructure:"reference_length" yaml:"reference_length"`
	} `mapstructure:"reconcile" yaml:"reconcile"`
}

// CSVDelimiter returns the configured delimiter as a rune for the CSV
// readers and writers. Validation guarantees a single character; an unset
// value falls back to a comma.
func (c *Config) CSVDelimiter() rune {
	if c.CSV.Delimiter == "" {
		return ','
	}
	return []rune(c.CSV.Delimiter)[0]
}

// InitializeConfig builds the configuration from defaults, an optional
// config.yaml and ELVALLE_* environment variables, in that order of precedence.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.elvalle")
	v.AddConfigPath(".elvalle")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ELVALLE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Keep going with defaults and env vars.
			Logger.Warnf("Error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", "data")
	v.SetDefault("data.snapshot_directory", "data/snapshots")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("reconcile.amount_tolerance", "0.01")
	v.SetDefault("reconcile.reference_length", 6)
}

func validateConfig(config *Config) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(config.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(config.Log.Format)] {
		return fmt.Errorf("invalid log format: %s", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got %q", config.CSV.Delimiter)
	}

	if config.Reconcile.ReferenceLength <= 0 {
		return fmt.Errorf("reconcile reference length must be positive, got %d", config.Reconcile.ReferenceLength)
	}

	return nil
}
