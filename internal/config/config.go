// Package config manages application configuration from files and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration. Every value has a working
// default, so haulkit runs without a config file.
type Config struct {
	Sheet       string `mapstructure:"sheet" yaml:"sheet"`
	OutputSheet string `mapstructure:"output_sheet" yaml:"output_sheet"`

	Filter struct {
		Column string `mapstructure:"column" yaml:"column"`
	} `mapstructure:"filter" yaml:"filter"`

	Summary struct {
		Columns     []string `mapstructure:"columns" yaml:"columns"`
		GroupColumn string   `mapstructure:"group_column" yaml:"group_column"`
		LabelPrefix string   `mapstructure:"label_prefix" yaml:"label_prefix"`
	} `mapstructure:"summary" yaml:"summary"`

	Output struct {
		Format string `mapstructure:"format" yaml:"format"`
		Color  bool   `mapstructure:"color" yaml:"color"`
	} `mapstructure:"output" yaml:"output"`
}

// Load reads the configuration from ~/.haulkit/config.yaml and environment
// variables. A missing config file is not an error.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(Dir())

	setDefaults()

	viper.SetEnvPrefix("HAULKIT")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault returns the loaded configuration, falling back to the
// built-in defaults when loading fails. Commands use it to seed flag
// defaults, where a broken config file should not prevent --help.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		Sheet:       "Sheet1",
		OutputSheet: "FilteredData",
	}
	cfg.Filter.Column = "Truck"
	cfg.Summary.Columns = []string{"Rate", "Gross Pay", "Total"}
	cfg.Summary.GroupColumn = "Truck"
	cfg.Summary.LabelPrefix = "Total for "
	cfg.Output.Format = "text"
	cfg.Output.Color = true
	return cfg
}

func setDefaults() {
	viper.SetDefault("sheet", "Sheet1")
	viper.SetDefault("output_sheet", "FilteredData")
	viper.SetDefault("filter.column", "Truck")
	viper.SetDefault("summary.columns", []string{"Rate", "Gross Pay", "Total"})
	viper.SetDefault("summary.group_column", "Truck")
	viper.SetDefault("summary.label_prefix", "Total for ")
	viper.SetDefault("output.format", "text")
	viper.SetDefault("output.color", true)
}

// Dir returns the haulkit configuration directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".haulkit"
	}
	return filepath.Join(home, ".haulkit")
}

// Path returns the configuration file path.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Save writes cfg to the configuration file, creating the directory if
// needed.
func Save(cfg *Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("could not encode config: %w", err)
	}

	path := Path()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	return nil
}

// Set writes a single key into the config file through viper, preserving the
// other loaded values.
func Set(key, value string) error {
	viper.Set(key, value)
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return err
	}
	return Save(cfg)
}
