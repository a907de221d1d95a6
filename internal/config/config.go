package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	Department    string `mapstructure:"department" yaml:"department"`
	AnalysisFocus string `mapstructure:"analysis_focus" yaml:"analysis_focus"`

	// Ingestion
	HasHeaders         bool   `mapstructure:"has_headers" yaml:"has_headers"`
	Delimiter          string `mapstructure:"delimiter" yaml:"delimiter"`
	DecimalSeparator   string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	ThousandsSeparator string `mapstructure:"thousands_separator" yaml:"thousands_separator"`
	MaxBytes           int64  `mapstructure:"max_bytes" yaml:"max_bytes"`
	MaxRows            int    `mapstructure:"max_rows" yaml:"max_rows"`
	MaxColumns         int    `mapstructure:"max_columns" yaml:"max_columns"`

	// Pipeline
	Workers        int `mapstructure:"workers" yaml:"workers"`
	TimeoutSec     int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
	TrendMinValues int `mapstructure:"trend_min_values" yaml:"trend_min_values"`

	// Output
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
	OutputDir    string `mapstructure:"output_dir" yaml:"output_dir"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"department", "analysis_focus",
	"has_headers", "delimiter", "decimal_separator", "thousands_separator",
	"max_bytes", "max_rows", "max_columns",
	"workers", "timeout_sec", "trend_min_values",
	"output_format", "output_dir",
	"log_level", "log_format",
}

// DefaultPath returns ~/.insightloom/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".insightloom", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.insightloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("department", "general")
	v.SetDefault("analysis_focus", "general")
	v.SetDefault("has_headers", true)
	v.SetDefault("delimiter", "")
	v.SetDefault("decimal_separator", "")
	v.SetDefault("thousands_separator", "")
	v.SetDefault("max_bytes", 10<<20)
	v.SetDefault("max_rows", 1000000)
	v.SetDefault("max_columns", 500)
	v.SetDefault("workers", 4)
	v.SetDefault("timeout_sec", 60)
	v.SetDefault("trend_min_values", 10)
	v.SetDefault("output_format", "json")
	v.SetDefault("output_dir", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by callers.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("INSIGHTLOOM")
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(p))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		// an explicit --config path that does not exist surfaces as *fs.PathError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Set assigns one key from its string form. Unknown keys are rejected.
func (c *Global) Set(key, value string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys, ", "))
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	var current map[string]any
	if err := yaml.Unmarshal(b, &current); err != nil {
		return fmt.Errorf("unmarshal yaml: %w", err)
	}
	v := viper.New()
	if err := v.MergeConfigMap(current); err != nil {
		return fmt.Errorf("merge config: %w", err)
	}
	v.Set(key, value)
	var out Global
	if err := v.Unmarshal(&out); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*c = out
	return nil
}
