// Package config loads mitoolbox settings from defaults, an optional config
// file and MITOOLBOX_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. MITOOLBOX_BASE.
const EnvPrefix = "MITOOLBOX"

// Selection configures the select command.
type Selection struct {
	Criterion string `mapstructure:"criterion" json:"criterion"`
	Count     int    `mapstructure:"count" json:"count"`
	Workers   int    `mapstructure:"workers" json:"workers"`
	// Beta and Gamma weight the redundancy terms of the betagamma criterion.
	Beta  float64 `mapstructure:"beta" json:"beta"`
	Gamma float64 `mapstructure:"gamma" json:"gamma"`
}

// Chart configures rendered HTML charts.
type Chart struct {
	Output string `mapstructure:"output" json:"output"`
	Title  string `mapstructure:"title" json:"title"`
}

// Bench configures the timing harness.
type Bench struct {
	Sizes  []int `mapstructure:"sizes" json:"sizes"`
	States []int `mapstructure:"states" json:"states"`
	Trials int   `mapstructure:"trials" json:"trials"`
	Warmup bool  `mapstructure:"warmup" json:"warmup"`
}

// Config holds every setting used by the commands.
type Config struct {
	// Delimiter separates fields in dataset files.
	Delimiter string `mapstructure:"delimiter" json:"delimiter"`
	// Header marks the first dataset row as column names.
	Header bool `mapstructure:"header" json:"header"`
	// LabelColumn is the label column index; -1 is the last column.
	LabelColumn int `mapstructure:"label_column" json:"label_column"`
	// Base is the logarithm base for entropy and information.
	Base float64 `mapstructure:"base" json:"base"`
	// Debug enables debug logging and config dumps.
	Debug bool `mapstructure:"debug" json:"debug"`

	Selection Selection `mapstructure:"selection" json:"selection"`
	Chart     Chart     `mapstructure:"chart" json:"chart"`
	Bench     Bench     `mapstructure:"bench" json:"bench"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("delimiter", "\t")
	v.SetDefault("header", false)
	v.SetDefault("label_column", -1)
	v.SetDefault("base", 2.0)
	v.SetDefault("debug", false)
	v.SetDefault("selection.criterion", "mim")
	v.SetDefault("selection.count", 5)
	v.SetDefault("selection.workers", 0)
	v.SetDefault("selection.beta", 1.0)
	v.SetDefault("selection.gamma", 1.0)
	v.SetDefault("chart.output", "pmf.html")
	v.SetDefault("chart.title", "")
	v.SetDefault("bench.sizes", []int{1_000, 10_000, 100_000})
	v.SetDefault("bench.states", []int{2, 16, 256})
	v.SetDefault("bench.trials", 5)
	v.SetDefault("bench.warmup", true)
}

// New returns a viper instance with defaults and environment overrides.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path, if any, on top of defaults and the
// environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper decodes and validates the settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	if c.Base <= 0 || c.Base == 1 {
		return fmt.Errorf("log base must be positive and not 1, got %v", c.Base)
	}
	if c.Selection.Count < 0 {
		return errors.New("selection count must not be negative")
	}
	if c.Bench.Trials < 1 {
		return errors.New("bench trials must be at least 1")
	}
	for _, n := range c.Bench.Sizes {
		if n < 1 {
			return fmt.Errorf("bench size %d must be positive", n)
		}
	}
	for _, k := range c.Bench.States {
		if k < 1 {
			return fmt.Errorf("bench state count %d must be positive", k)
		}
	}
	return nil
}
