package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Sampling defaults for sample-size planning.
	DefaultConfidence float64 `mapstructure:"default_confidence" yaml:"default_confidence"`
	DefaultPrecision  float64 `mapstructure:"default_precision" yaml:"default_precision"`
	DefaultPopulation int     `mapstructure:"default_population" yaml:"default_population"`

	// Dataset analysis.
	HistogramBins int `mapstructure:"histogram_bins" yaml:"histogram_bins"`
	SampleRows    int `mapstructure:"sample_rows" yaml:"sample_rows"`
	MaxRows       int `mapstructure:"max_rows" yaml:"max_rows"`

	PlansDir string `mapstructure:"plans_dir" yaml:"plans_dir"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.mvstat/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".mvstat")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
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

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("MVSTAT")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("default_confidence", 90.0)
	v.SetDefault("default_precision", 0.10)
	v.SetDefault("default_population", 0)
	v.SetDefault("histogram_bins", 10)
	v.SetDefault("sample_rows", 5)
	v.SetDefault("max_rows", 100000)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".mvstat")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// Resolve plans_dir default: ~/.mvstat/plans
	if c.PlansDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		c.PlansDir = filepath.Join(home, ".mvstat", "plans")
	}
	return &c, nil
}
