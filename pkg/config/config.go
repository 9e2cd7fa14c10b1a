// Package config provides configuration management for the psgraph pipeline.
package config

import (
	"bytes"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Parallel ParallelConfig `mapstructure:"parallel"`
	Log      LogConfig      `mapstructure:"log"`
}

// ParallelConfig holds the fork-join tuning knobs used by the Orchestrator.
type ParallelConfig struct {
	// Workers is the fixed worker count P used to partition every
	// parallel-for region (PrefixSum, ListRanking, Orchestrator phases).
	Workers int `mapstructure:"workers"`

	// MemoryProfile switches the CLI's final report line from the timing
	// format to a runtime.MemStats-based memory report.
	MemoryProfile bool `mapstructure:"memory_profile"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// Load reads configuration from the specified file path. A missing file is
// not an error: the pipeline runs fine on defaults, since the core itself
// takes no configuration at all (only the CLI harness consults this package).
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("psgraph")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/psgraph")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// no config file anywhere on the search path, use defaults
		} else if os.IsNotExist(err) {
			// file explicitly named but absent, use defaults
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadFromReader loads configuration from raw bytes (useful for testing).
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("parallel.workers", runtime.NumCPU())
	v.SetDefault("parallel.memory_profile", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Parallel.Workers < 1 {
		return fmt.Errorf("parallel.workers must be at least 1")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %s", c.Log.Format)
	}
	return nil
}
