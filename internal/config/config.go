package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the collector run configuration.
type Config struct {
	Format      string        `mapstructure:"format"`
	Output      string        `mapstructure:"output"`
	LogLevel    string        `mapstructure:"log_level"`
	CPUInterval time.Duration `mapstructure:"cpu_interval"`
	GPUCommand  string        `mapstructure:"gpu_command"`
}

// Load reads configuration from file and environment. A missing default
// config file is not an error; an explicit one that cannot be read is.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("system-specs")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/system-specs")
	}

	v.SetDefault("format", "text")
	v.SetDefault("output", "system_specs")
	v.SetDefault("log_level", "warn")
	v.SetDefault("cpu_interval", "1s")
	v.SetDefault("gpu_command", "nvidia-smi")

	v.SetEnvPrefix("SPECS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.CPUInterval <= 0 {
		return nil, fmt.Errorf("cpu_interval must be positive, got %s", cfg.CPUInterval)
	}

	return &cfg, nil
}
