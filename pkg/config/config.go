// Package config provides a reusable loader for kernel configuration files
// and environment variables. It is versioned so that applications can depend
// on a stable API contract.
//
// Version: v0.1.0
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/oerc-s/primordia/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config is the unified configuration for a kernel node. It mirrors the
// structure of the YAML files under cmd/config.
type Config struct {
	Server struct {
		ListenAddr string `mapstructure:"listen_addr" json:"listen_addr" yaml:"listen_addr"`
	} `mapstructure:"server" json:"server" yaml:"server"`

	Epoch struct {
		DurationMs int64 `mapstructure:"duration_ms" json:"duration_ms" yaml:"duration_ms"`
	} `mapstructure:"epoch" json:"epoch" yaml:"epoch"`

	Solvency struct {
		DefaultRunwayThresholdSeconds float64 `mapstructure:"default_runway_threshold_seconds" json:"default_runway_threshold_seconds" yaml:"default_runway_threshold_seconds"`
	} `mapstructure:"solvency" json:"solvency" yaml:"solvency"`

	Arbiter struct {
		AgentID string `mapstructure:"agent_id" json:"agent_id" yaml:"agent_id"`
	} `mapstructure:"arbiter" json:"arbiter" yaml:"arbiter"`

	Logging struct {
		Level string `mapstructure:"level" json:"level" yaml:"level"`
		File  string `mapstructure:"file" json:"file" yaml:"file"`
	} `mapstructure:"logging" json:"logging" yaml:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment specific
// overrides. The resulting configuration is stored in AppConfig and returned.
//
// The function uses the provided environment name to merge additional config
// files. If env is empty, only the default configuration is loaded.
func Load(env string) (*Config, error) {
	// .env values become process environment before viper reads it, so a
	// locally checked-in .env can seed PRIMORDIA_* overrides without the
	// caller exporting anything.
	_ = godotenv.Load()

	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.SetEnvPrefix("primordia")
	viper.AutomaticEnv()

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the PRIMORDIA_ENV environment
// variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("PRIMORDIA_ENV", ""))
}
