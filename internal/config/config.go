// Package config loads service configuration from environment variables and
// an optional config file.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds everything the binaries need to wire up the service.
type Config struct {
	Port      string `mapstructure:"port"`
	ProjectID string `mapstructure:"project_id"`
	Dataset   string `mapstructure:"dataset"`

	// Bucket is the GCS bucket receiving ledger CSV exports. Empty
	// disables the export endpoints.
	Bucket string `mapstructure:"bucket"`

	// ForecastHorizon is the default number of months the spending
	// forecast extrapolates.
	ForecastHorizon int `mapstructure:"forecast_horizon"`
}

// Load reads configuration from UPI_* environment variables, plus the given
// config file when the path is non-empty.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("project_id", "upi-tracker")
	v.SetDefault("dataset", "upi")
	v.SetDefault("bucket", "")
	v.SetDefault("forecast_horizon", 3)

	v.SetEnvPrefix("UPI")
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
