// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Database struct {
		DSN string `mapstructure:"dsn" yaml:"-"` // Never serialize the DSN
	} `mapstructure:"database" yaml:"database"`

	Server struct {
		Addr string `mapstructure:"addr" yaml:"addr"`
	} `mapstructure:"server" yaml:"server"`

	Categorization struct {
		DefaultCategory string `mapstructure:"default_category" yaml:"default_category"`
	} `mapstructure:"categorization" yaml:"categorization"`

	Parsers struct {
		PayPay struct {
			FallbackSource string `mapstructure:"fallback_source" yaml:"fallback_source"`
		} `mapstructure:"paypay" yaml:"paypay"`
		SMBC struct {
			FallbackSource string `mapstructure:"fallback_source" yaml:"fallback_source"`
		} `mapstructure:"smbc" yaml:"smbc"`
	} `mapstructure:"parsers" yaml:"parsers"`

	Rules struct {
		SeedFile string `mapstructure:"seed_file" yaml:"seed_file"`
	} `mapstructure:"rules" yaml:"rules"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.moneyflow")
	v.AddConfigPath(".moneyflow")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("MONEYFLOW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
		// Config file not found or invalid is OK, we'll use defaults and env vars
	}

	// 5. The database DSN commonly arrives via the conventional unprefixed var
	if err := v.BindEnv("database.dsn", "DATABASE_URL", "MONEYFLOW_DATABASE_DSN"); err != nil {
		fmt.Printf("Warning: failed to bind DATABASE_URL environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Database defaults
	v.SetDefault("database.dsn", "host=localhost user=moneyflow password=moneyflow dbname=moneyflow port=5432 sslmode=disable")

	// Server defaults
	v.SetDefault("server.addr", ":8000")

	// Categorization defaults
	v.SetDefault("categorization.default_category", "Uncategorized")

	// Parser fallback labels used when a file carries no usable source field
	v.SetDefault("parsers.paypay.fallback_source", "PayPay")
	v.SetDefault("parsers.smbc.fallback_source", "SMBC Card")

	// Rule seed list
	v.SetDefault("rules.seed_file", "database/rules.yaml")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}

	if config.Categorization.DefaultCategory == "" {
		return fmt.Errorf("categorization.default_category must not be empty")
	}

	if config.Parsers.PayPay.FallbackSource == "" {
		return fmt.Errorf("parsers.paypay.fallback_source must not be empty")
	}
	if config.Parsers.SMBC.FallbackSource == "" {
		return fmt.Errorf("parsers.smbc.fallback_source must not be empty")
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	// Parse and set log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Configure log format
	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
