// Package config provides configuration management for the draw-odds application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	// Read the configuration file
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	// Create a new viper instance
	v := viper.New()
	v.SetConfigType("yaml")

	// Read the expanded configuration
	if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set environment variable prefix
	v.SetEnvPrefix("DRAW_ODDS")

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal configuration into Config struct
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional
// fields, so the estimator runs without any config file at all. It expands
// environment variable placeholders in the YAML file (${VAR_NAME})
func LoadWithDefaults(configPath string) (*Config, error) {
	v := viper.New()

	// Set configuration file path with default
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix("DRAW_ODDS")

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// Read and expand the configuration file if it exists
	if data, err := os.ReadFile(configPath); err == nil {
		// Expand environment variables in the configuration (${VAR} syntax)
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If file doesn't exist, continue with defaults and environment variables

	// Unmarshal configuration into Config struct
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults registers the full default set. The source patterns follow the
// registrar's export naming, which stamps the draw year into the file name.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "draw-odds")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("draw.group", "upperclass")
	v.SetDefault("draw.scarce_unit", "spelman")
	v.SetDefault("draw.scarce_room_type", "SINGLE")
	v.SetDefault("draw.cross_pool_top_n", 50)
	v.SetDefault("draw.occupancy", map[string]int{
		"SINGLE":  1,
		"DOUBLE":  2,
		"TRIPLE":  3,
		"QUAD":    4,
		"QUINT":   5,
		"6PERSON": 6,
	})

	v.SetDefault("sources.data_dir", ".")
	v.SetDefault("sources.primary", "UpperclassTimeOrder*.csv")
	v.SetDefault("sources.rooms", "AvailableRoomsList*.csv")
	v.SetDefault("sources.sub_pool", "SpelmanTimeOrder*.csv")
	v.SetDefault("sources.http_timeout_seconds", 30)
	v.SetDefault("sources.http_retry_max", 3)
	v.SetDefault("sources.http_rate_limit", 5.0)

	v.SetDefault("snapshot.file_enabled", false)
	v.SetDefault("snapshot.file_path", "draw_snapshot.json")
	v.SetDefault("snapshot.publish_enabled", false)
	v.SetDefault("snapshot.publish_timeout_seconds", 15)
	v.SetDefault("snapshot.publish_retry_max", 3)
	v.SetDefault("snapshot.publish_rate_limit", 1.0)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cache_ttl_seconds", 300)
	v.SetDefault("server.refresh_schedule", "0 */6 * * *")
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_idle_connections", 5)
}

// ReloadFromEnv reloads specific configuration values from environment variables
func ReloadFromEnv(cfg *Config) error {
	// Check for a redirected config path and reload wholesale
	if envPath := os.Getenv("DRAW_ODDS_CONFIG_PATH"); envPath != "" {
		newCfg, err := Load(envPath)
		if err != nil {
			return err
		}
		*cfg = *newCfg
	}

	return nil
}
