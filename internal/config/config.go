// Package config provides configuration management for the draw-odds application.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Draw     DrawConfig     `mapstructure:"draw" validate:"required"`
	Sources  SourcesConfig  `mapstructure:"sources" validate:"required"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	AWS      AWSConfig      `mapstructure:"aws"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DrawConfig is the estimation policy: which group and unit are being
// modelled, how many early drawers other pools absorb, and how room types
// translate into spots.
type DrawConfig struct {
	Group          string         `mapstructure:"group" validate:"required"`
	ScarceUnit     string         `mapstructure:"scarce_unit" validate:"required"`
	ScarceRoomType string         `mapstructure:"scarce_room_type" validate:"required"`
	CrossPoolTopN  int            `mapstructure:"cross_pool_top_n" validate:"required,gt=0"`
	Occupancy      map[string]int `mapstructure:"occupancy" validate:"required,min=1,occupancy"`
}

// SourcesConfig locates the input lists. Each reference is either a glob
// pattern resolved inside DataDir or an http(s) URL.
type SourcesConfig struct {
	DataDir            string   `mapstructure:"data_dir" validate:"required"`
	Primary            string   `mapstructure:"primary" validate:"required"`
	Rooms              string   `mapstructure:"rooms"`
	SubPool            string   `mapstructure:"sub_pool"`
	AuxPools           []string `mapstructure:"aux_pools"`
	HTTPTimeoutSeconds int      `mapstructure:"http_timeout_seconds" validate:"gte=0"`
	HTTPRetryMax       int      `mapstructure:"http_retry_max" validate:"gte=0"`
	HTTPRateLimit      float64  `mapstructure:"http_rate_limit" validate:"gte=0"`
}

// SnapshotConfig controls the result sinks.
type SnapshotConfig struct {
	FileEnabled           bool    `mapstructure:"file_enabled"`
	FilePath              string  `mapstructure:"file_path"`
	PublishEnabled        bool    `mapstructure:"publish_enabled"`
	PublishURL            string  `mapstructure:"publish_url" validate:"omitempty,url"`
	PublishToken          string  `mapstructure:"publish_token"`
	PublishTimeoutSeconds int     `mapstructure:"publish_timeout_seconds" validate:"gte=0"`
	PublishRetryMax       int     `mapstructure:"publish_retry_max" validate:"gte=0"`
	PublishRateLimit      float64 `mapstructure:"publish_rate_limit" validate:"gte=0"`
}

// ServerConfig represents the HTTP service configuration
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	CacheTTLSeconds        int    `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
	RefreshSchedule        string `mapstructure:"refresh_schedule"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// DatabaseConfig represents database connection configuration. Persistence
// is optional; when Enabled is false the rest of the section is ignored.
type DatabaseConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"omitempty,gt=0"`
}

// AWSConfig represents the optional Secrets Manager overlay
type AWSConfig struct {
	SecretsEnabled bool   `mapstructure:"secrets_enabled"`
	Region         string `mapstructure:"region"`
	SecretName     string `mapstructure:"secret_name"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// HTTPTimeout returns the row source fetch timeout
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.Sources.HTTPTimeoutSeconds) * time.Second
}

// PublishTimeout returns the snapshot publish timeout
func (c *Config) PublishTimeout() time.Duration {
	return time.Duration(c.Snapshot.PublishTimeoutSeconds) * time.Second
}

// CacheTTL returns the server-side estimate cache lifetime
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Server.CacheTTLSeconds) * time.Second
}

// ShutdownTimeout returns how long the server waits for in-flight requests
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}
