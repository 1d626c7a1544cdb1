// Package config provides configuration management for the draw-odds application.
package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Registration only fails on an empty tag name
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("occupancy", validateOccupancy)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	// Additional cross-field validations
	if err := validateCrossField(cfg); err != nil {
		return err
	}

	return nil
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	env := fl.Field().String()
	switch env {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateOccupancy validates the room-type occupancy map: keys must be
// non-empty and spot counts non-negative.
func validateOccupancy(fl validator.FieldLevel) bool {
	occupancy, ok := fl.Field().Interface().(map[string]int)
	if !ok {
		return false
	}

	for roomType, spots := range occupancy {
		if strings.TrimSpace(roomType) == "" {
			return false
		}
		if spots < 0 {
			return false
		}
	}
	return true
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	// The scarce room type must have an occupancy mapping, otherwise the
	// resolver could never count a scarce spot. Viper lower-cases map keys,
	// so the comparison ignores case.
	if !occupancyHasType(cfg.Draw.Occupancy, cfg.Draw.ScarceRoomType) {
		return fmt.Errorf("scarce_room_type '%s' has no entry in the occupancy map", cfg.Draw.ScarceRoomType)
	}

	// Validate the refresh schedule with the same parser the scheduler uses
	if cfg.Server.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Server.RefreshSchedule); err != nil {
			return fmt.Errorf("invalid server refresh_schedule: %w", err)
		}
	}

	// Validate snapshot sink settings
	if cfg.Snapshot.FileEnabled && cfg.Snapshot.FilePath == "" {
		return fmt.Errorf("snapshot file_path is required when file_enabled is true")
	}
	if cfg.Snapshot.PublishEnabled && cfg.Snapshot.PublishURL == "" {
		return fmt.Errorf("snapshot publish_url is required when publish_enabled is true")
	}

	// Validate database settings only when persistence is on
	if cfg.Database.Enabled {
		if cfg.Database.Host == "" || cfg.Database.Name == "" || cfg.Database.User == "" {
			return fmt.Errorf("database host, name and user are required when database is enabled")
		}
		if cfg.Database.MaxIdleConnections > cfg.Database.MaxConnections {
			return fmt.Errorf("max_idle_connections cannot exceed max_connections")
		}
		if cfg.IsProduction() && cfg.Database.SSLMode == "disable" {
			return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
		}
	}

	// Validate the secrets overlay settings
	if cfg.AWS.SecretsEnabled {
		if cfg.AWS.Region == "" || cfg.AWS.SecretName == "" {
			return fmt.Errorf("aws region and secret_name are required when secrets_enabled is true")
		}
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "url":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "occupancy":
			errMsg += fmt.Sprintf("- Field '%s' must map non-empty room types to non-negative spot counts\n", field)
		case "oneof":
			errMsg += fmt.Sprintf("- Field '%s' has invalid value '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}

// ValidateEnvironment validates environment-specific requirements
func ValidateEnvironment(cfg *Config) error {
	if cfg.IsProduction() {
		// Production must not run on placeholder credentials
		if cfg.Snapshot.PublishEnabled && isTestCredential(cfg.Snapshot.PublishToken) {
			return fmt.Errorf("production environment should not use a placeholder publish token")
		}
		if cfg.Database.Enabled && isTestCredential(cfg.Database.Password) {
			return fmt.Errorf("production environment should not use a placeholder database password")
		}
	}

	return nil
}

// occupancyHasType reports whether the occupancy map contains the room type,
// comparing case-insensitively and ignoring surrounding whitespace.
func occupancyHasType(occupancy map[string]int, roomType string) bool {
	want := strings.TrimSpace(roomType)
	for mapped := range occupancy {
		if strings.EqualFold(strings.TrimSpace(mapped), want) {
			return true
		}
	}
	return false
}

// isTestCredential checks if a credential looks like a test credential
func isTestCredential(credential string) bool {
	testPatterns := []string{
		"test", "demo", "example", "placeholder", "YOUR_",
	}

	for _, pattern := range testPatterns {
		if match, _ := regexp.MatchString("(?i)"+pattern, credential); match {
			return true
		}
	}

	return false
}
