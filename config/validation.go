package config

import "fmt"

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable before the server
// starts. Missing secrets fail fast here instead of on the first request.
func ValidateConfig(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return ValidationError{Field: "JWT_SECRET", Message: "must not be empty"}
	}
	if len(cfg.JWTSecret) < 16 {
		return ValidationError{Field: "JWT_SECRET", Message: "must be at least 16 characters"}
	}
	if cfg.DBHost == "" {
		return ValidationError{Field: "DB_HOST", Message: "must not be empty"}
	}
	if cfg.DBName == "" {
		return ValidationError{Field: "DB_NAME", Message: "must not be empty"}
	}
	if cfg.ServerPort == "" {
		return ValidationError{Field: "SERVER_PORT", Message: "must not be empty"}
	}
	if cfg.MutationRateLimit < 0 {
		return ValidationError{Field: "MUTATION_RATE_LIMIT", Message: "must not be negative"}
	}
	return nil
}
