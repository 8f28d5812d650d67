package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/Iron-Ham/filterlines/internal/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "logging.level")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels, in the lower case
// used by the config file
func ValidLogLevels() []string {
	levels := logging.ValidLevels()
	for i, level := range levels {
		levels[i] = strings.ToLower(level)
	}
	return levels
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validatePreferences()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validatePreferences validates the search preferences. The latest search is
// not checked: it is only ever offered as editable prompt text.
func (c *Config) validatePreferences() []ValidationError {
	var errors []ValidationError

	if c.DefaultCustomSeparator != "" {
		if _, err := regexp.Compile(c.DefaultCustomSeparator); err != nil {
			errors = append(errors, ValidationError{
				Field:   KeyDefaultCustomSeparator,
				Value:   c.DefaultCustomSeparator,
				Message: fmt.Sprintf("must be a valid regular expression: %v", err),
			})
		}
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   KeyLoggingLevel,
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
