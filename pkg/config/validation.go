package config

import (
	"fmt"
	"strings"
)

// SchemaValidationError represents a single config validation error.
type SchemaValidationError struct {
	Path    string // Config path, e.g., "fixtures[0].protocol"
	Message string
}

func (e SchemaValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// SchemaValidationResult contains all validation errors for a Config.
type SchemaValidationResult struct {
	Errors []SchemaValidationError
}

// IsValid returns true if there are no validation errors.
func (r *SchemaValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Error returns a combined error message.
func (r *SchemaValidationResult) Error() string {
	if r.IsValid() {
		return ""
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// AddError adds a validation error.
func (r *SchemaValidationResult) AddError(path, message string) {
	r.Errors = append(r.Errors, SchemaValidationError{Path: path, Message: message})
}

// Validate checks the whole Config and collects every error rather than
// stopping at the first, so a config file round-trips in one edit.
func (c *Config) Validate() *SchemaValidationResult {
	result := &SchemaValidationResult{}

	if c.Version == "" {
		result.AddError("version", "required")
	} else if c.Version != "1" {
		result.AddError("version", fmt.Sprintf("unsupported version %q, expected \"1\"", c.Version))
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		result.AddError("logging.level", fmt.Sprintf("unknown level %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		result.AddError("logging.format", fmt.Sprintf("unknown format %q", c.Logging.Format))
	}

	for proto := range c.Protocols {
		if !proto.Valid() {
			result.AddError(fmt.Sprintf("protocols.%s", proto), "unknown protocol")
		}
	}

	for i, f := range c.Fixtures {
		if f == nil {
			result.AddError(fmt.Sprintf("fixtures[%d]", i), "fixture is empty")
			continue
		}
		if err := f.Validate(); err != nil {
			result.AddError(fmt.Sprintf("fixtures[%d]", i), err.Error())
		}
	}

	return result
}
