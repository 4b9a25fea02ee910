package fixture

import (
	"fmt"

	"github.com/mockforge/mockforge/internal/matching"
)

// ValidationError represents a validation failure with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Message)
}

// Validate checks that the fixture is well formed: a known protocol, a
// compilable body pattern and condition, and a sane status code. Called by
// the store on insert so broken fixtures never reach the matching hot path.
func (f *Fixture) Validate() error {
	if f.Protocol == "" {
		return &ValidationError{Field: "protocol", Message: "protocol is required"}
	}
	if !f.Protocol.Valid() {
		return &ValidationError{Field: "protocol", Message: fmt.Sprintf("unknown protocol: %s", f.Protocol)}
	}

	if err := matching.ValidateBodyPattern(f.Request.BodyPattern); err != nil {
		return &ValidationError{Field: "request.bodyPattern", Message: err.Error()}
	}

	if f.Request.Condition != "" {
		if err := conditions.Validate(f.Request.Condition); err != nil {
			return &ValidationError{Field: "request.condition", Message: err.Error()}
		}
	}

	if f.Request.QoS != nil && *f.Request.QoS > 2 {
		return &ValidationError{Field: "request.qos", Message: "qos must be 0, 1, or 2"}
	}

	if f.Response.Status < 0 {
		return &ValidationError{Field: "response.status", Message: "status cannot be negative"}
	}
	if f.Response.DelayMs < 0 {
		return &ValidationError{Field: "response.delayMs", Message: "delayMs cannot be negative"}
	}

	return nil
}
