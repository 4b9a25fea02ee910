package protocol

import "fmt"

// Error is a simple error type for protocol errors.
// It allows defining sentinel errors as constants.
type Error string

// Error implements the error interface.
func (e Error) Error() string { return string(e) }

// Sentinel errors for common registry operations.
var (
	// ErrNilHandler is returned when attempting to register a nil handler.
	ErrNilHandler = Error("handler cannot be nil")

	// ErrEmptyProtocol is returned when a handler reports an empty protocol.
	ErrEmptyProtocol = Error("handler protocol cannot be empty")

	// ErrReconfigureUnsupported is returned by handlers that cannot apply
	// configuration changes at runtime. The registry propagates it
	// unchanged so callers can distinguish "unsupported" from failure.
	ErrReconfigureUnsupported = Error("live reconfiguration is not supported by this handler")
)

// ProtocolNotFoundError is returned when an operation references a protocol
// that was never registered.
type ProtocolNotFoundError struct {
	Protocol Protocol
}

func (e *ProtocolNotFoundError) Error() string {
	return fmt.Sprintf("protocol not registered: %s", e.Protocol)
}

// ProtocolDisabledError is returned when dispatching to a protocol that is
// registered but currently disabled.
type ProtocolDisabledError struct {
	Protocol Protocol
}

func (e *ProtocolDisabledError) Error() string {
	return fmt.Sprintf("protocol is disabled: %s", e.Protocol)
}

// ValidationError tags a handler-reported misconfiguration with the
// offending protocol.
type ValidationError struct {
	Protocol Protocol
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("handler validation failed for %s: %v", e.Protocol, e.Err)
}

// Unwrap returns the underlying handler error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
