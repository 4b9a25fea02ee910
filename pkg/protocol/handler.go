package protocol

import (
	"context"
)

// Handler is the contract every concrete protocol implementation must
// satisfy to plug into the Registry. One handler instance is shared across
// all concurrent dispatches, so implementations must be safe for concurrent
// use and must synchronize any internal mutable state themselves.
//
// HandleRequest is the only method permitted to block on I/O. Handlers must
// never panic on malformed input; they return an error instead.
type Handler interface {
	// Protocol returns the protocol this handler serves.
	Protocol() Protocol

	// IsEnabled reports the handler's own enabled state. The registry
	// mirrors this state at registration time.
	IsEnabled() bool

	// SetEnabled toggles the handler's own enabled state. This does not
	// affect registry-level dispatchability; use Registry.EnableProtocol
	// and Registry.DisableProtocol for that.
	SetEnabled(enabled bool)

	// SpecSource returns the handler's schema/route descriptor source,
	// or nil if the handler has none. Consumed by introspection tooling.
	SpecSource() SpecSource

	// HandleRequest turns a request into a response. It may block on
	// downstream I/O and honors ctx cancellation.
	HandleRequest(ctx context.Context, req *ProtocolRequest) (*ProtocolResponse, error)

	// ValidateConfiguration checks the handler's current configuration.
	ValidateConfiguration() error

	// GetConfiguration returns a flat snapshot of the handler's
	// configuration. Key semantics are handler-specific.
	GetConfiguration() map[string]string

	// UpdateConfiguration applies a live configuration change. Handlers
	// that cannot reconfigure at runtime return ErrReconfigureUnsupported
	// rather than silently ignoring the update.
	UpdateConfiguration(cfg map[string]string) error
}

// SpecSource exposes the operations a handler knows about, typically backed
// by a route table, schema, or fixture set. It is the introspection seam for
// admin tooling and documentation generators.
type SpecSource interface {
	// Protocol returns the protocol the spec describes.
	Protocol() Protocol

	// Operations lists every operation the spec declares.
	Operations() []SpecOperation

	// FindOperation looks up an operation by name and path.
	FindOperation(operation, path string) (SpecOperation, bool)
}

// SpecOperation describes a single operation declared by a SpecSource.
type SpecOperation struct {
	// Name is the operation identifier (route name, RPC name, fixture id).
	Name string `json:"name"`

	// Path is the address pattern the operation answers on.
	Path string `json:"path"`

	// OperationType is the protocol-specific verb (GET, PUBLISH, unary).
	OperationType string `json:"operationType"`

	// InputSchema is an optional serialized request schema.
	InputSchema string `json:"inputSchema,omitempty"`

	// OutputSchema is an optional serialized response schema.
	OutputSchema string `json:"outputSchema,omitempty"`

	// Metadata holds additional descriptor fields.
	Metadata map[string]string `json:"metadata,omitempty"`
}
