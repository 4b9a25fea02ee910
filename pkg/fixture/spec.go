package fixture

import (
	"github.com/mockforge/mockforge/pkg/protocol"
)

// SpecAdapter exposes a fixture store as a protocol.SpecSource, so handlers
// backed purely by fixtures still show up in introspection tooling. Each
// fixture becomes one operation.
type SpecAdapter struct {
	proto protocol.Protocol
	store *Store
}

// NewSpecAdapter creates a SpecSource over the store for one protocol.
func NewSpecAdapter(p protocol.Protocol, store *Store) *SpecAdapter {
	return &SpecAdapter{proto: p, store: store}
}

// Protocol returns the protocol the spec describes.
func (a *SpecAdapter) Protocol() protocol.Protocol {
	return a.proto
}

// Operations lists one operation per stored fixture for the protocol.
func (a *SpecAdapter) Operations() []protocol.SpecOperation {
	fixtures := a.store.ListByProtocol(a.proto)
	ops := make([]protocol.SpecOperation, 0, len(fixtures))
	for _, f := range fixtures {
		ops = append(ops, a.operation(f))
	}
	return ops
}

// FindOperation resolves the fixture that would answer the given operation
// and path.
func (a *SpecAdapter) FindOperation(operation, path string) (protocol.SpecOperation, bool) {
	req := &protocol.ProtocolRequest{
		Protocol:  a.proto,
		Operation: operation,
		Path:      path,
	}
	// Bypass Match so introspection lookups don't skew hit/miss counters
	results := a.store.matchAll(req)
	if len(results) == 0 {
		return protocol.SpecOperation{}, false
	}
	return a.operation(results[0].fixture), true
}

func (a *SpecAdapter) operation(f *Fixture) protocol.SpecOperation {
	name := f.Name
	if name == "" {
		name = f.ID
	}
	path := f.Request.Path
	if path == "" {
		path = f.Request.Topic
	}
	return protocol.SpecOperation{
		Name:          name,
		Path:          path,
		OperationType: f.Request.Operation,
		OutputSchema:  f.Response.Body,
		Metadata:      f.Metadata,
	}
}
