package protocol

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/mockforge/mockforge/pkg/metrics"
)

// Registry manages protocol handlers and dispatches requests to them.
// It is thread-safe and can be used concurrently.
//
// A protocol is dispatchable only while it is both registered and enabled.
// The registry never retries and never rewrites handler results; errors from
// HandleRequest propagate to the caller verbatim.
type Registry struct {
	mu       sync.RWMutex
	handlers map[Protocol]Handler
	enabled  map[Protocol]bool

	log        *slog.Logger
	dispatches *metrics.Counter
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[Protocol]Handler),
		enabled:  make(map[Protocol]bool),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the structured logger used for registry lifecycle events.
func (r *Registry) SetLogger(log *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log != nil {
		r.log = log
	}
}

// Instrument registers dispatch counters on the given metrics registry.
// Dispatch outcomes are counted per protocol with an outcome label of
// ok, error, disabled, or not_found.
func (r *Registry) Instrument(m *metrics.Registry) {
	counter := m.NewCounter(
		"mockforge_protocol_dispatch_total",
		"Total protocol dispatches by protocol and outcome.",
		"protocol", "outcome",
	)

	r.mu.Lock()
	r.dispatches = counter
	r.mu.Unlock()
}

// RegisterHandler adds a handler to the registry, overwriting any handler
// previously registered for the same protocol. The protocol's enabled state
// mirrors the handler's own enabled state at registration time.
func (r *Registry) RegisterHandler(h Handler) error {
	if h == nil {
		return ErrNilHandler
	}
	proto := h.Protocol()
	if proto == "" {
		return ErrEmptyProtocol
	}

	enabled := h.IsEnabled()

	r.mu.Lock()
	r.handlers[proto] = h
	r.enabled[proto] = enabled
	log := r.log
	r.mu.Unlock()

	log.Info("protocol handler registered", "protocol", proto, "enabled", enabled)
	return nil
}

// UnregisterHandler removes the handler for a protocol along with its
// enabled-state entry. Returns ProtocolNotFoundError if the protocol was
// never registered.
func (r *Registry) UnregisterHandler(p Protocol) error {
	r.mu.Lock()
	if _, exists := r.handlers[p]; !exists {
		r.mu.Unlock()
		return &ProtocolNotFoundError{Protocol: p}
	}
	delete(r.handlers, p)
	delete(r.enabled, p)
	log := r.log
	r.mu.Unlock()

	log.Info("protocol handler unregistered", "protocol", p)
	return nil
}

// EnableProtocol makes a registered protocol dispatchable.
// Returns ProtocolNotFoundError if the protocol is not registered.
func (r *Registry) EnableProtocol(p Protocol) error {
	return r.setEnabled(p, true)
}

// DisableProtocol stops dispatch to a registered protocol without touching
// the handler itself. Returns ProtocolNotFoundError if not registered.
func (r *Registry) DisableProtocol(p Protocol) error {
	return r.setEnabled(p, false)
}

func (r *Registry) setEnabled(p Protocol, enabled bool) error {
	r.mu.Lock()
	if _, exists := r.handlers[p]; !exists {
		r.mu.Unlock()
		return &ProtocolNotFoundError{Protocol: p}
	}
	r.enabled[p] = enabled
	log := r.log
	r.mu.Unlock()

	log.Info("protocol enabled state changed", "protocol", p, "enabled", enabled)
	return nil
}

// IsProtocolEnabled reports whether a protocol is registered and enabled.
func (r *Registry) IsProtocolEnabled(p Protocol) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled[p]
}

// Handler returns the handler registered for a protocol.
func (r *Registry) Handler(p Protocol) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[p]
	return h, ok
}

// RegisteredProtocols returns all registered protocols, sorted for
// deterministic iteration. Order carries no semantic meaning.
func (r *Registry) RegisteredProtocols() []Protocol {
	r.mu.RLock()
	defer r.mu.RUnlock()

	protos := make([]Protocol, 0, len(r.handlers))
	for p := range r.handlers {
		protos = append(protos, p)
	}
	sortProtocols(protos)
	return protos
}

// EnabledProtocols returns all protocols that are currently dispatchable.
func (r *Registry) EnabledProtocols() []Protocol {
	r.mu.RLock()
	defer r.mu.RUnlock()

	protos := make([]Protocol, 0, len(r.enabled))
	for p, on := range r.enabled {
		if on {
			protos = append(protos, p)
		}
	}
	sortProtocols(protos)
	return protos
}

// Count returns the number of registered handlers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// HandleRequest resolves the request's protocol and dispatches to its
// handler. Returns ProtocolNotFoundError for unregistered protocols and
// ProtocolDisabledError for registered-but-disabled ones.
//
// The registry lock is released before the handler is invoked, so one slow
// handler never serializes unrelated dispatches through the registry.
func (r *Registry) HandleRequest(ctx context.Context, req *ProtocolRequest) (*ProtocolResponse, error) {
	r.mu.RLock()
	h, registered := r.handlers[req.Protocol]
	enabled := r.enabled[req.Protocol]
	log := r.log
	counter := r.dispatches
	r.mu.RUnlock()

	if !registered {
		countDispatch(counter, req.Protocol, "not_found")
		return nil, &ProtocolNotFoundError{Protocol: req.Protocol}
	}
	if !enabled {
		countDispatch(counter, req.Protocol, "disabled")
		return nil, &ProtocolDisabledError{Protocol: req.Protocol}
	}

	resp, err := h.HandleRequest(ctx, req)
	if err != nil {
		countDispatch(counter, req.Protocol, "error")
		log.Debug("handler returned error",
			"protocol", req.Protocol,
			"operation", req.Operation,
			"path", req.Path,
			"error", err,
		)
		return nil, err
	}

	countDispatch(counter, req.Protocol, "ok")
	return resp, nil
}

// ValidateAllHandlers runs every handler's configuration validation,
// short-circuiting on the first failure. The returned error is a
// ValidationError tagging the offending protocol.
func (r *Registry) ValidateAllHandlers() error {
	r.mu.RLock()
	handlers := make(map[Protocol]Handler, len(r.handlers))
	for p, h := range r.handlers {
		handlers[p] = h
	}
	r.mu.RUnlock()

	// Validate in sorted order so the first failure is deterministic.
	protos := make([]Protocol, 0, len(handlers))
	for p := range handlers {
		protos = append(protos, p)
	}
	sortProtocols(protos)

	for _, p := range protos {
		if err := handlers[p].ValidateConfiguration(); err != nil {
			return &ValidationError{Protocol: p, Err: err}
		}
	}
	return nil
}

// AllConfigurations returns a configuration snapshot for every registered
// handler, keyed by protocol.
func (r *Registry) AllConfigurations() map[Protocol]map[string]string {
	r.mu.RLock()
	handlers := make(map[Protocol]Handler, len(r.handlers))
	for p, h := range r.handlers {
		handlers[p] = h
	}
	r.mu.RUnlock()

	configs := make(map[Protocol]map[string]string, len(handlers))
	for p, h := range handlers {
		configs[p] = h.GetConfiguration()
	}
	return configs
}

// UpdateProtocolConfiguration applies a live configuration change to one
// handler. Returns ProtocolNotFoundError for unregistered protocols; a
// handler that cannot reconfigure returns ErrReconfigureUnsupported, which
// propagates unchanged.
func (r *Registry) UpdateProtocolConfiguration(p Protocol, cfg map[string]string) error {
	r.mu.RLock()
	h, registered := r.handlers[p]
	r.mu.RUnlock()

	if !registered {
		return &ProtocolNotFoundError{Protocol: p}
	}
	return h.UpdateConfiguration(cfg)
}

// ForEach executes a function for each registered handler.
// Return false from the function to stop iteration.
func (r *Registry) ForEach(fn func(Handler) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.handlers {
		if !fn(h) {
			break
		}
	}
}

func countDispatch(c *metrics.Counter, p Protocol, outcome string) {
	if c == nil {
		return
	}
	if vec, err := c.WithLabels(p.String(), outcome); err == nil {
		_ = vec.Inc()
	}
}

func sortProtocols(protos []Protocol) {
	sort.Slice(protos, func(i, j int) bool { return protos[i] < protos[j] })
}
