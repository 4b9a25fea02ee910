package fixture

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/mockforge/mockforge/pkg/protocol"
	"github.com/mockforge/mockforge/pkg/template"
)

// Handler serves one protocol entirely from a fixture store. It is the
// protocol-blind reference implementation of protocol.Handler: concrete
// wire servers decode their transport into a ProtocolRequest and delegate
// here. Safe for concurrent use; the store and template engine are shared
// across all in-flight requests.
type Handler struct {
	proto   protocol.Protocol
	store   *Store
	engine  *template.Engine
	enabled atomic.Bool
	log     *slog.Logger

	cfgMu sync.RWMutex
	cfg   handlerConfig
}

type handlerConfig struct {
	// defaultContentType is applied when a fixture specifies none.
	defaultContentType string

	// missStatus is the HTTP-kind status used for unmatched requests.
	missStatus int
}

// NewHandler creates an enabled fixture handler for one protocol.
func NewHandler(p protocol.Protocol, store *Store) *Handler {
	h := &Handler{
		proto:  p,
		store:  store,
		engine: template.New(),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		cfg: handlerConfig{
			defaultContentType: "application/json",
			missStatus:         404,
		},
	}
	h.enabled.Store(true)
	return h
}

// SetLogger sets the structured logger for the handler.
func (h *Handler) SetLogger(log *slog.Logger) {
	if log != nil {
		h.log = log
	}
}

// Protocol returns the protocol this handler serves.
func (h *Handler) Protocol() protocol.Protocol {
	return h.proto
}

// IsEnabled reports the handler's own enabled state.
func (h *Handler) IsEnabled() bool {
	return h.enabled.Load()
}

// SetEnabled toggles the handler's own enabled state.
func (h *Handler) SetEnabled(enabled bool) {
	h.enabled.Store(enabled)
}

// SpecSource exposes the handler's fixtures as spec operations.
func (h *Handler) SpecSource() protocol.SpecSource {
	return NewSpecAdapter(h.proto, h.store)
}

// HandleRequest answers the request from the best matching fixture.
// Unmatched requests produce a protocol-appropriate failure response, not
// an error; errors are reserved for malformed requests.
func (h *Handler) HandleRequest(ctx context.Context, req *protocol.ProtocolRequest) (*protocol.ProtocolResponse, error) {
	if req == nil {
		return nil, protocol.Error("request cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := h.store.Match(req)
	if f == nil {
		return h.missResponse(), nil
	}

	resp := f.RenderResponse(h.engine, f.PathVariables(req))
	if resp.ContentType == "" {
		h.cfgMu.RLock()
		resp.ContentType = h.cfg.defaultContentType
		h.cfgMu.RUnlock()
	}
	return resp, nil
}

// ValidateConfiguration re-validates every fixture of the handler's
// protocol, so a broken fixture surfaces before dispatch.
func (h *Handler) ValidateConfiguration() error {
	for _, f := range h.store.ListByProtocol(h.proto) {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetConfiguration returns a flat snapshot of the handler configuration.
func (h *Handler) GetConfiguration() map[string]string {
	h.cfgMu.RLock()
	defer h.cfgMu.RUnlock()
	return map[string]string{
		"defaultContentType": h.cfg.defaultContentType,
		"missStatus":         strconv.Itoa(h.cfg.missStatus),
	}
}

// UpdateConfiguration applies a live configuration change. Unknown keys are
// rejected so a typo fails loudly instead of silently taking no effect.
// The batch applies atomically: on any error no key takes effect.
func (h *Handler) UpdateConfiguration(cfg map[string]string) error {
	h.cfgMu.Lock()
	defer h.cfgMu.Unlock()

	staged := h.cfg
	for key, value := range cfg {
		switch key {
		case "defaultContentType":
			staged.defaultContentType = value
		case "missStatus":
			status, err := strconv.Atoi(value)
			if err != nil || status < 100 {
				return &ValidationError{Field: "missStatus", Message: "must be a status code"}
			}
			staged.missStatus = status
		default:
			return &ValidationError{Field: key, Message: "unknown configuration key"}
		}
	}

	h.cfg = staged
	return nil
}

func (h *Handler) missResponse() *protocol.ProtocolResponse {
	h.cfgMu.RLock()
	missStatus := h.cfg.missStatus
	h.cfgMu.RUnlock()

	var status protocol.ResponseStatus
	switch h.proto {
	case protocol.ProtocolHTTP, protocol.ProtocolGraphQL, protocol.ProtocolWebSocket:
		status = protocol.HTTPStatus(missStatus)
	case protocol.ProtocolGRPC:
		// NOT_FOUND
		status = protocol.GRPCStatus(5)
	default:
		status = protocol.Failure("no fixture matched")
	}

	return &protocol.ProtocolResponse{
		Status:      status,
		Body:        []byte(`{"error":"no fixture matched"}`),
		ContentType: "application/json",
	}
}
