package config

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/mockforge/mockforge/pkg/fixture"
	"github.com/mockforge/mockforge/pkg/logging"
	"github.com/mockforge/mockforge/pkg/protocol"
)

// Engine bundles the components Build assembles from a Config.
type Engine struct {
	Registry *protocol.Registry
	Store    *fixture.Store
	Logger   *slog.Logger
}

// Build validates the config and assembles a ready engine: a fixture store
// holding every inline fixture, plus a registry with one fixture-backed
// handler per configured protocol, enabled or disabled as the config says.
// Callers with their own handler implementations can register them over the
// fixture-backed ones afterwards.
func (c *Config) Build() (*Engine, error) {
	if result := c.Validate(); !result.IsValid() {
		return nil, fmt.Errorf("invalid config:\n%s", result.Error())
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(c.Logging.Level),
		Format: logging.ParseFormat(c.Logging.Format),
	})

	store := fixture.NewStore()
	store.SetLogger(log)
	for i, f := range c.Fixtures {
		if err := store.Set(f); err != nil {
			return nil, fmt.Errorf("fixtures[%d]: %w", i, err)
		}
	}

	registry := protocol.NewRegistry()
	registry.SetLogger(log)

	for _, proto := range sortedProtocols(c.Protocols) {
		pc := c.Protocols[proto]

		h := fixture.NewHandler(proto, store)
		h.SetLogger(log)
		h.SetEnabled(pc.IsEnabled())
		if len(pc.Settings) > 0 {
			if err := h.UpdateConfiguration(pc.Settings); err != nil {
				return nil, fmt.Errorf("protocols.%s: %w", proto, err)
			}
		}

		if err := registry.RegisterHandler(h); err != nil {
			return nil, fmt.Errorf("protocols.%s: %w", proto, err)
		}
	}

	return &Engine{Registry: registry, Store: store, Logger: log}, nil
}

func sortedProtocols(configs map[protocol.Protocol]ProtocolConfig) []protocol.Protocol {
	protos := make([]protocol.Protocol, 0, len(configs))
	for p := range configs {
		protos = append(protos, p)
	}
	// Registration order is deterministic for reproducible logs
	sort.Slice(protos, func(i, j int) bool { return protos[i] < protos[j] })
	return protos
}
