// Package config declares the engine configuration: logging, per-protocol
// enablement, and inline fixtures. Configuration is decoded from YAML or
// JSON bytes; reading files and watching them belongs to the embedding
// application.
package config

import (
	"encoding/json"
	"fmt"

	"github.com/mockforge/mockforge/pkg/fixture"
	"github.com/mockforge/mockforge/pkg/protocol"
	"gopkg.in/yaml.v3"
)

// Config is the root engine configuration.
type Config struct {
	// Version is the config schema version. Required, currently "1".
	Version string `json:"version" yaml:"version"`

	// Logging configures the engine logger.
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`

	// Protocols configures per-protocol handlers, keyed by protocol name.
	Protocols map[protocol.Protocol]ProtocolConfig `json:"protocols,omitempty" yaml:"protocols,omitempty"`

	// Fixtures are the inline fixture definitions.
	Fixtures []*fixture.Fixture `json:"fixtures,omitempty" yaml:"fixtures,omitempty"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	// Level is debug, info, warn, or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// ProtocolConfig configures one protocol handler.
type ProtocolConfig struct {
	// Enabled controls whether the protocol is dispatchable at boot.
	// Nil means enabled.
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Settings are flat handler-specific keys passed to the handler via
	// UpdateConfiguration after registration.
	Settings map[string]string `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// IsEnabled returns whether the protocol starts enabled. Defaults to true.
func (p ProtocolConfig) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

// FromYAML decodes a Config from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// FromJSON decodes a Config from JSON bytes.
func FromJSON(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
