package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromJSON decodes a single fixture from JSON.
func FromJSON(data []byte) (*Fixture, error) {
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// FromYAML decodes a single fixture from YAML.
func FromYAML(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// ListFromYAML decodes a fixture list from YAML. Accepts either a bare
// sequence of fixtures or a mapping with a top-level "fixtures" key.
func ListFromYAML(data []byte) ([]*Fixture, error) {
	// Pointer distinguishes "key absent" from "key present but empty"
	var wrapper struct {
		Fixtures *[]*Fixture `yaml:"fixtures"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err == nil && wrapper.Fixtures != nil {
		return *wrapper.Fixtures, nil
	}

	var list []*Fixture
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode fixture list: %w", err)
	}
	return list, nil
}

// ListFromJSON decodes a fixture list from JSON, accepting the same shapes
// as ListFromYAML.
func ListFromJSON(data []byte) ([]*Fixture, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []*Fixture
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decode fixture list: %w", err)
		}
		return list, nil
	}

	var wrapper struct {
		Fixtures []*Fixture `json:"fixtures"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, fmt.Errorf("decode fixture list: %w", err)
	}
	return wrapper.Fixtures, nil
}
