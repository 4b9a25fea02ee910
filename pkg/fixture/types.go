// Package fixture provides protocol-agnostic fixture records: pre-authored
// or recorded request/response pairs that match incoming requests across
// every supported protocol and render into protocol responses.
package fixture

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mockforge/mockforge/pkg/protocol"
	"gopkg.in/yaml.v3"
)

// Fixture is a unified, protocol-agnostic mock definition. Fixtures are
// immutable once stored; they are matched against live requests and never
// mutated per request.
type Fixture struct {
	// ID is a unique identifier for the fixture. The store assigns a UUID
	// when empty.
	ID string `json:"id" yaml:"id"`

	// Name is a human-readable name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Description is an optional longer description.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Protocol the fixture answers for.
	Protocol protocol.Protocol `json:"protocol" yaml:"protocol"`

	// Request is the matcher specification. Unset fields always match.
	Request RequestSpec `json:"request" yaml:"request"`

	// Response is rendered when the fixture matches.
	Response ResponseSpec `json:"response" yaml:"response"`

	// Metadata holds free-form annotations (source, recording session).
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// Enabled indicates whether this fixture participates in matching.
	// Nil means enabled.
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Priority breaks ties among matching fixtures; higher wins.
	Priority int `json:"priority,omitempty" yaml:"priority,omitempty"`

	// Tags classify the fixture for filtering.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// CreatedAt is when the fixture was created or recorded.
	CreatedAt time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// IsEnabled returns whether the fixture participates in matching.
// An unset Enabled field means enabled.
func (f *Fixture) IsEnabled() bool {
	return f.Enabled == nil || *f.Enabled
}

// RequestSpec selects which requests a fixture answers. Every field is
// optional; an unset field matches anything. String fields treat the empty
// string as unset, numeric fields use nil.
type RequestSpec struct {
	// Pattern restricts the communication pattern.
	Pattern protocol.CommunicationPattern `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// Operation matches the request operation, case-insensitively.
	Operation string `json:"operation,omitempty" yaml:"operation,omitempty"`

	// Path matches the request path. Supports exact paths, {name} params,
	// doublestar globs, and MQTT-style +/# topic filters.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Topic matches the request topic with the same pattern support.
	Topic string `json:"topic,omitempty" yaml:"topic,omitempty"`

	// RoutingKey matches the AMQP routing key; * wildcards allowed.
	RoutingKey string `json:"routingKey,omitempty" yaml:"routingKey,omitempty"`

	// Partition matches the Kafka partition exactly.
	Partition *int32 `json:"partition,omitempty" yaml:"partition,omitempty"`

	// QoS matches the MQTT QoS level exactly.
	QoS *byte `json:"qos,omitempty" yaml:"qos,omitempty"`

	// Headers must all be present in the request metadata (subset match,
	// case-insensitive keys, * wildcards in values).
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`

	// BodyEquals requires an exact body match.
	BodyEquals string `json:"bodyEquals,omitempty" yaml:"bodyEquals,omitempty"`

	// BodyContains requires the body to contain a substring.
	BodyContains string `json:"bodyContains,omitempty" yaml:"bodyContains,omitempty"`

	// BodyPattern requires the body to match a regex.
	BodyPattern string `json:"bodyPattern,omitempty" yaml:"bodyPattern,omitempty"`

	// BodyJSONPath maps JSONPath expressions to expected values; an
	// expected value of {"exists": bool} is an existence check.
	BodyJSONPath map[string]interface{} `json:"bodyJsonPath,omitempty" yaml:"bodyJsonPath,omitempty"`

	// Condition is a custom expr-lang expression over the request
	// (operation, path, topic, metadata, body, json, ...). It must
	// evaluate to a boolean.
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// ResponseSpec describes the response a matched fixture renders.
type ResponseSpec struct {
	// Status is the protocol-appropriate status code: an HTTP code for
	// HTTP-family fixtures, a gRPC code for gRPC. Zero means success for
	// protocols without numeric codes.
	Status int `json:"status,omitempty" yaml:"status,omitempty"`

	// Headers become response metadata; values are templated.
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`

	// Body is the response payload; templated. Accepts a string or a
	// structured JSON value in fixture files.
	Body string `json:"body,omitempty" yaml:"body,omitempty"`

	// ContentType describes the body encoding.
	ContentType string `json:"contentType,omitempty" yaml:"contentType,omitempty"`

	// DelayMs is an artificial delay the serving layer should apply
	// before responding. The core never sleeps; it only carries the value.
	DelayMs int `json:"delayMs,omitempty" yaml:"delayMs,omitempty"`

	// TemplateVars are substituted into Body and Headers on render.
	TemplateVars map[string]string `json:"templateVars,omitempty" yaml:"templateVars,omitempty"`
}

// UnmarshalJSON lets the Body field accept both a string and a JSON
// object/array. A structured body is re-marshaled to its JSON text, so
// fixture files can write body: {"id": 1} instead of body: '{"id": 1}'.
func (r *ResponseSpec) UnmarshalJSON(data []byte) error {
	var proxy struct {
		Status       int               `json:"status,omitempty"`
		Headers      map[string]string `json:"headers,omitempty"`
		Body         json.RawMessage   `json:"body,omitempty"`
		ContentType  string            `json:"contentType,omitempty"`
		DelayMs      int               `json:"delayMs,omitempty"`
		TemplateVars map[string]string `json:"templateVars,omitempty"`
	}
	if err := json.Unmarshal(data, &proxy); err != nil {
		return err
	}

	r.Status = proxy.Status
	r.Headers = proxy.Headers
	r.ContentType = proxy.ContentType
	r.DelayMs = proxy.DelayMs
	r.TemplateVars = proxy.TemplateVars

	if len(proxy.Body) == 0 {
		r.Body = ""
		return nil
	}

	// String body is the common case
	var s string
	if err := json.Unmarshal(proxy.Body, &s); err == nil {
		r.Body = s
		return nil
	}

	// Structured body: keep its compact JSON text
	var v interface{}
	if err := json.Unmarshal(proxy.Body, &v); err != nil {
		return err
	}
	compact, err := json.Marshal(v)
	if err != nil {
		return err
	}
	r.Body = string(compact)
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML fixture files: a mapping or
// sequence body is marshaled to its JSON text, so files can write
// body: { id: 1 } instead of body: '{"id": 1}'.
func (r *ResponseSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping node, got %d", value.Kind)
	}

	// Extract and handle body specially, decode everything else with an
	// alias to avoid recursion.
	type responseSpecAlias ResponseSpec
	var alias responseSpecAlias

	var bodyNode *yaml.Node
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		if keyNode.Value == "body" {
			bodyNode = value.Content[i+1]
			// Replace the body value with a placeholder scalar so the
			// default decoder doesn't choke on object bodies
			orig := *bodyNode
			value.Content[i+1] = &yaml.Node{Kind: yaml.ScalarNode, Value: "", Tag: "!!str"}
			err := value.Decode(&alias)
			*value.Content[i+1] = orig
			if err != nil {
				return err
			}
			bodyNode = &orig
			break
		}
	}

	if bodyNode == nil {
		if err := value.Decode(&alias); err != nil {
			return err
		}
		*r = ResponseSpec(alias)
		return nil
	}

	*r = ResponseSpec(alias)

	// Scalar values (strings, numbers, booleans): store as-is
	if bodyNode.Kind == yaml.ScalarNode {
		r.Body = bodyNode.Value
		return nil
	}

	// Mapping or sequence: decode to interface{}, then marshal to JSON
	var bodyObj interface{}
	if err := bodyNode.Decode(&bodyObj); err != nil {
		return fmt.Errorf("failed to decode body: %w", err)
	}

	bodyJSON, err := json.Marshal(bodyObj)
	if err != nil {
		return fmt.Errorf("failed to marshal body to JSON: %w", err)
	}
	r.Body = string(bodyJSON)
	return nil
}
