package protocol

import "strings"

// ProtocolRequest is the uniform request representation every handler and
// matcher operates on. Protocol-specific addressing (HTTP method+path, gRPC
// service.method, MQTT topic, GraphQL operation) is generalized into the
// Operation and Path fields; the pub/sub extras (Topic, RoutingKey,
// Partition, QoS) exist for handlers that need them but are not part of the
// generic fingerprint.
type ProtocolRequest struct {
	// Protocol identifies which handler the request is routed to.
	Protocol Protocol `json:"protocol" yaml:"protocol"`

	// Pattern is the communication pattern of the request.
	Pattern CommunicationPattern `json:"pattern" yaml:"pattern"`

	// Operation is the protocol-agnostic operation name: the HTTP method,
	// the RPC method, the GraphQL operation, "PUBLISH" for brokers.
	Operation string `json:"operation" yaml:"operation"`

	// Path is the protocol-agnostic address: URL path, service.method,
	// topic name, queue name.
	Path string `json:"path" yaml:"path"`

	// Topic is set for pub/sub protocols (MQTT, Kafka).
	Topic string `json:"topic,omitempty" yaml:"topic,omitempty"`

	// RoutingKey is set for AMQP-style routing.
	RoutingKey string `json:"routingKey,omitempty" yaml:"routingKey,omitempty"`

	// Partition is set for partitioned logs (Kafka). Nil when absent.
	Partition *int32 `json:"partition,omitempty" yaml:"partition,omitempty"`

	// QoS is set for MQTT quality-of-service levels. Nil when absent.
	QoS *byte `json:"qos,omitempty" yaml:"qos,omitempty"`

	// Metadata holds protocol headers/properties. Insertion order is
	// never significant.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// Body is the raw request payload. Nil means no body.
	Body []byte `json:"body,omitempty" yaml:"body,omitempty"`

	// ClientIP is the remote address when the transport knows it.
	ClientIP string `json:"clientIp,omitempty" yaml:"clientIp,omitempty"`
}

// MetadataValue returns the metadata value for key and whether it was set.
// Keys compare case-insensitively, matching header semantics.
func (r *ProtocolRequest) MetadataValue(key string) (string, bool) {
	if v, ok := r.Metadata[key]; ok {
		return v, true
	}
	for k, v := range r.Metadata {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// HasBody reports whether the request carries a payload.
func (r *ProtocolRequest) HasBody() bool {
	return r.Body != nil
}

// ProtocolResponse is the uniform response representation handlers return.
type ProtocolResponse struct {
	// Status is the protocol-appropriate outcome.
	Status ResponseStatus `json:"status" yaml:"status"`

	// Metadata holds response headers/properties.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// Body is the raw response payload.
	Body []byte `json:"body,omitempty" yaml:"body,omitempty"`

	// ContentType describes the body encoding.
	ContentType string `json:"contentType,omitempty" yaml:"contentType,omitempty"`
}

// IsSuccess reports whether the response status represents success.
func (r *ProtocolResponse) IsSuccess() bool {
	return r.Status.IsSuccess()
}
