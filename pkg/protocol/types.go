package protocol

// Protocol identifies the wire protocol a request or handler belongs to.
type Protocol string

// Protocol constants for all supported protocols.
const (
	ProtocolHTTP      Protocol = "http"
	ProtocolGRPC      Protocol = "grpc"
	ProtocolWebSocket Protocol = "websocket"
	ProtocolGraphQL   Protocol = "graphql"
	ProtocolMQTT      Protocol = "mqtt"
	ProtocolSMTP      Protocol = "smtp"
	ProtocolKafka     Protocol = "kafka"
	ProtocolAMQP      Protocol = "amqp"
	ProtocolFTP       Protocol = "ftp"
)

// allProtocols lists every known protocol in display order.
var allProtocols = []Protocol{
	ProtocolHTTP,
	ProtocolGRPC,
	ProtocolWebSocket,
	ProtocolGraphQL,
	ProtocolMQTT,
	ProtocolSMTP,
	ProtocolKafka,
	ProtocolAMQP,
	ProtocolFTP,
}

// Protocols returns all known protocols.
func Protocols() []Protocol {
	out := make([]Protocol, len(allProtocols))
	copy(out, allProtocols)
	return out
}

// String returns the string representation of the protocol.
func (p Protocol) String() string {
	return string(p)
}

// Valid reports whether p is one of the known protocols.
func (p Protocol) Valid() bool {
	for _, known := range allProtocols {
		if p == known {
			return true
		}
	}
	return false
}

// CommunicationPattern describes the message flow pattern of a request.
type CommunicationPattern string

// CommunicationPattern constants for all supported patterns.
const (
	PatternRequestResponse CommunicationPattern = "request_response"
	PatternPubSub          CommunicationPattern = "pubsub"
	PatternStreaming       CommunicationPattern = "streaming"
	PatternServerPush      CommunicationPattern = "server_push"
	PatternBidirectional   CommunicationPattern = "bidirectional"
)

// String returns the string representation of the communication pattern.
func (p CommunicationPattern) String() string {
	return string(p)
}

// StatusKind discriminates how a ResponseStatus encodes success or failure.
type StatusKind string

// StatusKind constants.
const (
	// StatusKindHTTP carries an HTTP status code.
	StatusKindHTTP StatusKind = "http"

	// StatusKindGRPC carries a gRPC status code (0 = OK).
	StatusKindGRPC StatusKind = "grpc"

	// StatusKindSuccess is a generic success for protocols without
	// numeric status codes (MQTT publishes, SMTP accepts, etc.).
	StatusKindSuccess StatusKind = "success"

	// StatusKindError is a generic failure with a message.
	StatusKindError StatusKind = "error"
)

// ResponseStatus is a protocol-appropriate success or failure representation.
// Use the constructors rather than building the struct directly.
type ResponseStatus struct {
	Kind    StatusKind `json:"kind" yaml:"kind"`
	Code    int        `json:"code,omitempty" yaml:"code,omitempty"`
	Message string     `json:"message,omitempty" yaml:"message,omitempty"`
}

// HTTPStatus returns a ResponseStatus carrying an HTTP status code.
func HTTPStatus(code int) ResponseStatus {
	return ResponseStatus{Kind: StatusKindHTTP, Code: code}
}

// GRPCStatus returns a ResponseStatus carrying a gRPC status code.
func GRPCStatus(code int) ResponseStatus {
	return ResponseStatus{Kind: StatusKindGRPC, Code: code}
}

// Success returns a generic success status.
func Success() ResponseStatus {
	return ResponseStatus{Kind: StatusKindSuccess}
}

// Failure returns a generic failure status with a message.
func Failure(message string) ResponseStatus {
	return ResponseStatus{Kind: StatusKindError, Message: message}
}

// IsSuccess reports whether the status represents success under its
// protocol's convention: HTTP codes below 400, gRPC code 0, or the
// generic success kind.
func (s ResponseStatus) IsSuccess() bool {
	switch s.Kind {
	case StatusKindHTTP:
		return s.Code >= 100 && s.Code < 400
	case StatusKindGRPC:
		return s.Code == 0
	case StatusKindSuccess:
		return true
	default:
		return false
	}
}
