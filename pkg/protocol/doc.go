// Package protocol defines the protocol abstraction core of MockForge: a
// uniform request/response model spanning every supported wire protocol, the
// Handler contract concrete protocol servers implement, a Registry that
// gates dispatch on registration and enablement, and content-addressable
// request fingerprints for matching and caching.
//
// # Request Model
//
// Every protocol's addressing collapses into two fields, Operation and Path:
// HTTP method+path, gRPC service.method, MQTT topic, GraphQL operation.
// Pub/sub extras (Topic, RoutingKey, Partition, QoS) ride along on the
// request but stay out of the generic fingerprint, keeping the matching
// core protocol-blind.
//
// # Registry Usage
//
//	reg := protocol.NewRegistry()
//	if err := reg.RegisterHandler(httpHandler); err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := reg.HandleRequest(ctx, &protocol.ProtocolRequest{
//	    Protocol:  protocol.ProtocolHTTP,
//	    Operation: "GET",
//	    Path:      "/users",
//	})
//
// A protocol is dispatchable only while registered and enabled. Disabling a
// protocol leaves the handler registered:
//
//	_ = reg.DisableProtocol(protocol.ProtocolHTTP)  // dispatch now fails
//	_ = reg.EnableProtocol(protocol.ProtocolHTTP)   // dispatch restored
//
// # Fingerprints
//
// NewFingerprint hashes protocol, operation, and path, plus metadata and
// body when present. The coarse Matches comparison considers only the
// endpoint identity; ExactMatch considers everything:
//
//	a := protocol.NewFingerprint(reqA)
//	b := protocol.NewFingerprint(reqB)
//	if a.Matches(b) { ... }      // same endpoint
//	if a.ExactMatch(b) { ... }   // same endpoint, metadata, and body
//	score := a.Similarity(b)     // graded [0,1] comparison
package protocol
