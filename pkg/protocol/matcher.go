package protocol

// RequestMatcher scores how confidently a request can be routed to the
// component that owns the matcher. Scores are in [0, 1].
type RequestMatcher interface {
	// Protocol returns the protocol the matcher accepts.
	Protocol() Protocol

	// Match scores the request. 0 means not routable.
	Match(req *ProtocolRequest) float64
}

// SimpleRequestMatcher is a binary routability signal: any request for its
// protocol scores 1.0, everything else scores 0. It carries no graded
// confidence.
type SimpleRequestMatcher struct {
	protocol Protocol
}

// NewSimpleRequestMatcher creates a matcher accepting all requests for p.
func NewSimpleRequestMatcher(p Protocol) *SimpleRequestMatcher {
	return &SimpleRequestMatcher{protocol: p}
}

// Protocol returns the matcher's protocol.
func (m *SimpleRequestMatcher) Protocol() Protocol {
	return m.protocol
}

// Match returns 1.0 for requests of the matcher's protocol, 0 otherwise.
func (m *SimpleRequestMatcher) Match(req *ProtocolRequest) float64 {
	if req == nil || req.Protocol != m.protocol {
		return 0.0
	}
	return 1.0
}

// FuzzyRequestMatcher scores requests by field presence: each weight
// contributes when the corresponding field is present and non-empty on the
// request being scored. It is a completeness score, not a comparison
// against a target request.
type FuzzyRequestMatcher struct {
	protocol Protocol

	// Weights per dimension. They should sum to 1.0 for scores to stay
	// within [0, 1].
	OperationWeight float64
	PathWeight      float64
	MetadataWeight  float64
	BodyWeight      float64
}

// NewFuzzyRequestMatcher creates a fuzzy matcher with the default weights:
// operation 0.4, path 0.4, metadata 0.1, body 0.1.
func NewFuzzyRequestMatcher(p Protocol) *FuzzyRequestMatcher {
	return &FuzzyRequestMatcher{
		protocol:        p,
		OperationWeight: 0.4,
		PathWeight:      0.4,
		MetadataWeight:  0.1,
		BodyWeight:      0.1,
	}
}

// Protocol returns the matcher's protocol.
func (m *FuzzyRequestMatcher) Protocol() Protocol {
	return m.protocol
}

// Match returns the weighted presence score for the request.
func (m *FuzzyRequestMatcher) Match(req *ProtocolRequest) float64 {
	if req == nil || req.Protocol != m.protocol {
		return 0.0
	}

	score := 0.0
	if req.Operation != "" {
		score += m.OperationWeight
	}
	if req.Path != "" {
		score += m.PathWeight
	}
	if len(req.Metadata) > 0 {
		score += m.MetadataWeight
	}
	if req.Body != nil {
		score += m.BodyWeight
	}
	return score
}
