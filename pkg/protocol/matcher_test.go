package protocol

import (
	"math"
	"testing"
)

func TestSimpleRequestMatcher(t *testing.T) {
	m := NewSimpleRequestMatcher(ProtocolHTTP)

	if m.Protocol() != ProtocolHTTP {
		t.Errorf("expected http, got %s", m.Protocol())
	}
	if got := m.Match(&ProtocolRequest{Protocol: ProtocolHTTP}); got != 1.0 {
		t.Errorf("expected 1.0 for own protocol, got %v", got)
	}
	if got := m.Match(&ProtocolRequest{Protocol: ProtocolGRPC}); got != 0.0 {
		t.Errorf("expected 0.0 for foreign protocol, got %v", got)
	}
	if got := m.Match(nil); got != 0.0 {
		t.Errorf("expected 0.0 for nil request, got %v", got)
	}
}

func TestFuzzyRequestMatcher_DefaultWeights(t *testing.T) {
	m := NewFuzzyRequestMatcher(ProtocolHTTP)

	sum := m.OperationWeight + m.PathWeight + m.MetadataWeight + m.BodyWeight
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("expected default weights to sum to 1.0, got %v", sum)
	}
}

func TestFuzzyRequestMatcher_PresenceScore(t *testing.T) {
	m := NewFuzzyRequestMatcher(ProtocolHTTP)

	tests := []struct {
		name string
		req  *ProtocolRequest
		want float64
	}{
		{
			name: "all fields present",
			req: &ProtocolRequest{
				Protocol:  ProtocolHTTP,
				Operation: "POST",
				Path:      "/users",
				Metadata:  map[string]string{"content-type": "application/json"},
				Body:      []byte("{}"),
			},
			want: 1.0,
		},
		{
			name: "operation and path only",
			req:  &ProtocolRequest{Protocol: ProtocolHTTP, Operation: "GET", Path: "/users"},
			want: 0.8,
		},
		{
			name: "operation only",
			req:  &ProtocolRequest{Protocol: ProtocolHTTP, Operation: "GET"},
			want: 0.4,
		},
		{
			name: "empty request",
			req:  &ProtocolRequest{Protocol: ProtocolHTTP},
			want: 0.0,
		},
		{
			name: "foreign protocol scores zero regardless of fields",
			req:  &ProtocolRequest{Protocol: ProtocolMQTT, Operation: "PUBLISH", Path: "t"},
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Match(tt.req); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFuzzyRequestMatcher_CustomWeights(t *testing.T) {
	m := NewFuzzyRequestMatcher(ProtocolMQTT)
	m.OperationWeight = 0.5
	m.PathWeight = 0.5
	m.MetadataWeight = 0
	m.BodyWeight = 0

	req := &ProtocolRequest{Protocol: ProtocolMQTT, Operation: "PUBLISH", Path: "sensors/temp", Body: []byte("x")}
	if got := m.Match(req); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected 1.0 with zero body weight, got %v", got)
	}
}
