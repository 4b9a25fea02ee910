package protocol

import "testing"

func TestNewFingerprint_OptionalHashes(t *testing.T) {
	bare := NewFingerprint(&ProtocolRequest{
		Protocol:  ProtocolHTTP,
		Operation: "GET",
		Path:      "/users",
	})
	if bare.MetadataHash != nil {
		t.Error("expected no metadata hash for request without metadata")
	}
	if bare.BodyHash != nil {
		t.Error("expected no body hash for request without body")
	}

	full := NewFingerprint(&ProtocolRequest{
		Protocol:  ProtocolHTTP,
		Operation: "POST",
		Path:      "/users",
		Metadata:  map[string]string{"content-type": "application/json"},
		Body:      []byte(`{"name":"alice"}`),
	})
	if full.MetadataHash == nil {
		t.Error("expected metadata hash for request with metadata")
	}
	if full.BodyHash == nil {
		t.Error("expected body hash for request with body")
	}

	// An empty but non-nil body counts as present
	empty := NewFingerprint(&ProtocolRequest{
		Protocol: ProtocolHTTP,
		Body:     []byte{},
	})
	if empty.BodyHash == nil {
		t.Error("expected body hash for empty non-nil body")
	}
}

func TestSimpleFingerprint_NeverCarriesOptionalHashes(t *testing.T) {
	fp := SimpleFingerprint(&ProtocolRequest{
		Protocol:  ProtocolMQTT,
		Operation: "PUBLISH",
		Path:      "sensors/temp",
		Metadata:  map[string]string{"qos": "1"},
		Body:      []byte("22.5"),
	})
	if fp.MetadataHash != nil || fp.BodyHash != nil {
		t.Error("simple fingerprint must ignore metadata and body")
	}
}

func TestFingerprint_CoarseVsExact(t *testing.T) {
	base := &ProtocolRequest{
		Protocol:  ProtocolHTTP,
		Operation: "POST",
		Path:      "/orders",
		Body:      []byte(`{"sku":"a"}`),
	}
	other := &ProtocolRequest{
		Protocol:  ProtocolHTTP,
		Operation: "POST",
		Path:      "/orders",
		Body:      []byte(`{"sku":"b"}`),
	}

	a := NewFingerprint(base)
	b := NewFingerprint(other)

	// Same endpoint, different body: coarse match holds, exact does not
	if !a.Matches(b) {
		t.Error("expected coarse match on identical endpoint")
	}
	if a.ExactMatch(b) {
		t.Error("expected exact mismatch on differing body")
	}
	if !a.ExactMatch(NewFingerprint(base)) {
		t.Error("expected exact match on identical request")
	}
}

func TestFingerprint_ExactMatchHashPresence(t *testing.T) {
	withBody := NewFingerprint(&ProtocolRequest{Protocol: ProtocolHTTP, Operation: "GET", Path: "/", Body: []byte("x")})
	noBody := NewFingerprint(&ProtocolRequest{Protocol: ProtocolHTTP, Operation: "GET", Path: "/"})

	if withBody.ExactMatch(noBody) || noBody.ExactMatch(withBody) {
		t.Error("hash presence itself must distinguish exact matches")
	}
}

func TestFingerprint_SimilarityReflexive(t *testing.T) {
	fp := NewFingerprint(&ProtocolRequest{
		Protocol:  ProtocolGRPC,
		Operation: "GetUser",
		Path:      "/users.v1.UserService/GetUser",
		Metadata:  map[string]string{"authorization": "bearer x"},
		Body:      []byte("payload"),
	})
	if got := fp.Similarity(fp); got != 1.0 {
		t.Errorf("expected 1.0 for identical fingerprints, got %v", got)
	}
}

func TestFingerprint_SimilarityCrossProtocol(t *testing.T) {
	a := NewFingerprint(&ProtocolRequest{Protocol: ProtocolHTTP, Operation: "GET", Path: "/x"})
	b := NewFingerprint(&ProtocolRequest{Protocol: ProtocolGRPC, Operation: "GET", Path: "/x"})
	if got := a.Similarity(b); got != 0.0 {
		t.Errorf("expected 0.0 across protocols, got %v", got)
	}
}

func TestFingerprint_SimilarityVariableDenominator(t *testing.T) {
	// Neither side carries optional hashes: denominator is 2
	a := NewFingerprint(&ProtocolRequest{Protocol: ProtocolHTTP, Operation: "GET", Path: "/a"})
	b := NewFingerprint(&ProtocolRequest{Protocol: ProtocolHTTP, Operation: "GET", Path: "/b"})
	if got := a.Similarity(b); got != 0.5 {
		t.Errorf("expected 0.5 with operation match only, got %v", got)
	}

	// Only one side carries a body hash: the dimension stays out of the
	// denominator, so the score is unchanged
	c := NewFingerprint(&ProtocolRequest{Protocol: ProtocolHTTP, Operation: "GET", Path: "/b", Body: []byte("x")})
	if got := a.Similarity(c); got != 0.5 {
		t.Errorf("expected 0.5 when only one side has a body hash, got %v", got)
	}

	// Both sides carry body hashes that differ: denominator grows to 3
	d := NewFingerprint(&ProtocolRequest{Protocol: ProtocolHTTP, Operation: "GET", Path: "/a", Body: []byte("y")})
	if got := c.Similarity(d); got != 1.0/3.0 {
		t.Errorf("expected 1/3 with differing path and body, got %v", got)
	}

	// All four dimensions apply and match
	meta := map[string]string{"k": "v"}
	e := NewFingerprint(&ProtocolRequest{Protocol: ProtocolHTTP, Operation: "GET", Path: "/a", Metadata: meta, Body: []byte("y")})
	f := NewFingerprint(&ProtocolRequest{Protocol: ProtocolHTTP, Operation: "GET", Path: "/a", Metadata: meta, Body: []byte("y")})
	if got := e.Similarity(f); got != 1.0 {
		t.Errorf("expected 1.0 with all four dimensions matching, got %v", got)
	}
}

func TestFingerprint_MetadataHashOrderIndependent(t *testing.T) {
	// Maps iterate in random order; the hash must not depend on it. Two
	// maps built in different insertion orders are indistinguishable to
	// the runtime, so hash the same logical set many times instead.
	reference := hashMetadata(map[string]string{"a": "1", "b": "2", "c": "3"})
	for i := 0; i < 100; i++ {
		m := map[string]string{"c": "3", "a": "1", "b": "2"}
		if got := hashMetadata(m); got != reference {
			t.Fatalf("metadata hash unstable: %x != %x", got, reference)
		}
	}

	// Key/value boundaries must not be ambiguous
	if hashMetadata(map[string]string{"ab": "c"}) == hashMetadata(map[string]string{"a": "bc"}) {
		t.Error("expected distinct hashes for shifted key/value boundary")
	}
}

func TestFingerprint_Key(t *testing.T) {
	a := NewFingerprint(&ProtocolRequest{Protocol: ProtocolHTTP, Operation: "GET", Path: "/x"})
	b := NewFingerprint(&ProtocolRequest{Protocol: ProtocolHTTP, Operation: "GET", Path: "/x", Body: []byte("y")})

	if a.Key() == b.Key() {
		t.Error("expected distinct keys when body hash presence differs")
	}
	if a.Key() != NewFingerprint(&ProtocolRequest{Protocol: ProtocolHTTP, Operation: "GET", Path: "/x"}).Key() {
		t.Error("expected stable key for identical requests")
	}
}
