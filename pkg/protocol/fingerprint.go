package protocol

import (
	"fmt"
	"hash/fnv"
	"sort"
)

// RequestFingerprint is a content-addressable summary of a request's
// identity, used for fixture lookup, replay, and caching without retaining
// the full request. Fingerprints are immutable value objects.
//
// OperationHash and PathHash are always present. MetadataHash is set only
// when the request carried non-empty metadata, and BodyHash only when the
// request carried a body. The coarse Matches comparison ignores both
// optional hashes; ExactMatch does not.
type RequestFingerprint struct {
	Protocol      Protocol `json:"protocol"`
	OperationHash uint64   `json:"operationHash"`
	PathHash      uint64   `json:"pathHash"`
	MetadataHash  *uint64  `json:"metadataHash,omitempty"`
	BodyHash      *uint64  `json:"bodyHash,omitempty"`
}

// NewFingerprint builds a fingerprint from a request. Metadata is hashed
// only if non-empty and the body only if present, so requests differing in
// incidental metadata/body still compare equal under Matches.
func NewFingerprint(req *ProtocolRequest) RequestFingerprint {
	fp := SimpleFingerprint(req)

	if len(req.Metadata) > 0 {
		h := hashMetadata(req.Metadata)
		fp.MetadataHash = &h
	}
	if req.Body != nil {
		h := hashBytes(req.Body)
		fp.BodyHash = &h
	}
	return fp
}

// SimpleFingerprint builds a fingerprint from protocol, operation, and path
// only, never hashing metadata or body regardless of presence. Use it where
// only the logical endpoint identity matters, such as distinct-endpoint
// counting.
func SimpleFingerprint(req *ProtocolRequest) RequestFingerprint {
	return RequestFingerprint{
		Protocol:      req.Protocol,
		OperationHash: hashString(req.Operation),
		PathHash:      hashString(req.Path),
	}
}

// Matches is the coarse equivalence: protocol, operation, and path only.
// Two requests to the same endpoint match even when metadata or body differ.
func (f RequestFingerprint) Matches(other RequestFingerprint) bool {
	return f.Protocol == other.Protocol &&
		f.OperationHash == other.OperationHash &&
		f.PathHash == other.PathHash
}

// ExactMatch requires full structural equality, including presence and
// value of the optional metadata and body hashes.
func (f RequestFingerprint) ExactMatch(other RequestFingerprint) bool {
	return f.Matches(other) &&
		optionalHashEqual(f.MetadataHash, other.MetadataHash) &&
		optionalHashEqual(f.BodyHash, other.BodyHash)
}

// Similarity scores how alike two fingerprints are, in [0, 1]. Fingerprints
// for different protocols always score 0. Otherwise the score is the
// fraction of matching dimensions out of the applicable ones: operation and
// path always apply; metadata and body apply only when both fingerprints
// carry a hash for that dimension. The denominator is therefore variable,
// so a fingerprint that never tracked an optional dimension is not
// penalized for it.
func (f RequestFingerprint) Similarity(other RequestFingerprint) float64 {
	if f.Protocol != other.Protocol {
		return 0.0
	}

	matches := 0
	applicable := 2

	if f.OperationHash == other.OperationHash {
		matches++
	}
	if f.PathHash == other.PathHash {
		matches++
	}

	if f.MetadataHash != nil && other.MetadataHash != nil {
		applicable++
		if *f.MetadataHash == *other.MetadataHash {
			matches++
		}
	}
	if f.BodyHash != nil && other.BodyHash != nil {
		applicable++
		if *f.BodyHash == *other.BodyHash {
			matches++
		}
	}

	return float64(matches) / float64(applicable)
}

// Key returns a stable string form of the fingerprint, suitable as a map or
// cache key. Absent optional hashes render as "-" so presence itself is
// part of the key.
func (f RequestFingerprint) Key() string {
	meta := "-"
	if f.MetadataHash != nil {
		meta = fmt.Sprintf("%016x", *f.MetadataHash)
	}
	body := "-"
	if f.BodyHash != nil {
		body = fmt.Sprintf("%016x", *f.BodyHash)
	}
	return fmt.Sprintf("%s:%016x:%016x:%s:%s", f.Protocol, f.OperationHash, f.PathHash, meta, body)
}

func optionalHashEqual(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

func hashBytes(b []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(b)
	return h.Sum64()
}

// hashMetadata folds key/value pairs into the hash in sorted key order, so
// two logically identical metadata sets hash identically regardless of
// insertion order. The sort is a correctness requirement, not an
// optimization.
func hashMetadata(metadata map[string]string) uint64 {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := fnv.New64a()
	for _, k := range keys {
		_, _ = h.Write([]byte(k))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(metadata[k]))
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}
