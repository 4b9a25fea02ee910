package matching

import "strings"

// MatchMetadata checks if every expected key/value pair is present in the
// request metadata: a subset match, never an exact-set comparison. Values
// support * wildcards. Keys are compared case-insensitively, matching the
// behavior of HTTP headers and AMQP properties.
// Returns ScoreHeader per matched entry, or 0 if any entry is missing.
func MatchMetadata(expected, actual map[string]string) int {
	if len(expected) == 0 {
		return 0
	}

	score := 0
	for name, want := range expected {
		got, ok := lookupFold(actual, name)
		if !ok {
			return 0
		}
		if !MatchValue(want, got) {
			return 0
		}
		score += ScoreHeader
	}
	return score
}

// MatchValue compares a single expected value against an actual one.
// Supports * as a wildcard matching any sequence of characters.
func MatchValue(pattern, value string) bool {
	if pattern == value {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return false
	}
	return matchWildcard(pattern, value)
}

// lookupFold finds a metadata value by case-insensitive key.
func lookupFold(metadata map[string]string, key string) (string, bool) {
	if v, ok := metadata[key]; ok {
		return v, true
	}
	for k, v := range metadata {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// matchWildcard performs simple wildcard pattern matching.
// * matches any sequence of characters.
func matchWildcard(pattern, value string) bool {
	parts := strings.Split(pattern, "*")

	// Track position in value
	pos := 0

	for i, part := range parts {
		if part == "" {
			continue
		}

		// First part must be a prefix
		if i == 0 {
			if !strings.HasPrefix(value, part) {
				return false
			}
			pos = len(part)
			continue
		}

		// Last part must be a suffix
		if i == len(parts)-1 {
			if !strings.HasSuffix(value[pos:], part) {
				return false
			}
			continue
		}

		// Middle parts match anywhere after the current position
		idx := strings.Index(value[pos:], part)
		if idx == -1 {
			return false
		}
		pos += idx + len(part)
	}

	return true
}
