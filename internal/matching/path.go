package matching

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchPath checks if the request path (or topic, queue, service.method)
// matches the pattern. Returns a score > 0 if matched, 0 if not.
// Exact matches score higher than pattern matches.
// Supports:
//   - Exact match: "/api/users" matches "/api/users"
//   - Named params: "/api/users/{id}" matches "/api/users/123"
//   - MQTT topic filters: "sensors/+/temp" and "sensors/#"
//   - Globs: "/api/**" matches "/api/users/123" (doublestar syntax)
func MatchPath(pattern, path string) int {
	if pattern == path {
		return ScorePathExact
	}

	// Named parameter pattern (e.g., /api/users/{id})
	if strings.Contains(pattern, "{") && strings.Contains(pattern, "}") {
		if matchNamedParams(pattern, path) {
			return ScorePathNamedParams
		}
	}

	// MQTT-style topic filter (+ single level, # multi level)
	if strings.Contains(pattern, "+") || strings.Contains(pattern, "#") {
		if MatchTopicFilter(pattern, path) {
			return ScorePathGlob
		}
	}

	// Glob match, ** for multi-segment
	if strings.ContainsAny(pattern, "*?[") {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return ScorePathGlob
		}
	}

	return 0
}

// matchNamedParams checks if path matches a pattern with named parameters.
// Example: "/users/{id}" matches "/users/123"
func matchNamedParams(pattern, path string) bool {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	// Must have same number of segments
	if len(patternParts) != len(pathParts) {
		return false
	}

	for i, patternPart := range patternParts {
		// Named parameter matches any value
		if strings.HasPrefix(patternPart, "{") && strings.HasSuffix(patternPart, "}") {
			continue
		}
		// Literal parts must match exactly
		if patternPart != pathParts[i] {
			return false
		}
	}

	return true
}

// MatchTopicFilter checks a topic against an MQTT-style filter.
// "+" matches exactly one level, "#" matches all remaining levels and is
// only valid as the final level.
func MatchTopicFilter(filter, topic string) bool {
	filterParts := strings.Split(filter, "/")
	topicParts := strings.Split(topic, "/")

	for i, fp := range filterParts {
		if fp == "#" {
			// Must be the last filter level
			return i == len(filterParts)-1
		}
		if i >= len(topicParts) {
			return false
		}
		if fp == "+" {
			continue
		}
		if fp != topicParts[i] {
			return false
		}
	}

	return len(filterParts) == len(topicParts)
}

// PathVariables extracts named path parameters from a pattern match.
// Example: pattern "/users/{id}" with path "/users/123" returns {"id": "123"}.
// Returns an empty map when the pattern has no parameters or does not match.
func PathVariables(pattern, path string) map[string]string {
	result := make(map[string]string)

	if !strings.Contains(pattern, "{") {
		return result
	}

	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")
	if len(patternParts) != len(pathParts) {
		return result
	}

	for i, patternPart := range patternParts {
		if strings.HasPrefix(patternPart, "{") && strings.HasSuffix(patternPart, "}") {
			name := patternPart[1 : len(patternPart)-1]
			result[name] = pathParts[i]
		}
	}

	return result
}
