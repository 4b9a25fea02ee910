package matching

import (
	"regexp"
	"strings"
)

// MatchBodyEquals checks for an exact body match.
func MatchBodyEquals(expected string, body []byte) int {
	if string(body) != expected {
		return 0
	}
	return ScoreBodyEquals
}

// MatchBodyContains checks for a body substring match.
func MatchBodyContains(substr string, body []byte) int {
	if !strings.Contains(string(body), substr) {
		return 0
	}
	return ScoreBodyContains
}

// MatchBodyPattern checks the body against a regex pattern.
// An invalid pattern is treated as no match rather than an error; fixture
// validation rejects invalid patterns before they reach the hot path.
func MatchBodyPattern(pattern string, body []byte) int {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0
	}
	if !re.Match(body) {
		return 0
	}
	return ScoreBodyPattern
}

// ValidateBodyPattern checks if a body regex pattern compiles.
func ValidateBodyPattern(pattern string) error {
	if pattern == "" {
		return nil
	}
	_, err := regexp.Compile(pattern)
	return err
}
