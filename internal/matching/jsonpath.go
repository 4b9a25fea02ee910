package matching

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/ohler55/ojg/jp"
)

// JSONPathResult contains the results of JSONPath matching.
type JSONPathResult struct {
	// Score is the total match score (ScoreJSONPathCondition per matched condition)
	Score int
	// Matched contains the values extracted by each JSONPath expression.
	// Keys are sanitized versions of the JSONPath (e.g., "$.user.name" -> "user_name")
	Matched map[string]interface{}
}

// MatchJSONPath evaluates JSONPath conditions against a JSON body.
// Returns ScoreJSONPathCondition per matched condition plus the extracted
// values. Returns a zero result if the body is not valid JSON or any
// condition fails; all conditions must match.
//
// An expected value of {"exists": bool} is an existence check rather than
// an equality comparison.
func MatchJSONPath(conditions map[string]interface{}, body []byte) JSONPathResult {
	if len(conditions) == 0 {
		return JSONPathResult{}
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		// Not valid JSON - no match, not an error
		return JSONPathResult{}
	}

	result := JSONPathResult{
		Matched: make(map[string]interface{}),
	}

	for path, expected := range conditions {
		matched, value := matchSingleJSONPath(path, expected, data)
		if !matched {
			return JSONPathResult{}
		}
		result.Score += ScoreJSONPathCondition
		if value != nil {
			result.Matched[sanitizeJSONPathKey(path)] = value
		}
	}

	return result
}

// matchSingleJSONPath evaluates a single JSONPath condition.
// Returns (true, extractedValue) if matched, (false, nil) if not.
func matchSingleJSONPath(path string, expected interface{}, data interface{}) (bool, interface{}) {
	expr, err := jp.ParseString(path)
	if err != nil {
		// Invalid JSONPath expression - treat as no match
		return false, nil
	}

	results := expr.Get(data)

	if len(results) == 0 {
		// exists: false matches when nothing is found
		if exists, ok := existenceCheck(expected); ok && !exists {
			return true, nil
		}
		return false, nil
	}

	if exists, ok := existenceCheck(expected); ok {
		if exists {
			return true, results[0]
		}
		return false, nil
	}

	// Wildcard paths return multiple results; any match suffices
	for _, result := range results {
		if valuesEqual(result, expected) {
			return true, result
		}
	}

	return false, nil
}

// existenceCheck reports whether expected is an {"exists": bool} object and
// if so returns the bool.
func existenceCheck(expected interface{}) (exists bool, ok bool) {
	m, isMap := expected.(map[string]interface{})
	if !isMap || len(m) != 1 {
		return false, false
	}
	v, has := m["exists"]
	if !has {
		return false, false
	}
	b, isBool := v.(bool)
	return b, isBool
}

// valuesEqual compares two values for equality, handling the numeric type
// coercion JSON decoding introduces.
func valuesEqual(actual, expected interface{}) bool {
	if actual == nil && expected == nil {
		return true
	}
	if actual == nil || expected == nil {
		return false
	}

	if reflect.DeepEqual(actual, expected) {
		return true
	}

	// JSON numbers decode as float64; fixture values may be typed ints
	actualNum, actualIsNum := toFloat64(actual)
	expectedNum, expectedIsNum := toFloat64(expected)
	if actualIsNum && expectedIsNum {
		return actualNum == expectedNum
	}

	return false
}

// toFloat64 attempts to convert a value to float64.
func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	default:
		return 0, false
	}
}

// sanitizeJSONPathKey converts a JSONPath expression to a valid key name.
// Example: "$.user.name" -> "user_name", "$.items[0].id" -> "items_0_id"
func sanitizeJSONPathKey(path string) string {
	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")

	var b strings.Builder
	lastUnderscore := false
	for _, r := range path {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
