package fixture

import (
	"strings"

	"github.com/mockforge/mockforge/internal/matching"
	"github.com/mockforge/mockforge/pkg/protocol"
)

// conditions is the shared expression evaluator; the compile cache is
// per-process since fixture conditions repeat across requests.
var conditions = matching.NewConditionEvaluator()

// Matches reports whether the fixture answers the request: the protocol
// must be equal and every populated field of the request spec must match.
// Unpopulated spec fields always match. Header matching is a subset check.
func (f *Fixture) Matches(req *protocol.ProtocolRequest) bool {
	return f.MatchScore(req) > 0
}

// MatchScore returns the fixture's specificity for the request: 0 when any
// populated spec field mismatches, otherwise the sum of the matched field
// scores plus one. The baseline one keeps an all-wildcard fixture (every
// field unset) a valid, lowest-specificity match. Scores are deterministic
// and are used to break ties between fixtures of equal priority.
func (f *Fixture) MatchScore(req *protocol.ProtocolRequest) int {
	if req == nil || f.Protocol != req.Protocol {
		return 0
	}

	spec := &f.Request
	score := 1

	if spec.Pattern != "" {
		if spec.Pattern != req.Pattern {
			return 0
		}
		score += matching.ScorePattern
	}

	// Operation names are case-insensitive across protocols (GET vs get)
	if spec.Operation != "" {
		if !strings.EqualFold(spec.Operation, req.Operation) {
			return 0
		}
		score += matching.ScoreOperation
	}

	if spec.Path != "" {
		pathScore := matching.MatchPath(spec.Path, req.Path)
		if pathScore == 0 {
			return 0
		}
		score += pathScore
	}

	if spec.Topic != "" {
		topicScore := matching.MatchPath(spec.Topic, req.Topic)
		if topicScore == 0 {
			return 0
		}
		score += topicScore
	}

	if spec.RoutingKey != "" {
		if !matching.MatchValue(spec.RoutingKey, req.RoutingKey) {
			return 0
		}
		score += matching.ScoreRoutingKey
	}

	if spec.Partition != nil {
		if req.Partition == nil || *spec.Partition != *req.Partition {
			return 0
		}
		score += matching.ScorePartition
	}

	if spec.QoS != nil {
		if req.QoS == nil || *spec.QoS != *req.QoS {
			return 0
		}
		score += matching.ScoreQoS
	}

	if len(spec.Headers) > 0 {
		headerScore := matching.MatchMetadata(spec.Headers, req.Metadata)
		if headerScore == 0 {
			return 0
		}
		score += headerScore
	}

	// Body criteria combine with AND logic
	if spec.BodyEquals != "" {
		s := matching.MatchBodyEquals(spec.BodyEquals, req.Body)
		if s == 0 {
			return 0
		}
		score += s
	}

	if spec.BodyContains != "" {
		s := matching.MatchBodyContains(spec.BodyContains, req.Body)
		if s == 0 {
			return 0
		}
		score += s
	}

	if spec.BodyPattern != "" {
		s := matching.MatchBodyPattern(spec.BodyPattern, req.Body)
		if s == 0 {
			return 0
		}
		score += s
	}

	if len(spec.BodyJSONPath) > 0 {
		jp := matching.MatchJSONPath(spec.BodyJSONPath, req.Body)
		if jp.Score == 0 {
			return 0
		}
		score += jp.Score
	}

	if spec.Condition != "" {
		ok, err := conditions.Eval(spec.Condition, requestEnv(req))
		if err != nil || !ok {
			// A failing expression never matches; it never panics either
			return 0
		}
		score += matching.ScoreCondition
	}

	return score
}

// PathVariables extracts {name} path parameters captured by the fixture's
// path spec for the given request. Used as implicit template variables.
func (f *Fixture) PathVariables(req *protocol.ProtocolRequest) map[string]string {
	if f.Request.Path == "" || req == nil {
		return nil
	}
	vars := matching.PathVariables(f.Request.Path, req.Path)
	if len(vars) == 0 {
		return nil
	}
	return vars
}

func requestEnv(req *protocol.ProtocolRequest) map[string]interface{} {
	return matching.RequestEnv(
		req.Operation,
		req.Path,
		req.Topic,
		req.RoutingKey,
		req.Partition,
		req.QoS,
		req.Metadata,
		req.Body,
	)
}
