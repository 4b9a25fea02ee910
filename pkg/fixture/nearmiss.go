package fixture

import (
	"sort"
	"strings"

	"github.com/mockforge/mockforge/internal/matching"
	"github.com/mockforge/mockforge/pkg/protocol"
)

// FieldResult describes whether a single request-spec field matched the
// request.
type FieldResult struct {
	Field    string      `json:"field"`
	Matched  bool        `json:"matched"`
	Score    int         `json:"score"`
	MaxScore int         `json:"maxScore"`
	Expected interface{} `json:"expected,omitempty"`
	Actual   interface{} `json:"actual,omitempty"`
}

// NearMiss is a fixture that partially matched an incoming request, with a
// per-field breakdown of what did and did not line up. Used by recording
// and debugging surfaces to explain why a request went unanswered.
type NearMiss struct {
	FixtureID       string        `json:"fixtureId"`
	FixtureName     string        `json:"fixtureName,omitempty"`
	Score           int           `json:"score"`
	MaxScore        int           `json:"maxScore"`
	MatchPercentage int           `json:"matchPercentage"`
	Fields          []FieldResult `json:"fields"`
}

// NearMisses evaluates every enabled same-protocol fixture that did NOT
// match the request and returns up to limit of them, best partial match
// first. Fixtures with no field in common score zero and are omitted.
func (s *Store) NearMisses(req *protocol.ProtocolRequest, limit int) []NearMiss {
	if req == nil || limit <= 0 {
		return nil
	}

	var misses []NearMiss
	for _, f := range s.ListByProtocol(req.Protocol) {
		if !f.IsEnabled() || f.Matches(req) {
			continue
		}
		nm := f.matchBreakdown(req)
		if nm.Score > 0 {
			misses = append(misses, nm)
		}
	}

	sort.Slice(misses, func(i, j int) bool {
		if misses[i].MatchPercentage != misses[j].MatchPercentage {
			return misses[i].MatchPercentage > misses[j].MatchPercentage
		}
		return misses[i].FixtureID < misses[j].FixtureID
	})

	if len(misses) > limit {
		misses = misses[:limit]
	}
	return misses
}

// matchBreakdown evaluates every populated spec field against the request
// without short-circuiting, returning per-field results.
func (f *Fixture) matchBreakdown(req *protocol.ProtocolRequest) NearMiss {
	nm := NearMiss{FixtureID: f.ID, FixtureName: f.Name}
	spec := &f.Request

	add := func(field string, score, maxScore int, expected, actual interface{}) {
		nm.Fields = append(nm.Fields, FieldResult{
			Field:    field,
			Matched:  score > 0,
			Score:    score,
			MaxScore: maxScore,
			Expected: expected,
			Actual:   actual,
		})
		nm.Score += score
		nm.MaxScore += maxScore
	}

	if spec.Pattern != "" {
		score := 0
		if spec.Pattern == req.Pattern {
			score = matching.ScorePattern
		}
		add("pattern", score, matching.ScorePattern, spec.Pattern, req.Pattern)
	}

	if spec.Operation != "" {
		score := 0
		if strings.EqualFold(spec.Operation, req.Operation) {
			score = matching.ScoreOperation
		}
		add("operation", score, matching.ScoreOperation, spec.Operation, req.Operation)
	}

	if spec.Path != "" {
		add("path", matching.MatchPath(spec.Path, req.Path), matching.ScorePathExact, spec.Path, req.Path)
	}

	if spec.Topic != "" {
		add("topic", matching.MatchPath(spec.Topic, req.Topic), matching.ScorePathExact, spec.Topic, req.Topic)
	}

	if spec.RoutingKey != "" {
		score := 0
		if matching.MatchValue(spec.RoutingKey, req.RoutingKey) {
			score = matching.ScoreRoutingKey
		}
		add("routingKey", score, matching.ScoreRoutingKey, spec.RoutingKey, req.RoutingKey)
	}

	if spec.Partition != nil {
		score := 0
		var actual interface{}
		if req.Partition != nil {
			actual = *req.Partition
			if *spec.Partition == *req.Partition {
				score = matching.ScorePartition
			}
		}
		add("partition", score, matching.ScorePartition, *spec.Partition, actual)
	}

	if spec.QoS != nil {
		score := 0
		var actual interface{}
		if req.QoS != nil {
			actual = *req.QoS
			if *spec.QoS == *req.QoS {
				score = matching.ScoreQoS
			}
		}
		add("qos", score, matching.ScoreQoS, *spec.QoS, actual)
	}

	if len(spec.Headers) > 0 {
		maxScore := matching.ScoreHeader * len(spec.Headers)
		add("headers", matching.MatchMetadata(spec.Headers, req.Metadata), maxScore, spec.Headers, req.Metadata)
	}

	if spec.BodyEquals != "" {
		add("bodyEquals", matching.MatchBodyEquals(spec.BodyEquals, req.Body), matching.ScoreBodyEquals, spec.BodyEquals, string(req.Body))
	}

	if spec.BodyContains != "" {
		add("bodyContains", matching.MatchBodyContains(spec.BodyContains, req.Body), matching.ScoreBodyContains, spec.BodyContains, string(req.Body))
	}

	if spec.BodyPattern != "" {
		add("bodyPattern", matching.MatchBodyPattern(spec.BodyPattern, req.Body), matching.ScoreBodyPattern, spec.BodyPattern, string(req.Body))
	}

	if len(spec.BodyJSONPath) > 0 {
		maxScore := matching.ScoreJSONPathCondition * len(spec.BodyJSONPath)
		jp := matching.MatchJSONPath(spec.BodyJSONPath, req.Body)
		add("bodyJsonPath", jp.Score, maxScore, spec.BodyJSONPath, nil)
	}

	if spec.Condition != "" {
		score := 0
		if ok, err := conditions.Eval(spec.Condition, requestEnv(req)); err == nil && ok {
			score = matching.ScoreCondition
		}
		add("condition", score, matching.ScoreCondition, spec.Condition, nil)
	}

	if nm.MaxScore > 0 {
		nm.MatchPercentage = nm.Score * 100 / nm.MaxScore
	}
	return nm
}
