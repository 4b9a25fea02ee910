package matching

// Match score constants for addressing fields.
// Higher scores indicate more specific matches.
const (
	// ScoreOperation is the score for an operation match.
	ScoreOperation = 10

	// ScorePathExact is the score for an exact path or topic match.
	ScorePathExact = 15

	// ScorePathNamedParams is the score for a path with named parameters.
	ScorePathNamedParams = 12

	// ScorePathGlob is the score for a glob or topic-filter match.
	ScorePathGlob = 10

	// ScorePattern is the score for a communication pattern match.
	ScorePattern = 5

	// ScoreRoutingKey is the score for a routing key match.
	ScoreRoutingKey = 10

	// ScorePartition is the score for a partition match.
	ScorePartition = 5

	// ScoreQoS is the score for a QoS level match.
	ScoreQoS = 5
)

// Match score constants for metadata and body criteria.
const (
	// ScoreHeader is the score for each matched metadata entry.
	ScoreHeader = 10

	// ScoreBodyEquals is the score for an exact body match.
	ScoreBodyEquals = 25

	// ScoreBodyPattern is the score for a body regex pattern match.
	// Between contains (20) and equals (25).
	ScoreBodyPattern = 22

	// ScoreBodyContains is the score for a body substring match.
	ScoreBodyContains = 20

	// ScoreJSONPathCondition is the score per matched JSONPath condition.
	ScoreJSONPathCondition = 15

	// ScoreCondition is the score for a matched custom expression.
	ScoreCondition = 15
)
