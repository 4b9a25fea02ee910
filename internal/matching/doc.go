// Package matching provides the field-level matching algorithms the unified
// fixture engine is built on: path and topic patterns, metadata subsets,
// body criteria, JSONPath conditions, and custom match expressions.
//
// Every function is protocol-blind: it compares pattern against value and
// returns a specificity score, zero meaning no match. Scores only matter
// relative to each other; they break ties between fixtures that match the
// same request at equal priority.
package matching
