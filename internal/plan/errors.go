package plan

import "github.com/cockroachdb/errors"

var (
	// ErrMalformedPlan is returned for plans that cannot be estimated or
	// rewritten: a nil node, a cycle, an input that was not estimated first,
	// or a child the optimizer cannot match to a rebuilt subtree.
	ErrMalformedPlan = errors.New("malformed plan")

	// ErrDegenerateCardinality is returned by a strict Estimator when a
	// selectivity division yields zero tuples.
	ErrDegenerateCardinality = errors.New("degenerate cardinality")
)
