package plan

import (
	"github.com/yashagw/sjdb/internal/relation"
)

// Kind identifies one of the closed set of operator variants.
type Kind int

const (
	KindScan Kind = iota
	KindProject
	KindSelect
	KindProduct
	KindJoin
)

func (k Kind) String() string {
	switch k {
	case KindScan:
		return "SCAN"
	case KindProject:
		return "PROJECT"
	case KindSelect:
		return "SELECT"
	case KindProduct:
		return "PRODUCT"
	case KindJoin:
		return "JOIN"
	default:
		return "UNKNOWN"
	}
}

// Operator is a node of a logical query plan. The set of implementations is
// closed: *Scan, *Project, *Select, *Product and *Join. Inputs are fixed at
// construction; only the estimated output is ever set afterwards, and only by
// an Estimator.
type Operator interface {
	// Inputs returns the child operators, left to right.
	Inputs() []Operator
	// Output returns the estimated output relation, or nil if the operator
	// has not been estimated.
	Output() *relation.Relation
	// Kind returns the variant of the operator.
	Kind() Kind
	// String returns a compact one-line rendering of the subtree.
	String() string

	setOutput(*relation.Relation)
}

// estimate holds the output relation computed by the Estimator.
type estimate struct {
	output *relation.Relation
}

func (e *estimate) Output() *relation.Relation {
	return e.output
}

func (e *estimate) setOutput(r *relation.Relation) {
	e.output = r
}
