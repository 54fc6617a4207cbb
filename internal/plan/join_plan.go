package plan

import (
	"github.com/yashagw/sjdb/internal/query"
)

var (
	_ Operator = (*Join)(nil)
)

// Join is an equi-join of two inputs on an attribute-to-attribute predicate.
// It never appears in a canonical plan; the optimizer introduces it by fusing
// a Product with a matching Select.
type Join struct {
	estimate
	left  Operator
	right Operator
	pred  *query.Predicate
}

func NewJoin(left Operator, right Operator, pred *query.Predicate) *Join {
	return &Join{
		left:  left,
		right: right,
		pred:  pred,
	}
}

func (j *Join) Left() Operator {
	return j.left
}

func (j *Join) Right() Operator {
	return j.right
}

func (j *Join) Predicate() *query.Predicate {
	return j.pred
}

func (j *Join) Inputs() []Operator {
	return []Operator{j.left, j.right}
}

func (j *Join) Kind() Kind {
	return KindJoin
}

func (j *Join) String() string {
	return "JOIN[" + j.pred.String() + "](" + j.left.String() + "," + j.right.String() + ")"
}
