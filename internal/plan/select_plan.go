package plan

import (
	"github.com/yashagw/sjdb/internal/query"
)

var (
	_ Operator = (*Select)(nil)
)

// Select filters its input by an equality predicate.
type Select struct {
	estimate
	input Operator
	pred  *query.Predicate
}

func NewSelect(input Operator, pred *query.Predicate) *Select {
	return &Select{
		input: input,
		pred:  pred,
	}
}

func (s *Select) Input() Operator {
	return s.input
}

func (s *Select) Predicate() *query.Predicate {
	return s.pred
}

func (s *Select) Inputs() []Operator {
	return []Operator{s.input}
}

func (s *Select) Kind() Kind {
	return KindSelect
}

func (s *Select) String() string {
	return "SELECT[" + s.pred.String() + "](" + s.input.String() + ")"
}
