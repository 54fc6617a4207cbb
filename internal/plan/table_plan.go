package plan

import (
	"github.com/yashagw/sjdb/internal/relation"
)

var (
	_ Operator = (*Scan)(nil)
)

// Scan reads a base relation.
type Scan struct {
	estimate
	rel *relation.Relation
}

func NewScan(rel *relation.Relation) *Scan {
	return &Scan{
		rel: rel,
	}
}

// Relation returns the scanned base relation.
func (s *Scan) Relation() *relation.Relation {
	return s.rel
}

func (s *Scan) Inputs() []Operator {
	return nil
}

func (s *Scan) Kind() Kind {
	return KindScan
}

func (s *Scan) String() string {
	return s.rel.String()
}
