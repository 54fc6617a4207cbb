package parserdata

import (
	"github.com/yashagw/sjdb/internal/query"
)

// QueryData is the parsed form of a SELECT query. A nil field list means
// every attribute ("SELECT *").
type QueryData struct {
	fields     []string
	tables     []string
	predicates []*query.Predicate
}

func NewQueryData(fields []string, tables []string, predicates []*query.Predicate) *QueryData {
	return &QueryData{
		fields:     fields,
		tables:     tables,
		predicates: predicates,
	}
}

func (q *QueryData) Fields() []string {
	return q.fields
}

// SelectAll reports whether the query selects every attribute.
func (q *QueryData) SelectAll() bool {
	return q.fields == nil
}

func (q *QueryData) Tables() []string {
	return q.tables
}

func (q *QueryData) Predicates() []*query.Predicate {
	return q.predicates
}
