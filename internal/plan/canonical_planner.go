package plan

import (
	"github.com/cockroachdb/errors"
	"github.com/yashagw/sjdb/internal/parse/parserdata"
	"github.com/yashagw/sjdb/internal/relation"
)

// Catalogue resolves base relation names to their schema and statistics.
type Catalogue interface {
	Relation(name string) (*relation.Relation, error)
}

// CanonicalPlanner turns parsed query data into the canonical plan: a
// left-deep Product of the scanned tables in FROM order, one Select per WHERE
// term with the first term innermost, and a Project when a field list is
// given.
type CanonicalPlanner struct {
	catalogue Catalogue
}

func NewCanonicalPlanner(catalogue Catalogue) *CanonicalPlanner {
	return &CanonicalPlanner{
		catalogue: catalogue,
	}
}

func (p *CanonicalPlanner) CreatePlan(queryData *parserdata.QueryData) (Operator, error) {
	tables := queryData.Tables()
	if len(tables) == 0 {
		return nil, errors.Wrap(ErrMalformedPlan, "query has no tables")
	}

	// Phase 1: Scan every table and combine them left to right
	available := make(map[string]bool)
	var plan Operator
	for _, name := range tables {
		rel, err := p.catalogue.Relation(name)
		if err != nil {
			return nil, err
		}
		for _, attr := range rel.Names() {
			available[attr] = true
		}
		scan := NewScan(rel)
		if plan == nil {
			plan = scan
		} else {
			plan = NewProduct(plan, scan)
		}
	}

	// Phase 2: Apply each predicate as its own Select
	for _, pred := range queryData.Predicates() {
		for _, attr := range pred.Attributes() {
			if !available[attr] {
				return nil, errors.Wrapf(relation.ErrAttributeNotFound, "%q in predicate %s", attr, pred)
			}
		}
		plan = NewSelect(plan, pred)
	}

	// Phase 3: Project the requested fields
	if queryData.SelectAll() {
		return plan, nil
	}
	fields := queryData.Fields()
	attrs := make([]relation.Attribute, len(fields))
	for i, field := range fields {
		if !available[field] {
			return nil, errors.Wrapf(relation.ErrAttributeNotFound, "%q in field list", field)
		}
		attrs[i] = relation.Named(field)
	}
	return NewProject(plan, attrs), nil
}
