package plan

import (
	"github.com/cockroachdb/errors"
	"github.com/yashagw/sjdb/internal/query"
	"github.com/yashagw/sjdb/internal/relation"
)

// testCatalogue is an in-memory Catalogue for plan tests.
type testCatalogue map[string]*relation.Relation

func (c testCatalogue) Relation(name string) (*relation.Relation, error) {
	rel, ok := c[name]
	if !ok {
		return nil, errors.Newf("relation %q not found", name)
	}
	return rel, nil
}

// newTestCatalogue returns the relations used throughout the plan tests:
//
//	A (100) [a1:100, a2:15]
//	B (150) [b1:150, b2:100, b3:5]
//	C (200) [c1:200, c2:100]
func newTestCatalogue() testCatalogue {
	a := relation.NewNamed("A", 100)
	a.AddAttribute(relation.NewAttribute("a1", 100))
	a.AddAttribute(relation.NewAttribute("a2", 15))

	b := relation.NewNamed("B", 150)
	b.AddAttribute(relation.NewAttribute("b1", 150))
	b.AddAttribute(relation.NewAttribute("b2", 100))
	b.AddAttribute(relation.NewAttribute("b3", 5))

	c := relation.NewNamed("C", 200)
	c.AddAttribute(relation.NewAttribute("c1", 200))
	c.AddAttribute(relation.NewAttribute("c2", 100))

	return testCatalogue{"A": a, "B": b, "C": c}
}

func attrEq(left, right string) *query.Predicate {
	return query.NewAttributePredicate(relation.Named(left), relation.Named(right))
}

func strEq(attr, value string) *query.Predicate {
	return query.NewValuePredicate(relation.Named(attr), *query.NewStringConstant(value))
}

func named(names ...string) []relation.Attribute {
	attrs := make([]relation.Attribute, len(names))
	for i, n := range names {
		attrs[i] = relation.Named(n)
	}
	return attrs
}
