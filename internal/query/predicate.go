package query

import (
	"github.com/yashagw/sjdb/internal/relation"
)

// Predicate is an equality test, either "attribute = literal" or
// "attribute = attribute".
type Predicate struct {
	left  relation.Attribute
	right *relation.Attribute
	value *Constant
}

// NewValuePredicate creates a predicate equating an attribute with a literal.
func NewValuePredicate(left relation.Attribute, value Constant) *Predicate {
	return &Predicate{
		left:  left,
		value: &value,
	}
}

// NewAttributePredicate creates a predicate equating two attributes.
func NewAttributePredicate(left, right relation.Attribute) *Predicate {
	return &Predicate{
		left:  left,
		right: &right,
	}
}

// EqualsValue reports whether the predicate compares an attribute with a
// literal rather than with another attribute.
func (p *Predicate) EqualsValue() bool {
	return p.right == nil
}

func (p *Predicate) LeftAttribute() relation.Attribute {
	return p.left
}

// RightAttribute returns the right-hand attribute. It is the zero Attribute
// for a value predicate.
func (p *Predicate) RightAttribute() relation.Attribute {
	if p.right == nil {
		return relation.Attribute{}
	}
	return *p.right
}

// Value returns the literal of a value predicate, or nil.
func (p *Predicate) Value() *Constant {
	return p.value
}

// Attributes returns the names of the attributes the predicate references.
func (p *Predicate) Attributes() []string {
	if p.right == nil {
		return []string{p.left.Name}
	}
	return []string{p.left.Name, p.right.Name}
}

// AppliesTo checks if every attribute of the predicate is present in rel.
func (p *Predicate) AppliesTo(rel *relation.Relation) bool {
	for _, name := range p.Attributes() {
		if !rel.HasAttribute(name) {
			return false
		}
	}
	return true
}

// String returns e.g. a2="x" or a2=b3.
func (p *Predicate) String() string {
	if p.right == nil {
		return p.left.Name + "=" + p.value.String()
	}
	return p.left.Name + "=" + p.right.Name
}
