package relation

import "fmt"

// Attribute is a named column together with its estimated number of
// distinct values. Two attributes are the same attribute when their names
// match; the value count is statistics, not identity.
type Attribute struct {
	Name       string
	ValueCount int
}

// NewAttribute creates an attribute with the given distinct value count.
func NewAttribute(name string, valueCount int) Attribute {
	return Attribute{Name: name, ValueCount: valueCount}
}

// Named creates an attribute reference carrying no statistics, as used in
// projection lists and predicates.
func Named(name string) Attribute {
	return Attribute{Name: name}
}

// SameAs reports whether both attributes refer to the same column.
func (a Attribute) SameAs(other Attribute) bool {
	return a.Name == other.Name
}

// WithValueCount returns a copy of a with a different distinct value count.
func (a Attribute) WithValueCount(n int) Attribute {
	a.ValueCount = n
	return a
}

func (a Attribute) String() string {
	return a.Name
}

// Render returns the attribute with its statistics, e.g. "a2:15".
func (a Attribute) Render() string {
	return fmt.Sprintf("%s:%d", a.Name, a.ValueCount)
}
