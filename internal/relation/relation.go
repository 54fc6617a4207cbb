package relation

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrAttributeNotFound is returned when an attribute is looked up in a
// relation that does not carry it.
var ErrAttributeNotFound = errors.New("attribute not found")

// Relation is the shape of a set of tuples: an estimated tuple count and an
// ordered list of attributes. A named relation is a base table from the
// catalogue; an unnamed one is an intermediate result owned by the operator
// that produced it.
type Relation struct {
	name       string
	tupleCount int
	attributes []Attribute
	index      map[string]int
}

// New creates an unnamed intermediate relation.
func New(tupleCount int) *Relation {
	return &Relation{
		tupleCount: tupleCount,
		attributes: make([]Attribute, 0),
		index:      make(map[string]int),
	}
}

// NewNamed creates a base relation.
func NewNamed(name string, tupleCount int) *Relation {
	r := New(tupleCount)
	r.name = name
	return r
}

func (r *Relation) Name() string {
	return r.name
}

// IsNamed reports whether r is a base relation.
func (r *Relation) IsNamed() bool {
	return r.name != ""
}

func (r *Relation) TupleCount() int {
	return r.tupleCount
}

func (r *Relation) Len() int {
	return len(r.attributes)
}

// AddAttribute appends attr, or replaces the attribute of the same name in
// place so the original order is kept.
func (r *Relation) AddAttribute(attr Attribute) {
	if i, exists := r.index[attr.Name]; exists {
		r.attributes[i] = attr
		return
	}
	r.index[attr.Name] = len(r.attributes)
	r.attributes = append(r.attributes, attr)
}

// Attributes returns a copy of the attribute list.
func (r *Relation) Attributes() []Attribute {
	attrs := make([]Attribute, len(r.attributes))
	copy(attrs, r.attributes)
	return attrs
}

// Names returns the attribute names in order.
func (r *Relation) Names() []string {
	names := make([]string, len(r.attributes))
	for i, a := range r.attributes {
		names[i] = a.Name
	}
	return names
}

// Attribute returns the attribute with the given name.
func (r *Relation) Attribute(name string) (Attribute, error) {
	i, exists := r.index[name]
	if !exists {
		return Attribute{}, errors.Wrapf(ErrAttributeNotFound, "%q in %s", name, r.label())
	}
	return r.attributes[i], nil
}

// HasAttribute checks if the relation contains the named attribute.
func (r *Relation) HasAttribute(name string) bool {
	_, exists := r.index[name]
	return exists
}

// Copy returns a deep copy of r.
func (r *Relation) Copy() *Relation {
	c := NewNamed(r.name, r.tupleCount)
	for _, a := range r.attributes {
		c.AddAttribute(a)
	}
	return c
}

// Concat returns an unnamed relation holding the attributes of r followed by
// those of other, with the product of both tuple counts.
func (r *Relation) Concat(other *Relation) *Relation {
	c := New(r.tupleCount * other.tupleCount)
	for _, a := range r.attributes {
		c.AddAttribute(a)
	}
	for _, a := range other.attributes {
		c.AddAttribute(a)
	}
	return c
}

// Render returns the tuple count and attribute statistics, e.g.
// "(100) [a1:100, a2:15]".
func (r *Relation) Render() string {
	var sb strings.Builder
	if r.name != "" {
		sb.WriteString(r.name)
		sb.WriteByte(' ')
	}
	sb.WriteByte('(')
	sb.WriteString(strconv.Itoa(r.tupleCount))
	sb.WriteString(") [")
	for i, a := range r.attributes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.Render())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (r *Relation) String() string {
	if r.name != "" {
		return r.name
	}
	return "[" + strings.Join(r.Names(), ",") + "]"
}

func (r *Relation) label() string {
	if r.name != "" {
		return "relation " + r.name
	}
	return "relation " + r.String()
}
