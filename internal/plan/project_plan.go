package plan

import (
	"strings"

	"github.com/yashagw/sjdb/internal/relation"
)

var (
	_ Operator = (*Project)(nil)
)

// Project restricts its input to a list of attributes.
type Project struct {
	estimate
	input      Operator
	attributes []relation.Attribute
}

func NewProject(input Operator, attributes []relation.Attribute) *Project {
	attrs := make([]relation.Attribute, len(attributes))
	copy(attrs, attributes)
	return &Project{
		input:      input,
		attributes: attrs,
	}
}

func (p *Project) Input() Operator {
	return p.input
}

// Attributes returns a copy of the projected attribute list.
func (p *Project) Attributes() []relation.Attribute {
	attrs := make([]relation.Attribute, len(p.attributes))
	copy(attrs, p.attributes)
	return attrs
}

func (p *Project) Inputs() []Operator {
	return []Operator{p.input}
}

func (p *Project) Kind() Kind {
	return KindProject
}

func (p *Project) String() string {
	return "PROJECT[" + attributeList(p.attributes) + "](" + p.input.String() + ")"
}

func attributeList(attrs []relation.Attribute) string {
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.Name
	}
	return strings.Join(names, ",")
}
