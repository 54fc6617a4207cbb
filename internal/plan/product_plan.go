package plan

var (
	_ Operator = (*Product)(nil)
)

// Product is the Cartesian product of two inputs.
type Product struct {
	estimate
	left  Operator
	right Operator
}

func NewProduct(left Operator, right Operator) *Product {
	return &Product{
		left:  left,
		right: right,
	}
}

func (p *Product) Left() Operator {
	return p.left
}

func (p *Product) Right() Operator {
	return p.right
}

func (p *Product) Inputs() []Operator {
	return []Operator{p.left, p.right}
}

func (p *Product) Kind() Kind {
	return KindProduct
}

func (p *Product) String() string {
	return "PRODUCT(" + p.left.String() + "," + p.right.String() + ")"
}
