package plan

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// Explain renders the tree rooted at op, one operator per line, indented by
// depth, with the estimated tuple count and attribute statistics:
//
//	PROJECT [a2,b1]  rows=1,000  [a2:5 b1:150]
//	  JOIN a2=b3  rows=1,000  [a2:5 b1:150 b3:5]
//	    ...
//
// Operators that have not been estimated show "rows=?".
func Explain(op Operator) string {
	var sb strings.Builder
	explain(&sb, op, 0)
	return sb.String()
}

func explain(sb *strings.Builder, op Operator, depth int) {
	if op == nil {
		return
	}

	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(header(op))

	if out := op.Output(); out != nil {
		sb.WriteString("  rows=")
		sb.WriteString(humanize.Comma(int64(out.TupleCount())))
		sb.WriteString("  [")
		for i, a := range out.Attributes() {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(a.Render())
		}
		sb.WriteByte(']')
	} else {
		sb.WriteString("  rows=?")
	}
	sb.WriteByte('\n')

	for _, child := range op.Inputs() {
		explain(sb, child, depth+1)
	}
}

func header(op Operator) string {
	switch n := op.(type) {
	case *Scan:
		return "SCAN " + n.Relation().String()
	case *Project:
		return "PROJECT [" + attributeList(n.attributes) + "]"
	case *Select:
		return "SELECT " + n.Predicate().String()
	case *Product:
		return "PRODUCT"
	case *Join:
		return "JOIN " + n.Predicate().String()
	default:
		return op.Kind().String()
	}
}
