package plan

// WalkTree visits op and then its inputs, left to right, stopping at the
// first error returned by visitor.
func WalkTree(op Operator, visitor func(Operator) error) error {
	if op == nil {
		return nil
	}

	if err := visitor(op); err != nil {
		return err
	}

	for _, child := range op.Inputs() {
		if err := WalkTree(child, visitor); err != nil {
			return err
		}
	}

	return nil
}

// CountNodes counts the operators in the tree rooted at op.
func CountNodes(op Operator) int {
	if op == nil {
		return 0
	}

	count := 1
	for _, child := range op.Inputs() {
		count += CountNodes(child)
	}

	return count
}

// Scans returns the Scan operators of the tree in left-to-right order.
func Scans(op Operator) []*Scan {
	var scans []*Scan
	_ = WalkTree(op, func(n Operator) error {
		if s, ok := n.(*Scan); ok {
			scans = append(scans, s)
		}
		return nil
	})
	return scans
}
