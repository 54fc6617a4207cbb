package optimizer

import (
	"github.com/cockroachdb/errors"
	"github.com/yashagw/sjdb/internal/plan"
	"github.com/yashagw/sjdb/internal/query"
	"github.com/yashagw/sjdb/internal/relation"
)

// entry is a canonical operator in discovery order. inputs are the entry ids
// of its children.
type entry struct {
	op     plan.Operator
	inputs []int
	// rel is the resolved base relation of a scan.
	rel *relation.Relation
}

// rewrite is the state of a single Optimize call.
type rewrite struct {
	*Optimizer

	entries  []entry
	pending  worklist
	required bag
	// scanned holds every attribute of every scanned relation.
	scanned map[string]bool
	// referenced lists the attributes named by predicates and projections.
	referenced []string
	// subst maps an entry id to its rebuilt subtree.
	subst []plan.Operator
}

func (rw *rewrite) run(canonical plan.Operator) (plan.Operator, error) {
	rw.scanned = make(map[string]bool)
	if _, err := rw.linearize(canonical); err != nil {
		return nil, err
	}
	for _, name := range rw.referenced {
		if !rw.scanned[name] {
			return nil, errors.Wrapf(relation.ErrAttributeNotFound, "%q is not an attribute of any scanned relation", name)
		}
	}

	// The result carries exactly the columns of the input root. Projects
	// below the root only narrow what flows upwards and are rebuilt from
	// scratch.
	columns := rw.columns()
	rw.required.add(columns...)

	if err := rw.rebuild(); err != nil {
		return nil, err
	}

	for _, pred := range rw.pending.preds {
		rw.logger.Warn("dropping unplaced predicate", "predicate", pred.String())
	}

	result := rw.subst[0]
	if !sameColumns(columns, result.Output()) {
		attrs := make([]relation.Attribute, len(columns))
		for i, name := range columns {
			attrs[i] = relation.Named(name)
		}
		result = plan.NewProject(result, attrs)
		if err := rw.estimator.Estimate(result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// linearize appends op and its descendants to the discovery list in preorder
// and returns op's entry id. Predicates are queued after the inputs, innermost
// first, which is the order the plan applies them in.
func (rw *rewrite) linearize(op plan.Operator) (int, error) {
	if op == nil {
		return 0, errors.Wrap(plan.ErrMalformedPlan, "nil operator")
	}

	id := len(rw.entries)
	rw.entries = append(rw.entries, entry{op: op})

	var pred *query.Predicate
	switch n := op.(type) {
	case *plan.Scan:
		rel, err := rw.resolve(n)
		if err != nil {
			return 0, err
		}
		rw.entries[id].rel = rel
		for _, name := range rel.Names() {
			rw.scanned[name] = true
		}
	case *plan.Project:
		for _, a := range n.Attributes() {
			rw.referenced = append(rw.referenced, a.Name)
		}
	case *plan.Select:
		pred = n.Predicate()
	case *plan.Product:
	case *plan.Join:
		// Re-optimising our own output: a Join is a Product plus its predicate.
		if n.Predicate().EqualsValue() {
			return 0, errors.Wrapf(plan.ErrMalformedPlan, "join on value predicate %s", n.Predicate())
		}
		pred = n.Predicate()
	default:
		return 0, errors.AssertionFailedf("unexpected operator %T", op)
	}

	var inputs []int
	for _, in := range op.Inputs() {
		child, err := rw.linearize(in)
		if err != nil {
			return 0, err
		}
		inputs = append(inputs, child)
	}
	rw.entries[id].inputs = inputs

	if pred != nil {
		rw.collect(pred)
	}
	return id, nil
}

// columns returns the attribute names output by the root entry, in order.
func (rw *rewrite) columns() []string {
	cols := make([][]string, len(rw.entries))
	// Children always have larger ids than their parent.
	for id := len(rw.entries) - 1; id >= 0; id-- {
		e := rw.entries[id]
		switch n := e.op.(type) {
		case *plan.Scan:
			cols[id] = e.rel.Names()
		case *plan.Project:
			for _, a := range n.Attributes() {
				cols[id] = append(cols[id], a.Name)
			}
		default:
			for _, in := range e.inputs {
				cols[id] = append(cols[id], cols[in]...)
			}
		}
	}

	seen := make(map[string]bool, len(cols[0]))
	var names []string
	for _, name := range cols[0] {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func (rw *rewrite) collect(pred *query.Predicate) {
	rw.pending.push(pred)
	rw.referenced = append(rw.referenced, pred.Attributes()...)
	if !pred.EqualsValue() {
		rw.required.add(pred.Attributes()...)
	}
}

func (rw *rewrite) resolve(s *plan.Scan) (*relation.Relation, error) {
	rel := s.Relation()
	if rel == nil {
		return nil, errors.Wrap(plan.ErrMalformedPlan, "scan of nil relation")
	}
	if rw.catalogue == nil || !rel.IsNamed() {
		return rel, nil
	}
	return rw.catalogue.Relation(rel.Name())
}

// rebuild visits the discovery list backwards, so every child is rebuilt
// before its parent.
func (rw *rewrite) rebuild() error {
	rw.subst = make([]plan.Operator, len(rw.entries))
	for id := len(rw.entries) - 1; id >= 0; id-- {
		e := &rw.entries[id]

		var op plan.Operator
		var err error
		switch e.op.(type) {
		case *plan.Scan:
			op, err = rw.scan(e)
		case *plan.Project, *plan.Select:
			// Folded into the scans and products below.
			op, err = rw.lookup(e.inputs[0])
		case *plan.Product, *plan.Join:
			op, err = rw.product(e)
		default:
			err = errors.AssertionFailedf("unexpected operator %T", e.op)
		}
		if err != nil {
			return err
		}
		rw.subst[id] = op
	}
	return nil
}

// scan builds a fresh scan with every pending predicate local to the relation
// stacked on it, then projects away attributes nothing above requires.
func (rw *rewrite) scan(e *entry) (plan.Operator, error) {
	rel := e.rel
	var op plan.Operator = plan.NewScan(rel)
	if err := rw.estimator.Estimate(op); err != nil {
		return nil, err
	}

	local := rw.pending.drain(func(pred *query.Predicate) bool {
		if pred.EqualsValue() {
			return rel.HasAttribute(pred.LeftAttribute().Name)
		}
		return pred.AppliesTo(rel)
	})
	for _, pred := range local {
		op = plan.NewSelect(op, pred)
		if err := rw.estimator.Estimate(op); err != nil {
			return nil, err
		}
		if !pred.EqualsValue() {
			rw.consume(pred)
		}
		rw.logger.Debug("pushed selection to scan",
			"relation", rel.Name(),
			"predicate", pred.String(),
			"rows", op.Output().TupleCount())
	}

	attrs, all := rw.required.subset(rel)
	if all {
		return op, nil
	}
	return rw.project(op, attrs)
}

// product rebuilds a Product over the rebuilt children. The first pending
// attribute equality spanning its output turns it into a Join; further ones
// are stacked above the Join as selections.
func (rw *rewrite) product(e *entry) (plan.Operator, error) {
	left, err := rw.lookup(e.inputs[0])
	if err != nil {
		return nil, err
	}
	right, err := rw.lookup(e.inputs[1])
	if err != nil {
		return nil, err
	}

	product := plan.NewProduct(left, right)
	if err := rw.estimator.Estimate(product); err != nil {
		return nil, err
	}

	preds := rw.pending.drain(func(pred *query.Predicate) bool {
		return !pred.EqualsValue() && pred.AppliesTo(product.Output())
	})
	if len(preds) == 0 {
		return product, nil
	}

	join := plan.NewJoin(left, right, preds[0])
	if err := rw.estimator.Estimate(join); err != nil {
		return nil, err
	}
	rw.logger.Debug("fused product into join",
		"predicate", preds[0].String(),
		"rows", join.Output().TupleCount())

	var op plan.Operator = join
	for _, pred := range preds[1:] {
		op = plan.NewSelect(op, pred)
		if err := rw.estimator.Estimate(op); err != nil {
			return nil, err
		}
	}
	for _, pred := range preds {
		rw.consume(pred)
	}

	// Join attributes still required elsewhere on both sides keep the full
	// output.
	if rw.required.has(preds[0].LeftAttribute().Name) && rw.required.has(preds[0].RightAttribute().Name) {
		return op, nil
	}
	attrs, _ := rw.required.subset(join.Output())
	return rw.project(op, attrs)
}

// consume releases one requirement on each attribute of a placed attribute
// equality.
func (rw *rewrite) consume(pred *query.Predicate) {
	rw.required.remove(pred.LeftAttribute().Name)
	rw.required.remove(pred.RightAttribute().Name)
}

// project narrows input to attrs. An input none of whose attributes are
// required is left whole; the root Project drops its columns.
func (rw *rewrite) project(input plan.Operator, attrs []relation.Attribute) (plan.Operator, error) {
	if len(attrs) == 0 {
		return input, nil
	}
	op := plan.NewProject(input, attrs)
	if err := rw.estimator.Estimate(op); err != nil {
		return nil, err
	}
	return op, nil
}

func (rw *rewrite) lookup(id int) (plan.Operator, error) {
	if rw.subst[id] == nil {
		return nil, errors.Wrapf(plan.ErrMalformedPlan, "no rebuilt subtree for %s", rw.entries[id].op.Kind())
	}
	return rw.subst[id], nil
}

// sameColumns reports whether out carries exactly the attributes named by
// names.
func sameColumns(names []string, out *relation.Relation) bool {
	if len(names) != out.Len() {
		return false
	}
	for _, name := range names {
		if !out.HasAttribute(name) {
			return false
		}
	}
	return true
}
