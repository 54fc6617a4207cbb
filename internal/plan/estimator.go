package plan

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/yashagw/sjdb/internal/query"
	"github.com/yashagw/sjdb/internal/relation"
)

// MinCardinality is the tuple count a selectivity estimate is clamped to when
// integer division would otherwise reach zero.
const MinCardinality = 1

// Estimator computes the output relation of operators from the outputs of
// their inputs, assuming uniformly distributed, independent attribute values.
type Estimator struct {
	strict bool
	logger *slog.Logger
}

type EstimatorOption func(*Estimator)

// WithStrictCardinality makes the Estimator fail with
// ErrDegenerateCardinality instead of clamping zero estimates to
// MinCardinality.
func WithStrictCardinality(strict bool) EstimatorOption {
	return func(e *Estimator) {
		e.strict = strict
	}
}

func WithLogger(logger *slog.Logger) EstimatorOption {
	return func(e *Estimator) {
		e.logger = logger
	}
}

func NewEstimator(opts ...EstimatorOption) *Estimator {
	e := &Estimator{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Estimate computes and sets op's output. The inputs of op must already have
// been estimated; Estimate does not recurse. Estimating the same node twice
// with the same inputs produces the same output.
func (e *Estimator) Estimate(op Operator) error {
	if op == nil {
		return errors.Wrap(ErrMalformedPlan, "cannot estimate nil operator")
	}

	var out *relation.Relation
	var err error
	switch n := op.(type) {
	case *Scan:
		out, err = e.scan(n)
	case *Project:
		out, err = e.project(n)
	case *Select:
		out, err = e.selection(n)
	case *Product:
		out, err = e.product(n)
	case *Join:
		out, err = e.join(n)
	default:
		return errors.AssertionFailedf("unexpected operator %T", op)
	}
	if err != nil {
		return err
	}

	op.setOutput(out)
	return nil
}

// EstimateTree estimates every operator of the tree rooted at op, children
// before parents.
func (e *Estimator) EstimateTree(op Operator) error {
	if op == nil {
		return errors.Wrap(ErrMalformedPlan, "cannot estimate nil operator")
	}
	for _, in := range op.Inputs() {
		if err := e.EstimateTree(in); err != nil {
			return err
		}
	}
	return e.Estimate(op)
}

// scan copies the base relation's statistics unchanged.
func (e *Estimator) scan(s *Scan) (*relation.Relation, error) {
	in := s.Relation()
	if in == nil {
		return nil, errors.Wrap(ErrMalformedPlan, "scan of nil relation")
	}
	out := relation.New(in.TupleCount())
	for _, a := range in.Attributes() {
		out.AddAttribute(a)
	}
	return out, nil
}

// project keeps the tuple count and the projected attributes, in input order.
func (e *Estimator) project(p *Project) (*relation.Relation, error) {
	in, err := inputOutput(p, p.Input())
	if err != nil {
		return nil, err
	}

	keep := make(map[string]bool, len(p.attributes))
	for _, a := range p.attributes {
		if _, err := in.Attribute(a.Name); err != nil {
			return nil, errors.Wrap(err, "project")
		}
		keep[a.Name] = true
	}

	out := relation.New(in.TupleCount())
	for _, a := range in.Attributes() {
		if keep[a.Name] {
			out.AddAttribute(a)
		}
	}
	return out, nil
}

// selection divides the input tuple count by the distinct value count of the
// selected attribute (attr = value) or by the larger of the two distinct
// value counts (attr = attr).
func (e *Estimator) selection(s *Select) (*relation.Relation, error) {
	in, err := inputOutput(s, s.Input())
	if err != nil {
		return nil, err
	}
	return e.filter(s, in, s.Predicate())
}

// product multiplies the tuple counts and concatenates the attributes.
func (e *Estimator) product(p *Product) (*relation.Relation, error) {
	left, err := inputOutput(p, p.Left())
	if err != nil {
		return nil, err
	}
	right, err := inputOutput(p, p.Right())
	if err != nil {
		return nil, err
	}

	return left.Concat(right), nil
}

// join is estimated exactly as a Select of the join predicate over the
// Product of the two inputs.
func (e *Estimator) join(j *Join) (*relation.Relation, error) {
	left, err := inputOutput(j, j.Left())
	if err != nil {
		return nil, err
	}
	right, err := inputOutput(j, j.Right())
	if err != nil {
		return nil, err
	}
	if j.Predicate().EqualsValue() {
		return nil, errors.Wrapf(ErrMalformedPlan, "join on value predicate %s", j.Predicate())
	}

	return e.filter(j, left.Concat(right), j.Predicate())
}

// filter applies an equality predicate to in.
func (e *Estimator) filter(op Operator, in *relation.Relation, pred *query.Predicate) (*relation.Relation, error) {
	tuples, attrs := in.TupleCount(), in.Attributes()
	left, err := in.Attribute(pred.LeftAttribute().Name)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", op.Kind(), pred)
	}

	var out *relation.Relation
	if pred.EqualsValue() {
		count, err := e.divide(op, tuples, left.ValueCount)
		if err != nil {
			return nil, err
		}
		out = relation.New(count)
		for _, a := range attrs {
			if a.SameAs(left) {
				a = a.WithValueCount(1)
			}
			out.AddAttribute(a)
		}
	} else {
		right, err := in.Attribute(pred.RightAttribute().Name)
		if err != nil {
			return nil, errors.Wrapf(err, "%s %s", op.Kind(), pred)
		}
		count, err := e.divide(op, tuples, max(left.ValueCount, right.ValueCount))
		if err != nil {
			return nil, err
		}
		distinct := min(left.ValueCount, right.ValueCount)
		out = relation.New(count)
		for _, a := range attrs {
			if a.SameAs(left) || a.SameAs(right) {
				a = a.WithValueCount(distinct)
			}
			out.AddAttribute(a)
		}
	}

	capValueCounts(out)
	return out, nil
}

// divide returns tuples / divisor, truncated. A zero result is clamped to
// MinCardinality, or reported as ErrDegenerateCardinality in strict mode.
func (e *Estimator) divide(op Operator, tuples, divisor int) (int, error) {
	if divisor < 1 {
		divisor = 1
	}
	count := tuples / divisor
	if count > 0 {
		return count, nil
	}
	if e.strict {
		return 0, errors.Wrapf(ErrDegenerateCardinality, "%s: %d tuples / %d distinct values", op.Kind(), tuples, divisor)
	}
	e.logger.Warn("clamping degenerate cardinality",
		"operator", op.Kind().String(),
		"tuples", tuples,
		"divisor", divisor,
		"clamped", MinCardinality)
	return MinCardinality, nil
}

// capValueCounts keeps every distinct value count within the tuple count.
func capValueCounts(r *relation.Relation) {
	for _, a := range r.Attributes() {
		if a.ValueCount > r.TupleCount() {
			r.AddAttribute(a.WithValueCount(r.TupleCount()))
		}
	}
}

func inputOutput(op Operator, input Operator) (*relation.Relation, error) {
	if input == nil {
		return nil, errors.Wrapf(ErrMalformedPlan, "%s has a nil input", op.Kind())
	}
	out := input.Output()
	if out == nil {
		return nil, errors.Wrapf(ErrMalformedPlan, "%s input %s has not been estimated", op.Kind(), input.Kind())
	}
	return out, nil
}
