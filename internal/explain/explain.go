// Package explain runs a query through the whole planning pipeline: parse,
// build the canonical plan, estimate it, then optimise it.
package explain

import (
	"log/slog"
	"strings"

	"github.com/yashagw/sjdb/internal/optimizer"
	"github.com/yashagw/sjdb/internal/plan"
)

type Explainer struct {
	planner   *plan.Planner
	estimator *plan.Estimator
	optimizer *optimizer.Optimizer
	logger    *slog.Logger
}

func New(catalogue plan.Catalogue, estimator *plan.Estimator, logger *slog.Logger) *Explainer {
	return &Explainer{
		planner:   plan.NewPlanner(plan.NewCanonicalPlanner(catalogue)),
		estimator: estimator,
		optimizer: optimizer.New(catalogue, optimizer.WithEstimator(estimator), optimizer.WithLogger(logger)),
		logger:    logger,
	}
}

// Result holds both estimated plans of a query.
type Result struct {
	Query     string
	Canonical plan.Operator
	Optimized plan.Operator
}

func (e *Explainer) Explain(sql string) (*Result, error) {
	canonical, err := e.planner.CreatePlan(sql)
	if err != nil {
		return nil, err
	}
	if err := e.estimator.EstimateTree(canonical); err != nil {
		return nil, err
	}

	optimized, err := e.optimizer.Optimize(canonical)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("optimised query",
		"query", sql,
		"canonical_rows", canonical.Output().TupleCount(),
		"optimized_rows", optimized.Output().TupleCount())

	return &Result{
		Query:     sql,
		Canonical: canonical,
		Optimized: optimized,
	}, nil
}

// String renders both plans, canonical first.
func (r *Result) String() string {
	var sb strings.Builder
	sb.WriteString("canonical: ")
	sb.WriteString(r.Canonical.String())
	sb.WriteByte('\n')
	sb.WriteString(plan.Explain(r.Canonical))
	sb.WriteString("optimized: ")
	sb.WriteString(r.Optimized.String())
	sb.WriteByte('\n')
	sb.WriteString(plan.Explain(r.Optimized))
	return sb.String()
}
