package optimizer

import (
	"log/slog"

	"github.com/yashagw/sjdb/internal/plan"
)

// Optimizer rewrites canonical plans: selections are pushed down to the
// scans they filter, every Product followed by a matching attribute equality
// becomes a Join, and attributes no longer needed are projected away as early
// as possible. Join order is never changed.
//
// An Optimizer holds no per-call state and may be used concurrently.
type Optimizer struct {
	catalogue plan.Catalogue
	estimator *plan.Estimator
	logger    *slog.Logger
}

type Option func(*Optimizer)

func WithLogger(logger *slog.Logger) Option {
	return func(o *Optimizer) {
		o.logger = logger
	}
}

// WithEstimator sets the Estimator used for every rebuilt operator.
func WithEstimator(estimator *plan.Estimator) Option {
	return func(o *Optimizer) {
		o.estimator = estimator
	}
}

// New creates an Optimizer. Scanned relations are resolved by name through
// catalogue; with a nil catalogue the relations embedded in the plan's
// scans are used as they are.
func New(catalogue plan.Catalogue, opts ...Option) *Optimizer {
	o := &Optimizer{
		catalogue: catalogue,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.estimator == nil {
		o.estimator = plan.NewEstimator(plan.WithLogger(o.logger))
	}
	return o
}

// Optimize returns an estimated, optimised equivalent of canonical. The input
// tree is only read. On error no plan is returned.
func (o *Optimizer) Optimize(canonical plan.Operator) (plan.Operator, error) {
	rw := &rewrite{
		Optimizer: o,
		required:  make(bag),
	}
	return rw.run(canonical)
}
