package sim

import (
	"context"
	"sync"

	"github.com/san-kum/icosim/internal/field"
	"github.com/san-kum/icosim/internal/unified"
)

// Ensemble runs independent simulations in parallel, one per initial
// snapshot. The engine and parameters are shared read-only; each run gets
// its own simulator and metric instances.
type Ensemble struct {
	engine  *unified.Engine
	params  unified.Params
	metrics func() []Metric // fresh instances per run, may be nil
}

func NewEnsemble(engine *unified.Engine, params unified.Params, metrics func() []Metric) *Ensemble {
	return &Ensemble{engine: engine, params: params, metrics: metrics}
}

// Run executes one simulation per initial state. The first run error is
// returned, but every slot holds whatever result its run produced.
func (e *Ensemble) Run(ctx context.Context, inits []*field.State, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(inits))
	errs := make([]error, len(inits))

	var wg sync.WaitGroup
	for i := range inits {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s := New(e.engine, e.params)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}
			results[idx], errs[idx] = s.Run(ctx, inits[idx], cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
