package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/icosim/internal/field"
	"github.com/san-kum/icosim/internal/unified"
)

// Simulator drives the evolution engine over a run, feeding metrics and
// observers from each completed snapshot.
type Simulator struct {
	engine    *unified.Engine
	params    unified.Params
	metrics   []Metric
	observers []Observer
}

// New wraps an engine with the coupling parameters for a run.
func New(engine *unified.Engine, params unified.Params) *Simulator {
	return &Simulator{
		engine:  engine,
		params:  params,
		metrics: make([]Metric, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run advances the field from x0 for cfg.Steps steps. Per-node numeric
// errors accumulate in the result without stopping the run; a non-finite
// snapshot halts it when cfg.ValidateState is set. The caller owns the
// returned snapshots.
func (s *Simulator) Run(ctx context.Context, x0 *field.State, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		States:  make([]*field.State, 0, cfg.Steps+1),
		Times:   make([]float64, 0, cfg.Steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	st := x0.Clone()
	t := st.T

	result.States = append(result.States, st)
	result.Times = append(result.Times, t)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(st, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(st, t)
		}

		next, nodeErrs, err := s.engine.Step(st, s.params, t, cfg.Dt)
		if err != nil {
			return result, err
		}
		for _, ne := range nodeErrs {
			result.Errors = append(result.Errors, ne)
		}

		if cfg.ValidateState && !next.IsValid() {
			result.Errors = append(result.Errors, RunError{Step: i, Time: t, Message: "non-finite snapshot"})
			break
		}

		st = next
		t = next.T
		result.StepsTaken++

		result.States = append(result.States, st)
		result.Times = append(result.Times, t)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("sim: dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("sim: steps must be positive, got %d", cfg.Steps)
	}
	return nil
}
