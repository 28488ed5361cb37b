package sim

import (
	"fmt"

	"github.com/san-kum/icosim/internal/field"
)

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(st *field.State, t float64)
	Value() float64
	Reset()
}

// Observer receives a read-only tap of every completed snapshot.
type Observer interface {
	OnStep(st *field.State, t float64)
}

// Config controls a run.
type Config struct {
	Dt            float64
	Steps         int
	ValidateState bool // halt when a snapshot turns non-finite
}

// DefaultConfig mirrors the CLI defaults.
func DefaultConfig() Config {
	return Config{Dt: 0.01, Steps: 1000, ValidateState: true}
}

// Result is a completed (or halted) run. States holds the initial
// snapshot plus one per completed step; Errors collects per-node numeric
// errors and any halt condition, in step order.
type Result struct {
	States     []*field.State
	Times      []float64
	Metrics    map[string]float64
	Errors     []error
	StepsTaken int
}

// RunError marks a condition that halted a run early.
type RunError struct {
	Step    int
	Time    float64
	Message string
}

func (e RunError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
