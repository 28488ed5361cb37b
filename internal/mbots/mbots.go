// Package mbots implements the binary observer tracking system: read-only
// access to field snapshots with an entanglement-consistency check between
// each amplitude and its shadow.
//
// Observation never mutates or repairs the underlying snapshot. A pairing
// breach is reported as a diagnostic, not fixed in place; any state change
// must come from the evolution engine alone.
package mbots

import (
	"errors"
	"fmt"
	"log/slog"
	"math/cmplx"
	"sync/atomic"

	"github.com/san-kum/icosim/internal/field"
)

// DefaultTolerance bounds the allowed deviation between a shadow and the
// pairing transform of its amplitude.
const DefaultTolerance = 1e-9

// ErrNodeID indicates an observation of a node outside the snapshot.
var ErrNodeID = errors.New("mbots: node id out of range")

// ConsistencyViolation is a diagnostic describing a shadow that no longer
// tracks its amplitude within tolerance. It is recoverable: the
// observation it accompanies is still valid.
type ConsistencyViolation struct {
	Node      int
	Time      float64
	Deviation float64
	Tolerance float64
}

func (v *ConsistencyViolation) Error() string {
	return fmt.Sprintf("mbots: node %d (t=%.4f): shadow deviates by %g (tolerance %g)",
		v.Node, v.Time, v.Deviation, v.Tolerance)
}

// Observation is a non-destructive read of one node.
type Observation struct {
	Node   int
	Time   float64
	Amp    complex128
	Shadow complex128
}

// Tracker observes snapshots without touching them. Trackers are safe for
// concurrent use.
type Tracker struct {
	tolerance  float64
	log        *slog.Logger
	violations atomic.Int64
}

// New returns a tracker with the given tolerance; non-positive values fall
// back to DefaultTolerance.
func New(tolerance float64) *Tracker {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Tracker{tolerance: tolerance, log: slog.Default()}
}

// SetLogger replaces the diagnostic logger.
func (tr *Tracker) SetLogger(l *slog.Logger) {
	if l != nil {
		tr.log = l
	}
}

// Observe reads amplitude and shadow of one node. The returned error, if
// any, is a *ConsistencyViolation diagnostic; the observation is valid
// either way and the snapshot is never modified.
func (tr *Tracker) Observe(st *field.State, id int) (Observation, error) {
	if id < 1 || id > st.Len() {
		return Observation{}, ErrNodeID
	}

	obs := Observation{
		Node:   id,
		Time:   st.T,
		Amp:    st.Amplitude(id),
		Shadow: st.ShadowOf(id),
	}

	dev := cmplx.Abs(obs.Shadow - field.Pair(obs.Amp))
	if dev > tr.tolerance {
		tr.violations.Add(1)
		v := &ConsistencyViolation{Node: id, Time: st.T, Deviation: dev, Tolerance: tr.tolerance}
		tr.log.Warn("pairing consistency breach", "node", id, "t", st.T, "deviation", dev)
		return obs, v
	}
	return obs, nil
}

// ObserveAll reads every node, collecting violations as diagnostics.
func (tr *Tracker) ObserveAll(st *field.State) ([]Observation, []*ConsistencyViolation) {
	obs := make([]Observation, 0, st.Len())
	var violations []*ConsistencyViolation
	for id := 1; id <= st.Len(); id++ {
		o, err := tr.Observe(st, id)
		if err != nil {
			var v *ConsistencyViolation
			if errors.As(err, &v) {
				violations = append(violations, v)
			}
		}
		obs = append(obs, o)
	}
	return obs, violations
}

// Violations returns the total number of consistency breaches seen.
func (tr *Tracker) Violations() int64 { return tr.violations.Load() }
