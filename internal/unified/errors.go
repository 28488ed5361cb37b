package unified

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeCoupling indicates a negative effective coupling ratio,
	// for which the real gain is undefined.
	ErrNegativeCoupling = errors.New("unified: negative effective coupling ratio")

	// ErrNonFinite indicates a NaN or Inf amplitude after the update.
	ErrNonFinite = errors.New("unified: non-finite amplitude")

	// ErrStateSize indicates a snapshot sized for a different topology.
	ErrStateSize = errors.New("unified: state size does not match topology")

	// ErrSubsteps indicates a non-positive quadrature substep count.
	ErrSubsteps = errors.New("unified: quadrature substeps must be positive")

	// ErrRefCoupling indicates a non-positive reference coupling scale.
	ErrRefCoupling = errors.New("unified: reference coupling must be positive")

	// ErrAlignShape indicates an alignment slice whose length does not
	// match the node count.
	ErrAlignShape = errors.New("unified: alignment parameter length does not match node count")
)

// NodeError reports a numeric failure for a single node within a step.
type NodeError struct {
	Node int
	Time float64
	Err  error
}

func (e NodeError) Error() string {
	return fmt.Sprintf("node %d (t=%.4f): %v", e.Node, e.Time, e.Err)
}

func (e NodeError) Unwrap() error { return e.Err }
