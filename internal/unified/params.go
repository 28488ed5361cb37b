package unified

// Pathway supplies a time-varying scalar input for a node, such as an
// energy density or an energy-pathway value.
type Pathway func(node int, t float64) float64

// DefaultSubsteps is the quadrature resolution used when Params.Substeps
// is zero. Substeps trade precision for work; they do not affect
// correctness of the update rule.
const DefaultSubsteps = 4

// Params carries the caller-supplied coupling inputs for a step. The zero
// value is gain-neutral: unit gain, no phase accumulation, unit alignment,
// no neighbor mixing.
type Params struct {
	// RefCoupling is the reference scale Gref of the gain ratio.
	// Zero means 1.
	RefCoupling float64

	// Density contributes to the effective coupling of each node. The
	// gain ratio is (RefCoupling + Density(i, t)) / RefCoupling. Nil
	// means zero everywhere.
	Density Pathway

	// Energy is the energy-pathway function whose integral over
	// [t, t+dt] accumulates the complex phase. Nil means zero.
	Energy Pathway

	// GeoWeight scales neighbor mixing across topology edges.
	GeoWeight float64

	// AlignK, AlignH, AlignL are per-node alignment parameters for the
	// strong, weak and electromagnetic channels. A nil slice means 1 for
	// every node, which makes that channel factor unity.
	AlignK, AlignH, AlignL []float64

	// Substeps is the trapezoid substep count for the phase integral.
	// Zero means DefaultSubsteps; negative is rejected.
	Substeps int
}

func (p Params) refCoupling() float64 {
	if p.RefCoupling == 0 {
		return 1
	}
	return p.RefCoupling
}

func (p Params) substeps() int {
	if p.Substeps == 0 {
		return DefaultSubsteps
	}
	return p.Substeps
}

func (p Params) align(slice []float64, idx int) float64 {
	if slice == nil {
		return 1
	}
	return slice[idx]
}

// validate rejects shapes and scales the engine cannot work with. Numeric
// per-node failures are not detected here; they surface during the step.
func (p Params) validate(n int) error {
	if p.Substeps < 0 {
		return ErrSubsteps
	}
	if p.refCoupling() <= 0 {
		return ErrRefCoupling
	}
	for _, s := range [][]float64{p.AlignK, p.AlignH, p.AlignL} {
		if s != nil && len(s) != n {
			return ErrAlignShape
		}
	}
	return nil
}
