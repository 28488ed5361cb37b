package qubo

import (
	"github.com/san-kum/icosim/internal/topology"
)

// Params is the immutable coefficient set for one compilation. All fields
// are optional; zero values contribute nothing.
type Params struct {
	// Geometric weights binary disagreement across every topology edge.
	Geometric float64

	// Exclusion drives the number of active variables toward Target.
	Exclusion Exclusion

	// Alpha holds per-node linear problem coefficients (nil or length n).
	Alpha []float64

	// Beta holds pairwise problem coefficients (nil or n x n). Diagonal
	// entries fold into the linear term.
	Beta [][]float64

	// BiasWeight is the observer-bias scalar h_obs. With a nil BiasVector
	// it applies uniformly; otherwise it scales the vector per node.
	BiasWeight float64

	// BiasVector optionally shapes the observer bias per node (nil or
	// length n).
	BiasVector []float64
}

// Exclusion parameterizes the squared active-count penalty
// Weight * (sum_i x_i - Target)^2.
type Exclusion struct {
	Weight float64
	Target int
}

func (p Params) validate(n int) error {
	if p.Alpha != nil && len(p.Alpha) != n {
		return ErrAlphaShape
	}
	if p.Beta != nil {
		if len(p.Beta) != n {
			return ErrBetaShape
		}
		for _, row := range p.Beta {
			if len(row) != n {
				return ErrBetaShape
			}
		}
	}
	if p.BiasVector != nil && len(p.BiasVector) != n {
		return ErrBiasShape
	}
	if p.Exclusion.Weight != 0 && (p.Exclusion.Target < 0 || p.Exclusion.Target > n) {
		return ErrTarget
	}
	return nil
}

// Compile validates the coefficient set once and builds the objective.
// Pure and side-effect free: the topology and params are only read.
func Compile(topo *topology.Topology, p Params) (*Model, error) {
	n := topo.NumNodes()
	if err := p.validate(n); err != nil {
		return nil, err
	}

	m := newModel(n)
	addGeometric(m, topo, p.Geometric)
	addExclusion(m, p.Exclusion)
	addProblem(m, p.Alpha, p.Beta)
	addObserverBias(m, p.BiasWeight, p.BiasVector)
	return m, nil
}

// addGeometric penalizes disagreement across each edge:
// w*(x_i - x_j)^2 = w*x_i + w*x_j - 2w*x_i*x_j for binary x.
func addGeometric(m *Model, topo *topology.Topology, w float64) {
	if w == 0 {
		return
	}
	for _, e := range topo.Edges() {
		i, j := e[0]-1, e[1]-1
		m.Linear[i] += w
		m.Linear[j] += w
		m.addPair(i, j, -2*w)
	}
}

// addExclusion expands Weight*(sum x - K)^2 into linear, pairwise and
// constant parts: (1-2K)*Weight per variable, 2*Weight per pair, Weight*K^2
// offset.
func addExclusion(m *Model, ex Exclusion) {
	if ex.Weight == 0 {
		return
	}
	k := float64(ex.Target)
	for i := 0; i < m.N; i++ {
		m.Linear[i] += ex.Weight * (1 - 2*k)
		for j := i + 1; j < m.N; j++ {
			m.addPair(i, j, 2*ex.Weight)
		}
	}
	m.Offset += ex.Weight * k * k
}

// addProblem copies caller coefficients verbatim, symmetrizing beta.
func addProblem(m *Model, alpha []float64, beta [][]float64) {
	for i, a := range alpha {
		m.Linear[i] += a
	}
	for i := range beta {
		for j := i; j < len(beta); j++ {
			if i == j {
				m.addPair(i, i, beta[i][i])
				continue
			}
			if w := beta[i][j] + beta[j][i]; w != 0 {
				m.addPair(i, j, w)
			}
		}
	}
}

func addObserverBias(m *Model, h float64, vec []float64) {
	if h == 0 {
		return
	}
	if vec == nil {
		for i := 0; i < m.N; i++ {
			m.Linear[i] += h
		}
		return
	}
	for i, v := range vec {
		m.Linear[i] += h * v
	}
}
