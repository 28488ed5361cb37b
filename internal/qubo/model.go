package qubo

// Model is a compiled QUBO objective over n binary variables:
//
//	E(x) = sum_i Linear[i]*x_i + sum_{i<j} Quad[i][j]*x_i*x_j + Offset
//
// Quad is symmetric with a zero diagonal (diagonal weight folds into
// Linear since x^2 = x for binary variables). A Model is immutable once
// compiled; solvers receive it read-only.
type Model struct {
	N      int
	Linear []float64
	Quad   [][]float64
	Offset float64
}

func newModel(n int) *Model {
	m := &Model{
		N:      n,
		Linear: make([]float64, n),
		Quad:   make([][]float64, n),
	}
	for i := range m.Quad {
		m.Quad[i] = make([]float64, n)
	}
	return m
}

// addPair accumulates a pairwise weight symmetrically. Diagonal entries
// fold into the linear term.
func (m *Model) addPair(i, j int, w float64) {
	if i == j {
		m.Linear[i] += w
		return
	}
	m.Quad[i][j] += w
	m.Quad[j][i] += w
}

// Energy evaluates the objective for a binary assignment (nonzero counts
// as active).
func (m *Model) Energy(x []int) (float64, error) {
	if len(x) != m.N {
		return 0, ErrAssignment
	}
	e := m.Offset
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		e += m.Linear[i]
		for j := i + 1; j < m.N; j++ {
			if x[j] != 0 {
				e += m.Quad[i][j]
			}
		}
	}
	return e, nil
}
