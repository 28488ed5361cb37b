package qubo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/icosim/internal/topology"
)

func buildTopo(t *testing.T) *topology.Topology {
	t.Helper()
	topo, err := topology.Build()
	require.NoError(t, err)
	return topo
}

func TestCompileGeometricOnlyMatchesZeroedTerms(t *testing.T) {
	topo := buildTopo(t)

	geoOnly, err := Compile(topo, Params{Geometric: 1.5})
	require.NoError(t, err)

	// Same model with every other term present but zero-weighted.
	zeroed, err := Compile(topo, Params{
		Geometric:  1.5,
		Exclusion:  Exclusion{Weight: 0, Target: 3},
		BiasWeight: 0,
	})
	require.NoError(t, err)

	assert.Equal(t, geoOnly.Linear, zeroed.Linear)
	assert.Equal(t, geoOnly.Quad, zeroed.Quad)
	assert.Equal(t, geoOnly.Offset, zeroed.Offset)
}

func TestCompileGeometricPenalizesDisagreement(t *testing.T) {
	topo := buildTopo(t)
	m, err := Compile(topo, Params{Geometric: 2})
	require.NoError(t, err)

	allOff := make([]int, m.N)
	allOn := make([]int, m.N)
	for i := range allOn {
		allOn[i] = 1
	}

	eOff, err := m.Energy(allOff)
	require.NoError(t, err)
	eOn, err := m.Energy(allOn)
	require.NoError(t, err)

	// Agreement on every edge costs nothing either way.
	assert.Zero(t, eOff)
	assert.InDelta(t, 0, eOn, 1e-9)

	// Flipping one node pays the weight once per incident edge.
	one := make([]int, m.N)
	one[topology.CentralID-1] = 1
	eOne, err := m.Energy(one)
	require.NoError(t, err)
	assert.InDelta(t, 2*float64(topo.Degree(topology.CentralID)), eOne, 1e-9)
}

func TestCompileExclusionOffset(t *testing.T) {
	topo := buildTopo(t)
	m, err := Compile(topo, Params{Exclusion: Exclusion{Weight: 3, Target: 4}})
	require.NoError(t, err)

	assert.InDelta(t, 3*16, m.Offset, 1e-12)

	// Energy at exactly K active variables is zero.
	x := make([]int, m.N)
	for i := 0; i < 4; i++ {
		x[i] = 1
	}
	e, err := m.Energy(x)
	require.NoError(t, err)
	assert.InDelta(t, 0, e, 1e-9)

	// One variable over target costs Weight.
	x[10] = 1
	e, err = m.Energy(x)
	require.NoError(t, err)
	assert.InDelta(t, 3, e, 1e-9)
}

// Two connected variables both pushed active by strong alpha bias: with
// K=1 the exclusion penalty must still make "both active" worse than
// "exactly one active".
func TestExclusionDominatesBias(t *testing.T) {
	topo := buildTopo(t)

	require.Contains(t, topo.Neighbors(21), 25, "test expects adjacent vertices")

	alpha := make([]float64, topo.NumNodes())
	// Nodes 21 and 25 are vertex neighbors; favor both strongly.
	alpha[20] = -10
	alpha[24] = -10

	m, err := Compile(topo, Params{
		Alpha:     alpha,
		Exclusion: Exclusion{Weight: 25, Target: 1},
	})
	require.NoError(t, err)

	both := make([]int, m.N)
	both[20], both[24] = 1, 1
	oneActive := make([]int, m.N)
	oneActive[20] = 1

	eBoth, err := m.Energy(both)
	require.NoError(t, err)
	eOne, err := m.Energy(oneActive)
	require.NoError(t, err)

	assert.Greater(t, eBoth, eOne)
}

func TestCompileProblemTermVerbatim(t *testing.T) {
	topo := buildTopo(t)
	n := topo.NumNodes()

	alpha := make([]float64, n)
	alpha[0] = 1.25
	beta := make([][]float64, n)
	for i := range beta {
		beta[i] = make([]float64, n)
	}
	beta[0][1] = 2.5
	beta[1][0] = 0.5
	beta[2][2] = 4 // diagonal folds into linear

	m, err := Compile(topo, Params{Alpha: alpha, Beta: beta})
	require.NoError(t, err)

	assert.Equal(t, 1.25, m.Linear[0])
	assert.Equal(t, 3.0, m.Quad[0][1])
	assert.Equal(t, 3.0, m.Quad[1][0])
	assert.Equal(t, 4.0, m.Linear[2])
	assert.Zero(t, m.Quad[2][2])
}

func TestCompileObserverBias(t *testing.T) {
	topo := buildTopo(t)
	n := topo.NumNodes()

	uniform, err := Compile(topo, Params{BiasWeight: 0.5})
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		assert.Equal(t, 0.5, uniform.Linear[i])
	}

	vec := make([]float64, n)
	vec[7] = 2
	shaped, err := Compile(topo, Params{BiasWeight: 0.5, BiasVector: vec})
	require.NoError(t, err)
	assert.Equal(t, 1.0, shaped.Linear[7])
	assert.Zero(t, shaped.Linear[0])
}

func TestCompileShapeValidation(t *testing.T) {
	topo := buildTopo(t)

	tests := []struct {
		name string
		p    Params
		want error
	}{
		{"short bias vector", Params{BiasWeight: 1, BiasVector: make([]float64, 5)}, ErrBiasShape},
		{"long bias vector", Params{BiasVector: make([]float64, 40)}, ErrBiasShape},
		{"short alpha", Params{Alpha: make([]float64, 32)}, ErrAlphaShape},
		{"ragged beta", Params{Beta: [][]float64{{1, 2}}}, ErrBetaShape},
		{"target too large", Params{Exclusion: Exclusion{Weight: 1, Target: 40}}, ErrTarget},
		{"negative target", Params{Exclusion: Exclusion{Weight: 1, Target: -1}}, ErrTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(topo, tt.p)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEnergyAssignmentLength(t *testing.T) {
	topo := buildTopo(t)
	m, err := Compile(topo, Params{Geometric: 1})
	require.NoError(t, err)

	_, err = m.Energy(make([]int, 5))
	assert.ErrorIs(t, err, ErrAssignment)
}
