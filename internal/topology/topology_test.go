package topology

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPartition(t *testing.T) {
	topo, err := Build()
	require.NoError(t, err)

	assert.Equal(t, NumNodes, topo.NumNodes())
	assert.Equal(t, NumGreen, topo.ZoneCount(Green))
	assert.Equal(t, NumYellow, topo.ZoneCount(Yellow))
	assert.Equal(t, 1, topo.ZoneCount(Central))

	central, err := topo.Node(CentralID)
	require.NoError(t, err)
	assert.Equal(t, Central, central.Zone)
	assert.Equal(t, 33, central.ID)
}

func TestBuildRejectsBadPartition(t *testing.T) {
	cases := []struct {
		name                   string
		green, yellow, central int
	}{
		{"too many green", 21, 12, 1},
		{"too few yellow", 20, 11, 1},
		{"two central", 20, 12, 2},
		{"empty", 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(WithPartition(tc.green, tc.yellow, tc.central))
			assert.ErrorIs(t, err, ErrPartition)
		})
	}
}

func TestBuildEdgeStructure(t *testing.T) {
	topo, err := Build()
	require.NoError(t, err)

	assert.Equal(t, 132, topo.NumEdges())

	for _, n := range topo.Nodes() {
		switch n.Zone {
		case Green:
			// 3 adjacent faces + 3 corner vertices.
			assert.Equal(t, 6, topo.Degree(n.ID), "green node %d", n.ID)
		case Yellow:
			// 5 vertex edges + 5 incident faces + central.
			assert.Equal(t, 11, topo.Degree(n.ID), "yellow node %d", n.ID)
		case Central:
			assert.Equal(t, 12, topo.Degree(n.ID))
		}
	}

	// The central node couples through the vertex shell only.
	for _, id := range topo.Neighbors(CentralID) {
		n, err := topo.Node(id)
		require.NoError(t, err)
		assert.Equal(t, Yellow, n.Zone)
	}
}

func TestBuildDeterministic(t *testing.T) {
	a, err := Build()
	require.NoError(t, err)
	b, err := Build()
	require.NoError(t, err)

	assert.Equal(t, a.Edges(), b.Edges())
	assert.Equal(t, a.Nodes(), b.Nodes())
}

func TestNodePositionsOnUnitSphere(t *testing.T) {
	topo, err := Build()
	require.NoError(t, err)

	for _, n := range topo.Nodes() {
		if n.Zone == Central {
			assert.Zero(t, n.Pos.Norm())
			continue
		}
		assert.InDelta(t, 1.0, n.Pos.Norm(), 1e-12, "node %d", n.ID)
	}
}

func TestNodeIDBounds(t *testing.T) {
	topo, err := Build()
	require.NoError(t, err)

	_, err = topo.Node(0)
	assert.ErrorIs(t, err, ErrNodeID)
	_, err = topo.Node(34)
	assert.ErrorIs(t, err, ErrNodeID)
	assert.Nil(t, topo.Neighbors(99))
}

func TestVertexAdjacencyLength(t *testing.T) {
	verts := icosahedronVertices()
	require.Len(t, verts, 12)

	edges := 0
	for i := range verts {
		for j := i + 1; j < len(verts); j++ {
			if vertexAdjacent(verts[i], verts[j]) {
				edges++
				d := verts[i].sub(verts[j]).Norm()
				assert.InDelta(t, 2/math.Sqrt(1+math.Pow((1+math.Sqrt(5))/2, 2)), d, 1e-9)
			}
		}
	}
	assert.Equal(t, 30, edges)
}
