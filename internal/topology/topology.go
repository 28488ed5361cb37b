package topology

import "sort"

// Zone classifies a node by its place in the icosahedral layout.
type Zone int

const (
	Green   Zone = iota // face centers, ids 1-20
	Yellow              // icosahedron vertices, ids 21-32
	Central             // node 33, origin
)

func (z Zone) String() string {
	switch z {
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Central:
		return "central"
	}
	return "unknown"
}

// Force names the fundamental-force channel the original layout assigns to
// each zone.
func (z Zone) Force() string {
	switch z {
	case Green:
		return "strong"
	case Yellow:
		return "weak"
	case Central:
		return "electromagnetic"
	}
	return "unknown"
}

const (
	NumGreen  = 20
	NumYellow = 12
	NumNodes  = NumGreen + NumYellow + 1

	// CentralID is always node 33.
	CentralID = NumNodes
)

// Node is one of the 33 universes.
type Node struct {
	ID   int
	Zone Zone
	Pos  Vec3
}

// Topology is the immutable 33-node graph.
type Topology struct {
	nodes []Node     // index id-1
	adj   [][]int    // index id-1, sorted neighbor ids
	edges [][2]int   // lo < hi, sorted
}

// Option overrides Build defaults.
type Option func(*buildOptions)

type buildOptions struct {
	green, yellow, central int
}

// WithPartition requests an explicit zone partition. Any value other than
// the fixed 20/12/1 split is rejected; the option exists so callers can
// assert the partition they expect.
func WithPartition(green, yellow, central int) Option {
	return func(o *buildOptions) {
		o.green, o.yellow, o.central = green, yellow, central
	}
}

// Build constructs the 33-node icosahedral topology. Construction is pure
// and deterministic: node ids, positions and the edge set are identical
// across calls.
func Build(opts ...Option) (*Topology, error) {
	o := buildOptions{green: NumGreen, yellow: NumYellow, central: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.green != NumGreen || o.yellow != NumYellow || o.central != 1 {
		return nil, ErrPartition
	}

	verts := icosahedronVertices()
	centers, triples := faceCenters(verts)

	t := &Topology{
		nodes: make([]Node, NumNodes),
		adj:   make([][]int, NumNodes),
	}

	// Greens 1-20 at face centers, yellows 21-32 at vertices, central at 33.
	for i, c := range centers {
		t.nodes[i] = Node{ID: i + 1, Zone: Green, Pos: c}
	}
	for i, v := range verts {
		t.nodes[NumGreen+i] = Node{ID: NumGreen + i + 1, Zone: Yellow, Pos: v}
	}
	t.nodes[CentralID-1] = Node{ID: CentralID, Zone: Central, Pos: Vec3{}}

	yellowID := func(vertexIdx int) int { return NumGreen + vertexIdx + 1 }

	// Vertex-vertex edges: the 30 icosahedron edges.
	for i := 0; i < len(verts); i++ {
		for j := i + 1; j < len(verts); j++ {
			if vertexAdjacent(verts[i], verts[j]) {
				t.addEdge(yellowID(i), yellowID(j))
			}
		}
	}

	// Face-face edges: faces sharing an icosahedron edge (30 pairs).
	for i := 0; i < len(triples); i++ {
		for j := i + 1; j < len(triples); j++ {
			if facesShareEdge(triples[i], triples[j]) {
				t.addEdge(i+1, j+1)
			}
		}
	}

	// Face-vertex edges: each face to its three corners (60).
	for i, tri := range triples {
		for _, v := range tri {
			t.addEdge(i+1, yellowID(v))
		}
	}

	// Central node couples through the vertex shell (12).
	for i := range verts {
		t.addEdge(CentralID, yellowID(i))
	}

	for i := range t.adj {
		sort.Ints(t.adj[i])
	}
	sort.Slice(t.edges, func(a, b int) bool {
		if t.edges[a][0] != t.edges[b][0] {
			return t.edges[a][0] < t.edges[b][0]
		}
		return t.edges[a][1] < t.edges[b][1]
	})

	return t, nil
}

func (t *Topology) addEdge(a, b int) {
	if a > b {
		a, b = b, a
	}
	t.edges = append(t.edges, [2]int{a, b})
	t.adj[a-1] = append(t.adj[a-1], b)
	t.adj[b-1] = append(t.adj[b-1], a)
}

// NumNodes returns 33.
func (t *Topology) NumNodes() int { return len(t.nodes) }

// Node returns the node with the given id.
func (t *Topology) Node(id int) (Node, error) {
	if id < 1 || id > len(t.nodes) {
		return Node{}, ErrNodeID
	}
	return t.nodes[id-1], nil
}

// Nodes returns a copy of all nodes in id order.
func (t *Topology) Nodes() []Node {
	out := make([]Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Neighbors returns the sorted neighbor ids of a node. The returned slice
// is shared and must not be modified.
func (t *Topology) Neighbors(id int) []int {
	if id < 1 || id > len(t.adj) {
		return nil
	}
	return t.adj[id-1]
}

// Degree returns the number of edges incident to a node.
func (t *Topology) Degree(id int) int { return len(t.Neighbors(id)) }

// Edges returns a copy of the edge list as (lo, hi) id pairs.
func (t *Topology) Edges() [][2]int {
	out := make([][2]int, len(t.edges))
	copy(out, t.edges)
	return out
}

// NumEdges returns the edge count (132 for the standard layout).
func (t *Topology) NumEdges() int { return len(t.edges) }

// ZoneCount returns how many nodes belong to a zone.
func (t *Topology) ZoneCount(z Zone) int {
	n := 0
	for _, node := range t.nodes {
		if node.Zone == z {
			n++
		}
	}
	return n
}
