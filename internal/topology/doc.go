// Package topology builds the fixed 33-node icosahedral graph used by the
// field engine and the Hamiltonian compiler.
//
// The layout follows the icosahedron: 12 vertex nodes (yellow zone, ids
// 21-32), 20 face-center nodes (green zone, ids 1-20) and one central node
// (id 33) at the origin. Edges connect vertices along icosahedron edges,
// faces that share an edge, each face to its three corner vertices, and the
// central node to every vertex.
//
// A Topology is immutable after Build; all accessors are read-only and safe
// for concurrent use.
package topology
