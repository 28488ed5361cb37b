package topology

import "math"

// Vec3 is a point on (or inside) the unit sphere.
type Vec3 [3]float64

func (v Vec3) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func (v Vec3) normalize() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return Vec3{v[0] / n, v[1] / n, v[2] / n}
}

func (v Vec3) sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// icosahedronVertices returns the 12 vertices built from the golden ratio,
// normalized to the unit sphere. Order is fixed so node ids are stable.
func icosahedronVertices() []Vec3 {
	phi := (1 + math.Sqrt(5)) / 2

	raw := []Vec3{
		{0, 1, phi}, {0, 1, -phi}, {0, -1, phi}, {0, -1, -phi},
		{1, phi, 0}, {1, -phi, 0}, {-1, phi, 0}, {-1, -phi, 0},
		{phi, 0, 1}, {phi, 0, -1}, {-phi, 0, 1}, {-phi, 0, -1},
	}

	verts := make([]Vec3, len(raw))
	for i, v := range raw {
		verts[i] = v.normalize()
	}
	return verts
}

// vertexAdjacent reports whether two unit-sphere vertices are joined by an
// icosahedron edge. On the unit sphere every edge has the same length
// (~1.0515); anything longer is a diagonal.
func vertexAdjacent(a, b Vec3) bool {
	const edgeLen = 1.0514622242382672 // 2 / sqrt(1 + phi^2)
	d := a.sub(b).Norm()
	return math.Abs(d-edgeLen) < 1e-9
}

// faceCenters enumerates the 20 triangular faces as vertex index triples
// (i < j < k, lexicographic) and returns their normalized centers alongside
// the triples. The icosahedron graph contains exactly 20 triangles, one per
// face.
func faceCenters(verts []Vec3) (centers []Vec3, triples [][3]int) {
	n := len(verts)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !vertexAdjacent(verts[i], verts[j]) {
				continue
			}
			for k := j + 1; k < n; k++ {
				if !vertexAdjacent(verts[i], verts[k]) || !vertexAdjacent(verts[j], verts[k]) {
					continue
				}
				c := Vec3{
					(verts[i][0] + verts[j][0] + verts[k][0]) / 3,
					(verts[i][1] + verts[j][1] + verts[k][1]) / 3,
					(verts[i][2] + verts[j][2] + verts[k][2]) / 3,
				}
				centers = append(centers, c.normalize())
				triples = append(triples, [3]int{i, j, k})
			}
		}
	}
	return centers, triples
}

// facesShareEdge reports whether two faces have two vertices in common.
func facesShareEdge(a, b [3]int) bool {
	shared := 0
	for _, va := range a {
		for _, vb := range b {
			if va == vb {
				shared++
			}
		}
	}
	return shared == 2
}
