package export

import (
	"fmt"
	"io"
	"math/cmplx"
	"strings"

	"github.com/san-kum/icosim/internal/field"
	"github.com/san-kum/icosim/internal/topology"
)

var zoneFill = map[topology.Zone]string{
	topology.Green:   "#22aa44",
	topology.Yellow:  "#ddbb22",
	topology.Central: "#3366dd",
}

// TopologySVG renders the node layout and edge set as an SVG, projecting
// positions onto the xy plane. A non-nil snapshot scales each node's
// radius by its amplitude magnitude.
func TopologySVG(w io.Writer, topo *topology.Topology, st *field.State, size float64) error {
	half := size / 2
	scale := half * 0.85

	project := func(p topology.Vec3) (float64, float64) {
		return half + p[0]*scale, half - p[1]*scale
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size))

	sb.WriteString(`<g stroke="#333344" stroke-width="1">` + "\n")
	for _, e := range topo.Edges() {
		a, _ := topo.Node(e[0])
		b, _ := topo.Node(e[1])
		x1, y1 := project(a.Pos)
		x2, y2 := project(b.Pos)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x1, y1, x2, y2))
	}
	sb.WriteString("</g>\n")

	for _, n := range topo.Nodes() {
		x, y := project(n.Pos)
		r := size / 60
		if st != nil {
			r *= 0.4 + cmplx.Abs(st.Amplitude(n.ID))
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			x, y, r, zoneFill[n.Zone]))
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
