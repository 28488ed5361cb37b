package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/icosim/internal/topology"
)

// PlotOptions controls terminal trajectory plots.
type PlotOptions struct {
	Height int
	Width  int
	Nodes  []int
}

// DefaultPlotOptions plots the central node and one node per shell.
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{
		Height: 12,
		Width:  72,
		Nodes:  []int{1, 21, topology.CentralID},
	}
}

// Magnitudes renders per-node |amplitude| series as an ASCII chart.
// The series slice is indexed by node ID minus one.
func Magnitudes(topo *topology.Topology, series [][]float64, opt PlotOptions) (string, error) {
	if opt.Height <= 0 {
		opt.Height = 12
	}
	if opt.Width <= 0 {
		opt.Width = 72
	}
	if len(opt.Nodes) == 0 {
		opt.Nodes = DefaultPlotOptions().Nodes
	}

	var sb strings.Builder
	for _, id := range opt.Nodes {
		node, err := topo.Node(id)
		if err != nil {
			return "", err
		}
		if id < 1 || id > len(series) {
			return "", fmt.Errorf("viz: no series for node %d", id)
		}

		title := ZoneStyle(node.Zone).Render(fmt.Sprintf("node %d (%s)", id, node.Zone))
		sb.WriteString(title + "\n")
		sb.WriteString(asciigraph.Plot(series[id-1],
			asciigraph.Height(opt.Height),
			asciigraph.Width(opt.Width),
			asciigraph.Precision(4),
		))
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}
