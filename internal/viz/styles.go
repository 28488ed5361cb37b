// Package viz renders topology summaries, trajectory plots and a live
// terminal view of the field.
package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/icosim/internal/topology"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	greenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#22aa44"))
	yellowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ddbb22"))
	centralStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3366dd")).Bold(true)
)

// ZoneStyle returns the display style for a zone.
func ZoneStyle(z topology.Zone) lipgloss.Style {
	switch z {
	case topology.Green:
		return greenStyle
	case topology.Yellow:
		return yellowStyle
	default:
		return centralStyle
	}
}

// TopologySummary renders the zone partition and adjacency shape.
func TopologySummary(topo *topology.Topology) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("icosahedral topology") + "\n")

	rows := []struct {
		zone  topology.Zone
		count int
	}{
		{topology.Green, topo.ZoneCount(topology.Green)},
		{topology.Yellow, topo.ZoneCount(topology.Yellow)},
		{topology.Central, topo.ZoneCount(topology.Central)},
	}
	for _, r := range rows {
		label := labelStyle.Render(r.zone.String())
		value := ZoneStyle(r.zone).Render(fmt.Sprintf("%2d nodes, force: %s", r.count, r.zone.Force()))
		sb.WriteString(label + value + "\n")
	}

	sb.WriteString(labelStyle.Render("edges") + valueStyle.Render(fmt.Sprintf("%d", topo.NumEdges())) + "\n")
	sb.WriteString(labelStyle.Render("central degree") +
		valueStyle.Render(fmt.Sprintf("%d (vertex shell)", topo.Degree(topology.CentralID))) + "\n")
	return sb.String()
}
