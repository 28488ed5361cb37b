// Package drive provides energy-pathway drivers: the time-varying
// per-node inputs fed to the evolution engine as density and
// energy-pathway functions.
//
//   - [Constant]: fixed level everywhere
//   - [Sinusoid]: sinusoidal drive, optionally phase-shifted per node
//   - [Pulse]: fixed level inside a time window, zero outside
//   - [ZoneSplit]: separate levels for green, yellow and central nodes
package drive

import (
	"math"

	"github.com/san-kum/icosim/internal/topology"
	"github.com/san-kum/icosim/internal/unified"
)

// Constant returns a pathway with a fixed level for every node.
func Constant(level float64) unified.Pathway {
	return func(node int, t float64) float64 { return level }
}

// Sinusoid returns amp * sin(2*pi*freq*t + node*phaseStep). A nonzero
// phaseStep staggers the drive around the shell.
func Sinusoid(amp, freq, phaseStep float64) unified.Pathway {
	return func(node int, t float64) float64 {
		return amp * math.Sin(2*math.Pi*freq*t+float64(node)*phaseStep)
	}
}

// Pulse returns level inside [from, to) and zero outside.
func Pulse(level, from, to float64) unified.Pathway {
	return func(node int, t float64) float64 {
		if t >= from && t < to {
			return level
		}
		return 0
	}
}

// ZoneSplit drives each zone at its own level.
func ZoneSplit(topo *topology.Topology, green, yellow, central float64) unified.Pathway {
	return func(node int, t float64) float64 {
		n, err := topo.Node(node)
		if err != nil {
			return 0
		}
		switch n.Zone {
		case topology.Green:
			return green
		case topology.Yellow:
			return yellow
		default:
			return central
		}
	}
}

// Sum composes pathways additively.
func Sum(paths ...unified.Pathway) unified.Pathway {
	return func(node int, t float64) float64 {
		total := 0.0
		for _, p := range paths {
			total += p(node, t)
		}
		return total
	}
}
