package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/icosim/internal/topology"
)

func TestTopologySummary(t *testing.T) {
	topo, err := topology.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	out := TopologySummary(topo)
	for _, want := range []string{"green", "yellow", "central", "132"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestMagnitudes(t *testing.T) {
	topo, err := topology.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	series := make([][]float64, topology.NumNodes)
	for i := range series {
		series[i] = []float64{0, 0.5, 1}
	}

	out, err := Magnitudes(topo, series, PlotOptions{Nodes: []int{1, 33}})
	if err != nil {
		t.Fatalf("plot: %v", err)
	}
	if !strings.Contains(out, "node 1") || !strings.Contains(out, "node 33") {
		t.Errorf("plot output missing node titles:\n%s", out)
	}
}

func TestMagnitudesBadNode(t *testing.T) {
	topo, err := topology.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if _, err := Magnitudes(topo, make([][]float64, topology.NumNodes), PlotOptions{Nodes: []int{99}}); err == nil {
		t.Error("expected error for unknown node")
	}
}
