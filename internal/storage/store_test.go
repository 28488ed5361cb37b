package storage

import (
	"math"
	"testing"

	"github.com/san-kum/icosim/internal/field"
	"github.com/san-kum/icosim/internal/qubo"
	"github.com/san-kum/icosim/internal/sim"
	"github.com/san-kum/icosim/internal/topology"
)

func sampleResult() *sim.Result {
	a := field.New(3)
	a.Set(1, complex(1, 0))
	b := field.New(3)
	b.T = 0.01
	b.Set(1, complex(0, 2))

	return &sim.Result{
		States:     []*field.State{a, b},
		Times:      []float64{0, 0.01},
		Metrics:    map[string]float64{"field_energy": 2.5},
		StepsTaken: 1,
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	id, err := st.Save("demo", 0.01, sampleResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := st.Load(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Label != "demo" || meta.Steps != 1 || meta.Dt != 0.01 {
		t.Errorf("metadata = %+v", meta)
	}
	if meta.Metrics["field_energy"] != 2.5 {
		t.Errorf("metrics = %v", meta.Metrics)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != id {
		t.Errorf("runs = %+v", runs)
	}
}

func TestLoadMagnitudes(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	id, err := st.Save("demo", 0.01, sampleResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	times, mags, err := st.LoadMagnitudes(id)
	if err != nil {
		t.Fatalf("load magnitudes: %v", err)
	}

	if len(times) != 2 {
		t.Fatalf("times = %v", times)
	}
	if len(mags) != 3 {
		t.Fatalf("expected 3 node series, got %d", len(mags))
	}
	if math.Abs(mags[0][0]-1) > 1e-9 || math.Abs(mags[0][1]-2) > 1e-9 {
		t.Errorf("node 1 magnitudes = %v", mags[0])
	}
}

func TestListEmpty(t *testing.T) {
	st := New(t.TempDir() + "/missing")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("runs = %+v", runs)
	}
}

func TestModelRoundTrip(t *testing.T) {
	topo, err := topology.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	m, err := qubo.Compile(topo, qubo.Params{Geometric: 1, Exclusion: qubo.Exclusion{Weight: 2, Target: 1}})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	id, err := st.SaveModel("demo", m)
	if err != nil {
		t.Fatalf("save model: %v", err)
	}

	loaded, err := st.LoadModel(id)
	if err != nil {
		t.Fatalf("load model: %v", err)
	}
	if loaded.N != m.N || loaded.Offset != m.Offset {
		t.Errorf("model = %+v", loaded)
	}
	if loaded.Linear[0] != m.Linear[0] || loaded.Quad[0][1] != m.Quad[0][1] {
		t.Error("model coefficients did not round-trip")
	}
}
