package anneal

import (
	"context"
	"testing"

	"github.com/san-kum/icosim/internal/qubo"
	"github.com/san-kum/icosim/internal/topology"
)

func compileModel(t *testing.T, p qubo.Params) *qubo.Model {
	t.Helper()
	topo, err := topology.Build()
	if err != nil {
		t.Fatalf("build topology: %v", err)
	}
	m, err := qubo.Compile(topo, p)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return m
}

func TestSolveFindsSingleActiveOptimum(t *testing.T) {
	// Strong bias toward node 33 plus K=1 exclusion: the optimum is
	// exactly node 33 active.
	alpha := make([]float64, topology.NumNodes)
	alpha[topology.CentralID-1] = -5

	m := compileModel(t, qubo.Params{
		Alpha:     alpha,
		Exclusion: qubo.Exclusion{Weight: 10, Target: 1},
	})

	sol, err := Solve(context.Background(), m, Options{Sweeps: 2000, Seed: 42})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}

	for i, xi := range sol.Assignment {
		want := 0
		if i == topology.CentralID-1 {
			want = 1
		}
		if xi != want {
			t.Fatalf("assignment[%d] = %d, want %d (energy %f)", i, xi, want, sol.Energy)
		}
	}
	if sol.Energy >= 0 {
		t.Errorf("optimal energy = %f, want negative", sol.Energy)
	}
}

func TestSolveDeterministicPerSeed(t *testing.T) {
	m := compileModel(t, qubo.Params{Geometric: 1, BiasWeight: -0.2})

	a, err := Solve(context.Background(), m, Options{Seed: 7})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	b, err := Solve(context.Background(), m, Options{Seed: 7})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}

	if a.Energy != b.Energy {
		t.Errorf("energies differ: %f vs %f", a.Energy, b.Energy)
	}
	for i := range a.Assignment {
		if a.Assignment[i] != b.Assignment[i] {
			t.Fatalf("assignments differ at %d", i)
		}
	}
}

func TestSolveReportedEnergyMatchesModel(t *testing.T) {
	m := compileModel(t, qubo.Params{Geometric: 2, Exclusion: qubo.Exclusion{Weight: 1, Target: 5}})

	sol, err := Solve(context.Background(), m, Options{Seed: 3})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}

	e, err := m.Energy(sol.Assignment)
	if err != nil {
		t.Fatalf("energy: %v", err)
	}
	if diff := sol.Energy - e; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("reported energy %f, recomputed %f", sol.Energy, e)
	}
}

func TestSolveHonorsCancellation(t *testing.T) {
	m := compileModel(t, qubo.Params{Geometric: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sol, err := Solve(ctx, m, Options{Sweeps: 100000})
	if err == nil {
		t.Fatal("expected context error")
	}
	if sol == nil || sol.Sweeps != 0 {
		t.Errorf("partial solution = %+v", sol)
	}
}

func TestSolveNilModel(t *testing.T) {
	if _, err := Solve(context.Background(), nil, Options{}); err != ErrNilModel {
		t.Errorf("err = %v, want ErrNilModel", err)
	}
}
