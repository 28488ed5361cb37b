package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/icosim/internal/field"
	"github.com/san-kum/icosim/internal/topology"
)

func TestFieldEnergyAverages(t *testing.T) {
	m := NewFieldEnergy()

	a := field.New(2)
	a.Set(1, complex(1, 0)) // energy 1
	b := field.New(2)
	b.Set(1, complex(2, 0)) // energy 4

	m.Observe(a, 0)
	m.Observe(b, 1)

	if v := m.Value(); math.Abs(v-2.5) > 1e-12 {
		t.Errorf("Value() = %f, want 2.5", v)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("Reset did not clear the metric")
	}
}

func TestShadowCoherenceTracksWorstDeviation(t *testing.T) {
	m := NewShadowCoherence()

	st := field.New(3)
	st.Set(1, complex(1, 0))
	m.Observe(st, 0)
	if m.Value() > 1e-12 {
		t.Errorf("paired state deviation = %g", m.Value())
	}

	st.Shadow[1] = complex(2, 0) // deviation 2 against Pair(0)=0
	m.Observe(st, 1)
	if math.Abs(m.Value()-2) > 1e-12 {
		t.Errorf("Value() = %f, want 2", m.Value())
	}
}

func TestZoneBalance(t *testing.T) {
	topo, err := topology.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	st := field.New(topo.NumNodes())
	st.Set(1, complex(2, 0))  // green, energy 4
	st.Set(21, complex(1, 0)) // yellow, energy 1

	m := NewZoneBalance(topo)
	m.Observe(st, 0)

	if v := m.Value(); math.Abs(v-4) > 1e-12 {
		t.Errorf("Value() = %f, want 4", v)
	}
}

func TestZoneBalanceNoYellowEnergy(t *testing.T) {
	topo, err := topology.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	st := field.New(topo.NumNodes())
	st.Set(1, complex(1, 0))

	m := NewZoneBalance(topo)
	m.Observe(st, 0)

	if m.Value() != 0 {
		t.Errorf("Value() = %f, want 0 when yellow shell is dark", m.Value())
	}
}
