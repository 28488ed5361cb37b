// Package metrics implements run metrics over field snapshots.
package metrics

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/icosim/internal/field"
	"github.com/san-kum/icosim/internal/topology"
)

// FieldEnergy tracks the mean total field energy sum |a_i|^2.
type FieldEnergy struct {
	total   float64
	samples int
}

func NewFieldEnergy() *FieldEnergy { return &FieldEnergy{} }

func (e *FieldEnergy) Name() string { return "field_energy" }

func (e *FieldEnergy) Observe(st *field.State, t float64) {
	e.total += st.Energy()
	e.samples++
}

func (e *FieldEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *FieldEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// ShadowCoherence tracks the worst pairing deviation seen across all
// observations, the same quantity MBOTS checks per node.
type ShadowCoherence struct {
	maxDeviation float64
}

func NewShadowCoherence() *ShadowCoherence { return &ShadowCoherence{} }

func (c *ShadowCoherence) Name() string { return "shadow_coherence" }

func (c *ShadowCoherence) Observe(st *field.State, t float64) {
	for i := range st.Amp {
		d := cmplx.Abs(st.Shadow[i] - field.Pair(st.Amp[i]))
		c.maxDeviation = math.Max(c.maxDeviation, d)
	}
}

func (c *ShadowCoherence) Value() float64 { return c.maxDeviation }

func (c *ShadowCoherence) Reset() { c.maxDeviation = 0 }

// ZoneBalance tracks the running ratio of green-zone to yellow-zone
// energy; 1 means the shells carry equal energy.
type ZoneBalance struct {
	topo    *topology.Topology
	total   float64
	samples int
}

func NewZoneBalance(topo *topology.Topology) *ZoneBalance {
	return &ZoneBalance{topo: topo}
}

func (z *ZoneBalance) Name() string { return "zone_balance" }

func (z *ZoneBalance) Observe(st *field.State, t float64) {
	var green, yellow float64
	for _, n := range z.topo.Nodes() {
		a := st.Amplitude(n.ID)
		e := real(a)*real(a) + imag(a)*imag(a)
		switch n.Zone {
		case topology.Green:
			green += e
		case topology.Yellow:
			yellow += e
		}
	}
	if yellow > 0 {
		z.total += green / yellow
		z.samples++
	}
}

func (z *ZoneBalance) Value() float64 {
	if z.samples == 0 {
		return 0
	}
	return z.total / float64(z.samples)
}

func (z *ZoneBalance) Reset() {
	z.total = 0
	z.samples = 0
}
