// Package field holds per-node complex field snapshots and the shadow
// pairing transform.
package field

import (
	"errors"
	"math"
	"math/cmplx"
)

// PairOffset is the fixed phase offset applied by the pairing transform.
// It keeps a shadow distinguishable from its amplitude while preserving
// magnitude.
const PairOffset = 1e-3

// ErrSize indicates a snapshot built for the wrong node count.
var ErrSize = errors.New("field: snapshot size does not match node count")

// Pair maps an amplitude to its expected shadow value: the conjugate
// rotated by PairOffset radians.
func Pair(a complex128) complex128 {
	return cmplx.Conj(a) * cmplx.Exp(complex(0, PairOffset))
}

// State is an immutable-by-convention snapshot of the field at time T.
// Slot i holds node id i+1. Steps produce new snapshots; callers must not
// write into a snapshot they did not create.
type State struct {
	T      float64
	Amp    []complex128
	Shadow []complex128
}

// New returns an all-zero snapshot for n nodes at t=0.
func New(n int) *State {
	return &State{
		Amp:    make([]complex128, n),
		Shadow: make([]complex128, n),
	}
}

// Len returns the node count.
func (s *State) Len() int { return len(s.Amp) }

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := &State{
		T:      s.T,
		Amp:    make([]complex128, len(s.Amp)),
		Shadow: make([]complex128, len(s.Shadow)),
	}
	copy(c.Amp, s.Amp)
	copy(c.Shadow, s.Shadow)
	return c
}

// Set writes an amplitude and its paired shadow into slot id-1. Intended
// for building initial conditions only.
func (s *State) Set(id int, a complex128) {
	s.Amp[id-1] = a
	s.Shadow[id-1] = Pair(a)
}

// Amplitude returns the amplitude of a node.
func (s *State) Amplitude(id int) complex128 { return s.Amp[id-1] }

// ShadowOf returns the shadow amplitude of a node.
func (s *State) ShadowOf(id int) complex128 { return s.Shadow[id-1] }

// IsValid reports whether every component is finite.
func (s *State) IsValid() bool {
	for _, a := range s.Amp {
		if cmplx.IsNaN(a) || cmplx.IsInf(a) {
			return false
		}
	}
	for _, a := range s.Shadow {
		if cmplx.IsNaN(a) || cmplx.IsInf(a) {
			return false
		}
	}
	return true
}

// Norm returns the total field magnitude sqrt(sum |a|^2) over amplitudes.
func (s *State) Norm() float64 {
	return math.Sqrt(s.Energy())
}

// Energy returns sum |a_i|^2, the quantity tracked by the energy metric.
func (s *State) Energy() float64 {
	sum := 0.0
	for _, a := range s.Amp {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	return sum
}
