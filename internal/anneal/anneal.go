// Package anneal provides a simulated-annealing solver for compiled QUBO
// models. It is a convenience solver for small problems; compiled models
// remain consumable by any external optimizer.
package anneal

import (
	"context"
	"errors"
	"math"
	"math/rand"

	"github.com/san-kum/icosim/internal/qubo"
)

const (
	// DefaultSweeps matches the annealer step count of the source system.
	DefaultSweeps = 1000
	// DefaultTempFactor scales the starting temperature against the
	// largest coefficient magnitude of the model.
	DefaultTempFactor = 0.1
)

// ErrNilModel indicates a solve call without a model.
var ErrNilModel = errors.New("anneal: model is nil")

// Options tunes a solve. The zero value uses defaults and seed 0, so runs
// are reproducible unless the caller varies the seed.
type Options struct {
	Sweeps    int
	Seed      int64
	StartTemp float64 // zero picks DefaultTempFactor * max |coefficient|
	EndTemp   float64 // zero picks StartTemp / 1000
}

// Solution is the best assignment found.
type Solution struct {
	Assignment []int
	Energy     float64
	Sweeps     int
}

// Solve runs single-flip Metropolis annealing with a geometric cooling
// schedule. Deterministic for a given model, options and seed.
func Solve(ctx context.Context, m *qubo.Model, opt Options) (*Solution, error) {
	if m == nil {
		return nil, ErrNilModel
	}

	sweeps := opt.Sweeps
	if sweeps <= 0 {
		sweeps = DefaultSweeps
	}
	tStart := opt.StartTemp
	if tStart <= 0 {
		tStart = DefaultTempFactor * maxCoeff(m)
		if tStart <= 0 {
			tStart = DefaultTempFactor
		}
	}
	tEnd := opt.EndTemp
	if tEnd <= 0 || tEnd >= tStart {
		tEnd = tStart / 1000
	}
	cool := math.Pow(tEnd/tStart, 1/float64(sweeps))

	rng := rand.New(rand.NewSource(opt.Seed))

	x := make([]int, m.N)
	for i := range x {
		x[i] = rng.Intn(2)
	}
	energy, err := m.Energy(x)
	if err != nil {
		return nil, err
	}

	best := make([]int, m.N)
	copy(best, x)
	bestEnergy := energy

	temp := tStart
	done := 0

	for s := 0; s < sweeps; s++ {
		select {
		case <-ctx.Done():
			return &Solution{Assignment: best, Energy: bestEnergy, Sweeps: done}, ctx.Err()
		default:
		}

		for i := 0; i < m.N; i++ {
			delta := flipDelta(m, x, i)
			if delta <= 0 || rng.Float64() < math.Exp(-delta/temp) {
				x[i] = 1 - x[i]
				energy += delta
				if energy < bestEnergy {
					bestEnergy = energy
					copy(best, x)
				}
			}
		}

		temp *= cool
		done++
	}

	return &Solution{Assignment: best, Energy: bestEnergy, Sweeps: done}, nil
}

// flipDelta is the energy change of flipping variable i:
// (1-2*x_i) * (Linear[i] + sum_j Quad[i][j]*x_j).
func flipDelta(m *qubo.Model, x []int, i int) float64 {
	local := m.Linear[i]
	for j, xj := range x {
		if xj != 0 && j != i {
			local += m.Quad[i][j]
		}
	}
	if x[i] == 1 {
		return -local
	}
	return local
}

func maxCoeff(m *qubo.Model) float64 {
	max := 0.0
	for i, l := range m.Linear {
		if a := math.Abs(l); a > max {
			max = a
		}
		for j := i + 1; j < m.N; j++ {
			if a := math.Abs(m.Quad[i][j]); a > max {
				max = a
			}
		}
	}
	return max
}
