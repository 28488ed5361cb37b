package unified

import (
	"log/slog"
	"math"
	"math/cmplx"
	"sync"

	"github.com/san-kum/icosim/internal/field"
	"github.com/san-kum/icosim/internal/topology"
)

// Engine advances field snapshots over a fixed topology. Engines are
// stateless apart from the topology reference and may be shared across
// goroutines.
type Engine struct {
	topo *topology.Topology
	log  *slog.Logger
}

// New returns an engine bound to a topology.
func New(topo *topology.Topology) *Engine {
	return &Engine{topo: topo, log: slog.Default()}
}

// SetLogger replaces the diagnostic logger.
func (e *Engine) SetLogger(l *slog.Logger) {
	if l != nil {
		e.log = l
	}
}

// Step computes the snapshot at t+dt from the snapshot at t. It is a pure
// function of its inputs: identical calls produce identical output.
//
// The returned NodeError slice lists nodes whose update failed numerically;
// those nodes carry their previous amplitude forward so the caller can
// retry with an adjusted dt. A non-nil error means the inputs were
// malformed and no snapshot was produced.
func (e *Engine) Step(prev *field.State, p Params, t, dt float64) (*field.State, []NodeError, error) {
	n := e.topo.NumNodes()
	if prev.Len() != n {
		return nil, nil, ErrStateSize
	}
	if err := p.validate(n); err != nil {
		return nil, nil, err
	}

	next := field.New(n)
	next.T = t + dt

	gref := p.refCoupling()
	// One slot per node; workers write disjoint indices, no locking.
	nodeErrs := make([]*NodeError, n)

	parallelFor(n, 8, func(start, end int) {
		for i := start; i < end; i++ {
			id := i + 1

			amp, err := e.updateNode(prev, p, gref, id, t, dt)
			if err != nil {
				nodeErrs[i] = &NodeError{Node: id, Time: t, Err: err}
				if err == ErrNegativeCoupling {
					// Gain undefined: carry the previous value, never zero.
					amp = prev.Amp[i]
				}
			}
			next.Amp[i] = amp
			next.Shadow[i] = field.Pair(amp)
		}
	})

	var errs []NodeError
	for _, ne := range nodeErrs {
		if ne != nil {
			errs = append(errs, *ne)
		}
	}
	if len(errs) > 0 {
		e.log.Debug("step completed with node errors", "t", t, "failed", len(errs))
	}
	return next, errs, nil
}

func (e *Engine) updateNode(prev *field.State, p Params, gref float64, id int, t, dt float64) (complex128, error) {
	i := id - 1

	ratio := gref
	if p.Density != nil {
		ratio += p.Density(id, t)
	}
	ratio /= gref
	if ratio < 0 {
		return 0, ErrNegativeCoupling
	}
	gain := math.Sqrt(ratio)

	phase := e.integratePathway(p, id, t, dt)

	align := alignFactor(p.align(p.AlignK, i)) *
		alignFactor(p.align(p.AlignH, i)) *
		alignFactor(p.align(p.AlignL, i))

	mixed := prev.Amp[i]
	if p.GeoWeight != 0 {
		var sum complex128
		for _, nb := range e.topo.Neighbors(id) {
			sum += prev.Amp[nb-1]
		}
		mixed += complex(dt*p.GeoWeight, 0) * sum
	}

	amp := complex(gain*align, 0) * cmplx.Exp(complex(0, phase)) * mixed
	if cmplx.IsNaN(amp) || cmplx.IsInf(amp) {
		return amp, ErrNonFinite
	}
	return amp, nil
}

// integratePathway accumulates the phase integral of the energy pathway
// over [t, t+dt] by composite trapezoid.
func (e *Engine) integratePathway(p Params, id int, t, dt float64) float64 {
	if p.Energy == nil {
		return 0
	}
	n := p.substeps()
	h := dt / float64(n)
	sum := 0.5 * (p.Energy(id, t) + p.Energy(id, t+dt))
	for k := 1; k < n; k++ {
		sum += p.Energy(id, t+float64(k)*h)
	}
	return sum * h
}

// alignFactor maps an alignment parameter to its channel factor. The trig
// identity keeps the value in [-1, 1]; the clamp guards against
// floating-point overshoot at the boundary.
func alignFactor(a float64) float64 {
	return clamp(math.Sin(math.Pi*a/2), -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// parallelFor executes fn over [0, n) on parallel workers with contiguous
// chunks. Small ranges run inline.
func parallelFor(n, minChunk int, fn func(start, end int)) {
	const numWorkers = 4
	if n <= minChunk {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(s, e int) {
			defer wg.Done()
			if s < e {
				fn(s, e)
			}
		}(start, end)
	}

	wg.Wait()
}
