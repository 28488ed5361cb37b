// Package unified implements the field evolution engine for the 33-node
// icosahedral topology.
//
// Each step advances every node from the previous snapshot only
// (synchronous update). The per-node update is the product of three
// factors applied to the neighbor-mixed amplitude:
//
//   - a real gain sqrt((Gref + density_i) / Gref), undefined (and reported
//     as a numeric error) when the ratio is negative
//   - a unit phase exp(i * integral of the energy pathway over [t, t+dt]),
//     evaluated by composite trapezoid quadrature
//   - three force-alignment channel factors sin(pi*k/2), sin(pi*h/2),
//     sin(pi*l/2), clamped to [-1, 1] against floating-point overshoot
//
// Numeric failures are surfaced per node and never replaced by silent
// defaults; the remaining nodes of the same step still advance.
package unified
