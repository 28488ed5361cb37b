// Package qubo compiles a topology and a coupling-parameter set into a
// quadratic unconstrained binary optimization objective, one binary
// variable per node.
//
// The objective is the sum of four independent terms:
//
//   - geometric: penalizes disagreement across every topology edge
//   - exclusion: squared penalty driving the active count toward K
//   - problem: caller-supplied linear (alpha) and pairwise (beta) weights
//   - observer bias: a scalar-weighted uniform or per-node linear term
//
// Terms are linearly additive; a zero-weight term contributes nothing, so
// the compiled model equals the one built without it. Compilation is pure:
// the returned Model is never touched by this package again.
package qubo
