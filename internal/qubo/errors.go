package qubo

import "errors"

var (
	// ErrAlphaShape indicates a linear coefficient vector of the wrong length.
	ErrAlphaShape = errors.New("qubo: alpha length does not match node count")
	// ErrBetaShape indicates a pairwise coefficient matrix of the wrong shape.
	ErrBetaShape = errors.New("qubo: beta must be a square node-count matrix")
	// ErrBiasShape indicates an observer-bias vector of the wrong length.
	ErrBiasShape = errors.New("qubo: observer-bias vector length does not match node count")
	// ErrTarget indicates an exclusion target outside [0, node count].
	ErrTarget = errors.New("qubo: exclusion target out of range")
	// ErrAssignment indicates an assignment vector of the wrong length.
	ErrAssignment = errors.New("qubo: assignment length does not match model")
)
