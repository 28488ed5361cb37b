package topology

import "errors"

var (
	// ErrPartition indicates a node-count override other than 20/12/1.
	ErrPartition = errors.New("topology: partition must be 20 green, 12 yellow, 1 central")
	// ErrNodeID indicates a node id outside [1, 33].
	ErrNodeID = errors.New("topology: node id out of range")
)
