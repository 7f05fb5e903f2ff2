// Package trace records node-state histories of a running agent for
// offline analysis. This package has no dependencies on sim/; it stores pure
// data types.
package trace

// TickRecord captures the node states of one agent after one tick.
type TickRecord struct {
	Tick   int
	Trial  int    // externally assigned trial number; 0 when unused
	States []byte // full node-state vector, one 0/1 value per node
}

// StateCount pairs a (possibly projected) state with how often it was seen.
type StateCount struct {
	State []byte
	Count int
}
