package sim

import "fmt"

// Edges returns the structural connectivity of the phenotype: for every
// gate, every (input, output) pair, in gate order.
func (a *Agent) Edges() [][2]int {
	var edges [][2]int
	for _, g := range a.gates {
		for _, in := range g.Inputs {
			for _, out := range g.Outputs {
				edges = append(edges, [2]int{in, out})
			}
		}
	}
	return edges
}

// ConnectivityMatrix returns a Total x Total matrix with cm[i][j] = 1 when
// some gate reads node i and writes node j.
func (a *Agent) ConnectivityMatrix() [][]int {
	total := a.Layout.Total()
	cm := make([][]int, total)
	for i := range cm {
		cm[i] = make([]int, total)
	}
	for _, e := range a.Edges() {
		cm[e[0]][e[1]] = 1
	}
	return cm
}

// Transitions enumerates every global state, ticks once from it and records
// the successor. Row i is the successor of the state whose node j holds bit
// j of i (node 0 is the least significant bit). The agent's real state is
// restored before returning. Probabilistic agents yield one sampled successor
// per row, drawn from a stream separate from the one UpdateStates uses, so
// the sweep does not perturb later ticks.
func (a *Agent) Transitions() [][]bool {
	total := a.Layout.Total()
	if total > MaxNodes {
		panic(fmt.Sprintf("Transitions: %d nodes exceeds maximum %d", total, MaxNodes))
	}
	saved := append([]byte(nil), a.States...)
	savedNext := append([]byte(nil), a.next...)
	clear(a.next)

	numStates := 1 << total
	tpm := make([][]bool, numStates)
	for i := 0; i < numStates; i++ {
		for j := 0; j < total; j++ {
			a.States[j] = byte((i >> j) & 1)
		}
		a.tick(a.sweepRNG)
		row := make([]bool, total)
		for j := 0; j < total; j++ {
			row[j] = a.States[j] == 1
		}
		tpm[i] = row
	}

	copy(a.States, saved)
	copy(a.next, savedNext)
	return tpm
}

// StateIndex packs a state vector into an integer using the same
// node-0-least-significant convention as Transitions.
func StateIndex(states []byte) int {
	idx := 0
	for j, s := range states {
		idx |= int(s&1) << j
	}
	return idx
}
