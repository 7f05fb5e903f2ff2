package sim

import "math/rand"

// testLayout is the classic two-sensor, four-hidden, two-motor animat.
var testLayout = NodeLayout{Sensors: 2, Hidden: 4, Motors: 2}

// newTestRNG returns a seeded *rand.Rand for operator-level tests.
func newTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// newTestAgent builds an agent over genome with testLayout.
func newTestAgent(genome Genome, deterministic bool) *Agent {
	cfg := AgentConfig{Layout: testLayout, Deterministic: deterministic}
	return NewAgent(genome, cfg, NewPartitionedRNG(NewSimulationKey(42)))
}

// newSeededAgent builds a decoded agent with a random genome carrying n start codons.
func newSeededAgent(seed int64, length, n int, deterministic bool) *Agent {
	rng := NewPartitionedRNG(NewSimulationKey(seed))
	genome := RandomGenome(rng.ForSubsystem(SubsystemGenesis), length)
	a := NewAgent(genome, AgentConfig{Layout: testLayout, Deterministic: deterministic}, rng)
	a.InjectStartCodons(n)
	a.GeneratePhenotype()
	return a
}

// detGate builds a deterministic gate whose row r selects column choice[r].
func detGate(inputs, outputs []int, choice []int) MarkovGate {
	g := MarkovGate{Inputs: inputs, Outputs: outputs, Deterministic: true}
	cols := 1 << len(outputs)
	for _, c := range choice {
		row := make([]int, cols)
		row[c] = MaxWeight
		g.Table = append(g.Table, row)
		g.RowSums = append(g.RowSums, MaxWeight)
	}
	return g
}

// singleGateGenome returns a 40-byte genome holding exactly one start codon
// at position 0 with one input and one output.
func singleGateGenome(inputByte, outputByte byte, table [4]byte) Genome {
	g := make(Genome, 40)
	g[0], g[1] = StartCodonA, StartCodonB
	g[2], g[3] = 0, 0 // one input, one output
	g[4] = inputByte
	g[8] = outputByte
	copy(g[20:24], table[:])
	return g
}
