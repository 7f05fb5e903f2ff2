package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGate_SingleGateGenomeOfLength40(t *testing.T) {
	// GIVEN a 40-byte genome with one start codon, one input and one output
	g := singleGateGenome(7, 9, [4]byte{10, 200, 0, 0})
	a := newTestAgent(g, true)

	// WHEN the phenotype is generated
	a.GeneratePhenotype()

	// THEN exactly one gate with a 2x2 table is decoded
	require.Len(t, a.Gates(), 1)
	gate := a.Gates()[0]
	assert.Equal(t, []int{7 % 6}, gate.Inputs)
	assert.Equal(t, []int{9%6 + 2}, gate.Outputs)
	require.Len(t, gate.Table, 2)
	assert.Len(t, gate.Table[0], 2)
	assert.Len(t, gate.Table[1], 2)
}

func TestDecodeGate_DeterministicIndicatorRows(t *testing.T) {
	g := singleGateGenome(0, 0, [4]byte{10, 200, 0, 0})
	gate := DecodeGate(g, 0, testLayout, true)

	// row 0: max at column 1
	assert.Equal(t, []int{0, MaxWeight}, gate.Table[0])
	// row 1: all-zero raw row, first occurrence wins
	assert.Equal(t, []int{MaxWeight, 0}, gate.Table[1])
	assert.Equal(t, []int{MaxWeight, MaxWeight}, gate.RowSums)
}

func TestDecodeGate_DeterministicTieBreaksOnFirstOccurrence(t *testing.T) {
	g := singleGateGenome(0, 0, [4]byte{77, 77, 3, 3})
	gate := DecodeGate(g, 0, testLayout, true)
	assert.Equal(t, []int{MaxWeight, 0}, gate.Table[0])
	assert.Equal(t, []int{MaxWeight, 0}, gate.Table[1])
}

func TestDecodeGate_ProbabilisticRemapsZeros(t *testing.T) {
	g := singleGateGenome(0, 0, [4]byte{10, 200, 0, 0})
	gate := DecodeGate(g, 0, testLayout, false)

	assert.Equal(t, []int{10, 200}, gate.Table[0])
	assert.Equal(t, []int{1, 1}, gate.Table[1])
	assert.Equal(t, []int{210, 2}, gate.RowSums)
}

func TestDecodeGate_ArityFromCountBytes(t *testing.T) {
	tests := []struct {
		inByte, outByte byte
		wantIn, wantOut int
	}{
		{0, 0, 1, 1},
		{3, 1, 4, 2},
		{4, 7, 1, 4},
		{255, 254, 4, 3},
	}
	for _, tt := range tests {
		g := make(Genome, 300)
		g[0], g[1] = StartCodonA, StartCodonB
		g[2], g[3] = tt.inByte, tt.outByte
		gate := DecodeGate(g, 0, testLayout, true)
		assert.Len(t, gate.Inputs, tt.wantIn)
		assert.Len(t, gate.Outputs, tt.wantOut)
		assert.Len(t, gate.Table, 1<<tt.wantIn)
		assert.Len(t, gate.Table[0], 1<<tt.wantOut)
	}
}

func TestDecodeGate_FieldLayout(t *testing.T) {
	// GIVEN a codon at 10 declaring four inputs and four outputs
	g := make(Genome, 400)
	g[10], g[11] = StartCodonA, StartCodonB
	g[12], g[13] = 3, 3
	// input slots, output slots, reserved bytes, then row 0 column 5 of the table
	copy(g[14:18], []byte{0, 1, 2, 3})
	copy(g[18:22], []byte{0, 1, 2, 3})
	copy(g[22:30], []byte{9, 9, 9, 9, 9, 9, 9, 9})
	g[30+5] = 99

	gate := DecodeGate(g, 10, testLayout, true)

	assert.Equal(t, []int{0, 1, 2, 3}, gate.Inputs)
	assert.Equal(t, []int{2, 3, 4, 5}, gate.Outputs)
	assert.Equal(t, MaxWeight, gate.Table[0][5])
}

func TestDecodeGate_WrapsAroundGenomeEnd(t *testing.T) {
	// GIVEN a codon straddling the end of the genome
	g := make(Genome, 30)
	g[29], g[0] = StartCodonA, StartCodonB
	g[1], g[2] = 0, 0
	g[3] = 5 // input slot
	g[7] = 5 // output slot

	// WHEN decoded from the wrapped position
	a := newTestAgent(g, true)
	a.GeneratePhenotype()

	// THEN the codon is found and read modulo length
	require.Len(t, a.Gates(), 1)
	assert.Equal(t, []int{5}, a.Gates()[0].Inputs)
	assert.Equal(t, []int{5%6 + 2}, a.Gates()[0].Outputs)
}

func TestDecodeGate_TinyGenomeIsDegenerateNotFatal(t *testing.T) {
	g := Genome{StartCodonA, StartCodonB, 3}
	var gate MarkovGate
	assert.NotPanics(t, func() { gate = DecodeGate(g, 0, testLayout, false) })
	assert.NotEmpty(t, gate.Inputs)
	assert.NotEmpty(t, gate.Outputs)
}

func TestDecodeGate_PanicsOnEmptyGenome(t *testing.T) {
	assert.Panics(t, func() { DecodeGate(Genome{}, 0, testLayout, true) })
}

func TestDecodeGate_IndexRangesOverRandomGenomes(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		a := newSeededAgent(seed, 2000, 10, seed%2 == 0)
		for _, gate := range a.Gates() {
			require.GreaterOrEqual(t, len(gate.Inputs), 1)
			require.LessOrEqual(t, len(gate.Inputs), MaxGateArity)
			require.GreaterOrEqual(t, len(gate.Outputs), 1)
			require.LessOrEqual(t, len(gate.Outputs), MaxGateArity)
			for _, in := range gate.Inputs {
				assert.False(t, testLayout.IsMotor(in), "motor %d used as input", in)
				assert.GreaterOrEqual(t, in, 0)
			}
			for _, out := range gate.Outputs {
				assert.False(t, testLayout.IsSensor(out), "sensor %d used as output", out)
				assert.Less(t, out, testLayout.Total())
			}
			for r, row := range gate.Table {
				sum, maxed := 0, 0
				for _, w := range row {
					sum += w
					if w == MaxWeight {
						maxed++
					}
				}
				assert.Equal(t, sum, gate.RowSums[r])
				assert.GreaterOrEqual(t, gate.RowSums[r], 1)
				if gate.Deterministic {
					assert.Equal(t, 1, maxed)
					assert.Equal(t, MaxWeight, sum)
				}
			}
		}
	}
}

func TestMarkovGate_RowIndex_MostSignificantFirst(t *testing.T) {
	gate := detGate([]int{0, 2, 3}, []int{4}, make([]int, 8))
	states := []byte{1, 0, 0, 1, 0, 0, 0, 0}
	// bits in input order: node0=1, node2=0, node3=1 -> 0b101
	assert.Equal(t, 5, gate.RowIndex(states))
}

func TestMarkovGate_Update_WritesColumnBitsLeastSignificantFirst(t *testing.T) {
	// GIVEN a gate that always selects column 0b10
	gate := detGate([]int{0}, []int{3, 6}, []int{2, 2})
	current := make([]byte, 8)
	next := make([]byte, 8)

	gate.Update(current, next, nil)

	// THEN output 0 gets bit 0 and output 1 gets bit 1
	assert.Equal(t, byte(0), next[3])
	assert.Equal(t, byte(1), next[6])
}

func TestMarkovGate_Column_ProbabilisticFrequenciesConverge(t *testing.T) {
	// GIVEN a probabilistic row with weights 10, 200, 1, 45
	gate := MarkovGate{
		Inputs:  []int{0},
		Outputs: []int{2, 3},
		Table:   [][]int{{10, 200, 1, 45}, {1, 1, 1, 1}},
		RowSums: []int{256, 4},
	}
	rng := newTestRNG(12)
	const draws = 100000
	counts := make([]int, 4)

	// WHEN sampled many times
	for i := 0; i < draws; i++ {
		counts[gate.Column(0, rng)]++
	}

	// THEN frequencies approach weight/rowSum
	for c, n := range counts {
		assert.InDelta(t, gate.Probability(0, c), float64(n)/draws, 0.01, "column %d", c)
	}
}

func TestMarkovGate_Column_FullRangeDraw(t *testing.T) {
	// A two-cell row of ones must pick each column about half the time;
	// drawing from [1, rowSum-1] would always pick column 0.
	gate := MarkovGate{Table: [][]int{{1, 1}}, RowSums: []int{2}}
	rng := newTestRNG(13)
	ones := 0
	for i := 0; i < 10000; i++ {
		ones += gate.Column(0, rng)
	}
	assert.InDelta(t, 0.5, float64(ones)/10000, 0.03)
}

func TestMarkovGate_Column_PanicsOnZeroRowSum(t *testing.T) {
	gate := MarkovGate{Table: [][]int{{0, 0}}, RowSums: []int{0}}
	assert.Panics(t, func() { gate.Column(0, newTestRNG(1)) })
}
