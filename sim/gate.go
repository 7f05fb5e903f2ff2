package sim

import (
	"fmt"
	"math/rand"
)

const (
	// MaxGateArity is the largest number of inputs or outputs a gate can have.
	MaxGateArity = 4

	// MaxWeight is the weight of the selected cell in a deterministic row.
	MaxWeight = 255

	// gateHeaderSpan is the distance from the first input slot to the first
	// transition table byte: four input slots, four output slots and eight
	// reserved bytes.
	gateHeaderSpan = 16

	// outputSlotOffset is the distance from the first input slot to the first output slot.
	outputSlotOffset = MaxGateArity
)

// MarkovGate maps the bits of up to four input nodes to the bits of up to
// four output nodes through a weighted transition table. A gate is immutable
// once decoded.
type MarkovGate struct {
	Inputs        []int   // node indices read, most significant bit first
	Outputs       []int   // node indices written; bit k of the chosen column goes to Outputs[k]
	Table         [][]int // 2^len(Inputs) rows x 2^len(Outputs) columns
	RowSums       []int
	Deterministic bool
}

// DecodeGate builds the gate whose start codon sits at position start of
// genome. Every read is taken modulo the genome length, so short genomes
// decode into degenerate but well-formed gates.
func DecodeGate(genome Genome, start int, layout NodeLayout, deterministic bool) MarkovGate {
	n := len(genome)
	if n == 0 {
		panic("DecodeGate: empty genome")
	}
	at := func(i int) int { return int(genome[((i%n)+n)%n]) }

	scan := start + 2
	numInputs := 1 + at(scan)%MaxGateArity
	numOutputs := 1 + at(scan+1)%MaxGateArity
	scan += 2

	g := MarkovGate{
		Inputs:        make([]int, numInputs),
		Outputs:       make([]int, numOutputs),
		Deterministic: deterministic,
	}
	for i := range g.Inputs {
		g.Inputs[i] = at(scan+i) % layout.InputRange()
	}
	for i := range g.Outputs {
		g.Outputs[i] = at(scan+outputSlotOffset+i)%layout.OutputRange() + layout.Sensors
	}

	tableStart := scan + gateHeaderSpan
	rows := 1 << numInputs
	cols := 1 << numOutputs
	g.Table = make([][]int, rows)
	g.RowSums = make([]int, rows)
	for r := 0; r < rows; r++ {
		row := make([]int, cols)
		for c := range row {
			row[c] = at(tableStart + r*cols + c)
		}
		if deterministic {
			best := argmax(row)
			for c := range row {
				row[c] = 0
			}
			row[best] = MaxWeight
			g.RowSums[r] = MaxWeight
		} else {
			sum := 0
			for c := range row {
				if row[c] == 0 {
					row[c] = 1
				}
				sum += row[c]
			}
			g.RowSums[r] = sum
		}
		g.Table[r] = row
	}
	return g
}

// argmax returns the index of the first maximum in row.
func argmax(row []int) int {
	best := 0
	for c := 1; c < len(row); c++ {
		if row[c] > row[best] {
			best = c
		}
	}
	return best
}

// RowIndex packs the gate's input bits from states, most significant first.
func (g *MarkovGate) RowIndex(states []byte) int {
	row := 0
	for _, in := range g.Inputs {
		row = row<<1 | int(states[in]&1)
	}
	return row
}

// Column chooses the transition table column for row. rng is only consulted
// by probabilistic gates and may be nil for deterministic ones.
func (g *MarkovGate) Column(row int, rng *rand.Rand) int {
	weights := g.Table[row]
	if g.Deterministic {
		return argmax(weights)
	}
	sum := g.RowSums[row]
	if sum <= 0 {
		panic(fmt.Sprintf("MarkovGate.Column: row %d has non-positive weight sum %d", row, sum))
	}
	r := 1 + rng.Intn(sum)
	col := 0
	for r > weights[col] {
		r -= weights[col]
		col++
	}
	return col
}

// Update evaluates the gate against current and ORs its output bits into
// next. next must not alias current.
func (g *MarkovGate) Update(current, next []byte, rng *rand.Rand) {
	col := g.Column(g.RowIndex(current), rng)
	for k, out := range g.Outputs {
		next[out] |= byte((col >> k) & 1)
	}
}

// Probability returns the chance that row selects col.
func (g *MarkovGate) Probability(row, col int) float64 {
	return float64(g.Table[row][col]) / float64(g.RowSums[row])
}
