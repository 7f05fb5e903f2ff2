package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

const (
	// StartCodonA and StartCodonB form the two-byte marker that opens a gate.
	StartCodonA byte = 42
	StartCodonB byte = 213

	// codonSpan is the marker plus the random filler planted after it by
	// InjectStartCodons: enough to cover both count bytes and the 16-byte
	// header before the transition table.
	codonSpan = 20
)

// Genome is an agent's entire network encoding. It is never resized except
// by Duplicate and Delete.
type Genome []byte

// RandomGenome returns a genome of the given length with uniform random bytes.
func RandomGenome(rng *rand.Rand, length int) Genome {
	g := make(Genome, length)
	for i := range g {
		g[i] = byte(rng.Intn(256))
	}
	return g
}

// Clone returns an independent copy of g.
func (g Genome) Clone() Genome {
	return append(Genome(nil), g...)
}

// PointMutate replaces each byte, independently with probability prob, by a
// uniform random byte. The replacement may coincide with the old value.
func (g Genome) PointMutate(rng *rand.Rand, prob float64) int {
	mutated := 0
	for i := range g {
		if rng.Float64() < prob {
			g[i] = byte(rng.Intn(256))
			mutated++
		}
	}
	return mutated
}

// Duplicate copies a random window of width in [minWidth, maxWidth] and
// inserts the copy at a random position. Width is clamped to len(g)-1.
// Genomes shorter than two bytes are returned unchanged.
func (g Genome) Duplicate(rng *rand.Rand, minWidth, maxWidth int) Genome {
	width, start, ok := g.pickWindow(rng, minWidth, maxWidth)
	if !ok {
		return g
	}
	insert := rng.Intn(len(g) + 1)
	return g.insertWindow(start, width, insert)
}

// insertWindow returns g with a copy of g[start:start+width] placed at insert.
func (g Genome) insertWindow(start, width, insert int) Genome {
	window := append(Genome(nil), g[start:start+width]...)
	out := make(Genome, 0, len(g)+width)
	out = append(out, g[:insert]...)
	out = append(out, window...)
	return append(out, g[insert:]...)
}

// Delete removes a random window of width in [minWidth, maxWidth]. Width is
// clamped to len(g)-1 so at least one byte survives.
func (g Genome) Delete(rng *rand.Rand, minWidth, maxWidth int) Genome {
	width, start, ok := g.pickWindow(rng, minWidth, maxWidth)
	if !ok {
		return g
	}
	return append(g[:start:start], g[start+width:]...)
}

// pickWindow draws a window width uniformly from [minWidth, maxWidth],
// clamped to [1, len(g)-1], and a uniform start in [0, len(g)-width].
func (g Genome) pickWindow(rng *rand.Rand, minWidth, maxWidth int) (width, start int, ok bool) {
	if len(g) < 2 {
		return 0, 0, false
	}
	if minWidth < 1 {
		minWidth = 1
	}
	if maxWidth < minWidth {
		maxWidth = minWidth
	}
	width = minWidth + rng.Intn(maxWidth-minWidth+1)
	if width > len(g)-1 {
		width = len(g) - 1
	}
	start = rng.Intn(len(g) - width + 1)
	return width, start, true
}

// InjectStartCodons randomizes every byte of g and then plants n start
// codons, each followed by random filler. When the genome has room for n
// disjoint codon regions they are placed in distinct slots of codonSpan bytes
// and never overlap. Otherwise positions are uniform, writes wrap around the
// end of the genome and later codons may overwrite earlier ones.
func (g Genome) InjectStartCodons(rng *rand.Rand, n int) {
	if len(g) == 0 {
		panic("InjectStartCodons: empty genome")
	}
	if n < 0 {
		panic("InjectStartCodons: negative codon count")
	}
	for i := range g {
		g[i] = byte(rng.Intn(256))
	}
	slots := len(g) / codonSpan
	if n <= slots {
		offset := rng.Intn(len(g) - slots*codonSpan + 1)
		for _, slot := range rng.Perm(slots)[:n] {
			g.plantCodon(rng, slot*codonSpan+offset)
		}
		return
	}
	logrus.Warnf("genome length %d cannot hold %d disjoint start codon regions of %d bytes; codons may overlap",
		len(g), n, codonSpan)
	for i := 0; i < n; i++ {
		g.plantCodon(rng, rng.Intn(len(g)))
	}
}

// plantCodon writes a start codon at j followed by random filler, wrapping
// around the end of g.
func (g Genome) plantCodon(rng *rand.Rand, j int) {
	for k := 2; k < codonSpan; k++ {
		g[(j+k)%len(g)] = byte(rng.Intn(256))
	}
	// marker last, so filler wrapping around a short genome cannot clobber it
	g[j] = StartCodonA
	g[(j+1)%len(g)] = StartCodonB
}

// MutationEvents reports what a MutateGenome call did.
type MutationEvents struct {
	PointMutations int
	Duplicated     int // width of the duplicated window, 0 if none
	Deleted        int // width of the deleted window, 0 if none
}

// Mutate applies point mutation, then at most one duplication and at most
// one deletion, following cfg. It returns the (possibly reallocated) genome.
func (g Genome) Mutate(rng *rand.Rand, cfg MutationConfig) (Genome, MutationEvents) {
	var ev MutationEvents
	ev.PointMutations = g.PointMutate(rng, cfg.PointProb)

	if rng.Float64() < cfg.DupProb && len(g) < cfg.MaxGenomeLength {
		before := len(g)
		g = g.Duplicate(rng, cfg.MinDupDelLength, cfg.MaxDupDelLength)
		ev.Duplicated = len(g) - before
		if ev.Duplicated == 0 {
			logrus.Warnf("duplication skipped: genome length %d too short", before)
		}
	}
	if rng.Float64() < cfg.DelProb && len(g) > cfg.MinGenomeLength {
		before := len(g)
		g = g.Delete(rng, cfg.MinDupDelLength, cfg.MaxDupDelLength)
		ev.Deleted = before - len(g)
	}
	logrus.Debugf("mutated genome: %d point mutations, +%d dup, -%d del, length %d",
		ev.PointMutations, ev.Duplicated, ev.Deleted, len(g))
	return g, ev
}
