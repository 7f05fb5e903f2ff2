package sim

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Agent owns a genome, the gates decoded from it, and the node-state buffers
// they drive. An Agent is not safe for concurrent use: decoding, mutation
// and ticks on the same Agent must not overlap.
type Agent struct {
	ID     string // stable identity for archives and lineage
	Layout NodeLayout

	// States is the current node-state vector. The environment writes
	// sensor bits into States[:Layout.Sensors] before each tick.
	States []byte

	Generation int
	Correct    int
	Incorrect  int

	genome        Genome
	gates         []MarkovGate
	next          []byte
	deterministic bool
	mutationRNG   *rand.Rand
	gateRNG       *rand.Rand
	sweepRNG      *rand.Rand // probabilistic draws made by Transitions
}

// NewAgent creates an agent holding a copy of genome. Gates are not decoded
// until GeneratePhenotype is called. The ID is drawn from the agent's
// identity stream, so a fixed seed reproduces it. Panics if cfg.Layout is
// invalid.
func NewAgent(genome Genome, cfg AgentConfig, rng *PartitionedRNG) *Agent {
	if err := cfg.Layout.Validate(); err != nil {
		panic(fmt.Sprintf("NewAgent: invalid node layout: %v", err))
	}
	total := cfg.Layout.Total()
	return &Agent{
		ID:            uuid.Must(uuid.NewRandomFromReader(rng.ForSubsystem(SubsystemAgentIdentity(cfg.ID)))).String(),
		Layout:        cfg.Layout,
		States:        make([]byte, total),
		genome:        genome.Clone(),
		next:          make([]byte, total),
		deterministic: cfg.Deterministic,
		mutationRNG:   rng.ForSubsystem(SubsystemAgentMutation(cfg.ID)),
		gateRNG:       rng.ForSubsystem(SubsystemAgentGates(cfg.ID)),
		sweepRNG:      rng.ForSubsystem(SubsystemAgentTransitions(cfg.ID)),
	}
}

// Genome returns the agent's genome. Callers must not modify it.
func (a *Agent) Genome() Genome { return a.genome }

// SetGenome replaces the genome with a copy of g. The phenotype is stale
// until GeneratePhenotype is called again.
func (a *Agent) SetGenome(g Genome) { a.genome = g.Clone() }

// Gates returns the current phenotype.
func (a *Agent) Gates() []MarkovGate { return a.gates }

// Deterministic reports whether the agent's gates use argmax transitions.
func (a *Agent) Deterministic() bool { return a.deterministic }

// ResetState zeroes every node.
func (a *Agent) ResetState() {
	clear(a.States)
	clear(a.next)
}

// SetSensors copies bits into the sensor slots of the current state.
// Extra bits are ignored; missing ones leave their sensor untouched.
func (a *Agent) SetSensors(bits []byte) {
	n := min(len(bits), a.Layout.Sensors)
	for i := 0; i < n; i++ {
		a.States[i] = bits[i] & 1
	}
}

// Motors returns a copy of the motor slots of the current state.
func (a *Agent) Motors() []byte {
	total := a.Layout.Total()
	return append([]byte(nil), a.States[total-a.Layout.Motors:total]...)
}

// UpdateStates performs one synchronous tick: every gate reads the same
// snapshot, outputs are OR-combined, and the result becomes the new state.
// Sensor slots come out zero; the environment rewrites them before the next tick.
func (a *Agent) UpdateStates() {
	a.tick(a.gateRNG)
}

func (a *Agent) tick(rng *rand.Rand) {
	for i := range a.gates {
		a.gates[i].Update(a.States, a.next, rng)
	}
	copy(a.States, a.next)
	clear(a.next)
}

// GeneratePhenotype discards the current gates and decodes a fresh set from
// the genome, one gate per start codon, scanning circularly.
func (a *Agent) GeneratePhenotype() {
	a.gates = nil
	n := len(a.genome)
	if n == 0 {
		panic("GeneratePhenotype: empty genome")
	}
	for i := 0; i < n; i++ {
		if a.genome[i] == StartCodonA && a.genome[(i+1)%n] == StartCodonB {
			a.gates = append(a.gates, DecodeGate(a.genome, i, a.Layout, a.deterministic))
		}
	}
	if len(a.gates) == 0 {
		logrus.Warnf("agent %s: genome of length %d decoded to an empty phenotype", a.ID, n)
	}
	logrus.Debugf("agent %s: decoded %d gates from %d bytes", a.ID, len(a.gates), n)
}

// MutateGenome applies the mutation operators to the genome in place of the
// old one. The phenotype is not regenerated.
func (a *Agent) MutateGenome(cfg MutationConfig) MutationEvents {
	var ev MutationEvents
	a.genome, ev = a.genome.Mutate(a.mutationRNG, cfg)
	return ev
}

// InjectStartCodons randomizes the genome and plants n start codons in it.
func (a *Agent) InjectStartCodons(n int) {
	a.genome.InjectStartCodons(a.mutationRNG, n)
}

// RecordTrial tallies the outcome of one externally scored trial.
func (a *Agent) RecordTrial(correct bool) {
	if correct {
		a.Correct++
	} else {
		a.Incorrect++
	}
}

// Offspring returns a child agent with a copy of a's genome, one generation
// later, with fresh trial counters. The child draws from the RNG streams of
// cfg.ID.
func (a *Agent) Offspring(cfg AgentConfig, rng *PartitionedRNG) *Agent {
	child := NewAgent(a.genome, cfg, rng)
	child.Generation = a.Generation + 1
	return child
}
