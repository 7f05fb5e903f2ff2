package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible run.
// Two runs with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical genomes, gates and state histories.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemGenesis is the RNG subsystem for initial genome creation.
	// Uses master seed directly so a bare --seed reproduces the same founder.
	SubsystemGenesis = "genesis"

	// SubsystemEnvironment is the RNG subsystem for sensor input drivers.
	SubsystemEnvironment = "environment"
)

// SubsystemAgentMutation returns the subsystem name for agent N's genome operators.
func SubsystemAgentMutation(id int) string {
	return fmt.Sprintf("agent_%d/mutation", id)
}

// SubsystemAgentGates returns the subsystem name for agent N's probabilistic gate draws.
func SubsystemAgentGates(id int) string {
	return fmt.Sprintf("agent_%d/gates", id)
}

// SubsystemAgentTransitions returns the subsystem name for agent N's
// transition-table sweeps.
func SubsystemAgentTransitions(id int) string {
	return fmt.Sprintf("agent_%d/transitions", id)
}

// SubsystemAgentIdentity returns the subsystem name for agent N's ID draws.
func SubsystemAgentIdentity(id int) string {
	return fmt.Sprintf("agent_%d/identity", id)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - For SubsystemGenesis: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
// Hand each worker its own agents (and their streams) when evaluating a
// population in parallel.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if name == SubsystemGenesis {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
