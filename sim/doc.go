// Package sim decodes byte genomes into networks of Markov gates and
// simulates those networks tick by tick.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - genome.go: the Genome type and its mutation operators (point, duplication, deletion, start-codon injection)
//   - gate.go: decoding one MarkovGate from a start codon and evaluating it against a state snapshot
//   - agent.go: the Agent that owns a genome, its phenotype and the node-state buffers
//   - introspection.go: edge lists and full state-transition tables
//
// # Nodes
//
// Node indices are partitioned by NodeLayout: sensors first, then hidden
// nodes, then motors. Gates never read motors and never write sensors. The
// environment writes sensor bits into Agent.States before each tick; a tick
// leaves sensor slots zero.
//
// # Randomness
//
// All randomness flows through PartitionedRNG. Each agent draws its mutation
// and gate-sampling randomness from its own subsystems, so agents evaluated
// by different workers never share generator state.
//
// Sub-packages:
//   - sim/trace/: per-tick state histories and their summaries
//   - sim/archive/: raw genome persistence in BadgerDB
package sim
