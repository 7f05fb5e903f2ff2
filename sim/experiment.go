package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExperimentConfig holds the run-wide configuration, loadable from a YAML file.
// Nil pointer fields mean "not set in YAML" and fall back to defaults in Resolve.
type ExperimentConfig struct {
	Seed          *int64           `yaml:"seed"`
	Deterministic *bool            `yaml:"deterministic"`
	Nodes         *NodeLayout      `yaml:"nodes"`
	Genome        GenomeSettings   `yaml:"genome"`
	Mutation      MutationSettings `yaml:"mutation"`
}

// GenomeSettings holds genome size bounds and founder construction.
type GenomeSettings struct {
	InitialLength *int `yaml:"initial_length"`
	MinLength     *int `yaml:"min_length"`
	MaxLength     *int `yaml:"max_length"`
	StartCodons   *int `yaml:"start_codons"`
}

// MutationSettings holds mutation rates and dup/del window bounds.
type MutationSettings struct {
	PointProb       *float64 `yaml:"point_prob"`
	DupProb         *float64 `yaml:"dup_prob"`
	DelProb         *float64 `yaml:"del_prob"`
	MinDupDelLength *int     `yaml:"min_dup_del_length"`
	MaxDupDelLength *int     `yaml:"max_dup_del_length"`
}

// Experiment is a fully resolved ExperimentConfig.
type Experiment struct {
	Seed          int64
	Deterministic bool
	Layout        NodeLayout
	InitialLength int
	StartCodons   int
	Mutation      MutationConfig
}

// DefaultExperiment returns the classic animat setup: two sensors, four
// hidden nodes, two motors and deterministic gates.
func DefaultExperiment() Experiment {
	return Experiment{
		Seed:          42,
		Deterministic: true,
		Layout:        NodeLayout{Sensors: 2, Hidden: 4, Motors: 2},
		InitialLength: 5000,
		StartCodons:   5,
		Mutation: MutationConfig{
			PointProb:       0.005,
			DupProb:         0.05,
			DelProb:         0.02,
			MinGenomeLength: 1000,
			MaxGenomeLength: 10000,
			MinDupDelLength: 15,
			MaxDupDelLength: 511,
		},
	}
}

// LoadExperimentConfig reads and parses a YAML experiment file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadExperimentConfig(path string) (*ExperimentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading experiment config: %w", err)
	}
	var cfg ExperimentConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing experiment config: %w", err)
	}
	return &cfg, nil
}

// Resolve overlays the set fields of c onto DefaultExperiment and validates the result.
func (c *ExperimentConfig) Resolve() (Experiment, error) {
	exp := DefaultExperiment()
	if c == nil {
		return exp, nil
	}
	setInt64(&exp.Seed, c.Seed)
	setBool(&exp.Deterministic, c.Deterministic)
	if c.Nodes != nil {
		exp.Layout = *c.Nodes
	}
	setInt(&exp.InitialLength, c.Genome.InitialLength)
	setInt(&exp.StartCodons, c.Genome.StartCodons)
	setInt(&exp.Mutation.MinGenomeLength, c.Genome.MinLength)
	setInt(&exp.Mutation.MaxGenomeLength, c.Genome.MaxLength)
	setFloat(&exp.Mutation.PointProb, c.Mutation.PointProb)
	setFloat(&exp.Mutation.DupProb, c.Mutation.DupProb)
	setFloat(&exp.Mutation.DelProb, c.Mutation.DelProb)
	setInt(&exp.Mutation.MinDupDelLength, c.Mutation.MinDupDelLength)
	setInt(&exp.Mutation.MaxDupDelLength, c.Mutation.MaxDupDelLength)
	if err := exp.Validate(); err != nil {
		return Experiment{}, err
	}
	return exp, nil
}

// Validate checks node layout, mutation bounds and founder construction.
func (e Experiment) Validate() error {
	if err := e.Layout.Validate(); err != nil {
		return fmt.Errorf("nodes: %w", err)
	}
	if err := e.Mutation.Validate(); err != nil {
		return fmt.Errorf("mutation: %w", err)
	}
	if e.InitialLength < e.Mutation.MinGenomeLength || e.InitialLength > e.Mutation.MaxGenomeLength {
		return fmt.Errorf("initial_length %d must lie within [min_length, max_length] = [%d, %d]",
			e.InitialLength, e.Mutation.MinGenomeLength, e.Mutation.MaxGenomeLength)
	}
	if e.StartCodons < 0 {
		return fmt.Errorf("start_codons must be non-negative, got %d", e.StartCodons)
	}
	return nil
}

// AgentConfig returns the AgentConfig for agent id under this experiment.
func (e Experiment) AgentConfig(id int) AgentConfig {
	return AgentConfig{Layout: e.Layout, Deterministic: e.Deterministic, ID: id}
}

// NewFounder builds agent id with a random genome of InitialLength, seeds
// it with StartCodons start codons when positive, and decodes its phenotype.
func (e Experiment) NewFounder(id int, rng *PartitionedRNG) *Agent {
	genome := RandomGenome(rng.ForSubsystem(SubsystemGenesis), e.InitialLength)
	a := NewAgent(genome, e.AgentConfig(id), rng)
	if e.StartCodons > 0 {
		a.InjectStartCodons(e.StartCodons)
	}
	a.GeneratePhenotype()
	return a
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setInt64(dst *int64, src *int64) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
