package sim

import "fmt"

// MaxNodes bounds the total node count. Global states are packed into an
// int when enumerating transitions, and 2^MaxNodes rows is already far past
// anything worth enumerating.
const MaxNodes = 30

// NodeLayout groups the node partition sizes shared by every agent in a run.
type NodeLayout struct {
	Sensors int `yaml:"sensors"` // environment-written nodes, indices [0, Sensors)
	Hidden  int `yaml:"hidden"`  // internal nodes
	Motors  int `yaml:"motors"`  // gate-written nodes at the top of the index range
}

// Total returns the number of nodes in the network.
func (l NodeLayout) Total() int {
	return l.Sensors + l.Hidden + l.Motors
}

// InputRange is the number of node indices a gate may read (sensors and hidden).
func (l NodeLayout) InputRange() int {
	return l.Total() - l.Motors
}

// OutputRange is the number of node indices a gate may write (hidden and motors).
func (l NodeLayout) OutputRange() int {
	return l.Total() - l.Sensors
}

// IsSensor reports whether node i is a sensor.
func (l NodeLayout) IsSensor(i int) bool { return i >= 0 && i < l.Sensors }

// IsMotor reports whether node i is a motor.
func (l NodeLayout) IsMotor(i int) bool { return i >= l.Total()-l.Motors && i < l.Total() }

// Validate checks the partition can host at least one gate.
func (l NodeLayout) Validate() error {
	if l.Sensors < 0 || l.Hidden < 0 || l.Motors < 0 {
		return fmt.Errorf("node counts must be non-negative, got sensors=%d hidden=%d motors=%d", l.Sensors, l.Hidden, l.Motors)
	}
	if l.InputRange() < 1 {
		return fmt.Errorf("no sensor or hidden nodes: gates would have no possible inputs")
	}
	if l.OutputRange() < 1 {
		return fmt.Errorf("no hidden or motor nodes: gates would have no possible outputs")
	}
	if l.Total() > MaxNodes {
		return fmt.Errorf("total node count %d exceeds maximum %d", l.Total(), MaxNodes)
	}
	return nil
}

// MutationConfig groups the per-call genome mutation parameters.
type MutationConfig struct {
	PointProb       float64 // per-byte replacement probability
	DupProb         float64 // probability of one duplication event
	DelProb         float64 // probability of one deletion event
	MinGenomeLength int     // deletion is skipped at or below this length
	MaxGenomeLength int     // duplication is skipped at or above this length
	MinDupDelLength int     // smallest duplicated/deleted window
	MaxDupDelLength int     // largest duplicated/deleted window
}

// Validate checks probabilities and length bounds.
func (c MutationConfig) Validate() error {
	probs := []struct {
		name string
		val  float64
	}{{"point_prob", c.PointProb}, {"dup_prob", c.DupProb}, {"del_prob", c.DelProb}}
	for _, p := range probs {
		if p.val < 0 || p.val > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %f", p.name, p.val)
		}
	}
	if c.MinGenomeLength < 1 {
		return fmt.Errorf("min genome length must be positive, got %d", c.MinGenomeLength)
	}
	if c.MaxGenomeLength < c.MinGenomeLength {
		return fmt.Errorf("max genome length %d is below min genome length %d", c.MaxGenomeLength, c.MinGenomeLength)
	}
	if c.MinDupDelLength < 1 || c.MaxDupDelLength < c.MinDupDelLength {
		return fmt.Errorf("dup/del window bounds must satisfy 1 <= min <= max, got [%d, %d]", c.MinDupDelLength, c.MaxDupDelLength)
	}
	return nil
}

// AgentConfig groups everything an Agent needs besides its genome.
type AgentConfig struct {
	Layout        NodeLayout
	Deterministic bool // true = argmax gates, false = weighted sampling
	ID            int  // index used to derive the agent's RNG subsystems
}
