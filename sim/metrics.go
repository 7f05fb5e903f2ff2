// Tracks run-level statistics of a simulated agent: phenotype size and how
// often each non-sensor node fired.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
)

// Metrics aggregates statistics about one agent's run for final reporting.
type Metrics struct {
	AgentID      string `json:"agent_id"`
	Ticks        int    `json:"ticks"`
	GenomeLength int    `json:"genome_length"`
	Gates        int    `json:"gates"`
	Edges        int    `json:"edges"`
	Correct      int    `json:"correct"`
	Incorrect    int    `json:"incorrect"`

	// HiddenActivations[k] counts ticks on which hidden node k was 1.
	HiddenActivations []int `json:"hidden_activations"`
	// MotorActivations[k] counts ticks on which motor k was 1.
	MotorActivations []int `json:"motor_activations"`
}

// NewMetrics creates a Metrics snapshot of a's phenotype.
func NewMetrics(a *Agent) *Metrics {
	return &Metrics{
		AgentID:           a.ID,
		GenomeLength:      len(a.Genome()),
		Gates:             len(a.Gates()),
		Edges:             len(a.Edges()),
		HiddenActivations: make([]int, a.Layout.Hidden),
		MotorActivations:  make([]int, a.Layout.Motors),
	}
}

// Observe counts one tick of a's current state.
func (m *Metrics) Observe(a *Agent) {
	m.Ticks++
	l := a.Layout
	for k := 0; k < l.Hidden; k++ {
		m.HiddenActivations[k] += int(a.States[l.Sensors+k])
	}
	for k := 0; k < l.Motors; k++ {
		m.MotorActivations[k] += int(a.States[l.Sensors+l.Hidden+k])
	}
	m.Correct, m.Incorrect = a.Correct, a.Incorrect
}

// Print writes a header and the metrics as indented JSON to w.
func (m *Metrics) Print(w io.Writer) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metrics: %w", err)
	}
	if _, err := fmt.Fprintf(w, "=== Simulation Metrics ===\n%s\n", data); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}
