package trace

// TraceLevel controls the verbosity of state tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelStates captures the full node-state vector after every tick.
	TraceLevelStates TraceLevel = "states"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelStates: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// StateTrace collects per-tick state records for one agent.
type StateTrace struct {
	Level   TraceLevel
	Records []TickRecord
}

// NewStateTrace creates a StateTrace ready for recording.
func NewStateTrace(level TraceLevel) *StateTrace {
	return &StateTrace{
		Level:   level,
		Records: make([]TickRecord, 0),
	}
}

// Enabled reports whether Record stores anything.
func (st *StateTrace) Enabled() bool {
	return st != nil && st.Level == TraceLevelStates
}

// Record appends a copy of states. A no-op unless the level is TraceLevelStates.
func (st *StateTrace) Record(tick, trial int, states []byte) {
	if !st.Enabled() {
		return
	}
	st.Records = append(st.Records, TickRecord{
		Tick:   tick,
		Trial:  trial,
		States: append([]byte(nil), states...),
	})
}
