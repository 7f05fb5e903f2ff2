package trace

import (
	"testing"
)

func TestStateTrace_Record_AppendsCopy(t *testing.T) {
	// GIVEN a trace configured for states
	st := NewStateTrace(TraceLevelStates)
	states := []byte{1, 0, 1}

	// WHEN a record is added and the caller's buffer is reused
	st.Record(1, 0, states)
	states[0] = 0

	// THEN the trace holds the original values
	if len(st.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(st.Records))
	}
	if st.Records[0].States[0] != 1 {
		t.Error("record aliases caller's state buffer")
	}
	if st.Records[0].Tick != 1 {
		t.Errorf("expected tick 1, got %d", st.Records[0].Tick)
	}
}

func TestStateTrace_LevelNone_RecordsNothing(t *testing.T) {
	st := NewStateTrace(TraceLevelNone)
	st.Record(1, 0, []byte{1})
	if len(st.Records) != 0 {
		t.Errorf("expected no records at level none, got %d", len(st.Records))
	}
}

func TestStateTrace_NilIsSafe(t *testing.T) {
	var st *StateTrace
	st.Record(1, 0, []byte{1})
	if st.Enabled() {
		t.Error("nil trace reports enabled")
	}
}

func TestStateTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	st := NewStateTrace(TraceLevelStates)
	st.Record(1, 0, []byte{0})
	st.Record(2, 0, []byte{1})
	st.Record(3, 1, []byte{0})
	for i, rec := range st.Records {
		if rec.Tick != i+1 {
			t.Errorf("record %d has tick %d", i, rec.Tick)
		}
	}
	if st.Records[2].Trial != 1 {
		t.Errorf("expected trial 1, got %d", st.Records[2].Trial)
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"states", true},
		{"", true},
		{"decisions", false},
		{"STATES", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
		}
	}
}
