package trace

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// TraceSummary aggregates statistics from a StateTrace.
type TraceSummary struct {
	Ticks        int
	UniqueStates int
	EntropyBits  float64      // Shannon entropy of the visited-state distribution
	MostCommon   []StateCount // all visited states, most frequent first
}

// Summarize computes aggregate statistics from a StateTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *StateTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil || len(st.Records) == 0 {
		return summary
	}
	summary.Ticks = len(st.Records)
	summary.MostCommon = st.MostCommonStates(0, nil)
	summary.UniqueStates = len(summary.MostCommon)
	summary.EntropyBits = EntropyBits(summary.MostCommon)
	return summary
}

// MostCommonStates counts the distinct states visited, optionally projected
// onto the node indices in of, and returns them most frequent first. Ties
// are broken by lexicographic state order. n <= 0 or n larger than the
// number of distinct states returns all of them.
func (st *StateTrace) MostCommonStates(n int, of []int) []StateCount {
	counts := make(map[string]int)
	for _, rec := range st.Records {
		counts[string(project(rec.States, of))]++
	}
	out := make([]StateCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, StateCount{State: []byte(k), Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return string(out[i].State) < string(out[j].State)
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// EntropyBits returns the Shannon entropy, in bits, of the empirical
// distribution given by counts.
func EntropyBits(counts []StateCount) float64 {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	if total == 0 {
		return 0
	}
	p := make([]float64, len(counts))
	for i, c := range counts {
		p[i] = float64(c.Count) / float64(total)
	}
	return stat.Entropy(p) / math.Ln2
}

func project(states []byte, of []int) []byte {
	if len(of) == 0 {
		return states
	}
	out := make([]byte, len(of))
	for i, idx := range of {
		out[i] = states[idx]
	}
	return out
}
