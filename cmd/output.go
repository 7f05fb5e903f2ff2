package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/animat-sim/animat-sim/sim/trace"
)

func printTraceSummary(s *trace.TraceSummary, top []trace.StateCount) {
	fmt.Println("=== State Trace ===")
	fmt.Printf("Ticks          : %d\n", s.Ticks)
	fmt.Printf("Unique states  : %d\n", s.UniqueStates)
	fmt.Printf("Entropy (bits) : %.4f\n", s.EntropyBits)
	for _, sc := range top {
		fmt.Printf("  %s  x%d\n", bitString(sc.State), sc.Count)
	}
}

func bitString(states []byte) string {
	var b strings.Builder
	for _, s := range states {
		b.WriteByte('0' + s)
	}
	return b.String()
}

// writeTPM writes one line per global state: the state index followed by
// the successor's node bits, node 0 first.
func writeTPM(w io.Writer, tpm [][]bool) error {
	for i, row := range tpm {
		var b strings.Builder
		for _, bit := range row {
			if bit {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		if _, err := fmt.Fprintf(w, "%d %s\n", i, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// writeEdges writes one "from to" pair per line.
func writeEdges(w io.Writer, edges [][2]int) error {
	for _, e := range edges {
		if _, err := fmt.Fprintf(w, "%d %d\n", e[0], e[1]); err != nil {
			return err
		}
	}
	return nil
}

func stdout() io.Writer { return os.Stdout }
