package cmd

import (
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/animat-sim/animat-sim/sim"
	"github.com/animat-sim/animat-sim/sim/trace"
)

var (
	ticks       int    // Total ticks to simulate
	trialLength int    // Ticks per trial; the agent is reset between trials (0 = one trial)
	traceLevel  string // State trace level
	topStates   int    // Most common states to report
	saveArchive bool   // Store the genome in --archive-dir after the run
)

// runCmd simulates one agent driven by random sensor input
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate an agent with random sensor input",
	Run: func(cmd *cobra.Command, args []string) {
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level %q; valid: none, states", traceLevel)
		}
		if ticks < 0 || trialLength < 0 {
			logrus.Fatalf("--ticks and --trial-length must be non-negative")
		}
		exp := resolveExperiment(cmd)
		a := buildAgent(exp)

		logrus.Infof("Starting run: agent=%s genome=%dB gates=%d ticks=%d deterministic=%v",
			a.ID, len(a.Genome()), len(a.Gates()), ticks, exp.Deterministic)
		startTime := time.Now()

		env := sim.NewPartitionedRNG(sim.NewSimulationKey(exp.Seed)).ForSubsystem(sim.SubsystemEnvironment)
		st := trace.NewStateTrace(trace.TraceLevel(traceLevel))
		metrics := simulate(a, env, ticks, trialLength, st)

		if err := metrics.Print(os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
		if st.Enabled() {
			printTraceSummary(trace.Summarize(st), st.MostCommonStates(topStates, nil))
		}
		if saveArchive {
			if archiveDir == "" {
				logrus.Fatalf("--save requires --archive-dir")
			}
			if err := archiveGenome(archiveDir, a); err != nil {
				logrus.Fatalf("Failed to archive genome: %v", err)
			}
			logrus.Infof("Archived genome %s", a.ID)
		}
		logrus.Infof("Run complete in %v.", time.Since(startTime))
	},
}

// simulate ticks a with random sensor bits drawn from env. When trialLength
// is positive the agent is reset every trialLength ticks and the trial
// number in st advances.
func simulate(a *sim.Agent, env *rand.Rand, ticks, trialLength int, st *trace.StateTrace) *sim.Metrics {
	metrics := sim.NewMetrics(a)
	sensorBits := make([]byte, a.Layout.Sensors)

	trial := 0
	for tick := 0; tick < ticks; tick++ {
		if trialLength > 0 && tick > 0 && tick%trialLength == 0 {
			a.ResetState()
			trial++
		}
		for i := range sensorBits {
			sensorBits[i] = byte(env.Intn(2))
		}
		a.SetSensors(sensorBits)
		st.Record(tick, trial, a.States)
		a.UpdateStates()
		metrics.Observe(a)
	}
	return metrics
}

func init() {
	addExperimentFlags(runCmd)
	addGenomeSourceFlags(runCmd)
	runCmd.Flags().IntVar(&ticks, "ticks", 1000, "Total ticks to simulate")
	runCmd.Flags().IntVar(&trialLength, "trial-length", 0, "Ticks per trial; state is reset between trials (0 = single trial)")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "State trace level (none, states)")
	runCmd.Flags().IntVar(&topStates, "top-states", 5, "Most common visited states to print when tracing")
	runCmd.Flags().BoolVar(&saveArchive, "save", false, "Store the genome in --archive-dir after the run")

	rootCmd.AddCommand(runCmd)
}
