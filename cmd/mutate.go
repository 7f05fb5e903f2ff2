package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/animat-sim/animat-sim/sim"
)

var (
	mutateOut    string // output genome file
	mutateRounds int    // mutation rounds to apply
)

// mutateCmd applies mutation rounds to a genome and writes the result
var mutateCmd = &cobra.Command{
	Use:   "mutate",
	Short: "Apply mutation rounds to a genome",
	Long:  "Load a genome (raw file, archive entry, or a fresh founder), apply mutation rounds, and write the raw result to --out or the archive.",
	Run: func(cmd *cobra.Command, args []string) {
		if mutateRounds < 1 {
			logrus.Fatalf("--rounds must be positive, got %d", mutateRounds)
		}
		if mutateOut == "" && archiveDir == "" {
			logrus.Fatalf("one of --out or --archive-dir is required")
		}
		exp := resolveExperiment(cmd)
		parent := buildAgent(exp)
		a := mutateOffspring(parent, exp, mutateRounds)
		logrus.Infof("Mutated %s -> %s: %dB -> %dB, %d gates",
			parent.ID, a.ID, len(parent.Genome()), len(a.Genome()), len(a.Gates()))

		if mutateOut != "" {
			if err := os.WriteFile(mutateOut, a.Genome(), 0644); err != nil {
				logrus.Fatalf("Failed to write genome: %v", err)
			}
		}
		if archiveDir != "" {
			if err := archiveGenome(archiveDir, a); err != nil {
				logrus.Fatalf("Failed to archive genome: %v", err)
			}
			fmt.Println(a.ID)
		}
	},
}

// mutateOffspring returns a child of parent after rounds mutation rounds,
// counted as rounds generations, with its phenotype decoded. The child is
// agent 1 of the run so its streams are independent of the parent's.
func mutateOffspring(parent *sim.Agent, exp sim.Experiment, rounds int) *sim.Agent {
	a := parent.Offspring(exp.AgentConfig(1), sim.NewPartitionedRNG(sim.NewSimulationKey(exp.Seed)))
	for i := 0; i < rounds; i++ {
		ev := a.MutateGenome(exp.Mutation)
		logrus.Debugf("round %d: %+v", i, ev)
	}
	a.Generation += rounds - 1
	a.GeneratePhenotype()
	return a
}

func init() {
	addExperimentFlags(mutateCmd)
	addGenomeSourceFlags(mutateCmd)
	mutateCmd.Flags().StringVar(&mutateOut, "out", "", "Write the mutated raw genome to this file")
	mutateCmd.Flags().IntVar(&mutateRounds, "rounds", 1, "Number of mutation rounds")

	rootCmd.AddCommand(mutateCmd)
}
