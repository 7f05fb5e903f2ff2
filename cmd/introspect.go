package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// tpmCmd prints the full state-transition table of an agent
var tpmCmd = &cobra.Command{
	Use:   "tpm",
	Short: "Print the full state-transition table of an agent",
	Run: func(cmd *cobra.Command, args []string) {
		exp := resolveExperiment(cmd)
		a := buildAgent(exp)
		logrus.Infof("Enumerating %d states over %d gates", 1<<exp.Layout.Total(), len(a.Gates()))
		if err := writeTPM(stdout(), a.Transitions()); err != nil {
			logrus.Fatalf("Failed to write transition table: %v", err)
		}
	},
}

// edgesCmd prints the structural edge list of an agent
var edgesCmd = &cobra.Command{
	Use:   "edges",
	Short: "Print the gate connectivity of an agent as an edge list",
	Run: func(cmd *cobra.Command, args []string) {
		exp := resolveExperiment(cmd)
		a := buildAgent(exp)
		if err := writeEdges(stdout(), a.Edges()); err != nil {
			logrus.Fatalf("Failed to write edges: %v", err)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{tpmCmd, edgesCmd} {
		addExperimentFlags(c)
		addGenomeSourceFlags(c)
		rootCmd.AddCommand(c)
	}
}
