package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/animat-sim/animat-sim/sim"
)

var (
	// Shared experiment flags
	configPath    string  // YAML experiment file
	logLevel      string  // Log verbosity level
	seed          int64   // Master seed for the PartitionedRNG
	deterministic bool    // Argmax gates instead of weighted sampling
	sensors       int     // Number of sensor nodes
	hidden        int     // Number of hidden nodes
	motors        int     // Number of motor nodes
	genomeLength  int     // Founder genome length
	startCodons   int     // Start codons planted in the founder genome
	pointProb     float64 // Per-byte point mutation probability
	dupProb       float64 // Duplication probability per mutation call
	delProb       float64 // Deletion probability per mutation call
	minLength     int     // Minimum genome length for deletion
	maxLength     int     // Maximum genome length for duplication
	minDupDel     int     // Smallest duplicated/deleted window
	maxDupDel     int     // Largest duplicated/deleted window

	// Genome source flags
	genomePath string // raw genome file
	archiveDir string // BadgerDB genome archive directory
	genomeID   string // archive key
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "animat-sim",
	Short: "Markov-gate animat simulator",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveExperiment loads --config (if any) and applies explicitly passed
// flags on top. Flags the user did not pass never override the file.
func resolveExperiment(cmd *cobra.Command) sim.Experiment {
	cfg := &sim.ExperimentConfig{}
	if configPath != "" {
		loaded, err := sim.LoadExperimentConfig(configPath)
		if err != nil {
			logrus.Fatalf("Failed to load experiment config: %v", err)
		}
		cfg = loaded
	}
	applyFlagOverrides(cmd, cfg)
	exp, err := cfg.Resolve()
	if err != nil {
		logrus.Fatalf("Invalid experiment config: %v", err)
	}
	return exp
}

func applyFlagOverrides(cmd *cobra.Command, cfg *sim.ExperimentConfig) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = &seed
	}
	if flags.Changed("deterministic") {
		cfg.Deterministic = &deterministic
	}
	if flags.Changed("sensors") || flags.Changed("hidden") || flags.Changed("motors") {
		layout := sim.DefaultExperiment().Layout
		if cfg.Nodes != nil {
			layout = *cfg.Nodes
		}
		if flags.Changed("sensors") {
			layout.Sensors = sensors
		}
		if flags.Changed("hidden") {
			layout.Hidden = hidden
		}
		if flags.Changed("motors") {
			layout.Motors = motors
		}
		cfg.Nodes = &layout
	}
	overrideInt(cmd, "genome-length", &cfg.Genome.InitialLength, genomeLength)
	overrideInt(cmd, "start-codons", &cfg.Genome.StartCodons, startCodons)
	overrideInt(cmd, "min-genome-length", &cfg.Genome.MinLength, minLength)
	overrideInt(cmd, "max-genome-length", &cfg.Genome.MaxLength, maxLength)
	overrideInt(cmd, "min-dup-del-length", &cfg.Mutation.MinDupDelLength, minDupDel)
	overrideInt(cmd, "max-dup-del-length", &cfg.Mutation.MaxDupDelLength, maxDupDel)
	overrideFloat(cmd, "point-prob", &cfg.Mutation.PointProb, pointProb)
	overrideFloat(cmd, "dup-prob", &cfg.Mutation.DupProb, dupProb)
	overrideFloat(cmd, "del-prob", &cfg.Mutation.DelProb, delProb)
}

func overrideInt(cmd *cobra.Command, name string, dst **int, val int) {
	if cmd.Flags().Changed(name) {
		v := val
		*dst = &v
	}
}

func overrideFloat(cmd *cobra.Command, name string, dst **float64, val float64) {
	if cmd.Flags().Changed(name) {
		v := val
		*dst = &v
	}
}

// addExperimentFlags registers the shared experiment flags on cmd.
func addExperimentFlags(cmd *cobra.Command) {
	def := sim.DefaultExperiment()
	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "Path to YAML experiment config")
	f.Int64Var(&seed, "seed", def.Seed, "Master seed for all random streams")
	f.BoolVar(&deterministic, "deterministic", def.Deterministic, "Use argmax gates instead of weighted sampling")
	f.IntVar(&sensors, "sensors", def.Layout.Sensors, "Number of sensor nodes")
	f.IntVar(&hidden, "hidden", def.Layout.Hidden, "Number of hidden nodes")
	f.IntVar(&motors, "motors", def.Layout.Motors, "Number of motor nodes")
	f.IntVar(&genomeLength, "genome-length", def.InitialLength, "Founder genome length in bytes")
	f.IntVar(&startCodons, "start-codons", def.StartCodons, "Start codons planted in the founder genome")
	f.Float64Var(&pointProb, "point-prob", def.Mutation.PointProb, "Per-byte point mutation probability")
	f.Float64Var(&dupProb, "dup-prob", def.Mutation.DupProb, "Duplication probability per mutation round")
	f.Float64Var(&delProb, "del-prob", def.Mutation.DelProb, "Deletion probability per mutation round")
	f.IntVar(&minLength, "min-genome-length", def.Mutation.MinGenomeLength, "Deletion is skipped at or below this length")
	f.IntVar(&maxLength, "max-genome-length", def.Mutation.MaxGenomeLength, "Duplication is skipped at or above this length")
	f.IntVar(&minDupDel, "min-dup-del-length", def.Mutation.MinDupDelLength, "Smallest duplicated/deleted window")
	f.IntVar(&maxDupDel, "max-dup-del-length", def.Mutation.MaxDupDelLength, "Largest duplicated/deleted window")
}

// addGenomeSourceFlags registers the flags selecting an existing genome.
func addGenomeSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&genomePath, "genome", "", "Raw genome file (one byte per locus)")
	cmd.Flags().StringVar(&archiveDir, "archive-dir", "", "Genome archive directory")
	cmd.Flags().StringVar(&genomeID, "id", "", "Archive ID of the genome to load")
}

// init sets up persistent flags
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
