package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/animat-sim/animat-sim/sim"
	"github.com/animat-sim/animat-sim/sim/archive"
)

// loadGenome returns the genome selected by --genome or --archive-dir/--id,
// or nil when neither is set.
func loadGenome(path, dir, id string) (sim.Genome, error) {
	switch {
	case path != "" && id != "":
		return nil, fmt.Errorf("--genome and --id are mutually exclusive")
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading genome: %w", err)
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("genome file %s is empty", path)
		}
		return sim.Genome(data), nil
	case id != "":
		if dir == "" {
			return nil, fmt.Errorf("--id requires --archive-dir")
		}
		arc, err := archive.Open(archive.Config{Path: dir})
		if err != nil {
			return nil, err
		}
		defer arc.Close()
		data, err := arc.Get(id)
		if err != nil {
			return nil, err
		}
		return sim.Genome(data), nil
	}
	return nil, nil
}

// buildAgent creates agent 0 of exp: from an existing genome when one is
// selected, otherwise a fresh founder. The phenotype is decoded either way.
func buildAgent(exp sim.Experiment) *sim.Agent {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(exp.Seed))
	genome, err := loadGenome(genomePath, archiveDir, genomeID)
	if err != nil {
		logrus.Fatalf("Failed to load genome: %v", err)
	}
	if genome == nil {
		return exp.NewFounder(0, rng)
	}
	a := sim.NewAgent(genome, exp.AgentConfig(0), rng)
	if genomeID != "" {
		a.ID = genomeID
	}
	a.GeneratePhenotype()
	return a
}

// archiveGenome stores a's genome under a.ID in dir.
func archiveGenome(dir string, a *sim.Agent) error {
	arc, err := archive.Open(archive.Config{Path: dir, SyncWrites: true})
	if err != nil {
		return err
	}
	defer arc.Close()
	return arc.Put(a.ID, a.Genome())
}
