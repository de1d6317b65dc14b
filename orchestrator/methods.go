package orchestrator

import (
	"math"

	"github.com/sarchlab/dcsmapper/anneal"
	"github.com/sarchlab/dcsmapper/heuristics"
	"github.com/sarchlab/dcsmapper/model"
)

// saConfig builds the anneal.Config common to every SA-based method: the
// objective, the reference objective and acceptor scale derived from the
// pre-optimization objective, and the -1-sentinel resolution of
// MaxRejects/ScheduleMax to ntasks*(npes-1) (a zero value in
// cfg.Anneal means "resolve it", mirroring the original's -1 sentinel).
// When autotempVersion is positive, T0/Tf are overwritten by Autotemp.
func saConfig(m *model.Mapping, cfg *Config, initial float64, autotempVersion int) anneal.Config {
	ac := cfg.Anneal
	ac.Objective = cfg.Objective
	ac.RefE = initial
	ac.AcceptorParam1 = initial / 2.0
	ac.OnStep = publishProgress(cfg.Progress, m.Result.RunID)

	if autotempVersion > 0 {
		ac.T0, ac.Tf = anneal.Autotemp(m)
	}
	if ac.MaxRejects <= 0 {
		ac.MaxRejects = m.NTasks() * (m.Arch.NPEs() - 1)
	}
	if ac.ScheduleMax <= 0 {
		ac.ScheduleMax = m.NTasks() * (m.Arch.NPEs() - 1)
	}
	return ac
}

// runSA anneals m once. autotempVersion 0 means no autotemp (T0/Tf come
// from cfg.Anneal as configured); 1 anneals once at the autotemp-derived
// T0; 2 and 3 run a second pass after the first, starting from
// sqrt(T0*Tf) (version 2) or the same T0 again (version 3) — the
// "50%/100% more iterations" autotemp variants.
func runSA(m *model.Mapping, cfg *Config, initial float64, autotempVersion int) float64 {
	ac := saConfig(m, cfg, initial, autotempVersion)
	best := anneal.Run(m, ac)

	switch autotempVersion {
	case 0, 1:
		return best
	case 2:
		ac.T0 = math.Sqrt(ac.T0 * ac.Tf)
	case 3:
		// same starting temperature again, continuing from the mapping
		// the first pass already reached
	}
	return anneal.Run(m, ac)
}

// runSAWithLevels always derives T0/Tf via autotemp and runs the
// two-pass level-mode search; level.go resolves MaxRejects/ScheduleMax
// for each of its own passes internally.
func runSAWithLevels(m *model.Mapping, cfg *Config, initial float64) float64 {
	ac := cfg.Anneal
	ac.Objective = cfg.Objective
	ac.RefE = initial
	ac.AcceptorParam1 = initial / 2.0
	ac.T0, ac.Tf = anneal.Autotemp(m)
	ac.LevelOptimization = true
	ac.OnStep = publishProgress(cfg.Progress, m.Result.RunID)
	return anneal.Run(m, ac)
}

func runGroupMigration(m *model.Mapping, cfg *Config, randomize bool) float64 {
	gcfg := cfg.GroupMigration
	gcfg.Objective = cfg.Objective
	gcfg.Randomize = randomize
	return heuristics.GroupMigration(m, gcfg)
}

func runGroupMigration2(m *model.Mapping, cfg *Config) float64 {
	g2cfg := cfg.GroupMigration2
	g2cfg.Objective = cfg.Objective
	return heuristics.GroupMigration2(m, g2cfg)
}

// runFastHybridGMSA anneals once, then runs one group-migration pass
// starting from the annealed mapping.
func runFastHybridGMSA(m *model.Mapping, cfg *Config, initial float64, autotempVersion int) float64 {
	runSA(m, cfg, initial, autotempVersion)
	return runGroupMigration(m, cfg, false)
}

// runIteratedSA repeatedly anneals at a halving starting temperature
// (1.0, 0.5, 0.25, ...) down to Tf, optionally interleaving a
// group-migration pass after every annealing stage (useGM, the "slow"
// hybrid variant). When autotempVersion is set, Tf is taken from
// Autotemp's derivation; the halving schedule's own starting point of
// 1.0 is unaffected, matching the original's iterated-SA driver which
// never consults autotemp's T0.
func runIteratedSA(m *model.Mapping, cfg *Config, initial float64, useGM bool, autotempVersion int) float64 {
	ac := cfg.Anneal
	ac.Objective = cfg.Objective
	ac.RefE = initial
	ac.AcceptorParam1 = initial / 2.0
	if autotempVersion > 0 {
		_, ac.Tf = anneal.Autotemp(m)
	}
	if ac.MaxRejects <= 0 {
		ac.MaxRejects = m.NTasks() * (m.Arch.NPEs() - 1)
	}
	if ac.ScheduleMax <= 0 {
		ac.ScheduleMax = m.NTasks() * (m.Arch.NPEs() - 1)
	}
	ac.OnStep = publishProgress(cfg.Progress, m.Result.RunID)

	gcfg := cfg.GroupMigration
	gcfg.Objective = cfg.Objective
	gcfg.Randomize = false

	var cost float64
	for T := 1.0; T >= ac.Tf; T /= 2.0 {
		ac.T0 = T
		cost = anneal.Run(m, ac)
		if useGM {
			cost = heuristics.GroupMigration(m, gcfg)
		}
	}
	return cost
}

// runOSM derives the subset size from the configured
// multiplier/exponents only when the configuration left it unset
// (zero), matching ae_osm_init's "if (p->subsetsize == 0)" — an
// explicit subset_size from the input file is otherwise respected
// as-is, only clamped by OptimalSubset to the number of electable tasks.
func runOSM(m *model.Mapping, cfg *Config) float64 {
	ocfg := cfg.OptimalSubset
	ocfg.Objective = cfg.Objective
	if ocfg.SubsetSize == 0 {
		ocfg.SubsetSize = heuristics.DeriveSubsetSize(m.NTasks(), m.Arch.NPEs(), ocfg.Multiplier, ocfg.TaskExponent, ocfg.PEExponent)
	}
	return heuristics.OptimalSubset(m, ocfg)
}

// runOSMSA runs optimal-subset mapping, then anneals the result with
// autotemp always on.
func runOSMSA(m *model.Mapping, cfg *Config, initial float64) float64 {
	runOSM(m, cfg)
	return runSA(m, cfg, initial, 1)
}

func runRandomMapping(m *model.Mapping, cfg *Config) float64 {
	rcfg := cfg.Random
	rcfg.Objective = cfg.Objective
	return heuristics.Random(m, rcfg)
}

// runGeneticAlgorithm discards the Gini-coefficient diagnostic Genetic
// also returns; callers that want it should call heuristics.Genetic
// directly instead of going through the method table.
func runGeneticAlgorithm(m *model.Mapping, cfg *Config) float64 {
	gcfg := cfg.Genetic
	gcfg.Objective = cfg.Objective
	cost, _ := heuristics.Genetic(m, gcfg)
	return cost
}

func runBruteForce(m *model.Mapping, cfg *Config) float64 {
	bcfg := cfg.BruteForce
	bcfg.Objective = cfg.Objective
	bcfg.Flags = heuristics.OptMapping
	return heuristics.BruteForce(m, bcfg)
}

func runBruteForceWithSchedule(m *model.Mapping, cfg *Config) float64 {
	bcfg := cfg.BruteForce
	bcfg.Objective = cfg.Objective
	bcfg.Flags = heuristics.OptMapping | heuristics.OptScheduling
	return heuristics.BruteForce(m, bcfg)
}

// runBruteForceMapSchedule brute-forces the mapping alone first, then
// the schedule alone over the resulting mapping — two sequential
// exhaustive passes, not one interleaved search.
func runBruteForceMapSchedule(m *model.Mapping, cfg *Config) float64 {
	bcfg := cfg.BruteForce
	bcfg.Objective = cfg.Objective

	bcfg.Flags = heuristics.OptMapping
	heuristics.BruteForce(m, bcfg)

	bcfg.Flags = heuristics.OptScheduling
	return heuristics.BruteForce(m, bcfg)
}

func runNeighborhoodTest(m *model.Mapping, cfg *Config) float64 {
	ncfg := cfg.NeighborhoodTest
	ncfg.Objective = cfg.Objective
	return heuristics.NeighborhoodTest(m, ncfg)
}
