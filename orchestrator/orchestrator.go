// Package orchestrator drives one optimization run: it initializes the
// mapping's result bookkeeping, computes the starting objective,
// optionally warms the mapping with fast pre-mapping, dispatches to the
// configured method, and reports the final objective.
package orchestrator

import (
	"github.com/sarchlab/dcsmapper/anneal"
	"github.com/sarchlab/dcsmapper/heuristics"
	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/objective"
	"github.com/sarchlab/dcsmapper/taskerr"
)

// Method names one of the fixed optimization methods Run can dispatch
// to. Unknown names are a configuration error.
type Method string

// The full set of methods the original system exposed, preserved under
// their original names so input files and CLI flags naming a method
// keep working unchanged.
const (
	MethodOptimalSubsetMapping            Method = "optimal_subset_mapping"
	MethodRandomMapping                   Method = "random_mapping"
	MethodGroupMigration                  Method = "group_migration"
	MethodSimulatedAnnealing              Method = "simulated_annealing"
	MethodSimulatedAnnealingAutotemp      Method = "simulated_annealing_autotemp"
	MethodFastHybridGMSA                  Method = "fast_hybrid_gm_sa"
	MethodFastHybridGMSAAutotemp          Method = "fast_hybrid_gm_sa_autotemp"
	MethodSlowHybridGMSA                  Method = "slow_hybrid_gm_sa"
	MethodSlowHybridGMSAAutotemp          Method = "slow_hybrid_gm_sa_autotemp"
	MethodIteratedSimulatedAnnealing      Method = "iterated_simulated_annealing"
	MethodIteratedSimulatedAnnealingAuto  Method = "iterated_simulated_annealing_autotemp"
	MethodGroupMigration2                 Method = "group_migration_2"
	MethodGroupMigrationRandom            Method = "group_migration_random"
	MethodGeneticAlgorithm                Method = "genetic_algorithm"
	MethodSimulatedAnnealingAutotemp2     Method = "simulated_annealing_autotemp2"
	MethodSimulatedAnnealingAutotemp3     Method = "simulated_annealing_autotemp3"
	MethodBruteForce                      Method = "brute_force"
	MethodOSMSA                           Method = "osm_sa"
	MethodSimulatedAnnealingLevels        Method = "simulated_annealing_levels"
	MethodNeighborhoodTest                Method = "neighborhood_test"
	MethodBruteForceWithSchedule          Method = "brute_force_with_schedule"
	MethodBruteForceMapSchedule           Method = "brute_force_map_schedule"
)

// MethodNames lists every known method, in registration order; the
// input parser uses it to recognize method names.
var MethodNames = []Method{
	MethodOptimalSubsetMapping,
	MethodRandomMapping,
	MethodGroupMigration,
	MethodSimulatedAnnealing,
	MethodSimulatedAnnealingAutotemp,
	MethodFastHybridGMSA,
	MethodFastHybridGMSAAutotemp,
	MethodSlowHybridGMSA,
	MethodSlowHybridGMSAAutotemp,
	MethodIteratedSimulatedAnnealing,
	MethodIteratedSimulatedAnnealingAuto,
	MethodGroupMigration2,
	MethodGroupMigrationRandom,
	MethodGeneticAlgorithm,
	MethodSimulatedAnnealingAutotemp2,
	MethodSimulatedAnnealingAutotemp3,
	MethodBruteForce,
	MethodOSMSA,
	MethodSimulatedAnnealingLevels,
	MethodNeighborhoodTest,
	MethodBruteForceWithSchedule,
	MethodBruteForceMapSchedule,
}

// Config parameterizes one call to Run. Objective, Method and
// FastPremapping are always consulted; only the sub-config matching
// Method is read by the dispatched method.
type Config struct {
	Objective      objective.Config
	Method         Method
	FastPremapping bool

	Anneal            anneal.Config
	GroupMigration    heuristics.GroupMigrationConfig
	GroupMigration2   heuristics.GroupMigration2Config
	Genetic           heuristics.GeneticConfig
	OptimalSubset     heuristics.OptimalSubsetConfig
	Random            heuristics.RandomConfig
	BruteForce        heuristics.BruteForceConfig
	NeighborhoodTest  heuristics.NeighborhoodTestConfig
	FastPremappingCfg heuristics.FastPremappingConfig

	// Progress, if non-nil, receives a Progress snapshot at every
	// simulated-annealing temperature transition. Sends never block: a
	// full or absent channel just drops the sample. Methods outside the
	// SA family report no progress beyond the channel existing.
	Progress chan<- Progress
}

// Run drives one complete optimization: it prepares m's derived
// application tables, evaluates the starting objective, optionally
// warms the mapping via fast pre-mapping, dispatches to cfg.Method, and
// returns the final objective after re-evaluating the resulting
// mapping. m is left set to the best mapping the method found.
func Run(cfg Config, m *model.Mapping) float64 {
	if app, ok := m.App.(*model.STGApp); ok {
		app.Prepare()
	}

	initial := objective.Evaluate(m, cfg.Objective)

	if cfg.FastPremapping {
		fcfg := cfg.FastPremappingCfg
		fcfg.Objective = cfg.Objective
		heuristics.FastPremapping(m, fcfg)
	}

	dispatch(m, &cfg, initial)

	return objective.Evaluate(m, cfg.Objective)
}

// dispatch runs the configured method, mutating m into the mapping it
// found. The returned cost is the method's own bookkeeping and is not
// authoritative — Run always re-evaluates m afterward, exactly as every
// composite method here already does internally between stages.
func dispatch(m *model.Mapping, cfg *Config, initial float64) float64 {
	switch cfg.Method {
	case MethodOptimalSubsetMapping:
		return runOSM(m, cfg)
	case MethodRandomMapping:
		return runRandomMapping(m, cfg)
	case MethodGroupMigration:
		return runGroupMigration(m, cfg, false)
	case MethodGroupMigrationRandom:
		return runGroupMigration(m, cfg, true)
	case MethodGroupMigration2:
		return runGroupMigration2(m, cfg)
	case MethodSimulatedAnnealing:
		return runSA(m, cfg, initial, 0)
	case MethodSimulatedAnnealingAutotemp:
		return runSA(m, cfg, initial, 1)
	case MethodSimulatedAnnealingAutotemp2:
		return runSA(m, cfg, initial, 2)
	case MethodSimulatedAnnealingAutotemp3:
		return runSA(m, cfg, initial, 3)
	case MethodSimulatedAnnealingLevels:
		return runSAWithLevels(m, cfg, initial)
	case MethodFastHybridGMSA:
		return runFastHybridGMSA(m, cfg, initial, 0)
	case MethodFastHybridGMSAAutotemp:
		return runFastHybridGMSA(m, cfg, initial, 1)
	case MethodSlowHybridGMSA:
		return runIteratedSA(m, cfg, initial, true, 0)
	case MethodSlowHybridGMSAAutotemp:
		return runIteratedSA(m, cfg, initial, true, 1)
	case MethodIteratedSimulatedAnnealing:
		return runIteratedSA(m, cfg, initial, false, 0)
	case MethodIteratedSimulatedAnnealingAuto:
		return runIteratedSA(m, cfg, initial, false, 1)
	case MethodOSMSA:
		return runOSMSA(m, cfg, initial)
	case MethodGeneticAlgorithm:
		return runGeneticAlgorithm(m, cfg)
	case MethodBruteForce:
		return runBruteForce(m, cfg)
	case MethodBruteForceWithSchedule:
		return runBruteForceWithSchedule(m, cfg)
	case MethodBruteForceMapSchedule:
		return runBruteForceMapSchedule(m, cfg)
	case MethodNeighborhoodTest:
		return runNeighborhoodTest(m, cfg)
	default:
		panic(taskerr.New(taskerr.Configuration, "orchestrator.Run: unknown optimization method %q", cfg.Method))
	}
}
