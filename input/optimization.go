package input

import (
	"github.com/sarchlab/dcsmapper/anneal"
	"github.com/sarchlab/dcsmapper/heuristics"
	"github.com/sarchlab/dcsmapper/objective"
	"github.com/sarchlab/dcsmapper/orchestrator"
)

var objectiveFunctions = []string{"execution_time", "execution_time_power"}

var knownMethods = func() map[string]bool {
	m := make(map[string]bool, len(orchestrator.MethodNames))
	for _, name := range orchestrator.MethodNames {
		m[string(name)] = true
	}
	return m
}()

// parseOptimization reads the `optimization` section: the objective
// function, the method name, and whatever parameter block that method
// requires.
func parseOptimization(l *lexer) *orchestrator.Config {
	cfg := &orchestrator.Config{}

	l.match("objective_function")
	switch l.matchAlternatives(objectiveFunctions...) {
	case 0:
		cfg.Objective = objective.Config{Kind: objective.ExecutionTime}
	case 1:
		l.match("k")
		cfg.Objective = objective.Config{Kind: objective.ExecutionTimePower, EnergyK: l.float64()}
	}

	l.match("method")
	name := l.word()
	if !knownMethods[name] {
		errf("unknown optimization method: %s", name)
	}
	cfg.Method = orchestrator.Method(name)

	switch cfg.Method {
	case orchestrator.MethodOptimalSubsetMapping:
		cfg.OptimalSubset = parseOSMParameters(l)

	case orchestrator.MethodRandomMapping:
		cfg.Random = parseRandomParameters(l)

	case orchestrator.MethodGroupMigration,
		orchestrator.MethodGroupMigrationRandom,
		orchestrator.MethodGroupMigration2,
		orchestrator.MethodBruteForce,
		orchestrator.MethodBruteForceWithSchedule,
		orchestrator.MethodBruteForceMapSchedule:
		// no parameters

	case orchestrator.MethodSimulatedAnnealing,
		orchestrator.MethodSimulatedAnnealingAutotemp,
		orchestrator.MethodSimulatedAnnealingAutotemp2,
		orchestrator.MethodSimulatedAnnealingAutotemp3,
		orchestrator.MethodSimulatedAnnealingLevels,
		orchestrator.MethodFastHybridGMSA,
		orchestrator.MethodFastHybridGMSAAutotemp,
		orchestrator.MethodSlowHybridGMSA,
		orchestrator.MethodSlowHybridGMSAAutotemp,
		orchestrator.MethodIteratedSimulatedAnnealing,
		orchestrator.MethodIteratedSimulatedAnnealingAuto:
		cfg.Anneal = parseSAParameters(l)

	case orchestrator.MethodGeneticAlgorithm:
		cfg.Genetic = parseGAParameters(l)

	case orchestrator.MethodOSMSA:
		cfg.OptimalSubset = parseOSMParameters(l)
		cfg.Anneal = parseSAParameters(l)

	case orchestrator.MethodNeighborhoodTest:
		cfg.NeighborhoodTest = parseNTMParameters(l)
	}

	return cfg
}

// parseOSMParameters reads the fixed, un-terminated multiplier /
// task_exponent / pe_exponent / subset_size sequence optimal-subset
// mapping and osm_sa both start with.
func parseOSMParameters(l *lexer) heuristics.OptimalSubsetConfig {
	var cfg heuristics.OptimalSubsetConfig

	l.match("multiplier")
	cfg.Multiplier = l.float64()
	if cfg.Multiplier <= 0 {
		errf("osm multiplier must be positive")
	}
	l.match("task_exponent")
	cfg.TaskExponent = l.float64()
	if cfg.TaskExponent <= 0 {
		errf("osm task_exponent must be positive")
	}
	l.match("pe_exponent")
	cfg.PEExponent = l.float64()
	if cfg.PEExponent <= 0 {
		errf("osm pe_exponent must be positive")
	}
	l.match("subset_size")
	cfg.SubsetSize = l.int()
	if cfg.SubsetSize < 0 {
		errf("osm subset_size must be non-negative")
	}

	return cfg
}

// parseRandomParameters reads the fixed, un-terminated max_iterations /
// multiplier / task_exponent / pe_exponent sequence.
func parseRandomParameters(l *lexer) heuristics.RandomConfig {
	var cfg heuristics.RandomConfig

	l.match("max_iterations")
	cfg.MaxIterations = l.int()
	l.match("multiplier")
	cfg.Constant = l.float64()
	l.match("task_exponent")
	cfg.TaskExponent = l.float64()
	l.match("pe_exponent")
	cfg.PEExponent = l.float64()

	return cfg
}

// saAcceptorNames are the file-format acceptor keywords, in the
// original system's own (historically misnamed) order: the file's
// "exponential" actually selects the inverse-exponential acceptor, and
// its "original" selects the plain exponential one.
var saAcceptorNames = []string{"exponential", "original", "special_1"}

var saAcceptorKinds = []anneal.AcceptorKind{
	anneal.InverseExponential,
	anneal.Exponential,
	anneal.Special1,
}

var saScheduleNames = []string{"geometric"}

// parseSAParameters reads a `end_simulated_annealing`-terminated block
// of simulated-annealing parameters: max_rejects, schedule_max, T0, Tf,
// acceptor, schedule, heuristics (the move function name) and an
// optional zero_transition_prob, defaulting to 0.5.
func parseSAParameters(l *lexer) anneal.Config {
	cfg := anneal.Config{ZeroTransitionProb: 0.5, ScheduleAlpha: 1}

	const (
		gotMaxRejects = 1 << iota
		gotScheduleMax
		gotT0
		gotTf
		gotAcceptor
		gotSchedule
		gotHeuristics
	)
	seen := 0

	var moveName string

	for {
		s := l.word()
		if s == "end_simulated_annealing" {
			break
		}

		switch s {
		case "max_rejects":
			cfg.MaxRejects = l.int()
			seen |= gotMaxRejects
		case "schedule_max":
			cfg.ScheduleMax = l.int()
			seen |= gotScheduleMax
		case "T0":
			cfg.T0 = l.float64()
			seen |= gotT0
		case "Tf":
			cfg.Tf = l.float64()
			seen |= gotTf
		case "acceptor":
			cfg.Acceptor = saAcceptorKinds[l.matchAlternatives(saAcceptorNames...)]
			seen |= gotAcceptor
		case "schedule":
			l.matchAlternatives(saScheduleNames...)
			cfg.ScheduleAlpha = l.float64()
			seen |= gotSchedule
		case "heuristics":
			moveName = matchMoveName(l)
			seen |= gotHeuristics
		case "zero_transition_prob":
			p := l.float64()
			if p < 0 || p > 1 {
				errf("zero_transition_prob must be in [0,1], got %v", p)
			}
			cfg.ZeroTransitionProb = p
		default:
			errf("unknown simulated annealing parameter: %s", s)
		}
	}

	const obligatory = gotMaxRejects | gotScheduleMax | gotT0 | gotTf | gotAcceptor | gotSchedule | gotHeuristics
	if seen != obligatory {
		errf("simulated annealing block is missing one or more obligatory parameters")
	}

	cfg.Move = anneal.Moves[moveName]
	return cfg
}

func matchMoveName(l *lexer) string {
	names := make([]string, 0, len(anneal.Moves))
	for name := range anneal.Moves {
		names = append(names, name)
	}
	idx := l.matchAlternatives(names...)
	return names[idx]
}

// parseGAParameters reads an `end_method`-terminated block: an optional
// crossover_method keyword plus any of seven named double-valued
// parameters, each defaulting as in the original.
func parseGAParameters(l *lexer) heuristics.GeneticConfig {
	cfg := heuristics.GeneticConfig{
		Crossover:                     heuristics.Uniform,
		MaxGenerations:                1000,
		PopulationSize:                100,
		Elitism:                       1,
		Discrimination:                1,
		CrossoverProbability:          1.0,
		ChromosomeMutationProbability: 1.0,
		GeneMutationProbability:       0.01,
	}

	for {
		s := l.word()
		if s == "end_method" {
			break
		}

		switch s {
		case "crossover_method":
			cfg.Crossover = matchCrossoverKind(l)
		case "max_generations":
			cfg.MaxGenerations = int(l.float64())
		case "population_size":
			cfg.PopulationSize = int(l.float64())
		case "elitism":
			cfg.Elitism = int(l.float64())
		case "discrimination":
			cfg.Discrimination = int(l.float64())
		case "crossover_probability":
			cfg.CrossoverProbability = l.float64()
		case "chromosome_mutation_probability":
			cfg.ChromosomeMutationProbability = l.float64()
		case "gene_mutation_probability":
			cfg.GeneMutationProbability = l.float64()
		default:
			errf("unknown genetic algorithm parameter: %s", s)
		}
	}

	return cfg
}

var crossoverNames = []string{
	"single_point", "two_point", "uniform",
	"arithmetic", "consensus", "consensus_2",
}

var crossoverKinds = []heuristics.CrossoverKind{
	heuristics.SinglePoint,
	heuristics.TwoPoint,
	heuristics.Uniform,
	heuristics.Arithmetic,
	heuristics.Consensus,
	heuristics.Consensus2,
}

func matchCrossoverKind(l *lexer) heuristics.CrossoverKind {
	name := l.word()
	for i, n := range crossoverNames {
		if n == name {
			return crossoverKinds[i]
		}
	}
	errf("unknown crossover method: %s", name)
	return heuristics.Uniform
}

// parseNTMParameters reads an `end_optimization`-terminated block of
// neighborhood-test parameters: changemax (the mutation-count cap) and
// itermax (the outer iteration bound).
func parseNTMParameters(l *lexer) heuristics.NeighborhoodTestConfig {
	var cfg heuristics.NeighborhoodTestConfig

	for {
		s := l.word()
		if s == "end_optimization" {
			break
		}

		switch s {
		case "changemax":
			cfg.MaxMutation = int(l.uint())
		case "itermax":
			cfg.MaxIterations = int(l.int64())
		default:
			errf("unknown neighborhood test parameter: %s", s)
		}
	}

	return cfg
}
