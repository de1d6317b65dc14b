package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sarchlab/dcsmapper/anneal"
	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/orchestrator"
)

// applyCLIOverrides layers the command line's own configuration knobs
// (fast pre-mapping, arbitration policy, IC priorities, the SA move
// heuristic, and -p parameter overrides) onto the configuration and
// mapping input.Parse already built from the input file.
func applyCLIOverrides(opts cliOptions, arch *model.Architecture, m *model.Mapping, cfg *orchestrator.Config) error {
	cfg.FastPremapping = cfg.FastPremapping || opts.fastPremapping

	if opts.arbPolicy != "" {
		policy, ok := model.ParseArbitrationPolicy(opts.arbPolicy)
		if !ok {
			return fmt.Errorf("unknown arbitration policy: %s", opts.arbPolicy)
		}
		for _, ic := range arch.ICs {
			ic.Arbitration = policy
		}
	}

	if opts.icPriorities != "" {
		if err := applyICPriorities(opts.icPriorities, m); err != nil {
			return err
		}
	}

	if opts.mappingHeur != "" {
		if !strings.Contains(string(cfg.Method), "simulated_annealing") {
			slog.Warn("mapping-heuristics override has no effect: method is not simulated annealing", "method", cfg.Method)
		} else {
			move, ok := anneal.Moves[opts.mappingHeur]
			if !ok {
				return fmt.Errorf("unknown mapping heuristic: %s", opts.mappingHeur)
			}
			cfg.Anneal.Move = move
		}
	}

	for _, kv := range opts.parameters {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("malformed -p override, want name=value: %s", kv)
		}
		if err := applyParameterOverride(cfg, name, value); err != nil {
			return err
		}
	}

	return nil
}

func applyICPriorities(digits string, m *model.Mapping) error {
	if len(digits) != len(m.ICPriorities) {
		slog.Warn("ic-priorities length does not match PE count", "got", len(digits), "want", len(m.ICPriorities))
	}
	for i, c := range digits {
		if i >= len(m.ICPriorities) {
			break
		}
		d, err := strconv.Atoi(string(c))
		if err != nil {
			return fmt.Errorf("ic-priorities must be a digit string: %w", err)
		}
		m.ICPriorities[i] = d
	}
	return nil
}

// applyParameterOverride wires -p name=value onto the one or two
// optimization methods the original system actually consulted this
// mechanism for: genetic_algorithm's tuning knobs and
// neighborhood_test's changemax/itermax. Unknown keys are a warning,
// not a fatal error, so an override meant for a different method can
// be left on the command line without breaking the run.
func applyParameterOverride(cfg *orchestrator.Config, name, value string) error {
	switch name {
	case "max_generations":
		return setInt(&cfg.Genetic.MaxGenerations, value)
	case "population_size":
		return setInt(&cfg.Genetic.PopulationSize, value)
	case "elitism":
		return setInt(&cfg.Genetic.Elitism, value)
	case "discrimination":
		return setInt(&cfg.Genetic.Discrimination, value)
	case "crossover_probability":
		return setFloat(&cfg.Genetic.CrossoverProbability, value)
	case "chromosome_mutation_probability":
		return setFloat(&cfg.Genetic.ChromosomeMutationProbability, value)
	case "gene_mutation_probability":
		return setFloat(&cfg.Genetic.GeneMutationProbability, value)
	case "changemax":
		return setInt(&cfg.NeighborhoodTest.MaxMutation, value)
	case "itermax":
		return setInt(&cfg.NeighborhoodTest.MaxIterations, value)
	default:
		slog.Warn("unknown -p parameter, ignoring", "name", name, "value", value)
		return nil
	}
}

func setInt(dst *int, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid integer value %q: %w", value, err)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid float value %q: %w", value, err)
	}
	*dst = f
	return nil
}
