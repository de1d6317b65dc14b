package heuristics

import (
	"math"

	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/objective"
)

// RandomConfig parameterizes Random.
type RandomConfig struct {
	Objective objective.Config

	// MaxIterations bounds the search directly if non-negative.
	// Otherwise the bound is Constant * ntasks^TaskExponent *
	// npes^PEExponent.
	MaxIterations int
	Constant      float64
	TaskExponent  float64
	PEExponent    float64
}

// iterationBound resolves the configured iteration count.
func (cfg RandomConfig) iterationBound(ntasks, npes int) int {
	if cfg.MaxIterations >= 0 {
		return cfg.MaxIterations
	}
	return int(cfg.Constant * math.Pow(float64(ntasks), cfg.TaskExponent) * math.Pow(float64(npes), cfg.PEExponent))
}

// Random repeatedly assigns every non-static task to a uniformly random
// PE and evaluates, keeping the best mapping found. It returns the best
// objective, leaving m set to the mapping that achieved it.
func Random(m *model.Mapping, cfg RandomConfig) float64 {
	best := m.Fork()
	bestCost := eval(best, cfg.Objective)

	candidate := m.Fork()
	maxIterations := cfg.iterationBound(m.NTasks(), m.NPEs())

	for i := 0; i < maxIterations; i++ {
		randomizeMapping(candidate)
		newCost := eval(candidate, cfg.Objective)
		if candidate.CostDiff(bestCost, newCost) < 0 {
			bestCost = newCost
			candidate.CopyInto(best)
		}
	}

	best.CopyInto(m)
	return bestCost
}
