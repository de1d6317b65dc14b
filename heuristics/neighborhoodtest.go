package heuristics

import (
	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/objective"
)

// NeighborhoodTestConfig parameterizes NeighborhoodTest.
type NeighborhoodTestConfig struct {
	Objective objective.Config

	// MaxIterations bounds the outer loop. 0 defaults to 1000.
	MaxIterations int
	// MaxMutation caps how many tasks the local search may mutate per
	// iteration. 0 defaults to 2.
	MaxMutation int
}

func (cfg NeighborhoodTestConfig) maxIterations() int {
	if cfg.MaxIterations > 0 {
		return cfg.MaxIterations
	}
	return 1000
}

func (cfg NeighborhoodTestConfig) maxMutation() int {
	if cfg.MaxMutation > 0 {
		return cfg.MaxMutation
	}
	return 2
}

// NeighborhoodTest repeatedly probes every (non-static task, alternate PE)
// neighbor of the current candidate, uses the resulting worse/same/better
// statistics to decide whether to disturb one or two tasks next, applies
// the disturbance, and keeps the best mapping found across MaxIterations
// rounds. It returns the best objective found, leaving m set to the
// mapping that achieved it.
func NeighborhoodTest(m *model.Mapping, cfg NeighborhoodTestConfig) float64 {
	best := m.Fork()
	bestCost := eval(best, cfg.Objective)

	candidate := m.Fork()
	randomizeMapping(candidate)

	for i := 0; i < cfg.maxIterations(); i++ {
		startCost := eval(candidate, cfg.Objective)
		n := localSearchMutationCount(candidate, startCost, cfg)

		randomizeNTaskMappings(candidate, n)
		newCost := eval(candidate, cfg.Objective)

		if candidate.CostDiff(bestCost, newCost) < 0 {
			bestCost = newCost
			candidate.CopyInto(best)
		}
	}

	best.CopyInto(m)
	return bestCost
}

// localSearchMutationCount sweeps every non-static task against every
// alternate PE, recording (startCost, neighborCost) for each into a move
// ring sized to the full neighborhood, then applies the same c1-c4
// convergence predicates RMAdaptive uses to decide whether the next
// disturbance should touch one task or up to maxMutation.
func localSearchMutationCount(m *model.Mapping, startCost float64, cfg NeighborhoodTestConfig) int {
	tasks := m.NonStaticTasks()
	npes := m.NPEs()
	if len(tasks) == 0 || npes < 2 {
		return 1
	}

	ring := objective.NewMoveRing(len(tasks) * (npes - 1))
	probe := m.Fork()

	for _, taskID := range tasks {
		oldPE := probe.Assignments[taskID]
		for pe := 0; pe < npes; pe++ {
			if pe == oldPE {
				continue
			}
			probe.SetMapping(taskID, pe)
			ring.Record(startCost, eval(probe, cfg.Objective))
		}
		probe.SetMapping(taskID, oldPE)
	}

	pworse, psame, pbetter := ring.Probabilities(m)
	c1 := psame == 0 && pbetter < 0.5
	c2 := pworse >= 0.75
	c3 := psame >= 0.25
	c4 := pworse <= 0.25

	if !c1 && !c2 && (c3 || c4) {
		return cfg.maxMutation()
	}
	return 1
}
