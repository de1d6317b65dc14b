package heuristics

import (
	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/objective"
)

// GroupMigrationConfig parameterizes GroupMigration.
type GroupMigrationConfig struct {
	Objective objective.Config
	// Randomize applies a uniformly random starting assignment before
	// the first round, instead of starting from m's current one.
	Randomize bool
}

// GroupMigration repeats rounds of single-task reassignment until a
// round fails to improve on the round before it: within a round, it
// repeatedly finds the single (task, PE) change that most improves the
// objective among all not-yet-moved non-static tasks, applies it, marks
// that task moved, and keeps going until no further single-task move in
// the round improves anything. It returns the best objective found,
// leaving m set to the mapping that achieved it.
func GroupMigration(m *model.Mapping, cfg GroupMigrationConfig) float64 {
	best := m.Fork()
	bestCost := eval(m, cfg.Objective)

	if cfg.Randomize {
		randomizeMapping(m)
	}

	for {
		newCost := groupMigrationRound(m, cfg.Objective)
		if m.CostDiff(bestCost, newCost) >= 0 {
			break
		}
		bestCost = newCost
		m.CopyInto(best)
	}

	best.CopyInto(m)
	return bestCost
}

// groupMigrationRound mutates m in place through one full round and
// returns its resulting objective.
func groupMigrationRound(m *model.Mapping, cfg objective.Config) float64 {
	bestCost := eval(m, cfg)
	moved := make([]bool, m.NTasks())

	for {
		bestTask, bestPE := -1, -1

		for taskID := 0; taskID < m.NTasks(); taskID++ {
			if m.IsStatic[taskID] || moved[taskID] {
				continue
			}
			oldPE := m.Assignments[taskID]

			for pe := 0; pe < m.NPEs(); pe++ {
				if pe == oldPE {
					continue
				}
				m.SetMapping(taskID, pe)
				newCost := eval(m, cfg)
				if m.CostDiff(bestCost, newCost) < 0 {
					bestCost = newCost
					bestTask, bestPE = taskID, pe
				}
			}
			m.SetMapping(taskID, oldPE)
		}

		if bestTask < 0 {
			break
		}
		moved[bestTask] = true
		m.SetMapping(bestTask, bestPE)
	}

	return bestCost
}

// GroupMigration2Config parameterizes GroupMigration2.
type GroupMigration2Config struct {
	Objective objective.Config
}

// GroupMigration2 runs GroupMigration to convergence, then attempts one
// extra round considering every pair of (task, PE) reassignments
// simultaneously; repeats as long as the pairwise round still improves.
func GroupMigration2(m *model.Mapping, cfg GroupMigration2Config) float64 {
	gmCfg := GroupMigrationConfig{Objective: cfg.Objective}

	for {
		initialCost := GroupMigration(m, gmCfg)
		newCost := groupMigration2Round(m, cfg.Objective)
		if m.CostDiff(initialCost, newCost) >= 0 {
			return initialCost
		}
	}
}

// groupMigration2Round mutates m in place, trying every pair of
// non-static tasks and PE targets, and commits the single best pair
// found (if any).
func groupMigration2Round(m *model.Mapping, cfg objective.Config) float64 {
	bestCost := eval(m, cfg)
	bestT1, bestP1, bestT2, bestP2 := -1, -1, -1, -1

	for t1 := 0; t1 < m.NTasks(); t1++ {
		if m.IsStatic[t1] {
			continue
		}
		oldP1 := m.Assignments[t1]

		for p1 := 0; p1 < m.NPEs(); p1++ {
			if p1 == oldP1 {
				continue
			}
			m.SetMapping(t1, p1)

			for t2 := 0; t2 < m.NTasks(); t2++ {
				if m.IsStatic[t2] || t1 == t2 {
					continue
				}
				oldP2 := m.Assignments[t2]

				for p2 := 0; p2 < m.NPEs(); p2++ {
					if p2 == oldP2 {
						continue
					}
					m.SetMapping(t2, p2)
					newCost := eval(m, cfg)
					if m.CostDiff(bestCost, newCost) < 0 {
						bestCost = newCost
						bestT1, bestP1, bestT2, bestP2 = t1, p1, t2, p2
					}
				}
				m.SetMapping(t2, oldP2)
			}
		}
		m.SetMapping(t1, oldP1)
	}

	if bestT1 >= 0 {
		m.SetMapping(bestT1, bestP1)
		m.SetMapping(bestT2, bestP2)
	}

	return bestCost
}
