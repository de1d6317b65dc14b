package heuristics

import (
	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/objective"
	"github.com/sarchlab/dcsmapper/taskerr"
)

// BruteForceFlags selects which search spaces BruteForce enumerates.
type BruteForceFlags int

// OptMapping enumerates every PE assignment of the non-static tasks.
// OptScheduling enumerates every task-priority permutation. Combining
// both enumerates their product; OptSchedulingFirst controls which
// space is the outer loop (the one that advances less often) when both
// are set.
const (
	OptMapping BruteForceFlags = 1 << iota
	OptScheduling
	OptSchedulingFirst
)

// BruteForceConfig parameterizes BruteForce.
type BruteForceConfig struct {
	Objective objective.Config
	Flags     BruteForceFlags
}

// BruteForce exhaustively enumerates the configured search space(s) and
// returns the best objective found, leaving m set to the mapping that
// achieved it. At least one of OptMapping/OptScheduling must be set.
func BruteForce(m *model.Mapping, cfg BruteForceConfig) float64 {
	if cfg.Flags&(OptMapping|OptScheduling) == 0 {
		panic(taskerr.New(taskerr.Configuration, "heuristics.BruteForce: at least one of OptMapping/OptScheduling must be set"))
	}

	candidate := m.Fork()

	if cfg.Flags&OptMapping != 0 {
		for t := 0; t < candidate.NTasks(); t++ {
			candidate.SetMapping(t, 0)
		}
	}

	var perm *model.Permutation
	schedulesSeen := 0
	totalSched := 1
	if cfg.Flags&OptScheduling != 0 {
		perm = model.NewPermutation(candidate.NTasks())
		applyPermutationPriorities(candidate, perm.Next())
		totalSched = int(totalSchedules(candidate))
	}

	best := candidate.Fork()
	bestCost := eval(best, cfg.Objective)

	for {
		cost := eval(candidate, cfg.Objective)
		if candidate.CostDiff(bestCost, cost) < 0 {
			bestCost = cost
			candidate.CopyInto(best)
		}

		if bruteForceIncrement(candidate, cfg.Flags, perm, &schedulesSeen, totalSched) {
			break
		}
	}

	best.CopyInto(m)
	return bestCost
}

// applyPermutationPriorities assigns descending priorities following
// perm's task order: the earliest task in the permutation gets the
// highest priority.
func applyPermutationPriorities(m *model.Mapping, perm []int) {
	n := len(perm)
	for i, taskID := range perm {
		m.TaskPriorities[taskID] = float64(n - i)
		m.HasTaskPriority[taskID] = true
	}
}

// bruteForceIncrement advances candidate to the next point in the
// configured search space(s), reporting whether the whole enumeration
// is exhausted.
func bruteForceIncrement(m *model.Mapping, flags BruteForceFlags, perm *model.Permutation, schedulesSeen *int, totalSched int) bool {
	schedulingFirst := flags&OptScheduling != 0 && flags&OptSchedulingFirst != 0

	if schedulingFirst {
		if done := advanceSchedule(m, perm, schedulesSeen, totalSched); !done {
			return false
		}
	}

	if flags&OptMapping != 0 {
		if done := advanceMapping(m); !done {
			return false
		}
	}

	if flags&OptScheduling != 0 && !schedulingFirst {
		return advanceSchedule(m, perm, schedulesSeen, totalSched)
	}

	return true
}

// advanceMapping steps candidate's non-static assignments by one in a
// mixed-radix counter over [0,npes); returns true once every
// assignment has wrapped back to all-zero.
func advanceMapping(m *model.Mapping) bool {
	npes := m.NPEs()
	for t := 0; t < m.NTasks(); t++ {
		if m.IsStatic[t] {
			continue
		}
		newPE := (m.Assignments[t] + 1) % npes
		m.SetMapping(t, newPE)
		if newPE != 0 {
			return false
		}
	}
	return true
}

// advanceSchedule steps to the next priority permutation, reporting
// true once the full n! cycle has wrapped back to the identity.
func advanceSchedule(m *model.Mapping, perm *model.Permutation, schedulesSeen *int, totalSched int) bool {
	next := perm.Next()
	applyPermutationPriorities(m, next)
	*schedulesSeen++
	if *schedulesSeen >= totalSched {
		*schedulesSeen = 0
		return true
	}
	return false
}
