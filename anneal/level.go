package anneal

import (
	"sort"

	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/objective"
)

// runLevelMode curates a temperature schedule before the real search: a
// restricted, cheap first pass records the best-so-far objective at
// every temperature transition, those transitions are ranked by how
// much they actually improved the best objective, and the top half (by
// improvement, re-sorted by descending temperature) becomes the literal
// temperature sequence the real second pass anneals through.
//
// The first pass runs on a scratch fork and its resulting mapping is
// discarded — restarting the second pass from m's original assignment
// rather than continuing from the first pass's result is deliberate,
// mirroring the explored-and-kept behavior of the original two-pass
// driver.
func runLevelMode(m *model.Mapping, cfg Config) float64 {
	n := m.NTasks()
	npes := m.NPEs()

	pass1 := cfg
	pass1.LevelOptimization = false
	pass1.MaxPEs = 2
	if pass1.MaxPEs > npes {
		pass1.MaxPEs = npes
	}
	pass1.MaxRejects = n * (pass1.MaxPEs - 1)
	pass1.ScheduleMax = n * (pass1.MaxPEs - 1)
	if pass1.MaxRejects < 1 {
		pass1.MaxRejects = 1
	}
	if pass1.ScheduleMax < 1 {
		pass1.ScheduleMax = 1
	}

	var samples []levelSample
	scratch := m.Fork()
	runPass(scratch, pass1, &samples, nil)

	levels := deriveLevels(samples)
	if len(levels) == 0 {
		// Too little of a search happened in pass 1 (e.g. a
		// single-task instance) to curate anything; leave m as its
		// original assignment and report its own objective.
		return objective.Evaluate(m, cfg.Objective)
	}

	pass2 := cfg
	pass2.LevelOptimization = true
	pass2.MaxPEs = 0
	pass2.MaxRejects = 2 * n * (npes - 1)
	pass2.ScheduleMax = 2 * n * (npes - 1)
	if pass2.MaxRejects < 1 {
		pass2.MaxRejects = 1
	}
	if pass2.ScheduleMax < 1 {
		pass2.ScheduleMax = 1
	}

	return runPass(m, pass2, nil, levels)
}

// deriveLevels converts a sequence of (T, E_best-at-transition) samples
// into the curated replay list: one entry per consecutive pair, holding
// that pair's temperature and the amount E_best improved by between
// them, kept only for the top half of improvements, re-sorted by
// descending temperature so the replayed schedule still cools monotonically.
func deriveLevels(samples []levelSample) []levelSample {
	if len(samples) < 2 {
		return nil
	}

	improvements := make([]levelSample, 0, len(samples)-1)
	for i := 0; i < len(samples)-1; i++ {
		improvements = append(improvements, levelSample{
			T:         samples[i].T,
			objective: samples[i].objective - samples[i+1].objective,
		})
	}

	sort.Slice(improvements, func(i, j int) bool {
		return improvements[i].objective > improvements[j].objective
	})

	optLevels := len(improvements) * 50 / 100
	if optLevels < 1 {
		optLevels = 1
	}
	top := improvements[:optLevels]

	sort.Slice(top, func(i, j int) bool {
		return top[i].T > top[j].T
	})

	return top
}
