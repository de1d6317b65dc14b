// Package heuristics implements the meta-heuristics that search a
// Mapping's assignment space without annealing: group migration and its
// pairwise variant, the genetic algorithm, optimal-subset mapping,
// random mapping, brute force, neighborhood-test mapping, and the
// fast-premapping warm start.
package heuristics

import (
	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/objective"
)

// randomizeMapping reassigns every non-static task to a uniformly
// random PE.
func randomizeMapping(m *model.Mapping) {
	for t := 0; t < m.NTasks(); t++ {
		m.SetMapping(t, model.Default().Int(0, m.NPEs()))
	}
}

// randomizeNTaskMappings reassigns n randomly chosen tasks (with
// replacement) to a PE different from whichever PE they currently
// occupy. A no-op when the architecture has only one PE.
func randomizeNTaskMappings(m *model.Mapping, n int) {
	npes := m.NPEs()
	if npes < 2 {
		return
	}
	for i := 0; i < n; i++ {
		t := model.Default().Int(0, m.NTasks())
		pe := model.Default().Int(0, npes-1)
		if pe >= m.Assignments[t] {
			pe++
		}
		m.SetMapping(t, pe)
	}
}

// totalMappings returns the size of the full assignment space,
// npes^(ntasks-nstatic).
func totalMappings(m *model.Mapping) float64 {
	n := 1.0
	electable := m.Electable()
	npes := float64(m.NPEs())
	for i := 0; i < electable; i++ {
		n *= npes
	}
	return n
}

// totalSchedules returns ntasks!, the size of the priority-permutation
// space.
func totalSchedules(m *model.Mapping) float64 {
	s := 1.0
	for i := 2; i <= m.NTasks(); i++ {
		s *= float64(i)
	}
	return s
}

func eval(m *model.Mapping, cfg objective.Config) float64 {
	return objective.Evaluate(m, cfg)
}
