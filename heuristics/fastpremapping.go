package heuristics

import (
	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/objective"
)

// FastPremappingConfig parameterizes FastPremapping.
type FastPremappingConfig struct {
	Objective objective.Config
}

// FastPremapping builds a warm-start mapping for static task graphs: it
// first resets every task to PE 0, then walks the dependency chains
// backward from every exit task, handing each chain's PE down from a
// node to the first of its parents (in a random parent order) while any
// other parent starts a new chain on its own random PE. It is a no-op
// for applications without a parent relation (KPN processes), returning
// the objective of the mapping unchanged. It returns the resulting
// objective, leaving m set to the mapping that achieved it.
func FastPremapping(m *model.Mapping, cfg FastPremappingConfig) float64 {
	app, ok := m.App.(*model.STGApp)
	if !ok {
		return eval(m, cfg.Objective)
	}

	for t := 0; t < m.NTasks(); t++ {
		m.SetMapping(t, 0)
	}

	visited := make([]bool, m.NTasks())
	var stack []int

	for _, exit := range app.ExitTasks() {
		if visited[exit] {
			continue
		}
		visited[exit] = true
		stack = append(stack, exit)
	}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		curPE := m.Assignments[cur]

		parents := app.Tasks[cur].Parents
		order := model.Default().Cards(len(parents), len(parents))

		for pos, parentIdx := range order {
			parent := parents[parentIdx]
			if visited[parent] {
				continue
			}
			visited[parent] = true

			pe := curPE
			if pos > 0 {
				pe = model.Default().Int(0, m.NPEs())
			}
			m.SetMapping(parent, pe)
			stack = append(stack, parent)
		}
	}

	return eval(m, cfg.Objective)
}
