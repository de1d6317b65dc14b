// Package simstg implements the discrete-event simulator that replays a
// static task graph (data-flow DAG) on a candidate Mapping and produces
// the resulting Schedule.
package simstg

import (
	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/taskerr"
)

// topoSort returns the tasks in children-first order: every exit task
// (no results) appears before any of its ancestors, and a task is
// appended only once every task it sends a result to has already been
// appended. Equivalently, for every edge parent->child, the parent
// appears after the child in the returned sequence.
func topoSort(app *model.STGApp) []int {
	n := len(app.Tasks)
	remaining := make([]int, n)
	queue := make([]int, 0, n)

	for _, t := range app.Tasks {
		remaining[t.ID] = len(t.PeerBytes)
		if remaining[t.ID] == 0 {
			queue = append(queue, t.ID)
		}
	}

	order := make([]int, 0, n)
	for head := 0; head < len(queue); head++ {
		id := queue[head]
		order = append(order, id)
		for _, parent := range app.Tasks[id].Parents {
			remaining[parent]--
			if remaining[parent] == 0 {
				queue = append(queue, parent)
			}
		}
	}

	if len(order) != n {
		panic(taskerr.New(taskerr.Invariant,
			"topological sort did not place all %d tasks (cycle in task graph?), placed %d", n, len(order)))
	}
	return order
}
