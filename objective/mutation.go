package objective

import (
	"math"

	"github.com/sarchlab/dcsmapper/model"
)

// RM copies src into dst, then reassigns one random non-static task to a
// different random PE.
func RM(dst, src *model.Mapping) {
	src.CopyInto(dst)
	reassignRandom(dst, 1)
}

// RMDT copies src into dst, then reassigns max(1, floor(T*ntasks))
// random non-static tasks to random PEs. The number of tasks moved
// grows with temperature.
func RMDT(dst, src *model.Mapping, T float64) {
	src.CopyInto(dst)
	n := model.ClampNonNegativeInt(T * float64(dst.NTasks()))
	if n < 1 {
		n = 1
	}
	reassignRandom(dst, n)
}

// RMAdaptive copies src into dst, then reassigns one random non-static
// task, switching to two when the move ring shows the search is neither
// clearly converging (c1) nor clearly thrashing (c2), but has settled
// into a plateau or a cold streak (c3 or c4).
func RMAdaptive(dst, src *model.Mapping, ring *MoveRing) {
	src.CopyInto(dst)

	pworse, psame, pbetter := ring.Probabilities(dst)
	c1 := psame == 0 && pbetter < 0.5
	c2 := pworse >= 0.75
	c3 := psame >= 0.25
	c4 := pworse <= 0.25

	n := 1
	if !c1 && !c2 && (c3 || c4) {
		n = 2
	}
	reassignRandom(dst, n)
}

func reassignRandom(m *model.Mapping, n int) {
	tasks := m.NonStaticTasks()
	if len(tasks) == 0 {
		return
	}
	npes := m.NPEs()
	for i := 0; i < n; i++ {
		t := tasks[model.Default().Int(0, len(tasks))]
		cur := m.Assignments[t]
		if cur >= npes {
			m.SetMapping(t, model.Default().Int(0, npes))
			continue
		}
		pe := model.Default().Int(0, npes-1)
		if pe >= cur {
			pe++
		}
		m.SetMapping(t, pe)
	}
}

// CSS ("chain setting, single parent") copies src into dst, picks a
// random anchor task and target PE, and walks a single random parent at
// a time up to a geometrically-distributed depth, assigning the target
// PE to every task visited along that one chain. It is a no-op when
// dst's application is not a static task graph — chain setting depends
// on a parent/child relation that KPN processes don't have.
func CSS(dst, src *model.Mapping) {
	chainSet(dst, src, false)
}

// CSM ("chain setting, multi-parent") is CSS but walks every parent at
// each step instead of one random parent, visiting the full ancestor
// tree up to the chosen depth.
func CSM(dst, src *model.Mapping) {
	chainSet(dst, src, true)
}

func chainSet(dst, src *model.Mapping, allParents bool) {
	src.CopyInto(dst)

	app, ok := dst.App.(*model.STGApp)
	if !ok {
		return
	}

	tasks := dst.NonStaticTasks()
	if len(tasks) == 0 {
		return
	}

	u := model.Default().Float01()
	if u <= 0 {
		u = math.SmallestNonzeroFloat64
	}
	depth := int(-math.Log2(u))

	anchor := tasks[model.Default().Int(0, len(tasks))]
	targetPE := model.Default().Int(0, dst.NPEs())

	if allParents {
		visited := make(map[int]bool)
		visitAllParents(dst, app, anchor, targetPE, depth, visited)
		return
	}
	visitOneParent(dst, app, anchor, targetPE, depth)
}

func visitOneParent(dst *model.Mapping, app *model.STGApp, task, targetPE, depth int) {
	cur := task
	for d := 0; d <= depth; d++ {
		dst.SetMapping(cur, targetPE)
		parents := app.Tasks[cur].Parents
		if len(parents) == 0 {
			return
		}
		cur = parents[model.Default().Int(0, len(parents))]
	}
}

func visitAllParents(dst *model.Mapping, app *model.STGApp, task, targetPE, depth int, visited map[int]bool) {
	if visited[task] {
		return
	}
	visited[task] = true
	dst.SetMapping(task, targetPE)
	if depth <= 0 {
		return
	}
	for _, parent := range app.Tasks[task].Parents {
		visitAllParents(dst, app, parent, targetPE, depth-1, visited)
	}
}
