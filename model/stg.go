package model

// STGResult is one result produced by an STGTask: a quantity of bytes
// delivered to a fixed list of destination task ids.
type STGResult struct {
	Bytes int
	Dsts  []int
}

// STGTask is one node of a static task graph: a unit of computation that,
// once ready, produces zero or more results consumed by other tasks.
type STGTask struct {
	ID     int
	Weight float64 // computation, in operations
	Results []STGResult

	// Derived fields, computed once by STGApp.Prepare.
	Parents   []int       // distinct tasks that must finish before this one
	PeerBytes map[int]int // distinct output peer task -> total bytes
	PeerRefs  map[int]int // distinct output peer task -> count of (result, dst) references
	NTResIn   int         // total incoming result references
}

// STGApp is the static-task-graph application model: an ordered set of
// tasks forming a data-flow DAG.
type STGApp struct {
	Tasks []*STGTask
}

func (a *STGApp) isApplication() {}

// NTasks returns the number of tasks in the graph.
func (a *STGApp) NTasks() int { return len(a.Tasks) }

// Prepare computes the derived per-task fields (Parents, PeerBytes,
// PeerRefs, NTResIn) from the Results adjacency, rebuilding them on each
// call. It must be called before the STG simulator runs; the input
// parser calls it after reading the tasks, and orchestrator.Run calls it
// again before its first evaluation.
//
// NTResIn and PeerRefs count every literal (result, dst) reference, not
// just distinct peers: a task may list the same destination twice, in
// one result's Dsts or across several results, and each occurrence must
// still produce one delivery. PeerBytes stays deduped by peer since it
// only ever feeds byte totals.
func (a *STGApp) Prepare() {
	seenParent := make([]map[int]bool, len(a.Tasks))
	for _, t := range a.Tasks {
		t.PeerBytes = make(map[int]int)
		t.PeerRefs = make(map[int]int)
		t.Parents = nil
		t.NTResIn = 0
		seenParent[t.ID] = make(map[int]bool)
	}

	for _, t := range a.Tasks {
		for _, res := range t.Results {
			for _, dst := range res.Dsts {
				child := a.Tasks[dst]
				child.NTResIn++
				t.PeerBytes[dst] += res.Bytes
				t.PeerRefs[dst]++
				if !seenParent[dst][t.ID] {
					child.Parents = append(child.Parents, t.ID)
					seenParent[dst][t.ID] = true
				}
			}
		}
	}
}

// EntryTasks returns the ids of tasks with no parents — ready at time 0.
func (a *STGApp) EntryTasks() []int {
	var out []int
	for _, t := range a.Tasks {
		if len(t.Parents) == 0 {
			out = append(out, t.ID)
		}
	}
	return out
}

// ExitTasks returns the ids of tasks with no results (no outputs).
func (a *STGApp) ExitTasks() []int {
	var out []int
	for _, t := range a.Tasks {
		if len(t.Results) == 0 {
			out = append(out, t.ID)
		}
	}
	return out
}
