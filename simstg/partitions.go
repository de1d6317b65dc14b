package simstg

import "github.com/sarchlab/dcsmapper/model"

// buildSendInfo partitions every task's output peers by destination PE,
// reusing the Mapping's send arena across evaluations. handles[t] holds
// only the *remote* partitions for task t (same-PE peers need no arena
// entry: their rescount is bumped immediately when the task finishes).
func buildSendInfo(m *model.Mapping, app *model.STGApp, arena *model.SendArena, handles []model.SendHandle) {
	arena.Reset()

	for _, t := range app.Tasks {
		ownPE := m.Assignments[t.ID]

		byPE := make(map[int][]int)
		refsByPE := make(map[int][]int) // parallel to byPE, occurrence count per entry
		var peOrder []int
		for peer, refs := range t.PeerRefs {
			peerPE := m.Assignments[peer]
			if peerPE == ownPE {
				continue
			}
			if _, ok := byPE[peerPE]; !ok {
				peOrder = append(peOrder, peerPE)
			}
			byPE[peerPE] = append(byPE[peerPE], peer)
			refsByPE[peerPE] = append(refsByPE[peerPE], refs)
		}

		if len(peOrder) == 0 {
			handles[t.ID] = model.SendHandle{}
			continue
		}

		h := arena.Append(model.SendPartition{PEID: peOrder[0], DstTasks: byPE[peOrder[0]], DstRefs: refsByPE[peOrder[0]]})
		for _, pe := range peOrder[1:] {
			h = arena.Extend(h, model.SendPartition{PEID: pe, DstTasks: byPE[pe], DstRefs: refsByPE[pe]})
		}
		handles[t.ID] = h
	}
}
