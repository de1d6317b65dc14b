package simstg

import "github.com/sarchlab/dcsmapper/model"

// computeLatencies fills latency[t] with the PE-cycles dispatch cost of
// pushing task t's first result to its siblings, converted to seconds at
// t's PE frequency: remote*send_cost(bytes) + local*copy_cost(bytes),
// where remote counts distinct destination PEs other than t's own PE and
// local counts children mapped to t's own PE.
func computeLatencies(m *model.Mapping, app *model.STGApp, latency []float64) {
	for _, t := range app.Tasks {
		ownPE := m.Assignments[t.ID]
		bytes := 0
		if len(t.Results) > 0 {
			bytes = t.Results[0].Bytes
		}

		remotePEs := make(map[int]bool)
		local := 0
		for peer := range t.PeerBytes {
			peerPE := m.Assignments[peer]
			if peerPE == ownPE {
				local++
			} else {
				remotePEs[peerPE] = true
			}
		}

		pe := m.Arch.PEs[ownPE]
		cycles := float64(len(remotePEs))*pe.SendCost(bytes) + float64(local)*pe.CopyCost(bytes)
		latency[t.ID] = float64(pe.CyclesToSeconds(cycles))
	}
}

// computeBLevel fills bLevel[t] with the HLFET critical-path priority:
// comp_time(t) + max over children c of (bLevel[c] + comm_time(t,c)),
// where comm_time is computed using IC 0 regardless of which IC a
// transfer eventually runs on (a deliberate restriction, not a bug — see
// the open questions in the design notes). order must be the
// children-first topological order from topoSort: iterating it forward
// guarantees every child's bLevel is already known before its parent's
// is computed.
func computeBLevel(m *model.Mapping, app *model.STGApp, order []int, bLevel []float64) {
	ic0 := m.Arch.ICs[0]

	for _, id := range order {
		t := app.Tasks[id]
		pe := m.Arch.PEs[m.Assignments[id]]
		comp := pe.ComputationTime(t.Weight)

		best := 0.0
		for peer, bytes := range t.PeerBytes {
			commTime := 0.0
			if m.Assignments[peer] != m.Assignments[id] {
				commTime = float64(ic0.TransferTime(bytes))
			}
			if v := bLevel[peer] + commTime; v > best {
				best = v
			}
		}

		bLevel[id] = float64(comp) + best
	}
}
