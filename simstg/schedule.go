package simstg

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/taskerr"
)

type sendJob struct {
	priority float64
	bytes    int
	dstTasks []sendDst
	queuedAt sim.VTimeInSec
}

// simState holds all per-evaluation mutable state for one call to Schedule. It
// is allocated fresh per call; only the longer-lived arena/slice buffers
// it borrows from Mapping.STG persist across calls.
type simState struct {
	m   *model.Mapping
	app *model.STGApp

	latency []float64
	bLevel  []float64
	handles []model.SendHandle

	events  *model.Heap[event]
	nextSeq uint64

	peReady  []*model.Heap[int]
	peBusy   []bool
	icBusy   []bool
	sendJobs *model.Heap[sendJob]

	rescount      []int
	finished      []bool
	finishedCount int
}

// Schedule replays the static task graph currently assigned by m onto
// m.Arch, recomputing the full schedule from scratch, and fills in
// m.Schedule. It is idempotent: calling it twice on an unchanged Mapping
// produces a bit-identical schedule length.
func Schedule(m *model.Mapping) {
	app, ok := m.App.(*model.STGApp)
	if !ok {
		panic(taskerr.New(taskerr.Invariant, "simstg.Schedule called with a non-STG application"))
	}
	if len(m.Arch.ICs) == 0 {
		panic(taskerr.New(taskerr.Configuration, "STG simulation requires at least one interconnect"))
	}

	n := app.NTasks()
	m.Schedule.Reset(m.NPEs(), len(m.Arch.ICs))

	if m.STG == nil {
		m.STG = &model.STGDerived{}
	}
	d := m.STG
	d.TopoOrder = topoSort(app)
	d.BLevel = growFloat(d.BLevel, n)
	d.Latency = growFloat(d.Latency, n)
	d.Handles = growHandles(d.Handles, n)

	computeLatencies(m, app, d.Latency)
	computeBLevel(m, app, d.TopoOrder, d.BLevel)
	buildSendInfo(m, app, &d.Arena, d.Handles)

	s := &simState{
		m:        m,
		app:      app,
		latency:  d.Latency,
		bLevel:   d.BLevel,
		handles:  d.Handles,
		events:   model.NewMinHeap(eventLess),
		peReady:  make([]*model.Heap[int], m.NPEs()),
		peBusy:   make([]bool, m.NPEs()),
		icBusy:   make([]bool, len(m.Arch.ICs)),
		sendJobs: model.NewHeap(func(a, b sendJob) bool { return a.priority < b.priority }),
		rescount: make([]int, n),
		finished: make([]bool, n),
	}
	for i := range s.peReady {
		s.peReady[i] = model.NewHeap(func(a, b int) bool {
			return s.taskPriority(a) < s.taskPriority(b)
		})
	}

	for _, id := range app.EntryTasks() {
		s.makeReady(id, 0)
	}

	if n == 0 {
		panic(taskerr.New(taskerr.Configuration, "STG application has no tasks"))
	}

	s.run()

	m.Schedule.Finalize()
}

func (s *simState) taskPriority(t int) float64 {
	return s.m.Priority(t, s.bLevel[t])
}

func (s *simState) schedule(e event) {
	e.seq = s.nextSeq
	s.nextSeq++
	s.events.Push(e)
}

// makeReady marks task t ready (its rescount has reached ntresin) and
// queues it on its assigned PE's ready heap, waking that PE.
func (s *simState) makeReady(t int, now sim.VTimeInSec) {
	pe := s.m.Assignments[t]
	s.peReady[pe].Push(t)
	s.schedule(event{time: now, kind: evPEReady, peID: pe})
}

func (s *simState) run() {
	for s.events.Len() > 0 {
		e := s.events.Pop()
		switch e.kind {
		case evPEReady:
			s.handlePEReady(e)
		case evCompFin:
			s.handleCompFin(e)
		case evICReady:
			s.handleICReady(e)
		case evCommFin:
			s.handleCommFin(e)
		}
		if s.finishedCount == len(s.finished) {
			s.m.Schedule.Length = e.time
			return
		}
	}
	panic(taskerr.New(taskerr.Invariant,
		"STG event queue drained with %d/%d tasks finished (deadlock in task graph)",
		s.finishedCount, len(s.finished)))
}

func (s *simState) handlePEReady(e event) {
	pe := e.peID
	if s.peBusy[pe] || s.peReady[pe].Len() == 0 {
		return
	}

	t := s.peReady[pe].Pop()
	dur := s.latency[t] + float64(s.m.Arch.PEs[pe].ComputationTime(s.app.Tasks[t].Weight))

	s.peBusy[pe] = true
	s.m.Schedule.PEUtil[pe] += dur
	s.schedule(event{time: e.time + sim.VTimeInSec(dur), kind: evCompFin, peID: pe, taskID: t})
}

func (s *simState) handleCompFin(e event) {
	pe, t := e.peID, e.taskID
	s.peBusy[pe] = false
	s.finished[t] = true
	s.finishedCount++

	for peer, refs := range s.app.Tasks[t].PeerRefs {
		if s.m.Assignments[peer] == pe {
			for i := 0; i < refs; i++ {
				s.deliverTo(peer, e.time)
			}
		}
	}

	for _, part := range s.d().Arena.Partitions(s.handles[t]) {
		bytes := totalBytes(s.app.Tasks[t], part.DstTasks)

		priority := 0.0
		for _, dst := range part.DstTasks {
			if v := s.bLevel[dst]; v > priority {
				priority = v
			}
		}
		priority += float64(s.m.Arch.ICs[0].TransferTime(bytes))

		dsts := make([]sendDst, len(part.DstTasks))
		for i, dst := range part.DstTasks {
			dsts[i] = sendDst{task: dst, refs: part.DstRefs[i]}
		}

		s.sendJobs.Push(sendJob{priority: priority, bytes: bytes, dstTasks: dsts, queuedAt: e.time})
		s.schedule(event{time: e.time, kind: evICReady, icID: -1})
	}

	s.schedule(event{time: e.time, kind: evPEReady, peID: pe})
}

func totalBytes(t *model.STGTask, dstTasks []int) int {
	total := 0
	for peer, bytes := range t.PeerBytes {
		for _, dst := range dstTasks {
			if peer == dst {
				total += bytes
			}
		}
	}
	return total
}

func (s *simState) deliverTo(t int, now sim.VTimeInSec) {
	s.rescount[t]++
	if s.rescount[t] == s.app.Tasks[t].NTResIn {
		s.makeReady(t, now)
	}
}

func (s *simState) handleICReady(e event) {
	for s.sendJobs.Len() > 0 {
		ic := s.firstIdleIC()
		if ic < 0 {
			return
		}
		job := s.sendJobs.Pop()
		dur := s.m.Arch.ICs[ic].TransferTime(job.bytes)

		s.icBusy[ic] = true
		s.m.Schedule.ICUtil[ic] += float64(dur)
		s.recordArb(ic, e.time-job.queuedAt, s.sendJobs.Len())
		s.schedule(event{
			time: e.time + dur, kind: evCommFin, icID: ic, dstTasks: job.dstTasks,
		})
	}
}

func (s *simState) firstIdleIC() int {
	for i, busy := range s.icBusy {
		if !busy {
			return i
		}
	}
	return -1
}

func (s *simState) recordArb(ic int, wait sim.VTimeInSec, queueLen int) {
	st := &s.m.Schedule.Arb[ic]
	st.Arbs++
	st.TotalWaitTime += float64(wait)
	st.TotalInQueue += queueLen
}

func (s *simState) handleCommFin(e event) {
	s.icBusy[e.icID] = false
	for _, d := range e.dstTasks {
		for i := 0; i < d.refs; i++ {
			s.deliverTo(d.task, e.time)
		}
	}
	s.schedule(event{time: e.time, kind: evICReady, icID: e.icID})
}

func (s *simState) d() *model.STGDerived { return s.m.STG }

func growFloat(s []float64, n int) []float64 {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]float64, n)
}

func growHandles(s []model.SendHandle, n int) []model.SendHandle {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]model.SendHandle, n)
}
