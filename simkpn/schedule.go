// Package simkpn implements the discrete-event simulator that replays a
// Kahn process network (sequential instruction streams communicating
// over blocking FIFO channels) on a candidate Mapping.
package simkpn

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/taskerr"
)

type procState struct {
	pc        int
	blockedOn int // source process id this process is blocked reading from, -1 if not blocked
	finished  bool
	fifos     map[int]*model.Float64Array
}

func newProcState() *procState {
	return &procState{blockedOn: -1, fifos: make(map[int]*model.Float64Array)}
}

func (p *procState) fifo(src int) *model.Float64Array {
	f, ok := p.fifos[src]
	if !ok {
		f = model.NewFloat64Array()
		p.fifos[src] = f
	}
	return f
}

type simState struct {
	m   *model.Mapping
	app *model.KPNApp

	procs []*procState

	events  *model.Heap[event]
	nextSeq uint64

	readySeq  uint64
	readyHeap []*model.Heap[readyEntry]
	peBusy    []bool

	icQueue   [][]transferJob
	icBusy    []bool
	nextICRR  int
	ninstsLeft int
}

// Schedule replays the instruction streams of every KPN process in m.App
// onto m.Arch under the current task-to-PE assignment and fills in
// m.Schedule.
func Schedule(m *model.Mapping) {
	app, ok := m.App.(*model.KPNApp)
	if !ok {
		panic(taskerr.New(taskerr.Invariant, "simkpn.Schedule called with a non-KPN application"))
	}
	if len(m.Arch.ICs) == 0 {
		panic(taskerr.New(taskerr.Configuration, "KPN simulation requires at least one interconnect"))
	}
	if len(app.Processes) == 0 {
		panic(taskerr.New(taskerr.Configuration, "KPN application has no processes"))
	}

	m.Schedule.Reset(m.NPEs(), len(m.Arch.ICs))

	s := &simState{
		m:         m,
		app:       app,
		procs:     make([]*procState, len(app.Processes)),
		events:    model.NewMinHeap(eventLess),
		readyHeap: make([]*model.Heap[readyEntry], m.NPEs()),
		peBusy:    make([]bool, m.NPEs()),
		icQueue:   make([][]transferJob, len(m.Arch.ICs)),
		icBusy:    make([]bool, len(m.Arch.ICs)),
	}
	for _, p := range app.Processes {
		s.procs[p.ID] = newProcState()
		s.ninstsLeft += len(p.Instructions)
	}
	for i := range s.readyHeap {
		s.readyHeap[i] = model.NewHeap(s.readyLess)
	}

	for _, p := range app.Processes {
		pe := m.Assignments[p.ID]
		s.readyHeap[pe].Push(readyEntry{proc: p.ID, seq: s.nextReadySeq()})
	}
	for pe := range m.Arch.PEs {
		s.schedule(event{time: 0, kind: evPEReady, peID: pe})
	}

	s.run()

	m.Schedule.Finalize()
}

func (s *simState) readyLess(a, b readyEntry) bool {
	pa := s.m.Priority(a.proc, 0)
	pb := s.m.Priority(b.proc, 0)
	if pa != pb {
		return pa < pb
	}
	return a.seq > b.seq
}

func (s *simState) nextReadySeq() uint64 {
	s.readySeq++
	return s.readySeq
}

func (s *simState) schedule(e event) {
	e.seq = s.nextSeq
	s.nextSeq++
	s.events.Push(e)
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
		if s.ninstsLeft == 0 {
			s.m.Schedule.Length = e.time
			return
		}
	}
	panic(taskerr.New(taskerr.Invariant,
		"KPN event queue drained with %d instructions left (deadlock on a channel read)", s.ninstsLeft))
}

func (s *simState) handlePEReady(e event) {
	pe := e.peID
	for {
		if s.peBusy[pe] || s.readyHeap[pe].Len() == 0 {
			return
		}
		entry := s.readyHeap[pe].Pop()
		ok, dur, inst := s.execute(entry.proc)
		if !ok {
			continue
		}

		s.peBusy[pe] = true
		s.m.Schedule.PEUtil[pe] += float64(dur)
		s.schedule(event{time: e.time + dur, kind: evCompFin, peID: pe, procID: entry.proc, inst: inst})
		return
	}
}

// execute attempts to run the instruction at the process's current
// program counter. It returns ok=false without advancing the program
// counter if the process has finished or is blocked on an empty FIFO.
func (s *simState) execute(procID int) (bool, sim.VTimeInSec, model.Instruction) {
	ps := s.procs[procID]
	proc := s.app.Processes[procID]

	if ps.pc >= len(proc.Instructions) {
		ps.finished = true
		return false, 0, model.Instruction{}
	}

	inst := proc.Instructions[ps.pc]
	pe := s.m.Arch.PEs[s.m.Assignments[procID]]

	switch inst.Kind {
	case model.InstCompute:
		ps.pc++
		return true, pe.ComputationTime(inst.Amount), inst

	case model.InstRead:
		fifo := ps.fifo(inst.Src)
		if fifo.Empty() {
			ps.blockedOn = inst.Src
			return false, 0, model.Instruction{}
		}
		amount := fifo.PopFront()
		ps.pc++
		return true, pe.CyclesToSeconds(pe.CopyCost(model.ClampNonNegativeInt(amount))), inst

	case model.InstWrite:
		dstPE := s.m.Assignments[inst.Dst]
		ps.pc++
		if dstPE == s.m.Assignments[procID] {
			return true, pe.CyclesToSeconds(pe.CopyCost(model.ClampNonNegativeInt(inst.Amount))), inst
		}
		return true, pe.CyclesToSeconds(pe.SendCost(model.ClampNonNegativeInt(inst.Amount))), inst

	default:
		panic(taskerr.New(taskerr.Invariant, "process %d: unknown instruction kind %d at pc %d", procID, inst.Kind, ps.pc))
	}
}

func (s *simState) handleCompFin(e event) {
	pe, procID, inst := e.peID, e.procID, e.inst
	s.peBusy[pe] = false
	s.ninstsLeft--

	if s.ninstsLeft == 0 {
		s.m.Schedule.Length = e.time
		s.readyHeap[pe].Push(readyEntry{proc: procID, seq: s.nextReadySeq()})
		return
	}

	if inst.Kind == model.InstWrite {
		dstPE := s.m.Assignments[inst.Dst]
		if dstPE == pe {
			s.unblock(inst.Dst, procID, inst.Amount, e.time)
		} else {
			ic := s.pickICRoundRobin()
			s.icQueue[ic] = append(s.icQueue[ic], transferJob{
				issueTime: e.time, producerPE: pe, amount: inst.Amount,
				srcProc: procID, dstProc: inst.Dst,
			})
			s.schedule(event{time: e.time, kind: evICReady, icID: ic})
		}
	}

	s.readyHeap[pe].Push(readyEntry{proc: procID, seq: s.nextReadySeq()})
	s.schedule(event{time: e.time, kind: evPEReady, peID: pe})
}

// pickICRoundRobin distributes newly arbitrated transfers across the
// architecture's interconnects. All interconnects in a valid architecture
// share identical timing parameters, so the distribution only affects
// queueing, never per-transfer duration.
func (s *simState) pickICRoundRobin() int {
	ic := s.nextICRR
	s.nextICRR = (s.nextICRR + 1) % len(s.icQueue)
	return ic
}

func (s *simState) handleICReady(e event) {
	ic := e.icID
	if s.icBusy[ic] || len(s.icQueue[ic]) == 0 {
		return
	}

	queueLen := len(s.icQueue[ic])
	idx := s.arbitrate(ic)
	job := s.icQueue[ic][idx]
	s.icQueue[ic] = append(s.icQueue[ic][:idx], s.icQueue[ic][idx+1:]...)

	dur := s.m.Arch.ICs[0].TransferTime(model.ClampNonNegativeInt(job.amount))

	s.icBusy[ic] = true
	s.m.Schedule.ICUtil[ic] += float64(dur)
	st := &s.m.Schedule.Arb[ic]
	st.Arbs++
	st.TotalWaitTime += float64(e.time - job.issueTime)
	st.TotalInQueue += queueLen

	s.schedule(event{time: e.time + dur, kind: evCommFin, icID: ic, job: job})
}

// arbitrate selects the index within icQueue[ic] to service next,
// according to that interconnect's arbitration policy.
func (s *simState) arbitrate(ic int) int {
	queue := s.icQueue[ic]
	switch s.m.Arch.ICs[ic].Arbitration {
	case model.FIFO:
		return 0
	case model.LIFO:
		return len(queue) - 1
	case model.RANDOM:
		return model.Default().Int(0, len(queue))
	case model.PRIORITY:
		best := 0
		bestPriority := s.m.ICPriorities[queue[0].producerPE]
		for i, job := range queue[1:] {
			if p := s.m.ICPriorities[job.producerPE]; p > bestPriority {
				bestPriority = p
				best = i + 1
			}
		}
		return best
	default:
		panic(taskerr.New(taskerr.Invariant, "unknown arbitration policy %v", s.m.Arch.ICs[ic].Arbitration))
	}
}

func (s *simState) handleCommFin(e event) {
	s.icBusy[e.icID] = false
	s.unblock(e.job.dstProc, e.job.srcProc, e.job.amount, e.time)
	if len(s.icQueue[e.icID]) > 0 {
		s.schedule(event{time: e.time, kind: evICReady, icID: e.icID})
	}
}

// unblock delivers amount into dstProc's FIFO for srcProc, waking dstProc
// if it was blocked reading from exactly that source.
func (s *simState) unblock(dstProc, srcProc int, amount float64, now sim.VTimeInSec) {
	ps := s.procs[dstProc]
	ps.fifo(srcProc).PushBack(amount)

	if ps.blockedOn == srcProc {
		ps.blockedOn = -1
		pe := s.m.Assignments[dstProc]
		s.readyHeap[pe].Push(readyEntry{proc: dstProc, seq: s.nextReadySeq()})
		s.schedule(event{time: now, kind: evPEReady, peID: pe})
	}
}
