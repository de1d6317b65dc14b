package simkpn

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/dcsmapper/model"
)

type eventKind int

const (
	evPEReady eventKind = iota
	evCompFin
	evICReady
	evCommFin
)

// transferJob is one queued remote WRITE awaiting IC arbitration.
type transferJob struct {
	issueTime  sim.VTimeInSec
	producerPE int
	amount     float64
	srcProc    int
	dstProc    int
}

// event is one entry in the KPN simulator's min-heap event queue.
type event struct {
	time sim.VTimeInSec
	kind eventKind
	seq  uint64

	peID   int
	procID int
	inst   model.Instruction

	icID int
	job  transferJob
}

func eventLess(a, b event) bool {
	if a.time != b.time {
		return a.time < b.time
	}
	return a.seq < b.seq
}

// readyEntry is one process waiting in a PE's ready heap, tagged with the
// order it became ready so same-priority processes pop in FIFO order.
type readyEntry struct {
	proc int
	seq  uint64
}
