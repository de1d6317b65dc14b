package simstg

import "github.com/sarchlab/akita/v4/sim"

type eventKind int

const (
	evPEReady eventKind = iota
	evCompFin
	evICReady
	evCommFin
)

// sendDst is one destination of a completed IC transfer: the task id and
// how many (result, dst) references it accounts for, i.e. how many times
// its rescount must be bumped on arrival.
type sendDst struct {
	task int
	refs int
}

// event is one entry in the STG simulator's min-heap event queue. Not
// every field is meaningful for every kind: peID/taskID are used by
// PEReady/CompFin, icID by ICReady/CommFin, dstTasks by CommFin.
type event struct {
	time     sim.VTimeInSec
	kind     eventKind
	seq      uint64 // breaks time ties in heap-insertion order
	peID     int
	taskID   int
	icID     int
	duration sim.VTimeInSec
	dstTasks []sendDst
}

func eventLess(a, b event) bool {
	if a.time != b.time {
		return a.time < b.time
	}
	return a.seq < b.seq
}
