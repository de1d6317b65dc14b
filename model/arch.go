package model

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/dcsmapper/taskerr"
)

// ArbitrationPolicy selects how an interconnect picks the next queued
// transfer to service when it becomes free.
type ArbitrationPolicy int

// The four arbitration policies an IC may run.
const (
	FIFO ArbitrationPolicy = iota
	LIFO
	RANDOM
	PRIORITY
)

func (p ArbitrationPolicy) String() string {
	switch p {
	case FIFO:
		return "fifo"
	case LIFO:
		return "lifo"
	case RANDOM:
		return "random"
	case PRIORITY:
		return "priority"
	default:
		return "unknown"
	}
}

// ParseArbitrationPolicy resolves the file-format/CLI keyword for an
// arbitration policy. Shared by the input parser and the CLI's -a
// override flag so both accept exactly the same vocabulary.
func ParseArbitrationPolicy(name string) (ArbitrationPolicy, bool) {
	switch name {
	case "fifo":
		return FIFO, true
	case "lifo":
		return LIFO, true
	case "random":
		return RANDOM, true
	case "priority":
		return PRIORITY, true
	default:
		return 0, false
	}
}

// PE is a processing element: an immutable description of one
// computation node in the architecture.
type PE struct {
	ID int

	Freq sim.Freq // clock frequency, Hz

	SendCostPerByte  float64 // cycles/byte
	SendLatencyCycle float64 // fixed cycles
	CopyCostPerByte  float64
	CopyLatencyCycle float64

	PerformanceFactor float64
	Area              float64

	InitialICPriority int
}

// SendCost returns the PE-side cost, in cycles, of dispatching a send of
// the given size.
func (p *PE) SendCost(bytes int) float64 {
	return p.SendLatencyCycle + float64(bytes)*p.SendCostPerByte
}

// CopyCost returns the PE-side cost, in cycles, of a same-PE copy of the
// given size.
func (p *PE) CopyCost(bytes int) float64 {
	return p.CopyLatencyCycle + float64(bytes)*p.CopyCostPerByte
}

// CyclesToSeconds converts a duration in cycles at this PE's frequency
// into seconds.
func (p *PE) CyclesToSeconds(cycles float64) sim.VTimeInSec {
	return sim.VTimeInSec(cycles / float64(p.Freq))
}

// ComputationTime returns the wall-clock time, in seconds, this PE takes
// to perform the given amount of computation (operations), scaled by its
// performance factor.
func (p *PE) ComputationTime(ops float64) sim.VTimeInSec {
	return sim.VTimeInSec(ops / (float64(p.Freq) * p.PerformanceFactor))
}

// IC is an interconnect: a bus connecting PEs, with a single arbitration
// policy governing the order in which queued transfers are serviced.
type IC struct {
	ID int

	Freq        sim.Freq
	Area        float64
	WidthBits   int
	LatencyCyc  float64
	Arbitration ArbitrationPolicy
}

// TransferTime returns the wall-clock time, in seconds, to move the given
// number of bytes across this interconnect.
func (ic *IC) TransferTime(bytes int) sim.VTimeInSec {
	bits := float64(bytes) * 8
	cycles := ic.LatencyCyc + bits/float64(ic.WidthBits)
	return sim.VTimeInSec(cycles / float64(ic.Freq))
}

// Architecture is the immutable, ordered collection of PEs and ICs that a
// Mapping assigns tasks onto. All ICs in one architecture share
// frequency, width, and latency (the simulator treats buses as
// symmetric) — Validate enforces this invariant.
type Architecture struct {
	PEs []*PE
	ICs []*IC
}

// NPEs returns the number of processing elements.
func (a *Architecture) NPEs() int { return len(a.PEs) }

// NICs returns the number of interconnects.
func (a *Architecture) NICs() int { return len(a.ICs) }

// Validate checks the architecture-invariance requirement: every IC must
// share frequency, width, and latency with IC 0.
func (a *Architecture) Validate() error {
	if len(a.PEs) == 0 {
		return taskerr.New(taskerr.Invariant, "architecture has no processing elements")
	}
	if len(a.ICs) == 0 {
		return nil
	}
	ref := a.ICs[0]
	for _, ic := range a.ICs[1:] {
		if ic.Freq != ref.Freq || ic.WidthBits != ref.WidthBits || ic.LatencyCyc != ref.LatencyCyc {
			return taskerr.New(taskerr.Invariant, "all interconnects in an architecture must share frequency, width, and latency")
		}
	}
	return nil
}
