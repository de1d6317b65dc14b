package model

import (
	"github.com/google/uuid"
	"github.com/sarchlab/akita/v4/sim"
)

// TraceSample is one (objective, time) pair recorded when tracing is
// enabled, packed to disk by resultio.WriteTrace.
type TraceSample struct {
	Objective float64
	Time      sim.VTimeInSec
}

// Result accumulates the outcome of an optimization run: the best and
// initial objective/time, the number of evaluations performed, and an
// optional evaluation trace.
type Result struct {
	RunID uuid.UUID

	InitialObjective float64
	InitialTime      sim.VTimeInSec

	BestObjective float64
	BestTime      sim.VTimeInSec

	Evals int

	TraceEnabled bool
	Trace        []TraceSample

	// OptimumIteration is the (1-indexed) evaluation number at which
	// BestObjective was most recently improved.
	OptimumIteration int
}

// NewResult creates a zeroed Result, minting a fresh run identifier.
func NewResult() *Result {
	return &Result{RunID: uuid.New()}
}

// RecordEvaluation is called by objective.Evaluate after every objective
// computation. It increments Evals, appends to the trace if enabled, and
// updates Best* when obj strictly improves over the current best
// (improvement direction is supplied by the caller via isBetter, since
// Result does not know whether the run minimizes or maximizes).
func (r *Result) RecordEvaluation(obj float64, t sim.VTimeInSec, isBetter func(candidate, incumbent float64) bool) {
	r.Evals++
	if r.TraceEnabled {
		r.Trace = append(r.Trace, TraceSample{Objective: obj, Time: t})
	}

	if r.Evals == 1 {
		r.InitialObjective = obj
		r.InitialTime = t
		r.BestObjective = obj
		r.BestTime = t
		r.OptimumIteration = 1
		return
	}

	if isBetter(obj, r.BestObjective) {
		r.BestObjective = obj
		r.BestTime = t
		r.OptimumIteration = r.Evals
	}
}
