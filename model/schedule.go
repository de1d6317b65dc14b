package model

import "github.com/sarchlab/akita/v4/sim"

// ArbStats accumulates interconnect-arbitration diagnostics across one
// simulation run.
type ArbStats struct {
	Arbs          int     // number of arbitration decisions made
	TotalWaitTime float64 // sum of (decision time - issue time), seconds
	TotalInQueue  int     // sum of queue length observed at each decision
}

// AvgWaitTime returns the average time a transfer waited before being
// picked by arbitration.
func (s *ArbStats) AvgWaitTime() float64 {
	if s.Arbs == 0 {
		return 0
	}
	return s.TotalWaitTime / float64(s.Arbs)
}

// AvgInQueue returns the average queue length observed at the moment of
// each arbitration decision.
func (s *ArbStats) AvgInQueue() float64 {
	if s.Arbs == 0 {
		return 0
	}
	return float64(s.TotalInQueue) / float64(s.Arbs)
}

// Schedule is the per-run record filled in by whichever simulator
// (simstg or simkpn) most recently evaluated a Mapping.
type Schedule struct {
	Length sim.VTimeInSec

	PEUtil []float64 // per-PE busy time, seconds, until divided by Length
	ICUtil []float64 // per-IC busy time, seconds, until divided by Length

	Arb []ArbStats // per-IC arbitration diagnostics
}

// Reset clears the schedule for a fresh evaluation, sizing the
// utilization slices to npes/nics and reusing their backing arrays.
func (s *Schedule) Reset(npes, nics int) {
	s.Length = 0
	s.PEUtil = growFloat64(s.PEUtil, npes)
	s.ICUtil = growFloat64(s.ICUtil, nics)
	s.Arb = growArbStats(s.Arb, nics)
}

// Finalize converts the accumulated busy-time totals in PEUtil/ICUtil
// into utilizations in [0,1] by dividing by the schedule length. It must
// be called exactly once, after Length is final.
func (s *Schedule) Finalize() {
	if s.Length <= 0 {
		errInvariant("schedule_length must be > 0 after a successful evaluation, got %v", s.Length)
	}
	for i := range s.PEUtil {
		s.PEUtil[i] /= float64(s.Length)
	}
	for i := range s.ICUtil {
		s.ICUtil[i] /= float64(s.Length)
	}
}

func growFloat64(s []float64, n int) []float64 {
	if cap(s) >= n {
		s = s[:n]
		for i := range s {
			s[i] = 0
		}
		return s
	}
	return make([]float64, n)
}

func growArbStats(s []ArbStats, n int) []ArbStats {
	if cap(s) >= n {
		s = s[:n]
		for i := range s {
			s[i] = ArbStats{}
		}
		return s
	}
	return make([]ArbStats, n)
}
