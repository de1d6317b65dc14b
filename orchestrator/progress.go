package orchestrator

import "github.com/google/uuid"

// Progress is one snapshot of a running optimization, published to
// Config.Progress (if set) so a CLI-external observer — the live
// monitor, metrics exporter, or a test — can watch a long search
// without holding a reference to the Mapping itself.
type Progress struct {
	RunID uuid.UUID
	Evals int

	BestObjective float64

	// Temperature is only meaningful while the dispatched method is one
	// of the simulated-annealing family; it is left at zero otherwise.
	Temperature float64
}

// publishProgress wires a Progress send into an anneal.Config's OnStep hook,
// returning nil if ch is nil so callers can assign it unconditionally.
func publishProgress(ch chan<- Progress, runID uuid.UUID) func(evals int, temperature, best float64) {
	if ch == nil {
		return nil
	}
	return func(evals int, temperature, best float64) {
		select {
		case ch <- Progress{RunID: runID, Evals: evals, BestObjective: best, Temperature: temperature}:
		default:
			// a slow or absent consumer must never stall the search
		}
	}
}
