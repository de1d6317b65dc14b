// Package resultio writes the two artifacts a completed optimization
// run produces: a packed per-evaluation trace file on disk and a
// human-readable summary of the run, printed to an io.Writer.
package resultio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/dcsmapper/model"
)

// outputFrame is one packed trace record: two float32s, native byte
// order, no padding. Matches the original system's on-disk layout
// exactly so existing trace-reading tooling keeps working.
type outputFrame struct {
	Objective float32
	Time      float32
}

// WriteTrace writes r's recorded evaluation trace to path as a
// sequence of packed (objective, time) float32 pairs in the host's
// native byte order. It is a no-op, creating an empty file, if tracing
// was never enabled on r.
func WriteTrace(path string, r *model.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("resultio: can not write to output file: %w", err)
	}
	defer f.Close()

	for _, sample := range r.Trace {
		frame := outputFrame{Objective: float32(sample.Objective), Time: float32(sample.Time)}
		if err := binary.Write(f, binary.NativeEndian, frame); err != nil {
			return fmt.Errorf("resultio: write error to output file: %w", err)
		}
	}
	return nil
}

// PrintSummary writes a `key: value` summary of one completed
// optimization run to w: the objective/method names, schedule
// utilizations, the mapping_list the run arrived at (and how many
// tasks moved relative to before), and the result's evaluation
// counters. before is the task->PE assignment the mapping had prior to
// optimization, used only to count changed_mappings.
func PrintSummary(w io.Writer, m *model.Mapping, before []int, objectiveName, methodName string) {
	r := m.Result

	fmt.Fprintf(w, "objective_function: %s\n", objectiveName)
	fmt.Fprintf(w, "optimization_method: %s\n", methodName)
	fmt.Fprintf(w, "ntasks: %d\n", m.NTasks())

	fmt.Fprintf(w, "pes: %d\n", m.Arch.NPEs())
	fmt.Fprint(w, "pe_utilisations: ")
	var peTotal float64
	for _, u := range m.Schedule.PEUtil {
		fmt.Fprintf(w, "%.3f ", u)
		peTotal += u
	}
	fmt.Fprintf(w, "\ntotal_pe_utilisation: %.3f\n", peTotal/float64(m.Arch.NPEs()))

	fmt.Fprint(w, "ic_utilisations: ")
	var icTotal float64
	for _, u := range m.Schedule.ICUtil {
		fmt.Fprintf(w, "%.3f ", u)
		icTotal += u
	}
	if n := m.Arch.NICs(); n > 0 {
		fmt.Fprintf(w, "\ntotal_ic_utilisation: %.3f\n", icTotal/float64(n))
	} else {
		fmt.Fprint(w, "\n")
	}

	fmt.Fprintf(w, "mapping_list %d ", m.NTasks())
	changed := 0
	for t, pe := range m.Assignments {
		fmt.Fprintf(w, "map %d %d ", t, pe)
		if t < len(before) && before[t] != pe {
			changed++
		}
	}
	fmt.Fprintf(w, "\nchanged_mappings: %d\n", changed)

	fmt.Fprintf(w, "initial_objective: %.9f\n", r.InitialObjective)
	fmt.Fprintf(w, "initial_time: %.9f\n", float64(r.InitialTime))
	fmt.Fprintf(w, "best_objective: %.9f\n", r.BestObjective)
	fmt.Fprintf(w, "best_time: %.9f\n", float64(r.BestTime))
	if r.BestObjective > 0 {
		fmt.Fprintf(w, "gain: %.3f\n", r.InitialObjective/r.BestObjective)
	}
	if r.BestTime > 0 {
		fmt.Fprintf(w, "time_gain: %.3f\n", float64(r.InitialTime)/float64(r.BestTime))
	}

	fmt.Fprintf(w, "evaluations: %d\n", r.Evals)
	fmt.Fprintf(w, "optimum_iteration: %d\n", r.OptimumIteration)
	fmt.Fprintf(w, "run_id: %s\n", r.RunID)
}
