package anneal

import (
	"sort"

	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/taskerr"
)

const autotempK = 2.0

// Autotemp derives T0 and Tf from the application's computation weights
// and the architecture's performance spread, per the application kind
// carried by m. It guarantees T0 >= Tf > 0.
func Autotemp(m *model.Mapping) (t0, tf float64) {
	minperf, maxperf := 1e10, 0.0
	for _, pe := range m.Arch.PEs {
		perf := float64(pe.Freq) * pe.PerformanceFactor
		if perf < minperf {
			minperf = perf
		}
		if perf > maxperf {
			maxperf = perf
		}
	}

	switch app := m.App.(type) {
	case *model.STGApp:
		t0, tf = stgAutotemp(app, minperf, maxperf)
	case *model.KPNApp:
		t0, tf = kpnAutotemp(app, minperf, maxperf)
	default:
		panic(taskerr.New(taskerr.Invariant, "anneal.Autotemp: mapping has no recognized application model"))
	}

	if t0 < tf || tf <= 0 {
		panic(taskerr.New(taskerr.Invariant, "autotemp produced T0=%v Tf=%v, violating T0 >= Tf > 0", t0, tf))
	}
	return t0, tf
}

func stgAutotemp(app *model.STGApp, minperf, maxperf float64) (t0, tf float64) {
	maxtime, mintime := 0.0, 1e10
	maxsum, minsum := 0.0, 0.0

	for _, t := range app.Tasks {
		time := t.Weight / maxperf
		if time < mintime {
			mintime = time
		}
		minsum += time

		time = t.Weight / minperf
		if time > maxtime {
			maxtime = time
		}
		maxsum += time
	}

	t0 = minFloat(autotempK*maxtime/minsum, 1)
	tf = minFloat(mintime/(autotempK*maxsum), 1)
	return t0, tf
}

// kpnAutotemp mirrors stgAutotemp but derives one computation weight per
// process (its total COMPUTE amount) and additionally clamps mintime to
// the 5th-percentile process (by ascending total compute), so that one
// outlier process with a tiny workload cannot force Tf down near zero.
func kpnAutotemp(app *model.KPNApp, minperf, maxperf float64) (t0, tf float64) {
	n := len(app.Processes)
	cycles := make([]float64, n)
	for i, p := range app.Processes {
		cycles[i] = p.TotalCompute()
	}
	sort.Float64s(cycles)

	maxtime, mintime := 0.0, 1e10
	maxsum, minsum := 0.0, 0.0

	for _, c := range cycles {
		time := c / maxperf
		if time < mintime {
			mintime = time
		}
		minsum += time

		time = c / minperf
		if time > maxtime {
			maxtime = time
		}
		maxsum += time
	}

	pivot := cycles[n*5/100] / maxperf
	mintime = maxFloat(mintime, pivot)
	mintime = maxFloat(mintime, 1/maxperf)

	t0 = minFloat(autotempK*maxtime/minsum, 1)
	tf = minFloat(mintime/(autotempK*maxsum), 1)
	return t0, tf
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
