package heuristics

import (
	"math"

	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/objective"
	"github.com/sarchlab/dcsmapper/taskerr"
)

// OptimalSubsetConfig parameterizes OptimalSubset.
type OptimalSubsetConfig struct {
	Objective objective.Config

	// SubsetSize is the maximum number of tasks brute-forced together;
	// the search starts at 2 (or at SubsetSize, if that is smaller).
	// OptimalSubset uses it as given; orchestrator's runOSM replaces a
	// zero value with the size DeriveSubsetSize computes from
	// Multiplier/TaskExponent/PEExponent before the call.
	SubsetSize int

	Multiplier   float64
	TaskExponent float64
	PEExponent   float64
}

// DeriveSubsetSize picks a subset size so that
// npes^size = multiplier * ntasks^taskExponent * npes^peExponent,
// clamped to at least 2 and at most ntasks.
func DeriveSubsetSize(ntasks, npes int, multiplier, taskExponent, peExponent float64) int {
	logNPEs := math.Log(float64(npes))
	size := int(math.Log(multiplier)/logNPEs + taskExponent*math.Log(float64(ntasks))/logNPEs + peExponent)
	if size < 2 {
		size = 2
	}
	if size > ntasks {
		size = ntasks
	}
	return size
}

// OptimalSubset randomly elects a subset of the non-static tasks and
// brute-forces every assignment of that subset (holding the rest of the
// mapping fixed), keeping any improvement. The subset size shrinks by
// one after an improving round and grows by one after a stagnant round,
// stopping once it reaches min(maxSubsetSize, electable) with no
// further improvement. It returns the best objective found, leaving m
// set to the mapping that achieved it.
func OptimalSubset(m *model.Mapping, cfg OptimalSubsetConfig) float64 {
	dynamic := m.NonStaticTasks()
	electable := len(dynamic)
	if electable == 0 {
		panic(taskerr.New(taskerr.Configuration, "heuristics.OptimalSubset: no non-static tasks to optimize"))
	}

	maxSubsetSize := cfg.SubsetSize
	if maxSubsetSize > electable {
		maxSubsetSize = electable
	}

	best := m.Fork()
	bestCost := eval(best, cfg.Objective)

	current := m.Fork()
	npes := m.NPEs()

	subsetSize := 2
	if subsetSize > maxSubsetSize {
		subsetSize = maxSubsetSize
	}

	for {
		oldBestCost := bestCost

		elected := model.Default().Cards(subsetSize, electable)
		for i := range elected {
			taskID := dynamic[elected[i]]
			elected[i] = taskID
			current.SetMapping(taskID, 0)
		}

		// Brute force every assignment of the elected subset via a
		// mixed-radix counter over the npes choices per task.
		for {
			cost := eval(current, cfg.Objective)
			if current.CostDiff(bestCost, cost) < 0 {
				bestCost = cost
				current.CopyInto(best)
			}

			i := 0
			for ; i < subsetSize; i++ {
				taskID := elected[i]
				pe := (current.Assignments[taskID] + 1) % npes
				current.SetMapping(taskID, pe)
				if pe != 0 {
					break
				}
			}
			if i == subsetSize {
				break
			}
		}

		best.CopyInto(current)

		if oldBestCost == bestCost {
			if subsetSize == maxSubsetSize {
				break
			}
			subsetSize++
			if subsetSize > maxSubsetSize {
				subsetSize = maxSubsetSize
			}
		} else if subsetSize >= 3 {
			subsetSize--
		}
	}

	best.CopyInto(m)
	return bestCost
}
