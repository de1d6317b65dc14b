package heuristics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/dcsmapper/heuristics"
	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/objective"
)

func fanOutMapping() *model.Mapping {
	arch := &model.Architecture{
		PEs: []*model.PE{
			{ID: 0, Freq: 1, PerformanceFactor: 1},
			{ID: 1, Freq: 1, PerformanceFactor: 1},
			{ID: 2, Freq: 1, PerformanceFactor: 1},
		},
		ICs: []*model.IC{{ID: 0, Freq: 1, WidthBits: 8, LatencyCyc: 0}},
	}
	app := &model.STGApp{
		Tasks: []*model.STGTask{
			{ID: 0, Weight: 1, Results: []model.STGResult{{Bytes: 0, Dsts: []int{1, 2}}}},
			{ID: 1, Weight: 10},
			{ID: 2, Weight: 10},
		},
	}
	app.Prepare()
	return model.NewMapping(arch, app, 0)
}

var _ = Describe("RandomConfig.iterationBound (via Random)", func() {
	It("runs exactly MaxIterations evaluations plus the initial one when non-negative", func() {
		m := fanOutMapping()
		objCfg := objective.Config{Kind: objective.ExecutionTime}
		cfg := heuristics.RandomConfig{Objective: objCfg, MaxIterations: 5}

		heuristics.Random(m, cfg)
		Expect(m.Result.Evals).To(Equal(6))
	})

	It("derives the bound from Constant*ntasks^a*npes^b when MaxIterations is negative", func() {
		m := fanOutMapping()
		objCfg := objective.Config{Kind: objective.ExecutionTime}
		cfg := heuristics.RandomConfig{
			Objective:     objCfg,
			MaxIterations: -1,
			Constant:      1,
			TaskExponent:  1,
			PEExponent:    0,
		}

		heuristics.Random(m, cfg)
		// ntasks=3 -> 3 derived iterations, plus the initial evaluation.
		Expect(m.Result.Evals).To(Equal(4))
	})
})

var _ = Describe("Random", func() {
	It("never leaves the mapping worse than its starting point", func() {
		m := fanOutMapping()
		objCfg := objective.Config{Kind: objective.ExecutionTime}
		start := objective.Evaluate(m, objCfg)

		cfg := heuristics.RandomConfig{Objective: objCfg, MaxIterations: 20}
		best := heuristics.Random(m, cfg)

		Expect(best).To(BeNumerically("<=", start))
	})

	It("pins static tasks across every random candidate", func() {
		m := fanOutMapping()
		m.IsStatic[0] = true
		m.Assignments[0] = 1

		cfg := heuristics.RandomConfig{Objective: objective.Config{Kind: objective.ExecutionTime}, MaxIterations: 20}
		heuristics.Random(m, cfg)

		Expect(m.Assignments[0]).To(Equal(1))
	})
})
