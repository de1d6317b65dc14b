package simstg_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/simstg"
)

// dummyIC is present only because Schedule requires at least one
// interconnect, even on graphs that never communicate.
func dummyIC() *model.IC {
	return &model.IC{ID: 0, Freq: 1000, WidthBits: 8, LatencyCyc: 0}
}

var _ = Describe("Schedule", func() {
	It("runs a single task with no communication (trivial STG)", func() {
		arch := &model.Architecture{
			PEs: []*model.PE{{ID: 0, Freq: 1000, PerformanceFactor: 1}},
			ICs: []*model.IC{dummyIC()},
		}
		app := &model.STGApp{Tasks: []*model.STGTask{{ID: 0, Weight: 1000}}}
		app.Prepare()
		m := model.NewMapping(arch, app, 0)

		simstg.Schedule(m)

		Expect(float64(m.Schedule.Length)).To(BeNumerically("~", 1.0, 1e-9))
		Expect(m.Schedule.PEUtil[0]).To(BeNumerically("~", 1.0, 1e-9))
	})

	It("runs a two-task chain on one PE with no send cost", func() {
		arch := &model.Architecture{
			PEs: []*model.PE{{ID: 0, Freq: 1000, PerformanceFactor: 1}},
			ICs: []*model.IC{dummyIC()},
		}
		app := &model.STGApp{
			Tasks: []*model.STGTask{
				{ID: 0, Weight: 1000, Results: []model.STGResult{{Bytes: 0, Dsts: []int{1}}}},
				{ID: 1, Weight: 2000},
			},
		}
		app.Prepare()
		m := model.NewMapping(arch, app, 0)

		simstg.Schedule(m)

		Expect(float64(m.Schedule.Length)).To(BeNumerically("~", 3.0, 1e-9))
		Expect(m.Schedule.PEUtil[0]).To(BeNumerically("~", 1.0, 1e-9))
	})

	It("runs a two-task chain across two PEs, accounting for IC transfer time", func() {
		arch := &model.Architecture{
			PEs: []*model.PE{
				{ID: 0, Freq: 1000, PerformanceFactor: 1},
				{ID: 1, Freq: 1000, PerformanceFactor: 1},
			},
			ICs: []*model.IC{{ID: 0, Freq: 1000, WidthBits: 8, LatencyCyc: 0}},
		}
		app := &model.STGApp{
			Tasks: []*model.STGTask{
				{ID: 0, Weight: 1000, Results: []model.STGResult{{Bytes: 8, Dsts: []int{1}}}},
				{ID: 1, Weight: 2000},
			},
		}
		app.Prepare()
		m := model.NewMapping(arch, app, 0)
		m.Assignments[0] = 0
		m.Assignments[1] = 1
		m.IsStatic[0] = true
		m.IsStatic[1] = true

		simstg.Schedule(m)

		Expect(float64(m.Schedule.Length)).To(BeNumerically("~", 3.008, 1e-9))
	})

	It("places every parent after its children in the topological order", func() {
		arch := &model.Architecture{
			PEs: []*model.PE{{ID: 0, Freq: 1000, PerformanceFactor: 1}},
			ICs: []*model.IC{dummyIC()},
		}
		app := &model.STGApp{
			Tasks: []*model.STGTask{
				{ID: 0, Weight: 1, Results: []model.STGResult{{Bytes: 0, Dsts: []int{1}}}},
				{ID: 1, Weight: 1, Results: []model.STGResult{{Bytes: 0, Dsts: []int{2}}}},
				{ID: 2, Weight: 1},
			},
		}
		app.Prepare()
		m := model.NewMapping(arch, app, 0)

		simstg.Schedule(m)

		pos := make(map[int]int, len(m.STG.TopoOrder))
		for i, id := range m.STG.TopoOrder {
			pos[id] = i
		}
		Expect(pos[0]).To(BeNumerically(">", pos[1]))
		Expect(pos[1]).To(BeNumerically(">", pos[2]))
	})

	It("delivers once per literal (result, dst) reference when a same-PE destination repeats", func() {
		// Regression: a destination referenced twice from one result must
		// bump rescount twice, not once, or it never reaches NTResIn and
		// the run panics with a false deadlock.
		arch := &model.Architecture{
			PEs: []*model.PE{{ID: 0, Freq: 1000, PerformanceFactor: 1}},
			ICs: []*model.IC{dummyIC()},
		}
		app := &model.STGApp{
			Tasks: []*model.STGTask{
				{ID: 0, Weight: 10, Results: []model.STGResult{{Bytes: 0, Dsts: []int{1, 1}}}},
				{ID: 1, Weight: 10},
			},
		}
		app.Prepare()
		Expect(app.Tasks[1].NTResIn).To(Equal(2))
		m := model.NewMapping(arch, app, 0)

		Expect(func() { simstg.Schedule(m) }).NotTo(Panic())
		Expect(float64(m.Schedule.Length)).To(BeNumerically("~", 0.02, 1e-9))
	})

	It("delivers once per literal (result, dst) reference when a remote destination repeats across results", func() {
		arch := &model.Architecture{
			PEs: []*model.PE{
				{ID: 0, Freq: 1000, PerformanceFactor: 1},
				{ID: 1, Freq: 1000, PerformanceFactor: 1},
			},
			ICs: []*model.IC{{ID: 0, Freq: 1000, WidthBits: 8, LatencyCyc: 0}},
		}
		app := &model.STGApp{
			Tasks: []*model.STGTask{
				{ID: 0, Weight: 10, Results: []model.STGResult{
					{Bytes: 4, Dsts: []int{1}},
					{Bytes: 4, Dsts: []int{1}},
				}},
				{ID: 1, Weight: 10},
			},
		}
		app.Prepare()
		Expect(app.Tasks[1].NTResIn).To(Equal(2))
		Expect(app.Tasks[0].PeerBytes[1]).To(Equal(8))
		m := model.NewMapping(arch, app, 0)
		m.Assignments[0] = 0
		m.Assignments[1] = 1
		m.IsStatic[0] = true
		m.IsStatic[1] = true

		Expect(func() { simstg.Schedule(m) }).NotTo(Panic())
	})

	It("queues and services both sends when two PEs compete for the same interconnect", func() {
		arch := &model.Architecture{
			PEs: []*model.PE{
				{ID: 0, Freq: 1000, PerformanceFactor: 1},
				{ID: 1, Freq: 1000, PerformanceFactor: 1},
				{ID: 2, Freq: 1000, PerformanceFactor: 1},
			},
			ICs: []*model.IC{{ID: 0, Freq: 1000, WidthBits: 8, LatencyCyc: 0}},
		}
		app := &model.STGApp{
			Tasks: []*model.STGTask{
				{ID: 0, Weight: 10, Results: []model.STGResult{{Bytes: 8, Dsts: []int{2}}}},
				{ID: 1, Weight: 10, Results: []model.STGResult{{Bytes: 8, Dsts: []int{2}}}},
				{ID: 2, Weight: 10},
			},
		}
		app.Prepare()
		m := model.NewMapping(arch, app, 0)
		m.Assignments[0] = 0
		m.Assignments[1] = 1
		m.Assignments[2] = 2
		m.IsStatic[0] = true
		m.IsStatic[1] = true
		m.IsStatic[2] = true

		simstg.Schedule(m)

		Expect(m.Schedule.Arb[0].Arbs).To(Equal(2))
	})
})
