package simkpn_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/simkpn"
)

var _ = Describe("Schedule", func() {
	It("runs a two-process ping: compute, write, block, read, compute", func() {
		arch := &model.Architecture{
			PEs: []*model.PE{
				{ID: 0, Freq: 100, PerformanceFactor: 1},
				{ID: 1, Freq: 100, PerformanceFactor: 1},
			},
			ICs: []*model.IC{{ID: 0, Freq: 100, WidthBits: 32, LatencyCyc: 0}},
		}
		app := &model.KPNApp{
			Processes: []*model.KPNProcess{
				{ID: 0, Instructions: []model.Instruction{
					{Kind: model.InstCompute, Amount: 100},
					{Kind: model.InstWrite, Dst: 1, Amount: 4},
					{Kind: model.InstCompute, Amount: 0},
				}},
				{ID: 1, Instructions: []model.Instruction{
					{Kind: model.InstRead, Src: 0},
					{Kind: model.InstCompute, Amount: 100},
				}},
			},
		}
		m := model.NewMapping(arch, app, 0)
		m.Assignments[0] = 0
		m.Assignments[1] = 1
		m.IsStatic[0] = true
		m.IsStatic[1] = true

		simkpn.Schedule(m)

		Expect(float64(m.Schedule.Length)).To(BeNumerically("~", 2.01, 1e-9))
	})

	It("panics when a process blocks on a channel that is never written", func() {
		arch := &model.Architecture{
			PEs: []*model.PE{{ID: 0, Freq: 100, PerformanceFactor: 1}},
			ICs: []*model.IC{{ID: 0, Freq: 100, WidthBits: 32, LatencyCyc: 0}},
		}
		app := &model.KPNApp{
			Processes: []*model.KPNProcess{
				{ID: 0, Instructions: []model.Instruction{{Kind: model.InstRead, Src: 1}}},
				{ID: 1, Instructions: []model.Instruction{{Kind: model.InstCompute, Amount: 1}}},
			},
		}
		m := model.NewMapping(arch, app, 0)

		Expect(func() { simkpn.Schedule(m) }).To(Panic())
	})

	It("arbitrates both queued writes when two PEs compete for the same interconnect", func() {
		arch := &model.Architecture{
			PEs: []*model.PE{
				{ID: 0, Freq: 100, PerformanceFactor: 1},
				{ID: 1, Freq: 100, PerformanceFactor: 1},
				{ID: 2, Freq: 100, PerformanceFactor: 1},
			},
			ICs: []*model.IC{{ID: 0, Freq: 100, WidthBits: 32, LatencyCyc: 0}},
		}
		app := &model.KPNApp{
			Processes: []*model.KPNProcess{
				{ID: 0, Instructions: []model.Instruction{{Kind: model.InstWrite, Dst: 2, Amount: 4}}},
				{ID: 1, Instructions: []model.Instruction{{Kind: model.InstWrite, Dst: 2, Amount: 4}}},
				{ID: 2, Instructions: []model.Instruction{
					{Kind: model.InstRead, Src: 0},
					{Kind: model.InstRead, Src: 1},
				}},
			},
		}
		m := model.NewMapping(arch, app, 0)
		m.Assignments[0] = 0
		m.Assignments[1] = 1
		m.Assignments[2] = 2
		m.IsStatic[0] = true
		m.IsStatic[1] = true
		m.IsStatic[2] = true

		simkpn.Schedule(m)

		Expect(m.Schedule.Arb[0].Arbs).To(Equal(2))
	})
})
