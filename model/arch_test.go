package model_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/dcsmapper/model"
)

var _ = Describe("ParseArbitrationPolicy", func() {
	It("recognizes all four keywords", func() {
		cases := map[string]model.ArbitrationPolicy{
			"fifo":     model.FIFO,
			"lifo":     model.LIFO,
			"random":   model.RANDOM,
			"priority": model.PRIORITY,
		}
		for name, want := range cases {
			got, ok := model.ParseArbitrationPolicy(name)
			Expect(ok).To(BeTrue(), name)
			Expect(got).To(Equal(want), name)
		}
	})

	It("rejects unknown keywords", func() {
		_, ok := model.ParseArbitrationPolicy("round-robin")
		Expect(ok).To(BeFalse())
	})

	It("round-trips through String", func() {
		Expect(model.FIFO.String()).To(Equal("fifo"))
		Expect(model.PRIORITY.String()).To(Equal("priority"))
	})
})

var _ = Describe("Architecture Validate", func() {
	It("rejects an architecture with no PEs", func() {
		arch := &model.Architecture{}
		Expect(arch.Validate()).To(HaveOccurred())
	})

	It("accepts an architecture with no ICs", func() {
		arch := &model.Architecture{PEs: []*model.PE{{ID: 0}}}
		Expect(arch.Validate()).NotTo(HaveOccurred())
	})

	It("rejects mismatched IC parameters", func() {
		arch := &model.Architecture{
			PEs: []*model.PE{{ID: 0}},
			ICs: []*model.IC{
				{ID: 0, Freq: 100, WidthBits: 32, LatencyCyc: 1},
				{ID: 1, Freq: 200, WidthBits: 32, LatencyCyc: 1},
			},
		}
		Expect(arch.Validate()).To(HaveOccurred())
	})

	It("accepts uniform ICs", func() {
		arch := &model.Architecture{
			PEs: []*model.PE{{ID: 0}},
			ICs: []*model.IC{
				{ID: 0, Freq: 100, WidthBits: 32, LatencyCyc: 1},
				{ID: 1, Freq: 100, WidthBits: 32, LatencyCyc: 1},
			},
		}
		Expect(arch.Validate()).NotTo(HaveOccurred())
	})
})

var _ = Describe("PE cost helpers", func() {
	It("computes send cost as latency plus per-byte cost", func() {
		pe := &model.PE{SendLatencyCycle: 10, SendCostPerByte: 2}
		Expect(pe.SendCost(5)).To(Equal(20.0))
	})

	It("computes copy cost as latency plus per-byte cost", func() {
		pe := &model.PE{CopyLatencyCycle: 4, CopyCostPerByte: 0.5}
		Expect(pe.CopyCost(8)).To(Equal(8.0))
	})
})

var _ = Describe("IC TransferTime", func() {
	It("scales with the transfer size and interconnect width", func() {
		ic := &model.IC{Freq: 1, WidthBits: 8, LatencyCyc: 0}
		Expect(float64(ic.TransferTime(1))).To(Equal(1.0))
	})
})
