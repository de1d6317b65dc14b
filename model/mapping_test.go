package model_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/dcsmapper/model"
)

func threePEArch() *model.Architecture {
	return &model.Architecture{
		PEs: []*model.PE{{ID: 0}, {ID: 1}, {ID: 2}},
	}
}

func threeTaskApp() *model.STGApp {
	return &model.STGApp{
		Tasks: []*model.STGTask{{ID: 0}, {ID: 1}, {ID: 2}},
	}
}

var _ = Describe("Mapping", func() {
	var (
		arch *model.Architecture
		app  *model.STGApp
		m    *model.Mapping
	)

	BeforeEach(func() {
		arch = threePEArch()
		app = threeTaskApp()
		m = model.NewMapping(arch, app, 1)
	})

	It("starts every task on the default PE", func() {
		Expect(m.Assignments).To(Equal([]int{1, 1, 1}))
		Expect(m.NTasks()).To(Equal(3))
		Expect(m.NPEs()).To(Equal(3))
	})

	It("allocates STGDerived only for STG applications", func() {
		Expect(m.STG).NotTo(BeNil())
	})

	Describe("SetMapping", func() {
		It("assigns the requested PE and returns it", func() {
			got := m.SetMapping(0, 2)
			Expect(got).To(Equal(2))
			Expect(m.Assignments[0]).To(Equal(2))
		})

		It("clamps negative PE ids to zero", func() {
			got := m.SetMapping(0, -5)
			Expect(got).To(Equal(0))
		})

		It("clamps out-of-range PE ids to the last PE", func() {
			got := m.SetMapping(0, 99)
			Expect(got).To(Equal(2))
		})

		It("is a no-op for static tasks", func() {
			m.IsStatic[1] = true
			m.Assignments[1] = 0
			got := m.SetMapping(1, 2)
			Expect(got).To(Equal(0))
			Expect(m.Assignments[1]).To(Equal(0))
		})

		It("honors MoveNPEsCap when clamping", func() {
			m.MoveNPEsCap = 2
			Expect(m.NPEs()).To(Equal(2))
			got := m.SetMapping(0, 5)
			Expect(got).To(Equal(1))
		})
	})

	Describe("Priority", func() {
		It("falls back when no override is set", func() {
			Expect(m.Priority(0, 3.5)).To(Equal(3.5))
		})

		It("returns the override when set", func() {
			m.TaskPriorities[0] = 9
			m.HasTaskPriority[0] = true
			Expect(m.Priority(0, 3.5)).To(Equal(9.0))
		})
	})

	Describe("Fork and CopyInto", func() {
		It("forks an independent copy that shares Arch, App, and Result", func() {
			m.SetMapping(0, 2)
			f := m.Fork()

			Expect(f.Arch).To(BeIdenticalTo(m.Arch))
			Expect(f.App).To(BeIdenticalTo(m.App))
			Expect(f.Result).To(BeIdenticalTo(m.Result))
			Expect(f.Assignments).To(Equal(m.Assignments))

			f.SetMapping(0, 1)
			Expect(m.Assignments[0]).To(Equal(2), "mutating the fork must not affect the original")
		})

		It("restores original state via a CopyInto round trip", func() {
			before := append([]int(nil), m.Assignments...)
			scratch := m.Fork()

			scratch.SetMapping(0, 2)
			scratch.SetMapping(1, 0)
			scratch.CopyInto(m)
			Expect(m.Assignments).To(Equal(scratch.Assignments))

			restore := model.NewMapping(arch, app, 0)
			copy(restore.Assignments, before)
			restore.CopyInto(m)
			Expect(m.Assignments).To(Equal(before))
		})
	})

	Describe("CostDiff and IsBetter", func() {
		It("treats a lower objective as better when minimizing", func() {
			m.Maximize = false
			Expect(m.CostDiff(10, 5)).To(Equal(-5.0))
			Expect(m.IsBetter(5, 10)).To(BeTrue())
			Expect(m.IsBetter(10, 5)).To(BeFalse())
		})

		It("treats a higher objective as better when maximizing", func() {
			m.Maximize = true
			Expect(m.CostDiff(5, 10)).To(Equal(-5.0))
			Expect(m.IsBetter(10, 5)).To(BeTrue())
			Expect(m.IsBetter(5, 10)).To(BeFalse())
		})
	})

	Describe("static task accounting", func() {
		It("counts static and electable tasks", func() {
			m.IsStatic[0] = true
			Expect(m.NStatic()).To(Equal(1))
			Expect(m.Electable()).To(Equal(2))
			Expect(m.NonStaticTasks()).To(Equal([]int{1, 2}))
		})
	})
})

var _ = Describe("ClampNonNegativeInt", func() {
	It("floors positive values", func() {
		Expect(model.ClampNonNegativeInt(3.9)).To(Equal(3))
	})

	It("clamps negative values to zero", func() {
		Expect(model.ClampNonNegativeInt(-1.0)).To(Equal(0))
	})

	It("clamps NaN to zero", func() {
		nan := math.NaN()
		Expect(model.ClampNonNegativeInt(nan)).To(Equal(0))
	})
})
