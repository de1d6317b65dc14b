package model_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/dcsmapper/model"
)

func minimizes(candidate, incumbent float64) bool { return candidate < incumbent }

var _ = Describe("Result", func() {
	It("mints a fresh run id", func() {
		a := model.NewResult()
		b := model.NewResult()
		Expect(a.RunID).NotTo(Equal(b.RunID))
	})

	It("records the first evaluation as both initial and best", func() {
		r := model.NewResult()
		r.RecordEvaluation(100, 1, minimizes)

		Expect(r.Evals).To(Equal(1))
		Expect(r.InitialObjective).To(Equal(100.0))
		Expect(r.BestObjective).To(Equal(100.0))
		Expect(r.OptimumIteration).To(Equal(1))
	})

	It("updates Best only on strict improvement", func() {
		r := model.NewResult()
		r.RecordEvaluation(100, 1, minimizes)
		r.RecordEvaluation(100, 2, minimizes)
		Expect(r.BestObjective).To(Equal(100.0))
		Expect(r.OptimumIteration).To(Equal(1))

		r.RecordEvaluation(40, 3, minimizes)
		Expect(r.BestObjective).To(Equal(40.0))
		Expect(r.OptimumIteration).To(Equal(3))
		Expect(r.Evals).To(Equal(3))

		r.RecordEvaluation(90, 4, minimizes)
		Expect(r.BestObjective).To(Equal(40.0))
		Expect(r.OptimumIteration).To(Equal(3))
	})

	It("does not record a trace unless TraceEnabled", func() {
		r := model.NewResult()
		r.RecordEvaluation(1, 1, minimizes)
		Expect(r.Trace).To(BeEmpty())
	})

	It("appends to the trace when enabled", func() {
		r := model.NewResult()
		r.TraceEnabled = true
		r.RecordEvaluation(1, 1, minimizes)
		r.RecordEvaluation(2, 2, minimizes)
		Expect(r.Trace).To(HaveLen(2))
		Expect(r.Trace[1].Objective).To(Equal(2.0))
	})
})
