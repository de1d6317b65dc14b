package metrics_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sarchlab/dcsmapper/internal/metrics"
)

func TestMetrics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Metrics Suite")
}

var _ = Describe("Registry", func() {
	It("starts at zero", func() {
		r := metrics.New()
		Expect(testutil.ToFloat64(r.EvaluationsTotal)).To(Equal(0.0))
		Expect(testutil.ToFloat64(r.ObjectiveBest)).To(Equal(0.0))
	})

	It("accumulates only the delta between successive evals totals", func() {
		r := metrics.New()
		r.Observe(10, 100, 5)
		Expect(testutil.ToFloat64(r.EvaluationsTotal)).To(Equal(10.0))

		r.Observe(25, 80, 3)
		Expect(testutil.ToFloat64(r.EvaluationsTotal)).To(Equal(25.0))
	})

	It("sets ObjectiveBest and Temperature to the latest sample", func() {
		r := metrics.New()
		r.Observe(1, 42, 7)
		Expect(testutil.ToFloat64(r.ObjectiveBest)).To(Equal(42.0))
		Expect(testutil.ToFloat64(r.Temperature)).To(Equal(7.0))
	})

	It("ignores a non-increasing evals total", func() {
		r := metrics.New()
		r.Observe(10, 1, 1)
		r.Observe(10, 2, 1)
		Expect(testutil.ToFloat64(r.EvaluationsTotal)).To(Equal(10.0))
	})

	It("exposes its collectors through Gatherer for promhttp", func() {
		r := metrics.New()
		r.Observe(3, 1, 1)

		families, err := r.Gatherer().Gather()
		Expect(err).NotTo(HaveOccurred())
		Expect(families).NotTo(BeEmpty())
	})
})
