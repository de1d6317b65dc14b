package resultio_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/resultio"
)

func TestResultio(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Resultio Suite")
}

func sampleMapping() *model.Mapping {
	arch := &model.Architecture{
		PEs: []*model.PE{{ID: 0}, {ID: 1}},
		ICs: []*model.IC{{ID: 0}},
	}
	app := &model.STGApp{Tasks: []*model.STGTask{{ID: 0}, {ID: 1}}}
	m := model.NewMapping(arch, app, 0)
	m.Assignments = []int{0, 1}
	m.Schedule.PEUtil = []float64{0.5, 0.25}
	m.Schedule.ICUtil = []float64{0.1}
	m.Result.RecordEvaluation(100, 1, func(c, i float64) bool { return c < i })
	m.Result.RecordEvaluation(50, 2, func(c, i float64) bool { return c < i })
	return m
}

var _ = Describe("WriteTrace", func() {
	It("writes packed float32 pairs in declaration order", func() {
		m := sampleMapping()
		m.Result.TraceEnabled = true
		m.Result.Trace = []model.TraceSample{
			{Objective: 10, Time: 1},
			{Objective: 5, Time: 2},
		}

		path := filepath.Join(os.TempDir(), "resultio-trace-test.bin")
		defer os.Remove(path)

		Expect(resultio.WriteTrace(path, m.Result)).To(Succeed())

		raw, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(raw).To(HaveLen(2 * 8))

		var got [2]struct{ Objective, Time float32 }
		Expect(binary.Read(bytes.NewReader(raw), binary.NativeEndian, &got)).To(Succeed())
		Expect(got[0].Objective).To(Equal(float32(10)))
		Expect(got[1].Time).To(Equal(float32(2)))
	})

	It("writes an empty file when tracing was never enabled", func() {
		m := sampleMapping()
		path := filepath.Join(os.TempDir(), "resultio-trace-empty-test.bin")
		defer os.Remove(path)

		Expect(resultio.WriteTrace(path, m.Result)).To(Succeed())

		raw, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(raw).To(BeEmpty())
	})
})

var _ = Describe("PrintSummary", func() {
	It("reports utilization, mapping, and evaluation counters", func() {
		m := sampleMapping()
		var buf bytes.Buffer

		resultio.PrintSummary(&buf, m, []int{0, 0}, "execution_time", "simulated_annealing")

		out := buf.String()
		Expect(out).To(ContainSubstring("objective_function: execution_time\n"))
		Expect(out).To(ContainSubstring("optimization_method: simulated_annealing\n"))
		Expect(out).To(ContainSubstring("ntasks: 2\n"))
		Expect(out).To(ContainSubstring("changed_mappings: 1\n"))
		Expect(out).To(ContainSubstring("best_objective: 50.000000000\n"))
		Expect(out).To(ContainSubstring("evaluations: 2\n"))
		Expect(out).To(ContainSubstring(m.Result.RunID.String()))
	})

	It("counts zero changed mappings when before matches the final assignment", func() {
		m := sampleMapping()
		var buf bytes.Buffer

		resultio.PrintSummary(&buf, m, []int{0, 1}, "execution_time", "random")

		Expect(buf.String()).To(ContainSubstring("changed_mappings: 0\n"))
	})
})
